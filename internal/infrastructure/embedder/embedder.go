package embedder

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/jitter"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Embedder — клиент мультимодального embedding-сервиса с OpenAI-совместимым API.
// Один CLIP-инстанс обслуживает обе модальности: текст передаётся строкой,
// изображение — data URI с base64, поэтому векторы имеют одну размерность.
type Embedder struct {
	client      *openai.Client
	model       openai.EmbeddingModel
	maxTextLen  int
	maxRetries  int
	callTimeout time.Duration
	logger      logger.Logger
}

func NewEmbedder(cfg *cfg.EmbedderCfg, logger logger.Logger) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.ApiKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Embedder{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       openai.EmbeddingModel(cfg.Model),
		maxTextLen:  cfg.MaxTextLen,
		maxRetries:  cfg.MaxRetries,
		callTimeout: cfg.CallTimeout,
		logger:      logger,
	}
}

// EmbedText возвращает вектор текстового запроса.
// Текст обрезается до окна модели: CLIP всё равно режет вход по токенам.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return m.embedWithRetry(ctx, truncateRunes(text, m.maxTextLen))
}

// EmbedImage возвращает вектор изображения, переданного как data URI.
func (m *Embedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	if len(image) == 0 {
		return nil, e.ErrInvalidImage
	}

	contentType := http.DetectContentType(image)
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	return m.embedWithRetry(ctx, dataURI)
}

// embedWithRetry выполняет запрос эмбеддинга с retry-логикой и экспоненциальной задержкой.
func (m *Embedder) embedWithRetry(ctx context.Context, input string) ([]float32, error) {
	const (
		op         = "Embedder.embedWithRetry"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		vector, err := m.embed(ctx, input)
		if err == nil {
			return vector, nil
		}

		if attempt == m.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", m.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(baseJitter, maxJitter, attempt, jitter.DefaultJitter)

		m.logger.Warnf("embedding call failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

func (m *Embedder) embed(ctx context.Context, input string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{input},
		Model:          m.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, e.ErrEmptyVector
	}

	return resp.Data[0].Embedding, nil
}

// truncateRunes обрезает строку до max рун, не ломая многобайтовые символы.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
