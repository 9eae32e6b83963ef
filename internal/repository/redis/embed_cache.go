package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/clients"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	textKeyPrefix  = "emb:text:"
	imageKeyPrefix = "emb:image:"
)

// CachedEmbedder — кэширующий декоратор над embedding-сервисом.
// Ключ — SHA-256 входа, значение — JSON-вектор с TTL. Любая ошибка кэша
// деградирует до промаха и не влияет на запрос.
type CachedEmbedder struct {
	inner  usecase.EmbedderInfra
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCachedEmbedder(inner usecase.EmbedderInfra, client *clients.RedisClient,
	cfg *cfg.RedisCfg, logger logger.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// EmbedText возвращает кэшированный вектор текста или обращается к сервису.
func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(textKeyPrefix, []byte(text))

	if vector, ok := c.getFromCache(ctx, key); ok {
		return vector, nil
	}

	vector, err := c.inner.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, vector)
	return vector, nil
}

// EmbedImage возвращает кэшированный вектор изображения или обращается к сервису.
func (c *CachedEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	key := cacheKey(imageKeyPrefix, image)

	if vector, ok := c.getFromCache(ctx, key); ok {
		return vector, nil
	}

	vector, err := c.inner.EmbedImage(ctx, image)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, vector)
	return vector, nil
}

func (c *CachedEmbedder) getFromCache(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, r.Nil) {
			c.logger.Warnf("embedding cache get failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		c.logger.Warnf("embedding cache unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false
	}

	return vector, len(vector) > 0
}

func (c *CachedEmbedder) putToCache(ctx context.Context, key string, vector []float32) {
	data, err := json.Marshal(vector)
	if err != nil {
		c.logger.Warnf("embedding cache marshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := c.client.Client.Set(ctx, key, data, c.cfg.EmbeddingTTL).Err(); err != nil {
		c.logger.Warnf("embedding cache set failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func cacheKey(prefix string, input []byte) string {
	h := sha256.Sum256(input)
	return prefix + hex.EncodeToString(h[:])
}
