package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// maxImageSize ограничивает скачиваемое изображение (10 МБ).
const maxImageSize = 10 << 20

// Resolver находит основное изображение товара по упорядоченной цепочке стратегий:
// объект {sku}.jpg в MinIO, затем первая ссылка из каталога. Скачанное по ссылке
// изображение по возможности сохраняется обратно в MinIO для следующих прогонов.
type Resolver struct {
	imageRepo       usecase.ImageRepository
	httpClient      *http.Client
	cacheDownloaded bool
	logger          logger.Logger
}

func NewResolver(imageRepo usecase.ImageRepository, ingestCfg *cfg.IngestCfg, logger logger.Logger) *Resolver {
	return &Resolver{
		imageRepo:       imageRepo,
		httpClient:      &http.Client{Timeout: ingestCfg.ImageTimeout},
		cacheDownloaded: ingestCfg.CacheDownloaded,
		logger:          logger,
	}
}

// Resolve возвращает байты первого читаемого изображения товара.
// Исчерпание всех стратегий — e.ErrImageUnavailable, а не исключение.
func (r *Resolver) Resolve(ctx context.Context, sku int64, imageURL string) ([]byte, error) {
	if data, err := r.imageRepo.Get(ctx, sku); err == nil {
		if isDecodable(data) {
			return data, nil
		}
		r.logger.Warnf("images: stored object for sku %d is not a decodable image", sku)
	}

	if imageURL == "" {
		return nil, e.ErrImageUnavailable
	}

	data, contentType, err := r.download(ctx, imageURL)
	if err != nil {
		return nil, e.ErrImageUnavailable
	}
	if !isDecodable(data) {
		return nil, e.ErrImageUnavailable
	}

	if r.cacheDownloaded {
		if err := r.imageRepo.Put(ctx, sku, data, contentType); err != nil {
			r.logger.Warnf("images: failed to cache downloaded image for sku %d: %v", sku, err)
		}
	}

	return data, nil
}

// download скачивает изображение по ссылке с коротким таймаутом клиента.
func (r *Resolver) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}

func isDecodable(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
