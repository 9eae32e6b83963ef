package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo реализует хранилище изображений товаров поверх MinIO.
// Объекты именуются по соглашению {sku}.jpg.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Get возвращает байты основного изображения товара.
// Отсутствие объекта — e.ErrImageNotFound, чтобы вызывающая сторона могла перейти к фолбэку.
func (i *ImageRepo) Get(ctx context.Context, sku int64) ([]byte, error) {
	obj, err := i.mc.GetObject(ctx, i.cfg.BucketName, objectKey(sku), minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, e.ErrImageNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// Put сохраняет изображение товара по ключу {sku}.jpg.
func (i *ImageRepo) Put(ctx context.Context, sku int64, data []byte, contentType string) error {
	_, err := i.mc.PutObject(ctx, i.cfg.BucketName, objectKey(sku), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func objectKey(sku int64) string {
	return fmt.Sprintf("%d.jpg", sku)
}
