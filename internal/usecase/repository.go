package usecase

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/domain"
)

type CatalogRepository interface {
	All() []domain.Product
	GetBySKU(sku int64) (*domain.Product, bool)
	GetBySKUs(skus []int64) []domain.Product
	GetByBrand(brand string, limit int) []domain.Product
}

type VectorRepository interface {
	Upsert(ctx context.Context, collection string, vectors []domain.Embedding) error
	Search(ctx context.Context, collection string, vector []float32, limit uint64, filter domain.SearchFilter) ([]domain.SearchHit, error)
}

type ImageRepository interface {
	Get(ctx context.Context, sku int64) ([]byte, error)
	Put(ctx context.Context, sku int64, data []byte, contentType string) error
}
