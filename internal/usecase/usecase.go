package usecase

import "context"

type SearchUC interface {
	SearchProducts(ctx context.Context, req *SearchReq) (*SearchRes, error)
	GetProduct(ctx context.Context, sku int64) (*ProductRecord, error)
	GetProductsByBrand(ctx context.Context, req *BrandReq) ([]ProductRecord, error)
	GetPreference(ctx context.Context, req *PreferenceReq) (*PreferenceRes, error)
}

type IngestUC interface {
	Run(ctx context.Context) (*IngestSummary, error)
}
