package usecase

import "github.com/DRSN-tech/search-backend/internal/domain"

// SEARCH USECASE

// SearchReq — запрос поиска: ровно одна модальность (текст или изображение)
// плюс необязательные фильтры точного совпадения.
type SearchReq struct {
	Text  string
	Image []byte // байты загруженного изображения
	Brand string
	Color string
	TopK  int
}

// SearchRes — ранжированные записи каталога.
type SearchRes struct {
	Products []ProductRecord
}

// ProductRecord — DTO с полной записью товара для внешнего использования.
type ProductRecord struct {
	SKU         int64    `json:"sku"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	URL         string   `json:"url"`
}

// BrandReq — запрос списка товаров бренда.
type BrandReq struct {
	Brand string `json:"brand"`
}

// PreferenceReq — запрос рекомендаций по опорному товару.
type PreferenceReq struct {
	SKU int64 `json:"sku"`
}

// PreferenceRes — две независимые выдачи рекомендаций: по изображению и по тексту.
type PreferenceRes struct {
	Image []ProductRecord `json:"image"`
	Text  []ProductRecord `json:"text"`
}

// INGEST USECASE

// IngestSummary — итог прогона инжеста.
type IngestSummary struct {
	RunID          string
	RowsProcessed  int
	TextEmbedded   int
	ImagesEmbedded int
	RowsSkipped    int
}

// IngestEventReq — событие о ходе инжеста для шины сообщений.
type IngestEventReq struct {
	RunID      string `json:"run_id"`
	Type       string `json:"type"` // "batch_flushed" | "run_finished"
	Collection string `json:"collection,omitempty"`
	Count      int    `json:"count,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Images     int    `json:"images,omitempty"`
}

// MAPPERS

func NewProductRecord(p *domain.Product) ProductRecord {
	return ProductRecord{
		SKU:         p.SKU,
		Name:        p.Name,
		Brand:       p.Brand,
		Color:       p.Color,
		Description: p.DescriptionText,
		Images:      p.Images,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		URL:         p.URL,
	}
}

func NewProductRecords(products []domain.Product) []ProductRecord {
	records := make([]ProductRecord, 0, len(products))
	for i := range products {
		records = append(records, NewProductRecord(&products[i]))
	}
	return records
}

func NewSearchReq(text string, image []byte, brand, color string, topK int) *SearchReq {
	return &SearchReq{
		Text:  text,
		Image: image,
		Brand: brand,
		Color: color,
		TopK:  topK,
	}
}

func NewSearchRes(products []ProductRecord) *SearchRes {
	return &SearchRes{Products: products}
}

func NewBrandReq(brand string) *BrandReq {
	return &BrandReq{Brand: brand}
}

func NewPreferenceReq(sku int64) *PreferenceReq {
	return &PreferenceReq{SKU: sku}
}

func NewBatchFlushedEvent(runID, collection string, count int) *IngestEventReq {
	return &IngestEventReq{
		RunID:      runID,
		Type:       "batch_flushed",
		Collection: collection,
		Count:      count,
	}
}

func NewRunFinishedEvent(runID string, summary *IngestSummary) *IngestEventReq {
	return &IngestEventReq{
		RunID:  runID,
		Type:   "run_finished",
		Rows:   summary.RowsProcessed,
		Images: summary.ImagesEmbedded,
	}
}
