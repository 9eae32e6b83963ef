package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/domain"
)

// --- Mocks ---

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any) {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type mockCatalog struct {
	products []domain.Product
}

func (m *mockCatalog) All() []domain.Product { return m.products }

func (m *mockCatalog) GetBySKU(sku int64) (*domain.Product, bool) {
	for i := range m.products {
		if m.products[i].SKU == sku {
			return &m.products[i], true
		}
	}
	return nil, false
}

func (m *mockCatalog) GetBySKUs(skus []int64) []domain.Product {
	result := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		if p, ok := m.GetBySKU(sku); ok {
			result = append(result, *p)
		}
	}
	return result
}

func (m *mockCatalog) GetByBrand(brand string, limit int) []domain.Product {
	result := make([]domain.Product, 0, limit)
	for i := range m.products {
		if strings.EqualFold(m.products[i].Brand, brand) {
			result = append(result, m.products[i])
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

type upsertCall struct {
	collection string
	count      int
}

type mockVectorRepo struct {
	hits      []domain.SearchHit
	searchErr error
	upsertErr error

	upserts        []upsertCall
	searchCalls    int
	lastCollection string
	lastLimit      uint64
	lastFilter     domain.SearchFilter
}

func (m *mockVectorRepo) Upsert(_ context.Context, collection string, vectors []domain.Embedding) error {
	m.upserts = append(m.upserts, upsertCall{collection: collection, count: len(vectors)})
	return m.upsertErr
}

func (m *mockVectorRepo) Search(_ context.Context, collection string, _ []float32, limit uint64, filter domain.SearchFilter) ([]domain.SearchHit, error) {
	m.searchCalls++
	m.lastCollection = collection
	m.lastLimit = limit
	m.lastFilter = filter
	return m.hits, m.searchErr
}

type mockEmbedder struct {
	textVec  []float32
	imageVec []float32
	textErr  error
	imageErr error
	textFn   func(text string) ([]float32, error) // переопределяет textVec/textErr, если задана

	textCalls  int
	imageCalls int
}

func (m *mockEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	m.textCalls++
	if m.textFn != nil {
		return m.textFn(text)
	}
	return m.textVec, m.textErr
}

func (m *mockEmbedder) EmbedImage(_ context.Context, _ []byte) ([]float32, error) {
	m.imageCalls++
	return m.imageVec, m.imageErr
}

type mockImages struct {
	data  []byte
	err   error
	calls int
}

func (m *mockImages) Resolve(_ context.Context, _ int64, _ string) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

type mockProducer struct {
	events []IngestEventReq
	err    error
}

func (m *mockProducer) WriteIngestEvent(_ context.Context, req *IngestEventReq) error {
	m.events = append(m.events, *req)
	return m.err
}

// --- Fixtures ---

func testQdrantCfg() *cfg.QdrantCfg {
	return &cfg.QdrantCfg{
		VectorSize:          4,
		TextCollectionName:  "products_text",
		ImageCollectionName: "products_image",
	}
}

func testProducts() []domain.Product {
	return []domain.Product{
		{SKU: 101, Name: "Linen shirt", Brand: "Acme", Color: "White", DescriptionText: "Light summer shirt", Images: []string{"http://img/101.jpg"}},
		{SKU: 102, Name: "Denim jacket", Brand: "Acme", Color: "Blue", DescriptionText: "Classic denim", Images: []string{"http://img/102.jpg"}},
		{SKU: 103, Name: "Wool coat", Brand: "Nord", Color: "Grey", DescriptionText: "Warm winter coat"},
	}
}

func hitFor(sku int64, score float32) domain.SearchHit {
	return domain.SearchHit{
		ID:      sku,
		Score:   score,
		Payload: domain.Payload{"product_id": sku, "brand": "Acme", "color": "White"},
	}
}

// tinyGIF — минимальный валидный однопиксельный GIF для проверок декодируемости.
func tinyGIF() []byte {
	return []byte{
		'G', 'I', 'F', '8', '9', 'a',
		1, 0, 1, 0, 0x80, 0, 0,
		0, 0, 0, 0xff, 0xff, 0xff,
		0x2c, 0, 0, 0, 0, 1, 0, 1, 0, 0,
		0x02, 0x02, 0x44, 0x01, 0x00,
		0x3b,
	}
}
