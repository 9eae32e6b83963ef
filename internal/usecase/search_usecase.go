package usecase

import (
	"bytes"
	"context"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

const (
	// DefaultTopK — размер выдачи поиска по умолчанию.
	DefaultTopK = 12
	// brandListLimit — максимум записей в выдаче по бренду.
	brandListLimit = 4
)

// SearchUseCase реализует диспетчер запросов: одна модальность на запрос,
// выбор коллекции по модальности, сверка результатов с каталогом.
type SearchUseCase struct {
	catalogRepo CatalogRepository
	vectorRepo  VectorRepository
	embedder    EmbedderInfra
	imagesInfra ImagesInfra
	qdrantCfg   *cfg.QdrantCfg
	logger      logger.Logger
}

func NewSearchUC(
	catalogRepo CatalogRepository,
	vectorRepo VectorRepository,
	embedder EmbedderInfra,
	imagesInfra ImagesInfra,
	qdrantCfg *cfg.QdrantCfg,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		catalogRepo: catalogRepo,
		vectorRepo:  vectorRepo,
		embedder:    embedder,
		imagesInfra: imagesInfra,
		qdrantCfg:   qdrantCfg,
		logger:      logger,
	}
}

// SearchProducts обрабатывает поисковый запрос одной модальности с фильтрами.
// Валидация завершается до любых обращений к зависимостям.
func (s *SearchUseCase) SearchProducts(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchProducts"

	modality, err := s.selectModality(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.TopK < 0 {
		return nil, e.Wrap(op, e.ErrInvalidTopK)
	}
	if req.TopK == 0 {
		return NewSearchRes([]ProductRecord{}), nil
	}

	filter := domain.NewSearchFilter(req.Brand, req.Color)

	products, err := s.similarityQuery(ctx, modality, req.Text, req.Image, req.TopK, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSearchRes(products), nil
}

// GetProduct возвращает запись каталога по sku.
func (s *SearchUseCase) GetProduct(ctx context.Context, sku int64) (*ProductRecord, error) {
	const op = "SearchUseCase.GetProduct"

	if sku <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidSku)
	}

	product, ok := s.catalogRepo.GetBySKU(sku)
	if !ok {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	record := NewProductRecord(product)
	return &record, nil
}

// GetProductsByBrand возвращает до 4 товаров бренда без обращения к векторным коллекциям.
func (s *SearchUseCase) GetProductsByBrand(ctx context.Context, req *BrandReq) ([]ProductRecord, error) {
	const op = "SearchUseCase.GetProductsByBrand"

	if req == nil || req.Brand == "" {
		return nil, e.Wrap(op, e.ErrMissingBrand)
	}

	return NewProductRecords(s.catalogRepo.GetByBrand(req.Brand, brandListLimit)), nil
}

// GetPreference строит две независимые выдачи рекомендаций по опорному товару:
// по его изображению в коллекции изображений и по его тексту в текстовой коллекции.
func (s *SearchUseCase) GetPreference(ctx context.Context, req *PreferenceReq) (*PreferenceRes, error) {
	const op = "SearchUseCase.GetPreference"

	if req == nil || req.SKU <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidSku)
	}

	seed, ok := s.catalogRepo.GetBySKU(req.SKU)
	if !ok {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	imageData, err := s.imagesInfra.Resolve(ctx, seed.SKU, seed.PrimaryImageURL())
	if err != nil {
		return nil, e.Wrap(op, e.ErrInvalidImage)
	}

	byImage, err := s.similarityQuery(ctx, domain.ModalityImage, "", imageData, DefaultTopK, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	byText, err := s.similarityQuery(ctx, domain.ModalityText, seed.CanonicalText(), nil, DefaultTopK, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &PreferenceRes{Image: byImage, Text: byText}, nil
}

// selectModality выбирает путь запроса: ровно одна модальность на запрос.
func (s *SearchUseCase) selectModality(req *SearchReq) (domain.Modality, error) {
	hasText := req != nil && req.Text != ""
	hasImage := req != nil && len(req.Image) > 0

	switch {
	case hasText && hasImage:
		return 0, e.ErrBothQueries
	case hasImage:
		if !isDecodableImage(req.Image) {
			return 0, e.ErrInvalidImage
		}
		return domain.ModalityImage, nil
	case hasText:
		return domain.ModalityText, nil
	default:
		return 0, e.ErrMissingQuery
	}
}

// similarityQuery — единая операция поиска по близости, параметризованная модальностью:
// эмбеддинг запроса, поиск в соответствующей коллекции, сверка sku с каталогом
// с сохранением ранжированного порядка.
func (s *SearchUseCase) similarityQuery(
	ctx context.Context,
	modality domain.Modality,
	text string,
	imageData []byte,
	topK int,
	filter domain.SearchFilter,
) ([]ProductRecord, error) {
	var (
		vector []float32
		err    error
	)

	switch modality {
	case domain.ModalityImage:
		vector, err = s.embedder.EmbedImage(ctx, imageData)
	default:
		vector, err = s.embedder.EmbedText(ctx, text)
	}
	if err != nil {
		return nil, e.Wrap("embed query: "+err.Error(), e.ErrSearchFailed)
	}

	hits, err := s.vectorRepo.Search(ctx, s.collectionFor(modality), vector, uint64(topK), filter)
	if err != nil {
		return nil, e.Wrap("vector search: "+err.Error(), e.ErrSearchFailed)
	}

	return NewProductRecords(s.catalogRepo.GetBySKUs(s.extractSKUs(hits))), nil
}

// collectionFor возвращает имя коллекции для модальности.
func (s *SearchUseCase) collectionFor(modality domain.Modality) string {
	if modality == domain.ModalityImage {
		return s.qdrantCfg.ImageCollectionName
	}
	return s.qdrantCfg.TextCollectionName
}

// extractSKUs извлекает sku из результатов, сохраняя порядок ранжирования.
// Результаты без читаемого product_id в payload пропускаются.
func (s *SearchUseCase) extractSKUs(hits []domain.SearchHit) []int64 {
	skus := make([]int64, 0, len(hits))
	for i := range hits {
		sku, ok := hits[i].ProductID()
		if !ok {
			s.logger.Warnf("search hit %d has no resolvable product_id in payload, skipping", hits[i].ID)
			continue
		}
		skus = append(skus, sku)
	}
	return skus
}

// isDecodableImage проверяет, что байты читаются как поддерживаемое изображение.
func isDecodableImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
