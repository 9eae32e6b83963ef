package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// Repo — каталог товаров, загруженный из CSV в память.
// После загрузки данные только читаются, поэтому Repo безопасен для конкурентного доступа.
type Repo struct {
	products []domain.Product
	bySKU    map[int64]int // sku -> индекс в products
	logger   logger.Logger
}

// NewRepo загружает каталог из CSV-файла, указанного в конфигурации.
func NewRepo(cfg *cfg.CatalogCfg, log logger.Logger) (*Repo, error) {
	f, err := os.Open(cfg.CsvPath)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer f.Close()

	repo, err := Load(f, log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	log.Infof("catalog loaded: %d products from %s", len(repo.products), cfg.CsvPath)
	return repo, nil
}

// Load читает каталог из произвольного источника CSV.
// Строки без числового sku пропускаются молча: без ключа запись неиндексируема.
func Load(r io.Reader, log logger.Logger) (*Repo, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // выгрузки бывают рваными, выравниваем по заголовку

	header, err := reader.Read()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["sku"]; !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidSku)
	}

	repo := &Repo{
		bySKU:  make(map[int64]int),
		logger: log,
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Битая строка CSV — дефект данных уровня строки, не всей загрузки
			log.Warnf("catalog: skipping malformed csv row: %v", err)
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		sku, ok := parseSKU(field("sku"))
		if !ok {
			continue
		}

		rawDesc := field("description")
		product := domain.Product{
			SKU:             sku,
			Name:            field("name"),
			Brand:           field("brand"),
			Color:           field("color"),
			Description:     rawDesc,
			DescriptionText: flattenDescription(rawDesc),
			Images:          parseImageList(field("images")),
			PriceCents:      parsePriceToCents(field("price")),
			Currency:        field("currency"),
			URL:             field("url"),
		}

		if idx, exists := repo.bySKU[sku]; exists {
			// Последняя запись с тем же sku выигрывает, как и при upsert в коллекции
			repo.products[idx] = product
			continue
		}

		repo.bySKU[sku] = len(repo.products)
		repo.products = append(repo.products, product)
	}

	return repo, nil
}

// All возвращает товары в порядке каталога.
func (r *Repo) All() []domain.Product {
	return r.products
}

// GetBySKU возвращает товар по идентификатору.
func (r *Repo) GetBySKU(sku int64) (*domain.Product, bool) {
	idx, ok := r.bySKU[sku]
	if !ok {
		return nil, false
	}
	return &r.products[idx], true
}

// GetBySKUs возвращает товары в порядке переданных идентификаторов.
// Отсутствующие в каталоге sku пропускаются, порядок остальных сохраняется.
func (r *Repo) GetBySKUs(skus []int64) []domain.Product {
	result := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		if idx, ok := r.bySKU[sku]; ok {
			result = append(result, r.products[idx])
		}
	}
	return result
}

// GetByBrand возвращает до limit товаров с точным совпадением бренда без учёта регистра.
func (r *Repo) GetByBrand(brand string, limit int) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(brand))
	if needle == "" || limit <= 0 {
		return nil
	}

	result := make([]domain.Product, 0, limit)
	for i := range r.products {
		if strings.ToLower(r.products[i].Brand) == needle {
			result = append(result, r.products[i])
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

// parseSKU разбирает sku, допуская экспортный артефакт вида "123.0".
func parseSKU(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}

	if sku, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sku > 0 {
			return sku, true
		}
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int64(f), int64(f) > 0
}

// parsePriceToCents переводит цену вида "599.99" в центы.
// Невалидная цена — дефект поля, а не строки: возвращается 0.
func parsePriceToCents(s string) int64 {
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.LessThan(decimal.Zero) {
		return 0
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
