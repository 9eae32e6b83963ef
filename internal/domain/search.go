package domain

// Modality определяет путь запроса: текст или изображение.
// От модальности зависят выбор коллекции и способ эмбеддинга.
type Modality int

const (
	ModalityText Modality = iota
	ModalityImage
)

func (m Modality) String() string {
	switch m {
	case ModalityImage:
		return "image"
	default:
		return "text"
	}
}

// SearchFilter — требования точного совпадения атрибутов payload.
// Пустые значения отбрасываются при построении: отсутствие поля не накладывает ограничений.
type SearchFilter map[string]string

// NewSearchFilter собирает фильтр только из непустых значений.
func NewSearchFilter(brand, color string) SearchFilter {
	filter := make(SearchFilter)
	if brand != "" {
		filter["brand"] = brand
	}
	if color != "" {
		filter["color"] = color
	}
	return filter
}

// SearchHit — один результат поиска ближайших соседей,
// упорядочен по убыванию косинусной близости.
type SearchHit struct {
	ID      int64
	Score   float32
	Payload Payload
}

// ProductID извлекает product_id из payload.
// Возвращает false, если payload отсутствует или поле не читается как целое.
func (h *SearchHit) ProductID() (int64, bool) {
	if h.Payload == nil {
		return 0, false
	}

	switch v := h.Payload["product_id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
