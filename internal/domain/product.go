package domain

// Product описывает строку каталога товаров.
// Каталог загружается из CSV один раз при старте и далее не изменяется.
type Product struct {
	SKU             int64    `json:"sku"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Color           string   `json:"color"`
	Description     string   `json:"description"`      // исходное значение колонки description
	DescriptionText string   `json:"description_text"` // сплющенный текст секций описания
	Images          []string `json:"images"`           // первая ссылка считается основной
	PriceCents      int64    `json:"price_cents"`      // Цена хранится в центах
	Currency        string   `json:"currency"`
	URL             string   `json:"url"`
}

// CanonicalText возвращает строку для текстового эмбеддинга: имя + очищенное описание.
func (p *Product) CanonicalText() string {
	if p.DescriptionText == "" {
		return p.Name
	}
	return p.Name + ". " + p.DescriptionText
}

// PrimaryImageURL возвращает первую ссылку на изображение или пустую строку.
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
