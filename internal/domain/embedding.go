package domain

// Payload описывает дополнительную информацию вектора.
// Хранится минимальная проекция товара для фильтрации, полная запись живёт в каталоге.
type Payload map[string]any

// Embedding представляет эмбеддинг одного товара в коллекции.
// ID совпадает с SKU товара: повторный upsert перезаписывает запись.
type Embedding struct {
	ID      int64
	Vector  []float32
	Payload Payload
}

func NewEmbedding(id int64, vector []float32, payload Payload) *Embedding {
	return &Embedding{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

func NewPayload(sku int64, brand string, color string) Payload {
	return Payload{
		"product_id": sku,
		"brand":      brand,
		"color":      color,
	}
}
