package qdrant

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// VectorRepo репозиторий для работы с embedding-векторами в Qdrant.
// Коллекция передаётся в каждый вызов: текстовая и визуальная коллекции
// живут в одном инстансе и обслуживаются одним репозиторием.
type VectorRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewVectorRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *VectorRepo {
	return &VectorRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет векторы в указанной коллекции Qdrant.
// Идентификатор точки равен sku товара, поэтому повторная загрузка идемпотентна.
func (q *VectorRepo) Upsert(ctx context.Context, collection string, vectors []domain.Embedding) error {
	points := make([]*qdrant.PointStruct, 0, len(vectors))
	for _, vector := range vectors {
		if uint64(len(vector.Vector)) != q.cfg.VectorSize {
			return e.Wrap(whereami.WhereAmI(), e.ErrVectorSizeInvalid)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(vector.ID)),
			Vectors: qdrant.NewVectors(vector.Vector...),
			Payload: qdrant.NewValueMap(vector.Payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Search выполняет поиск ближайших соседей с точным фильтром по payload.
// Пустой фильтр не накладывает ограничений.
func (q *VectorRepo) Search(ctx context.Context, collection string, vector []float32, limit uint64, filter domain.SearchFilter) ([]domain.SearchHit, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
		Filter:         buildFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]domain.SearchHit, 0, len(points))
	for _, point := range points {
		hits = append(hits, domain.SearchHit{
			ID:      int64(point.GetId().GetNum()),
			Score:   point.GetScore(),
			Payload: payloadToDomain(point.GetPayload()),
		})
	}

	return hits, nil
}

// buildFilter собирает must-условия точного совпадения из непустых полей фильтра.
func buildFilter(filter domain.SearchFilter) *qdrant.Filter {
	if len(filter) == 0 {
		return nil
	}

	conditions := make([]*qdrant.Condition, 0, len(filter))
	for key, value := range filter {
		conditions = append(conditions, qdrant.NewMatch(key, value))
	}

	return &qdrant.Filter{Must: conditions}
}

// payloadToDomain конвертирует payload Qdrant в доменное представление.
func payloadToDomain(payload map[string]*qdrant.Value) domain.Payload {
	if len(payload) == 0 {
		return nil
	}

	result := make(domain.Payload, len(payload))
	for key, value := range payload {
		switch v := value.GetKind().(type) {
		case *qdrant.Value_IntegerValue:
			result[key] = v.IntegerValue
		case *qdrant.Value_StringValue:
			result[key] = v.StringValue
		case *qdrant.Value_DoubleValue:
			result[key] = v.DoubleValue
		case *qdrant.Value_BoolValue:
			result[key] = v.BoolValue
		default:
			result[key] = value.String()
		}
	}

	return result
}
