package usecase

import (
	"context"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/domain"
	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/google/uuid"
)

// IngestUseCase — пакетная загрузка каталога в обе векторные коллекции.
// Дефект отдельной строки никогда не прерывает прогон: строка логируется
// и пропускается. Повторный прогон идемпотентен за счёт upsert по sku.
type IngestUseCase struct {
	catalogRepo CatalogRepository
	vectorRepo  VectorRepository
	embedder    EmbedderInfra
	imagesInfra ImagesInfra
	producer    EventProducer // nil, если шина событий не настроена
	qdrantCfg   *cfg.QdrantCfg
	batchSize   int
	logger      logger.Logger
}

func NewIngestUC(
	catalogRepo CatalogRepository,
	vectorRepo VectorRepository,
	embedder EmbedderInfra,
	imagesInfra ImagesInfra,
	producer EventProducer,
	qdrantCfg *cfg.QdrantCfg,
	ingestCfg *cfg.IngestCfg,
	logger logger.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		catalogRepo: catalogRepo,
		vectorRepo:  vectorRepo,
		embedder:    embedder,
		imagesInfra: imagesInfra,
		producer:    producer,
		qdrantCfg:   qdrantCfg,
		batchSize:   ingestCfg.BatchSize,
		logger:      logger,
	}
}

// Run обрабатывает каталог в исходном порядке строк: текстовый эмбеддинг для
// каждой строки, эмбеддинг изображения при его наличии, батчевый upsert в
// коллекции по достижении порога и финальный сброс остатков.
func (i *IngestUseCase) Run(ctx context.Context) (*IngestSummary, error) {
	const op = "IngestUseCase.Run"

	runID := uuid.NewString()
	products := i.catalogRepo.All()
	i.logger.Infof("ingest %s: start processing %d products, batch size %d", runID, len(products), i.batchSize)

	summary := &IngestSummary{RunID: runID}
	textBatch := make([]domain.Embedding, 0, i.batchSize)
	imageBatch := make([]domain.Embedding, 0, i.batchSize)

	for idx := range products {
		if err := ctx.Err(); err != nil {
			return summary, e.Wrap(op, err)
		}

		row := &products[idx]
		textEmb, imageEmb, err := i.processRow(ctx, row)
		if err != nil {
			summary.RowsSkipped++
			i.logger.Warnf("ingest %s: skipping product %d: %v", runID, row.SKU, err)
			continue
		}

		summary.RowsProcessed++
		if textEmb != nil {
			summary.TextEmbedded++
			textBatch = append(textBatch, *textEmb)
		}
		if imageEmb != nil {
			summary.ImagesEmbedded++
			imageBatch = append(imageBatch, *imageEmb)
		}

		if len(textBatch) >= i.batchSize {
			textBatch = i.flush(ctx, runID, i.qdrantCfg.TextCollectionName, textBatch)
		}
		if len(imageBatch) >= i.batchSize {
			imageBatch = i.flush(ctx, runID, i.qdrantCfg.ImageCollectionName, imageBatch)
			i.logger.Infof("ingest %s: %d images embedded so far", runID, summary.ImagesEmbedded)
		}
	}

	// Сброс неполных батчей после последней строки
	if len(textBatch) > 0 {
		i.flush(ctx, runID, i.qdrantCfg.TextCollectionName, textBatch)
	}
	if len(imageBatch) > 0 {
		i.flush(ctx, runID, i.qdrantCfg.ImageCollectionName, imageBatch)
	}

	i.publishEvent(ctx, NewRunFinishedEvent(runID, summary))
	i.logger.Infof("ingest %s: finished, rows=%d text=%d images=%d skipped=%d",
		runID, summary.RowsProcessed, summary.TextEmbedded, summary.ImagesEmbedded, summary.RowsSkipped)

	return summary, nil
}

// processRow готовит эмбеддинги одной строки каталога.
// Ошибка текстового эмбеддинга пропускает строку целиком; отсутствие или
// нечитаемость изображения оставляет строку только в текстовой коллекции.
func (i *IngestUseCase) processRow(ctx context.Context, row *domain.Product) (*domain.Embedding, *domain.Embedding, error) {
	payload := domain.NewPayload(row.SKU, row.Brand, row.Color)

	textVector, err := i.embedder.EmbedText(ctx, row.CanonicalText())
	if err != nil {
		return nil, nil, e.Wrap("embed text", err)
	}
	textEmb := domain.NewEmbedding(row.SKU, textVector, payload)

	imageData, err := i.imagesInfra.Resolve(ctx, row.SKU, row.PrimaryImageURL())
	if err != nil {
		// Строка без изображения остаётся валидной: только текстовая запись
		return textEmb, nil, nil
	}

	imageVector, err := i.embedder.EmbedImage(ctx, imageData)
	if err != nil {
		i.logger.Warnf("ingest: image embedding failed for product %d: %v", row.SKU, err)
		return textEmb, nil, nil
	}

	return textEmb, domain.NewEmbedding(row.SKU, imageVector, payload), nil
}

// flush выгружает батч в коллекцию и возвращает обнулённый срез.
// Ошибка upsert не останавливает прогон: батч теряется, загрузка продолжается.
func (i *IngestUseCase) flush(ctx context.Context, runID, collection string, batch []domain.Embedding) []domain.Embedding {
	if err := i.vectorRepo.Upsert(ctx, collection, batch); err != nil {
		i.logger.Warnf("ingest %s: upsert of %d vectors to %s failed: %v", runID, len(batch), collection, err)
	} else {
		i.publishEvent(ctx, NewBatchFlushedEvent(runID, collection, len(batch)))
	}

	return batch[:0]
}

// publishEvent отправляет событие в шину, если она настроена. Ошибки только логируются.
func (i *IngestUseCase) publishEvent(ctx context.Context, event *IngestEventReq) {
	if i.producer == nil {
		return
	}

	if err := i.producer.WriteIngestEvent(ctx, event); err != nil {
		i.logger.Warnf("ingest %s: failed to publish %s event: %v", event.RunID, event.Type, err)
	}
}
