package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/pkg/e"
)

func newIngestUC(catalog *mockCatalog, vectors *mockVectorRepo, embedder *mockEmbedder,
	images *mockImages, producer EventProducer, batchSize int) *IngestUseCase {
	return NewIngestUC(catalog, vectors, embedder, images, producer,
		testQdrantCfg(), &cfg.IngestCfg{BatchSize: batchSize}, nopLogger{})
}

func TestIngestRun_BatchesAndSummary(t *testing.T) {
	vectors := &mockVectorRepo{}
	embedder := &mockEmbedder{textVec: []float32{1}, imageVec: []float32{2}}
	producer := &mockProducer{}
	uc := newIngestUC(&mockCatalog{products: testProducts()}, vectors, embedder, &mockImages{data: tinyGIF()}, producer, 2)

	summary, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.RunID == "" {
		t.Error("expected non-empty run id")
	}
	if summary.RowsProcessed != 3 || summary.TextEmbedded != 3 || summary.ImagesEmbedded != 3 || summary.RowsSkipped != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// Два товара — полный батч, третий уходит финальным сбросом, по обеим коллекциям
	counts := map[string][]int{}
	for _, call := range vectors.upserts {
		counts[call.collection] = append(counts[call.collection], call.count)
	}
	for _, collection := range []string{"products_text", "products_image"} {
		got := counts[collection]
		if len(got) != 2 || got[0] != 2 || got[1] != 1 {
			t.Errorf("collection %s: expected flushes [2 1], got %v", collection, got)
		}
	}

	var finished int
	for _, event := range producer.events {
		if event.RunID != summary.RunID {
			t.Errorf("event run id %s does not match summary %s", event.RunID, summary.RunID)
		}
		if event.Type == "run_finished" {
			finished++
		}
	}
	if finished != 1 {
		t.Errorf("expected exactly one run_finished event, got %d", finished)
	}
}

func TestIngestRun_TextOnlyWhenImageUnavailable(t *testing.T) {
	vectors := &mockVectorRepo{}
	embedder := &mockEmbedder{textVec: []float32{1}, imageVec: []float32{2}}
	uc := newIngestUC(&mockCatalog{products: testProducts()}, vectors, embedder,
		&mockImages{err: e.ErrImageUnavailable}, nil, 10)

	summary, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.RowsProcessed != 3 || summary.TextEmbedded != 3 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.ImagesEmbedded != 0 {
		t.Errorf("expected no image embeddings, got %d", summary.ImagesEmbedded)
	}
	if embedder.imageCalls != 0 {
		t.Errorf("image embedder must not be called without image bytes")
	}

	for _, call := range vectors.upserts {
		if call.collection == "products_image" {
			t.Errorf("unexpected upsert to image collection: %+v", call)
		}
	}
}

func TestIngestRun_SkipsRowOnTextEmbedError(t *testing.T) {
	embedder := &mockEmbedder{
		imageVec: []float32{2},
		textFn: func(text string) ([]float32, error) {
			if strings.Contains(text, "Denim") {
				return nil, errors.New("model overloaded")
			}
			return []float32{1}, nil
		},
	}
	uc := newIngestUC(&mockCatalog{products: testProducts()}, &mockVectorRepo{}, embedder,
		&mockImages{data: tinyGIF()}, nil, 10)

	summary, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.RowsProcessed != 2 || summary.RowsSkipped != 1 {
		t.Errorf("expected one skipped row, got %+v", summary)
	}
}

func TestIngestRun_UpsertFailureDoesNotStopRun(t *testing.T) {
	vectors := &mockVectorRepo{upsertErr: errors.New("write timeout")}
	producer := &mockProducer{}
	uc := newIngestUC(&mockCatalog{products: testProducts()}, vectors,
		&mockEmbedder{textVec: []float32{1}, imageVec: []float32{2}},
		&mockImages{data: tinyGIF()}, producer, 2)

	summary, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.RowsProcessed != 3 {
		t.Errorf("run must continue past failed flushes: %+v", summary)
	}
	for _, event := range producer.events {
		if event.Type == "batch_flushed" {
			t.Errorf("failed flush must not publish batch_flushed: %+v", event)
		}
	}
}

func TestIngestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := newIngestUC(&mockCatalog{products: testProducts()}, &mockVectorRepo{},
		&mockEmbedder{textVec: []float32{1}}, &mockImages{data: tinyGIF()}, nil, 10)

	summary, err := uc.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.RowsProcessed != 0 {
		t.Errorf("no rows should be processed after cancellation: %+v", summary)
	}
}
