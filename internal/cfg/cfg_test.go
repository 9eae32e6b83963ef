package cfg

import (
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any) {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nopLogger{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Http.Port)
	}
	if cfg.Qdrant.VectorSize != 512 {
		t.Errorf("expected vector size 512, got %d", cfg.Qdrant.VectorSize)
	}
	if cfg.Qdrant.TextCollectionName != "products_text" || cfg.Qdrant.ImageCollectionName != "products_image" {
		t.Errorf("unexpected collection names: %s, %s", cfg.Qdrant.TextCollectionName, cfg.Qdrant.ImageCollectionName)
	}
	if cfg.Embedder.Model != "clip-ViT-B-32" {
		t.Errorf("unexpected embedder model: %s", cfg.Embedder.Model)
	}
	if cfg.Ingest.BatchSize != 50 {
		t.Errorf("expected batch size 50, got %d", cfg.Ingest.BatchSize)
	}
	if cfg.Kafka.Enabled {
		t.Error("kafka must be disabled without KAFKA_BROKERS")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("VECTOR_SIZE", "768")
	t.Setenv("EMBEDDER_CALL_TIMEOUT", "45s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "catalog-ingest")

	cfg, err := Load(nopLogger{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Http.Port)
	}
	if cfg.Qdrant.VectorSize != 768 {
		t.Errorf("expected vector size 768, got %d", cfg.Qdrant.VectorSize)
	}
	if cfg.Embedder.CallTimeout != 45*time.Second {
		t.Errorf("expected 45s call timeout, got %v", cfg.Embedder.CallTimeout)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Topic != "catalog-ingest" {
		t.Errorf("unexpected kafka config: %+v", cfg.Kafka)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad vector size", "VECTOR_SIZE", "not-a-number"},
		{"bad qdrant port", "QDRANT_GRPC_PORT", "abc"},
		{"bad timeout", "HTTP_READ_TIMEOUT", "five seconds"},
		{"kafka brokers without topic", "KAFKA_BROKERS", "broker:9092"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(nopLogger{}); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_ZeroBatchSizeRejected(t *testing.T) {
	t.Setenv("INGEST_BATCH_SIZE", "0")

	if _, err := Load(nopLogger{}); err == nil {
		t.Error("expected error for zero batch size")
	}
}
