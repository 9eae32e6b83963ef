package usecase

import "context"

type EmbedderInfra interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, image []byte) ([]float32, error)
}

type ImagesInfra interface {
	Resolve(ctx context.Context, sku int64, imageURL string) ([]byte, error)
}

type EventProducer interface {
	WriteIngestEvent(ctx context.Context, req *IngestEventReq) error
}
