package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/search-backend/internal/cfg"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/embedder"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/images"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/search-backend/internal/repository/catalog"
	s3Repo "github.com/DRSN-tech/search-backend/internal/repository/minio"
	qdrantRepo "github.com/DRSN-tech/search-backend/internal/repository/qdrant"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/clients"
	"github.com/DRSN-tech/search-backend/pkg/logger"
)

// RunIngest выполняет разовый прогон инжеста каталога: читает CSV,
// считает эмбеддинги и наполняет обе коллекции Qdrant. Прерывается по SIGINT/SIGTERM.
func RunIngest() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepo(cfg.Catalog, logger)
	if err != nil {
		logger.Errorf(err, "failed to load catalog")
		os.Exit(1)
	}

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		logger.Errorf(err, "failed to initialize qdrant")
		os.Exit(1)
	}
	defer qdrantClient.Client.Close()

	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureCollections(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		logger.Errorf(err, "failed to initialize qdrant collections")
		os.Exit(1)
	}
	qdrantCancel()

	vectorRepo := qdrantRepo.NewVectorRepo(qdrantClient.Client, cfg.Qdrant)
	emb := embedder.NewEmbedder(cfg.Embedder, logger)
	imagesInfra := images.NewResolver(imageRepo, cfg.Ingest, logger)

	// Кафка опциональна: без брокеров события прогона не публикуются
	var producer usecase.EventProducer
	if cfg.Kafka.Enabled {
		kafkaProducer := kafka.NewProducer(logger, cfg.Kafka)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	ingestUC := usecase.NewIngestUC(catalogRepo, vectorRepo, emb, imagesInfra, producer, cfg.Qdrant, cfg.Ingest, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := ingestUC.Run(ctx)
	if err != nil {
		logger.Errorf(err, "ingest run failed")
		os.Exit(1)
	}

	logger.Infof("ingest run %s finished: %d rows, %d text vectors, %d image vectors, %d skipped",
		summary.RunID, summary.RowsProcessed, summary.TextEmbedded, summary.ImagesEmbedded, summary.RowsSkipped)
}
