package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/search-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/search-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/embedder"
	"github.com/DRSN-tech/search-backend/internal/infrastructure/images"
	"github.com/DRSN-tech/search-backend/internal/repository/catalog"
	s3Repo "github.com/DRSN-tech/search-backend/internal/repository/minio"
	qdrantRepo "github.com/DRSN-tech/search-backend/internal/repository/qdrant"
	"github.com/DRSN-tech/search-backend/internal/repository/redis"
	"github.com/DRSN-tech/search-backend/internal/usecase"
	"github.com/DRSN-tech/search-backend/pkg/clients"
	"github.com/DRSN-tech/search-backend/pkg/closer"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// Run поднимает API поиска: каталог в памяти, два векторных индекса,
// embedding-сервис с Redis-кэшем и HTTP-сервер с graceful shutdown.
func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	cl := closer.NewCloser(0)

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
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureCollections(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		logger.Errorf(err, "failed to initialize qdrant collections")
		os.Exit(1)
	}
	qdrantCancel()

	vectorRepo := qdrantRepo.NewVectorRepo(qdrantClient.Client, cfg.Qdrant)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	emb := embedder.NewEmbedder(cfg.Embedder, logger)
	cachedEmb := redis.NewCachedEmbedder(emb, redisClient, cfg.Redis, logger)

	imagesInfra := images.NewResolver(imageRepo, cfg.Ingest, logger)

	searchUC := usecase.NewSearchUC(catalogRepo, vectorRepo, cachedEmb, imagesInfra, cfg.Qdrant, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(searchUC, cfg.Http)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("resource close error: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}
