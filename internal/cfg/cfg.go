package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/search-backend/pkg/e"
	"github.com/DRSN-tech/search-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http     *HTTPConfig
	Qdrant   *QdrantCfg
	Redis    *RedisCfg
	Minio    *MinIOCfg
	Embedder *EmbedderCfg
	Catalog  *CatalogCfg
	Ingest   *IngestCfg
	Kafka    *KafkaCfg
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string // CORS-источники фронтенда
}

type QdrantCfg struct {
	Host                string
	Port                int
	ApiKey              string
	UseTLS              bool
	VectorSize          uint64 // размерность общей CLIP-модели, одна на обе коллекции
	TextCollectionName  string
	ImageCollectionName string
}

type RedisCfg struct {
	Addr         string
	Password     string
	User         string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	Timeout      time.Duration
	EmbeddingTTL time.Duration // TTL кэша векторов запросов
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет с изображениями товаров ({sku}.jpg)
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type EmbedderCfg struct {
	BaseURL     string // OpenAI-совместимый endpoint CLIP-сервиса
	ApiKey      string
	Model       string
	MaxTextLen  int // обрезка канонического текста перед эмбеддингом
	MaxRetries  int
	CallTimeout time.Duration
}

type CatalogCfg struct {
	CsvPath string
}

type IngestCfg struct {
	BatchSize       int
	ImageTimeout    time.Duration // таймаут скачивания изображения по URL
	CacheDownloaded bool          // сохранять скачанные изображения обратно в MinIO
}

type KafkaCfg struct {
	Enabled     bool
	Topic       string
	Brokers     []string
	NetworkMode string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	embedder, err := loadEmbedderCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ingest, err := loadIngestCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Qdrant:   qdrant,
		Redis:    redis,
		Minio:    minio,
		Embedder: embedder,
		Catalog:  loadCatalogCfg(),
		Ingest:   ingest,
		Kafka:    kafka,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8000"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultOrigins      = "http://localhost:5173"
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:           getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		AllowedOrigins: strings.Split(getEnvOrDefault("CORS_ALLOWED_ORIGINS", defaultOrigins), ","),
	}, nil
}

func loadQdrantCfg(log logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort      = "6334"
		defaultUseTLS              = false
		defaultVectorSize          = "512"
		defaultTextCollectionName  = "products_text"
		defaultImageCollectionName = "products_image"
	)

	strPort := getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	port, err := strconv.Atoi(strPort)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		log.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	strVectorSize := getEnvOrDefault("VECTOR_SIZE", defaultVectorSize)
	vectorSize, err := strconv.ParseUint(strVectorSize, 10, 64)
	if err != nil {
		log.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:                getEnvOrDefault("QDRANT_HOST", "localhost"),
		Port:                port,
		ApiKey:              getEnv("QDRANT__SERVICE__API_KEY"),
		UseTLS:              useTLS,
		VectorSize:          vectorSize,
		TextCollectionName:  getEnvOrDefault("TEXT_COLLECTION_NAME", defaultTextCollectionName),
		ImageCollectionName: getEnvOrDefault("IMAGE_COLLECTION_NAME", defaultImageCollectionName),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultEmbeddingTTL = 15 * time.Minute
	)

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	embeddingTTL, err := parseDurationEnv("EMBEDDING_CACHE_TTL", defaultEmbeddingTTL)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_CACHE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:         getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:     getEnv("REDIS_PASSWORD"),
		User:         getEnv("REDIS_USER"),
		DB:           db,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		Timeout:      timeout,
		EmbeddingTTL: embeddingTTL,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
		defaultBucket   = "product-images"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadEmbedderCfg(log logger.Logger) (*EmbedderCfg, error) {
	const (
		defaultBaseURL     = "http://localhost:7997/v1"
		defaultModel       = "clip-ViT-B-32"
		defaultMaxTextLen  = 300 // CLIP режет текст по токенам, длиннее смысла нет
		defaultMaxRetries  = 3
		defaultCallTimeout = 30 * time.Second
	)

	maxTextLen, err := parseIntEnv("EMBEDDER_MAX_TEXT_LEN", defaultMaxTextLen)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDER_MAX_TEXT_LEN")
		return nil, err
	}

	maxRetries, err := parseIntEnv("EMBEDDER_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDER_MAX_RETRIES")
		return nil, err
	}

	callTimeout, err := parseDurationEnv("EMBEDDER_CALL_TIMEOUT", defaultCallTimeout)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDER_CALL_TIMEOUT")
		return nil, err
	}

	return &EmbedderCfg{
		BaseURL:     getEnvOrDefault("EMBEDDER_BASE_URL", defaultBaseURL),
		ApiKey:      getEnv("EMBEDDER_API_KEY"),
		Model:       getEnvOrDefault("EMBEDDER_MODEL", defaultModel),
		MaxTextLen:  maxTextLen,
		MaxRetries:  maxRetries,
		CallTimeout: callTimeout,
	}, nil
}

func loadCatalogCfg() *CatalogCfg {
	const defaultCsvPath = "data/asos_products.csv"

	return &CatalogCfg{
		CsvPath: getEnvOrDefault("CATALOG_CSV_PATH", defaultCsvPath),
	}
}

func loadIngestCfg() (*IngestCfg, error) {
	const (
		defaultBatchSize       = 50
		defaultImageTimeout    = 5 * time.Second
		defaultCacheDownloaded = true
	)

	batchSize, err := parseIntEnv("INGEST_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, e.Wrap("INGEST_BATCH_SIZE", err)
	}
	if batchSize <= 0 {
		return nil, e.Wrap("INGEST_BATCH_SIZE", e.ErrIncorrectEnvVariable)
	}

	imageTimeout, err := parseDurationEnv("INGEST_IMAGE_TIMEOUT", defaultImageTimeout)
	if err != nil {
		return nil, e.Wrap("INGEST_IMAGE_TIMEOUT", err)
	}

	cacheDownloaded, err := strconv.ParseBool(getEnvOrDefault("INGEST_CACHE_DOWNLOADED", strconv.FormatBool(defaultCacheDownloaded)))
	if err != nil {
		return nil, e.Wrap("INGEST_CACHE_DOWNLOADED", err)
	}

	return &IngestCfg{
		BatchSize:       batchSize,
		ImageTimeout:    imageTimeout,
		CacheDownloaded: cacheDownloaded,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const defaultNetworkMode = "tcp"

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		// Кафка опциональна: без брокеров события инжеста не публикуются
		return &KafkaCfg{Enabled: false}, nil
	}

	topic := getEnv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required when KAFKA_BROKERS is set")
	}

	return &KafkaCfg{
		Enabled:     true,
		Brokers:     strings.Split(brokerStr, ","),
		Topic:       topic,
		NetworkMode: getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
