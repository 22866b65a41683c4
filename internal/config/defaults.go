package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultHTTPHost            = "0.0.0.0"
	DefaultHTTPPort            = 5000
	DefaultHTTPMode            = "release"
	DefaultHTTPReadTimeout     = 30 * time.Second
	DefaultHTTPWriteTimeout    = 60 * time.Second
	DefaultHTTPShutdownTimeout = 15 * time.Second
	DefaultHTTPMaxBodySize     = 64 << 20
	DefaultRateLimitRPS        = 5.0
	DefaultRateLimitBurst      = 20

	DefaultGRPCPort = 9090

	DefaultAnalysisMode       = "backbone"
	DefaultMaxAtoms           = 150000
	DefaultCovalentThreshold  = 2.0
	DefaultProximityThreshold = 3.0
	DefaultAnalysisTimeout    = 60 * time.Second

	DefaultRCSBBaseURL   = "https://files.rcsb.org/download"
	DefaultRCSBTimeout   = 30 * time.Second
	DefaultRCSBMaxBytes  = 64 << 20
	DefaultRCSBUserAgent = "ProteinScope/1.0"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisTimeout   = 3 * time.Second
	DefaultRedisTTL       = 24 * time.Hour
	DefaultRedisKeyPrefix = "proteinscope:"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "proteinscope"
	DefaultDBSSLMode  = "disable"
	DefaultDBMaxConns = 10

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "proteinscope-structures"

	DefaultKafkaBroker         = "localhost:9092"
	DefaultKafkaGroupID        = "proteinscope-worker"
	DefaultKafkaRequestTopic   = "proteinscope.analysis.requested"
	DefaultKafkaCompletedTopic = "proteinscope.analysis.completed"
	DefaultKafkaDeadLetter     = "proteinscope.analysis.dlq"
	DefaultKafkaMaxRetries     = 3
	DefaultKafkaBatchSize      = 100
	DefaultKafkaBatchTimeout   = 50 * time.Millisecond

	DefaultWorkerConcurrency = 4

	DefaultMetricsNamespace = "proteinscope"
	DefaultMetricsPath      = "/metrics"

	DefaultCORSMaxAge = 43200

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with its default. Fields
// that are already set are left unchanged so explicit configuration wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	setString(&cfg.Server.HTTP.Host, DefaultHTTPHost)
	setInt(&cfg.Server.HTTP.Port, DefaultHTTPPort)
	setString(&cfg.Server.HTTP.Mode, DefaultHTTPMode)
	setDuration(&cfg.Server.HTTP.ReadTimeout, DefaultHTTPReadTimeout)
	setDuration(&cfg.Server.HTTP.WriteTimeout, DefaultHTTPWriteTimeout)
	setDuration(&cfg.Server.HTTP.ShutdownTimeout, DefaultHTTPShutdownTimeout)
	if cfg.Server.HTTP.MaxBodySize == 0 {
		cfg.Server.HTTP.MaxBodySize = DefaultHTTPMaxBodySize
	}
	setFloat(&cfg.Server.HTTP.RateLimit.RequestsPerSecond, DefaultRateLimitRPS)
	setInt(&cfg.Server.HTTP.RateLimit.Burst, DefaultRateLimitBurst)
	setInt(&cfg.Server.GRPC.Port, DefaultGRPCPort)

	// ── Analysis ──────────────────────────────────────────────────────────────
	setString(&cfg.Analysis.DefaultMode, DefaultAnalysisMode)
	setInt(&cfg.Analysis.MaxAtoms, DefaultMaxAtoms)
	setFloat(&cfg.Analysis.CovalentThreshold, DefaultCovalentThreshold)
	setFloat(&cfg.Analysis.ProximityThreshold, DefaultProximityThreshold)
	setDuration(&cfg.Analysis.Timeout, DefaultAnalysisTimeout)

	// ── RCSB ──────────────────────────────────────────────────────────────────
	setString(&cfg.RCSB.BaseURL, DefaultRCSBBaseURL)
	setDuration(&cfg.RCSB.Timeout, DefaultRCSBTimeout)
	if cfg.RCSB.MaxBytes == 0 {
		cfg.RCSB.MaxBytes = DefaultRCSBMaxBytes
	}
	setString(&cfg.RCSB.UserAgent, DefaultRCSBUserAgent)

	// ── Redis ─────────────────────────────────────────────────────────────────
	setString(&cfg.Redis.Addr, DefaultRedisAddr)
	setInt(&cfg.Redis.PoolSize, DefaultRedisPoolSize)
	setDuration(&cfg.Redis.DialTimeout, DefaultRedisTimeout)
	setDuration(&cfg.Redis.ReadTimeout, DefaultRedisTimeout)
	setDuration(&cfg.Redis.WriteTimeout, DefaultRedisTimeout)
	setDuration(&cfg.Redis.DefaultTTL, DefaultRedisTTL)
	setString(&cfg.Redis.KeyPrefix, DefaultRedisKeyPrefix)

	// ── Database ──────────────────────────────────────────────────────────────
	setString(&cfg.Database.Host, DefaultDBHost)
	setInt(&cfg.Database.Port, DefaultDBPort)
	setString(&cfg.Database.DBName, DefaultDBName)
	setString(&cfg.Database.SSLMode, DefaultDBSSLMode)
	setInt(&cfg.Database.MaxConns, DefaultDBMaxConns)

	// ── MinIO ─────────────────────────────────────────────────────────────────
	setString(&cfg.MinIO.Endpoint, DefaultMinIOEndpoint)
	setString(&cfg.MinIO.Bucket, DefaultMinIOBucket)

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	setString(&cfg.Kafka.GroupID, DefaultKafkaGroupID)
	setString(&cfg.Kafka.RequestTopic, DefaultKafkaRequestTopic)
	setString(&cfg.Kafka.CompletedTopic, DefaultKafkaCompletedTopic)
	setString(&cfg.Kafka.DeadLetterTopic, DefaultKafkaDeadLetter)
	setInt(&cfg.Kafka.MaxRetries, DefaultKafkaMaxRetries)
	setInt(&cfg.Kafka.BatchSize, DefaultKafkaBatchSize)
	setDuration(&cfg.Kafka.BatchTimeout, DefaultKafkaBatchTimeout)

	// ── Worker / Metrics / CORS / Log ────────────────────────────────────────
	setInt(&cfg.Worker.Concurrency, DefaultWorkerConcurrency)
	setString(&cfg.Metrics.Namespace, DefaultMetricsNamespace)
	setString(&cfg.Metrics.Path, DefaultMetricsPath)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	setInt(&cfg.CORS.MaxAge, DefaultCORSMaxAge)
	setString(&cfg.Log.Level, DefaultLogLevel)
	setString(&cfg.Log.Format, DefaultLogFormat)
}

// NewDefaultConfig returns a Config with every default applied. Optional
// backends (Redis, PostgreSQL, MinIO, Kafka) stay disabled.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func setFloat(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}

func setDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}

//Personal.AI order the ending
