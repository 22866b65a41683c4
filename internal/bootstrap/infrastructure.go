// Package bootstrap wires the configured backends into the analysis service.
// Every process entry point (API server, worker, CLI) builds its runtime
// through Init so the three share one composition of the stack.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/domain/scene"
	"github.com/turtacn/ProteinScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/ProteinScope/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/ProteinScope/internal/infrastructure/database/redis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProteinScope/internal/infrastructure/rcsb"
	"github.com/turtacn/ProteinScope/internal/infrastructure/storage/minio"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/handlers"
)

// Infrastructure holds the clients of the enabled backends. A nil field
// means the backend is switched off in configuration.
type Infrastructure struct {
	Config *config.Config
	Logger logging.Logger

	Origin   analysis.Fetcher
	Redis    *redis.Client
	Postgres *postgres.Connection
	MinIO    *minio.MinIOClient
	Producer *kafka.Producer

	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
}

// Option adjusts Init.
type Option func(*initOptions)

type initOptions struct {
	component string
	version   string
	origin    analysis.Fetcher
	metrics   bool
}

// WithComponent labels the build_info gauge.
func WithComponent(name string) Option {
	return func(o *initOptions) { o.component = name }
}

// WithVersion sets the version reported by build_info.
func WithVersion(v string) Option {
	return func(o *initOptions) { o.version = v }
}

// WithOrigin replaces the RCSB download client.
func WithOrigin(f analysis.Fetcher) Option {
	return func(o *initOptions) { o.origin = f }
}

// WithoutMetrics skips the Prometheus registry even when metrics are
// enabled. The CLI has nowhere to expose it.
func WithoutMetrics() Option {
	return func(o *initOptions) { o.metrics = false }
}

// Init connects every enabled backend. On failure the backends opened so far
// are closed before the error is returned.
func Init(ctx context.Context, cfg *config.Config, log logging.Logger, opts ...Option) (*Infrastructure, error) {
	o := initOptions{component: "proteinscope", version: "dev", metrics: true}
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	infra := &Infrastructure{Config: cfg, Logger: log, Origin: o.origin}
	if infra.Origin == nil {
		infra.Origin = rcsb.NewClient(cfg.RCSB, log.Named("rcsb"))
	}

	if o.metrics && cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfigFrom(cfg.Metrics), log)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		infra.Collector = collector
		infra.Metrics = prometheus.NewAppMetrics(collector)
		infra.Metrics.SetBuildInfo(o.version, o.component)
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, log.Named("redis"))
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		infra.Redis = client
	}

	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(cfg.Database, log.Named("postgres"))
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		infra.Postgres = conn
		if cfg.Database.MigrateOnStart {
			if err := conn.MigrateUp(); err != nil {
				infra.Close()
				return nil, fmt.Errorf("postgres: %w", err)
			}
		}
	}

	if cfg.MinIO.Enabled {
		client, err := minio.NewMinIOClient(cfg.MinIO, log.Named("minio"))
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("minio: %w", err)
		}
		infra.MinIO = client
		if err := client.EnsureBucket(ctx); err != nil {
			infra.Close()
			return nil, fmt.Errorf("minio: %w", err)
		}
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), log.Named("kafka"))
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("kafka: %w", err)
		}
		infra.Producer = producer
	}

	log.Info("infrastructure initialized",
		logging.String(logging.FieldComponent, o.component),
		logging.Bool("redis", infra.Redis != nil),
		logging.Bool("postgres", infra.Postgres != nil),
		logging.Bool("minio", infra.MinIO != nil),
		logging.Bool("kafka", infra.Producer != nil),
		logging.Bool("metrics", infra.Metrics != nil))
	return infra, nil
}

// EnsureTopics creates the analysis topics. Brokers with auto-creation
// disabled and no admin rights make this fail; callers decide whether that is
// fatal.
func (i *Infrastructure) EnsureTopics(ctx context.Context) error {
	if !i.Config.Kafka.Enabled {
		return nil
	}
	tm, err := kafka.NewTopicManager(i.Config.Kafka.Brokers, i.Logger.Named("kafka"))
	if err != nil {
		return err
	}
	defer tm.Close()
	return tm.EnsureTopics(ctx, kafka.AnalysisTopics(i.Config.Kafka))
}

// NewService assembles the analysis service over the enabled tiers.
func (i *Infrastructure) NewService() analysis.Service {
	log := i.Logger.Named("analysis")

	var metrics analysis.Metrics
	if i.Metrics != nil {
		metrics = i.Metrics
	}

	sourceOpts := []analysis.SourceOption{analysis.WithFetchTimeout(i.Config.Analysis.Timeout)}
	if i.Redis != nil {
		sourceOpts = append(sourceOpts, analysis.WithCache(redis.NewStructureStore(i.Redis)))
	}
	if i.MinIO != nil {
		sourceOpts = append(sourceOpts, analysis.WithArchive(minio.NewStructureArchive(i.MinIO, i.Logger.Named("archive"))))
	}
	if metrics != nil {
		sourceOpts = append(sourceOpts, analysis.WithSourceMetrics(metrics))
	}
	source := analysis.NewTieredSource(i.Origin, log, sourceOpts...)

	var svcOpts []analysis.Option
	if repo := i.repository(); repo != nil {
		svcOpts = append(svcOpts, analysis.WithRepository(repo))
	}
	if i.Producer != nil {
		pub := kafka.NewAnalysisPublisher(i.Producer, i.Config.Kafka, i.Logger.Named("events"))
		svcOpts = append(svcOpts, analysis.WithEventPublisher(pub), analysis.WithRequestPublisher(pub))
	}
	if metrics != nil {
		svcOpts = append(svcOpts, analysis.WithMetrics(metrics))
	}

	ac := i.Config.Analysis
	return analysis.NewService(source, analysis.Options{
		DefaultMode:        scene.ParseMode(ac.DefaultMode),
		MaxAtoms:           ac.MaxAtoms,
		CovalentThreshold:  ac.CovalentThreshold,
		ProximityThreshold: ac.ProximityThreshold,
		Timeout:            ac.Timeout,
	}, log, svcOpts...)
}

func (i *Infrastructure) repository() analysis.Repository {
	if i.Postgres == nil {
		return nil
	}
	repo := repositories.NewPostgresAnalysisRepo(i.Postgres, i.Logger.Named("records"))
	if i.Redis == nil {
		return repo
	}
	cache := redis.NewRedisCache(i.Redis, i.Logger.Named("cache"),
		redis.WithPrefix(i.Config.Redis.KeyPrefix),
		redis.WithDefaultTTL(i.Config.Redis.DefaultTTL))
	return redis.NewCachedRepository(repo, cache, i.Config.Redis.DefaultTTL, i.Logger.Named("records"))
}

// HealthChecks returns one readiness check per connected backend.
func (i *Infrastructure) HealthChecks() []handlers.HealthChecker {
	var checks []handlers.HealthChecker
	if i.Postgres != nil {
		checks = append(checks, handlers.NewHealthCheck("postgres", i.Postgres.HealthCheck))
	}
	if i.Redis != nil {
		checks = append(checks, handlers.NewHealthCheck("redis", i.Redis.Ping))
	}
	if i.MinIO != nil {
		client := i.MinIO
		checks = append(checks, handlers.NewHealthCheck("minio", func(ctx context.Context) error {
			_, err := client.HealthCheck(ctx)
			return err
		}))
	}
	return checks
}

// Close releases every backend in reverse order of Init.
func (i *Infrastructure) Close() {
	if i.Producer != nil {
		if err := i.Producer.Close(); err != nil {
			i.Logger.Warn("kafka producer close failed", logging.Err(err))
		}
	}
	if i.MinIO != nil {
		if err := i.MinIO.Close(); err != nil {
			i.Logger.Warn("minio close failed", logging.Err(err))
		}
	}
	if i.Postgres != nil {
		if err := i.Postgres.Close(); err != nil {
			i.Logger.Warn("postgres close failed", logging.Err(err))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("redis close failed", logging.Err(err))
		}
	}
}

//Personal.AI order the ending
