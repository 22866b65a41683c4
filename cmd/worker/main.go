// Worker entry point for ProteinScope. It consumes queued analysis requests
// from Kafka, runs them through the analysis service and records the
// results, publishing a completion event per analysis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/bootstrap"
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/handlers"
)

const (
	defaultWorkerConfigPath = "configs/config.yaml"
	defaultHealthAddr       = ":8081"
	defaultHandlerTimeout   = 5 * time.Minute
	shutdownTimeout         = 30 * time.Second
)

// Injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", defaultWorkerConfigPath, "path to configuration file")
	workerCount := flag.Int("workers", 0, "number of concurrent consumers (default: worker.concurrency)")
	healthAddr := flag.String("health-addr", defaultHealthAddr, "listen address of the health and metrics endpoint")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *workerCount > 0 {
		cfg.Worker.Concurrency = *workerCount
	}

	logger, err := logging.NewLogger(cfg.Log.Logging())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *healthAddr, logger); err != nil {
		logger.Error("worker exited with error", logging.Err(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, healthAddr string, logger logging.Logger) error {
	if !cfg.Kafka.Enabled {
		return errors.New("kafka is disabled; the worker has nothing to consume")
	}

	logger.Info("starting ProteinScope worker",
		logging.String("version", version),
		logging.Int("workers", cfg.Worker.Concurrency),
		logging.String("topic", cfg.Kafka.RequestTopic),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := bootstrap.Init(ctx, cfg, logger,
		bootstrap.WithComponent("worker"),
		bootstrap.WithVersion(version))
	if err != nil {
		return fmt.Errorf("infrastructure: %w", err)
	}
	defer infra.Close()

	if err := infra.EnsureTopics(ctx); err != nil {
		logger.Warn("kafka topic provisioning failed", logging.Err(err))
	}

	var recorder messageRecorder
	if infra.Metrics != nil {
		recorder = infra.Metrics
	}
	handler := newRequestHandler(infra.NewService(), defaultHandlerTimeout, recorder, logger.Named("handler"))

	// Consumers share one group, so Kafka spreads partitions across them.
	consumers := make([]*kafka.Consumer, 0, cfg.Worker.Concurrency)
	defer func() {
		for _, c := range consumers {
			if err := c.Close(); err != nil {
				logger.Warn("consumer close failed", logging.Err(err))
			}
		}
	}()
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		c, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(cfg.Kafka), logger.Named("consumer").With(logging.Int("worker_id", i)))
		if err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
		c.Subscribe(cfg.Kafka.RequestTopic, handler)
		consumers = append(consumers, c)
	}

	healthSrv := startHealthServer(healthAddr, infra, logger)

	for _, c := range consumers {
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}
	}
	logger.Info("worker pool started", logging.Int("workers", len(consumers)))

	<-ctx.Done()
	logger.Info("received shutdown signal, waiting for in-flight requests")

	// Close waits for each consume loop to return.
	var wg sync.WaitGroup
	done := make(chan struct{})
	for _, c := range consumers {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Close(); err != nil {
				logger.Warn("consumer close failed", logging.Err(err))
			}
		}(c)
	}
	consumers = nil
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all workers finished")
	case <-time.After(defaultHandlerTimeout + shutdownTimeout):
		logger.Warn("shutdown timeout exceeded, forcing exit")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown error", logging.Err(err))
	}

	logger.Info("ProteinScope worker stopped")
	return nil
}

// startHealthServer serves the probes, backed by the connected backends, and
// the Prometheus registry when metrics are enabled.
func startHealthServer(addr string, infra *bootstrap.Infrastructure, logger logging.Logger) *http.Server {
	r := gin.New()
	r.Use(gin.Recovery())
	handlers.NewHealthHandler(version, infra.HealthChecks()...).RegisterRoutes(r)
	if infra.Collector != nil {
		r.GET(infra.Config.Metrics.Path, gin.WrapH(infra.Collector.Handler()))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("health server listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server error", logging.Err(err))
		}
	}()

	return srv
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.LoadFromFile(path)
}

//Personal.AI order the ending
