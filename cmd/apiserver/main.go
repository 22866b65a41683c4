// API server entry point for ProteinScope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/bootstrap"
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/internal/interfaces/grpc"
	"github.com/turtacn/ProteinScope/internal/interfaces/grpc/services"
	httpserver "github.com/turtacn/ProteinScope/internal/interfaces/http"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/handlers"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/middleware"
)

const (
	defaultConfigPath = "configs/config.yaml"
	shutdownTimeout   = 30 * time.Second
)

// Injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	grpcPort := flag.Int("grpc-port", 0, "gRPC server port (overrides config)")
	flag.Parse()

	cfg, fromFile, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.HTTP.Port = *httpPort
	}
	if *grpcPort > 0 {
		cfg.Server.GRPC.Port = *grpcPort
	}

	logger, err := logging.NewLogger(cfg.Log.Logging())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if fromFile {
		if err := watchLogLevel(*configPath, logger); err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("API server exited with error", logging.Err(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	logger.Info("starting ProteinScope API server",
		logging.String("version", version),
		logging.Int("http_port", cfg.Server.HTTP.Port),
		logging.Bool("grpc_enabled", cfg.Server.GRPC.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := bootstrap.Init(ctx, cfg, logger,
		bootstrap.WithComponent("apiserver"),
		bootstrap.WithVersion(version))
	if err != nil {
		return fmt.Errorf("infrastructure: %w", err)
	}
	defer infra.Close()

	if err := infra.EnsureTopics(ctx); err != nil {
		logger.Warn("kafka topic provisioning failed", logging.Err(err))
	}

	svc := infra.NewService()

	routerCfg := httpserver.RouterConfig{
		Service:          svc,
		HealthHandler:    handlers.NewHealthHandler(version, infra.HealthChecks()...),
		Logger:           logger,
		CORS:             middleware.CORSConfigFrom(cfg.CORS),
		MaxBodySize:      cfg.Server.HTTP.MaxBodySize,
		Metrics:          infra.Metrics,
		MetricsCollector: infra.Collector,
		MetricsPath:      cfg.Metrics.Path,
	}
	if cfg.Server.HTTP.RateLimit.Enabled {
		limiter := middleware.NewTokenBucketLimiterFrom(cfg.Server.HTTP.RateLimit)
		defer limiter.Stop()
		routerCfg.RateLimiter = limiter
	}

	gin.SetMode(cfg.Server.HTTP.Mode)
	httpSrv := httpserver.NewServer(cfg.Server.HTTP, httpserver.NewRouter(routerCfg), logger)

	var grpcSrv *grpc.Server
	if cfg.Server.GRPC.Enabled {
		opts := []grpc.Option{grpc.WithLogger(logger)}
		if infra.Metrics != nil {
			opts = append(opts, grpc.WithMetrics(infra.Metrics))
		}
		grpcSrv, err = grpc.NewServer(cfg.Server.GRPC, opts...)
		if err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		grpcSrv.RegisterService(&services.AnalysisServiceDesc, services.NewAnalysisService(svc, logger))
	}

	errCh := make(chan error, 2)
	go func() {
		if err := httpSrv.Start(); err != nil {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()
	if grpcSrv != nil {
		go func() {
			if err := grpcSrv.Start(); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case runErr = <-errCh:
		logger.Error("server failed", logging.Err(runErr))
	}

	logger.Info("shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}
	if grpcSrv != nil {
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", logging.Err(err))
		}
	}

	logger.Info("servers stopped")
	return runErr
}

// loadConfig reads path when it exists and otherwise falls back to the
// environment and defaults. The flag reports whether the file was used.
func loadConfig(path string) (*config.Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg, err := config.LoadFromEnv()
		return cfg, false, err
	}
	cfg, err := config.LoadFromFile(path)
	return cfg, err == nil, err
}

//Personal.AI order the ending
