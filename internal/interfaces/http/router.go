// Package http assembles the gin engine and HTTP server of the ProteinScope API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/handlers"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/middleware"
	"github.com/turtacn/ProteinScope/pkg/errors"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree. Nil optional fields switch the matching feature off.
type RouterConfig struct {
	Service       analysis.Service
	HealthHandler *handlers.HealthHandler

	Logger      logging.Logger
	CORS        middleware.CORSConfig
	MaxBodySize int64

	// RateLimiter throttles the routes that may reach the structure
	// download service.
	RateLimiter middleware.RateLimiter

	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics, cfg.Metrics.HTTPActiveRequests.WithLabelValues(), metricsPath, "/healthz", "/readyz"))
	}
	r.Use(middleware.BodyLimit(cfg.MaxBodySize))

	r.NoRoute(func(c *gin.Context) {
		writeEnvelopeError(c, http.StatusNotFound, errors.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		writeEnvelopeError(c, http.StatusMethodNotAllowed, errors.ErrCodeBadRequest, "method not allowed")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsCollector != nil {
		r.GET(metricsPath, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	if cfg.Service != nil {
		var limited []gin.HandlerFunc
		if cfg.RateLimiter != nil {
			limited = append(limited, middleware.RateLimit(cfg.RateLimiter))
		}
		h := handlers.NewAnalysisHandler(cfg.Service)
		h.RegisterRoutes(r.Group("/api/v1"), limited...)
		h.RegisterLegacyRoutes(r, limited...)
	}

	return r
}

func writeEnvelopeError(c *gin.Context, status int, code errors.ErrorCode, message string) {
	resp := common.NewErrorResponse(code.String(), message)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

//Personal.AI order the ending
