//go:build integration

// Package integration runs the assembled service stack against real
// PostgreSQL and Redis containers. Docker is required.
package integration

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/ProteinScope/internal/bootstrap"
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/ProteinScope/internal/interfaces/http"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/handlers"
	"github.com/turtacn/ProteinScope/internal/testutil"
	"github.com/turtacn/ProteinScope/pkg/client"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Stack is a running API backed by the containers.
type Stack struct {
	Infra  *bootstrap.Infrastructure
	Client *client.Client
	Origin *FixtureOrigin
}

// FixtureOrigin serves the synthetic helix for every id in Known and counts
// downloads.
type FixtureOrigin struct {
	Known map[string]bool
	Calls int
}

func (o *FixtureOrigin) Fetch(_ context.Context, pdbID string) ([]byte, error) {
	o.Calls++
	if !o.Known[pdbID] {
		return nil, errors.New(errors.ErrCodeStructureNotFound, "structure not found").WithDetail(pdbID)
	}
	return testutil.HelixPDB(), nil
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, int) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)
	return host, mapped.Int()
}

// StartStack launches PostgreSQL and Redis, migrates the schema through
// Init and serves the router on an httptest server.
func StartStack(t *testing.T, known ...string) *Stack {
	t.Helper()

	pgHost, pgPort := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "scope",
			"POSTGRES_PASSWORD": "scope",
			"POSTGRES_DB":       "proteinscope_it",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	redisHost, redisPort := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	cfg := config.NewDefaultConfig()
	cfg.Database.Enabled = true
	cfg.Database.Host = pgHost
	cfg.Database.Port = pgPort
	cfg.Database.User = "scope"
	cfg.Database.Password = "scope"
	cfg.Database.DBName = "proteinscope_it"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MigrateOnStart = true
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = fmt.Sprintf("%s:%d", redisHost, redisPort)
	cfg.Metrics.Enabled = true

	origin := &FixtureOrigin{Known: map[string]bool{}}
	for _, id := range known {
		origin.Known[id] = true
	}

	infra, err := bootstrap.Init(context.Background(), cfg, logging.NewNopLogger(),
		bootstrap.WithOrigin(origin), bootstrap.WithComponent("integration"))
	require.NoError(t, err)
	t.Cleanup(infra.Close)

	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(httpserver.NewRouter(httpserver.RouterConfig{
		Service:          infra.NewService(),
		HealthHandler:    handlers.NewHealthHandler("it", infra.HealthChecks()...),
		MaxBodySize:      cfg.Server.HTTP.MaxBodySize,
		Metrics:          infra.Metrics,
		MetricsCollector: infra.Collector,
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewClient(srv.URL, client.WithRetryMax(0))
	require.NoError(t, err)
	return &Stack{Infra: infra, Client: c, Origin: origin}
}

//Personal.AI order the ending
