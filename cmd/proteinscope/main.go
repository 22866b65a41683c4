// Command proteinscope is the command line client of ProteinScope.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/bootstrap"
	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := cli.CommandDependencies{
		NewService:  newLocalService,
		NewMigrator: newMigrator,
	}
	// Execute already reported the error on stderr.
	if err := cli.Execute(ctx, deps); err != nil {
		stop()
		os.Exit(1)
	}
}

// newLocalService runs the analysis pipeline in-process over whichever
// backends the configuration enables.
func newLocalService(ctx context.Context, cfg *config.Config, logger logging.Logger) (analysis.Service, func(), error) {
	infra, err := bootstrap.Init(ctx, cfg, logger,
		bootstrap.WithComponent("cli"),
		bootstrap.WithVersion(version),
		bootstrap.WithoutMetrics())
	if err != nil {
		return nil, nil, err
	}
	return infra.NewService(), infra.Close, nil
}

func newMigrator(cfg config.DatabaseConfig, logger logging.Logger) (cli.Migrator, error) {
	conn, err := postgres.NewConnection(cfg, logger.Named("postgres"))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

//Personal.AI order the ending
