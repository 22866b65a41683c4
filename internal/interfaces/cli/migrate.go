package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// MigrationStatus is the JSON form of migrate status.
type MigrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// NewMigrateCmd creates the migrate command with up, down and status.
func NewMigrateCmd(deps CommandDependencies) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the analysis record schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, deps, func(m Migrator, logger logging.Logger) error {
				if err := m.MigrateUp(); err != nil {
					return errors.Wrap(err, errors.ErrCodeDatabaseError, "migrate up failed")
				}
				return reportStatus(cmd, m, "migrations applied")
			})
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return errors.InvalidParam(fmt.Sprintf("steps must be at least 1, got %d", steps))
			}
			return withMigrator(cmd, deps, func(m Migrator, logger logging.Logger) error {
				logger.Warn("Rolling back migrations", logging.Int("steps", steps))
				if err := m.MigrateDown(steps); err != nil {
					return errors.Wrap(err, errors.ErrCodeDatabaseError, "migrate down failed")
				}
				return reportStatus(cmd, m, fmt.Sprintf("rolled back %d migration(s)", steps))
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, deps, func(m Migrator, _ logging.Logger) error {
				return reportStatus(cmd, m, "")
			})
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)
	return migrateCmd
}

func withMigrator(cmd *cobra.Command, deps CommandDependencies, fn func(Migrator, logging.Logger) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if !cliCtx.Config.Database.Enabled {
		return errors.New(errors.ErrCodeFeatureDisabled, "database is not enabled; set database.enabled")
	}
	if deps.NewMigrator == nil {
		return errors.New(errors.ErrCodeFeatureDisabled, "migrations are not available in this build")
	}

	logger := cliCtx.Logger.Named("migrate")
	m, err := deps.NewMigrator(cliCtx.Config.Database, logger)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to open database")
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			logger.Warn("Failed to close database", logging.Err(cerr))
		}
	}()
	return fn(m, logger)
}

func reportStatus(cmd *cobra.Command, m Migrator, done string) error {
	version, dirty, err := m.MigrationStatus()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read migration status")
	}
	status := MigrationStatus{Version: version, Dirty: dirty}
	return PrintResult(cmd, status, func() error {
		if done != "" {
			PrintSuccess(cmd, done)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d", version)
		if dirty {
			fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	})
}

//Personal.AI order the ending
