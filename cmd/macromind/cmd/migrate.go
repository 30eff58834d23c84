package cmd

import (
	"database/sql"

	"github.com/macromind/backend/internal/config"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/logger"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	cmd.AddCommand(migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations))
	cmd.AddCommand(migrateSubCmd("down", "Roll back the latest migration", db.MigrateDown))
	cmd.AddCommand(migrateSubCmd("status", "Show migration status", db.MigrationStatus))
	return cmd
}

func migrateSubCmd(use, short string, run func(*sql.DB, string, string) error) *cobra.Command {
	return &cobra.Command{
		Use:       use + " <service>",
		Short:     short,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: services,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(args[0])
			logger.Init(cfg.Service, cfg.IsDevelopment(), cfg.SentryDSN)

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()

			return run(database.DB, cfg.DBDriver, cfg.Service)
		},
	}
}
