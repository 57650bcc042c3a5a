package cmd

import (
	"fmt"

	"github.com/mautops/remotework-gin/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations to create or update database schema.
This command will:
- Create all required tables if they don't exist
- Update table schemas if needed
- Create indexes for the approval queue and notification lookups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database")
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if sqlDB, _ := db.DB(); sqlDB != nil {
				sqlDB.Close()
			}
		}()

		logger.Info("Running database migrations...")
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Database migrations completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
