package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/adapters/driven/storage/sqlite"
	"github.com/nsventures/dealflow-cli/internal/core/services"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

var flagDataDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the export into the local database",
	Long: `Reads the export JSON file and writes normalised rows to the local
SQLite database. Reference data (users, categories) is reconciled first;
re-running against the same database does not create duplicates.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Database directory (default from config)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, cfg)
	if err != nil {
		return err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.Paths.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}()

	migrator := services.NewMigratorService(
		store.CategoryStore(),
		store.UserStore(),
		store.PipelineStore(),
	)

	cmd.Printf("Migrating %d records into %s...\n", len(records), store.Path())

	summary, err := migrator.Migrate(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}
