// Package cli implements the cobra command surface. Commands resolve
// their collaborators from the loaded configuration at run time, so
// tests can point them at temp files via flags.
package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	configfile "github.com/nsventures/dealflow-cli/internal/adapters/driven/config/file"
	exportfile "github.com/nsventures/dealflow-cli/internal/adapters/driven/export/file"
	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
	flagInput   string
)

var rootCmd = &cobra.Command{
	Use:   "dealflow",
	Short: "Migrate dealflow pipeline exports into a relational store",
	Long: `dealflow converts an Airtable JSON export of the investment pipeline
into normalised relational rows.

Run 'inspect' first to review the data, then either 'migrate' (writes
directly to the local database) or 'dump' (generates a SQL batch script).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.dealflow/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Export JSON file (default from config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path and loads it.
func loadConfig() (*configfile.Config, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}
	return configfile.Load(path)
}

// loadRecords reads the export file named by --input or the config.
func loadRecords(cmd *cobra.Command, cfg *configfile.Config) ([]domain.SourceRecord, error) {
	path := flagInput
	if path == "" {
		path = cfg.Paths.ExportFile
	}

	records, err := exportfile.NewReader(path).ReadAll(cmd.Context())
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d records from %s", len(records), path)
	return records, nil
}

// writeRecords saves fetched records as the JSON dump the other commands read.
func writeRecords(path string, records []domain.SourceRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
