package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/adapters/driven/airtable"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch all records from Airtable into the local export file",
	Long: `Fetches every record from the configured Airtable base and table,
following pagination, and writes them to the local export JSON file
that migrate, dump, inspect and skipped read from.

Requires airtable.api_key, airtable.base_id and airtable.table_id in
the config file.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := airtable.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.TableID)
	if cfg.Airtable.APIBase != "" {
		client.SetBaseURL(cfg.Airtable.APIBase)
	}

	cmd.Println("Fetching records from Airtable...")
	records, err := client.FetchAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := flagInput
	if path == "" {
		path = cfg.Paths.ExportFile
	}
	if err := writeRecords(path, records); err != nil {
		return err
	}

	cmd.Printf("Wrote %d records to %s\n", len(records), path)
	return nil
}
