package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

var skippedCmd = &cobra.Command{
	Use:   "skipped",
	Short: "List records a migration would skip",
	Long: `Reads the export JSON file and lists every record without a company
name. These records are excluded from migration entirely; the listing
shows which fields they do have so they can be fixed at the source.`,
	RunE: runSkipped,
}

func init() {
	rootCmd.AddCommand(skippedCmd)
}

func runSkipped(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, cfg)
	if err != nil {
		return err
	}

	var skipped []domain.SourceRecord
	for _, rec := range records {
		if strings.TrimSpace(rec.Str(domain.CompanyNameField)) == "" {
			skipped = append(skipped, rec)
		}
	}

	cmd.Printf("%d of %d records would be skipped (missing company name)\n", len(skipped), len(records))
	for _, rec := range skipped {
		cmd.Printf("\n%s (created %s)\n", rec.ID, rec.CreatedTime)
		fields := rec.FieldNames()
		if len(fields) == 0 {
			cmd.Println("  no fields set")
			continue
		}
		cmd.Printf("  fields: %s\n", strings.Join(fields, ", "))
	}
	return nil
}
