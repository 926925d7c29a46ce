package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/services"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Analyse the export without writing anything",
	Long: `Reads the export JSON file and reports what a migration would find:
field inventory, enum values (flagging values outside the allowed sets),
category and user inventories, and attachment counts. Nothing is
written; use this to decide whether the data is ready to migrate.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, cfg)
	if err != nil {
		return err
	}

	report := services.NewInspectorService().Inspect(records)

	cmd.Printf("Records:               %d\n", report.TotalRecords)
	cmd.Printf("Missing company names: %d\n", report.MissingCompanyNames)
	cmd.Printf("Attachments:           %d\n", report.AttachmentCount)

	cmd.Printf("\nFields (%d):\n", len(report.FieldNames))
	for _, name := range report.FieldNames {
		cmd.Printf("  %s\n", name)
	}

	cmd.Println("\nEnum values:")
	for _, m := range domain.EnumFieldMappings() {
		values := report.EnumValues[m.Source]
		if len(values) == 0 {
			continue
		}
		cmd.Printf("  %s: %s\n", m.Source, strings.Join(values, ", "))
		for _, unknown := range report.UnknownEnumValues[m.Source] {
			cmd.Printf("    WARNING: %q is not an allowed value and will be dropped\n", unknown)
		}
	}

	cmd.Println("\nCategories:")
	for _, kind := range domain.CategoryKinds {
		cmd.Printf("  %s (%d): %s\n", kind, len(report.Categories[kind]), strings.Join(report.Categories[kind], ", "))
	}

	cmd.Printf("\nUsers (%d):\n", len(report.Users))
	for _, u := range report.Users {
		if u.Email == "" {
			cmd.Printf("  %s <no email - will be excluded>\n", u.Name)
			continue
		}
		cmd.Printf("  %s <%s>\n", u.Name, u.Email)
	}

	if report.Clean() {
		cmd.Println("\nNo warnings. Data looks ready to migrate.")
	} else {
		cmd.Println("\nWarnings found. Review before migrating.")
	}
	return nil
}
