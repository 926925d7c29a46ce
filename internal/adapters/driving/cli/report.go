package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// printSummary renders a run summary with full itemised error and skip
// lists. Counts alone are not actionable for a one-shot batch; the
// operator needs record ids to fix the source data.
func printSummary(cmd *cobra.Command, s *domain.Summary) {
	cmd.Println("\nSummary:")
	cmd.Printf("  processed:  %d\n", s.Processed)
	cmd.Printf("  successful: %d\n", s.Successful)
	cmd.Printf("  errors:     %d\n", s.Errors)
	cmd.Printf("  skipped:    %d\n", s.Skipped)
	if s.AssociationFailures > 0 {
		cmd.Printf("  dropped associations: %d\n", s.AssociationFailures)
	}

	if len(s.ErrorRecords) > 0 {
		cmd.Println("\nErrors:")
		for _, e := range s.ErrorRecords {
			name := e.CompanyName
			if name == "" {
				name = "<unknown>"
			}
			cmd.Printf("  %s (%s): %s\n", e.RecordID, name, e.Message)
		}
	}

	if len(s.SkippedRecords) > 0 {
		cmd.Println("\nSkipped:")
		for _, sk := range s.SkippedRecords {
			cmd.Printf("  %s (created %s): %s\n", sk.RecordID, sk.CreatedTime, sk.Reason)
			if len(sk.AvailableFields) > 0 {
				cmd.Printf("    fields: %s\n", strings.Join(sk.AvailableFields, ", "))
			}
		}
	}
}
