package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsventures/dealflow-cli/internal/core/services"
)

var flagOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Generate a SQL batch script from the export",
	Long: `Reads the export JSON file and writes a single SQL script that
inserts all reference rows, pipeline rows and association rows. The
script is meant to be applied to the target database in one batch;
nothing is written anywhere until you run it. Use '-o -' to write the
script to stdout.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output SQL file (default from config, '-' for stdout)")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(cmd, cfg)
	if err != nil {
		return err
	}

	output := flagOutput
	if output == "" {
		output = cfg.Paths.SQLOutput
	}

	generator := services.NewDumpService()

	if output == "-" {
		summary, err := generator.Generate(cmd.Context(), records, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("generating dump: %w", err)
		}
		printSummary(cmd, summary)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	summary, err := generator.Generate(cmd.Context(), records, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("generating dump: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	cmd.Printf("SQL dump written to %s\n", output)
	printSummary(cmd, summary)
	return nil
}
