package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hykwon-dot/lira-intel/internal/compliance"
	"github.com/hykwon-dot/lira-intel/internal/observability"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

var scanVerbose bool

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan text for compliance violations",
	Long: `Check a text for privacy, safety, legal, bias, and policy violations and
print the compliance report as JSON. Reads from the given file, or stdin when
no file is provided. Exits with a non-zero status when the overall severity is
high.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print a formatted summary alongside the JSON result")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	scanner := compliance.NewScanner()
	report := scanner.Scan([]compliance.Segment{{Label: "input", Text: text}})

	if scanVerbose {
		observability.NewPrinter(os.Stderr).PrintComplianceReport(&report)
	}
	if err := printJSON(report); err != nil {
		return err
	}

	if report.OverallSeverity == types.SeverityHigh {
		return fmt.Errorf("high severity compliance violations found")
	}
	return nil
}
