package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hykwon-dot/lira-intel/internal/observability"
	"github.com/hykwon-dot/lira-intel/internal/scenario"
	"github.com/hykwon-dot/lira-intel/internal/scoring"
)

var (
	twinCategory  string
	twinInputPath string
	twinVerbose   bool
)

// twinInput mirrors the /twin request body for file-based runs
type twinInput struct {
	Factors   scoring.FixedFactors `json:"factors"`
	Variables map[string]any       `json:"variables,omitempty"`
}

var twinCmd = &cobra.Command{
	Use:   "twin",
	Short: "Estimate the outcome of a case scenario",
	Long: `Run the deterministic scenario scorer for one case category and print the
resulting analysis. Operation factors and scenario variables can be provided
as a JSON file; omitted variables use their registered defaults. This command
never calls the external generator.`,
	RunE: runTwin,
}

func init() {
	twinCmd.Flags().StringVar(&twinCategory, "category", "", "Scenario category: tail, background, corporate, or missing-person (required)")
	twinCmd.Flags().StringVarP(&twinInputPath, "input", "i", "", "Path to JSON file with factors and variables")
	twinCmd.Flags().BoolVarP(&twinVerbose, "verbose", "v", false, "Print a formatted summary alongside the JSON result")
	_ = twinCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(twinCmd)
}

func runTwin(_ *cobra.Command, _ []string) error {
	var input twinInput
	if twinInputPath != "" {
		data, err := os.ReadFile(twinInputPath)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("failed to parse input JSON: %w", err)
		}
	}

	scorer := scoring.NewTwinScorer(scenario.Builtin())
	analysis, err := scorer.Score(twinCategory, input.Factors, input.Variables)
	if err != nil {
		return fmt.Errorf("scenario analysis failed: %w", err)
	}

	if twinVerbose {
		observability.NewPrinter(os.Stderr).PrintTwinAnalysis(&analysis)
	}
	return printJSON(analysis)
}
