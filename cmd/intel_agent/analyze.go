package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hykwon-dot/lira-intel/internal/insights"
	"github.com/hykwon-dot/lira-intel/internal/observability"
	"github.com/hykwon-dot/lira-intel/internal/trend"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

var analyzeVerbose bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run realtime insights over a conversation text",
	Long: `Analyze a conversation transcript for risk signals and print the combined
insights result as JSON. Reads from the given file, or stdin when no file is
provided. Each run uses a fresh in-memory trend store, so trend alerts only
reflect the analyzed text itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a formatted summary alongside the JSON result")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	engine := insights.NewEngine(trend.NewMemoryStore())
	result, err := engine.Analyze(context.Background(), insights.Request{
		Messages: []types.Message{{Role: types.RoleUser, Content: text}},
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose {
		observability.NewPrinter(os.Stderr).PrintInsights(result)
	}
	return printJSON(result)
}

// readInput reads the text to analyze from the file argument or stdin
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// printJSON writes a result to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
