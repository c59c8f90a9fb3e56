package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hykwon-dot/lira-intel/internal/observability"
	"github.com/hykwon-dot/lira-intel/internal/scoring"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

var (
	matchCandidatesPath string
	matchKeywords       []string
	matchRisk           string
	matchVerbose        bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank candidate investigators against a case",
	Long: `Score a set of candidate profiles against case keywords and print the
top matches. Candidates are read from a JSON file containing an array of
profile objects.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchCandidatesPath, "candidates", "c", "", "Path to candidates JSON file (required)")
	matchCmd.Flags().StringSliceVarP(&matchKeywords, "keyword", "k", nil, "Case keyword (repeatable)")
	matchCmd.Flags().StringVar(&matchRisk, "risk", "", "Overall case risk: low, medium, or high")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted summary alongside the JSON result")
	_ = matchCmd.MarkFlagRequired("candidates")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(matchCandidatesPath)
	if err != nil {
		return fmt.Errorf("failed to read candidates file: %w", err)
	}

	var candidates []types.CandidateProfile
	if err := json.Unmarshal(data, &candidates); err != nil {
		return fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("candidates file contains no profiles")
	}

	caseCtx := types.CaseContext{
		Keywords:    matchKeywords,
		OverallRisk: types.RiskLevel(matchRisk),
	}
	matches := scoring.MatchCandidates(candidates, caseCtx)

	if matchVerbose {
		observability.NewPrinter(os.Stderr).PrintMatches(matches)
	}
	return printJSON(matches)
}
