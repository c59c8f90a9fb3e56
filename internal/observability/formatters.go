// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintInsights outputs a human-readable summary of a realtime analysis.
func (p *Printer) PrintInsights(result *types.Insights) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Risk:   %s (%d/100)\n", strings.ToUpper(string(result.OverallRisk)), result.RiskScore))
	sb.WriteString("\n")

	if len(result.Signals) > 0 {
		sb.WriteString("Signals:\n")
		count := min(len(result.Signals), maxItemsToShow)
		for i := 0; i < count; i++ {
			sig := result.Signals[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s (%.2f)\n", sig.Severity, sig.Title, sig.Confidence))
		}
		if len(result.Signals) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Signals)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(result.Alerts) > 0 {
		sb.WriteString("Alerts:\n")
		count := min(len(result.Alerts), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", result.Alerts[i].Severity, result.Alerts[i].Title))
		}
		if len(result.Alerts) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Alerts)-3))
		}
	}

	p.printBox("REALTIME INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked candidate matches with scores and factors.
func (p *Printer) PrintMatches(matches []types.MatchResult) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.CandidateID))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", match.MatchScore))
		sb.WriteString(fmt.Sprintf("  P(success): %.2f\n", match.SuccessProbability))
		if len(match.AlignmentFactors) > 0 {
			factors := strings.Join(match.AlignmentFactors, ", ")
			if len(factors) > 40 {
				factors = factors[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Factors: %s\n", factors))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TOP CANDIDATE MATCHES", sb.String())
}

// PrintTwinAnalysis outputs the scenario analysis summary.
func (p *Printer) PrintTwinAnalysis(analysis *types.TwinAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Success:    %d%% (%s)\n", analysis.SuccessRate, analysis.ConfidenceLabel))
	sb.WriteString(fmt.Sprintf("Source:     %s\n", analysis.Source))
	sb.WriteString("\n")

	if len(analysis.KeyFactors) > 0 {
		sb.WriteString("Key factors:\n")
		for _, factor := range firstN(analysis.KeyFactors, 3) {
			sb.WriteString(fmt.Sprintf("  + %s\n", factor))
		}
	}
	if len(analysis.RiskAlerts) > 0 {
		sb.WriteString("Risk alerts:\n")
		for _, alert := range firstN(analysis.RiskAlerts, 3) {
			sb.WriteString(fmt.Sprintf("  - %s\n", alert))
		}
	}

	p.printBox("SCENARIO ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComplianceReport outputs the compliance scan result.
func (p *Printer) PrintComplianceReport(report *types.ComplianceReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall severity: %s\n", strings.ToUpper(string(report.OverallSeverity))))
	sb.WriteString(fmt.Sprintf("Privacy %d  Safety %d  Legal %d  Bias %d  Policy %d\n",
		report.Metrics.Privacy, report.Metrics.Safety, report.Metrics.Legal,
		report.Metrics.Bias, report.Metrics.Policy))

	if len(report.Issues) > 0 {
		sb.WriteString("\nIssues:\n")
		count := min(len(report.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			issue := report.Issues[i]
			sb.WriteString(fmt.Sprintf("  • [%s/%s] %s\n", issue.Category, issue.Severity, issue.RuleID))
		}
		if len(report.Issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Issues)-maxItemsToShow))
		}
	}

	p.printBox("COMPLIANCE SCAN", strings.TrimSuffix(sb.String(), "\n"))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
