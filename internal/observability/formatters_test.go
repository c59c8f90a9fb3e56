package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInsights(&types.Insights{
		RiskScore:   73,
		OverallRisk: types.RiskHigh,
		Signals: []types.Signal{
			{ID: "violence-threat", Title: "Threat of violence", Severity: types.SeverityHigh, Confidence: 0.55},
		},
		Alerts: []types.Alert{
			{ID: "compound-risk", Title: "Compound risk", Severity: types.SeverityHigh},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "REALTIME INSIGHTS")
	assert.Contains(t, output, "HIGH (73/100)")
	assert.Contains(t, output, "Threat of violence")
	assert.Contains(t, output, "Compound risk")
}

func TestPrintInsights_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintInsights(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches([]types.MatchResult{
		{CandidateID: "inv-1", MatchScore: 82.5, SuccessProbability: 0.71, AlignmentFactors: []string{"전문 분야 일치"}},
		{CandidateID: "inv-2", MatchScore: 64.0, SuccessProbability: 0.58},
	})
	output := buf.String()

	assert.Contains(t, output, "TOP CANDIDATE MATCHES")
	assert.Contains(t, output, "inv-1")
	assert.Contains(t, output, "82.5")
	assert.Contains(t, output, "inv-2")
}

func TestPrintTwinAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTwinAnalysis(&types.TwinAnalysis{
		SuccessRate:     64,
		ConfidenceLabel: types.ConfidenceMedium,
		Source:          types.SourceHeuristicOnly,
		KeyFactors:      []string{"주간 시간대 확보"},
		RiskAlerts:      []string{"단독 조사 인력"},
	})
	output := buf.String()

	assert.Contains(t, output, "SCENARIO ANALYSIS")
	assert.Contains(t, output, "64%")
	assert.Contains(t, output, "heuristic-only")
}

func TestPrintComplianceReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintComplianceReport(&types.ComplianceReport{
		OverallSeverity: types.SeverityHigh,
		Metrics:         types.ComplianceMetrics{Privacy: 82, Safety: 100, Legal: 100, Bias: 100, Policy: 100},
		Issues: []types.ComplianceIssue{
			{RuleID: "privacy-resident-id", Category: "privacy", Severity: types.SeverityHigh, Segment: "message-1"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "COMPLIANCE SCAN")
	assert.Contains(t, output, "HIGH")
	assert.Contains(t, output, "privacy-resident-id")
}
