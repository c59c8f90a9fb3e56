// Package compliance scans outgoing text segments (conversation summaries,
// report drafts, negotiation scripts) for policy, privacy, and safety issues.
// It reuses the generic pattern-rule evaluator with its own rule table, so
// the mechanics cannot drift from the risk signal detector.
package compliance

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hykwon-dot/lira-intel/internal/detect"
	"github.com/hykwon-dot/lira-intel/internal/rules"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Per-category metric factors and caps. Each metric is
// 100 - clamp(weightedHitCount * factor, 0, cap).
var categoryFactors = map[rules.Category]struct {
	factor float64
	cap    float64
}{
	rules.CategoryPrivacy: {factor: 18, cap: 70},
	rules.CategorySafety:  {factor: 20, cap: 80},
	rules.CategoryLegal:   {factor: 15, cap: 60},
	rules.CategoryBias:    {factor: 12, cap: 50},
	rules.CategoryPolicy:  {factor: 10, cap: 40},
}

// Severity thresholds on the maximum issue weight
const (
	highWeightThreshold   = 0.9
	mediumWeightThreshold = 0.55
)

// Segment is one labeled piece of text to scan
type Segment struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Scanner evaluates the compliance rule table over labeled segments.
// Stateless and safe for concurrent use.
type Scanner struct {
	detector *detect.Detector
}

// NewScanner creates a scanner over the built-in compliance table
func NewScanner() *Scanner {
	return &Scanner{detector: detect.New(rules.ComplianceTable())}
}

// NewScannerWithTable creates a scanner over a custom rule table
func NewScannerWithTable(table *rules.Table) *Scanner {
	return &Scanner{detector: detect.New(table)}
}

// Scan checks every segment and produces one issue per rule match (capped per
// rule within a segment), the five fixed category metrics, and the overall
// severity.
func (s *Scanner) Scan(segments []Segment) types.ComplianceReport {
	var issues []types.ComplianceIssue
	for _, segment := range segments {
		for _, match := range s.detector.DetectMatches(segment.Text) {
			issues = append(issues, types.ComplianceIssue{
				RuleID:   match.Rule.ID,
				Category: string(match.Rule.Category),
				Severity: match.Rule.Severity,
				Segment:  segment.Label,
				Excerpt:  match.Excerpt,
				Guidance: match.Rule.Guidance,
				Weight:   match.Rule.Severity.Weight(),
			})
		}
	}

	return types.ComplianceReport{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Issues:          issues,
		Metrics:         computeMetrics(issues),
		OverallSeverity: overallSeverity(issues),
	}
}

// computeMetrics derives the five fixed per-category scores from the
// weighted hit counts
func computeMetrics(issues []types.ComplianceIssue) types.ComplianceMetrics {
	weighted := make(map[rules.Category]float64)
	for _, issue := range issues {
		weighted[rules.Category(issue.Category)] += issue.Weight
	}

	metric := func(category rules.Category) int {
		cfg := categoryFactors[category]
		penalty := weighted[category] * cfg.factor
		if penalty < 0 {
			penalty = 0
		}
		if penalty > cfg.cap {
			penalty = cfg.cap
		}
		return 100 - int(math.Round(penalty))
	}

	return types.ComplianceMetrics{
		Privacy: metric(rules.CategoryPrivacy),
		Safety:  metric(rules.CategorySafety),
		Legal:   metric(rules.CategoryLegal),
		Bias:    metric(rules.CategoryBias),
		Policy:  metric(rules.CategoryPolicy),
	}
}

// overallSeverity classifies the report by its heaviest issue
func overallSeverity(issues []types.ComplianceIssue) types.Severity {
	maxWeight := 0.0
	for _, issue := range issues {
		if issue.Weight > maxWeight {
			maxWeight = issue.Weight
		}
	}
	switch {
	case maxWeight >= highWeightThreshold:
		return types.SeverityHigh
	case maxWeight >= mediumWeightThreshold:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}
