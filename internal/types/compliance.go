// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ComplianceIssue is one rule match found in a scanned text segment.
// Unlike risk signals, compliance issues are emitted one per match,
// capped per rule by the scanner.
type ComplianceIssue struct {
	RuleID   string   `json:"rule_id"`
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Segment  string   `json:"segment"` // label of the scanned segment
	Excerpt  string   `json:"excerpt"`
	Guidance string   `json:"guidance,omitempty"`
	Weight   float64  `json:"weight"`
}

// ComplianceMetrics holds the five fixed per-category scores (0-100,
// higher is cleaner)
type ComplianceMetrics struct {
	Privacy int `json:"privacy"`
	Safety  int `json:"safety"`
	Legal   int `json:"legal"`
	Bias    int `json:"bias"`
	Policy  int `json:"policy"`
}

// ComplianceReport is the result of scanning a set of labeled text segments
type ComplianceReport struct {
	ID              string            `json:"id"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Issues          []ComplianceIssue `json:"issues"`
	Metrics         ComplianceMetrics `json:"metrics"`
	OverallSeverity Severity          `json:"overall_severity"`
}
