// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity classifies how serious a detected signal or issue is
type Severity string

// Severity levels, ordered low < medium < high
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Weight returns the scoring weight for a severity level.
// The same weighting law is shared by the risk detector and the compliance scanner.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityHigh:
		return 1.0
	case SeverityMedium:
		return 0.6
	case SeverityLow:
		return 0.35
	default:
		return 0.35
	}
}

// Rank returns an ordinal for severity comparisons (higher is more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the known severity levels
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// MaxSeverity returns the more severe of two levels
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// RiskLevel is the overall case risk classification derived from a risk score
type RiskLevel string

// Risk levels for an analyzed case
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelForScore maps a 0-100 risk score to an overall risk level.
// Thresholds: above 60 is high, above 30 is medium, otherwise low.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score > 60:
		return RiskHigh
	case score > 30:
		return RiskMedium
	default:
		return RiskLow
	}
}
