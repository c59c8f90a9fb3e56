// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Analysis sources reported on a TwinAnalysis
const (
	SourceHeuristicOnly = "heuristic-only"
	SourceBlended       = "blended"
)

// TwinAnalysis is the deterministic case outcome estimate ("digital twin").
// It may be blended with an external generative result before being returned,
// but the heuristic baseline is always computed first.
type TwinAnalysis struct {
	ID                 string          `json:"id"`
	GeneratedAt        time.Time       `json:"generated_at"`
	SuccessRate        int             `json:"success_rate"` // 8-96
	ConfidenceLabel    string          `json:"confidence_label"`
	KeyFactors         []string        `json:"key_factors"`
	RiskAlerts         []string        `json:"risk_alerts"`
	RecommendedActions []string        `json:"recommended_actions"`
	KnowledgeBase      []string        `json:"knowledge_base,omitempty"`
	Timeline           []TimelinePhase `json:"timeline,omitempty"`
	Rationale          string          `json:"rationale,omitempty"`
	Source             string          `json:"source"` // "heuristic-only" or "blended"
}

// TimelinePhase is one stage of the projected operation timeline
type TimelinePhase struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
	Description  string `json:"description,omitempty"`
}

// Confidence labels for a twin estimate
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ConfidenceLabelForScore maps a success-rate score to its confidence label.
// Thresholds: 75 and above is high, 55 and above is medium, otherwise low.
func ConfidenceLabelForScore(score int) string {
	switch {
	case score >= 75:
		return ConfidenceHigh
	case score >= 55:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
