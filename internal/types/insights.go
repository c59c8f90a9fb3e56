// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Insights is the combined realtime analysis returned to the intake chat layer
type Insights struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	RiskScore         int              `json:"risk_score"` // 0-100
	OverallRisk       RiskLevel        `json:"overall_risk"`
	Signals           []Signal         `json:"signals"`
	Alerts            []Alert          `json:"alerts"`
	Recommendations   []Recommendation `json:"recommendations"` // top-4 corpus matches
	NextActions       []string         `json:"next_actions"`
	ActionPlan        ActionPlan       `json:"action_plan"`
	FlowSimulation    FlowSimulation   `json:"flow_simulation"`
	FollowUpQuestions []string         `json:"follow_up_questions"` // at most 4
	Summary           string           `json:"summary"`
}

// Recommendation is one similarity-ranked knowledge corpus entry
type Recommendation struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"` // 0-1
}

// ActionPlan structures the suggested next steps for the case
type ActionPlan struct {
	Focus           string       `json:"focus"`
	SuccessCriteria []string     `json:"success_criteria"`
	Notes           string       `json:"notes,omitempty"`
	Items           []ActionItem `json:"items"`
}

// ActionItem is a single step in an action plan
type ActionItem struct {
	Title    string   `json:"title"`
	Detail   string   `json:"detail,omitempty"`
	Priority Severity `json:"priority"`
}

// FlowSimulation projects how the case would run end to end
type FlowSimulation struct {
	TotalDurationDays int         `json:"total_duration_days"`
	Phases            []FlowPhase `json:"phases"`
	ResourceNotes     []string    `json:"resource_notes,omitempty"`
	RiskNotes         []string    `json:"risk_notes,omitempty"`
	Checkpoints       []string    `json:"checkpoints,omitempty"`
}

// FlowPhase is one stage of a simulated case flow
type FlowPhase struct {
	Name         string `json:"name"`
	DurationDays int    `json:"duration_days"`
	Description  string `json:"description,omitempty"`
}
