// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Message is one turn of the intake conversation
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// Message roles accepted by the engine
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CaseSummary is the structured case description assembled by the intake flow.
// All fields are optional; the engine treats an absent summary as empty.
type CaseSummary struct {
	Title                string   `json:"title,omitempty"`
	CaseType             string   `json:"case_type,omitempty"`
	PrimaryIntent        string   `json:"primary_intent,omitempty"`
	Urgency              string   `json:"urgency,omitempty"`
	Objective            string   `json:"objective,omitempty"`
	KeyFacts             []string `json:"key_facts,omitempty"`
	MissingDetails       []string `json:"missing_details,omitempty"`
	RecommendedDocuments []string `json:"recommended_documents,omitempty"`
	NextQuestions        []string `json:"next_questions,omitempty"`
}

// CaseContext bundles everything the matching pipeline knows about a case
type CaseContext struct {
	Summary     *CaseSummary `json:"summary,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	Signals     []Signal     `json:"signals,omitempty"`
	OverallRisk RiskLevel    `json:"overall_risk,omitempty"`
}
