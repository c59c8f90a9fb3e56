// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile describes a service provider under consideration for a case.
// Profiles are owned by the calling application; the engine only reads them.
type CandidateProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	RatingAverage   float64  `json:"rating_average,omitempty"`   // 0-5, 0 means no ratings yet
	SuccessRate     float64  `json:"success_rate,omitempty"`     // 0-100
	ExperienceYears float64  `json:"experience_years,omitempty"` // clamped to 0-30 for scoring
	ServiceArea     string   `json:"service_area,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	Contact         string   `json:"contact,omitempty"`
}

// MatchResult is the scored fit between one candidate and a case.
// Computed fresh per request and never persisted by the engine.
type MatchResult struct {
	CandidateID        string   `json:"candidate_id"`
	MatchScore         float64  `json:"match_score"`         // 25-100 after rank bonus
	SuccessProbability float64  `json:"success_probability"` // 0.35-0.96
	Confidence         float64  `json:"confidence"`          // 0.55-0.95
	AlignmentFactors   []string `json:"alignment_factors"`
	RankBonus          float64  `json:"rank_bonus"`
}
