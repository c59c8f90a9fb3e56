// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Signal represents a single detected risk indicator in conversational text.
// Signals are ephemeral: they live in the response and feed the trend counters,
// but are never persisted themselves.
type Signal struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"` // 0.35-0.95
	Evidence   string   `json:"evidence,omitempty"`
	Guidance   string   `json:"guidance,omitempty"`
}
