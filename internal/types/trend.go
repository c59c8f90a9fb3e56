// Package types provides type definitions for structured data used throughout the intelligence engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TrendSnapshot is the persisted rolling detection history for one signal id.
// RecentDetections is always sorted ascending and never contains a timestamp
// older than the seven-day retention window after any store operation.
type TrendSnapshot struct {
	SignalID         string      `json:"signal_id"`
	Title            string      `json:"title"`
	Severity         Severity    `json:"severity"`
	TotalCount       int         `json:"total_count"` // lifetime detections, never pruned
	RecentDetections []time.Time `json:"recent_detections"`
	LastDetectedAt   time.Time   `json:"last_detected_at"`
}

// CountSince returns how many recent detections happened at or after cutoff
func (s *TrendSnapshot) CountSince(cutoff time.Time) int {
	n := 0
	for _, ts := range s.RecentDetections {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}

// Alert is a derived trend or pattern warning. Alerts are recomputed on every
// call from snapshots plus the current signal set and are never persisted.
type Alert struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}
