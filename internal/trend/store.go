// Package trend persists rolling detection history per signal id and derives
// spike and cumulative-trend alerts from it. The store is the engine's only
// piece of shared mutable state; every implementation serializes its
// read-modify-write cycle so concurrent recordings cannot lose updates.
package trend

import (
	"context"
	"sort"
	"time"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Time windows and thresholds for trend analysis
const (
	// RetentionWindow bounds how long individual detections are kept
	RetentionWindow = 7 * 24 * time.Hour
	// SpikeWindow is the short window used for frequency-increase alerts
	SpikeWindow = 24 * time.Hour
	// SpikeThreshold detections inside SpikeWindow trigger a spike alert
	SpikeThreshold = 3
	// TrendThreshold detections inside RetentionWindow trigger a trend alert
	TrendThreshold = 6
)

// Store records signal detections and serves the pruned snapshot set.
// Record must prune stale timestamps from every snapshot, not only the
// touched ones, before persisting.
type Store interface {
	Record(ctx context.Context, signals []types.Signal) ([]types.TrendSnapshot, error)
	Load(ctx context.Context) ([]types.TrendSnapshot, error)
}

// ApplyDetections folds the current signal set into an existing snapshot
// collection: appends now to each observed signal's history, increments
// lifetime counts, prunes everything older than the retention window, and
// returns the collection sorted by total count descending. The input slice is
// not modified. Store implementations share this so file, memory, and SQL
// backends cannot diverge on the mutation rules.
func ApplyDetections(snapshots []types.TrendSnapshot, signals []types.Signal, now time.Time) []types.TrendSnapshot {
	byID := make(map[string]int, len(snapshots))
	out := make([]types.TrendSnapshot, len(snapshots))
	for i, snap := range snapshots {
		out[i] = snap
		out[i].RecentDetections = append([]time.Time(nil), snap.RecentDetections...)
		byID[snap.SignalID] = i
	}

	for _, sig := range signals {
		idx, ok := byID[sig.ID]
		if !ok {
			out = append(out, types.TrendSnapshot{SignalID: sig.ID})
			idx = len(out) - 1
			byID[sig.ID] = idx
		}
		out[idx].Title = sig.Title
		out[idx].Severity = sig.Severity
		out[idx].TotalCount++
		out[idx].RecentDetections = append(out[idx].RecentDetections, now)
		out[idx].LastDetectedAt = now
	}

	cutoff := now.Add(-RetentionWindow)
	for i := range out {
		out[i].RecentDetections = pruneBefore(out[i].RecentDetections, cutoff)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCount > out[j].TotalCount
	})
	return out
}

// pruneBefore drops timestamps older than cutoff and returns the remainder
// sorted ascending
func pruneBefore(detections []time.Time, cutoff time.Time) []time.Time {
	kept := make([]time.Time, 0, len(detections))
	for _, ts := range detections {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
	return kept
}
