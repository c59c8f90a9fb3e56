package trend

import (
	"context"
	"sync"
	"time"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// MemoryStore is an in-process Store. A single mutex serializes every
// read-modify-write cycle, so concurrent Record calls cannot lose updates.
// Used directly when no database is configured, and by tests.
type MemoryStore struct {
	mu        sync.Mutex
	snapshots []types.TrendSnapshot
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory trend store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// NewMemoryStoreAt creates a store with an injectable clock for tests
func NewMemoryStoreAt(now func() time.Time) *MemoryStore {
	return &MemoryStore{now: now}
}

// Record folds the signals into the snapshot set under the store lock and
// returns the pruned collection sorted by total count descending.
func (s *MemoryStore) Record(_ context.Context, signals []types.Signal) ([]types.TrendSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = ApplyDetections(s.snapshots, signals, s.now().UTC())
	return copySnapshots(s.snapshots), nil
}

// Load returns the current snapshot set without recording anything
func (s *MemoryStore) Load(_ context.Context) ([]types.TrendSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copySnapshots(s.snapshots), nil
}

func copySnapshots(snapshots []types.TrendSnapshot) []types.TrendSnapshot {
	out := make([]types.TrendSnapshot, len(snapshots))
	for i, snap := range snapshots {
		out[i] = snap
		out[i].RecentDetections = append([]time.Time(nil), snap.RecentDetections...)
	}
	return out
}
