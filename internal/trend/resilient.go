package trend

import (
	"context"
	"log"
	"sync"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Resilient wraps a Store so that persistence outages never fail the caller:
// on error it logs, returns the last successfully loaded snapshot set (or
// nothing), and lets the request proceed without fresh trend data.
type Resilient struct {
	inner Store

	mu       sync.RWMutex
	lastGood []types.TrendSnapshot
}

// NewResilient wraps a store with outage fallback behavior
func NewResilient(inner Store) *Resilient {
	return &Resilient{inner: inner}
}

// Record delegates to the wrapped store, caching the result on success and
// serving the cached set on failure
func (r *Resilient) Record(ctx context.Context, signals []types.Signal) ([]types.TrendSnapshot, error) {
	snapshots, err := r.inner.Record(ctx, signals)
	if err != nil {
		log.Printf("trend store unavailable, continuing with last known snapshots: %v", err)
		return r.cached(), nil
	}
	r.remember(snapshots)
	return snapshots, nil
}

// Load delegates to the wrapped store with the same fallback
func (r *Resilient) Load(ctx context.Context) ([]types.TrendSnapshot, error) {
	snapshots, err := r.inner.Load(ctx)
	if err != nil {
		log.Printf("trend store unavailable, serving last known snapshots: %v", err)
		return r.cached(), nil
	}
	r.remember(snapshots)
	return snapshots, nil
}

func (r *Resilient) remember(snapshots []types.TrendSnapshot) {
	r.mu.Lock()
	r.lastGood = snapshots
	r.mu.Unlock()
}

func (r *Resilient) cached() []types.TrendSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copySnapshots(r.lastGood)
}
