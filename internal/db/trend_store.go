package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hykwon-dot/lira-intel/internal/trend"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// trendLockKey serializes concurrent Record transactions. A single advisory
// lock is enough because the snapshot set is small and every record call
// rewrites all touched rows.
const trendLockKey = 7741001

// TrendStore is the PostgreSQL implementation of trend.Store. Snapshots live
// one row per signal id with the recent detection timestamps as jsonb.
type TrendStore struct {
	db  *DB
	now func() time.Time
}

var _ trend.Store = (*TrendStore)(nil)

// NewTrendStore creates a trend store over an established connection pool
func NewTrendStore(db *DB) *TrendStore {
	return &TrendStore{db: db, now: time.Now}
}

// Record folds the detected signals into the persisted snapshots inside one
// transaction. The advisory lock makes concurrent recorders apply their
// detections sequentially so no count update is lost.
func (s *TrendStore) Record(ctx context.Context, signals []types.Signal) ([]types.TrendSnapshot, error) {
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trend transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, trendLockKey); err != nil {
		return nil, fmt.Errorf("failed to take trend lock: %w", err)
	}

	snapshots, err := loadSnapshots(ctx, tx)
	if err != nil {
		return nil, err
	}

	updated := trend.ApplyDetections(snapshots, signals, s.now().UTC())
	for _, snap := range updated {
		detections, err := json.Marshal(snap.RecentDetections)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal detections for %s: %w", snap.SignalID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO trend_snapshots (signal_id, title, severity, total_count, recent_detections, last_detected_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (signal_id) DO UPDATE SET
			   title = $2, severity = $3, total_count = $4, recent_detections = $5, last_detected_at = $6`,
			snap.SignalID, snap.Title, string(snap.Severity), snap.TotalCount, detections, snap.LastDetectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert snapshot %s: %w", snap.SignalID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trend transaction: %w", err)
	}
	return updated, nil
}

// Load returns all snapshots ordered by total count descending
func (s *TrendStore) Load(ctx context.Context) ([]types.TrendSnapshot, error) {
	return loadSnapshots(ctx, s.db.pool)
}

// querier covers both pool and transaction query access
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadSnapshots(ctx context.Context, q querier) ([]types.TrendSnapshot, error) {
	rows, err := q.Query(ctx,
		`SELECT signal_id, title, severity, total_count, recent_detections, last_detected_at
		 FROM trend_snapshots ORDER BY total_count DESC, signal_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.TrendSnapshot
	for rows.Next() {
		var snap types.TrendSnapshot
		var severity string
		var detections []byte
		if err := rows.Scan(&snap.SignalID, &snap.Title, &severity, &snap.TotalCount, &detections, &snap.LastDetectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Severity = types.Severity(severity)
		if len(detections) > 0 {
			if err := json.Unmarshal(detections, &snap.RecentDetections); err != nil {
				return nil, fmt.Errorf("failed to decode detections for %s: %w", snap.SignalID, err)
			}
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return snapshots, nil
}
