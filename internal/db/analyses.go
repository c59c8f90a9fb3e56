package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Analysis kinds stored in analysis_runs
const (
	AnalysisKindInsights   = "insights"
	AnalysisKindTwin       = "twin"
	AnalysisKindMatch      = "match"
	AnalysisKindCompliance = "compliance"
)

// AnalysisRun is one persisted analysis result
type AnalysisRun struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	RiskLevel string    `json:"risk_level,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveAnalysis stores a JSON analysis result and returns its id
func (db *DB) SaveAnalysis(ctx context.Context, kind, riskLevel string, payload any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analysis_runs (kind, risk_level, payload)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		kind, riskLevel, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save %s analysis: %w", kind, err)
	}
	return id, nil
}

// GetAnalysis retrieves an analysis run by id, or nil when absent
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRun, error) {
	var run AnalysisRun
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, COALESCE(risk_level, ''), payload, created_at
		 FROM analysis_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.Kind, &run.RiskLevel, &payload, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if len(payload) > 0 {
		var content any
		if err := json.Unmarshal(payload, &content); err == nil {
			run.Payload = content
		}
	}
	return &run, nil
}

// AnalysisFilters holds optional filters for listing analysis runs
type AnalysisFilters struct {
	Kind      string
	RiskLevel string
	Limit     int
}

// ListAnalyses retrieves recent analysis runs with optional filters.
// Payloads are omitted from listings.
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisRun, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, kind, COALESCE(risk_level, ''), created_at
		FROM analysis_runs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, filters.Kind)
		argNum++
	}
	if filters.RiskLevel != "" {
		query += fmt.Sprintf(" AND risk_level = $%d", argNum)
		args = append(args, filters.RiskLevel)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.ID, &run.Kind, &run.RiskLevel, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
