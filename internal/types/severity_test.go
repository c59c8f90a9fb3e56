package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_Weight(t *testing.T) {
	assert.InDelta(t, 1.0, SeverityHigh.Weight(), 0.001)
	assert.InDelta(t, 0.6, SeverityMedium.Weight(), 0.001)
	assert.InDelta(t, 0.35, SeverityLow.Weight(), 0.001)
	assert.InDelta(t, 0.35, Severity("bogus").Weight(), 0.001)
}

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityLow, SeverityHigh))
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityHigh, SeverityMedium))
	assert.Equal(t, SeverityMedium, MaxSeverity(SeverityMedium, SeverityMedium))
}

func TestRiskLevelForScore_Thresholds(t *testing.T) {
	assert.Equal(t, RiskLow, RiskLevelForScore(0))
	assert.Equal(t, RiskLow, RiskLevelForScore(30))
	assert.Equal(t, RiskMedium, RiskLevelForScore(31))
	assert.Equal(t, RiskMedium, RiskLevelForScore(60))
	assert.Equal(t, RiskHigh, RiskLevelForScore(61))
	assert.Equal(t, RiskHigh, RiskLevelForScore(100))
}

func TestConfidenceLabelForScore_Thresholds(t *testing.T) {
	assert.Equal(t, ConfidenceLow, ConfidenceLabelForScore(54))
	assert.Equal(t, ConfidenceMedium, ConfidenceLabelForScore(55))
	assert.Equal(t, ConfidenceMedium, ConfidenceLabelForScore(74))
	assert.Equal(t, ConfidenceHigh, ConfidenceLabelForScore(75))
}

func TestTrendSnapshot_CountSince(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := TrendSnapshot{
		RecentDetections: []time.Time{
			now.Add(-48 * time.Hour),
			now.Add(-12 * time.Hour),
			now.Add(-1 * time.Hour),
			now,
		},
	}

	assert.Equal(t, 3, snap.CountSince(now.Add(-24*time.Hour)))
	assert.Equal(t, 4, snap.CountSince(now.Add(-72*time.Hour)))
	assert.Equal(t, 1, snap.CountSince(now))
}
