package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

func alertByID(alerts []types.Alert, id string) *types.Alert {
	for i := range alerts {
		if alerts[i].ID == id {
			return &alerts[i]
		}
	}
	return nil
}

func TestDeriveAlerts_SpikeTakesPrecedenceOverTrend(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snap := types.TrendSnapshot{
		SignalID: "violence-threat",
		Title:    "Threat of violence",
		Severity: types.SeverityHigh,
		// Enough detections for both the 24h spike rule and the 7d
		// trend rule; only the spike alert may fire.
		TotalCount: 8,
		RecentDetections: []time.Time{
			now.Add(-6 * 24 * time.Hour),
			now.Add(-5 * 24 * time.Hour),
			now.Add(-4 * 24 * time.Hour),
			now.Add(-20 * time.Hour),
			now.Add(-10 * time.Hour),
			now.Add(-time.Hour),
		},
	}

	alerts := DeriveAlerts([]types.TrendSnapshot{snap}, nil, "", "", now)

	spike := alertByID(alerts, "spike-violence-threat")
	require.NotNil(t, spike, "expected a spike alert")
	assert.Equal(t, types.SeverityHigh, spike.Severity)
	assert.Nil(t, alertByID(alerts, "trend-violence-threat"), "spike must short-circuit the trend rule")
}

func TestDeriveAlerts_LowSeverityNeverSpikes(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snap := types.TrendSnapshot{
		SignalID: "urgent-pressure",
		Title:    "Urgency pressure",
		Severity: types.SeverityLow,
		RecentDetections: []time.Time{
			now.Add(-3 * time.Hour), now.Add(-2 * time.Hour), now.Add(-time.Hour),
		},
	}

	alerts := DeriveAlerts([]types.TrendSnapshot{snap}, nil, "", "", now)

	assert.Nil(t, alertByID(alerts, "spike-urgent-pressure"))
}

func TestDeriveAlerts_CumulativeTrendEscalatesLowToMedium(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	detections := make([]time.Time, 0, 6)
	for day := 1; day <= 6; day++ {
		detections = append(detections, now.Add(-time.Duration(day)*24*time.Hour))
	}
	snap := types.TrendSnapshot{
		SignalID:         "urgent-pressure",
		Title:            "Urgency pressure",
		Severity:         types.SeverityLow,
		RecentDetections: detections,
	}

	alerts := DeriveAlerts([]types.TrendSnapshot{snap}, nil, "", "", now)

	alert := alertByID(alerts, "trend-urgent-pressure")
	require.NotNil(t, alert)
	assert.Equal(t, types.SeverityMedium, alert.Severity)
}

func TestDeriveAlerts_UrgencyOverrideAlwaysFires(t *testing.T) {
	now := time.Now().UTC()

	for _, urgency := range []string{"긴급", "즉시 처리 부탁드립니다", "urgent", "ASAP"} {
		alerts := DeriveAlerts(nil, nil, urgency, "", now)
		alert := alertByID(alerts, "urgent-response")
		require.NotNil(t, alert, "urgency %q must produce an alert", urgency)
		assert.Equal(t, types.SeverityHigh, alert.Severity)
	}

	alerts := DeriveAlerts(nil, nil, "within a month", "", now)
	assert.Nil(t, alertByID(alerts, "urgent-response"))
}

func TestDeriveAlerts_CorporateCasePattern(t *testing.T) {
	now := time.Now().UTC()

	alerts := DeriveAlerts(nil, nil, "", "기업 내부 조사", now)
	alert := alertByID(alerts, "category-pattern")
	require.NotNil(t, alert)
	assert.Equal(t, types.SeverityMedium, alert.Severity)
}

func TestDeriveAlerts_CompoundRiskNeedsMoreThanOneHigh(t *testing.T) {
	now := time.Now().UTC()
	one := []types.Signal{{ID: "a", Severity: types.SeverityHigh}}
	two := append(one, types.Signal{ID: "b", Severity: types.SeverityHigh})

	assert.Nil(t, alertByID(DeriveAlerts(nil, one, "", "", now), "compound-risk"))

	alert := alertByID(DeriveAlerts(nil, two, "", "", now), "compound-risk")
	require.NotNil(t, alert)
	assert.Equal(t, types.SeverityHigh, alert.Severity)
}

func TestDeriveAlerts_RecordingSameSignalFourTimesInDayYieldsSpike(t *testing.T) {
	// End-to-end over the store: more than three recordings of one id
	// inside a simulated 24h window must yield a spike, never a trend.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var snaps []types.TrendSnapshot
	sig := types.Signal{ID: "violence-threat", Title: "Threat", Severity: types.SeverityHigh}
	for hour := 0; hour < 4; hour++ {
		snaps = ApplyDetections(snaps, []types.Signal{sig}, now.Add(time.Duration(hour)*time.Hour))
	}

	alerts := DeriveAlerts(snaps, nil, "", "", now.Add(4*time.Hour))

	assert.NotNil(t, alertByID(alerts, "spike-violence-threat"))
	assert.Nil(t, alertByID(alerts, "trend-violence-threat"))
}
