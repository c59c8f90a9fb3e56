package blend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hykwon-dot/lira-intel/internal/llm"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

func heuristicFixture() types.TwinAnalysis {
	return types.TwinAnalysis{
		ID:                 "h-1",
		SuccessRate:        60,
		ConfidenceLabel:    types.ConfidenceMedium,
		KeyFactors:         []string{"Regular commute yields reliable interception points"},
		RiskAlerts:         []string{"Night operation limits observation and photography"},
		RecommendedActions: []string{"Obtain a recent photo of the target before field work"},
		Rationale:          "Deterministic factor analysis.",
		Source:             types.SourceHeuristicOnly,
	}
}

func TestBlend_NilExternalPassesHeuristicThroughUnchanged(t *testing.T) {
	heuristic := heuristicFixture()

	out := Blend(heuristic, nil)

	assert.Equal(t, types.SourceHeuristicOnly, out.Source)
	assert.Equal(t, heuristic.SuccessRate, out.SuccessRate)
	assert.Equal(t, heuristic.KeyFactors, out.KeyFactors)
	assert.Equal(t, heuristic.RiskAlerts, out.RiskAlerts)
	assert.Equal(t, heuristic.RecommendedActions, out.RecommendedActions)
}

func TestBlend_ScoreIsWeightedAverage(t *testing.T) {
	external := &ExternalAnalysis{SuccessRate: 90}

	out := Blend(heuristicFixture(), external)

	// round(90*0.6 + 60*0.4) = 78
	assert.Equal(t, 78, out.SuccessRate)
	assert.Equal(t, types.ConfidenceHigh, out.ConfidenceLabel)
	assert.Equal(t, types.SourceBlended, out.Source)
}

func TestBlend_ScoreReclampedToTwinRange(t *testing.T) {
	external := &ExternalAnalysis{SuccessRate: 100}
	heuristic := heuristicFixture()
	heuristic.SuccessRate = 96

	out := Blend(heuristic, external)
	assert.LessOrEqual(t, out.SuccessRate, 96)

	external.SuccessRate = 0
	heuristic.SuccessRate = 8
	out = Blend(heuristic, external)
	assert.GreaterOrEqual(t, out.SuccessRate, 8)
}

func TestBlend_ListsMergeExternalFirstWithDedup(t *testing.T) {
	heuristic := heuristicFixture()
	heuristic.KeyFactors = []string{"Shared factor", "Heuristic-only factor"}
	external := &ExternalAnalysis{
		SuccessRate: 70,
		KeyFactors:  []string{"External factor", "  shared FACTOR  "},
	}

	out := Blend(heuristic, external)

	assert.Equal(t, []string{"External factor", "shared FACTOR", "Heuristic-only factor"}, out.KeyFactors)
}

func TestBlend_ListsCappedAtSix(t *testing.T) {
	heuristic := heuristicFixture()
	heuristic.RiskAlerts = []string{"h1", "h2", "h3", "h4"}
	external := &ExternalAnalysis{
		SuccessRate: 70,
		RiskAlerts:  []string{"e1", "e2", "e3", "e4"},
	}

	out := Blend(heuristic, external)

	assert.Len(t, out.RiskAlerts, 6)
	assert.Equal(t, []string{"e1", "e2", "e3", "e4", "h1", "h2"}, out.RiskAlerts)
}

func TestBlend_RationalesConcatenatedOnceEach(t *testing.T) {
	heuristic := heuristicFixture()
	external := &ExternalAnalysis{SuccessRate: 70, Rationale: "Generated counterpoint."}

	out := Blend(heuristic, external)
	assert.Equal(t, "Generated counterpoint. Deterministic factor analysis.", out.Rationale)

	external.Rationale = "Deterministic factor analysis."
	out = Blend(heuristic, external)
	assert.Equal(t, "Deterministic factor analysis.", out.Rationale)
}

func TestParseExternal_ValidPayload(t *testing.T) {
	parsed, err := ParseExternal(`{
		"success_rate": 72,
		"key_factors": ["a"],
		"risk_alerts": [],
		"recommended_actions": ["b"],
		"rationale": "why"
	}`)
	require.NoError(t, err)
	assert.Equal(t, 72, parsed.SuccessRate)
	assert.Equal(t, "why", parsed.Rationale)
}

func TestParseExternal_SchemaViolationsRejected(t *testing.T) {
	cases := []string{
		`{"success_rate": "seventy"}`,
		`{"success_rate": 150, "key_factors": [], "risk_alerts": [], "recommended_actions": []}`,
		`{"key_factors": [], "risk_alerts": [], "recommended_actions": []}`,
		`not json at all`,
	}
	for _, raw := range cases {
		_, err := ParseExternal(raw)
		assert.Error(t, err, "payload %s must be rejected", raw)
	}
}

func TestAnalyze_NoClientIsHeuristicOnly(t *testing.T) {
	o := NewOrchestrator(nil, time.Second)

	out, err := o.Analyze(context.Background(), func() (types.TwinAnalysis, error) {
		return heuristicFixture(), nil
	}, "prompt")

	require.NoError(t, err)
	assert.Equal(t, types.SourceHeuristicOnly, out.Source)
	assert.Equal(t, 60, out.SuccessRate)
}

func TestAnalyze_GeneratorErrorFallsBack(t *testing.T) {
	client := &llm.FakeClient{Err: assert.AnError}
	o := NewOrchestrator(client, time.Second)

	out, err := o.Analyze(context.Background(), func() (types.TwinAnalysis, error) {
		return heuristicFixture(), nil
	}, "prompt")

	require.NoError(t, err)
	assert.Equal(t, types.SourceHeuristicOnly, out.Source)
	assert.Equal(t, 1, client.Calls, "exactly one attempt, no retries")
}

func TestAnalyze_SchemaMismatchFallsBack(t *testing.T) {
	client := &llm.FakeClient{Response: `{"surprise": true}`}
	o := NewOrchestrator(client, time.Second)

	out, err := o.Analyze(context.Background(), func() (types.TwinAnalysis, error) {
		return heuristicFixture(), nil
	}, "prompt")

	require.NoError(t, err)
	assert.Equal(t, types.SourceHeuristicOnly, out.Source)
}

func TestAnalyze_TimeoutTreatedAsAbsent(t *testing.T) {
	client := &llm.FakeClient{
		Response: `{"success_rate": 90, "key_factors": [], "risk_alerts": [], "recommended_actions": []}`,
		Delay: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	o := NewOrchestrator(client, 20*time.Millisecond)

	start := time.Now()
	out, err := o.Analyze(context.Background(), func() (types.TwinAnalysis, error) {
		return heuristicFixture(), nil
	}, "prompt")

	require.NoError(t, err)
	assert.Equal(t, types.SourceHeuristicOnly, out.Source)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAnalyze_ValidExternalGetsBlended(t *testing.T) {
	client := &llm.FakeClient{
		Response: `{"success_rate": 90, "key_factors": ["External factor"], "risk_alerts": [], "recommended_actions": []}`,
	}
	o := NewOrchestrator(client, time.Second)

	out, err := o.Analyze(context.Background(), func() (types.TwinAnalysis, error) {
		return heuristicFixture(), nil
	}, "prompt")

	require.NoError(t, err)
	assert.Equal(t, types.SourceBlended, out.Source)
	assert.Equal(t, 78, out.SuccessRate)
	assert.Contains(t, out.KeyFactors, "External factor")
}
