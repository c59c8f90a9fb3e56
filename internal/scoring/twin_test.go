package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hykwon-dot/lira-intel/internal/scenario"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

func newScorer() *TwinScorer {
	return NewTwinScorer(scenario.Builtin())
}

func TestScore_NeutralInputsStayNearBase(t *testing.T) {
	analysis, err := newScorer().Score(scenario.CategoryBackground, FixedFactors{}, nil)
	require.NoError(t, err)

	// base 62 + background category +6, consent default false -4,
	// record-depth default standard contributes nothing.
	assert.Equal(t, 64, analysis.SuccessRate)
	assert.Equal(t, types.ConfidenceMedium, analysis.ConfidenceLabel)
	assert.NotEmpty(t, analysis.ID)
	assert.False(t, analysis.GeneratedAt.IsZero())
	assert.Equal(t, types.SourceHeuristicOnly, analysis.Source)
}

func TestScore_DeltasArePairedWithExplanations(t *testing.T) {
	analysis, err := newScorer().Score(scenario.CategoryTail, FixedFactors{
		TeamComposition: "team",
		Vehicle:         "backup",
		Shift:           "night",
	}, map[string]any{"has-photo": true})
	require.NoError(t, err)

	assert.Contains(t, analysis.KeyFactors, "Full team allows parallel vantage points")
	assert.Contains(t, analysis.KeyFactors, "Backup vehicle covers handover during moves")
	assert.Contains(t, analysis.KeyFactors, "A recent photo removes identification uncertainty")
	assert.Contains(t, analysis.RiskAlerts, "Night operation limits observation and photography")
}

func TestScore_ClampedToDeclaredRange(t *testing.T) {
	worst, err := newScorer().Score(scenario.CategoryMissingPerson, FixedFactors{
		TeamComposition:  "solo",
		Vehicle:          "none",
		Shift:            "night",
		TargetOccupation: "freelance",
		CommutePattern:   "irregular",
		Weather:          "snow",
		LocationDensity:  "rural",
		EscortSize:       "multiple",
		BudgetBand:       "tight",
		Weekday:          "weekend",
	}, map[string]any{
		"days-since-contact":  60,
		"last-location-known": false,
		"vulnerable-person":   true,
		"search-radius":       "national",
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, worst.SuccessRate, 8)
	assert.Equal(t, types.ConfidenceLow, worst.ConfidenceLabel)

	best, err := newScorer().Score(scenario.CategoryBackground, FixedFactors{
		TeamComposition:  "team",
		Vehicle:          "backup",
		Shift:            "day",
		TargetOccupation: "office",
		CommutePattern:   "regular",
		Weather:          "clear",
		LocationDensity:  "urban",
		EscortSize:       "none",
		BudgetBand:       "ample",
		Weekday:          "weekday",
	}, map[string]any{
		"subject-consent": true,
		"record-depth":    "deep",
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, best.SuccessRate, 96)
	assert.Equal(t, types.ConfidenceHigh, best.ConfidenceLabel)
}

func TestScore_UnknownFactorValuesContributeNothing(t *testing.T) {
	baseline, err := newScorer().Score(scenario.CategoryBackground, FixedFactors{}, nil)
	require.NoError(t, err)

	withUnknown, err := newScorer().Score(scenario.CategoryBackground, FixedFactors{
		TeamComposition: "battalion",
		Weather:         "meteor shower",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, baseline.SuccessRate, withUnknown.SuccessRate)
}

func TestScore_ListsNeverEmpty(t *testing.T) {
	analysis, err := newScorer().Score(scenario.CategoryCorporate, FixedFactors{}, map[string]any{
		"insider-contact": false,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.KeyFactors)
	assert.NotEmpty(t, analysis.RiskAlerts)
	assert.NotEmpty(t, analysis.RecommendedActions)
}

func TestScore_UnknownCategoryIsError(t *testing.T) {
	_, err := newScorer().Score("espionage", FixedFactors{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario category")
}

func TestScore_SanitizesScenarioVariables(t *testing.T) {
	// Out-of-range and injected values must not reach the heuristics.
	analysis, err := newScorer().Score(scenario.CategoryTail, FixedFactors{}, map[string]any{
		"observation-days": 500, // clamped to 14, counts as extended window
		"injected":         "ignored",
	})
	require.NoError(t, err)
	assert.Contains(t, analysis.KeyFactors, "Extended observation window raises capture odds")
}

func TestScore_TimelineCoversPreparationToReport(t *testing.T) {
	analysis, err := newScorer().Score(scenario.CategoryTail, FixedFactors{}, map[string]any{
		"observation-days": 7,
	})
	require.NoError(t, err)

	require.Len(t, analysis.Timeline, 3)
	assert.Equal(t, "Preparation", analysis.Timeline[0].Name)
	assert.Equal(t, 7, analysis.Timeline[1].DurationDays)
	assert.Equal(t, "Analysis and report", analysis.Timeline[2].Name)
}

func TestConfidenceLabelThresholds(t *testing.T) {
	assert.Equal(t, types.ConfidenceHigh, types.ConfidenceLabelForScore(75))
	assert.Equal(t, types.ConfidenceMedium, types.ConfidenceLabelForScore(74))
	assert.Equal(t, types.ConfidenceMedium, types.ConfidenceLabelForScore(55))
	assert.Equal(t, types.ConfidenceLow, types.ConfidenceLabelForScore(54))
}
