package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hykwon-dot/lira-intel/internal/rules"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

func testTable(t *testing.T) *rules.Table {
	t.Helper()
	table, err := rules.Load([]byte(`
rules:
  - id: threat
    title: Threat language
    pattern: '(?i)(threat|협박)'
    category: safety
    severity: high
    guidance: Preserve the messages.
  - id: deadline
    title: Deadline pressure
    pattern: '(?i)(deadline|기한)'
    category: legal
    severity: medium
  - id: noise
    title: Never matches
    pattern: 'zzz-never-zzz'
    category: custom
    severity: low
`))
	require.NoError(t, err)
	return table
}

func TestDetect_SingleMatchPerRule(t *testing.T) {
	d := New(testTable(t))

	signals := d.Detect("the threat came with a deadline attached")

	require.Len(t, signals, 2)
	assert.Equal(t, "threat", signals[0].ID)
	assert.Equal(t, types.SeverityHigh, signals[0].Severity)
	assert.Equal(t, "deadline", signals[1].ID)
	assert.InDelta(t, 0.55, signals[0].Confidence, 0.001)
}

func TestDetect_RepeatedMatchesAggregateIntoOneSignal(t *testing.T) {
	d := New(testTable(t))

	signals := d.Detect("threat threat threat")

	require.Len(t, signals, 1)
	assert.Equal(t, "threat", signals[0].ID)
	// base 0.35 + 3 matches * 0.2
	assert.InDelta(t, 0.95, signals[0].Confidence, 0.001)
}

func TestDetect_KoreanPatterns(t *testing.T) {
	d := New(testTable(t))

	signals := d.Detect("상대방이 협박 문자를 보냈고 답변 기한이 내일입니다")

	require.Len(t, signals, 2)
	assert.Equal(t, "threat", signals[0].ID)
	assert.Equal(t, "deadline", signals[1].ID)
}

func TestDetect_EmptyText(t *testing.T) {
	d := New(testTable(t))

	assert.Empty(t, d.Detect(""))
	assert.Empty(t, d.Detect("   \n\t"))
}

func TestConfidence_MonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for count := 0; count <= 10; count++ {
		c := Confidence(count)
		assert.GreaterOrEqual(t, c, 0.35)
		assert.LessOrEqual(t, c, 0.95)
		assert.GreaterOrEqual(t, c, prev, "confidence must not decrease with match count")
		prev = c
	}
	assert.InDelta(t, 0.95, Confidence(100), 0.001)
}

func TestDetectMatches_OneRowPerMatchCapped(t *testing.T) {
	d := New(testTable(t))

	text := ""
	for i := 0; i < 10; i++ {
		text += "threat "
	}
	found := d.DetectMatches(text)

	// Capped at MaxEvidencePerRule rows for a single rule.
	assert.Len(t, found, MaxEvidencePerRule)
	for _, m := range found {
		assert.Equal(t, "threat", m.Rule.ID)
	}
}

func TestDetect_EvidenceDeduped(t *testing.T) {
	d := New(testTable(t))

	signals := d.Detect("Threat THREAT threat")

	require.Len(t, signals, 1)
	assert.Equal(t, "Threat", signals[0].Evidence)
}

func TestSeverityWeight_Ordering(t *testing.T) {
	assert.Greater(t, types.SeverityHigh.Weight(), types.SeverityMedium.Weight())
	assert.Greater(t, types.SeverityMedium.Weight(), types.SeverityLow.Weight())
	assert.Equal(t, 1.0, types.SeverityHigh.Weight())
	assert.Equal(t, 0.6, types.SeverityMedium.Weight())
	assert.Equal(t, 0.35, types.SeverityLow.Weight())
}

func TestBuiltinTables_LoadAndDetect(t *testing.T) {
	risk := New(rules.RiskTable())

	signals := risk.Detect("계속 협박을 받고 있고 소송 답변 기한이 다가옵니다")

	ids := make(map[string]types.Severity)
	for _, s := range signals {
		ids[s.ID] = s.Severity
	}
	assert.Equal(t, types.SeverityHigh, ids["violence-threat"])
	assert.Equal(t, types.SeverityHigh, ids["legal-deadline"])

	assert.Greater(t, rules.ComplianceTable().Len(), 0)
}
