// Package detect implements the generic pattern-rule evaluator. One detector
// instance serves both the risk signal path and the compliance scanner, each
// with its own rule table, so the two detection paths cannot drift apart.
package detect

import (
	"strings"

	"github.com/hykwon-dot/lira-intel/internal/rules"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Scoring constants for detection confidence
const (
	// MaxEvidencePerRule caps how many sub-matches a single rule contributes
	MaxEvidencePerRule = 6
	baseConfidence     = 0.35
	confidencePerMatch = 0.2
	maxConfidence      = 0.95
)

// Detector evaluates a compiled rule table against input text.
// A detector is stateless apart from its immutable table and is safe for
// concurrent use.
type Detector struct {
	table *rules.Table
}

// New creates a detector over a compiled rule table
func New(table *rules.Table) *Detector {
	return &Detector{table: table}
}

// Confidence returns the detection confidence for a given match count.
// Monotonic non-decreasing in the match count, bounded to [0.35, 0.95].
func Confidence(matchCount int) float64 {
	c := baseConfidence + float64(matchCount)*confidencePerMatch
	if c < baseConfidence {
		c = baseConfidence
	}
	if c > maxConfidence {
		c = maxConfidence
	}
	return c
}

// Detect runs every rule against the text and returns at most one aggregated
// signal per rule id. A rule matching several times raises the confidence of
// its single signal rather than emitting duplicates. Pure function: no side
// effects on the detector or its table.
func (d *Detector) Detect(text string) []types.Signal {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var signals []types.Signal
	for _, rule := range d.table.Rules() {
		matches := rule.Regexp.FindAllString(text, MaxEvidencePerRule)
		if len(matches) == 0 {
			continue
		}

		signals = append(signals, types.Signal{
			ID:         rule.ID,
			Title:      rule.Title,
			Severity:   rule.Severity,
			Confidence: Confidence(len(matches)),
			Evidence:   strings.Join(dedupe(matches), ", "),
			Guidance:   rule.Guidance,
		})
	}
	return signals
}

// Match is one individual rule hit, used by callers that want per-match rows
// (the compliance scanner) rather than aggregated signals.
type Match struct {
	Rule    rules.CompiledRule
	Excerpt string
}

// DetectMatches returns one entry per match, capped at MaxEvidencePerRule
// matches per rule, preserving rule order then match order.
func (d *Detector) DetectMatches(text string) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var found []Match
	for _, rule := range d.table.Rules() {
		for _, m := range rule.Regexp.FindAllString(text, MaxEvidencePerRule) {
			found = append(found, Match{Rule: rule, Excerpt: m})
		}
	}
	return found
}

// dedupe removes duplicate match fragments while preserving first-seen order
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
