// Package scoring implements the deterministic heuristic scorer: the case
// outcome estimator (digital twin) and candidate-to-case matching. Both
// pipelines follow one law: start from a base score, apply bounded deltas per
// observed factor, clamp to the declared range. The deltas are fixed domain
// constants, not a learned model, and are the parity contract for tests.
package scoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hykwon-dot/lira-intel/internal/scenario"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Twin score bounds
const (
	twinBaseScore = 62
	twinMinScore  = 8
	twinMaxScore  = 96
)

// FixedFactors are the structured operation parameters of a case. Values are
// free-text enums from the intake form; unknown values contribute no delta.
type FixedFactors struct {
	TeamComposition  string `json:"team_composition,omitempty"`  // solo, pair, team
	Vehicle          string `json:"vehicle,omitempty"`           // none, available, backup
	Shift            string `json:"shift,omitempty"`             // day, evening, night
	TargetOccupation string `json:"target_occupation,omitempty"` // office, shift-worker, freelance
	CommutePattern   string `json:"commute_pattern,omitempty"`   // regular, irregular, remote
	Weather          string `json:"weather,omitempty"`           // clear, rain, snow
	LocationDensity  string `json:"location_density,omitempty"`  // urban, suburban, rural
	EscortSize       string `json:"escort_size,omitempty"`       // none, single, multiple
	BudgetBand       string `json:"budget_band,omitempty"`       // tight, standard, ample
	Weekday          string `json:"weekday,omitempty"`           // weekday, weekend
}

// factorEffect is one fixed signed delta with its mandatory explanation.
// Positive deltas surface as key factors, negative ones as risk alerts.
type factorEffect struct {
	delta int
	note  string
}

// Fixed per-value deltas. Reproduced exactly: tests pin these values.
var (
	categoryEffects = map[string]factorEffect{
		scenario.CategoryTail:          {-3, "Tail operations carry inherent exposure risk"},
		scenario.CategoryBackground:    {6, "Background checks resolve through records work"},
		scenario.CategoryCorporate:     {-1, "Corporate cases depend on internal cooperation"},
		scenario.CategoryMissingPerson: {-5, "Missing-person traces degrade quickly"},
	}
	teamEffects = map[string]factorEffect{
		"solo": {-5, "Single-operative coverage leaves observation gaps"},
		"pair": {3, "Two-operative rotation sustains continuous coverage"},
		"team": {5, "Full team allows parallel vantage points"},
	}
	vehicleEffects = map[string]factorEffect{
		"none":      {-3, "No vehicle restricts pursuit range"},
		"available": {4, "Dedicated vehicle secures mobility"},
		"backup":    {6, "Backup vehicle covers handover during moves"},
	}
	shiftEffects = map[string]factorEffect{
		"day":     {2, "Daytime work benefits from natural cover of crowds"},
		"evening": {-2, "Evening shifts reduce visual confirmation quality"},
		"night":   {-6, "Night operation limits observation and photography"},
	}
	occupationEffects = map[string]factorEffect{
		"office":       {3, "Office routine gives predictable anchors"},
		"shift-worker": {-2, "Shift work scatters the target's schedule"},
		"freelance":    {-4, "Freelance schedule offers no fixed anchors"},
	}
	commuteEffects = map[string]factorEffect{
		"regular":   {4, "Regular commute yields reliable interception points"},
		"irregular": {-5, "Irregular movement defeats route planning"},
		"remote":    {-2, "Remote work removes commute observation windows"},
	}
	weatherEffects = map[string]factorEffect{
		"clear": {2, "Clear weather supports photography"},
		"rain":  {-3, "Rain degrades visibility and image quality"},
		"snow":  {-5, "Snow slows movement and marks presence"},
	}
	densityEffects = map[string]factorEffect{
		"urban":    {2, "Urban density provides blending cover"},
		"suburban": {0, ""},
		"rural":    {-4, "Rural settings expose unfamiliar observers"},
	}
	escortEffects = map[string]factorEffect{
		"none":     {2, "Unaccompanied target simplifies observation"},
		"single":   {-2, "An escort doubles the counter-surveillance eyes"},
		"multiple": {-6, "Multiple escorts make close observation impractical"},
	}
	budgetEffects = map[string]factorEffect{
		"tight":    {-4, "Tight budget caps operative hours"},
		"standard": {0, ""},
		"ample":    {3, "Ample budget allows extended coverage"},
	}
	weekdayEffects = map[string]factorEffect{
		"weekday": {2, "Weekday routines are the most repeatable"},
		"weekend": {-2, "Weekend behavior varies widely"},
	}
)

// accumulator collects the running score with its paired explanations.
// Every applied delta produces exactly one user-facing string.
type accumulator struct {
	score              int
	keyFactors         []string
	riskAlerts         []string
	recommendedActions []string
}

func (a *accumulator) apply(effect factorEffect) {
	if effect.delta == 0 {
		return
	}
	a.score += effect.delta
	if effect.delta > 0 {
		a.keyFactors = append(a.keyFactors, effect.note)
	} else {
		a.riskAlerts = append(a.riskAlerts, effect.note)
	}
}

func (a *accumulator) applyValue(effects map[string]factorEffect, value string) {
	if effect, ok := effects[value]; ok {
		a.apply(effect)
	}
}

func (a *accumulator) recommend(action string) {
	a.recommendedActions = append(a.recommendedActions, action)
}

// categoryHeuristic applies a scenario category's variable deltas to the
// shared accumulator
type categoryHeuristic func(vars scenario.ValueMap, acc *accumulator)

var categoryHeuristics = map[string]categoryHeuristic{
	scenario.CategoryTail:          tailHeuristic,
	scenario.CategoryBackground:    backgroundHeuristic,
	scenario.CategoryCorporate:     corporateHeuristic,
	scenario.CategoryMissingPerson: missingPersonHeuristic,
}

func tailHeuristic(vars scenario.ValueMap, acc *accumulator) {
	switch vars["target-alertness"].Select {
	case "high":
		acc.apply(factorEffect{-8, "Alerted target may already watch for observers"})
		acc.recommend("Rotate operatives daily to avoid recognition")
	case "low":
		acc.apply(factorEffect{5, "Unsuspecting target lowers detection risk"})
	}
	if vars["has-photo"].Bool {
		acc.apply(factorEffect{4, "A recent photo removes identification uncertainty"})
	} else {
		acc.recommend("Obtain a recent photo of the target before field work")
	}
	days := vars["observation-days"].Number
	switch {
	case days >= 5:
		acc.apply(factorEffect{3, "Extended observation window raises capture odds"})
	case days <= 1:
		acc.apply(factorEffect{-4, "A single observation day leaves no retry margin"})
	}
	if vars["secondary-vehicle"].Bool {
		acc.apply(factorEffect{3, "Standby vehicle covers sudden transit changes"})
	}
}

func backgroundHeuristic(vars scenario.ValueMap, acc *accumulator) {
	if vars["subject-consent"].Bool {
		acc.apply(factorEffect{6, "Subject consent unlocks primary record sources"})
	} else {
		acc.apply(factorEffect{-4, "Without consent only public records are reachable"})
		acc.recommend("Confirm which public registers cover the subject's history")
	}
	switch vars["record-depth"].Select {
	case "deep":
		acc.apply(factorEffect{4, "Deep record check cross-validates findings"})
	case "basic":
		acc.apply(factorEffect{-2, "Basic check may miss secondary records"})
	}
	if vars["region-count"].Number > 3 {
		acc.apply(factorEffect{-3, "Multi-region coverage stretches verification time"})
	}
}

func corporateHeuristic(vars scenario.ValueMap, acc *accumulator) {
	if vars["insider-contact"].Bool {
		acc.apply(factorEffect{7, "A cooperative insider shortcuts document discovery"})
	}
	switch vars["document-access"].Select {
	case "full":
		acc.apply(factorEffect{5, "Full document access grounds the findings"})
	case "none":
		acc.apply(factorEffect{-6, "No document access forces indirect reconstruction"})
		acc.recommend("Request a limited document scope from the client's counsel")
	}
	if vars["staff-interviews"].Number >= 5 {
		acc.apply(factorEffect{3, "Broad interview base corroborates the account"})
	}
}

func missingPersonHeuristic(vars scenario.ValueMap, acc *accumulator) {
	days := vars["days-since-contact"].Number
	switch {
	case days > 14:
		acc.apply(factorEffect{-10, "Traces older than two weeks degrade sharply"})
		acc.recommend("Widen the search to transit and financial records immediately")
	case days <= 2:
		acc.apply(factorEffect{6, "A fresh trail keeps witness memory reliable"})
	}
	if vars["last-location-known"].Bool {
		acc.apply(factorEffect{5, "Known last location anchors the search grid"})
	} else {
		acc.apply(factorEffect{-6, "Unknown last location forces a wide initial sweep"})
	}
	if vars["vulnerable-person"].Bool {
		acc.apply(factorEffect{-4, "Vulnerable person raises time pressure on the search"})
		acc.recommend("File a police missing-person report in parallel")
	}
	switch vars["search-radius"].Select {
	case "national":
		acc.apply(factorEffect{-5, "Nationwide radius dilutes field coverage"})
	case "local":
		acc.apply(factorEffect{3, "Local radius concentrates the field effort"})
	}
}

// Generic fallback lines so no output list is ever empty
const (
	defaultKeyFactor  = "Case parameters are within the typical operating profile"
	defaultRiskAlert  = "No elevated risk factors identified from the provided parameters"
	defaultActionLine = "Proceed with the standard engagement checklist"
)

// TwinScorer produces deterministic case outcome estimates
type TwinScorer struct {
	registry *scenario.Registry
}

// NewTwinScorer creates a scorer over the given variable registry
func NewTwinScorer(registry *scenario.Registry) *TwinScorer {
	return &TwinScorer{registry: registry}
}

// Score estimates the case success rate for a scenario category, its fixed
// factors, and a raw (untrusted) scenario variable map. The variable map is
// sanitized against the category's definitions before any delta applies.
// An unknown category is a configuration error.
func (s *TwinScorer) Score(category string, factors FixedFactors, rawVars map[string]any) (types.TwinAnalysis, error) {
	vars, err := s.registry.Sanitize(category, rawVars)
	if err != nil {
		return types.TwinAnalysis{}, fmt.Errorf("failed to sanitize scenario variables: %w", err)
	}

	acc := &accumulator{score: twinBaseScore}
	acc.applyValue(categoryEffects, category)
	acc.applyValue(teamEffects, factors.TeamComposition)
	acc.applyValue(vehicleEffects, factors.Vehicle)
	acc.applyValue(shiftEffects, factors.Shift)
	acc.applyValue(occupationEffects, factors.TargetOccupation)
	acc.applyValue(commuteEffects, factors.CommutePattern)
	acc.applyValue(weatherEffects, factors.Weather)
	acc.applyValue(densityEffects, factors.LocationDensity)
	acc.applyValue(escortEffects, factors.EscortSize)
	acc.applyValue(budgetEffects, factors.BudgetBand)
	acc.applyValue(weekdayEffects, factors.Weekday)

	if heuristic, ok := categoryHeuristics[category]; ok {
		heuristic(vars, acc)
	}

	score := clampInt(acc.score, twinMinScore, twinMaxScore)

	return types.TwinAnalysis{
		ID:                 uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		SuccessRate:        score,
		ConfidenceLabel:    types.ConfidenceLabelForScore(score),
		KeyFactors:         orDefault(acc.keyFactors, defaultKeyFactor),
		RiskAlerts:         orDefault(acc.riskAlerts, defaultRiskAlert),
		RecommendedActions: orDefault(acc.recommendedActions, defaultActionLine),
		Timeline:           buildTimeline(category, vars),
		Source:             types.SourceHeuristicOnly,
	}, nil
}

// buildTimeline projects the operation phases for the scenario category
func buildTimeline(category string, vars scenario.ValueMap) []types.TimelinePhase {
	fieldDays := 3
	fieldName := "Field work"
	switch category {
	case scenario.CategoryTail:
		if d := int(vars["observation-days"].Number); d > 0 {
			fieldDays = d
		}
		fieldName = "Observation"
	case scenario.CategoryBackground:
		fieldDays = 2 + int(vars["region-count"].Number)
		fieldName = "Records verification"
	case scenario.CategoryCorporate:
		fieldDays = 4 + int(vars["staff-interviews"].Number)/3
		fieldName = "Interviews and document review"
	case scenario.CategoryMissingPerson:
		fieldName = "Trace and canvass"
		if vars["search-radius"].Select == "national" {
			fieldDays = 10
		} else {
			fieldDays = 5
		}
	}

	return []types.TimelinePhase{
		{Name: "Preparation", DurationDays: 1, Description: "Scope confirmation and resource assignment"},
		{Name: fieldName, DurationDays: fieldDays},
		{Name: "Analysis and report", DurationDays: 2, Description: "Findings review and client report"},
	}
}

func orDefault(items []string, fallback string) []string {
	if len(items) == 0 {
		return []string{fallback}
	}
	return items
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
