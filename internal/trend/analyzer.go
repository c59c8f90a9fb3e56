package trend

import (
	"fmt"
	"regexp"
	"time"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Patterns for the context-driven alert rules. Urgency wording and the
// corporate/internal case-type keywords come from the intake domain.
var (
	urgentPattern        = regexp.MustCompile(`(?i)(긴급|즉시|당장|오늘|immediate|urgent|asap)`)
	corporateCasePattern = regexp.MustCompile(`(?i)(기업|내부|직장|회사|corporate|internal|workplace)`)
)

// DeriveAlerts evaluates the alert rules against the snapshot history and the
// currently detected signals. Rules run from least to most specific and merge
// by alert id with last write winning; the result set is unordered.
//
// caseUrgency and caseType are free-text fields from the case summary and may
// be empty. now anchors the spike and trend windows.
func DeriveAlerts(snapshots []types.TrendSnapshot, current []types.Signal, caseUrgency, caseType string, now time.Time) []types.Alert {
	merged := make(map[string]types.Alert)

	spikeCutoff := now.Add(-SpikeWindow)
	trendCutoff := now.Add(-RetentionWindow)
	for _, snap := range snapshots {
		// Rule 1: short-window spike. Short-circuits the 7-day check
		// for this snapshot.
		if snap.CountSince(spikeCutoff) >= SpikeThreshold && snap.Severity != types.SeverityLow {
			id := "spike-" + snap.SignalID
			merged[id] = types.Alert{
				ID:       id,
				Title:    "Detection frequency increase",
				Severity: types.SeverityHigh,
				Message: fmt.Sprintf("%q fired %d times in the last 24 hours",
					snap.Title, snap.CountSince(spikeCutoff)),
				Suggestion: "Treat this case as escalating and shorten the response window.",
			}
			continue
		}

		// Rule 2: cumulative 7-day trend, low escalated to medium.
		if snap.CountSince(trendCutoff) >= TrendThreshold {
			severity := snap.Severity
			if severity == types.SeverityLow {
				severity = types.SeverityMedium
			}
			id := "trend-" + snap.SignalID
			merged[id] = types.Alert{
				ID:       id,
				Title:    "Recurring detection trend",
				Severity: severity,
				Message: fmt.Sprintf("%q has fired %d times over the trailing week",
					snap.Title, snap.CountSince(trendCutoff)),
				Suggestion: "Review the accumulated evidence before the next client contact.",
			}
		}
	}

	// Rule 3: urgency override, independent of trend state.
	if urgentPattern.MatchString(caseUrgency) {
		merged["urgent-response"] = types.Alert{
			ID:         "urgent-response",
			Title:      "Urgent response requested",
			Severity:   types.SeverityHigh,
			Message:    "The client requested an immediate response for this case.",
			Suggestion: "Assign an investigator within the same business day.",
		}
	}

	// Rule 4: configured case-type pattern.
	if corporateCasePattern.MatchString(caseType) {
		merged["category-pattern"] = types.Alert{
			ID:         "category-pattern",
			Title:      "Corporate case pattern detected",
			Severity:   types.SeverityMedium,
			Message:    "The case type matches the corporate or internal-affairs pattern.",
			Suggestion: "Check for conflicts of interest before assignment.",
		}
	}

	// Rule 5: more than one currently detected high-severity signal.
	highCount := 0
	for _, sig := range current {
		if sig.Severity == types.SeverityHigh {
			highCount++
		}
	}
	if highCount > 1 {
		merged["compound-risk"] = types.Alert{
			ID:       "compound-risk",
			Title:    "Compound risk",
			Severity: types.SeverityHigh,
			Message: fmt.Sprintf("%d high-severity signals are active in the current conversation",
				highCount),
			Suggestion: "Escalate to a senior reviewer before quoting the case.",
		}
	}

	alerts := make([]types.Alert, 0, len(merged))
	for _, alert := range merged {
		alerts = append(alerts, alert)
	}
	return alerts
}
