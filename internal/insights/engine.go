// Package insights combines signal detection, trend analysis, and the
// heuristic scorers into the realtime intake analysis served to the chat
// layer. The whole pipeline is deterministic so a usable result is always
// available within one store round-trip.
package insights

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hykwon-dot/lira-intel/internal/detect"
	"github.com/hykwon-dot/lira-intel/internal/rules"
	"github.com/hykwon-dot/lira-intel/internal/trend"
	"github.com/hykwon-dot/lira-intel/internal/types"
	"github.com/hykwon-dot/lira-intel/internal/validation"
)

// Output caps for the insights response
const (
	maxFollowUpQuestions = 4
	maxNextActions       = 5
	maxRecommendations   = 4
)

// Risk score composition: each signal contributes
// severityWeight * (riskBasePoints + riskConfidencePoints * confidence).
const (
	riskBasePoints       = 20.0
	riskConfidencePoints = 30.0
)

// Request is the input contract for a realtime insights call
type Request struct {
	Messages     []types.Message    `json:"messages" validate:"required,min=1,dive"`
	Summary      *types.CaseSummary `json:"summary,omitempty"`
	Keywords     []string           `json:"keywords,omitempty"`
	PriorSummary string             `json:"prior_summary,omitempty"`
}

// Engine runs the realtime insights pipeline
type Engine struct {
	detector  *detect.Detector
	store     trend.Store
	validator *validation.Validator
	now       func() time.Time
}

// NewEngine creates an engine over the built-in risk rule table and the given
// trend store
func NewEngine(store trend.Store) *Engine {
	return &Engine{
		detector:  detect.New(rules.RiskTable()),
		store:     store,
		validator: validation.New(),
		now:       time.Now,
	}
}

// Analyze validates the request, detects signals over the full conversation
// text, records them into the trend store, and assembles the combined
// response. Store outages never fail the call; the response then simply
// carries no trend-derived alerts.
func (e *Engine) Analyze(ctx context.Context, req Request) (*types.Insights, error) {
	if err := e.validator.Struct(req); err != nil {
		return nil, err
	}

	now := e.now().UTC()
	text := conversationText(req)
	signals := e.detector.Detect(text)

	snapshots, err := e.store.Record(ctx, signals)
	if err != nil {
		// Resilient stores swallow outages themselves; a hard error
		// here still must not kill the request.
		snapshots = nil
	}

	var urgency, caseType string
	if req.Summary != nil {
		urgency = req.Summary.Urgency
		caseType = req.Summary.CaseType
	}
	alerts := trend.DeriveAlerts(snapshots, signals, urgency, caseType, now)
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})

	riskScore := computeRiskScore(signals)
	overall := types.RiskLevelForScore(riskScore)

	caseCtx := types.CaseContext{
		Summary:     req.Summary,
		Keywords:    req.Keywords,
		Signals:     signals,
		OverallRisk: overall,
	}

	return &types.Insights{
		GeneratedAt:       now,
		RiskScore:         riskScore,
		OverallRisk:       overall,
		Signals:           signals,
		Alerts:            alerts,
		Recommendations:   Recommend(caseCtx, maxRecommendations),
		NextActions:       nextActions(signals, alerts),
		ActionPlan:        buildActionPlan(signals, overall, req.Summary),
		FlowSimulation:    simulateFlow(caseType, urgency, overall),
		FollowUpQuestions: followUpQuestions(req.Summary),
		Summary:           summarize(riskScore, overall, signals, alerts),
	}, nil
}

// conversationText concatenates the prior summary and every message body for
// detection
func conversationText(req Request) string {
	var sb strings.Builder
	if req.PriorSummary != "" {
		sb.WriteString(req.PriorSummary)
		sb.WriteString("\n")
	}
	for _, msg := range req.Messages {
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// computeRiskScore folds signal severities and confidences into a 0-100 score
func computeRiskScore(signals []types.Signal) int {
	total := 0.0
	for _, sig := range signals {
		total += sig.Severity.Weight() * (riskBasePoints + riskConfidencePoints*sig.Confidence)
	}
	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// nextActions collects the immediate steps implied by signals and alerts
func nextActions(signals []types.Signal, alerts []types.Alert) []string {
	var actions []string
	for _, alert := range alerts {
		if alert.Suggestion != "" {
			actions = append(actions, alert.Suggestion)
		}
	}
	for _, sig := range signals {
		if sig.Guidance != "" {
			actions = append(actions, sig.Guidance)
		}
	}
	return capUnique(actions, maxNextActions)
}

// followUpQuestions picks at most four open questions from the summary
func followUpQuestions(summary *types.CaseSummary) []string {
	if summary == nil {
		return nil
	}
	questions := append([]string{}, summary.NextQuestions...)
	questions = append(questions, summary.MissingDetails...)
	return capUnique(questions, maxFollowUpQuestions)
}

func summarize(score int, overall types.RiskLevel, signals []types.Signal, alerts []types.Alert) string {
	var sb strings.Builder
	sb.WriteString("Risk ")
	sb.WriteString(strings.ToUpper(string(overall)))
	sb.WriteString(" (")
	sb.WriteString(strconv.Itoa(score))
	sb.WriteString("/100)")
	if len(signals) > 0 {
		sb.WriteString(": ")
		titles := make([]string, 0, len(signals))
		for _, sig := range signals {
			titles = append(titles, sig.Title)
		}
		sb.WriteString(strings.Join(titles, "; "))
	}
	if len(alerts) > 0 {
		sb.WriteString(". ")
		sb.WriteString(strconv.Itoa(len(alerts)))
		sb.WriteString(" active alert(s).")
	}
	return sb.String()
}

// capUnique trims a list to n entries, dropping case-insensitive duplicates
func capUnique(items []string, n int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
		if len(out) == n {
			break
		}
	}
	return out
}
