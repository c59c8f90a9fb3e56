// Package blend merges the deterministic heuristic analysis with an optional
// externally generated one. The orchestrator is the only component allowed to
// call the external generator; any failure, timeout, or schema mismatch on
// that path degrades to the heuristic-only result, never to an error for the
// caller.
package blend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"

	"github.com/hykwon-dot/lira-intel/internal/llm"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// Blend policy constants
const (
	externalWeight  = 0.6
	heuristicWeight = 0.4
	maxListItems    = 6
	scoreMin        = 8
	scoreMax        = 96

	// DefaultTimeout bounds the single external generation attempt
	DefaultTimeout = 8 * time.Second
)

// ExternalAnalysis is the JSON contract the external generator must satisfy.
// Anything that fails schema validation is treated as absent.
type ExternalAnalysis struct {
	SuccessRate        int      `json:"success_rate"`
	KeyFactors         []string `json:"key_factors"`
	RiskAlerts         []string `json:"risk_alerts"`
	RecommendedActions []string `json:"recommended_actions"`
	KnowledgeBase      []string `json:"knowledge_base,omitempty"`
	Rationale          string   `json:"rationale,omitempty"`
}

// externalSchema validates the generator output before it may influence the
// blended result
const externalSchema = `{
  "type": "object",
  "required": ["success_rate", "key_factors", "risk_alerts", "recommended_actions"],
  "properties": {
    "success_rate": {"type": "integer", "minimum": 0, "maximum": 100},
    "key_factors": {"type": "array", "items": {"type": "string"}},
    "risk_alerts": {"type": "array", "items": {"type": "string"}},
    "recommended_actions": {"type": "array", "items": {"type": "string"}},
    "knowledge_base": {"type": "array", "items": {"type": "string"}},
    "rationale": {"type": "string"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(externalSchema)

// ParseExternal validates raw generator output against the schema and decodes
// it. Any validation failure is an error; the orchestrator maps errors to an
// absent external result.
func ParseExternal(raw string) (*ExternalAnalysis, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to validate external result: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("external result does not match schema: %v", result.Errors())
	}

	var analysis ExternalAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode external result: %w", err)
	}
	return &analysis, nil
}

// Orchestrator coordinates the heuristic and external analysis paths
type Orchestrator struct {
	client  llm.Client
	timeout time.Duration
	tier    llm.ModelTier
}

// NewOrchestrator creates an orchestrator. A nil client disables the external
// path entirely; every analysis is then heuristic-only.
func NewOrchestrator(client llm.Client, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{client: client, timeout: timeout, tier: llm.TierStandard}
}

// Analyze runs the heuristic path and, when a client is configured, the
// external generation in parallel, then blends the two. The external leg gets
// its own deadline; a timeout there never delays or fails the heuristic
// result beyond that bound. A single attempt is made, with no retries.
func (o *Orchestrator) Analyze(ctx context.Context, heuristicFn func() (types.TwinAnalysis, error), prompt string) (types.TwinAnalysis, error) {
	var (
		heuristic types.TwinAnalysis
		external  *ExternalAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		heuristic, err = heuristicFn()
		return err
	})
	if o.client != nil {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.timeout)
			defer cancel()

			raw, err := o.client.GenerateJSON(callCtx, prompt, o.tier)
			if err != nil {
				log.Printf("external generator unavailable, falling back to heuristic result: %v", err)
				return nil
			}
			parsed, err := ParseExternal(raw)
			if err != nil {
				log.Printf("external generator returned unusable output, falling back: %v", err)
				return nil
			}
			external = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.TwinAnalysis{}, err
	}

	return Blend(heuristic, external), nil
}

// Blend merges the heuristic analysis with the external one. With external
// absent the heuristic result passes through unchanged apart from its source
// tag. With external present, the numeric score is the 60/40 weighted blend
// re-clamped to the twin range, list fields merge external-first with
// case-insensitive trimmed dedup capped at six entries, and each rationale
// appears once.
func Blend(heuristic types.TwinAnalysis, external *ExternalAnalysis) types.TwinAnalysis {
	if external == nil {
		heuristic.Source = types.SourceHeuristicOnly
		return heuristic
	}

	out := heuristic
	blended := math.Round(float64(external.SuccessRate)*externalWeight + float64(heuristic.SuccessRate)*heuristicWeight)
	out.SuccessRate = clampInt(int(blended), scoreMin, scoreMax)
	out.ConfidenceLabel = types.ConfidenceLabelForScore(out.SuccessRate)
	out.KeyFactors = mergeUnique(external.KeyFactors, heuristic.KeyFactors)
	out.RiskAlerts = mergeUnique(external.RiskAlerts, heuristic.RiskAlerts)
	out.RecommendedActions = mergeUnique(external.RecommendedActions, heuristic.RecommendedActions)
	out.KnowledgeBase = mergeUnique(external.KnowledgeBase, heuristic.KnowledgeBase)
	out.Rationale = joinRationales(external.Rationale, heuristic.Rationale)
	out.Source = types.SourceBlended
	return out
}

// mergeUnique concatenates external then heuristic entries, dropping
// case-insensitive trimmed duplicates and capping the result
func mergeUnique(external, heuristic []string) []string {
	seen := make(map[string]bool, len(external)+len(heuristic))
	var out []string
	for _, item := range append(append([]string{}, external...), heuristic...) {
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
		if len(out) == maxListItems {
			break
		}
	}
	return out
}

func joinRationales(rationales ...string) string {
	var parts []string
	seen := make(map[string]bool)
	for _, r := range rationales {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" || seen[strings.ToLower(trimmed)] {
			continue
		}
		seen[strings.ToLower(trimmed)] = true
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, " ")
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
