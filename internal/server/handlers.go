package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hykwon-dot/lira-intel/internal/compliance"
	"github.com/hykwon-dot/lira-intel/internal/db"
	"github.com/hykwon-dot/lira-intel/internal/insights"
	"github.com/hykwon-dot/lira-intel/internal/prompts"
	"github.com/hykwon-dot/lira-intel/internal/scoring"
	"github.com/hykwon-dot/lira-intel/internal/types"
)

// MatchRequest represents the request body for /match
type MatchRequest struct {
	Candidates []types.CandidateProfile `json:"candidates"`
	Context    types.CaseContext        `json:"context"`
}

// TwinRequest represents the request body for /twin
type TwinRequest struct {
	Category  string               `json:"category"`
	Factors   scoring.FixedFactors `json:"factors"`
	Variables map[string]any       `json:"variables,omitempty"`
	Summary   *types.CaseSummary   `json:"summary,omitempty"`
}

// ComplianceRequest represents the request body for /compliance
type ComplianceRequest struct {
	Segments []compliance.Segment `json:"segments"`
}

// handleInsights runs the realtime analysis pipeline over a conversation
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req insights.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.engine.Analyze(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.persistAnalysis(r, db.AnalysisKindInsights, string(result.OverallRisk), result)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleInsightsStream runs the same pipeline but streams the stages as
// server-sent events so the chat UI can render signals before the full
// response is assembled.
func (s *Server) handleInsightsStream(w http.ResponseWriter, r *http.Request) {
	var req insights.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.engine.Analyze(r.Context(), req)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteEvent("signals", result.Signals) //nolint:errcheck
	sse.WriteEvent("alerts", result.Alerts)   //nolint:errcheck
	sse.WriteEvent("insights", result)        //nolint:errcheck
	sse.WriteComplete(string(result.OverallRisk), result.RiskScore)

	s.persistAnalysis(r, db.AnalysisKindInsights, string(result.OverallRisk), result)
}

// handleMatch ranks candidates against a case context
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Candidates) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "candidates is required")
		return
	}

	matches := scoring.MatchCandidates(req.Candidates, req.Context)
	s.persistAnalysis(r, db.AnalysisKindMatch, string(req.Context.OverallRisk), matches)
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

// handleTwin runs the scenario outcome analysis, blending in the external
// generator when one is configured
func (s *Server) handleTwin(w http.ResponseWriter, r *http.Request) {
	var req TwinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Category == "" {
		s.errorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	prompt, err := s.buildTwinPrompt(req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	analysis, err := s.orchestrator.Analyze(r.Context(), func() (types.TwinAnalysis, error) {
		return s.scorer.Score(req.Category, req.Factors, req.Variables)
	}, prompt)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.persistAnalysis(r, db.AnalysisKindTwin, analysis.ConfidenceLabel, analysis)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleCompliance scans labeled text segments against the compliance rules
func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	var req ComplianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Segments) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "segments is required")
		return
	}

	report := s.scanner.Scan(req.Segments)
	s.persistAnalysis(r, db.AnalysisKindCompliance, string(report.OverallSeverity), report)
	s.jsonResponse(w, http.StatusOK, report)
}

// handleTrends returns the current trend snapshots
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.store.Load(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"snapshots": snapshots})
}

// handleScenarioCategories lists the registered scenario categories
func (s *Server) handleScenarioCategories(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"categories": s.registry.Categories()})
}

// handleScenarioVariables returns the variable definitions for one category
func (s *Server) handleScenarioVariables(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	defs, err := s.registry.Definitions(category)
	if err != nil {
		cerr := &ErrUnknownCategory{Category: category}
		s.errorResponse(w, HTTPStatus(cerr), cerr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"category": category, "variables": defs})
}

// handleListAnalyses lists persisted analysis runs
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrPersistenceDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filters := db.AnalysisFilters{
		Kind:      r.URL.Query().Get("kind"),
		RiskLevel: r.URL.Query().Get("risk_level"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filters.Limit = limit
	}

	runs, err := s.db.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": runs})
}

// handleGetAnalysis retrieves one persisted analysis run
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrPersistenceDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return
	}

	run, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		nerr := &ErrNotFound{Resource: "analysis", ID: id.String()}
		s.errorResponse(w, HTTPStatus(nerr), nerr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// persistAnalysis saves a result when a database is configured. Persistence
// failures are logged, never surfaced to the caller.
func (s *Server) persistAnalysis(r *http.Request, kind, riskLevel string, payload any) {
	if s.db == nil {
		return
	}
	if _, err := s.db.SaveAnalysis(r.Context(), kind, riskLevel, payload); err != nil {
		log.Printf("failed to persist %s analysis: %v", kind, err)
	}
}

// buildTwinPrompt renders the scenario for the external generator
func (s *Server) buildTwinPrompt(req TwinRequest) (string, error) {
	vars, err := s.registry.Sanitize(req.Category, req.Variables)
	if err != nil {
		return "", &ErrUnknownCategory{Category: req.Category}
	}
	lines, err := s.registry.FormatForPrompt(req.Category, vars)
	if err != nil {
		return "", &ErrUnknownCategory{Category: req.Category}
	}

	var variables strings.Builder
	for _, line := range lines {
		variables.WriteString("- " + line + "\n")
	}
	objective := ""
	if req.Summary != nil && req.Summary.Objective != "" {
		objective = fmt.Sprintf("Objective: %s\n", req.Summary.Objective)
	}
	factors, _ := json.Marshal(req.Factors)

	template := prompts.MustGet("twin.json", "twin_analysis")
	return prompts.Format(template, map[string]string{
		"Category":  req.Category,
		"Objective": objective,
		"Variables": variables.String(),
		"Factors":   string(factors),
	}), nil
}
