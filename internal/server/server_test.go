package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hykwon-dot/lira-intel/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: 0})
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body) //nolint:errcheck
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleInsights_DetectsSignals(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/insights", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "계속 협박 문자를 받고 있습니다."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Signals, 1)
	assert.Equal(t, "violence-threat", result.Signals[0].ID)
	assert.Equal(t, types.RiskMedium, result.OverallRisk)
}

func TestHandleInsights_EmptyMessagesRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/insights", map[string]any{"messages": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInsights_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/insights", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInsightsStream_EmitsEvents(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/insights/stream", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "협박을 당하고 있어요."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: signals")
	assert.Contains(t, body, "event: insights")
	assert.Contains(t, body, "event: complete")
}

func TestHandleMatch_RanksCandidates(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/match", MatchRequest{
		Candidates: []types.CandidateProfile{
			{ID: "inv-1", Name: "서울 탐정", RatingAverage: 4.5, SuccessRate: 80, ExperienceYears: 10, Specialties: []string{"외도"}},
			{ID: "inv-2", Name: "부산 탐정", RatingAverage: 3.0, SuccessRate: 40, ExperienceYears: 2},
		},
		Context: types.CaseContext{Keywords: []string{"외도"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Matches []types.MatchResult `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "inv-1", resp.Matches[0].CandidateID)
}

func TestHandleMatch_NoCandidatesRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/match", MatchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTwin_HeuristicOnly(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/twin", map[string]any{
		"category": "background",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis types.TwinAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, types.SourceHeuristicOnly, analysis.Source)
	assert.GreaterOrEqual(t, analysis.SuccessRate, 8)
	assert.LessOrEqual(t, analysis.SuccessRate, 96)
}

func TestHandleTwin_UnknownCategory(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/twin", map[string]any{
		"category": "astral-projection",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTwin_MissingCategory(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/twin", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompliance_FindsViolations(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/compliance", map[string]any{
		"segments": []map[string]string{
			{"label": "message-1", "text": "제 주민등록번호는 900101-1234567 입니다."},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.ComplianceReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.Issues)
	assert.Equal(t, types.SeverityHigh, report.OverallSeverity)
	assert.Less(t, report.Metrics.Privacy, 100)
}

func TestHandleCompliance_NoSegmentsRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/compliance", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrends_ReflectsRecordedSignals(t *testing.T) {
	s := newTestServer(t)

	doRequest(s, http.MethodPost, "/insights", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "협박 때문에 무섭습니다."},
		},
	})

	rec := doRequest(s, http.MethodGet, "/trends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "violence-threat")
}

func TestHandleScenarioCategories(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/scenario/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tail")
	assert.Contains(t, rec.Body.String(), "missing-person")
}

func TestHandleScenarioVariables(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/scenario/categories/tail", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "target-alertness")

	rec = doRequest(s, http.MethodGet, "/scenario/categories/nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyses_WithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/analyses", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(s, http.MethodGet, "/analyses/6e2cb0c7-4b64-4f7a-9a3e-000000000000", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNotFound{Resource: "analysis", ID: "x"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrUnknownCategory{Category: "x"}))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(&ErrPersistenceDisabled{}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
