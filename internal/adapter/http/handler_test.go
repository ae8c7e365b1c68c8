package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/adapter/memory"
	"campaign-optimizer/internal/adapter/usecase"
	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
	"campaign-optimizer/internal/core/port/mocks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	stats := mocks.NewMockStatisticsGateway(t)
	stats.EXPECT().FetchSeries(mock.Anything, mock.Anything).
		Return(nil, port.ErrUpstreamUnavailable).Maybe()
	market := usecase.NewMarketIntelligenceService(stats, nil, memory.NewMarketCache(func() time.Time { return now }), logger,
		usecase.WithMarketClock(func() time.Time { return now }))

	campaigns := memory.NewCampaignStore()
	campaigns.PutOrganization(domain.Organization{ID: "org-1", Name: "Acme", Industry: "Retail"})
	campaigns.PutCampaign(domain.Campaign{
		ID:               "camp-1",
		OrgID:            "org-1",
		UserID:           "user-1",
		CampaignType:     "search",
		Status:           "draft",
		PrimaryObjective: "sales",
		DailyBudget:      decimal.NewNullDecimal(decimal.NewFromInt(20)),
		Currency:         "CAD",
		Targeting:        domain.Targeting{Locations: []string{"Toronto"}, Interests: []string{"shopping"}},
		CreatedAt:        now.AddDate(0, -1, 0),
	})

	optimizer := usecase.NewOptimizerService(campaigns, memory.NewOptimizationStore(), market,
		usecase.NewQuestionnaireService(nil), logger, usecase.WithOptimizerClock(func() time.Time { return now }))

	srv := httptest.NewServer(NewHandler(optimizer, market, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, user string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, rd)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set(userHeader, user)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func answers() map[string]any {
	return map[string]any{
		"campaign_urgency":           "flexible",
		"budget_flexibility":         "moderate",
		"primary_success_metric":     "sales_revenue",
		"target_market_maturity":     "growing",
		"competitive_intensity":      3,
		"seasonal_business_patterns": "strong_seasonal",
		"retail_peak_season":         []string{"holiday_season"},
		"retail_customer_journey":    "short",
		"search_intent_focus":        "transactional",
		"audience_expansion":         "similar_interests",
	}
}

func TestOptimizationLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, started := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", started["status"])
	id, _ := started["id"].(string)
	require.NotEmpty(t, id)

	resp, again := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "user-1", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, again["id"])

	resp, qn := call(t, srv, http.MethodGet, "/api/v1/campaigns/camp-1/optimize/questionnaire", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, qn["questions"])

	resp, _ = call(t, srv, http.MethodGet, "/api/v1/optimizations/"+id+"/recommendations", "user-1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	bad := answers()
	delete(bad, "campaign_urgency")
	resp, body := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize/questionnaire", "user-1",
		map[string]any{"optimization_id": id, "responses": bad})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["details"])

	resp, res := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize/questionnaire", "user-1",
		map[string]any{"optimization_id": id, "responses": answers()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", res["status"])
	assert.NotNil(t, res["recommendations"])

	resp, status := call(t, srv, http.MethodGet, "/api/v1/optimizations/"+id+"/status", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, status["recommendations_ready"])

	resp, recs := call(t, srv, http.MethodGet, "/api/v1/optimizations/"+id+"/recommendations", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	market, _ := recs["market_analysis"].(map[string]any)
	require.NotNil(t, market)
	assert.Equal(t, "fallback", market["data_quality"])

	resp, applied := call(t, srv, http.MethodPost, "/api/v1/optimizations/"+id+"/apply", "user-1",
		map[string]any{"timing": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "camp-1", applied["campaign_id"])

	resp, hist := call(t, srv, http.MethodGet, "/api/v1/campaigns/camp-1/optimize/history", "user-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, hist["optimizations"], 1)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize/questionnaire", "user-1",
		map[string]any{"optimization_id": id, "responses": answers()})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAccessControl(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "intruder", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, started := call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "user-1", nil)
	id, _ := started["id"].(string)

	resp, _ = call(t, srv, http.MethodGet, "/api/v1/optimizations/"+id+"/status", "intruder", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/campaigns/other/optimize/questionnaire", "user-1",
		map[string]any{"optimization_id": id, "responses": answers()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize/questionnaire", "user-1",
		map[string]any{"responses": answers()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/campaigns/camp-1/optimize", "user-1",
		map[string]any{"optimization_type": "everything"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMarketIntelligenceEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, mi := call(t, srv, http.MethodGet, "/api/v1/market-intelligence?industry=retail", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", mi["source"])

	resp, summary := call(t, srv, http.MethodGet, "/api/v1/market-intelligence?industry=retail&summary=true", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, summary, "risk_level")

	resp, _ = call(t, srv, http.MethodGet, "/api/v1/market-intelligence?lookback_months=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWriteErrorMapping(t *testing.T) {
	h := NewHandler(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tests := []struct {
		err  error
		want int
	}{
		{port.ErrCampaignNotFound, http.StatusNotFound},
		{port.ErrOptimizationNotFound, http.StatusNotFound},
		{&port.ValidationError{Errors: []string{"x"}}, http.StatusUnprocessableEntity},
		{port.ErrOptimizationInProgress, http.StatusConflict},
		{port.ErrInvalidTransition, http.StatusConflict},
		{port.ErrNotCompleted, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}
