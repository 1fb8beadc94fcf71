package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehha/chicalc/internal/backend"
	"github.com/sehha/chicalc/internal/catalog"
)

type fakeBackend struct {
	chatErr   error
	lastQuery string
	lastID    string
}

func (f *fakeBackend) Chat(_ context.Context, req backend.ChatRequest) (*backend.ChatResponse, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return &backend.ChatResponse{Reply: "echo: " + req.Message, SessionID: "s-1"}, nil
}

func (f *fakeBackend) Search(_ context.Context, query string) (*backend.SearchResponse, error) {
	f.lastQuery = query
	return &backend.SearchResponse{Query: query, Results: []backend.SearchResult{{ID: "metformin", Kind: "drug", Covered: true}}}, nil
}

func (f *fakeBackend) InsuranceStatus(_ context.Context, nationalID string) (*backend.InsuranceStatus, error) {
	f.lastID = nationalID
	return &backend.InsuranceStatus{NationalID: nationalID, Insured: true, PolicyClass: "A"}, nil
}

func newTestServer(client backend.Client) http.Handler {
	return New(catalog.Default(), client, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}
	return rec, payload
}

func TestHealth(t *testing.T) {
	rec, payload := do(t, newTestServer(nil), http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", payload["status"])
	assert.Contains(t, payload, "uptime")
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestCatalogRoutes(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodGet, "/api/v1/catalog/sub-limits", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["subLimits"], len(catalog.Default().SubLimits()))

	rec, payload = do(t, h, http.MethodGet, "/api/v1/catalog/exclusions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, payload["exclusions"])

	rec, payload = do(t, h, http.MethodGet, "/api/v1/catalog/services?preventive=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, payload["services"], len(catalog.Default().PreventiveServices()))

	rec, payload = do(t, h, http.MethodGet, "/api/v1/catalog/privileges/Family-Medicine", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "family_medicine", payload["specialty"])

	rec, payload = do(t, h, http.MethodGet, "/api/v1/catalog/privileges/astrology", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", payload["error"])
}

func TestPremiumImpact(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/premium-impact", `{"serviceId":"diabetes_management"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "3795", payload["additionalPremiumPerMember"])
	assert.Equal(t, "75.89", payload["totalImpactPercent"])
	assert.EqualValues(t, 1000, payload["memberCount"])

	inline := `{"service":{"id":"custom","category":"Cardiovascular","prevalencePerThousand":"185","averageTreatmentCostSAR":"24500"},"memberCount":1000,"basePremiumSAR":"5000"}`
	rec, payload = do(t, h, http.MethodPost, "/api/v1/premium-impact", inline)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "4125", payload["additionalPremiumPerMember"])
}

func TestPremiumImpact_Errors(t *testing.T) {
	h := newTestServer(nil)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"empty body", "", http.StatusBadRequest, "invalid_request"},
		{"malformed json", "{", http.StatusBadRequest, "invalid_request"},
		{"no service", `{}`, http.StatusBadRequest, "invalid_request"},
		{"unknown service", `{"serviceId":"teleportation"}`, http.StatusNotFound, "not_found"},
		{"zero members", `{"serviceId":"diabetes_management","memberCount":0}`, http.StatusBadRequest, "invalid_input"},
		{"zero base premium", `{"serviceId":"diabetes_management","basePremiumSAR":0}`, http.StatusBadRequest, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, payload := do(t, h, http.MethodPost, "/api/v1/premium-impact", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, payload["error"])
			assert.NotEmpty(t, payload["request_id"])
		})
	}
}

func TestRequestBodyTooLarge(t *testing.T) {
	body := `{"serviceId":"` + strings.Repeat("x", maxRequestBody) + `"}`
	rec, payload := do(t, newTestServer(nil), http.MethodPost, "/api/v1/premium-impact", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "invalid_request", payload["error"])
}

func TestSubLimitImpact(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/sub-limit-impact", `{"subLimit":"dental","newLimitSAR":4000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "60.84", payload["premiumImpactSAR"])
	assert.Equal(t, "increase", payload["direction"])

	rec, payload = do(t, h, http.MethodPost, "/api/v1/sub-limit-impact", `{"subLimit":"dental","newCopaymentPercent":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", payload["error"])
	assert.NotEmpty(t, payload["field"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/sub-limit-impact", `{"subLimit":"spa_days","newLimitSAR":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/sub-limit-impact", `{"newLimitSAR":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBreakEven(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/break-even", `{"subLimit":"dental","newLimitSAR":4000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "copay", payload["target"])
	assert.Equal(t, true, payload["converged"])
	impact, ok := payload["impact"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "neutral", impact["direction"])

	rec, payload = do(t, h, http.MethodPost, "/api/v1/break-even", `{"subLimit":"dental","target":"limit","newCopaymentPercent":30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no_break_even", payload["error"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/break-even", `{"subLimit":"dental","target":"deductible"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/break-even", `{"subLimit":"spa_days"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortfolioImpact(t *testing.T) {
	body := `{"changes":[{"subLimit":"dental","newLimitSAR":"4000"},{"subLimit":"optical","newLimitSAR":"1500"}]}`
	rec, payload := do(t, newTestServer(nil), http.MethodPost, "/api/v1/portfolio-impact", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "100.08", payload["totalPremiumImpactSAR"])
	assert.Equal(t, "5100.08", payload["newPremiumPerMember"])
	assert.Len(t, payload["individualImpacts"], 2)
}

func TestExclusionImpact(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/exclusion-impact", `{"exclusion":"ivf"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ivf", payload["exclusionId"])
	assert.Equal(t, "674", payload["premiumImpactSAR"])

	raw := `{"prevalencePerThousand":25,"avgTreatmentCostSAR":35000,"utilizationRate":0.65,"basePremiumSAR":5000}`
	rec, payload = do(t, h, http.MethodPost, "/api/v1/exclusion-impact", raw)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "56.16", payload["pmpmCost"])
	band, ok := payload["sensitivityAnalysis"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, band, "worstCase")

	rec, _ = do(t, h, http.MethodPost, "/api/v1/exclusion-impact", `{"prevalencePerThousand":25}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/exclusion-impact", `{"exclusion":"ivf","utilizationRate":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEligibility(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/eligibility",
		`{"serviceId":"breast_cancer_screening","profile":{"age":45,"gender":"F"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, payload["eligible"])
	assert.Equal(t, "chi_basic", payload["coverage"])

	rec, payload = do(t, h, http.MethodPost, "/api/v1/eligibility",
		`{"serviceId":"breast_cancer_screening","profile":{"age":45,"gender":"male"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["eligible"])
	assert.Equal(t, "wrong_gender", payload["reasonCode"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/eligibility",
		`{"serviceId":"diabetes_management","profile":{"age":45,"gender":"male"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/eligibility",
		`{"serviceId":"breast_cancer_screening","profile":{"age":45,"gender":"other"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/eligibility",
		`{"serviceId":"breast_cancer_screening","profile":{"age":-1,"gender":"female"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEligibilityScreen(t *testing.T) {
	h := newTestServer(nil)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/eligibility/screen",
		`{"profile":{"age":67,"gender":"male","conditions":["smoking"]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results, ok := payload["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, len(catalog.Default().PreventiveServices()))

	rec, payload = do(t, h, http.MethodPost, "/api/v1/eligibility/screen",
		`{"profile":{"age":67,"gender":"male","conditions":["smoking"]},"services":["aaa_screening"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	results = payload["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "eligible_risk_factors", first["reasonCode"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/eligibility/screen",
		`{"profile":{"age":30,"gender":"female"},"services":["nope"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBackendRoutes(t *testing.T) {
	fake := &fakeBackend{}
	h := newTestServer(fake)

	rec, payload := do(t, h, http.MethodPost, "/api/v1/chat", `{"message":"هل التطعيم مغطى؟","lang":"ar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "echo: هل التطعيم مغطى؟", payload["reply"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, payload = do(t, h, http.MethodGet, "/api/v1/search?q=metformin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metformin", fake.lastQuery)
	assert.Len(t, payload["results"], 1)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, payload = do(t, h, http.MethodGet, "/api/v1/insurance-status/1012345678", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1012345678", fake.lastID)
	assert.Equal(t, true, payload["insured"])

	rec, _ = do(t, h, http.MethodGet, "/api/v1/insurance-status/3012345678", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"upstream status", &backend.StatusError{StatusCode: 503, Body: "down"}, http.StatusBadGateway},
		{"transport failure", errors.New("connection refused"), http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(&fakeBackend{chatErr: tt.err})
			rec, _ := do(t, h, http.MethodPost, "/api/v1/chat", `{"message":"hi"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBackendNotConfigured(t *testing.T) {
	rec, payload := do(t, newTestServer(nil), http.MethodGet, "/api/v1/search?q=x", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "backend_unavailable", payload["error"])
}

func TestUnknownRoute(t *testing.T) {
	rec, payload := do(t, newTestServer(nil), http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", payload["error"])

	rec, _ = do(t, newTestServer(nil), http.MethodDelete, "/api/v1/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
