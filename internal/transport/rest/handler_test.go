package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"debtster-insights/internal/domain"
	"debtster-insights/internal/search"
	"debtster-insights/internal/service"
)

type fakeSearcher struct {
	lastQuery string
	lastOpts  search.Options
}

func (f *fakeSearcher) Search(ctx context.Context, query string, opts search.Options) (*service.SearchResponse, error) {
	f.lastQuery = query
	f.lastOpts = opts
	return &service.SearchResponse{
		Results: []domain.SearchResult{},
		Summary: domain.SearchSummary{TotalResults: 0},
	}, nil
}

func (f *fakeSearcher) AdvancedSearch(ctx context.Context, query string, opts search.Options) (*service.SearchResponse, error) {
	return f.Search(ctx, query, opts)
}

type fakeRecommender struct{}

func (f *fakeRecommender) ForCustomer(ctx context.Context, customerID string, onlyActionable bool) ([]domain.Recommendation, error) {
	return []domain.Recommendation{{CustomerID: customerID, Action: domain.ActionCall, Priority: 5}}, nil
}

func (f *fakeRecommender) Bulk(ctx context.Context, max int, onlyActionable bool) ([]domain.Recommendation, error) {
	return []domain.Recommendation{{CustomerID: "CUST_001", Action: domain.ActionLegal, Priority: 8}}, nil
}

func (f *fakeRecommender) AgentSummaries(ctx context.Context) (map[string]*domain.AgentSummary, error) {
	return map[string]*domain.AgentSummary{}, nil
}

func (f *fakeRecommender) Agents(ctx context.Context) ([]domain.Agent, error) {
	return []domain.Agent{{FullName: "משה כהן"}}, nil
}

type fakeReporter struct{}

func (f *fakeReporter) StartRecommendationsExport(ctx context.Context, selected []string, max int, userID int64) (string, error) {
	return "exports:test", nil
}

type fakeExportList struct{}

func (f *fakeExportList) GetExports(ctx context.Context, userID int64) ([]interface{}, error) {
	return nil, nil
}

func (f *fakeExportList) GetExport(ctx context.Context, exportID string, userID int64) (interface{}, error) {
	return nil, nil
}

func newTestRouter(searcher *fakeSearcher) http.Handler {
	h := NewHandler(searcher, &fakeRecommender{}, &fakeReporter{}, &fakeExportList{})
	return h.InitRouter()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	searcher := &fakeSearcher{}
	router := newTestRouter(searcher)

	rec := doJSON(t, router, http.MethodPost, "/search", map[string]any{
		"query":       "ישראל",
		"max_results": 10,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body %s", rec.Code, rec.Body.String())
	}
	if searcher.lastQuery != "ישראל" {
		t.Fatalf("query not forwarded: %q", searcher.lastQuery)
	}
	if searcher.lastOpts.MaxResults != 10 {
		t.Fatalf("max_results not forwarded: %d", searcher.lastOpts.MaxResults)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("status = %q; want success", resp.Status)
	}
}

func TestSearchEndpoint_Validation(t *testing.T) {
	router := newTestRouter(&fakeSearcher{})

	cases := []map[string]any{
		{},
		{"query": "   "},
		{"query": "ישראל", "fuzzy_threshold": 1.5},
		{"query": "ישראל", "max_results": -1},
		{"query": "ישראל", "fields": []string{"shoe_size"}},
		{"query": "ישראל", "boost_fields": map[string]float64{"shoe_size": 2}},
	}

	for i, body := range cases {
		rec := doJSON(t, router, http.MethodPost, "/search", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: status = %d; want 400", i, rec.Code)
		}
	}
}

func TestAdvancedSearchEndpoint(t *testing.T) {
	router := newTestRouter(&fakeSearcher{})

	rec := doJSON(t, router, http.MethodPost, "/search/advanced", map[string]any{"query": "ישראל משה"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
}

func TestCustomerRecommendationsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeSearcher{})

	rec := doJSON(t, router, http.MethodGet, "/customers/CUST_001/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/customers/CUST_001/recommendations?only_actionable=nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400 for bad only_actionable", rec.Code)
	}
}

func TestBulkRecommendationsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeSearcher{})

	rec := doJSON(t, router, http.MethodPost, "/recommendations", map[string]any{"max_recommendations": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/recommendations", map[string]any{"max_recommendations": -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400 for negative max", rec.Code)
	}
}

func TestAgentEndpoints(t *testing.T) {
	router := newTestRouter(&fakeSearcher{})

	if rec := doJSON(t, router, http.MethodGet, "/recommendations/agents", nil); rec.Code != http.StatusOK {
		t.Fatalf("agent summaries status = %d; want 200", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/agents", nil); rec.Code != http.StatusOK {
		t.Fatalf("agents status = %d; want 200", rec.Code)
	}
}

func TestExportEndpointsRequireUser(t *testing.T) {
	// Without the auth middleware there is no user in context, so export
	// endpoints must refuse.
	router := newTestRouter(&fakeSearcher{})

	if rec := doJSON(t, router, http.MethodPost, "/export/recommendations", map[string]any{}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/export", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}
