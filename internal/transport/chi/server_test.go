package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/careercompass/internal/domain"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	careeruc "github.com/kailas-cloud/careercompass/internal/usecase/career"
	healthuc "github.com/kailas-cloud/careercompass/internal/usecase/health"
	predictuc "github.com/kailas-cloud/careercompass/internal/usecase/predict"
	searchuc "github.com/kailas-cloud/careercompass/internal/usecase/search"
	statsuc "github.com/kailas-cloud/careercompass/internal/usecase/stats"
)

// --- Fixtures ---

type fakeEmbedder struct {
	err error
}

// Embed puts weight on the "care" axis for texts mentioning patients, otherwise on "code".
func (f *fakeEmbedder) Embed(_ context.Context, text string) (prediction.EmbeddingResult, error) {
	if f.err != nil {
		return prediction.EmbeddingResult{}, f.err
	}
	if strings.Contains(strings.ToLower(text), "patient") {
		return prediction.EmbeddingResult{Embedding: []float32{1, 0}}, nil
	}
	return prediction.EmbeddingResult{Embedding: []float32{0, 1}}, nil
}

func testSnapshot() domcareer.Snapshot {
	cols := []string{"role", "description", "required_skills", "domain_industries", "job_demand_level"}
	rec := func(role, desc, skills, domains, demand string) domcareer.Record {
		return domcareer.NewRecord(map[string]string{
			"role": role, "description": desc, "required_skills": skills,
			"domain_industries": domains, "job_demand_level": demand,
		})
	}
	return domcareer.NewSnapshot("test", cols, []domcareer.Record{
		rec("Data Scientist", "builds models", "Python, SQL", "Tech, Finance", "High"),
		rec("Nurse", "cares for patients", "Patient Care", "Healthcare", "High"),
		rec("Health Data Analyst", "analyzes clinical data", "SQL, Python", "Healthcare, Tech", "Medium"),
	}, domcareer.LoadStats{})
}

func newTestRouter(t *testing.T, embedder prediction.Embedder) http.Handler {
	t.Helper()
	snap := testSnapshot()
	srv := NewServer(
		careeruc.New(snap),
		searchuc.New(snap),
		statsuc.New(snap, 0),
		predictuc.New(snap, nil, embedder, 1),
		healthuc.New(snap, nil),
		nil,
	)
	r := gochi.NewRouter()
	srv.Mount(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func listRoles(resp CareerListResponse) []string {
	out := make([]string, len(resp.Items))
	for i, it := range resp.Items {
		out[i] = it["role"]
	}
	return out
}

// --- Careers ---

func TestListCareers(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		want   []string
		query  string
	}{
		{"all", "/api/v1/careers", []string{"Data Scientist", "Nurse", "Health Data Analyst"}, ""},
		{"blank query is all", "/api/v1/careers?query=%20", []string{"Data Scientist", "Nurse", "Health Data Analyst"}, ""},
		{"query", "/api/v1/careers?query=clinical", []string{"Health Data Analyst"}, "clinical"},
		{"no match", "/api/v1/careers?query=astronaut", []string{}, "astronaut"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			resp := decode[CareerListResponse](t, rr)
			got := listRoles(resp)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("roles = %v, want %v", got, tt.want)
			}
			if resp.Total != len(tt.want) {
				t.Errorf("total = %d, want %d", resp.Total, len(tt.want))
			}
			if resp.Query != tt.query {
				t.Errorf("query = %q, want %q", resp.Query, tt.query)
			}
		})
	}
}

func TestSearchCareers(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"domain and skill", "/api/v1/search?domain=health&skill=sql", []string{"Health Data Analyst"}},
		{"query with domain", "/api/v1/search?query=data&domain=finance", []string{"Data Scientist"}},
		{"generic filters", "/api/v1/search?filter=job_demand_level:high&filter=domain_industries:health",
			[]string{"Nurse"}},
		{"empty filter value ignored", "/api/v1/search?filter=description:&skill=python",
			[]string{"Data Scientist", "Health Data Analyst"}},
		{"nothing", "/api/v1/search", []string{"Data Scientist", "Nurse", "Health Data Analyst"}},
		{"leading space in query", "/api/v1/search?query=%20care", []string{"Nurse"}},
		{"leading space in domain", "/api/v1/search?domain=%20tech", []string{"Health Data Analyst"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
			}
			got := listRoles(decode[CareerListResponse](t, rr))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("roles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchCareers_UnknownField(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/search?filter=salary:100", "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	resp := decode[map[string]string](t, rr)
	if resp["code"] != string(CodeUnknownField) {
		t.Errorf("code = %q", resp["code"])
	}
	if resp["field"] != "salary" {
		t.Errorf("field = %q", resp["field"])
	}
}

func TestSearchCareers_MalformedFilter(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/search?filter=role", "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != CodeValidationFailed {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestGetCareer(t *testing.T) {
	h := newTestRouter(t, nil)

	rr := do(t, h, http.MethodGet, "/api/v1/careers/data%20scientist", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decode[Career](t, rr); got["role"] != "Data Scientist" {
		t.Errorf("role = %q", got["role"])
	}

	rr = do(t, h, http.MethodGet, "/api/v1/careers/Astronaut", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != CodeCareerNotFound {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestGetCareer_RoleNamedSearch(t *testing.T) {
	snap := domcareer.NewSnapshot("test", []string{"role", "description"}, []domcareer.Record{
		domcareer.NewRecord(map[string]string{"role": "Search", "description": "finds things"}),
	}, domcareer.LoadStats{})
	srv := NewServer(careeruc.New(snap), searchuc.New(snap), statsuc.New(snap, 0),
		predictuc.New(snap, nil, nil, 1), healthuc.New(snap, nil), nil)
	r := gochi.NewRouter()
	srv.Mount(r)

	rr := do(t, r, http.MethodGet, "/api/v1/careers/search", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got := decode[Career](t, rr); got["description"] != "finds things" {
		t.Errorf("career = %v", got)
	}
}

func TestListFields(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/fields", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[FieldsResponse](t, rr)
	if len(resp.Fields) != 5 || resp.Fields[0] != "role" {
		t.Errorf("fields = %v", resp.Fields)
	}
}

func TestGetStats(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v1/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[StatsResponse](t, rr)
	if resp.Total != 3 {
		t.Errorf("total = %d", resp.Total)
	}
	if len(resp.DemandLevels) == 0 || resp.DemandLevels[0].Label != "High" || resp.DemandLevels[0].Count != 2 {
		t.Errorf("demand levels = %+v", resp.DemandLevels)
	}
}

// --- Predict ---

func TestPredictRole(t *testing.T) {
	rr := do(t, newTestRouter(t, &fakeEmbedder{}), http.MethodPost, "/api/v1/predict",
		`{"profile":"I enjoy helping patients"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode[PredictResponse](t, rr)
	if resp.Role != "Nurse" {
		t.Errorf("role = %q, want Nurse", resp.Role)
	}
	if len(resp.Alternatives) != 1 {
		t.Errorf("alternatives = %+v", resp.Alternatives)
	}
}

func TestPredictRole_Errors(t *testing.T) {
	tests := []struct {
		name     string
		embedder prediction.Embedder
		body     string
		status   int
		code     ErrorCode
	}{
		{"disabled", nil, `{"profile":"x"}`, http.StatusNotImplemented, CodePredictorDisabled},
		{"bad body", &fakeEmbedder{}, `{`, http.StatusBadRequest, CodeBadRequest},
		{"empty profile", &fakeEmbedder{}, `{"profile":"  "}`, http.StatusBadRequest, CodeValidationFailed},
		{"provider failure", &fakeEmbedder{err: domain.ErrPredictorProviderError}, `{"profile":"x"}`,
			http.StatusBadGateway, CodePredictorProviderError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newTestRouter(t, tt.embedder), http.MethodPost, "/api/v1/predict", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d", rr.Code, tt.status)
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

// --- Health / routing ---

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Records != 3 || resp.Checks["dataset"] != "ok" {
		t.Errorf("health = %+v", resp)
	}
}

func TestUnknownRoute(t *testing.T) {
	rr := do(t, newTestRouter(t, nil), http.MethodGet, "/api/v2/careers", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}
