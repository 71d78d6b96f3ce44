package careercompass

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testCSV = `role,description,required_skills,domain_industries
Data Scientist,builds models,"Python, SQL","Tech, Finance"
Nurse,cares for patients,Patient Care,Healthcare
Health Data Analyst,analyzes clinical data,"SQL, Python","Healthcare, Tech"
Nurse,duplicate row,x,y
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careers.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type stubEmbedder struct {
	batchCalls int
}

func (s *stubEmbedder) vec(text string) []float32 {
	if strings.Contains(strings.ToLower(text), "patient") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return s.vec(text), nil
}

func (s *stubEmbedder) BatchEmbed(_ context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vec(t)
	}
	return out, nil
}

func TestNew_RequiresDataset(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected error without a dataset option")
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), WithCSV(filepath.Join(t.TempDir(), "nope.csv")))
	if !errors.Is(err, ErrDataAccess) {
		t.Fatalf("expected ErrDataAccess, got %v", err)
	}
}

func TestClient_SearchAndGet(t *testing.T) {
	c, err := New(context.Background(), WithCSV(writeCSV(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after dedupe", c.Len())
	}

	res, err := c.Search(context.Background(), Query{Text: "data", Domain: "health"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || res.Items[0].Role() != "Health Data Analyst" {
		t.Errorf("unexpected results: %+v", res)
	}

	nurse, err := c.Get(context.Background(), "NURSE")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if nurse.Get("description") != "cares for patients" {
		t.Errorf("first occurrence should win, got %q", nurse.Get("description"))
	}

	if _, err := c.Get(context.Background(), "Astronaut"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := c.Search(context.Background(), Query{Filters: []string{"salary:1"}}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestClient_Predict(t *testing.T) {
	emb := &stubEmbedder{}
	c, err := New(context.Background(), WithCSV(writeCSV(t)), WithEmbedder(emb), WithTopK(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p, err := c.Predict(context.Background(), "I want to help patients")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if p.Role != "Nurse" || len(p.Alternatives) != 1 {
		t.Errorf("unexpected prediction: %+v", p)
	}
	if emb.batchCalls != 1 {
		t.Errorf("expected role vectors in one batch, got %d calls", emb.batchCalls)
	}
}

func TestClient_PredictDisabled(t *testing.T) {
	c, err := New(context.Background(), WithCSV(writeCSV(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Predict(context.Background(), "x"); !errors.Is(err, ErrPredictorDisabled) {
		t.Fatalf("expected ErrPredictorDisabled, got %v", err)
	}
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithCSV(writeCSV(t)), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = c.Get(context.Background(), "Nurse")
	_, _ = c.Get(context.Background(), "Astronaut")
	_, _ = c.Search(context.Background(), Query{Text: "data"})

	calls := `
# HELP careercompass_sdk_operations_total Client calls by operation and outcome (ok, not_found, invalid, error).
# TYPE careercompass_sdk_operations_total counter
careercompass_sdk_operations_total{operation="get",status="not_found"} 1
careercompass_sdk_operations_total{operation="get",status="ok"} 1
careercompass_sdk_operations_total{operation="load",status="ok"} 1
careercompass_sdk_operations_total{operation="search",status="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(calls), "careercompass_sdk_operations_total"); err != nil {
		t.Error(err)
	}

	records := `
# HELP careercompass_sdk_dataset_records Careers held by the most recently loaded client.
# TYPE careercompass_sdk_dataset_records gauge
careercompass_sdk_dataset_records 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(records), "careercompass_sdk_dataset_records"); err != nil {
		t.Error(err)
	}
}

func TestClient_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	path := writeCSV(t)
	for range 2 {
		if _, err := New(context.Background(), WithCSV(path), WithPrometheus(reg)); err != nil {
			t.Fatalf("New: %v", err)
		}
	}
	if n := testutil.CollectAndCount(reg, "careercompass_sdk_operations_total"); n != 1 {
		t.Errorf("expected one shared load series, got %d", n)
	}
}

func TestClient_LogsLoadSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(context.Background(), WithCSV(writeCSV(t)), WithLogger(logger))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, _ = c.Get(context.Background(), "Astronaut")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var load, get map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &load); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if load["op"] != "load" || load["records"] != float64(3) || load["duplicates_dropped"] != float64(1) {
		t.Errorf("unexpected load line: %v", load)
	}
	if err := json.Unmarshal([]byte(lines[1]), &get); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if get["status"] != "not_found" || get["role"] != "Astronaut" {
		t.Errorf("unexpected get line: %v", get)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrNotFound, "not_found"},
		{ErrUnknownField, "invalid"},
		{ErrPredictorDisabled, "invalid"},
		{ErrDataAccess, "error"},
		{ErrPredictorProviderError, "error"},
	}
	for _, tt := range tests {
		if got := status(tt.err); got != tt.want {
			t.Errorf("status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
