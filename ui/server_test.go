package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"epilag/adapters/metadata"
	"epilag/app"
	"epilag/domain/signal"
	"epilag/internal/config"
	"epilag/internal/session"
	"epilag/ports"
)

const testCatalog = `data_source,signal,geo_type,time_type,min_time,max_time
fb-survey,smoothed_cli,state,day,2021-03-01,2021-03-08
jhu-csse,confirmed_incidence_num,state,day,2021-03-01,2021-03-08
`

// cannedFetcher serves a fixed jagged series per signal, the second one
// delayed by a day.
type cannedFetcher struct{}

func (cannedFetcher) FetchSeries(_ context.Context, req ports.FetchRequest) (*signal.Series, error) {
	delay := 0
	if req.Signal == "confirmed_incidence_num" {
		delay = 1
	}
	s := &signal.Series{
		Source:     req.Source,
		Signal:     req.Signal,
		GeoType:    req.GeoType,
		Resolution: req.Resolution,
	}
	for i, v := range []float64{1, 5, 2, 8, 3, 9, 4} {
		s.Observations = append(s.Observations, signal.Observation{
			GeoValue:  req.GeoValue,
			TimeValue: signal.Date(2021, time.March, 1+i+delay),
			Value:     signal.Float(v),
		})
	}
	return s, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	repo, err := metadata.Load(strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("failed to load test catalog: %v", err)
	}
	store := session.NewStore(time.Minute)
	analysis := app.NewAnalysisService(cannedFetcher{}, repo, store)
	cfg := &config.Config{}
	cfg.Server.GinMode = "test"
	return NewServer(cfg, analysis, app.NewMetadataService(repo))
}

func doJSON(t *testing.T, server *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, payload
}

func createSession(t *testing.T, server *Server) string {
	t.Helper()
	rec, payload := doJSON(t, server, http.MethodPost, "/api/sessions", `{
		"source1": "fb-survey", "signal1": "smoothed_cli",
		"source2": "jhu-csse", "signal2": "confirmed_incidence_num",
		"geo_type": "state", "geo_value": "ca"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("session creation returned %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("session response has no id")
	}
	return id
}

func TestListSignals(t *testing.T) {
	server := testServer(t)
	rec, payload := doJSON(t, server, http.MethodGet, "/api/signals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	signals, ok := payload["signals"].([]any)
	if !ok || len(signals) != 2 {
		t.Errorf("expected 2 signals, got %v", payload["signals"])
	}
}

func TestSharedDates(t *testing.T) {
	server := testServer(t)
	rec, payload := doJSON(t, server, http.MethodGet,
		"/api/signals/shared/dates?source1=fb-survey&signal1=smoothed_cli&source2=jhu-csse&signal2=confirmed_incidence_num&geo_type=state", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if payload["init_date"] != "2021-03-01" || payload["final_date"] != "2021-03-08" {
		t.Errorf("unexpected window: %v .. %v", payload["init_date"], payload["final_date"])
	}
	if payload["max_lag"] != float64(3) {
		t.Errorf("max_lag = %v, want 3", payload["max_lag"])
	}
}

func TestSessionAndSweepFlow(t *testing.T) {
	server := testServer(t)
	id := createSession(t, server)

	// Single-lag evaluation at the true delay.
	rec, payload := doJSON(t, server, http.MethodGet,
		"/api/sessions/"+id+"/correlation?lag=1&method=pearson", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("correlation status = %d: %s", rec.Code, rec.Body.String())
	}
	if corr, ok := payload["correlation"].(float64); !ok || corr != 1 {
		t.Errorf("correlation = %v, want 1", payload["correlation"])
	}

	// Full sweep lands on the same lag.
	rec, payload = doJSON(t, server, http.MethodPost, "/api/sessions/"+id+"/sweep?method=pearson", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep status = %d: %s", rec.Code, rec.Body.String())
	}
	if payload["best_lag"] != float64(1) {
		t.Errorf("best_lag = %v, want 1", payload["best_lag"])
	}
	profile, ok := payload["profile"].([]any)
	if !ok || len(profile) != 7 {
		t.Errorf("profile length = %d, want 7", len(profile))
	}
}

func TestSessionNotFound(t *testing.T) {
	server := testServer(t)
	rec, payload := doJSON(t, server, http.MethodGet,
		"/api/sessions/00000000-0000-0000-0000-000000000000/correlation?lag=0", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if payload["code"] != "SESSION_NOT_FOUND" {
		t.Errorf("code = %v, want SESSION_NOT_FOUND", payload["code"])
	}
}

func TestMalformedSessionID(t *testing.T) {
	server := testServer(t)
	rec, _ := doJSON(t, server, http.MethodGet, "/api/sessions/not-a-uuid/correlation", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMethodInfo(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/methods/spearman/info", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Error("method info did not render markdown to HTML")
	}

	rec2, _ := doJSON(t, server, http.MethodGet, "/api/methods/cosine/info", "")
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("unknown method status = %d, want 400", rec2.Code)
	}
}

func TestSweepExport(t *testing.T) {
	server := testServer(t)
	id := createSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/sweep/export?method=pearson", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Errorf("content type = %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}
