package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/logging"
	"github.com/velotools/gearrange-cli/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Registry) {
	t.Helper()
	registry := session.NewRegistry()
	srv, err := New(registry, &logging.Logger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, registry
}

func addTestEntry(t *testing.T, registry *session.Registry, name string) {
	t.Helper()
	d, err := drivetrain.FromNumbers([]int{40}, []int{11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}
	cadence, err := drivetrain.NewCadence(85, 95)
	if err != nil {
		t.Fatalf("NewCadence: %v", err)
	}
	if _, err := registry.Add(name, d, cadence); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func TestIndex_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Configure your Drivetrain") {
		t.Errorf("index missing form heading:\n%s", body)
	}
	if strings.Contains(body, "Your current Drivetrains") {
		t.Errorf("empty session should not list drivetrains:\n%s", body)
	}
}

func TestIndex_ShowsConfiguredDrivetrain(t *testing.T) {
	srv, registry := newTestServer(t)
	addTestEntry(t, registry, "Commuter")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	for _, want := range []string{"Gear Range for Commuter", "<svg", "Download Data"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q:\n%s", want, body)
		}
	}
}

func postForm(srv *Server, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/configurations", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestAddForm(t *testing.T) {
	srv, registry := newTestServer(t)

	rec := postForm(srv, url.Values{
		"name":        {"Gravel"},
		"chainring":   {"40"},
		"preset":      {"CUSTOM"},
		"cassette":    {"11,13,15"},
		"wheel":       {"700"},
		"tyre_offset": {"20"},
		"cadence":     {"85,95"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /configurations = %d, want 303.\nBody: %s", rec.Code, rec.Body.String())
	}
	entry, ok := registry.Get("Gravel")
	if !ok {
		t.Fatal("configuration was not stored")
	}
	if got := entry.Drivetrain.Cassette().Len(); got != 3 {
		t.Fatalf("stored cassette has %d cogs, want 3", got)
	}
}

func TestAddForm_InvalidInput(t *testing.T) {
	srv, registry := newTestServer(t)

	rec := postForm(srv, url.Values{
		"name":        {"Broken"},
		"chainring":   {"not-a-cog"},
		"preset":      {"CUSTOM"},
		"cassette":    {"11,13"},
		"wheel":       {"700"},
		"tyre_offset": {"20"},
		"cadence":     {"90"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid form = %d, want 400", rec.Code)
	}
	if registry.Len() != 0 {
		t.Fatal("invalid configuration was stored")
	}
	if !strings.Contains(rec.Body.String(), "not-a-cog") {
		t.Errorf("error page does not mention the bad value:\n%s", rec.Body.String())
	}
}

func TestRemoveForm(t *testing.T) {
	srv, registry := newTestServer(t)
	addTestEntry(t, registry, "Commuter")

	req := httptest.NewRequest(http.MethodPost, "/configurations/Commuter/delete", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d, want 303", rec.Code)
	}
	if registry.Len() != 0 {
		t.Fatal("configuration still in registry after delete")
	}
}

func TestDownloadCSV(t *testing.T) {
	srv, registry := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download.csv", nil))
	if got := strings.TrimSpace(rec.Body.String()); !strings.HasPrefix(got, "configuration,") || strings.Count(got, "\n") != 0 {
		t.Fatalf("empty session should yield a header-only CSV, got:\n%s", got)
	}

	addTestEntry(t, registry, "Commuter")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download.csv", nil))

	body := rec.Body.String()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if !strings.Contains(body, "Commuter,40,11,") {
		t.Errorf("CSV missing data row:\n%s", body)
	}
}

func TestAPI_AddListSpeedRemove(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	payload := `{"name":"Race","chainring":[52],"cassette":[11,12],"wheel_diameter_mm":700,"cadence_rpm":[90]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("POST api = %d, want 201.\nBody: %s", rec.Code, rec.Body.String())
	}
	var created configSummary
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Name != "Race" {
		t.Fatalf("unexpected summary: %+v", created)
	}
	if created.TyreOffsetMM != drivetrain.DefaultTyreOffset {
		t.Fatalf("tyre offset = %v, want default %v", created.TyreOffsetMM, drivetrain.DefaultTyreOffset)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/configurations", nil))
	var list []configSummary
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Race" {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/Race/speed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET speed = %d, want 200", rec.Code)
	}
	var table speedTableJSON
	if err := json.NewDecoder(rec.Body).Decode(&table); err != nil {
		t.Fatalf("decode speed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("speed table has %d rows, want 2", len(table.Rows))
	}
	if got := table.Rows[0].Bands; len(got) != 1 || got[0].Band != drivetrain.BandMiddle {
		t.Fatalf("single cadence should yield one middle band, got %+v", got)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/configurations/Race", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/configurations/Race/speed", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("speed after delete = %d, want 404", rec.Code)
	}
}

func TestAPI_InvalidPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := `{"name":"Bad","chainring":[],"cassette":[11],"wheel_diameter_mm":700,"cadence_rpm":[90]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/configurations", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty chainring = %d, want 400", rec.Code)
	}
	var errBody map[string]string
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody["error"] == "" {
		t.Fatal("error response has no message")
	}
}

func TestRenderSVGPlot(t *testing.T) {
	d, err := drivetrain.FromNumbers([]int{40}, []int{11, 13}, 700, 20)
	if err != nil {
		t.Fatalf("FromNumbers: %v", err)
	}
	cadence, err := drivetrain.NewCadence(85, 95)
	if err != nil {
		t.Fatalf("NewCadence: %v", err)
	}

	svg := string(RenderSVGPlot(d.Speed(cadence)))
	for _, want := range []string{"<svg", "km/h", "<circle", "<line"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("svg has %d middle markers, want 2", got)
	}

	if RenderSVGPlot(nil) != "" {
		t.Error("empty rows should render nothing")
	}
}
