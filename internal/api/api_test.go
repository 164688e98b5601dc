package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/archiveservice"
	"github.com/dhcraft/m3gim/internal/searchindex"
	"github.com/dhcraft/m3gim/internal/testutil"
)

func testServer(t *testing.T, authEnabled bool, token string) *httptest.Server {
	t.Helper()
	f, err := os.CreateTemp("", "m3gim-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	idx, err := searchindex.Open(f.Name())
	if err != nil {
		t.Fatalf("Open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc, err := archiveservice.NewService(archive.BuildStore(testutil.Graph(t)), idx, logger)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	srv := httptest.NewServer(NewRouter(svc, authEnabled, token, nil))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode: %v\nbody: %s", err, data)
	}
	return v
}

func TestListRecords(t *testing.T) {
	srv := testServer(t, false, "")
	resp, body := get(t, srv, "/records")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	out := decode[struct {
		Total int `json:"total"`
	}](t, body)
	if out.Total != 9 {
		t.Errorf("total = %d, want 9", out.Total)
	}
}

func TestListRecordsFiltered(t *testing.T) {
	srv := testServer(t, false, "")

	_, body := get(t, srv, "/records?gruppe=Plakate")
	out := decode[struct {
		Total int `json:"total"`
	}](t, body)
	if out.Total != 1 {
		t.Errorf("Plakate total = %d, want 1", out.Total)
	}

	_, body = get(t, srv, "/records?doctype=brief&access=offen")
	out = decode[struct {
		Total int `json:"total"`
	}](t, body)
	if out.Total != 2 {
		t.Errorf("brief+offen total = %d, want 2", out.Total)
	}
}

func TestListRecordsInvalidFilter(t *testing.T) {
	srv := testServer(t, false, "")
	resp, _ := get(t, srv, "/records?access=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetRecord(t *testing.T) {
	srv := testServer(t, false, "")

	resp, body := get(t, srv, "/records/m3gim:NIM_003_1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	out := decode[struct {
		ID         string `json:"id"`
		KonvolutID string `json:"konvolutId"`
	}](t, body)
	if out.ID != "m3gim:NIM_003_1" || out.KonvolutID != "m3gim:NIM_003" {
		t.Errorf("record = %+v", out)
	}

	resp, _ = get(t, srv, "/records/m3gim:NOPE")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing record status = %d, want 404", resp.StatusCode)
	}
}

func TestGetRecordEncodedID(t *testing.T) {
	srv := testServer(t, false, "")
	resp, _ := get(t, srv, "/records/m3gim%3ANIM_003_1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("encoded id status = %d", resp.StatusCode)
	}
}

func TestKonvolute(t *testing.T) {
	srv := testServer(t, false, "")

	_, body := get(t, srv, "/konvolute")
	out := decode[struct {
		Total int `json:"total"`
	}](t, body)
	if out.Total != 2 {
		t.Errorf("konvolute = %d, want 2", out.Total)
	}

	resp, body := get(t, srv, "/konvolute/m3gim:NIM_003")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	detail := decode[struct {
		Meta struct {
			Title      string `json:"title"`
			ChildCount int    `json:"childCount"`
		} `json:"meta"`
	}](t, body)
	if detail.Meta.Title != "Briefe an Malaniuk 1952-1958" || detail.Meta.ChildCount != 2 {
		t.Errorf("meta = %+v", detail.Meta)
	}
}

func TestEntityIndexes(t *testing.T) {
	srv := testServer(t, false, "")

	_, body := get(t, srv, "/entities/persons")
	persons := decode[struct {
		Persons []struct {
			Name string `json:"name"`
		} `json:"persons"`
	}](t, body)
	if len(persons.Persons) == 0 || persons.Persons[0].Name != "Dermota, Anton" {
		t.Errorf("persons = %+v", persons)
	}

	_, body = get(t, srv, "/entities/works")
	works := decode[struct {
		Total int `json:"total"`
	}](t, body)
	if works.Total != 2 {
		t.Errorf("works = %d, want 2", works.Total)
	}
}

func TestAggregateEndpoints(t *testing.T) {
	srv := testServer(t, false, "")

	_, body := get(t, srv, "/aggregates/matrix")
	matrix := decode[struct {
		Zeitraeume []string `json:"zeitraeume"`
		Personen   []struct {
			Name string `json:"name"`
		} `json:"personen"`
	}](t, body)
	if len(matrix.Zeitraeume) != 7 || len(matrix.Personen) != 2 {
		t.Errorf("matrix = %d periods, %d persons", len(matrix.Zeitraeume), len(matrix.Personen))
	}

	_, body = get(t, srv, "/aggregates/kosmos")
	kosmos := decode[struct {
		Zentrum struct {
			Name string `json:"name"`
		} `json:"zentrum"`
	}](t, body)
	if kosmos.Zentrum.Name != "Ira Malaniuk" {
		t.Errorf("kosmos center = %q", kosmos.Zentrum.Name)
	}

	_, body = get(t, srv, "/aggregates/mobility")
	mobility := decode[struct {
		Phasen     []json.RawMessage `json:"phasen"`
		Ereignisse []json.RawMessage `json:"ereignisse"`
	}](t, body)
	if len(mobility.Phasen) != 7 || len(mobility.Ereignisse) != 5 {
		t.Errorf("mobility = %d phases, %d events", len(mobility.Phasen), len(mobility.Ereignisse))
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t, false, "")

	resp, _ := get(t, srv, "/search")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", resp.StatusCode)
	}

	_, body := get(t, srv, "/search?q=Rosenkavalier")
	out := decode[struct {
		Results []struct {
			ID string `json:"ID"`
		} `json:"results"`
	}](t, body)
	if len(out.Results) != 1 {
		t.Errorf("results = %+v", out.Results)
	}
}

func TestCountsAndStatsEndpoints(t *testing.T) {
	srv := testServer(t, false, "")

	_, body := get(t, srv, "/counts")
	counts := decode[map[string]int](t, body)
	if counts["Hauptbestand"] != 6 {
		t.Errorf("counts = %v", counts)
	}

	_, body = get(t, srv, "/stats")
	stats := decode[struct {
		RecordCount int `json:"recordCount"`
	}](t, body)
	if stats.RecordCount != 9 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := testServer(t, true, "secret")

	resp, err := http.Get(srv.URL + "/records")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/records", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", resp.StatusCode)
	}

	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", resp.StatusCode)
	}
}
