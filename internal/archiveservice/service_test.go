package archiveservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/dhcraft/m3gim/internal/apperr"
	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/query"
	"github.com/dhcraft/m3gim/internal/searchindex"
	"github.com/dhcraft/m3gim/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	f, err := os.CreateTemp("", "m3gim-svc-test-*.db")
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
	svc, err := NewService(archive.BuildStore(testutil.Graph(t)), idx, logger)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRecordLookup(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	detail, err := svc.Record(ctx, "m3gim:NIM_003_1")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if detail.KonvolutID != "m3gim:NIM_003" {
		t.Errorf("konvolut = %q", detail.KonvolutID)
	}
	if detail.Unprocessed {
		t.Error("linked record flagged unprocessed")
	}

	detail, err = svc.Record(ctx, "m3gim:NIM_900")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !detail.Unprocessed {
		t.Error("NIM_900 should be flagged unprocessed")
	}
}

func TestRecordNotFound(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Record(context.Background(), "m3gim:NOPE"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFolioResolvableByID(t *testing.T) {
	svc := testService(t)
	detail, err := svc.Record(context.Background(), "m3gim:NIM_003_Folio")
	if err != nil {
		t.Fatalf("folio lookup: %v", err)
	}
	if !detail.IsFolio() {
		t.Error("expected folio record")
	}
}

func TestRecordsRejectsInvalidSpec(t *testing.T) {
	svc := testService(t)
	spec := query.Spec{AccessStatus: []string{"bogus"}}
	if _, err := svc.Records(context.Background(), spec); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestKonvoluteListing(t *testing.T) {
	svc := testService(t)
	ks := svc.Konvolute(context.Background())
	if len(ks) != 2 {
		t.Fatalf("konvolute = %d, want 2", len(ks))
	}
	if ks[0].Konvolut.ID != "m3gim:NIM_003" {
		t.Errorf("order: first = %s", ks[0].Konvolut.ID)
	}
	if ks[0].Meta == nil || ks[0].Meta.Title != "Briefe an Malaniuk 1952-1958" {
		t.Errorf("meta = %+v", ks[0].Meta)
	}
}

func TestPersonsOrdering(t *testing.T) {
	svc := testService(t)
	persons := svc.Persons(context.Background())
	if len(persons) == 0 {
		t.Fatal("no persons")
	}
	for i := 1; i < len(persons); i++ {
		if persons[i].RecordCount > persons[i-1].RecordCount {
			t.Fatalf("persons not ordered by record count: %+v", persons)
		}
	}
	if persons[0].Name != "Dermota, Anton" || persons[0].RecordCount != 2 {
		t.Errorf("top person = %+v", persons[0])
	}
}

func TestAggregatesCachedPerSnapshot(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	m1 := svc.Matrix(ctx)
	m2 := svc.Matrix(ctx)
	if m1 != m2 {
		t.Error("matrix recomputed within one snapshot")
	}

	if err := svc.Reload(archive.BuildStore(testutil.Graph(t))); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if m3 := svc.Matrix(ctx); m3 == m1 {
		t.Error("matrix not recomputed after snapshot swap")
	}
}

func TestSearchGoesThroughMirror(t *testing.T) {
	svc := testService(t)
	results, err := svc.Search(context.Background(), "Rosenkavalier", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "m3gim:NIM_003_2" {
		t.Errorf("results = %+v", results)
	}
}

func TestCountsAndStats(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	counts := svc.Counts(ctx)
	if counts["Hauptbestand"] != 6 || counts["Plakate"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	stats := svc.Stats(ctx)
	if stats.RecordCount != 9 || stats.KonvolutCount != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Coverage.Unprocessed != 1 {
		t.Errorf("coverage = %+v", stats.Coverage)
	}
}
