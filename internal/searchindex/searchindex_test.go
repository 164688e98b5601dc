package searchindex

import (
	"os"
	"testing"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/testutil"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "m3gim-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testStore(t *testing.T) *archive.Store {
	t.Helper()
	return archive.BuildStore(testutil.Graph(t))
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&count); err != nil {
		t.Fatalf("records table missing: %v", err)
	}
}

func TestRebuildMirrorsPopulation(t *testing.T) {
	db := testDB(t)
	store := testStore(t)

	if err := db.Rebuild(store); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != len(store.AllRecords) {
		t.Errorf("count = %d, want %d", n, len(store.AllRecords))
	}

	// Folios never reach the mirror.
	var folios int
	err = db.conn.QueryRow(`SELECT count(*) FROM records WHERE id LIKE '%_Folio'`).Scan(&folios)
	if err != nil {
		t.Fatal(err)
	}
	if folios != 0 {
		t.Errorf("folio rows = %d, want 0", folios)
	}
}

func TestRebuildStoresKonvolutAndYear(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testStore(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	var konvolut string
	var year int
	err := db.conn.QueryRow(
		`SELECT konvolut, year FROM records WHERE id = ?`, "m3gim:NIM_003_1",
	).Scan(&konvolut, &year)
	if err != nil {
		t.Fatalf("row missing: %v", err)
	}
	if konvolut != "m3gim:NIM_003" {
		t.Errorf("konvolut = %q", konvolut)
	}
	if year != 1952 {
		t.Errorf("year = %d", year)
	}

	// Undated records store NULL, not a zero year.
	var nullYears int
	err = db.conn.QueryRow(`SELECT count(*) FROM records WHERE year IS NULL`).Scan(&nullYears)
	if err != nil {
		t.Fatal(err)
	}
	if nullYears != 3 {
		t.Errorf("records without year = %d, want 3", nullYears)
	}
}

func TestRebuildIsWholesale(t *testing.T) {
	db := testDB(t)
	store := testStore(t)

	if err := db.Rebuild(store); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}
	if err := db.Rebuild(store); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}
	n, _ := db.Count()
	if n != len(store.AllRecords) {
		t.Errorf("count after second rebuild = %d, want %d", n, len(store.AllRecords))
	}
}

func TestSearchBasic(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testStore(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	results, err := db.Search("Rosenkavalier", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "m3gim:NIM_003_2" {
		t.Errorf("search results = %+v, want 1 hit for NIM_003_2", results)
	}
}

func TestSearchLimit(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(testStore(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	results, err := db.Search("Brief", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("limited search returned %d results", len(results))
	}
}
