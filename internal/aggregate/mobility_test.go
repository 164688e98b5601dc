package aggregate

import (
	"testing"

	"github.com/dhcraft/m3gim/internal/normalize"
)

func TestMobilityPhases(t *testing.T) {
	mob := Mobility(fixtureStore(t))

	if len(mob.Phases) != len(normalize.LifePhases) {
		t.Fatalf("phases = %d, want %d", len(mob.Phases), len(normalize.LifePhases))
	}
	counts := map[string]int{}
	for _, p := range mob.Phases {
		counts[p.ID] = p.DocCount
	}
	// 1952 x2 + 1955 in LP5, 1955/1958/1960/1965 in LP6, 1965 in LP7.
	want := map[string]int{
		"LP1": 0, "LP2": 0, "LP3": 0, "LP4": 0,
		"LP5": 3, "LP6": 4, "LP7": 1,
	}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("%s doc count = %d, want %d", id, counts[id], n)
		}
	}
}

func TestMobilityEventsOnlyOnPlaceChange(t *testing.T) {
	mob := Mobility(fixtureStore(t))

	// LP1→LP2 stays in Lemberg and must not produce an event even though
	// the phase carries a mobility form.
	for _, ev := range mob.Events {
		if ev.PhaseID == "LP2" {
			t.Fatalf("event for same-place transition: %+v", ev)
		}
	}
	if len(mob.Events) != 5 {
		t.Fatalf("events = %d, want 5: %+v", len(mob.Events), mob.Events)
	}

	first := mob.Events[0]
	if first.PhaseID != "LP3" || first.Year != 1944 ||
		first.FromPlace != "Lemberg" || first.ToPlace != "Wien" ||
		first.Kind != "erzwungen" {
		t.Errorf("first event = %+v", first)
	}
	if len(first.DocIDs) != 0 {
		t.Errorf("first event docs = %v, want none", first.DocIDs)
	}
}

func TestMobilityEventDocSamples(t *testing.T) {
	mob := Mobility(fixtureStore(t))

	var lp5 *MobilityEvent
	for i := range mob.Events {
		if mob.Events[i].PhaseID == "LP5" {
			lp5 = &mob.Events[i]
		}
	}
	if lp5 == nil {
		t.Fatal("no LP5 event")
	}
	want := []string{"m3gim:NIM_003_1", "m3gim:NIM_100", "m3gim:NIM_007_1"}
	if len(lp5.DocIDs) != len(want) {
		t.Fatalf("LP5 docs = %v, want %v", lp5.DocIDs, want)
	}
	for i, id := range want {
		if lp5.DocIDs[i] != id {
			t.Errorf("LP5 doc %d = %q, want %q", i, lp5.DocIDs[i], id)
		}
	}
}

func TestCoverage(t *testing.T) {
	// The population is the general record list: the Folio cover sheet is
	// pruned, leaving 9 records of which 5 carry links.
	c := Coverage(fixtureStore(t))

	if c.Total != 9 {
		t.Errorf("total = %d, want 9", c.Total)
	}
	if c.Linked != 5 {
		t.Errorf("linked = %d, want 5", c.Linked)
	}
	if c.Dated != 6 {
		t.Errorf("dated = %d, want 6", c.Dated)
	}
	if c.Unprocessed != 1 {
		t.Errorf("unprocessed = %d, want 1", c.Unprocessed)
	}
}
