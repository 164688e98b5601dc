package aggregate

import (
	"sort"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/normalize"
)

// maxEventDocs caps the evidence sample attached to a mobility event.
const maxEventDocs = 5

// MobilityPhase is one biographical phase with the number of dated records
// falling into its year range.
type MobilityPhase struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	From     int    `json:"von"`
	To       int    `json:"bis"`
	Place    string `json:"ort"`
	DocCount int    `json:"anzahl_dokumente"`
}

// MobilityEvent is one relocation: the transition into a phase whose anchor
// place differs from the previous phase's.
type MobilityEvent struct {
	Year      int      `json:"jahr"`
	FromPlace string   `json:"von_ort"`
	ToPlace   string   `json:"nach_ort"`
	Kind      string   `json:"art"`
	PhaseID   string   `json:"phase"`
	DocIDs    []string `json:"dokumente"`
}

// MobilityData is the geographic mobility timeline.
type MobilityData struct {
	Phases []MobilityPhase `json:"phasen"`
	Events []MobilityEvent `json:"ereignisse"`
}

// Mobility projects the static life-phase table onto the record population:
// each phase gets its document count, and each phase transition that moves
// the anchor place becomes an event with a small evidence sample. A phase
// change that stays in the same place (a new life chapter, not a move) is
// not a mobility event.
func Mobility(store *archive.Store) *MobilityData {
	data := &MobilityData{
		Phases: make([]MobilityPhase, 0, len(normalize.LifePhases)),
		Events: []MobilityEvent{},
	}

	for i, phase := range normalize.LifePhases {
		data.Phases = append(data.Phases, MobilityPhase{
			ID:       phase.ID,
			Name:     phase.Name,
			From:     phase.From,
			To:       phase.To,
			Place:    phase.Place,
			DocCount: countInRange(store, phase.From, phase.To),
		})

		if i == 0 || phase.Mobility == "" {
			continue
		}
		prev := normalize.LifePhases[i-1]
		if phase.Place == prev.Place {
			continue
		}
		data.Events = append(data.Events, MobilityEvent{
			Year:      phase.From,
			FromPlace: prev.Place,
			ToPlace:   phase.Place,
			Kind:      phase.Mobility,
			PhaseID:   phase.ID,
			DocIDs:    sampleDocs(store, phase.From, phase.To),
		})
	}
	return data
}

func countInRange(store *archive.Store, from, to int) int {
	n := 0
	for year := from; year <= to; year++ {
		n += len(store.ByYear[year])
	}
	return n
}

// sampleDocs returns up to maxEventDocs record IDs dated within the range,
// earliest first, ID order within a year.
func sampleDocs(store *archive.Store, from, to int) []string {
	ids := []string{}
	for year := from; year <= to && len(ids) < maxEventDocs; year++ {
		records := store.ByYear[year]
		yearIDs := make([]string, 0, len(records))
		for _, r := range records {
			yearIDs = append(yearIDs, r.ID)
		}
		sort.Strings(yearIDs)
		for _, id := range yearIDs {
			if len(ids) == maxEventDocs {
				break
			}
			ids = append(ids, id)
		}
	}
	return ids
}
