package aggregate

import (
	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/dateparse"
)

// CoverageData reports how much of the record population the aggregates can
// actually see. Records without links or dates silently drop out of the
// views; the counts make that loss visible instead of hiding it.
type CoverageData struct {
	Total       int `json:"gesamt"`
	Linked      int `json:"verknuepft"`
	Dated       int `json:"datiert"`
	Unprocessed int `json:"unbearbeitet"`
}

// Coverage counts linked, dated and unprocessed records over the general
// population.
func Coverage(store *archive.Store) CoverageData {
	c := CoverageData{
		Total:       len(store.AllRecords),
		Unprocessed: len(store.UnprocessedIDs),
	}
	for _, r := range store.AllRecords {
		if r.LinkCount() > 0 {
			c.Linked++
		}
		if _, ok := dateparse.Year(r.Date); ok {
			c.Dated++
		}
	}
	return c
}
