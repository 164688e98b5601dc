package archiveservice

import (
	"github.com/dhcraft/m3gim/internal/aggregate"
	"github.com/dhcraft/m3gim/internal/archive"
)

// RecordDetail is a record enriched with its Konvolut membership and
// processing state.
type RecordDetail struct {
	*archive.Record
	KonvolutID  string `json:"konvolutId,omitempty"`
	Unprocessed bool   `json:"unprocessed,omitempty"`
}

// KonvolutDetail pairs a Konvolut with its derived metadata.
type KonvolutDetail struct {
	*archive.Konvolut
	Meta *archive.KonvolutMeta `json:"meta,omitempty"`
}

// PersonItem is one entry of the person index.
type PersonItem struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Wikidata    string   `json:"wikidata,omitempty"`
	RecordCount int      `json:"recordCount"`
	Roles       []string `json:"roles"`
}

// OrgItem is one entry of the organization index.
type OrgItem struct {
	Name        string   `json:"name"`
	Wikidata    string   `json:"wikidata,omitempty"`
	RecordCount int      `json:"recordCount"`
	Roles       []string `json:"roles"`
}

// LocationItem is one entry of the location index.
type LocationItem struct {
	Name        string   `json:"name"`
	RecordCount int      `json:"recordCount"`
	Roles       []string `json:"roles"`
}

// WorkItem is one entry of the musical-work index.
type WorkItem struct {
	Title       string `json:"title"`
	Komponist   string `json:"komponist,omitempty"`
	Wikidata    string `json:"wikidata,omitempty"`
	RecordCount int    `json:"recordCount"`
}

// Stats summarizes the current snapshot.
type Stats struct {
	RecordCount   int                    `json:"recordCount"`
	KonvolutCount int                    `json:"konvolutCount"`
	PersonCount   int                    `json:"personCount"`
	WorkCount     int                    `json:"workCount"`
	ExportDate    string                 `json:"exportDate,omitempty"`
	Coverage      aggregate.CoverageData `json:"coverage"`
}
