// Package archive builds the in-memory Store over the JSON-LD export: it
// partitions graph nodes into Fonds, Konvolute and Records, and derives the
// entity and year indexes every view projection is computed from.
//
// The Store is immutable after BuildStore returns. A change to the source
// data means a wholesale rebuild and an atomic swap by the caller; indexes
// are never patched in place.
package archive

import "github.com/dhcraft/m3gim/internal/jsonld"

// Access statuses. Records without an explicit status are open.
const (
	AccessOpen       = "offen"
	AccessRestricted = "eingeschraenkt"
	AccessClosed     = "gesperrt"
)

// folioSuffix marks a Konvolut cover-sheet record. A Folio describes the
// Konvolut rather than an archival object of its own: it is excluded from
// the general record population but still resolvable by ID and contributes
// its title to the Konvolut metadata.
const folioSuffix = "_Folio"

// Record is one archival unit (letter, photo, poster, program, ...),
// projected out of its raw graph node with defaults applied.
type Record struct {
	ID              string             `json:"id"`
	Signature       string             `json:"signature"`
	Title           string             `json:"title,omitempty"`
	Date            string             `json:"date,omitempty"`
	DocType         string             `json:"docType,omitempty"`
	ScopeAndContent string             `json:"scopeAndContent,omitempty"`
	Extent          string             `json:"extent,omitempty"`
	AccessStatus    string             `json:"accessStatus"`
	ScanStatus      string             `json:"scanStatus,omitempty"`
	Bearbeitung     string             `json:"bearbeitungsstand,omitempty"`
	Agents          []jsonld.EntityRef `json:"agents,omitempty"`
	Mentions        []jsonld.EntityRef `json:"mentions,omitempty"`
	Locations       []jsonld.EntityRef `json:"locations,omitempty"`
	Subjects        []jsonld.EntityRef `json:"subjects,omitempty"`
	PerfRoles       []jsonld.EntityRef `json:"performanceRoles,omitempty"`
	AssociatedDates []string           `json:"associatedDates,omitempty"`
	EventDates      []string           `json:"eventDates,omitempty"`
}

// LinkCount returns the number of cross-references the record carries.
func (r *Record) LinkCount() int {
	return len(r.Agents) + len(r.Locations) + len(r.Subjects) +
		len(r.Mentions) + len(r.AssociatedDates) + len(r.PerfRoles)
}

// IsFolio reports whether the record is a Konvolut cover sheet.
func (r *Record) IsFolio() bool {
	return len(r.ID) > len(folioSuffix) && r.ID[len(r.ID)-len(folioSuffix):] == folioSuffix
}

// Konvolut is a physical grouping (folder, envelope) of child records.
type Konvolut struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	ChildIDs []string `json:"childIds"`
}

// KonvolutMeta is the derived display metadata of a Konvolut, computed once
// all records are indexed.
type KonvolutMeta struct {
	Title       string `json:"title,omitempty"`
	DateDisplay string `json:"dateDisplay,omitempty"`
	MinYear     int    `json:"minYear,omitempty"`
	MaxYear     int    `json:"maxYear,omitempty"`
	ChildCount  int    `json:"childCount"`
	DatedCount  int    `json:"datedCount"`
	TotalLinks  int    `json:"totalLinks"`
	FolioID     string `json:"folioId,omitempty"`
}

// PersonEntry aggregates a person across all records that link or mention
// them, keyed by canonical name.
type PersonEntry struct {
	Records  map[string]struct{} `json:"-"`
	Roles    map[string]struct{} `json:"-"`
	Category string              `json:"category"`
	Wikidata string              `json:"wikidata,omitempty"`
}

// OrgEntry aggregates an organization across its records.
type OrgEntry struct {
	Records  map[string]struct{} `json:"-"`
	Roles    map[string]struct{} `json:"-"`
	Wikidata string              `json:"wikidata,omitempty"`
}

// LocationEntry aggregates a location across its records.
type LocationEntry struct {
	Records map[string]struct{} `json:"-"`
	Roles   map[string]struct{} `json:"-"`
}

// WorkEntry aggregates a musical work across its records.
type WorkEntry struct {
	Records   map[string]struct{} `json:"-"`
	Komponist string              `json:"komponist,omitempty"`
	Wikidata  string              `json:"wikidata,omitempty"`
}

// Store is the aggregate root built once per load. Consumers only read it.
type Store struct {
	Fonds *jsonld.Node

	Konvolute    map[string]*Konvolut
	KonvolutMeta map[string]*KonvolutMeta
	// ChildToKonvolut resolves a record ID to its (at most one) parent.
	ChildToKonvolut map[string]string

	// Records resolves every record by ID, Folios included.
	Records map[string]*Record
	// AllRecords is the general record population, Folios excluded, in
	// graph encounter order.
	AllRecords  []*Record
	BySignature map[string]*Record
	ByYear      map[int][]*Record
	ByDocType   map[string][]*Record

	Persons       map[string]*PersonEntry
	Organizations map[string]*OrgEntry
	Locations     map[string]*LocationEntry
	Works         map[string]*WorkEntry

	FolioIDs       map[string]struct{}
	UnprocessedIDs map[string]struct{}

	// Export metadata, copied through verbatim.
	RecordCount   int
	KonvolutCount int
	ExportDate    string
}

// Record returns the record with the given ID, or nil.
func (s *Store) Record(id string) *Record {
	return s.Records[id]
}

// KonvolutOf returns the parent Konvolut ID of a record, or "".
func (s *Store) KonvolutOf(recordID string) string {
	return s.ChildToKonvolut[recordID]
}
