// Package archiveservice coordinates the store snapshot, the search mirror
// and the aggregate projections behind one read-only facade.
//
// The service holds the current snapshot in an atomic pointer. A reload
// builds the whole replacement off to the side and swaps it in; in-flight
// readers keep the snapshot they started with. Aggregates are computed at
// most once per snapshot, on first use.
package archiveservice

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dhcraft/m3gim/internal/aggregate"
	"github.com/dhcraft/m3gim/internal/apperr"
	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/normalize"
	"github.com/dhcraft/m3gim/internal/query"
	"github.com/dhcraft/m3gim/internal/searchindex"
)

// snapshot pairs a store with its lazily computed aggregates.
type snapshot struct {
	store *archive.Store

	matrixOnce   sync.Once
	matrix       *aggregate.MatrixData
	kosmosOnce   sync.Once
	kosmos       *aggregate.KosmosData
	mobilityOnce sync.Once
	mobility     *aggregate.MobilityData
}

// Service is the read-only facade over the current archive snapshot.
type Service struct {
	current atomic.Pointer[snapshot]
	idx     searchindex.RecordIndex
	logger  *slog.Logger
}

// NewService creates the facade over an initial store and mirrors it into
// the search index.
func NewService(store *archive.Store, idx searchindex.RecordIndex, logger *slog.Logger) (*Service, error) {
	s := &Service{idx: idx, logger: logger}
	if err := s.Reload(store); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload swaps in a freshly built store and rebuilds the search mirror.
// The swap happens only after the mirror rebuild succeeds, so search and
// store never disagree about the population.
func (s *Service) Reload(store *archive.Store) error {
	if err := s.idx.Rebuild(store); err != nil {
		return err
	}
	s.current.Store(&snapshot{store: store})
	// Folio detection relies on a fixed signature suffix. A Konvolut set
	// with no Folios at all usually means the identifier scheme changed.
	if len(store.Konvolute) > 0 && len(store.FolioIDs) == 0 {
		s.logger.Warn("no folio records detected",
			slog.Int("konvolute", len(store.Konvolute)))
	}
	s.logger.Info("archive snapshot swapped",
		slog.Int("records", len(store.AllRecords)),
		slog.Int("konvolute", len(store.Konvolute)),
		slog.String("exportDate", store.ExportDate))
	return nil
}

// Store returns the current snapshot's store.
func (s *Service) Store() *archive.Store {
	return s.current.Load().store
}

// Record resolves a record by ID, Folios included.
func (s *Service) Record(_ context.Context, id string) (*RecordDetail, error) {
	store := s.Store()
	r := store.Record(id)
	if r == nil {
		return nil, apperr.ErrNotFound
	}
	detail := &RecordDetail{Record: r, KonvolutID: store.KonvolutOf(id)}
	if _, ok := store.UnprocessedIDs[id]; ok {
		detail.Unprocessed = true
	}
	return detail, nil
}

// Records returns the filtered record population.
func (s *Service) Records(_ context.Context, spec query.Spec) ([]*archive.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return query.Apply(s.Store(), spec), nil
}

// Konvolut resolves one Konvolut with its derived metadata.
func (s *Service) Konvolut(_ context.Context, id string) (*KonvolutDetail, error) {
	store := s.Store()
	k := store.Konvolute[id]
	if k == nil {
		return nil, apperr.ErrNotFound
	}
	return &KonvolutDetail{Konvolut: k, Meta: store.KonvolutMeta[id]}, nil
}

// Konvolute lists all Konvolute with metadata, ordered by ID.
func (s *Service) Konvolute(_ context.Context) []*KonvolutDetail {
	store := s.Store()
	out := make([]*KonvolutDetail, 0, len(store.Konvolute))
	for id, k := range store.Konvolute {
		out = append(out, &KonvolutDetail{Konvolut: k, Meta: store.KonvolutMeta[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Konvolut.ID < out[j].Konvolut.ID })
	return out
}

// Persons lists the person index ordered by record count descending.
func (s *Service) Persons(_ context.Context) []PersonItem {
	store := s.Store()
	out := make([]PersonItem, 0, len(store.Persons))
	for name, e := range store.Persons {
		out = append(out, PersonItem{
			Name:        name,
			Category:    e.Category,
			Wikidata:    e.Wikidata,
			RecordCount: len(e.Records),
			Roles:       sortedKeys(e.Roles),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecordCount != out[j].RecordCount {
			return out[i].RecordCount > out[j].RecordCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Organizations lists the organization index ordered by record count.
func (s *Service) Organizations(_ context.Context) []OrgItem {
	store := s.Store()
	out := make([]OrgItem, 0, len(store.Organizations))
	for name, e := range store.Organizations {
		out = append(out, OrgItem{
			Name:        name,
			Wikidata:    e.Wikidata,
			RecordCount: len(e.Records),
			Roles:       sortedKeys(e.Roles),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecordCount != out[j].RecordCount {
			return out[i].RecordCount > out[j].RecordCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Locations lists the location index ordered by record count.
func (s *Service) Locations(_ context.Context) []LocationItem {
	store := s.Store()
	out := make([]LocationItem, 0, len(store.Locations))
	for name, e := range store.Locations {
		out = append(out, LocationItem{
			Name:        name,
			RecordCount: len(e.Records),
			Roles:       sortedKeys(e.Roles),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecordCount != out[j].RecordCount {
			return out[i].RecordCount > out[j].RecordCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Works lists the musical-work index ordered by record count.
func (s *Service) Works(_ context.Context) []WorkItem {
	store := s.Store()
	out := make([]WorkItem, 0, len(store.Works))
	for title, e := range store.Works {
		out = append(out, WorkItem{
			Title:       title,
			Komponist:   e.Komponist,
			Wikidata:    e.Wikidata,
			RecordCount: len(e.Records),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecordCount != out[j].RecordCount {
			return out[i].RecordCount > out[j].RecordCount
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Matrix returns the person×period intensity matrix, computed once per
// snapshot.
func (s *Service) Matrix(_ context.Context) *aggregate.MatrixData {
	snap := s.current.Load()
	snap.matrixOnce.Do(func() { snap.matrix = aggregate.Matrix(snap.store) })
	return snap.matrix
}

// Kosmos returns the composer repertoire graph, computed once per snapshot.
func (s *Service) Kosmos(_ context.Context) *aggregate.KosmosData {
	snap := s.current.Load()
	snap.kosmosOnce.Do(func() { snap.kosmos = aggregate.Kosmos(snap.store) })
	return snap.kosmos
}

// Mobility returns the mobility timeline, computed once per snapshot.
func (s *Service) Mobility(_ context.Context) *aggregate.MobilityData {
	snap := s.current.Load()
	snap.mobilityOnce.Do(func() { snap.mobility = aggregate.Mobility(snap.store) })
	return snap.mobility
}

// Search delegates full-text search to the mirror.
func (s *Service) Search(_ context.Context, q string, limit int) ([]searchindex.SearchResult, error) {
	return s.idx.Search(q, limit)
}

// Counts returns the record count per Tektonik group.
func (s *Service) Counts(_ context.Context) map[string]int {
	store := s.Store()
	out := make(map[string]int, len(normalize.TektonikGroups))
	for key := range normalize.TektonikGroups {
		out[key] = query.CountGroup(store, key)
	}
	return out
}

// Stats summarizes the snapshot for the stats endpoint.
func (s *Service) Stats(_ context.Context) Stats {
	store := s.Store()
	return Stats{
		RecordCount:   len(store.AllRecords),
		KonvolutCount: len(store.Konvolute),
		PersonCount:   len(store.Persons),
		WorkCount:     len(store.Works),
		ExportDate:    store.ExportDate,
		Coverage:      aggregate.Coverage(store),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
