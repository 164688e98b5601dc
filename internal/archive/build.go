package archive

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhcraft/m3gim/internal/dateparse"
	"github.com/dhcraft/m3gim/internal/jsonld"
	"github.com/dhcraft/m3gim/internal/normalize"
)

// leakedDateRe matches "location" names that are actually date strings
// leaked into the location field by the export.
var leakedDateRe = regexp.MustCompile(`^\d{4}(-\d{2}){0,2}`)

// BuildStore builds the Store from a parsed export. It is pure and
// deterministic: identical input yields identical index contents. Malformed
// or missing fields on individual nodes contribute nothing and never fail
// the build.
//
// The build is an explicit pipeline of passes, each reading only what
// earlier passes produced:
//
//	classify → derive indexes → konvolut metadata → folio cleanup → unprocessed detection
func BuildStore(doc *jsonld.Document) *Store {
	s := &Store{
		Konvolute:       make(map[string]*Konvolut),
		KonvolutMeta:    make(map[string]*KonvolutMeta),
		ChildToKonvolut: make(map[string]string),
		Records:         make(map[string]*Record),
		BySignature:     make(map[string]*Record),
		ByYear:          make(map[int][]*Record),
		ByDocType:       make(map[string][]*Record),
		Persons:         make(map[string]*PersonEntry),
		Organizations:   make(map[string]*OrgEntry),
		Locations:       make(map[string]*LocationEntry),
		Works:           make(map[string]*WorkEntry),
		FolioIDs:        make(map[string]struct{}),
		UnprocessedIDs:  make(map[string]struct{}),
		RecordCount:     doc.RecordCount,
		KonvolutCount:   doc.KonvolutCount,
		ExportDate:      doc.ExportDate,
	}

	s.classify(doc.Graph)
	for _, r := range s.AllRecords {
		s.indexByYear(r)
		s.indexByDocType(r)
		s.indexAgents(r)
		s.indexLocations(r)
		s.indexWorks(r)
	}
	s.deriveKonvolutMeta()
	s.pruneFolios()
	s.detectUnprocessed()

	return s
}

// classify partitions graph nodes into the Fonds singleton, Konvolute and
// Records in a single pass.
func (s *Store) classify(graph []jsonld.Node) {
	for i := range graph {
		node := &graph[i]
		switch node.Type {
		case jsonld.TypeRecordSet:
			if node.RecordSetType == jsonld.SetTypeFonds {
				s.Fonds = node
				continue
			}
			k := &Konvolut{ID: node.ID, Title: node.Title}
			for _, part := range node.Parts {
				cid := string(part)
				if cid == "" {
					continue
				}
				k.ChildIDs = append(k.ChildIDs, cid)
				s.ChildToKonvolut[cid] = k.ID
			}
			s.Konvolute[k.ID] = k

		case jsonld.TypeRecord:
			r := newRecord(node)
			s.Records[r.ID] = r
			s.AllRecords = append(s.AllRecords, r)
			if r.Signature != "" {
				s.BySignature[r.Signature] = r
			}
		}
	}
}

// newRecord projects a graph node into a Record with defaults applied.
func newRecord(n *jsonld.Node) *Record {
	access := n.AccessStatus
	if access == "" {
		access = AccessOpen
	}
	return &Record{
		ID:              n.ID,
		Signature:       n.Identifier,
		Title:           n.Title,
		Date:            n.Date,
		DocType:         n.DocTypeID(),
		ScopeAndContent: n.ScopeAndContent,
		Extent:          n.Extent,
		AccessStatus:    access,
		ScanStatus:      n.ScanStatus,
		Bearbeitung:     n.Bearbeitung,
		Agents:          n.Agents,
		Mentions:        n.Mentions,
		Locations:       n.Locations,
		Subjects:        n.Subjects,
		PerfRoles:       n.PerfRoles,
		AssociatedDates: n.AssociatedDates,
		EventDates:      n.EventDates,
	}
}

func (s *Store) indexByYear(r *Record) {
	if year, ok := dateparse.Year(r.Date); ok {
		s.ByYear[year] = append(s.ByYear[year], r)
	}
}

func (s *Store) indexByDocType(r *Record) {
	if r.DocType != "" {
		s.ByDocType[r.DocType] = append(s.ByDocType[r.DocType], r)
	}
}

// indexAgents splits agent links into persons and organizations. Person
// names are canonicalized before indexing so variants collapse to one
// entry; placeholder names are dropped entirely.
func (s *Store) indexAgents(r *Record) {
	for i := range r.Agents {
		agent := &r.Agents[i]
		rawName := agent.DisplayName()
		if rawName == "" {
			continue
		}
		switch agent.Type {
		case "rico:CorporateBody", "rico:Group":
			s.addOrganization(rawName, r.ID, agent.Role, agent.ID)
		default:
			s.addPerson(rawName, r.ID, agent.Role, agent.ID)
		}
	}

	// Mentions are weaker links and always persons.
	for i := range r.Mentions {
		mention := &r.Mentions[i]
		rawName := mention.DisplayName()
		if rawName == "" {
			continue
		}
		s.addPerson(rawName, r.ID, mention.Role, mention.ID)
	}
}

func (s *Store) addPerson(rawName, recordID, role, wikidata string) {
	name := normalize.Person(rawName)
	if normalize.IsJunkName(name) {
		return
	}
	entry, ok := s.Persons[name]
	if !ok {
		entry = &PersonEntry{
			Records:  make(map[string]struct{}),
			Roles:    make(map[string]struct{}),
			Category: normalize.Category(name),
		}
		s.Persons[name] = entry
	}
	entry.Records[recordID] = struct{}{}
	if role != "" {
		entry.Roles[role] = struct{}{}
	}
	// First non-empty external identifier wins.
	if wikidata != "" && entry.Wikidata == "" {
		entry.Wikidata = wikidata
	}
}

func (s *Store) addOrganization(name, recordID, role, wikidata string) {
	if normalize.IsJunkName(name) {
		return
	}
	entry, ok := s.Organizations[name]
	if !ok {
		entry = &OrgEntry{
			Records: make(map[string]struct{}),
			Roles:   make(map[string]struct{}),
		}
		s.Organizations[name] = entry
	}
	entry.Records[recordID] = struct{}{}
	if role != "" {
		entry.Roles[role] = struct{}{}
	}
	if wikidata != "" && entry.Wikidata == "" {
		entry.Wikidata = wikidata
	}
}

// indexLocations skips "locations" whose name is a leaked date string.
func (s *Store) indexLocations(r *Record) {
	for i := range r.Locations {
		loc := &r.Locations[i]
		name := loc.DisplayName()
		if name == "" || leakedDateRe.MatchString(name) {
			continue
		}
		entry, ok := s.Locations[name]
		if !ok {
			entry = &LocationEntry{
				Records: make(map[string]struct{}),
				Roles:   make(map[string]struct{}),
			}
			s.Locations[name] = entry
		}
		entry.Records[r.ID] = struct{}{}
		if loc.Role != "" {
			entry.Roles[loc.Role] = struct{}{}
		}
	}
}

// indexWorks captures musical-work subjects with composer attribution.
func (s *Store) indexWorks(r *Record) {
	for i := range r.Subjects {
		subj := &r.Subjects[i]
		if subj.Type != jsonld.SubjectMusicalWork {
			continue
		}
		name := subj.DisplayName()
		if name == "" {
			continue
		}
		entry, ok := s.Works[name]
		if !ok {
			entry = &WorkEntry{
				Records:   make(map[string]struct{}),
				Komponist: subj.Komponist,
				Wikidata:  subj.ID,
			}
			s.Works[name] = entry
		}
		entry.Records[r.ID] = struct{}{}
	}
}

// deriveKonvolutMeta computes display metadata per Konvolut: the Folio
// child contributes the title; year span, counts and link totals come from
// the real children. Dangling child IDs are skipped.
func (s *Store) deriveKonvolutMeta() {
	for kid, k := range s.Konvolute {
		meta := &KonvolutMeta{}

		for _, cid := range k.ChildIDs {
			if strings.HasSuffix(cid, folioSuffix) {
				meta.FolioID = cid
				s.FolioIDs[cid] = struct{}{}
				continue
			}
			meta.ChildCount++

			child := s.Records[cid]
			if child == nil {
				continue
			}
			meta.TotalLinks += child.LinkCount()
			if year, ok := dateparse.Year(child.Date); ok {
				meta.DatedCount++
				if meta.MinYear == 0 || year < meta.MinYear {
					meta.MinYear = year
				}
				if year > meta.MaxYear {
					meta.MaxYear = year
				}
			}
		}

		if folio := s.Records[meta.FolioID]; folio != nil {
			meta.Title = folio.Title
		}
		if meta.Title == "" {
			meta.Title = k.Title
		}
		switch {
		case meta.MinYear == 0:
		case meta.MinYear == meta.MaxYear:
			meta.DateDisplay = strconv.Itoa(meta.MinYear)
		default:
			meta.DateDisplay = strconv.Itoa(meta.MinYear) + " – " + strconv.Itoa(meta.MaxYear)
		}

		s.KonvolutMeta[kid] = meta
	}

	if len(s.Konvolute) > minKonvoluteForFolioWarning && len(s.FolioIDs) == 0 {
		// Folio detection rests on a fixed ID suffix. Zero hits across a
		// non-trivial Konvolut set suggests the identifier scheme changed.
		slog.Warn("archive: no Folio records found", slog.Int("konvolute", len(s.Konvolute)))
	}
}

// minKonvoluteForFolioWarning: below this the missing-Folio warning would
// be noise on tiny test graphs.
const minKonvoluteForFolioWarning = 3

// pruneFolios removes Folio records from the general population while
// keeping them resolvable by ID.
func (s *Store) pruneFolios() {
	if len(s.FolioIDs) == 0 {
		return
	}
	kept := s.AllRecords[:0]
	for _, r := range s.AllRecords {
		if _, folio := s.FolioIDs[r.ID]; !folio {
			kept = append(kept, r)
		}
	}
	s.AllRecords = kept
}

// detectUnprocessed flags records with zero cross-references and no
// processing-status marker. The set is surfaced to the UI, never used for
// filtering.
func (s *Store) detectUnprocessed() {
	for _, r := range s.AllRecords {
		if r.LinkCount() == 0 && r.Bearbeitung == "" {
			s.UnprocessedIDs[r.ID] = struct{}{}
		}
	}
}
