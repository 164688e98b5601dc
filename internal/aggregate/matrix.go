// Package aggregate derives the view-specific projections from the Store:
// the person×period intensity matrix, the composer/work radial graph, and
// the geographic mobility timeline. Missing or malformed links contribute
// nothing; the aggregates degrade gracefully and surface coverage gaps as
// separate counts instead of failing.
package aggregate

import (
	"sort"
	"strings"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/dateparse"
	"github.com/dhcraft/m3gim/internal/jsonld"
	"github.com/dhcraft/m3gim/internal/normalize"
)

// maxCellDocs caps the drill-down sample per matrix cell.
const maxCellDocs = 10

// MatrixDoc is one drill-down sample document in a matrix cell.
type MatrixDoc struct {
	Signature string `json:"signatur"`
	Title     string `json:"titel"`
	DocType   string `json:"typ"`
}

// MatrixCell is one person×period entry. Zero-intensity cells are kept so
// consumers can render a complete grid without re-querying.
type MatrixCell struct {
	Period    string      `json:"zeitraum"`
	Intensity int         `json:"intensitaet"`
	DocCount  int         `json:"anzahl_dokumente"`
	Documents []MatrixDoc `json:"dokumente"`
}

// MatrixRow is one person's row across all periods.
type MatrixRow struct {
	Name           string       `json:"name"`
	Category       string       `json:"kategorie"`
	Cells          []MatrixCell `json:"begegnungen"`
	TotalIntensity int          `json:"gesamt_intensitaet"`
}

// MatrixData is the complete intensity matrix.
type MatrixData struct {
	Periods []string    `json:"zeitraeume"`
	Persons []MatrixRow `json:"personen"`
}

type matrixCellAcc struct {
	intensity int
	count     int
	docs      []MatrixDoc
}

type matrixPersonAcc struct {
	category string
	cells    map[string]*matrixCellAcc
}

// Matrix computes relationship intensity per person and 5-year period.
// Composer names are excluded (they belong in the Kosmos), as is the focus
// person, who appears in essentially every record and would only encode a
// trivial self-relation.
func Matrix(store *archive.Store) *MatrixData {
	persons := make(map[string]*matrixPersonAcc)

	for _, r := range store.AllRecords {
		year, ok := dateparse.Year(r.Date)
		if !ok {
			continue
		}
		period := dateparse.Period(year, normalize.PeriodWidth)
		if !knownPeriod(period) {
			continue
		}
		weight := intensityWeight(r.DocType)

		recorded := make(map[string]struct{})
		for _, ref := range personRefs(r) {
			rawName := ref.DisplayName()
			if rawName == "" || isFocusPerson(rawName) || normalize.IsComposerName(rawName) {
				continue
			}
			name := normalize.Person(rawName)
			if normalize.IsJunkName(name) {
				continue
			}
			recorded[strings.ToLower(name)] = struct{}{}
			addEncounter(persons, name, period, weight, r)
		}

		// Title-keyword fallback: names mentioned only in the title still
		// count as an encounter.
		title := strings.ToLower(r.Title)
		for _, rule := range normalize.Rules() {
			if !strings.Contains(title, rule.Keyword) {
				continue
			}
			if _, seen := recorded[rule.Keyword]; seen {
				continue
			}
			if coveredByLink(r, rule.Keyword) || normalize.IsComposerName(rule.Keyword) {
				continue
			}
			addEncounter(persons, normalize.Person(titleCase(rule.Keyword)), period, weight, nil)
		}
	}

	// Persons indexed from links but never encountered inside a known
	// period still get a row; their cells stay all zeros.
	for name := range store.Persons {
		if isFocusPerson(name) || normalize.IsComposerName(name) {
			continue
		}
		if _, ok := persons[name]; !ok {
			persons[name] = &matrixPersonAcc{
				category: normalize.Category(name),
				cells:    make(map[string]*matrixCellAcc),
			}
		}
	}

	rows := make([]MatrixRow, 0, len(persons))
	for name, acc := range persons {
		row := MatrixRow{Name: name, Category: acc.category}
		for _, period := range normalize.Periods {
			cell := MatrixCell{Period: period, Documents: []MatrixDoc{}}
			if a := acc.cells[period]; a != nil {
				cell.Intensity = a.intensity
				cell.DocCount = a.count
				cell.Documents = a.docs
			}
			row.TotalIntensity += cell.Intensity
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalIntensity != rows[j].TotalIntensity {
			return rows[i].TotalIntensity > rows[j].TotalIntensity
		}
		return rows[i].Name < rows[j].Name
	})

	return &MatrixData{Periods: normalize.Periods, Persons: rows}
}

func addEncounter(persons map[string]*matrixPersonAcc, name, period string, weight int, r *archive.Record) {
	acc, ok := persons[name]
	if !ok {
		acc = &matrixPersonAcc{
			category: normalize.Category(name),
			cells:    make(map[string]*matrixCellAcc),
		}
		persons[name] = acc
	}
	cell, ok := acc.cells[period]
	if !ok {
		cell = &matrixCellAcc{docs: []MatrixDoc{}}
		acc.cells[period] = cell
	}
	cell.intensity += weight
	cell.count++
	if r != nil && len(cell.docs) < maxCellDocs {
		cell.docs = append(cell.docs, MatrixDoc{
			Signature: r.Signature,
			Title:     truncate(r.Title, 80),
			DocType:   r.DocType,
		})
	}
}

// intensityWeight: letters document a direct exchange and weigh most;
// programs, posters and contracts document shared work; everything else
// counts once.
func intensityWeight(docType string) int {
	switch docType {
	case "brief":
		return 3
	case "programmheft", "plakat", "vertrag":
		return 2
	default:
		return 1
	}
}

func knownPeriod(period string) bool {
	for _, p := range normalize.Periods {
		if p == period {
			return true
		}
	}
	return false
}

func isFocusPerson(name string) bool {
	return strings.Contains(strings.ToLower(name), "malaniuk")
}

// personRefs returns the record's agent and mention links in one slice.
func personRefs(r *archive.Record) []jsonld.EntityRef {
	out := make([]jsonld.EntityRef, 0, len(r.Agents)+len(r.Mentions))
	out = append(out, r.Agents...)
	out = append(out, r.Mentions...)
	return out
}

// coveredByLink reports whether any structured link on the record already
// names the keyword.
func coveredByLink(r *archive.Record, keyword string) bool {
	for _, ref := range personRefs(r) {
		if strings.Contains(strings.ToLower(ref.DisplayName()), keyword) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate cuts on rune boundaries; German titles are full of multi-byte
// characters that a byte slice would split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
