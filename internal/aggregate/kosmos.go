package aggregate

import (
	"sort"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/jsonld"
	"github.com/dhcraft/m3gim/internal/normalize"
)

// publicationDateRole marks a location link that encodes where something
// was published, not where it was performed. Publication places say nothing
// about the repertoire and are left out of the Kosmos.
const publicationDateRole = "erscheinungsdatum"

// KosmosWork is one musical work under a composer, carrying its own
// document count and the places and performance roles its documents attest.
type KosmosWork struct {
	Title      string         `json:"titel"`
	DocCount   int            `json:"anzahl_dokumente"`
	Signatures []string       `json:"signaturen"`
	Orte       map[string]int `json:"orte"`
	Rollen     map[string]int `json:"rollen"`
}

// KosmosComposer is one composer node of the radial repertoire graph.
type KosmosComposer struct {
	Name     string       `json:"name"`
	Color    string       `json:"farbe"`
	DocCount int          `json:"anzahl_dokumente"`
	Works    []KosmosWork `json:"werke"`
}

// KosmosData is the complete repertoire graph, with the focus person at
// the hub.
type KosmosData struct {
	Center    normalize.Center `json:"zentrum"`
	Composers []KosmosComposer `json:"komponisten"`
}

type kosmosWorkAcc struct {
	docIDs     map[string]struct{}
	signatures map[string]struct{}
	orte       map[string]int
	rollen     map[string]int
}

type kosmosComposerAcc struct {
	docCount int
	works    map[string]*kosmosWorkAcc
}

// Kosmos groups records by the composer of the works they document.
// Attribution follows the structured MusicalWork subjects when present and
// falls back to work and role keywords in the title. Records attributable
// to no composer contribute nothing; composers without a single document
// never appear.
func Kosmos(store *archive.Store) *KosmosData {
	composers := make(map[string]*kosmosComposerAcc)

	for _, r := range store.AllRecords {
		// One record can document works by several composers (mixed
		// recital programs); count it once per composer.
		attributed := make(map[string]struct{})

		for _, subj := range r.Subjects {
			if subj.Type != jsonld.SubjectMusicalWork {
				continue
			}
			composer := normalize.Composer(subj.Komponist)
			if composer == "" {
				continue
			}
			acc := kosmosAcc(composers, composer)
			if title := subj.DisplayName(); title != "" {
				work, ok := acc.works[title]
				if !ok {
					work = &kosmosWorkAcc{
						docIDs:     make(map[string]struct{}),
						signatures: make(map[string]struct{}),
						orte:       make(map[string]int),
						rollen:     make(map[string]int),
					}
					acc.works[title] = work
				}
				// A record listing the same work twice still counts once.
				if _, seen := work.docIDs[r.ID]; !seen {
					work.docIDs[r.ID] = struct{}{}
					if r.Signature != "" {
						work.signatures[r.Signature] = struct{}{}
					}
					for _, loc := range r.Locations {
						if loc.Role == publicationDateRole {
							continue
						}
						if name := loc.DisplayName(); name != "" {
							work.orte[name]++
						}
					}
					for _, role := range r.PerfRoles {
						if name := role.DisplayName(); name != "" {
							work.rollen[name]++
						}
					}
				}
			}
			attributed[composer] = struct{}{}
		}

		if len(attributed) == 0 {
			if composer, ok := normalize.ComposerForTitle(r.Title); ok {
				attributed[composer] = struct{}{}
			}
		}

		for composer := range attributed {
			kosmosAcc(composers, composer).docCount++
		}
	}

	nodes := make([]KosmosComposer, 0, len(composers))
	for name, acc := range composers {
		node := KosmosComposer{
			Name:     name,
			Color:    composerColor(name),
			DocCount: acc.docCount,
		}
		for title, work := range acc.works {
			signatures := make([]string, 0, len(work.signatures))
			for sig := range work.signatures {
				signatures = append(signatures, sig)
			}
			sort.Strings(signatures)
			node.Works = append(node.Works, KosmosWork{
				Title:      title,
				DocCount:   len(work.docIDs),
				Signatures: signatures,
				Orte:       work.orte,
				Rollen:     work.rollen,
			})
		}
		sort.SliceStable(node.Works, func(i, j int) bool {
			if node.Works[i].DocCount != node.Works[j].DocCount {
				return node.Works[i].DocCount > node.Works[j].DocCount
			}
			return node.Works[i].Title < node.Works[j].Title
		})
		nodes = append(nodes, node)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].DocCount != nodes[j].DocCount {
			return nodes[i].DocCount > nodes[j].DocCount
		}
		return nodes[i].Name < nodes[j].Name
	})

	return &KosmosData{Center: normalize.FocusPerson, Composers: nodes}
}

func kosmosAcc(composers map[string]*kosmosComposerAcc, name string) *kosmosComposerAcc {
	acc, ok := composers[name]
	if !ok {
		acc = &kosmosComposerAcc{works: make(map[string]*kosmosWorkAcc)}
		composers[name] = acc
	}
	return acc
}

func composerColor(name string) string {
	if color, ok := normalize.ComposerColors[name]; ok {
		return color
	}
	return normalize.ComposerColors[normalize.DefaultCategory]
}
