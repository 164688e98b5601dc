// Package query filters the record population against a filter
// specification and provides the counting primitives the navigation UI
// uses. Filtering never mutates the Store; every call returns a fresh
// derived list.
package query

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/normalize"
)

// Bestand values.
const (
	BestandObjekte = "objekte"
	BestandFotos   = "fotos"
)

// fotoDocType is the document type that sorts a record into the Fotos
// Bestand.
const fotoDocType = "fotografie"

// Tektonik filter kinds.
const (
	TektonikPrefix = "prefix"
	TektonikGruppe = "gruppe"
)

// Tektonik restricts records to a branch of the archive Tektonik, either
// by raw signature substring or by named group.
type Tektonik struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Spec is one filter specification. Zero-valued dimensions are inactive;
// all active dimensions must hold for a record to pass (AND semantics).
type Spec struct {
	// Search matches case-insensitively against title, scope/content and
	// signature (OR across the fields).
	Search       string    `json:"search,omitempty"`
	Tektonik     *Tektonik `json:"tektonik,omitempty"`
	DocTypes     []string  `json:"docTypes,omitempty"`
	Bestand      []string  `json:"bestand,omitempty"`
	AccessStatus []string  `json:"accessStatus,omitempty"`
}

// Validate rejects specs with unknown enum values.
func (s *Spec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Bestand, validation.Each(
			validation.In(BestandObjekte, BestandFotos))),
		validation.Field(&s.AccessStatus, validation.Each(
			validation.In(archive.AccessOpen, archive.AccessRestricted, archive.AccessClosed))),
		validation.Field(&s.Tektonik),
	)
}

// Validate checks the Tektonik filter kind.
func (t Tektonik) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Kind, validation.Required, validation.In(TektonikPrefix, TektonikGruppe)),
		validation.Field(&t.Value, validation.Required),
	)
}

// Apply returns the records satisfying every active dimension of spec, in
// store order.
func Apply(store *archive.Store, spec Spec) []*archive.Record {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	var out []*archive.Record
	for _, r := range store.AllRecords {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if !matchesTektonik(r, spec.Tektonik) {
			continue
		}
		if len(spec.DocTypes) > 0 && !contains(spec.DocTypes, r.DocType) {
			continue
		}
		if len(spec.Bestand) > 0 && !matchesBestand(r, spec.Bestand) {
			continue
		}
		if len(spec.AccessStatus) > 0 && !contains(spec.AccessStatus, r.AccessStatus) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r *archive.Record, term string) bool {
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.ScopeAndContent), term) ||
		strings.Contains(strings.ToLower(r.Signature), term)
}

func matchesTektonik(r *archive.Record, t *Tektonik) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case TektonikPrefix:
		return strings.Contains(r.Signature, t.Value)
	case TektonikGruppe:
		group, ok := normalize.TektonikGroups[t.Value]
		if !ok {
			return true
		}
		return inGroup(r.Signature, group)
	}
	return true
}

// inGroup: the signature contains the group prefix and none of the
// exclude prefixes.
func inGroup(signature string, g normalize.TektonikGroup) bool {
	if !strings.Contains(signature, g.Prefix) {
		return false
	}
	for _, excl := range g.ExcludePrefixes {
		if strings.Contains(signature, excl) {
			return false
		}
	}
	return true
}

func matchesBestand(r *archive.Record, bestand []string) bool {
	if r.DocType == fotoDocType {
		return contains(bestand, BestandFotos)
	}
	return contains(bestand, BestandObjekte)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// CountGroup counts records in a named Tektonik group without
// materializing a filtered list.
func CountGroup(store *archive.Store, groupKey string) int {
	group, ok := normalize.TektonikGroups[groupKey]
	if !ok {
		return 0
	}
	n := 0
	for _, r := range store.AllRecords {
		if inGroup(r.Signature, group) {
			n++
		}
	}
	return n
}

// CountPrefix counts records whose signature contains prefix.
func CountPrefix(store *archive.Store, prefix string) int {
	n := 0
	for _, r := range store.AllRecords {
		if strings.Contains(r.Signature, prefix) {
			n++
		}
	}
	return n
}
