// Package jsonld decodes the m3gim JSON-LD export and normalizes its
// heterogeneous field shapes (scalar vs array, qualified IDs) at the
// ingestion boundary so that downstream code never re-checks shape.
package jsonld

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Node type discriminators used in the @graph.
const (
	TypeRecordSet = "rico:RecordSet"
	TypeRecord    = "rico:Record"

	// SetTypeFonds marks the single top-level collection RecordSet.
	SetTypeFonds = "rico:Fonds"

	// SubjectMusicalWork marks a subject link that refers to a musical work.
	SubjectMusicalWork = "m3gim:MusicalWork"
	// SubjectPerson marks a subject link that refers to a mentioned person.
	SubjectPerson = "rico:Person"
)

// docTypePrefix qualifies document-type IDs in the export.
const docTypePrefix = "m3gim-dft:"

// Document is the parsed top-level JSON-LD export. The declared counts and
// export date are copied through verbatim and never validated against the
// actual graph contents.
type Document struct {
	Graph         []Node `json:"@graph"`
	RecordCount   int    `json:"m3gim:recordCount"`
	KonvolutCount int    `json:"m3gim:konvolutCount"`
	ExportDate    string `json:"m3gim:exportDate"`
}

// Parse decodes a raw JSON-LD export. A document that cannot be parsed at
// all is a fatal load error; malformed individual fields inside nodes are
// recovered per-field, either by the flexible types below or, for bare
// scalar fields, by tolerating the decoder's type errors. A wrong-shaped
// field decodes to its zero value and the rest of the graph survives.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil, fmt.Errorf("jsonld: parse document: %w", err)
		}
	}
	return &doc, nil
}

// Node is one entry of the @graph. RecordSet and Record fields live side by
// side; classification into the proper variant happens once in the archive
// package.
type Node struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`

	// RecordSet fields.
	RecordSetType Ref       `json:"rico:hasRecordSetType"`
	Parts         Many[Ref] `json:"rico:hasOrHadPart"`

	// Record fields.
	Identifier      string          `json:"rico:identifier"`
	Title           string          `json:"rico:title"`
	Date            string          `json:"rico:date"`
	ScopeAndContent string          `json:"rico:scopeAndContent"`
	Extent          string          `json:"rico:instantiationExtent"`
	DocType         Ref             `json:"rico:hasDocumentaryFormType"`
	AccessStatus    string          `json:"m3gim:accessStatus"`
	ScanStatus      string          `json:"m3gim:scanStatus"`
	Bearbeitung     string          `json:"m3gim:bearbeitungsstand"`
	Agents          Many[EntityRef] `json:"rico:hasOrHadAgent"`
	Mentions        Many[EntityRef] `json:"m3gim:mentions"`
	Locations       Many[EntityRef] `json:"rico:hasOrHadLocation"`
	Subjects        Many[EntityRef] `json:"rico:hasOrHadSubject"`
	AssociatedDates Many[string]    `json:"rico:isAssociatedWithDate"`
	PerfRoles       Many[EntityRef] `json:"m3gim:hasPerformanceRole"`
	EventDates      Many[string]    `json:"m3gim:eventDate"`
}

// DocTypeID returns the unqualified document-type identifier
// ("m3gim-dft:brief" → "brief"), or "" when the node carries none.
func (n *Node) DocTypeID() string {
	id := string(n.DocType)
	if id == "" {
		return ""
	}
	if len(id) > len(docTypePrefix) && id[:len(docTypePrefix)] == docTypePrefix {
		return id[len(docTypePrefix):]
	}
	return id
}

// LinkCount returns the number of cross-references the node carries.
func (n *Node) LinkCount() int {
	return len(n.Agents) + len(n.Locations) + len(n.Subjects) +
		len(n.Mentions) + len(n.AssociatedDates) + len(n.PerfRoles)
}
