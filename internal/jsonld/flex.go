package jsonld

import (
	"bytes"
	"encoding/json"
)

// Many decodes a field that is sometimes a single value and sometimes an
// array of values. A field in an entirely wrong shape decodes to nil rather
// than failing, so one malformed node never invalidates the whole document.
type Many[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (m *Many[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if data[0] == '[' {
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			*m = nil
			return nil
		}
		*m = list
		return nil
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		*m = nil
		return nil
	}
	*m = []T{single}
	return nil
}

// Ref decodes a reference that appears either as a bare string or as a
// qualified object {"@id": "..."}.
type Ref string

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = ""
			return nil
		}
		*r = Ref(s)
		return nil
	}
	var obj struct {
		ID string `json:"@id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*r = ""
		return nil
	}
	*r = Ref(obj.ID)
	return nil
}

// EntityRef is a linked real-world referent on a record: a person,
// organization, location, work, or performance role, together with the role
// it plays on that record.
type EntityRef struct {
	ID        string `json:"@id"`
	Type      string `json:"@type"`
	Name      string `json:"name"`
	PrefLabel string `json:"skos:prefLabel"`
	Role      string `json:"role"`
	Komponist string `json:"komponist"`
}

// UnmarshalJSON tolerates bare-string entries by treating them as name-only
// references.
func (e *EntityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = EntityRef{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*e = EntityRef{}
			return nil
		}
		*e = EntityRef{Name: s}
		return nil
	}
	type plain EntityRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*e = EntityRef{}
		return nil
	}
	*e = EntityRef(p)
	return nil
}

// DisplayName returns the name field, falling back to skos:prefLabel.
func (e *EntityRef) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.PrefLabel
}
