package model

import (
	"maps"
	"slices"
)

// HeaderFieldSet holds the INFO and FORMAT declarations of one file or of a
// merged run. Each id maps to exactly one definition per namespace.
type HeaderFieldSet struct {
	Infos   map[string]FieldDefinition `json:"infos"`
	Formats map[string]FieldDefinition `json:"formats"`
}

// NewHeaderFieldSet returns the canonical empty set.
func NewHeaderFieldSet() HeaderFieldSet {
	return HeaderFieldSet{
		Infos:   map[string]FieldDefinition{},
		Formats: map[string]FieldDefinition{},
	}
}

// Fields returns the mapping for kind. Unknown kinds yield nil.
func (h HeaderFieldSet) Fields(kind Kind) map[string]FieldDefinition {
	switch kind {
	case KindInfo:
		return h.Infos
	case KindFormat:
		return h.Formats
	}
	return nil
}

// Put inserts def under kind, replacing any previous definition of the id.
func (h *HeaderFieldSet) Put(kind Kind, def FieldDefinition) {
	switch kind {
	case KindInfo:
		if h.Infos == nil {
			h.Infos = map[string]FieldDefinition{}
		}
		h.Infos[def.ID] = def
	case KindFormat:
		if h.Formats == nil {
			h.Formats = map[string]FieldDefinition{}
		}
		h.Formats[def.ID] = def
	}
}

// IDs returns the ids declared under kind, sorted.
func (h HeaderFieldSet) IDs(kind Kind) []string {
	return slices.Sorted(maps.Keys(h.Fields(kind)))
}

// Len is the total number of declarations across both namespaces.
func (h HeaderFieldSet) Len() int {
	return len(h.Infos) + len(h.Formats)
}

// Clone returns a deep copy whose maps are never nil.
func (h HeaderFieldSet) Clone() HeaderFieldSet {
	out := NewHeaderFieldSet()
	maps.Copy(out.Infos, h.Infos)
	maps.Copy(out.Formats, h.Formats)
	return out
}

// Equal reports whether both namespaces hold the same (id, definition)
// pairs. Nil and empty maps compare equal.
func (h HeaderFieldSet) Equal(o HeaderFieldSet) bool {
	eq := func(a, b FieldDefinition) bool { return a.Equal(b) }
	return maps.EqualFunc(h.Infos, o.Infos, eq) && maps.EqualFunc(h.Formats, o.Formats, eq)
}
