// Package enum models the closed value sets of the XMLA and OLE DB for OLAP
// schemas. A value is an (ordinal, name, description) triple; a Set offers
// reverse lookup by name and by ordinal. Values carry no behavior.
package enum

import (
	"fmt"
	"strings"
)

// Value is a single member of a closed value set.
type Value struct {
	Ordinal     int
	Name        string
	Description string
}

// String returns the wire name.
func (v Value) String() string { return v.Name }

// MarshalYAML renders the value by its wire name.
func (v Value) MarshalYAML() (any, error) { return v.Name, nil }

// Set is an immutable collection of values with reverse lookup tables.
type Set struct {
	name      string
	values    []Value
	byName    map[string]Value
	byOrdinal map[int]Value
}

// NewSet builds a set. It panics on duplicate names or ordinals because sets
// are declared as package-level tables.
func NewSet(name string, values ...Value) *Set {
	s := &Set{
		name:      name,
		values:    values,
		byName:    make(map[string]Value, len(values)),
		byOrdinal: make(map[int]Value, len(values)),
	}
	for _, v := range values {
		if _, dup := s.byName[v.Name]; dup {
			panic(fmt.Sprintf("enum %s: duplicate name %q", name, v.Name))
		}
		if _, dup := s.byOrdinal[v.Ordinal]; dup {
			panic(fmt.Sprintf("enum %s: duplicate ordinal %d", name, v.Ordinal))
		}
		s.byName[v.Name] = v
		s.byOrdinal[v.Ordinal] = v
	}
	return s
}

// Name returns the set name.
func (s *Set) Name() string { return s.name }

// Values returns the values in declaration order.
func (s *Set) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}

// Lookup finds a value by its exact wire name.
func (s *Set) Lookup(name string) (Value, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// LookupFold finds a value by name, ignoring case.
func (s *Set) LookupFold(name string) (Value, bool) {
	if v, ok := s.byName[name]; ok {
		return v, true
	}
	for _, v := range s.values {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Value{}, false
}

// ByOrdinal finds a value by ordinal.
func (s *Set) ByOrdinal(n int) (Value, bool) {
	v, ok := s.byOrdinal[n]
	return v, ok
}

// Parse is Lookup returning an error for unknown names.
func (s *Set) Parse(name string) (Value, error) {
	v, ok := s.byName[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s %q", ErrUnknownValue, s.name, name)
	}
	return v, nil
}
