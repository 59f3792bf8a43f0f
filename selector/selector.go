// Package selector identifies named fields of a source record.
//
// A Selector is a comparable value: two selectors naming the same field in the same
// source context are equal and can be used as map keys or set members.
package selector

import (
	"fmt"
	"strings"
)

// Formulation names the query language used to address fields in a source.
type Formulation string

const (
	FormulationColumn   Formulation = "column"
	FormulationCSV      Formulation = "csv"
	FormulationJSONPath Formulation = "jsonpath"
	FormulationXPath    Formulation = "xpath"
)

// Selector is a canonical reference to one field of a source record.
type Selector struct {
	// Name is the canonical field name or path expression.
	Name string

	// Source identifies the logical source the name is resolved against
	// (a file name, table or iterator). Empty means the default source.
	Source string

	// Formulation is the reference formulation of Name.
	Formulation Formulation
}

// IsZero reports whether s is the zero Selector.
func (s Selector) IsZero() bool {
	return s == Selector{}
}

// String returns a readable form such as "people.csv#name".
func (s Selector) String() string {
	if s.Source == "" {
		return s.Name
	}
	return fmt.Sprintf("%s#%s", s.Source, s.Name)
}

// ContextFactory produces canonical selectors for names read from one source context.
type ContextFactory struct {
	Source      string
	Formulation Formulation
}

// NewContextFactory creates a factory bound to a source and its formulation.
func NewContextFactory(source string, formulation Formulation) *ContextFactory {
	if formulation == "" {
		formulation = FormulationColumn
	}
	return &ContextFactory{Source: source, Formulation: formulation}
}

// FromName canonicalizes a raw field name as written in a mapping document.
//
// For column formulations a delimited identifier ("First Name") is unquoted and
// backslash escapes are removed; path expressions are only trimmed.
func (f *ContextFactory) FromName(name string) Selector {
	name = strings.TrimSpace(name)
	if f.Formulation == FormulationColumn || f.Formulation == FormulationCSV {
		name = canonicalColumn(name)
	}
	return Selector{
		Name:        name,
		Source:      f.Source,
		Formulation: f.Formulation,
	}
}

// FromPlaceholder canonicalizes a placeholder name already unescaped by the
// template parser. Delimited identifiers are unquoted; backslashes are kept.
func (f *ContextFactory) FromPlaceholder(name string) Selector {
	name = strings.TrimSpace(name)
	if f.Formulation == FormulationColumn || f.Formulation == FormulationCSV {
		name = unquoteColumn(name)
	}
	return Selector{
		Name:        name,
		Source:      f.Source,
		Formulation: f.Formulation,
	}
}

func unquoteColumn(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	}
	return name
}

func canonicalColumn(name string) string {
	name = unquoteColumn(name)
	if !strings.Contains(name, `\`) {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' && i+1 < len(name) {
			i++
		}
		sb.WriteByte(name[i])
	}
	return sb.String()
}

// Set is an insertion-ordered set of selectors.
type Set struct {
	order []Selector
	index map[Selector]struct{}
}

// NewSet creates a set containing sel in first-seen order.
func NewSet(sel ...Selector) *Set {
	s := &Set{index: make(map[Selector]struct{}, len(sel))}
	for _, v := range sel {
		s.Add(v)
	}
	return s
}

// Add inserts sel and reports whether it was not already present.
func (s *Set) Add(sel Selector) bool {
	if _, ok := s.index[sel]; ok {
		return false
	}
	s.index[sel] = struct{}{}
	s.order = append(s.order, sel)
	return true
}

// Contains reports whether sel is in the set.
func (s *Set) Contains(sel Selector) bool {
	_, ok := s.index[sel]
	return ok
}

// Len returns the number of distinct selectors.
func (s *Set) Len() int { return len(s.order) }

// Items returns the selectors in insertion order.
func (s *Set) Items() []Selector {
	out := make([]Selector, len(s.order))
	copy(out, s.order)
	return out
}
