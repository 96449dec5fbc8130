// Package query filters and sorts record collections.
//
// Run is a pure function: callers rebuild a Spec from the current filter
// state and call Run again whenever the inputs change.
package query

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders results by one field.
type Sort struct {
	Field     string
	Direction Direction
}

// Equal is an exact-match predicate. An empty Value means no constraint.
type Equal struct {
	Field string
	Value string
}

// Spec describes one query. Zero value matches everything in input order.
type Spec struct {
	// Search is a case-insensitive substring matched against SearchFields.
	// A record passes when any of the fields contains it.
	Search       string
	SearchFields []string
	// Equals are ANDed together.
	Equals []Equal
	// Sort is optional.
	Sort *Sort
	// Locale selects the collation for text sorting (default: Indonesian).
	Locale language.Tag
}

// Where returns a copy of the spec with an extra equality predicate.
func (s Spec) Where(field, value string) Spec {
	s.Equals = append(append([]Equal(nil), s.Equals...), Equal{Field: field, Value: value})
	return s
}

// ParseSort parses a "field-direction" directive, e.g. "judul-asc" or
// "qty-desc". A bare field sorts ascending. Empty input yields nil.
func ParseSort(directive string) *Sort {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return nil
	}

	field, dir := directive, Asc
	if idx := strings.LastIndex(directive, "-"); idx > 0 {
		switch Direction(strings.ToLower(directive[idx+1:])) {
		case Asc:
			field = directive[:idx]
		case Desc:
			field, dir = directive[:idx], Desc
		}
	}
	return &Sort{Field: field, Direction: dir}
}

// String renders the directive in the form ParseSort accepts.
func (s *Sort) String() string {
	if s == nil {
		return ""
	}
	dir := s.Direction
	if dir != Desc {
		dir = Asc
	}
	return s.Field + "-" + string(dir)
}
