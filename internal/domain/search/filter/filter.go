// Package filter implements the case-insensitive substring search used by the
// catalog and notes screens.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchableItem is an entity with an opaque identifier and a primary text field.
// Attrs carries display attributes that filtering ignores.
type SearchableItem struct {
	ID    string
	Text  string
	Attrs map[string]string
}

// Field extracts one searchable text field from an item.
type Field[T any] func(T) string

// Fold case-folds s without regard to locale.
// A new Caser is built per call because cases.Caser keeps internal state.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// QueryFrom normalizes an optional query: nil means the empty query, which matches everything.
func QueryFrom(q *string) string {
	if q == nil {
		return ""
	}
	return *q
}

// Matches reports whether any of texts contains query after case folding.
func Matches(query string, texts ...string) bool {
	return matchesFolded(Fold(query), texts)
}

func matchesFolded(folded string, texts []string) bool {
	if folded == "" {
		return true
	}
	for _, t := range texts {
		if strings.Contains(Fold(t), folded) {
			return true
		}
	}
	return false
}

// Filter returns the items whose Text contains query, in input order.
func Filter(items []SearchableItem, query string) []SearchableItem {
	return FilterBy(items, query, func(it SearchableItem) string { return it.Text })
}

// FilterBy returns the items for which any of fields contains query, in input order.
// The result is always a fresh slice; items is never modified.
func FilterBy[T any](items []T, query string, fields ...Field[T]) []T {
	out := make([]T, 0, len(items))
	folded := Fold(query)
	texts := make([]string, len(fields))
	for _, it := range items {
		for i, f := range fields {
			texts[i] = f(it)
		}
		if matchesFolded(folded, texts) {
			out = append(out, it)
		}
	}
	return out
}
