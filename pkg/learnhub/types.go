package learnhub

import (
	"time"

	"github.com/kailas-cloud/learnhub/internal/domain/chart"
	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
)

// DefaultScale is the chart scale used when none is configured.
const DefaultScale = chart.DefaultScale

// SearchableItem is a list entry matched by Filter on its Text.
type SearchableItem = filter.SearchableItem

// Field extracts one searchable text from T for FilterBy.
type Field[T any] = filter.Field[T]

// MagnitudeItem is a labelled chart value.
type MagnitudeItem = chart.MagnitudeItem

// Bar is a normalized chart bar.
type Bar = chart.Bar

// Filter returns the items whose text contains query, ignoring case, in input order.
// An empty query returns every item.
func Filter(items []SearchableItem, query string) []SearchableItem {
	return filter.Filter(items, query)
}

// FilterBy is Filter over any type: an item matches when any field contains query.
func FilterBy[T any](items []T, query string, fields ...Field[T]) []T {
	return filter.FilterBy(items, query, fields...)
}

// Normalize sizes items relative to the largest magnitude, which gets exactly scale.
func Normalize(items []MagnitudeItem, scale float64) []Bar {
	return chart.Normalize(items, scale)
}

// Course is a catalog entry.
type Course struct {
	ID          string
	Title       string
	Description string
	Progress    int // percent
	Duration    string
	Level       string
}

// Note is a study note. UpdatedAgo is relative to the client clock at query time.
type Note struct {
	ID         string
	Title      string
	Content    string
	Tags       []string
	UpdatedAt  time.Time
	UpdatedAgo string
}

// StatCard is an analytics tile.
type StatCard struct {
	Label    string
	Value    string
	Change   string
	Positive bool
	Icon     string
}

// Achievement is a recent milestone. EarnedAgo is relative to the client clock at query time.
type Achievement struct {
	Title       string
	Description string
	Icon        string
	EarnedAt    time.Time
	EarnedAgo   string
}

// Dashboard is the analytics screen.
type Dashboard struct {
	Stats        []StatCard
	Weekly       []Bar
	Scale        float64
	Achievements []Achievement
}

// HealthStatus represents the aggregated content health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
