package analytics

import "github.com/kailas-cloud/learnhub/internal/domain/chart"

// StatCard is one tile of the dashboard grid.
type StatCard struct {
	label    string
	value    string
	change   string
	positive bool
	icon     string
}

// NewStatCard creates a StatCard.
func NewStatCard(label, value, change string, positive bool, icon string) StatCard {
	return StatCard{label: label, value: value, change: change, positive: positive, icon: icon}
}

// Label returns the tile caption.
func (s StatCard) Label() string { return s.label }

// Value returns the headline figure, preformatted ("47.5h", "87%").
func (s StatCard) Value() string { return s.value }

// Change returns the period-over-period delta, preformatted ("+12%").
func (s StatCard) Change() string { return s.change }

// Positive reports whether the delta is an improvement.
func (s StatCard) Positive() bool { return s.positive }

// Icon returns the icon glyph name.
func (s StatCard) Icon() string { return s.icon }

// StudyDay is the number of hours studied on one weekday.
type StudyDay struct {
	Day   string
	Hours float64
}

// Magnitudes converts study days into chart input, preserving order.
func Magnitudes(days []StudyDay) []chart.MagnitudeItem {
	out := make([]chart.MagnitudeItem, len(days))
	for i, d := range days {
		out[i] = chart.MagnitudeItem{Label: d.Day, Magnitude: d.Hours}
	}
	return out
}

// Dashboard is the analytics screen: stat tiles, the normalized weekly chart
// and recent achievements.
type Dashboard struct {
	Stats        []StatCard
	Weekly       []chart.Bar
	Scale        float64
	Achievements []Achievement
}
