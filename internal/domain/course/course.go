package course

import (
	"fmt"

	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
)

// Level is the difficulty badge shown on a course card.
type Level string

const (
	// Beginner is an entry-level course.
	Beginner Level = "Beginner"
	// Intermediate assumes prior coursework.
	Intermediate Level = "Intermediate"
	// Advanced is the top difficulty.
	Advanced Level = "Advanced"
)

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Beginner, Intermediate, Advanced:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown course level %q", s)
	}
}

// Course is a catalog entry (immutable value object).
type Course struct {
	id          string
	title       string
	description string
	progress    int
	duration    string
	level       Level
}

// New validates and creates a Course. Progress is a percentage in [0, 100].
func New(id, title, description string, progress int, duration string, level Level) (Course, error) {
	if id == "" {
		return Course{}, fmt.Errorf("course ID is required")
	}
	if title == "" {
		return Course{}, fmt.Errorf("course %s: title is required", id)
	}
	if progress < 0 || progress > 100 {
		return Course{}, fmt.Errorf("course %s: progress must be between 0 and 100, got %d", id, progress)
	}
	if _, err := ParseLevel(string(level)); err != nil {
		return Course{}, fmt.Errorf("course %s: %w", id, err)
	}
	return Course{
		id:          id,
		title:       title,
		description: description,
		progress:    progress,
		duration:    duration,
		level:       level,
	}, nil
}

// ID returns the course identifier.
func (c Course) ID() string { return c.id }

// Title returns the course title.
func (c Course) Title() string { return c.title }

// Description returns the one-line course summary.
func (c Course) Description() string { return c.description }

// Progress returns the completion percentage.
func (c Course) Progress() int { return c.progress }

// Duration returns the human-readable course length, e.g. "8 weeks".
func (c Course) Duration() string { return c.duration }

// Level returns the difficulty level.
func (c Course) Level() Level { return c.level }

// SearchFields is the catalog search policy: courses match on title only.
var SearchFields = []filter.Field[Course]{Course.Title}
