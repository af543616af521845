package note

import (
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
)

// Note is a study note shown in the notebook (immutable value object).
type Note struct {
	id        string
	title     string
	content   string
	tags      []string
	updatedAt time.Time
}

// New validates and creates a Note.
func New(id, title, content string, tags []string, updatedAt time.Time) (Note, error) {
	if id == "" {
		return Note{}, fmt.Errorf("note ID is required")
	}
	if title == "" {
		return Note{}, fmt.Errorf("note %s: title is required", id)
	}
	return Note{
		id:        id,
		title:     title,
		content:   content,
		tags:      slices.Clone(tags),
		updatedAt: updatedAt,
	}, nil
}

// ID returns the note identifier.
func (n Note) ID() string { return n.id }

// Title returns the note title.
func (n Note) Title() string { return n.title }

// Content returns the note body.
func (n Note) Content() string { return n.content }

// Tags returns a copy of the note tags.
func (n Note) Tags() []string { return slices.Clone(n.tags) }

// UpdatedAt returns the last edit time.
func (n Note) UpdatedAt() time.Time { return n.updatedAt }

// UpdatedAgo renders the edit time relative to now, e.g. "2 hours ago".
func (n Note) UpdatedAgo(now time.Time) string {
	return humanize.RelTime(n.updatedAt, now, "ago", "from now")
}

// SearchFields is the notebook search policy: notes match on title or body.
var SearchFields = []filter.Field[Note]{Note.Title, Note.Content}
