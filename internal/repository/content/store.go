// Package content serves the fixed, read-only screen content.
package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/learnhub/internal/domain/analytics"
	"github.com/kailas-cloud/learnhub/internal/domain/course"
	"github.com/kailas-cloud/learnhub/internal/domain/note"
)

// Store holds content loaded once at startup. It is never mutated afterwards,
// so concurrent reads need no locking. Every accessor returns a fresh slice.
type Store struct {
	courses []course.Course
	notes   []note.Note
	stats   []analytics.StatCard
	weekly  []analytics.StudyDay

	achievements []analytics.Achievement
}

// Builtin returns the shipped content. Note ages are relative to now.
func Builtin(now time.Time) *Store {
	st, err := builtinSeed.toStore(now)
	if err != nil {
		panic("content: invalid builtin seed: " + err.Error())
	}
	return st
}

// Load reads a YAML seed file. An empty path returns the builtin content.
func Load(path string, now time.Time) (*Store, error) {
	if path == "" {
		return Builtin(now), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read content seed %s: %w", path, err)
	}

	var s seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse content seed %s: %w", path, err)
	}

	st, err := s.toStore(now)
	if err != nil {
		return nil, fmt.Errorf("content seed %s: %w", path, err)
	}
	return st, nil
}

// Courses returns the course catalog in display order.
func (s *Store) Courses(_ context.Context) ([]course.Course, error) {
	return slices.Clone(s.courses), nil
}

// Notes returns the notebook in display order.
func (s *Store) Notes(_ context.Context) ([]note.Note, error) {
	return slices.Clone(s.notes), nil
}

// Stats returns the dashboard tiles.
func (s *Store) Stats(_ context.Context) ([]analytics.StatCard, error) {
	return slices.Clone(s.stats), nil
}

// WeeklyStudy returns hours studied per weekday, Monday first.
func (s *Store) WeeklyStudy(_ context.Context) ([]analytics.StudyDay, error) {
	return slices.Clone(s.weekly), nil
}

// Achievements returns recent achievements, newest first.
func (s *Store) Achievements(_ context.Context) ([]analytics.Achievement, error) {
	return slices.Clone(s.achievements), nil
}

// Ping reports whether content is available.
func (s *Store) Ping(_ context.Context) error {
	if len(s.courses) == 0 && len(s.notes) == 0 && len(s.weekly) == 0 {
		return fmt.Errorf("content store is empty")
	}
	return nil
}
