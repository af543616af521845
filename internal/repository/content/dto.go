package content

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/learnhub/internal/domain/analytics"
	"github.com/kailas-cloud/learnhub/internal/domain/course"
	"github.com/kailas-cloud/learnhub/internal/domain/note"
)

// seed is the YAML shape of a content file.
type seed struct {
	Courses []courseDTO `yaml:"courses"`
	Notes   []noteDTO   `yaml:"notes"`
	Stats   []statDTO   `yaml:"stats"`
	Weekly  []dayDTO    `yaml:"weekly"`

	Achievements []achievementDTO `yaml:"achievements"`
}

type courseDTO struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Progress    int    `yaml:"progress"`
	Duration    string `yaml:"duration"`
	Level       string `yaml:"level"`
}

// noteDTO carries either an absolute updated_at or an age relative to load time.
type noteDTO struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Tags      []string  `yaml:"tags"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Age       string    `yaml:"age"` // Go duration, e.g. "2h"
}

type statDTO struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Change   string `yaml:"change"`
	Positive bool   `yaml:"positive"`
	Icon     string `yaml:"icon"`
}

type dayDTO struct {
	Day   string  `yaml:"day"`
	Hours float64 `yaml:"hours"`
}

// achievementDTO carries either an absolute earned_at or an age relative to load time.
type achievementDTO struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon"`
	EarnedAt    time.Time `yaml:"earned_at"`
	Age         string    `yaml:"age"`
}

func (d courseDTO) toDomain() (course.Course, error) {
	level, err := course.ParseLevel(d.Level)
	if err != nil {
		return course.Course{}, fmt.Errorf("course %s: %w", d.ID, err)
	}
	return course.New(d.ID, d.Title, d.Description, d.Progress, d.Duration, level)
}

func (d noteDTO) toDomain(now time.Time) (note.Note, error) {
	updated := d.UpdatedAt
	if d.Age != "" {
		age, err := time.ParseDuration(d.Age)
		if err != nil {
			return note.Note{}, fmt.Errorf("note %s: parse age: %w", d.ID, err)
		}
		updated = now.Add(-age)
	}
	return note.New(d.ID, d.Title, d.Content, d.Tags, updated)
}

func (d statDTO) toDomain() analytics.StatCard {
	return analytics.NewStatCard(d.Label, d.Value, d.Change, d.Positive, d.Icon)
}

func (d achievementDTO) toDomain(now time.Time) (analytics.Achievement, error) {
	earned := d.EarnedAt
	if d.Age != "" {
		age, err := time.ParseDuration(d.Age)
		if err != nil {
			return analytics.Achievement{}, fmt.Errorf("achievement %q: parse age: %w", d.Title, err)
		}
		earned = now.Add(-age)
	}
	return analytics.NewAchievement(d.Title, d.Description, d.Icon, earned)
}

func (s seed) toStore(now time.Time) (*Store, error) {
	st := &Store{
		courses: make([]course.Course, 0, len(s.Courses)),
		notes:   make([]note.Note, 0, len(s.Notes)),
		stats:   make([]analytics.StatCard, 0, len(s.Stats)),
		weekly:  make([]analytics.StudyDay, 0, len(s.Weekly)),

		achievements: make([]analytics.Achievement, 0, len(s.Achievements)),
	}
	for _, c := range s.Courses {
		dc, err := c.toDomain()
		if err != nil {
			return nil, err
		}
		st.courses = append(st.courses, dc)
	}
	for _, n := range s.Notes {
		dn, err := n.toDomain(now)
		if err != nil {
			return nil, err
		}
		st.notes = append(st.notes, dn)
	}
	for _, sc := range s.Stats {
		st.stats = append(st.stats, sc.toDomain())
	}
	for _, d := range s.Weekly {
		if d.Day == "" {
			return nil, fmt.Errorf("weekly entry: day is required")
		}
		st.weekly = append(st.weekly, analytics.StudyDay{Day: d.Day, Hours: d.Hours})
	}
	for _, a := range s.Achievements {
		da, err := a.toDomain(now)
		if err != nil {
			return nil, err
		}
		st.achievements = append(st.achievements, da)
	}
	return st, nil
}
