package analytics

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Achievement is a milestone shown under "Recent Achievements".
type Achievement struct {
	title       string
	description string
	icon        string
	earnedAt    time.Time
}

// NewAchievement validates and creates an Achievement.
func NewAchievement(title, description, icon string, earnedAt time.Time) (Achievement, error) {
	if title == "" {
		return Achievement{}, fmt.Errorf("achievement title is required")
	}
	if earnedAt.IsZero() {
		return Achievement{}, fmt.Errorf("achievement %q: earned time is required", title)
	}
	return Achievement{title: title, description: description, icon: icon, earnedAt: earnedAt}, nil
}

// Title returns the achievement name.
func (a Achievement) Title() string { return a.title }

// Description returns what was achieved.
func (a Achievement) Description() string { return a.description }

// Icon returns the icon glyph name.
func (a Achievement) Icon() string { return a.icon }

// EarnedAt returns when the achievement was earned.
func (a Achievement) EarnedAt() time.Time { return a.earnedAt }

// EarnedAgo renders the earned time relative to now, e.g. "2 days ago".
func (a Achievement) EarnedAgo(now time.Time) string {
	return humanize.RelTime(a.earnedAt, now, "ago", "from now")
}
