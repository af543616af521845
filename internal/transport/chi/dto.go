package chi

import (
	"time"

	"github.com/kailas-cloud/learnhub/internal/domain/analytics"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/domain/chart"
	"github.com/kailas-cloud/learnhub/internal/domain/course"
	"github.com/kailas-cloud/learnhub/internal/domain/note"
	"github.com/kailas-cloud/learnhub/internal/domain/settings"
	healthuc "github.com/kailas-cloud/learnhub/internal/usecase/health"
)

// SignInRequest is the body of POST /auth/sign-in.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SessionResponse describes an issued session.
type SessionResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SignInResponse is returned by the sign-in and OAuth callback routes.
type SignInResponse struct {
	Session SessionResponse `json:"session"`
	Route   string          `json:"route"`
}

// OAuthStartResponse carries the consent URL the client opens.
type OAuthStartResponse struct {
	RedirectURL string `json:"redirect_url"`
	State       string `json:"state"`
}

// UserResponse is the signed-in user.
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// CurrentSessionResponse is returned by GET /auth/session.
type CurrentSessionResponse struct {
	Session SessionResponse `json:"session"`
	User    UserResponse    `json:"user"`
}

// LandingResponse tells the launch screen where to navigate.
type LandingResponse struct {
	Route string `json:"route"`
}

// CourseResponse is one catalog card.
type CourseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
}

// NoteResponse is one notes list card.
type NoteResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedAgo string    `json:"updated_ago"`
}

// ListResponse wraps a filtered list.
type ListResponse[T any] struct {
	Items []T    `json:"items"`
	Total int    `json:"total"`
	Query string `json:"query"`
}

// StatCardResponse is one analytics tile.
type StatCardResponse struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Change   string `json:"change"`
	Positive bool   `json:"positive"`
	Icon     string `json:"icon"`
}

// BarResponse is one chart bar.
type BarResponse struct {
	Label     string  `json:"label"`
	Magnitude float64 `json:"magnitude"`
	Size      float64 `json:"size"`
}

// ChartResponse is the weekly study chart.
type ChartResponse struct {
	Bars  []BarResponse `json:"bars"`
	Scale float64       `json:"scale"`
}

// AchievementResponse is one recent achievement.
type AchievementResponse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
	EarnedAgo   string    `json:"earned_ago"`
}

// DashboardResponse is the analytics screen.
type DashboardResponse struct {
	Stats        []StatCardResponse    `json:"stats"`
	Weekly       ChartResponse         `json:"weekly"`
	Achievements []AchievementResponse `json:"achievements"`
}

// ProfileResponse is the settings account card.
type ProfileResponse struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Initial     string `json:"initial"`
	ImageURL    string `json:"image_url,omitempty"`
}

// PreferencesResponse holds the settings toggles.
type PreferencesResponse struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"dark_mode"`
	AutoPlay      bool `json:"auto_play"`
}

// SettingsResponse is the settings screen.
type SettingsResponse struct {
	Profile     ProfileResponse     `json:"profile"`
	Preferences PreferencesResponse `json:"preferences"`
}

// PreferencesPatchRequest is the body of PATCH /settings/preferences. Omitted toggles are unchanged.
type PreferencesPatchRequest struct {
	Notifications *bool `json:"notifications,omitempty"`
	DarkMode      *bool `json:"dark_mode,omitempty"`
	AutoPlay      *bool `json:"auto_play,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func sessionToResponse(s auth.Session) SessionResponse {
	resp := SessionResponse{ID: s.ID, UserID: s.UserID, CreatedAt: s.CreatedAt}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}

func userToResponse(u auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
	}
}

func coursesToResponse(cs []course.Course, query string) ListResponse[CourseResponse] {
	items := make([]CourseResponse, len(cs))
	for i, c := range cs {
		items[i] = CourseResponse{
			ID:          c.ID(),
			Title:       c.Title(),
			Description: c.Description(),
			Progress:    c.Progress(),
			Duration:    c.Duration(),
			Level:       string(c.Level()),
		}
	}
	return ListResponse[CourseResponse]{Items: items, Total: len(items), Query: query}
}

func notesToResponse(ns []note.Note, query string, now time.Time) ListResponse[NoteResponse] {
	items := make([]NoteResponse, len(ns))
	for i, n := range ns {
		tags := n.Tags()
		if tags == nil {
			tags = []string{}
		}
		items[i] = NoteResponse{
			ID:         n.ID(),
			Title:      n.Title(),
			Content:    n.Content(),
			Tags:       tags,
			UpdatedAt:  n.UpdatedAt(),
			UpdatedAgo: n.UpdatedAgo(now),
		}
	}
	return ListResponse[NoteResponse]{Items: items, Total: len(items), Query: query}
}

func chartToResponse(bars []chart.Bar, scale float64) ChartResponse {
	out := make([]BarResponse, len(bars))
	for i, b := range bars {
		out[i] = BarResponse{Label: b.Label, Magnitude: b.Magnitude, Size: b.Size}
	}
	return ChartResponse{Bars: out, Scale: scale}
}

func dashboardToResponse(d analytics.Dashboard, now time.Time) DashboardResponse {
	stats := make([]StatCardResponse, len(d.Stats))
	for i, s := range d.Stats {
		stats[i] = StatCardResponse{
			Label:    s.Label(),
			Value:    s.Value(),
			Change:   s.Change(),
			Positive: s.Positive(),
			Icon:     s.Icon(),
		}
	}
	achievements := make([]AchievementResponse, len(d.Achievements))
	for i, a := range d.Achievements {
		achievements[i] = AchievementResponse{
			Title:       a.Title(),
			Description: a.Description(),
			Icon:        a.Icon(),
			EarnedAt:    a.EarnedAt(),
			EarnedAgo:   a.EarnedAgo(now),
		}
	}
	return DashboardResponse{
		Stats:        stats,
		Weekly:       chartToResponse(d.Weekly, d.Scale),
		Achievements: achievements,
	}
}

func settingsToResponse(v settings.View) SettingsResponse {
	return SettingsResponse{
		Profile: ProfileResponse{
			DisplayName: v.Profile.DisplayName(),
			Email:       v.Profile.Email(),
			Initial:     v.Profile.Initial(),
			ImageURL:    v.Profile.ImageURL(),
		},
		Preferences: PreferencesResponse{
			Notifications: v.Preferences.Notifications,
			DarkMode:      v.Preferences.DarkMode,
			AutoPlay:      v.Preferences.AutoPlay,
		},
	}
}

func healthToResponse(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}
