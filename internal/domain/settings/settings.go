package settings

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/learnhub/internal/domain/auth"
)

// Fallbacks shown when the signed-in user has no name or email on file.
const (
	FallbackName    = "User"
	FallbackEmail   = "user@example.com"
	FallbackInitial = "U"
)

// Preferences are the toggles on the settings screen.
type Preferences struct {
	Notifications bool
	DarkMode      bool
	AutoPlay      bool
}

// DefaultPreferences returns the toggles a new user starts with.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: true}
}

// Patch holds optional preference changes; nil fields are left untouched.
type Patch struct {
	Notifications *bool
	DarkMode      *bool
	AutoPlay      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Notifications == nil && p.DarkMode == nil && p.AutoPlay == nil
}

// Apply returns prefs with the patch applied.
func (p Patch) Apply(prefs Preferences) Preferences {
	if p.Notifications != nil {
		prefs.Notifications = *p.Notifications
	}
	if p.DarkMode != nil {
		prefs.DarkMode = *p.DarkMode
	}
	if p.AutoPlay != nil {
		prefs.AutoPlay = *p.AutoPlay
	}
	return prefs
}

// Profile is the account card at the top of the settings screen.
type Profile struct {
	user auth.User
}

// NewProfile derives a profile card from the signed-in user.
func NewProfile(u auth.User) Profile { return Profile{user: u} }

// DisplayName returns the full name, else the first name, else FallbackName.
func (p Profile) DisplayName() string {
	if full := p.user.FullName(); full != "" {
		return full
	}
	if p.user.FirstName != "" {
		return p.user.FirstName
	}
	return FallbackName
}

// Email returns the primary email, else FallbackEmail.
func (p Profile) Email() string {
	if p.user.Email != "" {
		return p.user.Email
	}
	return FallbackEmail
}

// Initial returns the avatar letter: first name, else email, else FallbackInitial.
func (p Profile) Initial() string {
	for _, s := range []string{p.user.FirstName, p.user.Email} {
		if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s)); r != utf8.RuneError {
			return string(unicode.ToUpper(r))
		}
	}
	return FallbackInitial
}

// ImageURL returns the avatar image, empty when the user has none.
func (p Profile) ImageURL() string { return p.user.ImageURL }

// View is everything the settings screen renders.
type View struct {
	Profile     Profile
	Preferences Preferences
}
