// Package auth defines the identity capability the app depends on.
// Concrete identity providers live in internal/identity and are injected at startup.
package auth

import (
	"context"
	"strings"
	"time"
)

// Strategy names an OAuth sign-in strategy, e.g. "oauth_google".
type Strategy string

// StrategyGoogle is Google sign-in.
const StrategyGoogle Strategy = "oauth_google"

// Credentials is an email/password pair collected by the sign-in form.
type Credentials struct {
	Identifier string
	Password   string
}

// IsComplete reports whether both fields are filled in.
func (c Credentials) IsComplete() bool {
	return strings.TrimSpace(c.Identifier) != "" && c.Password != ""
}

// User is the identity behind a session.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	ImageURL  string
}

// FullName joins first and last name, empty when both are empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Session is an authenticated session issued by an identity provider.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry. A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Provider is the identity provider capability.
//
//go:generate mockgen -destination=mock/provider.go -package=mock . Provider
type Provider interface {
	SignIn(ctx context.Context, creds Credentials) (Session, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentSession(ctx context.Context, sessionID string) (Session, User, error)
}

// OAuthProvider is implemented by providers that support redirect-based sign-in.
type OAuthProvider interface {
	StartOAuth(ctx context.Context, strategy Strategy) (redirectURL, state string, err error)
	CompleteOAuth(ctx context.Context, state, code string) (Session, error)
}

// HealthChecker is implemented by providers that can report their availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
