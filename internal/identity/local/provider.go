// Package local is a development identity provider backed by a fixed user list
// with bcrypt password hashes.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
)

// Messages returned to the sign-in form.
const (
	msgAccountNotFound   = "Couldn't find your account."
	msgPasswordIncorrect = "Password is incorrect. Try again, or use another method."
)

// Account is a user that may sign in with a password.
type Account struct {
	User         auth.User
	PasswordHash string // bcrypt
}

var (
	_ auth.Provider      = (*Provider)(nil)
	_ auth.HealthChecker = (*Provider)(nil)
)

// Provider signs users in against the configured accounts.
type Provider struct {
	accounts map[string]Account // keyed by lower-cased email
	sessions *session.Registry
	logger   *zap.Logger
}

// New creates a local provider. Accounts without an email are rejected.
func New(accounts []Account, sessions *session.Registry, logger *zap.Logger) (*Provider, error) {
	byEmail := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		key := strings.ToLower(strings.TrimSpace(a.User.Email))
		if key == "" {
			return nil, fmt.Errorf("local account %q: email is required", a.User.ID)
		}
		if a.User.ID == "" {
			return nil, fmt.Errorf("local account %s: id is required", key)
		}
		if _, err := bcrypt.Cost([]byte(a.PasswordHash)); err != nil {
			return nil, fmt.Errorf("local account %s: invalid password hash: %w", key, err)
		}
		if _, dup := byEmail[key]; dup {
			return nil, fmt.Errorf("local account %s: duplicate email", key)
		}
		byEmail[key] = a
	}
	return &Provider{accounts: byEmail, sessions: sessions, logger: logger}, nil
}

// HashPassword returns a bcrypt hash suitable for Account.PasswordHash.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// SignIn verifies the password and issues a session.
func (p *Provider) SignIn(_ context.Context, creds auth.Credentials) (auth.Session, error) {
	acc, ok := p.accounts[strings.ToLower(strings.TrimSpace(creds.Identifier))]
	if !ok {
		return auth.Session{}, domain.NewProviderError(domain.ErrInvalidCredentials, msgAccountNotFound)
	}

	err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(creds.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return auth.Session{}, domain.NewProviderError(domain.ErrInvalidCredentials, msgPasswordIncorrect)
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: compare password: %w", domain.ErrProviderUnavailable, err)
	}

	return p.sessions.Issue(acc.User), nil
}

// SignOut revokes the session.
func (p *Provider) SignOut(_ context.Context, sessionID string) error {
	p.sessions.Revoke(sessionID)
	return nil
}

// CurrentSession resolves a session id to its session and user.
func (p *Provider) CurrentSession(_ context.Context, sessionID string) (auth.Session, auth.User, error) {
	return p.sessions.Lookup(sessionID)
}

// HealthCheck fails when no accounts are configured, since nobody could sign in.
func (p *Provider) HealthCheck(_ context.Context) error {
	if len(p.accounts) == 0 {
		return errors.New("local identity provider has no accounts")
	}
	return nil
}
