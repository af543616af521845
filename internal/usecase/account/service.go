package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/metrics"
)

// Route is a navigation target for the client app.
type Route string

const (
	// RouteTabs is the signed-in tab navigator.
	RouteTabs Route = "/(tabs)"
	// RouteSignIn is the sign-in screen.
	RouteSignIn Route = "/sign-in"
)

// Service handles sign-in, sign-out and session resolution.
type Service struct {
	provider Provider
}

// New creates an account service.
func New(provider Provider) *Service {
	return &Service{provider: provider}
}

// SignIn authenticates with email and password.
// Incomplete credentials are rejected without calling the provider.
func (s *Service) SignIn(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	if !creds.IsComplete() {
		metrics.ObserveSignIn("password", domain.ErrMissingCredentials)
		return auth.Session{}, domain.ErrMissingCredentials
	}
	creds.Identifier = strings.TrimSpace(creds.Identifier)

	sess, err := s.provider.SignIn(ctx, creds)
	metrics.ObserveSignIn("password", err)
	if err != nil {
		return auth.Session{}, fmt.Errorf("sign in: %w", err)
	}
	return sess, nil
}

// StartOAuth begins a redirect-based sign-in.
func (s *Service) StartOAuth(ctx context.Context, strategy auth.Strategy) (redirectURL, state string, err error) {
	op, ok := s.provider.(auth.OAuthProvider)
	if !ok {
		return "", "", domain.ErrOAuthUnsupported
	}
	redirectURL, state, err = op.StartOAuth(ctx, strategy)
	if err != nil {
		return "", "", fmt.Errorf("start oauth: %w", err)
	}
	return redirectURL, state, nil
}

// CompleteOAuth finishes a redirect-based sign-in.
func (s *Service) CompleteOAuth(ctx context.Context, state, code string) (auth.Session, error) {
	op, ok := s.provider.(auth.OAuthProvider)
	if !ok {
		return auth.Session{}, domain.ErrOAuthUnsupported
	}
	sess, err := op.CompleteOAuth(ctx, state, code)
	metrics.ObserveSignIn("oauth", err)
	if err != nil {
		return auth.Session{}, fmt.Errorf("complete oauth: %w", err)
	}
	return sess, nil
}

// SignOut ends a session. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.provider.SignOut(ctx, sessionID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Session resolves the session and its user.
func (s *Service) Session(ctx context.Context, sessionID string) (auth.Session, auth.User, error) {
	if sessionID == "" {
		return auth.Session{}, auth.User{}, domain.ErrUnauthorized
	}
	sess, user, err := s.provider.CurrentSession(ctx, sessionID)
	if err != nil {
		return auth.Session{}, auth.User{}, fmt.Errorf("current session: %w", err)
	}
	return sess, user, nil
}

// Landing picks the first screen for a client: the tabs when signed in, else sign-in.
// Provider failures other than a missing or expired session are returned.
func (s *Service) Landing(ctx context.Context, sessionID string) (Route, error) {
	_, _, err := s.Session(ctx, sessionID)
	switch {
	case err == nil:
		return RouteTabs, nil
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionExpired):
		return RouteSignIn, nil
	default:
		return "", err
	}
}
