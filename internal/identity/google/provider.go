// Package google signs users in with Google using the OAuth2 authorization-code
// flow with PKCE. Password sign-in is delegated to an optional fallback provider.
package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
)

const (
	// DefaultUserInfoURL is Google's OpenID Connect userinfo endpoint.
	DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

	// DefaultMaxPending caps OAuth flows started but not yet completed.
	DefaultMaxPending = 10000

	stateTTL = 10 * time.Minute
)

// Config configures the provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AuthURL and TokenURL override Google's endpoints when set.
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

type pending struct {
	verifier  string
	expiresAt time.Time
}

var (
	_ auth.Provider      = (*Provider)(nil)
	_ auth.OAuthProvider = (*Provider)(nil)
	_ auth.HealthChecker = (*Provider)(nil)
)

// Provider implements Google sign-in.
type Provider struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	sessions    *session.Registry
	fallback    auth.Provider
	logger      *zap.Logger
	now         func() time.Time

	mu         sync.Mutex
	states     map[string]pending
	maxPending int
}

// Option configures a Provider.
type Option func(*Provider)

// WithFallback delegates password sign-in to p.
func WithFallback(p auth.Provider) Option {
	return func(g *Provider) { g.fallback = p }
}

// WithHTTPClient sets the client used for the token exchange and userinfo requests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Provider) { g.httpClient = c }
}

// WithMaxPending caps the number of OAuth flows awaiting their callback.
// Non-positive values keep the default.
func WithMaxPending(n int) Option {
	return func(g *Provider) {
		if n > 0 {
			g.maxPending = n
		}
	}
}

// New creates a Google provider.
func New(cfg Config, sessions *session.Registry, logger *zap.Logger, opts ...Option) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("google client id is required")
	}
	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("google redirect url is required")
	}

	endpoint := endpoints.Google
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfo := cfg.UserInfoURL
	if userInfo == "" {
		userInfo = DefaultUserInfoURL
	}

	p := &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfo,
		httpClient:  http.DefaultClient,
		sessions:    sessions,
		logger:      logger,
		now:         time.Now,
		states:      make(map[string]pending),
		maxPending:  DefaultMaxPending,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// StartOAuth returns the consent URL and the state that must come back on the callback.
// It fails with ErrTooManyAttempts while the pending-flow cap is reached.
func (p *Provider) StartOAuth(_ context.Context, strategy auth.Strategy) (string, string, error) {
	if strategy != auth.StrategyGoogle {
		return "", "", fmt.Errorf("%w: %s", domain.ErrOAuthUnsupported, strategy)
	}

	state, err := randomState()
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	verifier := oauth2.GenerateVerifier()

	p.mu.Lock()
	if len(p.states) >= p.maxPending {
		p.mu.Unlock()
		p.logger.Warn("oauth start rejected: pending flow limit reached", zap.Int("limit", p.maxPending))
		return "", "", domain.ErrTooManyAttempts
	}
	p.states[state] = pending{verifier: verifier, expiresAt: p.now().Add(stateTTL)}
	p.mu.Unlock()

	url := p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
	return url, state, nil
}

// CompleteOAuth exchanges the authorization code and issues a session.
// A state is accepted once.
func (p *Provider) CompleteOAuth(ctx context.Context, state, code string) (auth.Session, error) {
	p.mu.Lock()
	pd, ok := p.states[state]
	delete(p.states, state)
	p.mu.Unlock()
	if !ok || p.now().After(pd.expiresAt) {
		return auth.Session{}, domain.ErrOAuthStateMismatch
	}
	if code == "" {
		return auth.Session{}, fmt.Errorf("%w: missing authorization code", domain.ErrInvalidInput)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(pd.verifier))
	if err != nil {
		p.logger.Warn("google token exchange failed", zap.Error(err))
		return auth.Session{}, fmt.Errorf("%w: token exchange: %w", domain.ErrProviderUnavailable, err)
	}

	user, err := p.fetchUser(ctx, tok)
	if err != nil {
		return auth.Session{}, err
	}
	return p.sessions.Issue(user), nil
}

// Pending returns the number of OAuth flows awaiting their callback.
func (p *Provider) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.states)
}

// Sweep drops expired OAuth states and returns how many were removed.
func (p *Provider) Sweep() int {
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()
	removed := 0
	for s, pd := range p.states {
		if now.After(pd.expiresAt) {
			delete(p.states, s)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired OAuth states every interval until ctx is done.
func (p *Provider) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := p.Sweep(); n > 0 {
				p.logger.Debug("expired oauth states swept", zap.Int("count", n))
			}
		}
	}
}

type userInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (p *Provider) fetchUser(ctx context.Context, tok *oauth2.Token) (auth.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, http.NoBody)
	if err != nil {
		return auth.User{}, fmt.Errorf("%w: userinfo request: %w", domain.ErrProviderUnavailable, err)
	}

	resp, err := p.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return auth.User{}, fmt.Errorf("%w: userinfo: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return auth.User{}, fmt.Errorf("%w: userinfo status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return auth.User{}, fmt.Errorf("%w: decode userinfo: %w", domain.ErrProviderUnavailable, err)
	}
	if info.Sub == "" {
		return auth.User{}, fmt.Errorf("%w: userinfo without subject", domain.ErrProviderUnavailable)
	}

	return auth.User{
		ID:        "google:" + info.Sub,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Email:     info.Email,
		ImageURL:  info.Picture,
	}, nil
}

// SignIn delegates to the fallback provider.
func (p *Provider) SignIn(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	if p.fallback == nil {
		return auth.Session{}, domain.NewProviderError(domain.ErrInvalidCredentials,
			"Password sign-in is disabled. Continue with Google.")
	}
	return p.fallback.SignIn(ctx, creds)
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

// HealthCheck reports the provider as healthy when it is configured.
// No request is made to Google.
func (p *Provider) HealthCheck(_ context.Context) error {
	if p.oauth.ClientID == "" {
		return fmt.Errorf("google client id not configured")
	}
	return nil
}

func randomState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
