package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
)

// fakeGoogle serves the token and userinfo endpoints.
type fakeGoogle struct {
	srv          *httptest.Server
	gotVerifier  string
	userInfoCode int
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{userInfoCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		f.gotVerifier = r.Form.Get("code_verifier")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.userInfoCode != http.StatusOK {
			w.WriteHeader(f.userInfoCode)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userInfo{
			Sub: "1234", Email: "grace@example.org", GivenName: "Grace", FamilyName: "Hopper",
			Picture: "https://example.org/g.png",
		})
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func newProvider(t *testing.T, f *fakeGoogle, opts ...Option) *Provider {
	t.Helper()
	p, err := New(Config{
		ClientID:     "client-id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		AuthURL:      f.srv.URL + "/auth",
		TokenURL:     f.srv.URL + "/token",
		UserInfoURL:  f.srv.URL + "/userinfo",
	}, session.NewRegistry(time.Hour, zap.NewNop()), zap.NewNop(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestOAuthFlow(t *testing.T) {
	f := newFakeGoogle(t)
	p := newProvider(t, f)
	ctx := context.Background()

	redirect, state, err := p.StartOAuth(ctx, auth.StrategyGoogle)
	if err != nil {
		t.Fatalf("StartOAuth: %v", err)
	}
	u, err := url.Parse(redirect)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	q := u.Query()
	if q.Get("state") != state {
		t.Errorf("state = %q, want %q", q.Get("state"), state)
	}
	if q.Get("code_challenge_method") != "S256" || q.Get("code_challenge") == "" {
		t.Errorf("missing PKCE challenge in %s", redirect)
	}
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}

	s, err := p.CompleteOAuth(ctx, state, "good-code")
	if err != nil {
		t.Fatalf("CompleteOAuth: %v", err)
	}
	if f.gotVerifier == "" {
		t.Error("token exchange did not send a code verifier")
	}

	_, user, err := p.CurrentSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if user.ID != "google:1234" || user.FullName() != "Grace Hopper" || user.Email != "grace@example.org" {
		t.Errorf("unexpected user %+v", user)
	}

	// state is single-use
	if _, err := p.CompleteOAuth(ctx, state, "good-code"); !errors.Is(err, domain.ErrOAuthStateMismatch) {
		t.Errorf("expected ErrOAuthStateMismatch on reuse, got %v", err)
	}
}

func TestCompleteOAuth_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown state", func(t *testing.T) {
		p := newProvider(t, newFakeGoogle(t))
		if _, err := p.CompleteOAuth(ctx, "nope", "good-code"); !errors.Is(err, domain.ErrOAuthStateMismatch) {
			t.Errorf("expected ErrOAuthStateMismatch, got %v", err)
		}
	})

	t.Run("expired state", func(t *testing.T) {
		p := newProvider(t, newFakeGoogle(t))
		start := time.Now()
		p.now = func() time.Time { return start }
		_, state, err := p.StartOAuth(ctx, auth.StrategyGoogle)
		if err != nil {
			t.Fatal(err)
		}
		p.now = func() time.Time { return start.Add(stateTTL + time.Second) }
		if _, err := p.CompleteOAuth(ctx, state, "good-code"); !errors.Is(err, domain.ErrOAuthStateMismatch) {
			t.Errorf("expected ErrOAuthStateMismatch, got %v", err)
		}
	})

	t.Run("rejected code", func(t *testing.T) {
		p := newProvider(t, newFakeGoogle(t))
		_, state, _ := p.StartOAuth(ctx, auth.StrategyGoogle)
		if _, err := p.CompleteOAuth(ctx, state, "bad-code"); !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("userinfo failure", func(t *testing.T) {
		f := newFakeGoogle(t)
		f.userInfoCode = http.StatusInternalServerError
		p := newProvider(t, f)
		_, state, _ := p.StartOAuth(ctx, auth.StrategyGoogle)
		if _, err := p.CompleteOAuth(ctx, state, "good-code"); !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestStartOAuth_UnsupportedStrategy(t *testing.T) {
	p := newProvider(t, newFakeGoogle(t))
	if _, _, err := p.StartOAuth(context.Background(), "oauth_github"); !errors.Is(err, domain.ErrOAuthUnsupported) {
		t.Errorf("expected ErrOAuthUnsupported, got %v", err)
	}
}

func TestStartOAuth_PendingLimit(t *testing.T) {
	p := newProvider(t, newFakeGoogle(t), WithMaxPending(3))
	ctx := context.Background()
	start := time.Now()
	p.now = func() time.Time { return start }

	var states []string
	for range 3 {
		_, state, err := p.StartOAuth(ctx, auth.StrategyGoogle)
		if err != nil {
			t.Fatalf("StartOAuth: %v", err)
		}
		states = append(states, state)
	}
	if _, _, err := p.StartOAuth(ctx, auth.StrategyGoogle); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts at the limit, got %v", err)
	}
	if p.Pending() != 3 {
		t.Errorf("pending = %d, want 3", p.Pending())
	}

	// completing a flow frees its slot
	if _, err := p.CompleteOAuth(ctx, states[0], "good-code"); err != nil {
		t.Fatalf("CompleteOAuth: %v", err)
	}
	if _, _, err := p.StartOAuth(ctx, auth.StrategyGoogle); err != nil {
		t.Errorf("StartOAuth after a completed flow: %v", err)
	}

	// expired flows are released by the sweep
	p.now = func() time.Time { return start.Add(stateTTL + time.Second) }
	if n := p.Sweep(); n != 3 {
		t.Errorf("swept %d, want 3", n)
	}
	if p.Pending() != 0 {
		t.Errorf("pending after sweep = %d, want 0", p.Pending())
	}
	if _, _, err := p.StartOAuth(ctx, auth.StrategyGoogle); err != nil {
		t.Errorf("StartOAuth after sweep: %v", err)
	}
}

func TestRunJanitor_StopsOnCancel(t *testing.T) {
	p := newProvider(t, newFakeGoogle(t))
	start := time.Now()
	p.now = func() time.Time { return start }
	if _, _, err := p.StartOAuth(context.Background(), auth.StrategyGoogle); err != nil {
		t.Fatal(err)
	}
	p.now = func() time.Time { return start.Add(stateTTL + time.Second) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for p.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done

	if p.Pending() != 0 {
		t.Errorf("janitor did not sweep expired state, pending = %d", p.Pending())
	}
}

type stubProvider struct {
	auth.Provider
	called bool
}

func (s *stubProvider) SignIn(context.Context, auth.Credentials) (auth.Session, error) {
	s.called = true
	return auth.Session{ID: "fallback"}, nil
}

func TestSignIn(t *testing.T) {
	f := newFakeGoogle(t)

	t.Run("without fallback", func(t *testing.T) {
		_, err := newProvider(t, f).SignIn(context.Background(), auth.Credentials{Identifier: "a", Password: "b"})
		var pe *domain.ProviderError
		if !errors.As(err, &pe) || !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected provider error, got %v", err)
		}
	})

	t.Run("with fallback", func(t *testing.T) {
		stub := &stubProvider{}
		s, err := newProvider(t, f, WithFallback(stub)).SignIn(context.Background(), auth.Credentials{Identifier: "a", Password: "b"})
		if err != nil || s.ID != "fallback" || !stub.called {
			t.Errorf("fallback not used: session %+v err %v", s, err)
		}
	})
}

func TestNew_Validation(t *testing.T) {
	reg := session.NewRegistry(time.Hour, zap.NewNop())
	if _, err := New(Config{RedirectURL: "http://x"}, reg, zap.NewNop()); err == nil {
		t.Error("expected error without client id")
	}
	if _, err := New(Config{ClientID: "id"}, reg, zap.NewNop()); err == nil {
		t.Error("expected error without redirect url")
	}
}
