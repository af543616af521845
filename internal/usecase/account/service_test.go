package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/domain/auth/mock"
)

// --- Mocks ---

// oauthProvider adds a scripted OAuth flow to the generated provider mock.
type oauthProvider struct {
	*mock.MockProvider
	redirect string
	state    string
	session  auth.Session
	err      error
}

func (o *oauthProvider) StartOAuth(_ context.Context, _ auth.Strategy) (string, string, error) {
	return o.redirect, o.state, o.err
}

func (o *oauthProvider) CompleteOAuth(_ context.Context, state, _ string) (auth.Session, error) {
	if state != o.state {
		return auth.Session{}, domain.ErrOAuthStateMismatch
	}
	return o.session, o.err
}

var sess = auth.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

// --- Tests ---

func TestSignIn_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockProvider(ctrl) // no calls expected

	tests := []auth.Credentials{
		{Identifier: "", Password: "pw"},
		{Identifier: "   ", Password: "pw"},
		{Identifier: "a@b.c", Password: ""},
	}
	for _, creds := range tests {
		_, err := New(p).SignIn(context.Background(), creds)
		if !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("SignIn(%+v) = %v, want ErrMissingCredentials", creds, err)
		}
	}
}

func TestSignIn_DelegatesTrimmedIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockProvider(ctrl)
	p.EXPECT().
		SignIn(gomock.Any(), auth.Credentials{Identifier: "a@b.c", Password: " pw "}).
		Return(sess, nil)

	got, err := New(p).SignIn(context.Background(), auth.Credentials{Identifier: " a@b.c ", Password: " pw "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "s1" {
		t.Errorf("session id = %q", got.ID)
	}
}

func TestSignIn_ProviderMessagePreserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockProvider(ctrl)
	p.EXPECT().SignIn(gomock.Any(), gomock.Any()).
		Return(auth.Session{}, domain.NewProviderError(domain.ErrInvalidCredentials, "Password is incorrect."))

	_, err := New(p).SignIn(context.Background(), auth.Credentials{Identifier: "a", Password: "b"})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Message != "Password is incorrect." {
		t.Fatalf("expected provider message to survive wrapping, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestOAuth_Unsupported(t *testing.T) {
	svc := New(mock.NewMockProvider(gomock.NewController(t)))

	if _, _, err := svc.StartOAuth(context.Background(), auth.StrategyGoogle); !errors.Is(err, domain.ErrOAuthUnsupported) {
		t.Errorf("StartOAuth: %v", err)
	}
	if _, err := svc.CompleteOAuth(context.Background(), "st", "code"); !errors.Is(err, domain.ErrOAuthUnsupported) {
		t.Errorf("CompleteOAuth: %v", err)
	}
}

func TestOAuth_Flow(t *testing.T) {
	p := &oauthProvider{
		MockProvider: mock.NewMockProvider(gomock.NewController(t)),
		redirect:     "https://accounts.example/auth?state=st",
		state:        "st",
		session:      sess,
	}
	svc := New(p)

	url, state, err := svc.StartOAuth(context.Background(), auth.StrategyGoogle)
	if err != nil || url != p.redirect || state != "st" {
		t.Fatalf("StartOAuth = %q, %q, %v", url, state, err)
	}

	got, err := svc.CompleteOAuth(context.Background(), state, "code")
	if err != nil || got.ID != sess.ID {
		t.Fatalf("CompleteOAuth = %+v, %v", got, err)
	}

	if _, err := svc.CompleteOAuth(context.Background(), "forged", "code"); !errors.Is(err, domain.ErrOAuthStateMismatch) {
		t.Errorf("expected ErrOAuthStateMismatch, got %v", err)
	}
}

func TestSignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockProvider(ctrl)
	p.EXPECT().SignOut(gomock.Any(), "s1").Return(nil).Times(2)
	svc := New(p)

	for range 2 {
		if err := svc.SignOut(context.Background(), "s1"); err != nil {
			t.Fatalf("SignOut: %v", err)
		}
	}
	// empty id never reaches the provider
	if err := svc.SignOut(context.Background(), ""); err != nil {
		t.Errorf("SignOut(\"\"): %v", err)
	}
}

func TestLanding(t *testing.T) {
	boom := errors.New("provider down")
	tests := []struct {
		name      string
		sessionID string
		setup     func(p *mock.MockProvider)
		want      Route
		wantErr   error
	}{
		{
			name:      "signed in",
			sessionID: "s1",
			setup: func(p *mock.MockProvider) {
				p.EXPECT().CurrentSession(gomock.Any(), "s1").Return(sess, auth.User{ID: "u1"}, nil)
			},
			want: RouteTabs,
		},
		{
			name:  "no session id",
			setup: func(*mock.MockProvider) {},
			want:  RouteSignIn,
		},
		{
			name:      "unknown session",
			sessionID: "zzz",
			setup: func(p *mock.MockProvider) {
				p.EXPECT().CurrentSession(gomock.Any(), "zzz").Return(auth.Session{}, auth.User{}, domain.ErrUnauthorized)
			},
			want: RouteSignIn,
		},
		{
			name:      "expired session",
			sessionID: "old",
			setup: func(p *mock.MockProvider) {
				p.EXPECT().CurrentSession(gomock.Any(), "old").Return(auth.Session{}, auth.User{}, domain.ErrSessionExpired)
			},
			want: RouteSignIn,
		},
		{
			name:      "provider failure",
			sessionID: "s1",
			setup: func(p *mock.MockProvider) {
				p.EXPECT().CurrentSession(gomock.Any(), "s1").Return(auth.Session{}, auth.User{}, boom)
			},
			wantErr: boom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mock.NewMockProvider(gomock.NewController(t))
			tt.setup(p)

			got, err := New(p).Landing(context.Background(), tt.sessionID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("route = %q, want %q", got, tt.want)
			}
		})
	}
}
