package local

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New([]Account{{
		User:         auth.User{ID: "u1", FirstName: "Ada", Email: "Ada@Example.org"},
		PasswordHash: mustHash(t, "correct horse"),
	}}, session.NewRegistry(time.Hour, zap.NewNop()), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestSignIn_Success(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	s, err := p.SignIn(ctx, auth.Credentials{Identifier: " ada@example.org ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	got, user, err := p.CurrentSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if got.UserID != "u1" || user.FirstName != "Ada" {
		t.Errorf("unexpected session %+v user %+v", got, user)
	}

	if err := p.SignOut(ctx, s.ID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, _, err := p.CurrentSession(ctx, s.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after sign-out, got %v", err)
	}
}

func TestSignIn_Rejected(t *testing.T) {
	p := newProvider(t)
	tests := []struct {
		name    string
		creds   auth.Credentials
		wantMsg string
	}{
		{"unknown account", auth.Credentials{Identifier: "bob@example.org", Password: "x"}, msgAccountNotFound},
		{"wrong password", auth.Credentials{Identifier: "ada@example.org", Password: "nope"}, msgPasswordIncorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SignIn(context.Background(), tt.creds)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			var pe *domain.ProviderError
			if !errors.As(err, &pe) || pe.Message != tt.wantMsg {
				t.Errorf("provider message = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNew_InvalidAccounts(t *testing.T) {
	reg := session.NewRegistry(time.Hour, zap.NewNop())
	hash := mustHash(t, "pw")
	tests := []struct {
		name     string
		accounts []Account
		wantErr  string
	}{
		{"no email", []Account{{User: auth.User{ID: "u1"}, PasswordHash: hash}}, "email is required"},
		{"no id", []Account{{User: auth.User{Email: "a@b.c"}, PasswordHash: hash}}, "id is required"},
		{"bad hash", []Account{{User: auth.User{ID: "u1", Email: "a@b.c"}, PasswordHash: "plain"}}, "invalid password hash"},
		{"duplicate", []Account{
			{User: auth.User{ID: "u1", Email: "a@b.c"}, PasswordHash: hash},
			{User: auth.User{ID: "u2", Email: "A@B.C"}, PasswordHash: hash},
		}, "duplicate email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.accounts, reg, zap.NewNop())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(h), []byte("secret")) != nil {
		t.Error("hash does not verify")
	}
}

func TestHealthCheck(t *testing.T) {
	if err := newProvider(t).HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	empty, _ := New(nil, session.NewRegistry(time.Hour, zap.NewNop()), zap.NewNop())
	if err := empty.HealthCheck(context.Background()); err == nil {
		t.Error("expected error for provider without accounts")
	}
}
