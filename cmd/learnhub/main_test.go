package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/learnhub/internal/config"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/google"
	"github.com/kailas-cloud/learnhub/internal/identity/local"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
	"github.com/kailas-cloud/learnhub/internal/repository/content"
	"github.com/kailas-cloud/learnhub/internal/repository/preferences"
	chiTransport "github.com/kailas-cloud/learnhub/internal/transport/chi"
	accountuc "github.com/kailas-cloud/learnhub/internal/usecase/account"
	analyticsuc "github.com/kailas-cloud/learnhub/internal/usecase/analytics"
	cataloguc "github.com/kailas-cloud/learnhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/learnhub/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/learnhub/internal/usecase/notebook"
	settingsuc "github.com/kailas-cloud/learnhub/internal/usecase/settings"
)

func TestJSONRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/courses", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "internal_error" {
		t.Errorf("code = %q", body["code"])
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(zap.New(core)))
	r.Get("/api/v1/notes", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notes?q=x", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one canonical log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["route"] != "/api/v1/notes" {
		t.Errorf("route field = %v", fields["route"])
	}
}

func TestBuildProvider(t *testing.T) {
	reg := session.NewRegistry(0, zap.NewNop())
	users := []config.UserConfig{{
		ID: "demo", Email: "demo@learnhub.local",
		PasswordHash: "$2a$10$TQ87fsvHMw2N996cu.8FZe0HLQT70uh7eACeawJLazUjDUDT.4FBm",
	}}

	p, err := buildProvider(config.AuthConfig{Provider: config.ProviderLocal, Users: users}, reg, zap.NewNop())
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if _, ok := p.(*local.Provider); !ok {
		t.Errorf("expected *local.Provider, got %T", p)
	}

	p, err = buildProvider(config.AuthConfig{
		Provider: config.ProviderGoogle,
		Google:   config.GoogleConfig{ClientID: "id", RedirectURL: "http://localhost/cb"},
	}, reg, zap.NewNop())
	if err != nil {
		t.Fatalf("google: %v", err)
	}
	if _, ok := p.(*google.Provider); !ok {
		t.Errorf("expected *google.Provider, got %T", p)
	}
	if _, ok := p.(auth.OAuthProvider); !ok {
		t.Error("google provider should support OAuth")
	}
	if _, ok := p.(janitor); !ok {
		t.Error("google provider should sweep expired OAuth states")
	}

	if _, err := buildProvider(config.AuthConfig{Provider: "saml"}, reg, zap.NewNop()); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewRouter_SessionScope(t *testing.T) {
	provider, err := local.New(nil, session.NewRegistry(time.Hour, zap.NewNop()), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	store := content.Builtin(time.Now())
	r := newRouter(chiTransport.Services{
		Accounts:  accountuc.New(provider),
		Catalog:   cataloguc.New(store),
		Notebook:  notebookuc.New(store),
		Analytics: analyticsuc.New(store),
		Settings:  settingsuc.New(preferences.New()),
		Health:    healthuc.New(store, nil),
	}, zap.NewNop())

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{http.MethodGet, "/no/such/route", http.StatusNotFound, "not_found"},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed, "method_not_allowed"},
		{http.MethodGet, "/health", http.StatusOK, ""},
		{http.MethodGet, "/api/v1/courses", http.StatusUnauthorized, "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, http.NoBody))

			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.wantCode, rr.Body.String())
			}
			if tt.wantBody == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["code"] != tt.wantBody {
				t.Errorf("code = %q, want %q", body["code"], tt.wantBody)
			}
		})
	}
}
