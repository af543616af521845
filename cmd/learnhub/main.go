package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/learnhub/internal/config"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/identity/google"
	"github.com/kailas-cloud/learnhub/internal/identity/local"
	"github.com/kailas-cloud/learnhub/internal/identity/session"
	logpkg "github.com/kailas-cloud/learnhub/internal/logger"
	"github.com/kailas-cloud/learnhub/internal/metrics"
	"github.com/kailas-cloud/learnhub/internal/repository/content"
	"github.com/kailas-cloud/learnhub/internal/repository/preferences"
	chiTransport "github.com/kailas-cloud/learnhub/internal/transport/chi"
	accountuc "github.com/kailas-cloud/learnhub/internal/usecase/account"
	analyticsuc "github.com/kailas-cloud/learnhub/internal/usecase/analytics"
	cataloguc "github.com/kailas-cloud/learnhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/learnhub/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/learnhub/internal/usecase/notebook"
	settingsuc "github.com/kailas-cloud/learnhub/internal/usecase/settings"
	"github.com/kailas-cloud/learnhub/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting learnhub API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("auth_provider", cfg.Auth.Provider),
	)

	metrics.RegisterScreenMetrics()

	store, err := content.Load(cfg.Content.SeedFile, time.Now())
	if err != nil {
		logger.Fatal("Failed to load content", zap.Error(err))
	}
	if cfg.Content.SeedFile != "" {
		logger.Info("Loaded content seed", zap.String("path", cfg.Content.SeedFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewRegistry(time.Duration(cfg.Auth.SessionTTLSec)*time.Second, logger)
	go sessions.RunJanitor(ctx, time.Duration(cfg.Auth.SweepIntervalSec)*time.Second)

	provider, err := buildProvider(cfg.Auth, sessions, logger)
	if err != nil {
		logger.Fatal("Failed to create identity provider", zap.Error(err))
	}
	if j, ok := provider.(janitor); ok {
		go j.RunJanitor(ctx, time.Duration(cfg.Auth.SweepIntervalSec)*time.Second)
	}

	// Pass a nil interface, not a typed nil, when the provider has no health check.
	var identityChecker healthuc.IdentityChecker
	if hc, ok := provider.(auth.HealthChecker); ok {
		identityChecker = hc
	}

	services := chiTransport.Services{
		Accounts:  accountuc.New(provider),
		Catalog:   cataloguc.New(store),
		Notebook:  notebookuc.New(store),
		Analytics: analyticsuc.New(store).WithDefaultScale(cfg.Chart.Scale),
		Settings:  settingsuc.New(preferences.New()),
		Health:    healthuc.New(store, identityChecker),
	}

	r := newRouter(services, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// janitor is implemented by providers holding state that expires.
type janitor interface {
	RunJanitor(ctx context.Context, interval time.Duration)
}

// newRouter assembles the middleware stack. Sessions are checked only on registered
// routes, so unknown paths get the JSON 404.
func newRouter(services chiTransport.Services, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	r.Group(func(r chi.Router) {
		r.Use(chiTransport.SessionMiddleware(services.Accounts))
		chiTransport.NewServer(services).Register(r)
	})
	return r
}

// buildProvider picks the identity provider from config. Local accounts double as the
// password fallback of the google provider.
func buildProvider(cfg config.AuthConfig, sessions *session.Registry, logger *zap.Logger) (auth.Provider, error) {
	accounts := make([]local.Account, len(cfg.Users))
	for i, u := range cfg.Users {
		accounts[i] = local.Account{
			User: auth.User{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
				ImageURL:  u.ImageURL,
			},
			PasswordHash: u.PasswordHash,
		}
	}
	localProvider, err := local.New(accounts, sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("local provider: %w", err)
	}

	switch cfg.Provider {
	case config.ProviderLocal:
		return localProvider, nil
	case config.ProviderGoogle:
		var opts []google.Option
		if len(accounts) > 0 {
			opts = append(opts, google.WithFallback(localProvider))
		}
		g, err := google.New(google.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			UserInfoURL:  cfg.Google.UserInfoURL,
		}, sessions, logger, append(opts, google.WithMaxPending(cfg.Google.MaxPendingStates))...)
		if err != nil {
			return nil, fmt.Errorf("google provider: %w", err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
