package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/logger"
)

// exemptPaths are routes reachable without a session.
var exemptPaths = map[string]struct{}{
	"/health":              {},
	"/metrics":             {},
	"/api/v1/landing":      {},
	"/api/v1/auth/sign-in": {},
}

// exemptPrefixes cover the OAuth start and callback routes.
var exemptPrefixes = []string{
	"/api/v1/auth/oauth/",
}

// SessionResolver resolves a session id to its session and user.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (auth.Session, auth.User, error)
}

type identityKey struct{}

type identity struct {
	session auth.Session
	user    auth.User
}

// IdentityFromContext returns the session and user resolved by SessionMiddleware.
func IdentityFromContext(ctx context.Context) (auth.Session, auth.User, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	return id.session, id.user, ok
}

func contextWithIdentity(ctx context.Context, s auth.Session, u auth.User) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{session: s, user: u})
}

// bearerToken extracts the token from an Authorization header.
// ok is false when the header is present but not a Bearer credential.
func bearerToken(r *http.Request) (token string, present, ok bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false, false
	}
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", true, false
	}
	token = strings.TrimSpace(h[len(bearerPrefix):])
	return token, true, token != ""
}

func isExempt(path string) bool {
	if _, ok := exemptPaths[path]; ok {
		return true
	}
	for _, p := range exemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// SessionMiddleware requires a valid "Authorization: Bearer <session id>" on every non-exempt route
// and puts the resolved session and user into the request context.
func SessionMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, present, ok := bearerToken(r)
			if !present {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
				return
			}
			if !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			sess, user, err := sessions.Session(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrSessionExpired):
				writeError(w, http.StatusUnauthorized, CodeSessionExpired, safeDomainMessage(err))
				return
			case errors.Is(err, domain.ErrUnauthorized):
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid session")
				return
			default:
				logger.FromContext(r.Context()).Error("session lookup failed", zap.Error(err))
				writeError(w, http.StatusBadGateway, CodeProviderUnavailable, safeDomainMessage(err))
				return
			}

			ctx := contextWithIdentity(r.Context(), sess, user)
			ctx = logger.With(ctx, zap.String("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
