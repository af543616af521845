// Package session keeps the sessions issued by the identity providers in memory.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	"github.com/kailas-cloud/learnhub/internal/metrics"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

type entry struct {
	session auth.Session
	user    auth.User
}

// Registry issues, resolves and revokes sessions. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewRegistry creates a registry. ttl <= 0 selects DefaultTTL.
func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source (tests).
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Issue creates a session for user.
func (r *Registry) Issue(user auth.User) auth.Session {
	now := r.now().UTC()
	s := auth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	r.mu.Lock()
	r.sessions[s.ID] = entry{session: s, user: user}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	r.logger.Debug("session issued", zap.String("user_id", user.ID))
	return s
}

// Lookup resolves a session id. Expired sessions are removed and reported as ErrSessionExpired.
func (r *Registry) Lookup(id string) (auth.Session, auth.User, error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return auth.Session{}, auth.User{}, domain.ErrUnauthorized
	}

	if e.session.Expired(r.now()) {
		r.Revoke(id)
		return auth.Session{}, auth.User{}, fmt.Errorf("%w: session %s", domain.ErrSessionExpired, id)
	}
	return e.session, e.user, nil
}

// Revoke ends a session. Unknown ids are ignored.
func (r *Registry) Revoke(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))
}

// Len returns the number of held sessions, expired ones included until swept.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	removed := 0
	for id, e := range r.sessions {
		if e.session.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}
