// Package preferences keeps per-user settings toggles in process memory.
// Nothing is written to disk; toggles reset on restart.
package preferences

import (
	"context"
	"sync"

	"github.com/kailas-cloud/learnhub/internal/domain/settings"
)

// Store is a mutex-guarded map of user id to preferences.
type Store struct {
	mu    sync.RWMutex
	prefs map[string]settings.Preferences
}

// New creates an empty preference store.
func New() *Store {
	return &Store{prefs: make(map[string]settings.Preferences)}
}

// Get returns the user's preferences, or the defaults if the user never changed any.
func (s *Store) Get(_ context.Context, userID string) (settings.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prefs[userID]; ok {
		return p, nil
	}
	return settings.DefaultPreferences(), nil
}

// Update applies fn to the user's current preferences atomically and stores the result.
func (s *Store) Update(
	_ context.Context, userID string, fn func(settings.Preferences) settings.Preferences,
) (settings.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.prefs[userID]
	if !ok {
		current = settings.DefaultPreferences()
	}
	next := fn(current)
	s.prefs[userID] = next
	return next, nil
}
