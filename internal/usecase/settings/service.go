package settings

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/domain/auth"
	domsettings "github.com/kailas-cloud/learnhub/internal/domain/settings"
)

// Service backs the settings screen.
type Service struct {
	store PreferenceStore
}

// New creates a settings service.
func New(store PreferenceStore) *Service {
	return &Service{store: store}
}

// Get returns the profile card and preference toggles for a signed-in user.
func (s *Service) Get(ctx context.Context, user auth.User) (domsettings.View, error) {
	prefs, err := s.store.Get(ctx, user.ID)
	if err != nil {
		return domsettings.View{}, fmt.Errorf("get preferences: %w", err)
	}
	return domsettings.View{Profile: domsettings.NewProfile(user), Preferences: prefs}, nil
}

// UpdatePreferences applies a patch to the user's toggles.
func (s *Service) UpdatePreferences(
	ctx context.Context, user auth.User, patch domsettings.Patch,
) (domsettings.View, error) {
	if patch.IsEmpty() {
		return domsettings.View{}, fmt.Errorf("%w: no preference changes", domain.ErrInvalidInput)
	}

	prefs, err := s.store.Update(ctx, user.ID, patch.Apply)
	if err != nil {
		return domsettings.View{}, fmt.Errorf("update preferences: %w", err)
	}
	return domsettings.View{Profile: domsettings.NewProfile(user), Preferences: prefs}, nil
}
