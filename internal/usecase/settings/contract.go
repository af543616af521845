package settings

import (
	"context"

	domsettings "github.com/kailas-cloud/learnhub/internal/domain/settings"
)

// PreferenceStore keeps per-user preference toggles.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (domsettings.Preferences, error)
	Update(
		ctx context.Context, userID string,
		fn func(domsettings.Preferences) domsettings.Preferences,
	) (domsettings.Preferences, error)
}
