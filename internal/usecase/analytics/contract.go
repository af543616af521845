package analytics

import (
	"context"

	domanalytics "github.com/kailas-cloud/learnhub/internal/domain/analytics"
)

// Source supplies dashboard content.
type Source interface {
	Stats(ctx context.Context) ([]domanalytics.StatCard, error)
	WeeklyStudy(ctx context.Context) ([]domanalytics.StudyDay, error)
	Achievements(ctx context.Context) ([]domanalytics.Achievement, error)
}
