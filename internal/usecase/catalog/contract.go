package catalog

import (
	"context"

	"github.com/kailas-cloud/learnhub/internal/domain/course"
)

// Source supplies the course catalog.
type Source interface {
	Courses(ctx context.Context) ([]course.Course, error)
}
