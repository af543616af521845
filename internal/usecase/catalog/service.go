package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/learnhub/internal/domain/course"
	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
	"github.com/kailas-cloud/learnhub/internal/metrics"
)

// Service backs the course catalog screen.
type Service struct {
	src Source
}

// New creates a catalog service.
func New(src Source) *Service {
	return &Service{src: src}
}

// Search returns the courses whose title contains query, in catalog order.
func (s *Service) Search(ctx context.Context, query string) ([]course.Course, error) {
	all, err := s.src.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	found := filter.FilterBy(all, query, course.SearchFields...)
	metrics.ObserveFilter("courses", query, len(found))
	return found, nil
}
