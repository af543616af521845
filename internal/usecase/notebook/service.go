package notebook

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/learnhub/internal/domain/note"
	"github.com/kailas-cloud/learnhub/internal/domain/search/filter"
	"github.com/kailas-cloud/learnhub/internal/metrics"
)

// Service backs the notes screen.
type Service struct {
	src Source
}

// New creates a notebook service.
func New(src Source) *Service {
	return &Service{src: src}
}

// Search returns the notes whose title or body contains query, in notebook order.
func (s *Service) Search(ctx context.Context, query string) ([]note.Note, error) {
	all, err := s.src.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	found := filter.FilterBy(all, query, note.SearchFields...)
	metrics.ObserveFilter("notes", query, len(found))
	return found, nil
}
