package analytics

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/learnhub/internal/domain"
	domanalytics "github.com/kailas-cloud/learnhub/internal/domain/analytics"
	"github.com/kailas-cloud/learnhub/internal/domain/chart"
	"github.com/kailas-cloud/learnhub/internal/metrics"
)

// Service backs the analytics screen.
type Service struct {
	src          Source
	defaultScale float64
}

// New creates an analytics service using chart.DefaultScale when no scale is requested.
func New(src Source) *Service {
	return &Service{src: src, defaultScale: chart.DefaultScale}
}

// WithDefaultScale overrides the scale used when callers pass zero.
func (s *Service) WithDefaultScale(scale float64) *Service {
	if chart.ValidScale(scale) {
		s.defaultScale = scale
	}
	return s
}

// DefaultScale returns the scale applied when callers pass zero.
func (s *Service) DefaultScale() float64 { return s.defaultScale }

// WeeklyChart returns hours studied per weekday normalized to scale.
// A zero scale selects the default; other non-positive or non-finite values are rejected.
func (s *Service) WeeklyChart(ctx context.Context, scale float64) ([]chart.Bar, float64, error) {
	scale, err := s.resolveScale(scale)
	if err != nil {
		return nil, 0, err
	}

	days, err := s.src.WeeklyStudy(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("weekly study: %w", err)
	}

	bars := chart.Normalize(domanalytics.Magnitudes(days), scale)
	metrics.ChartRendersTotal.WithLabelValues("weekly_study").Inc()
	return bars, scale, nil
}

// Dashboard returns the stat tiles, the weekly chart and recent achievements.
func (s *Service) Dashboard(ctx context.Context, scale float64) (domanalytics.Dashboard, error) {
	bars, scale, err := s.WeeklyChart(ctx, scale)
	if err != nil {
		return domanalytics.Dashboard{}, err
	}

	stats, err := s.src.Stats(ctx)
	if err != nil {
		return domanalytics.Dashboard{}, fmt.Errorf("stats: %w", err)
	}

	achievements, err := s.src.Achievements(ctx)
	if err != nil {
		return domanalytics.Dashboard{}, fmt.Errorf("achievements: %w", err)
	}

	return domanalytics.Dashboard{Stats: stats, Weekly: bars, Scale: scale, Achievements: achievements}, nil
}

func (s *Service) resolveScale(scale float64) (float64, error) {
	if scale == 0 {
		return s.defaultScale, nil
	}
	if !chart.ValidScale(scale) {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidScale, scale)
	}
	return scale, nil
}
