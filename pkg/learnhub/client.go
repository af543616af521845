package learnhub

import (
	"context"
	"fmt"
	"time"

	domanalytics "github.com/kailas-cloud/learnhub/internal/domain/analytics"
	"github.com/kailas-cloud/learnhub/internal/domain/chart"
	"github.com/kailas-cloud/learnhub/internal/domain/course"
	"github.com/kailas-cloud/learnhub/internal/domain/note"
	"github.com/kailas-cloud/learnhub/internal/repository/content"
	analyticsuc "github.com/kailas-cloud/learnhub/internal/usecase/analytics"
	cataloguc "github.com/kailas-cloud/learnhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/learnhub/internal/usecase/health"
	notebookuc "github.com/kailas-cloud/learnhub/internal/usecase/notebook"
)

// Internal interfaces, swapped in tests.
type catalogUseCase interface {
	Search(ctx context.Context, query string) ([]course.Course, error)
}

type notebookUseCase interface {
	Search(ctx context.Context, query string) ([]note.Note, error)
}

type analyticsUseCase interface {
	WeeklyChart(ctx context.Context, scale float64) ([]chart.Bar, float64, error)
	Dashboard(ctx context.Context, scale float64) (domanalytics.Dashboard, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the learnhub SDK entry point. Safe for concurrent use.
type Client struct {
	catalog   catalogUseCase
	notebook  notebookUseCase
	analytics analyticsUseCase
	health    healthUseCase
	now       func() time.Time
	obs       *observer
}

// New creates a Client over the built-in content or the file given with WithContent.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		chartScale: chart.DefaultScale,
		now:        time.Now,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if !chart.ValidScale(cfg.chartScale) {
		return nil, fmt.Errorf("learnhub: chart scale: %w", ErrInvalidScale)
	}

	store, err := content.Load(cfg.seedFile, cfg.now())
	if err != nil {
		return nil, fmt.Errorf("learnhub: load content: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		catalog:   cataloguc.New(store),
		notebook:  notebookuc.New(store),
		analytics: analyticsuc.New(store).WithDefaultScale(cfg.chartScale),
		health:    healthuc.New(store, nil),
		now:       cfg.now,
		obs:       obs,
	}, nil
}

// Courses returns the catalog entries whose title contains query, ignoring case.
func (c *Client) Courses(ctx context.Context, query string) (_ []Course, err error) {
	start := time.Now()
	var out []Course
	defer func() { c.obs.observe("courses", start, len(out), err) }()

	found, err := c.catalog.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("learnhub: courses: %w", err)
	}
	out = make([]Course, len(found))
	for i, co := range found {
		out[i] = Course{
			ID:          co.ID(),
			Title:       co.Title(),
			Description: co.Description(),
			Progress:    co.Progress(),
			Duration:    co.Duration(),
			Level:       string(co.Level()),
		}
	}
	return out, nil
}

// Notes returns the notes whose title or content contains query, ignoring case.
func (c *Client) Notes(ctx context.Context, query string) (_ []Note, err error) {
	start := time.Now()
	var out []Note
	defer func() { c.obs.observe("notes", start, len(out), err) }()

	found, err := c.notebook.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("learnhub: notes: %w", err)
	}
	now := c.now()
	out = make([]Note, len(found))
	for i, n := range found {
		out[i] = Note{
			ID:         n.ID(),
			Title:      n.Title(),
			Content:    n.Content(),
			Tags:       n.Tags(),
			UpdatedAt:  n.UpdatedAt(),
			UpdatedAgo: n.UpdatedAgo(now),
		}
	}
	return out, nil
}

// WeeklyChart returns hours studied per weekday normalized to scale, and the scale used.
// Scale 0 selects the client default.
func (c *Client) WeeklyChart(ctx context.Context, scale float64) (_ []Bar, _ float64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("weekly_chart", start, -1, err) }()

	bars, used, err := c.analytics.WeeklyChart(ctx, scale)
	if err != nil {
		return nil, 0, fmt.Errorf("learnhub: weekly chart: %w", err)
	}
	return bars, used, nil
}

// Dashboard returns the analytics tiles, the weekly chart and recent achievements. Scale 0 selects the client default.
func (c *Client) Dashboard(ctx context.Context, scale float64) (_ Dashboard, err error) {
	start := time.Now()
	defer func() { c.obs.observe("dashboard", start, -1, err) }()

	d, err := c.analytics.Dashboard(ctx, scale)
	if err != nil {
		return Dashboard{}, fmt.Errorf("learnhub: dashboard: %w", err)
	}
	stats := make([]StatCard, len(d.Stats))
	for i, s := range d.Stats {
		stats[i] = StatCard{
			Label:    s.Label(),
			Value:    s.Value(),
			Change:   s.Change(),
			Positive: s.Positive(),
			Icon:     s.Icon(),
		}
	}
	now := c.now()
	achievements := make([]Achievement, len(d.Achievements))
	for i, a := range d.Achievements {
		achievements[i] = Achievement{
			Title:       a.Title(),
			Description: a.Description(),
			Icon:        a.Icon(),
			EarnedAt:    a.EarnedAt(),
			EarnedAgo:   a.EarnedAgo(now),
		}
	}
	return Dashboard{Stats: stats, Weekly: d.Weekly, Scale: d.Scale, Achievements: achievements}, nil
}

// Health reports whether the content is available.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
