package learnhub

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	seedFile   string
	chartScale float64
	now        func() time.Time

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithContent loads courses, notes and analytics from a YAML seed file
// instead of the built-in content.
func WithContent(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedFile = path
	})
}

// WithChartScale sets the size of the largest chart bar when callers pass scale 0.
// Default: 120.
func WithChartScale(scale float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.chartScale = scale
	})
}

// WithClock sets the time source for note ages. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.now = now
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
