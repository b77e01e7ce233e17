package safeany

import (
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Option configures a container.
type Option func(*config)

type config struct {
	log     *slog.Logger
	metrics Metrics
	name    string
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics sets the metrics sink (default: no-op).
func WithMetrics(m Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithName names the container in logs and errors (default: "any-<random>").
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.metrics == nil {
		cfg.metrics = NopMetrics()
	}
	if cfg.name == "" {
		cfg.name = "any-" + gonanoid.Must(6)
	}
	return cfg
}
