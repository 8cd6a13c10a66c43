package hiertab

import (
	"io"
	"log/slog"
)

// Options holds configuration for the Transformer.
type Options struct {
	logger      *slog.Logger
	dateLayouts []string
}

func defaultOptions() *Options {
	return &Options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures the Transformer.
type Option func(*Options)

// WithLogger sets the structured logger used during transformation.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDateLayouts replaces the layouts tried when coercing date columns
// (default: ISO dates, RFC 3339, common slash and month-name forms).
func WithDateLayouts(layouts ...string) Option {
	return func(o *Options) { o.dateLayouts = layouts }
}
