package report

import (
	"io"
	"log/slog"
)

// Option configures One and All.
type Option func(*options)

type options struct {
	messages Messages
	logger   *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.messages = o.messages.withDefaults()
	return o
}

// WithMessages overrides parts of the formatter. Nil fields keep their
// defaults.
func WithMessages(m Messages) Option {
	return func(o *options) {
		o.messages = m
	}
}

// WithLogger sets the logger that receives one debug event per level walked
// and per union branch scored. Reports are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
