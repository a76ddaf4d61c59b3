package binder

import (
	"log/slog"

	"argbind/internal/convert"
	"argbind/internal/spec"
)

// Option configures a Binder and, for the compiling entry points, the
// compilation of its format string.
type Option func(*options)

type options struct {
	hooks    []convert.Hook
	registry convert.Registry
	logger   *slog.Logger
	fastPath bool
	compile  []spec.Option
}

func defaultOptions() options {
	return options{
		fastPath: true,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func collect(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithHooks supplies the hook slots consumed by "O!", "O&", "es" and "et"
// codes, in the order the codes appear in the format string.
func WithHooks(hooks ...Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithLogger sets the logger used for debug tracing of bindings.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFastPath toggles the early return taken once every keyword has been
// consumed and only optional parameters remain. It changes no outcome.
func WithFastPath(enabled bool) Option {
	return func(o *options) {
		o.fastPath = enabled
	}
}

// WithRegistry replaces the conversion registry.
func WithRegistry(registry convert.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithConverter binds an extra conversion code on top of the current registry.
// The code must still be accepted by the format grammar.
func WithConverter(code string, fn ItemFunc) Option {
	return func(o *options) {
		if o.registry == nil {
			o.registry = convert.DefaultRegistry()
		}

		o.registry = o.registry.With(spec.Code(code), fn)
	}
}

// WithStrict toggles the format consistency checks when compiling.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.compile = append(o.compile, spec.WithStrict(strict))
	}
}

// WithCollectors restricts the catch-alls a "%" format provides when compiling.
func WithCollectors(mask spec.CollectorEnum) Option {
	return func(o *options) {
		o.compile = append(o.compile, spec.WithCollectors(mask))
	}
}
