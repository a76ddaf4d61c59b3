package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"argbind/binder"
	"argbind/internal/match"
	"argbind/internal/spec"
	"argbind/value"
)

var (
	// ErrInvalidContract is returned when a contract file fails validation.
	ErrInvalidContract = errors.New("invalid contract")
	// ErrUnknownFunction is returned when no contract has the requested name.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrUnknownConverter is returned when an "O&" hook names an unregistered converter.
	ErrUnknownConverter = errors.New("unknown converter")
)

// Registry holds one ready binder per function contract.
type Registry struct {
	binders   map[string]*binder.Binder
	functions map[string]*Function
	order     []string
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	converters map[string]binder.ItemFunc
	binderOpts []binder.Option
	strict     bool
	logger     *slog.Logger
}

// WithConverter makes fn available to "O&" hooks that name it.
func WithConverter(name string, fn binder.ItemFunc) RegistryOption {
	return func(o *registryOptions) {
		o.converters[name] = fn
	}
}

// WithBinderOptions passes opts to every binder the registry builds.
func WithBinderOptions(opts ...binder.Option) RegistryOption {
	return func(o *registryOptions) {
		o.binderOpts = append(o.binderOpts, opts...)
	}
}

// WithStrict toggles the format consistency checks for validation and compilation.
func WithStrict(strict bool) RegistryOption {
	return func(o *registryOptions) {
		o.strict = strict
	}
}

// WithLogger sets the logger handed to every binder.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// NewRegistry validates f and builds a binder for each of its functions.
func NewRegistry(f *File, opts ...RegistryOption) (*Registry, error) {
	o := registryOptions{
		converters: map[string]binder.ItemFunc{},
		strict:     true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	diags := Validate(f, spec.WithStrict(o.strict))
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContract, diags.Error())
	}

	r := &Registry{
		binders:   make(map[string]*binder.Binder, len(f.Functions)),
		functions: make(map[string]*Function, len(f.Functions)),
	}

	for i := range f.Functions {
		fn := &f.Functions[i]

		b, err := o.build(fn)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", fn.Name, err)
		}

		r.binders[fn.Name] = b
		r.functions[fn.Name] = fn
		r.order = append(r.order, fn.Name)
	}

	return r, nil
}

func (o *registryOptions) build(fn *Function) (*binder.Binder, error) {
	opts := slices.Clone(o.binderOpts)
	opts = append(opts, binder.WithStrict(o.strict), binder.WithLogger(o.logger))

	if mask, ok := fn.Collectors(); ok && fn.HasPercent() {
		opts = append(opts, binder.WithCollectors(mask))
	}

	s, err := binder.Compile(fn.Format, fn.Params, opts...)
	if err != nil {
		return nil, err
	}

	hooks, err := o.hooks(fn, s)
	if err != nil {
		return nil, err
	}

	return binder.New(s, append(opts, binder.WithHooks(hooks...))...), nil
}

// hooks turns the declared hook entries into binder hooks, slot by slot.
func (o *registryOptions) hooks(fn *Function, s *spec.Specification) ([]binder.Hook, error) {
	codes := s.HookCodes()
	hooks := make([]binder.Hook, len(codes))

	for slot, code := range codes {
		def := fn.Hooks[slot]

		switch code {
		case "O!":
			hooks[slot] = binder.Hook{TypeName: def.Type}
		case "O&":
			conv, ok := o.converters[def.Converter]
			if !ok {
				return nil, fmt.Errorf("%w %q for hook %d", ErrUnknownConverter, def.Converter, slot)
			}

			hooks[slot] = binder.Hook{Func: conv}
		default:
			hooks[slot] = binder.Hook{Encoding: def.Encoding}
		}
	}

	return hooks, nil
}

// Names returns the function names in declaration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Lookup returns the binder of the named function.
func (r *Registry) Lookup(name string) (*binder.Binder, bool) {
	b, ok := r.binders[name]
	return b, ok
}

// Function returns the contract the named binder was built from.
func (r *Registry) Function(name string) (*Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Bind binds one call against the named function.
func (r *Registry) Bind(name string, args value.Tuple, kwargs *value.Dict) (*binder.Result, error) {
	b, ok := r.binders[name]
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnknownFunction, name)
		if similar := match.Closest(name, r.order); len(similar) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, similar[0])
		}

		return nil, err
	}

	return b.Bind(args, kwargs)
}
