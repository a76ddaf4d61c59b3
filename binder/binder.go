package binder

import (
	"log/slog"

	"argbind/internal/convert"
	"argbind/internal/diagnostic"
	"argbind/internal/ledger"
	"argbind/internal/match"
	"argbind/internal/spec"
	"argbind/value"
)

// Binder binds calls against one compiled specification. It holds no
// per-call state and is safe for concurrent use.
type Binder struct {
	spec      *spec.Specification
	hooks     []convert.Hook
	registry  convert.Registry
	logger    *slog.Logger
	fastPath  bool
	format    diagnostic.Formatter
	resources int
}

// New creates a Binder for s.
func New(s *Spec, opts ...Option) *Binder {
	o := collect(opts)

	registry := o.registry
	if registry == nil {
		registry = convert.DefaultRegistry()
	}

	return &Binder{
		spec:     s,
		hooks:    o.hooks,
		registry: registry,
		logger:   o.logger,
		fastPath: o.fastPath,
		format: diagnostic.Formatter{
			FuncName:         s.FuncName,
			CustomMessage:    s.CustomMessage,
			HasCustomMessage: s.HasCustomMessage,
		},
		resources: countResources(s),
	}
}

// Spec returns the specification the binder was built for.
func (b *Binder) Spec() *Spec {
	return b.spec
}

// Bind matches the positional values args and the keyword mapping kwargs
// (which may be nil) against the specification and converts every supplied
// value. On failure no partial result is returned and every resource
// acquired so far has been released.
func (b *Binder) Bind(args value.Tuple, kwargs *value.Dict) (*Result, error) {
	s := b.spec
	n := s.Len()
	nargs, nkwargs := len(args), kwargs.Len()

	if nargs+nkwargs > n && s.Collectors == spec.CollectNone {
		return nil, b.fail(nil, b.tooMany(args, kwargs))
	}

	l := ledger.New(b.resources, b.logger)
	conv := convert.New(b.registry, b.hooks, l)
	res := newResult(s)

	remaining := nkwargs
	skip := false

	i := 0
	for ; i < n; i++ {
		if i == s.KeywordOnlyStart {
			// the positional bounds are fully known from here on
			if skip {
				break
			}

			if nargs > i && !s.AcceptsExtraPositional() {
				return nil, b.fail(l, b.format.TooManyPositional(i, nargs, s.OptionalStart >= i))
			}
		}

		if skip {
			continue
		}

		d := s.Params[i]

		var (
			v     value.Value
			found bool
		)

		switch {
		case i < nargs && s.AcceptsPositional(i):
			v, found = args[i], true
		case remaining > 0 && s.AcceptsKeyword(i):
			if v, found = kwargs.Get(d.Name); found {
				remaining--
			}
		}

		if found {
			out, err := conv.Convert(v, d)
			if err != nil {
				return nil, b.fail(l, b.argumentError(i, d, err))
			}

			res.set(i, out)

			continue
		}

		if s.IsRequired(i) {
			switch {
			case i < s.PositionalOnly:
				// reported once the arity bounds are known
				skip = true
			case i >= s.KeywordOnlyStart:
				return nil, b.fail(l, b.format.MissingKeywordOnly(d.Name, i+1))
			default:
				return nil, b.fail(l, b.format.MissingRequired(d.Name, i+1))
			}
		}

		if b.fastPath && remaining == 0 && !skip && !s.HasRequiredKeywordOnly() && s.Collectors == spec.CollectNone {
			b.logger.Debug("arguments bound",
				slog.String("func", s.FuncName),
				slog.Int("params", i),
				slog.Bool("fast_path", true))

			return res.done(l), nil
		}
	}

	if skip {
		least := min(s.PositionalOnly, s.OptionalStart)
		return nil, b.fail(l, b.format.TooFewPositional(least, nargs, least >= i))
	}

	cutoff := min(s.KeywordOnlyStart, n)
	bound := min(nargs, cutoff)

	switch {
	case s.AcceptsExtraPositional():
		res.extraPositional = make(value.Tuple, nargs-bound)
		copy(res.extraPositional, args[bound:])
	case nargs > cutoff:
		return nil, b.fail(l, b.format.TooManyPositional(cutoff, nargs, s.OptionalStart >= cutoff))
	}

	if s.AcceptsExtraKeyword() {
		res.extraKeyword = value.NewDict()
	}

	if remaining > 0 {
		if err := b.leftoverKeywords(kwargs, bound, res); err != nil {
			return nil, b.fail(l, err)
		}
	}

	b.logger.Debug("arguments bound",
		slog.String("func", s.FuncName),
		slog.Int("params", n),
		slog.Int("extra_positional", len(res.extraPositional)),
		slog.Int("extra_keyword", res.extraKeyword.Len()))

	return res.done(l), nil
}

// tooMany reports a call with more values than parameters. A keyword that
// repeats a positionally bound parameter is the more precise diagnosis and
// wins.
func (b *Binder) tooMany(args value.Tuple, kwargs *value.Dict) *diagnostic.BindingError {
	s := b.spec
	bound := min(len(args), s.KeywordOnlyStart, s.Len())

	for j := s.PositionalOnly; j < bound; j++ {
		if _, ok := kwargs.Get(s.Params[j].Name); ok {
			return b.format.Duplicate(s.Params[j].Name, j+1)
		}
	}

	return b.format.TooManyArguments(s.Len(), len(args)+kwargs.Len(), len(args) == 0)
}

// leftoverKeywords validates the keywords the matching loop did not consume.
func (b *Binder) leftoverKeywords(kwargs *value.Dict, bound int, res *Result) *diagnostic.BindingError {
	s := b.spec

	for j := s.PositionalOnly; j < bound; j++ {
		if _, ok := kwargs.Get(s.Params[j].Name); ok {
			return b.format.Duplicate(s.Params[j].Name, j+1)
		}
	}

	for key, v := range kwargs.All() {
		name, ok := key.(value.Str)
		if !ok {
			return b.format.KeywordsMustBeStrings()
		}

		if _, declared := s.Index(string(name)); declared {
			continue
		}

		if s.AcceptsExtraKeyword() {
			res.extraKeyword.Set(key, v)
			continue
		}

		return b.format.InvalidKeyword(string(name), match.Closest(string(name), s.KeywordNames()))
	}

	return nil
}

func (b *Binder) argumentError(i int, d spec.Descriptor, err error) *diagnostic.BindingError {
	f, ok := err.(*convert.Failure)
	if !ok {
		f = &convert.Failure{Message: err.Error(), Standalone: true, Err: err}
	}

	if f.Standalone {
		e := diagnostic.TypeError(f.Message)
		e.Param = i + 1
		e.Name = d.Name
		e.Path = f.Path
		e.Detail = f.Message
		e.Cause = f.Err

		return e
	}

	e := b.format.Argument(i+1, d.Name, f.Path, f.Message)
	e.Cause = f.Err

	return e
}

// fail releases everything acquired so far and returns err.
func (b *Binder) fail(l *ledger.Ledger, err *diagnostic.BindingError) error {
	if l != nil {
		l.Release()
	}

	b.logger.Debug("binding failed",
		slog.String("func", b.spec.FuncName),
		slog.String("kind", err.Kind.String()),
		slog.Int("param", err.Param),
		slog.String("path", err.PathString()),
		slog.String("error", err.Message))

	return err
}

// countResources returns how many parameters, nested ones included, may
// register a release with the ledger.
func countResources(s *spec.Specification) int {
	count := 0

	for _, d := range s.Params {
		switch {
		case d.Code.IsTuple():
			count += countResources(d.Nested)
		case d.Code.AcquiresResource():
			count++
		}
	}

	return count
}
