package binder

import (
	"argbind/internal/convert"
	"argbind/internal/diagnostic"
	"argbind/internal/ledger"
	"argbind/internal/spec"
	"argbind/value"
)

type (
	// Spec is a compiled format string.
	Spec = spec.Specification
	// Hook fills one hook slot: a type name for "O!", a converter for "O&",
	// an encoding for "es"/"et".
	Hook = convert.Hook
	// ItemFunc converts one value for an "O&" hook or a custom code.
	ItemFunc = convert.ItemFunc
	// Ledger records resources acquired by conversions.
	Ledger = ledger.Ledger
	// Error is the error type returned by Bind.
	Error = diagnostic.BindingError
	// CollectorEnum selects catch-all outputs.
	CollectorEnum = spec.CollectorEnum
)

const (
	CollectPositional = spec.CollectPositional
	CollectKeyword    = spec.CollectKeyword
	CollectAll        = spec.CollectAll
	CollectNone       = spec.CollectNone
)

// Error classes; match them with errors.Is.
var (
	ErrTypeError   = diagnostic.ErrTypeError
	ErrSystemError = diagnostic.ErrSystemError
)

// Compile compiles format against names through the shared cache.
// Only the compile options among opts apply.
func Compile(format string, names []string, opts ...Option) (*Spec, error) {
	return spec.DefaultCache.Compile(format, names, collect(opts).compile...)
}

// ParseTupleAndKeywords compiles format (cached) and binds one call.
func ParseTupleAndKeywords(args value.Tuple, kwargs *value.Dict, format string, names []string, opts ...Option) (*Result, error) {
	s, err := Compile(format, names, opts...)
	if err != nil {
		return nil, err
	}

	return New(s, opts...).Bind(args, kwargs)
}

// Mismatch builds the standard "must be <expected>, not <actual>" failure
// for use in hook converters.
func Mismatch(expected string, v value.Value) error {
	return convert.Mismatch(expected, v)
}
