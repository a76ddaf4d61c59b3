package binder

import (
	"argbind/internal/ledger"
	"argbind/internal/spec"
	"argbind/value"
)

// Result holds the converted values of a successful binding. Absent
// optional parameters have no value.
type Result struct {
	spec    *spec.Specification
	values  []any
	present []bool

	extraPositional value.Tuple
	extraKeyword    *value.Dict

	resources []ledger.Entry
}

func newResult(s *spec.Specification) *Result {
	return &Result{
		spec:    s,
		values:  make([]any, s.Len()),
		present: make([]bool, s.Len()),
	}
}

func (r *Result) set(i int, v any) {
	r.values[i] = v
	r.present[i] = true
}

// done takes ownership of everything the ledger holds.
func (r *Result) done(l *ledger.Ledger) *Result {
	r.resources = l.Transfer()
	return r
}

// Len returns the number of declared parameters.
func (r *Result) Len() int {
	return len(r.values)
}

// Arg returns the converted value of parameter i, or nil when it was not supplied.
func (r *Result) Arg(i int) any {
	return r.values[i]
}

// Present reports whether parameter i was supplied.
func (r *Result) Present(i int) bool {
	return r.present[i]
}

// Lookup returns the converted value of the parameter called name.
// The boolean is false when no such parameter exists or it was not supplied.
func (r *Result) Lookup(name string) (any, bool) {
	i, ok := r.spec.Index(name)
	if !ok || !r.present[i] {
		return nil, false
	}

	return r.values[i], true
}

// ExtraPositional returns the positional values collected by "%", or nil
// when the positional collector is off.
func (r *Result) ExtraPositional() value.Tuple {
	return r.extraPositional
}

// ExtraKeyword returns the unknown keywords collected by "%", or nil when the
// keyword collector is off.
func (r *Result) ExtraKeyword() *value.Dict {
	return r.extraKeyword
}

// Resources returns how many acquired resources the result owns.
func (r *Result) Resources() int {
	return len(r.resources)
}

// Release returns every resource acquired during binding, such as buffer
// views, in acquisition order. It is safe to call more than once.
func (r *Result) Release() {
	entries := r.resources
	r.resources = nil
	ledger.ReleaseAll(entries)
}
