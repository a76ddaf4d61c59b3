// Package convert converts single caller values according to a conversion
// code, destructuring tuple parameters recursively and registering acquired
// resources with the call's ledger.
package convert

import (
	"errors"
	"fmt"

	"argbind/internal/common"
	"argbind/internal/ledger"
	"argbind/internal/spec"
	"argbind/value"
)

// Failure is a conversion failure located inside a parameter.
type Failure struct {
	// Path holds 1-based tuple element indices, outer to inner.
	Path []int
	// Message reads like "must be int, not str". A message starting with
	// "(" denotes a defect in the contract rather than in the value.
	Message string
	// Standalone messages are reported as they are, without the
	// "argument N" prefix or a custom message.
	Standalone bool
	// Err is the error returned by a caller-supplied converter, if any.
	Err error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Mismatch builds the standard "must be <expected>, not <actual>" failure.
func Mismatch(expected string, v value.Value) *Failure {
	return &Failure{Message: fmt.Sprintf("must be %s, not %s", expected, value.Describe(v))}
}

// Fail builds a failure with a literal message.
func Fail(message string) *Failure {
	return &Failure{Message: message}
}

// Raise builds a standalone failure, reported verbatim.
func Raise(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...), Standalone: true}
}

// Hook carries the extra input some codes need: the required type name for
// "O!", the converter for "O&" and the encoding for "es"/"et".
type Hook struct {
	TypeName string
	Func     ItemFunc
	Encoding string
}

// ItemFunc converts one value. Failures should be *Failure; any other error
// is reported verbatim as a standalone failure.
type ItemFunc func(v value.Value, hook *Hook, l *ledger.Ledger) (any, error)

// Converter converts values for a single binding call.
type Converter struct {
	registry Registry
	hooks    []Hook
	ledger   *ledger.Ledger
}

// New creates a Converter. Resources acquired by conversions are added to l.
func New(registry Registry, hooks []Hook, l *ledger.Ledger) *Converter {
	if registry == nil {
		registry = DefaultRegistry()
	}

	if l == nil {
		l = ledger.New(0, nil)
	}

	return &Converter{registry: registry, hooks: hooks, ledger: l}
}

// Convert converts v for parameter d. On failure the returned error is a
// *Failure whose Path locates the failing tuple element.
func (c *Converter) Convert(v value.Value, d spec.Descriptor) (any, error) {
	out, f := c.item(v, d, 0)
	if f != nil {
		return nil, f
	}

	return out, nil
}

func (c *Converter) item(v value.Value, d spec.Descriptor, depth int) (any, *Failure) {
	if d.Code.IsTuple() {
		return c.tuple(v, d.Nested, depth)
	}

	fn, ok := c.registry[d.Code]
	if !ok {
		return nil, Fail("(impossible<bad format char>)")
	}

	var hook *Hook

	if d.Hook >= 0 {
		if d.Hook >= len(c.hooks) {
			return nil, Fail(fmt.Sprintf("(missing hook for slot %d)", d.Hook))
		}

		hook = &c.hooks[d.Hook]
	}

	out, err := fn(v, hook, c.ledger)
	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			return nil, &Failure{Message: f.Message, Standalone: f.Standalone, Err: f.Err}
		}

		return nil, &Failure{Message: err.Error(), Standalone: true, Err: err}
	}

	return out, nil
}

// tuple destructures a sequence into the nested parameters. Depth 0 is the
// parameter itself; deeper tuples are its elements.
func (c *Converter) tuple(v value.Value, nested *spec.Specification, depth int) (any, *Failure) {
	n := nested.Len()

	seq, ok := v.(value.Sequence)
	if _, isBytes := v.(value.ByteString); !ok || isBytes {
		return nil, arityFailure(n, value.Describe(v), depth)
	}

	if got := seq.Len(); got != n {
		return nil, arityFailure(n, fmt.Sprint(got), depth)
	}

	out := make([]any, n)

	for i, d := range nested.Params {
		item, err := seq.Item(i)
		if err != nil {
			return nil, &Failure{Path: []int{i + 1}, Message: "is not retrievable", Err: err}
		}

		converted, f := c.item(item, d, depth+1)
		if f != nil {
			f.Path = append([]int{i + 1}, f.Path...)
			return nil, f
		}

		out[i] = converted
	}

	return out, nil
}

func arityFailure(n int, actual string, depth int) *Failure {
	if depth == 0 {
		return Fail(fmt.Sprintf("expected %d argument%s, not %s", n, common.Plural(n), actual))
	}

	return Fail(fmt.Sprintf("must be %d-item sequence, not %s", n, actual))
}
