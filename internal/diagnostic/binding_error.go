package diagnostic

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors matching every BindingError of the corresponding Kind.
// Use errors.Is to match.
var (
	ErrSystemError = errors.New("system error")
	ErrTypeError   = errors.New("type error")
)

// BindingError is a failure to bind a call's arguments to a contract.
type BindingError struct {
	Kind Kind
	// Param is the 1-based index of the failing parameter, 0 when the
	// failure concerns the call as a whole.
	Param int
	// Name is the failing parameter's declared name, if it has one.
	Name string
	// Path holds 1-based element indices into nested tuple parameters, outer to inner.
	Path []int
	// Message is the rendered, caller-facing text.
	Message string
	// Detail is the converter's own message before rendering, if any.
	Detail string
	// Suggestions lists declared names close to an invalid keyword.
	Suggestions []string
	// Cause is the error returned by a caller-supplied converter, if any.
	Cause error
}

func (e *BindingError) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel for the error's Kind.
func (e *BindingError) Is(target error) bool {
	switch target {
	case ErrSystemError:
		return e.Kind == KindSystemError
	case ErrTypeError:
		return e.Kind == KindTypeError
	default:
		return false
	}
}

// Unwrap returns the converter's error, if any.
func (e *BindingError) Unwrap() error {
	return e.Cause
}

// PathString renders the nesting path as ", item K" qualifiers with 0-based K.
func (e *BindingError) PathString() string {
	var b strings.Builder
	for _, level := range e.Path {
		b.WriteString(", item ")
		b.WriteString(strconv.Itoa(level - 1))
	}

	return b.String()
}

// SystemError builds a contract-defect error that is not tied to a parameter.
func SystemError(message string) *BindingError {
	return &BindingError{Kind: KindSystemError, Message: message}
}

// TypeError builds a caller error that is not tied to a parameter.
func TypeError(message string) *BindingError {
	return &BindingError{Kind: KindTypeError, Message: message}
}
