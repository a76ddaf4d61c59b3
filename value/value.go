package value

import (
	"fmt"
	"unicode/utf8"
)

// Value is an opaque caller value handed to the binder.
// The binder only needs a type name for diagnostics; everything else is
// discovered through the optional interfaces below.
type Value interface {
	TypeName() string
}

// Sequence is implemented by values that can be destructured into a tuple parameter.
type Sequence interface {
	Value
	Len() int
	Item(i int) (Value, error)
}

// ByteString marks sequence values that must never be destructured as tuples.
type ByteString interface {
	Value
	IsByteString()
}

// Truther reports the truthiness of a value for the "p" code.
type Truther interface {
	Truth() bool
}

// NoneType is the type of the absence marker.
type NoneType struct{}

// None is the singleton absence marker.
var None = NoneType{}

func (NoneType) TypeName() string { return "NoneType" }
func (NoneType) Truth() bool { return false }
func (NoneType) String() string { return "None" }

// IsNone reports whether v is the absence marker.
func IsNone(v Value) bool {
	_, ok := v.(NoneType)
	return ok
}

// Describe renders the type of v as it appears in "must be X, not Y" messages.
func Describe(v Value) string {
	if v == nil || IsNone(v) {
		return "None"
	}

	return v.TypeName()
}

type (
	Int   int64
	Float float64
	Bool  bool
	Str   string
)

func (Int) TypeName() string { return "int" }
func (Float) TypeName() string { return "float" }
func (Bool) TypeName() string { return "bool" }
func (Str) TypeName() string { return "str" }

func (v Int) Truth() bool { return v != 0 }
func (v Float) Truth() bool { return v != 0 }
func (v Bool) Truth() bool { return bool(v) }
func (v Str) Truth() bool { return v != "" }

// Len returns the number of characters in the string.
func (v Str) Len() int { return utf8.RuneCountInString(string(v)) }

// Item returns the i-th character as a one-character string.
func (v Str) Item(i int) (Value, error) {
	n := 0
	for _, r := range string(v) {
		if n == i {
			return Str(string(r)), nil
		}
		n++
	}

	return nil, fmt.Errorf("string index %d out of range", i)
}

// Tuple is an immutable sequence of values.
type Tuple []Value

func (Tuple) TypeName() string { return "tuple" }
func (t Tuple) Len() int { return len(t) }
func (t Tuple) Truth() bool { return len(t) > 0 }
func (t Tuple) Item(i int) (Value, error) {
	if i < 0 || i >= len(t) {
		return nil, fmt.Errorf("tuple index %d out of range", i)
	}

	return t[i], nil
}

// List is a mutable sequence of values.
type List []Value

func (List) TypeName() string { return "list" }
func (l List) Len() int { return len(l) }
func (l List) Truth() bool { return len(l) > 0 }
func (l List) Item(i int) (Value, error) {
	if i < 0 || i >= len(l) {
		return nil, fmt.Errorf("list index %d out of range", i)
	}

	return l[i], nil
}

// Object is a value of an arbitrary named type with an opaque payload.
type Object struct {
	Type string
	Data any
}

func (o *Object) TypeName() string { return o.Type }

// NewObject creates an Object of the given type name.
func NewObject(typeName string, data any) *Object {
	return &Object{Type: typeName, Data: data}
}
