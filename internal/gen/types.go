package gen

import (
	"argbind/internal/spec"
)

// goType describes the Go type a conversion code produces.
type goType struct {
	// Expr is the type expression.
	Expr string
	// Nilable types need no pointer to express absence.
	Nilable bool
	// MaybeNil codes may produce nil for a supplied None.
	MaybeNil bool
}

var codeTypes = map[spec.Code]goType{
	"O":  {Expr: "value.Value", Nilable: true},
	"O!": {Expr: "value.Value", Nilable: true},
	"O&": {Expr: "any", Nilable: true},
	"p":  {Expr: "bool"},

	"b": {Expr: "int64"},
	"h": {Expr: "int64"},
	"i": {Expr: "int64"},
	"l": {Expr: "int64"},
	"L": {Expr: "int64"},
	"n": {Expr: "int64"},
	"B": {Expr: "uint64"},
	"H": {Expr: "uint64"},
	"I": {Expr: "uint64"},
	"k": {Expr: "uint64"},
	"K": {Expr: "uint64"},
	"f": {Expr: "float64"},
	"d": {Expr: "float64"},
	"D": {Expr: "complex128"},
	"c": {Expr: "byte"},
	"C": {Expr: "rune"},

	"s":  {Expr: "string"},
	"u":  {Expr: "string"},
	"z":  {Expr: "string", MaybeNil: true},
	"Z":  {Expr: "string", MaybeNil: true},
	"s#": {Expr: "[]byte", Nilable: true},
	"z#": {Expr: "[]byte", Nilable: true},
	"S":  {Expr: "value.Bytes", Nilable: true},
	"Y":  {Expr: "*value.ByteArray", Nilable: true},
	"U":  {Expr: "value.Str"},

	"y":  {Expr: "[]byte", Nilable: true},
	"y#": {Expr: "[]byte", Nilable: true},
	"s*": {Expr: "*value.Buffer", Nilable: true},
	"z*": {Expr: "*value.Buffer", Nilable: true},
	"y*": {Expr: "*value.Buffer", Nilable: true},
	"w*": {Expr: "*value.Buffer", Nilable: true},

	"es":  {Expr: "[]byte", Nilable: true},
	"es#": {Expr: "[]byte", Nilable: true},
	"et":  {Expr: "[]byte", Nilable: true},
	"et#": {Expr: "[]byte", Nilable: true},
}

// typeFor returns the Go type of a parameter. Unknown codes, such as ones
// added with a custom converter, are typed any.
func typeFor(d spec.Descriptor) goType {
	if d.Code.IsTuple() {
		return goType{Expr: "[]any", Nilable: true}
	}

	if t, ok := codeTypes[d.Code]; ok {
		return t
	}

	return goType{Expr: "any", Nilable: true}
}

// fieldType returns the field type expression for a parameter that may be
// absent (optional) from the call.
func fieldType(t goType, optional bool) string {
	if t.Nilable || !(optional || t.MaybeNil) {
		return t.Expr
	}

	return "*" + t.Expr
}
