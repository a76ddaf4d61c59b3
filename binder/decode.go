package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"argbind/value"
)

// ErrDecode is returned when a Result cannot be copied into a struct.
var ErrDecode = errors.New("decode failed")

const (
	tagName        = "arg"
	tagPositional  = "*"
	tagKeyword     = "**"
	tagSkip        = "-"
	tagIndexPrefix = "#"
)

var (
	tupleType = reflect.TypeFor[value.Tuple]()
	anysType  = reflect.TypeFor[[]any]()
)

// Decode copies the result into the struct dst points to. Fields are matched
// by their `arg` tag, or by the lower-cased field name when untagged:
//
//	arg:"name"  the parameter called name
//	arg:"#0"    the parameter at index 0, for positional-only parameters
//	arg:"*"     the extra positional values
//	arg:"**"    the extra keyword values
//	arg:"-"     ignored
//
// Absent parameters leave the field untouched; pointer fields are allocated
// only for supplied values. Integer and float fields accept any converted
// number that fits.
func (r *Result) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrDecode)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrDecode)
	}

	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		tag, skip := fieldTag(fieldType)
		if skip {
			continue
		}

		var err error

		switch tag {
		case tagPositional:
			if r.extraPositional != nil {
				err = assign(field, reflect.ValueOf(r.extraPositional))
			}
		case tagKeyword:
			if r.extraKeyword != nil {
				err = assign(field, reflect.ValueOf(r.extraKeyword))
			}
		default:
			idx, ok := r.index(tag)
			if !ok || !r.present[idx] || r.values[idx] == nil {
				continue
			}

			err = assign(field, reflect.ValueOf(r.values[idx]))
		}

		if err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrDecode, fieldType.Name, err)
		}
	}

	return nil
}

func fieldTag(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get(tagName)
	if tag == "" {
		return strings.ToLower(field.Name), false
	}

	if tag == tagSkip {
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")

	return name, false
}

func (r *Result) index(tag string) (int, bool) {
	if rest, ok := strings.CutPrefix(tag, tagIndexPrefix); ok {
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 0 || idx >= len(r.values) {
			return 0, false
		}

		return idx, true
	}

	return r.spec.Index(tag)
}

// assign stores src into field, allocating pointers and converting numbers.
func assign(field, src reflect.Value) error {
	ft := field.Type()

	if ft.Kind() == reflect.Pointer && !src.Type().AssignableTo(ft) {
		if field.IsNil() {
			field.Set(reflect.New(ft.Elem()))
		}

		return assign(field.Elem(), src)
	}

	if src.Type().AssignableTo(ft) {
		field.Set(src)
		return nil
	}

	switch {
	case isInt(ft.Kind()) && isInt(src.Kind()):
		n := src.Int()
		if field.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, ft)
		}

		field.SetInt(n)
	case isInt(ft.Kind()) && isUint(src.Kind()):
		u := src.Uint()
		if u > 1<<63-1 || field.OverflowInt(int64(u)) {
			return fmt.Errorf("value %d overflows %s", u, ft)
		}

		field.SetInt(int64(u))
	case isUint(ft.Kind()) && isUint(src.Kind()):
		u := src.Uint()
		if field.OverflowUint(u) {
			return fmt.Errorf("value %d overflows %s", u, ft)
		}

		field.SetUint(u)
	case isUint(ft.Kind()) && isInt(src.Kind()):
		n := src.Int()
		if n < 0 || field.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d overflows %s", n, ft)
		}

		field.SetUint(uint64(n))
	case isFloat(ft.Kind()) && (isFloat(src.Kind()) || isInt(src.Kind())):
		field.Set(src.Convert(ft))
	case ft == anysType && src.Type() == tupleType:
		items := src.Interface().(value.Tuple)
		out := make([]any, len(items))

		for i, v := range items {
			out[i] = v
		}

		field.Set(reflect.ValueOf(out))
	case src.Type().ConvertibleTo(ft) && ft.Kind() == src.Kind():
		field.Set(src.Convert(ft))
	default:
		return fmt.Errorf("cannot assign %s to %s", src.Type(), ft)
	}

	return nil
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
