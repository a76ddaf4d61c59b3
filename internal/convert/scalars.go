package convert

import (
	"math"

	"argbind/internal/ledger"
	"argbind/value"
)

type intRange struct {
	name     string
	min, max int64
}

var (
	unsignedByte = intRange{name: "unsigned byte integer", min: 0, max: math.MaxUint8}
	signedShort  = intRange{name: "signed short integer", min: math.MinInt16, max: math.MaxInt16}
	signedInt    = intRange{name: "signed integer", min: math.MinInt32, max: math.MaxInt32}
)

func scalarCodes() Registry {
	return Registry{
		"b": ranged(unsignedByte),
		"h": ranged(signedShort),
		"i": ranged(signedInt),
		"B": truncated(8),
		"H": truncated(16),
		"I": truncated(32),
		"k": truncated(64),
		"K": truncated(64),
		"l": wide,
		"L": wide,
		"n": wide,
		"f": realNumber,
		"d": realNumber,
		"D": complexNumber,
		"c": char,
		"C": unicodeChar,
	}
}

// integer extracts an integer, refusing floats explicitly.
func integer(v value.Value) (int64, *Failure) {
	switch n := v.(type) {
	case value.Int:
		return int64(n), nil
	case value.Bool:
		if n {
			return 1, nil
		}

		return 0, nil
	case value.Float:
		return 0, Raise("integer argument expected, got float")
	default:
		return 0, Mismatch("int", v)
	}
}

func ranged(r intRange) ItemFunc {
	return func(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
		n, f := integer(v)
		if f != nil {
			return nil, f
		}

		if n < r.min {
			return nil, Raise("%s is less than minimum", r.name)
		}

		if n > r.max {
			return nil, Raise("%s is greater than maximum", r.name)
		}

		return n, nil
	}
}

// truncated keeps the low bits of the integer without overflow checking.
func truncated(bits uint) ItemFunc {
	return func(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
		n, f := integer(v)
		if f != nil {
			return nil, f
		}

		u := uint64(n)
		if bits < 64 {
			u &= 1<<bits - 1
		}

		return u, nil
	}
}

func wide(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	n, f := integer(v)
	if f != nil {
		return nil, f
	}

	return n, nil
}

func toFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Float:
		return float64(n), true
	case value.Int:
		return float64(n), true
	case value.Bool:
		if n {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func realNumber(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	x, ok := toFloat(v)
	if !ok {
		return nil, Mismatch("real number", v)
	}

	return x, nil
}

func complexNumber(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	x, ok := toFloat(v)
	if !ok {
		return nil, Mismatch("complex", v)
	}

	return complex(x, 0), nil
}

func char(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	switch b := v.(type) {
	case value.Bytes:
		if len(b) == 1 {
			return b[0], nil
		}
	case *value.ByteArray:
		if b.Len() == 1 {
			return b.Data()[0], nil
		}
	}

	return nil, Mismatch("a byte string of length 1", v)
}

func unicodeChar(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	if s, ok := v.(value.Str); ok && s.Len() == 1 {
		for _, r := range string(s) {
			return r, nil
		}
	}

	return nil, Mismatch("a unicode character", v)
}

func truth(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	if v == nil {
		return false, nil
	}

	if t, ok := v.(value.Truther); ok {
		return t.Truth(), nil
	}

	return true, nil
}
