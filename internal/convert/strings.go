package convert

import (
	"strings"

	"argbind/internal/ledger"
	"argbind/value"
)

func stringCodes() Registry {
	return Registry{
		"s":  text(false),
		"u":  text(false),
		"z":  text(true),
		"Z":  text(true),
		"s#": textOrBytes(false),
		"z#": textOrBytes(true),
		"S":  exact[value.Bytes]("bytes"),
		"Y":  exact[*value.ByteArray]("bytearray"),
		"U":  exact[value.Str]("str"),
	}
}

// text converts a str without embedded NULs. With orNone, None yields nil.
func text(orNone bool) ItemFunc {
	expected := "str"
	if orNone {
		expected = "str or None"
	}

	return func(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
		if orNone && (v == nil || value.IsNone(v)) {
			return nil, nil
		}

		s, ok := v.(value.Str)
		if !ok {
			return nil, Mismatch(expected, v)
		}

		if strings.IndexByte(string(s), 0) >= 0 {
			return nil, Mismatch("str without null characters", v)
		}

		return string(s), nil
	}
}

// textOrBytes accepts a str or a read-only bytes-like value and returns its bytes.
func textOrBytes(orNone bool) ItemFunc {
	expected := "str or bytes-like object"
	if orNone {
		expected = "str, bytes-like object or None"
	}

	return func(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
		if orNone && (v == nil || value.IsNone(v)) {
			return nil, nil
		}

		if s, ok := v.(value.Str); ok {
			return []byte(s), nil
		}

		data, msg := readOnlyBytes(v)
		if msg != "" {
			return nil, Mismatch(expected, v)
		}

		return data, nil
	}
}

func exact[T value.Value](expected string) ItemFunc {
	return func(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
		t, ok := v.(T)
		if !ok {
			return nil, Mismatch(expected, v)
		}

		return t, nil
	}
}
