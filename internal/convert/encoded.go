package convert

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"argbind/internal/ledger"
	"argbind/value"
)

// DefaultEncoding is used by "es"/"et" when the hook names none.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned by LookupEncoding for unsupported names.
var ErrUnknownEncoding = errors.New("unknown encoding")

func encodedCodes() Registry {
	return Registry{
		"es":  encoded(false),
		"es#": encoded(false),
		"et":  encoded(true),
		"et#": encoded(true),
	}
}

// LookupEncoding resolves an IANA or MIME encoding name. Names are also tried
// without hyphens, so "utf8" and "utf-8" are equivalent.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}

	for _, candidate := range []string{name, strings.ReplaceAll(name, "-", "")} {
		for _, index := range []*ianaindex.Index{ianaindex.IANA, ianaindex.MIME} {
			enc, err := index.Encoding(candidate)
			if err == nil && enc != nil {
				return enc, nil
			}
		}
	}

	if strings.EqualFold(strings.ReplaceAll(name, "-", ""), "utf8") {
		return unicode.UTF8, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

// encoded encodes a str into a freshly allocated byte slice owned by the
// ledger. With passBytes, byte strings are copied through unchanged.
func encoded(passBytes bool) ItemFunc {
	expected := "str"
	if passBytes {
		expected = "str, bytes or bytearray"
	}

	return func(v value.Value, h *Hook, l *ledger.Ledger) (any, error) {
		name := DefaultEncoding
		if h != nil && h.Encoding != "" {
			name = h.Encoding
		}

		enc, err := LookupEncoding(name)
		if err != nil {
			return nil, Fail(fmt.Sprintf("(unknown encoding: %s)", name))
		}

		var out []byte

		switch s := v.(type) {
		case value.Str:
			out, err = enc.NewEncoder().Bytes([]byte(s))
			if err != nil {
				return nil, Raise("'%s' codec can't encode %s: %v", name, value.Repr(s), err)
			}
		case value.Bytes:
			if !passBytes {
				return nil, Mismatch(expected, v)
			}

			out = append([]byte(nil), s...)
		case *value.ByteArray:
			if !passBytes {
				return nil, Mismatch(expected, v)
			}

			out = append([]byte(nil), s.Data()...)
		default:
			return nil, Mismatch(expected, v)
		}

		l.Add(out, func(handle any) { clear(handle.([]byte)) })

		return out, nil
	}
}
