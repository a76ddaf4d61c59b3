package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FromJSON decodes a JSON document into a Value. Arrays become lists,
// objects become dicts with keys in document order, integral numbers become
// Int and other numbers Float.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON value: %w", err)
	}

	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return None, nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Int(n), nil
		}

		f, err := t.Float64()
		if err != nil {
			return nil, err
		}

		return Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			list := List{}
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}

				list = append(list, item)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return list, nil
		case '{':
			d := NewDict()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}

				item, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}

				d.Set(Str(keyTok.(string)), item)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return d, nil
		}
	}

	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// Repr renders v in a compact, human-readable form.
func Repr(v Value) string {
	switch t := v.(type) {
	case nil:
		return "<absent>"
	case NoneType:
		return "None"
	case Int:
		return strconv.FormatInt(int64(t), 10)
	case Float:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case Bool:
		if t {
			return "True"
		}

		return "False"
	case Str:
		return strconv.Quote(string(t))
	case Bytes:
		return "b" + strconv.Quote(string(t))
	case Tuple:
		return reprSeq("(", ")", t, len(t) == 1)
	case List:
		return reprSeq("[", "]", t, false)
	case *Dict:
		parts := make([]string, 0, t.Len())
		for k, val := range t.All() {
			parts = append(parts, Repr(k)+": "+Repr(val))
		}

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<" + v.TypeName() + ">"
	}
}

func reprSeq(open, closing string, items []Value, trailingComma bool) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Repr(item)
	}

	s := strings.Join(parts, ", ")
	if trailingComma {
		s += ","
	}

	return open + s + closing
}
