package convert

import (
	"maps"

	"argbind/internal/spec"
)

// Registry maps conversion codes to their converters.
type Registry map[spec.Code]ItemFunc

// DefaultRegistry returns a fresh registry holding every built-in code.
func DefaultRegistry() Registry {
	r := Registry{
		"O":  object,
		"O!": typedObject,
		"O&": hooked,
		"p":  truth,
	}

	maps.Copy(r, scalarCodes())
	maps.Copy(r, stringCodes())
	maps.Copy(r, bufferCodes())
	maps.Copy(r, encodedCodes())

	return r
}

// With returns a copy of r with code bound to fn.
func (r Registry) With(code spec.Code, fn ItemFunc) Registry {
	out := maps.Clone(r)
	if out == nil {
		out = Registry{}
	}

	out[code] = fn

	return out
}

// Missing returns the first code used by s, nested ones included, that has
// no converter.
func (r Registry) Missing(s *spec.Specification) (spec.Code, bool) {
	for _, d := range s.Params {
		if d.Code.IsTuple() {
			if code, ok := r.Missing(d.Nested); ok {
				return code, true
			}

			continue
		}

		if _, ok := r[d.Code]; !ok {
			return d.Code, true
		}
	}

	return "", false
}
