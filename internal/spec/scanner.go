package spec

import (
	"fmt"
	"strings"

	"argbind/internal/diagnostic"
)

// Compile scans format against the parallel list of parameter names and
// returns the immutable Specification. Malformed formats are contract
// defects and fail with a SystemError.
func Compile(format string, names []string, opts ...Option) (*Specification, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Specification{Format: format}

	body := splitSuffix(s, format)

	// leading empty names are positional-only
	pos := 0
	for pos < len(names) && names[pos] == "" {
		pos++
	}

	for _, name := range names[pos:] {
		if name == "" {
			return nil, diagnostic.SystemError("empty keyword parameter name")
		}
	}

	n := len(names)
	s.PositionalOnly = pos

	cur := 0
	if at(body, cur, '%') {
		s.Collectors = CollectAll
		if o.collectorsSet {
			s.Collectors = o.collectors
		}

		cur++
	} else if o.collectorsSet && o.collectors != CollectNone && o.strict {
		return nil, diagnostic.SystemError("collectors requested without '%' in format string")
	}

	sc := &scanner{body: body}

	const unset = -1

	minArgs, maxArgs, requiredKw := unset, unset, unset
	params := make([]Descriptor, 0, n)

	for i := range n {
		if at(body, cur, '|') {
			if o.strict && minArgs != unset {
				return nil, diagnostic.SystemError("invalid format string (| specified twice)")
			}

			if o.strict && maxArgs != unset {
				return nil, diagnostic.SystemError("invalid format string ($ before |)")
			}

			minArgs = i
			cur++
		}

		if at(body, cur, '$') {
			if o.strict && maxArgs != unset {
				return nil, diagnostic.SystemError("invalid format string ($ specified twice)")
			}

			if o.strict && i < pos {
				return nil, diagnostic.SystemError("empty parameter name after $")
			}

			maxArgs = i
			cur++
		}

		if at(body, cur, '@') {
			if o.strict && minArgs == unset && maxArgs == unset {
				return nil, diagnostic.SystemError("invalid format string (@ without preceding | and $)")
			}

			if o.strict && requiredKw != unset {
				return nil, diagnostic.SystemError("invalid format string (@ specified twice)")
			}

			requiredKw = i
			cur++
		}

		if o.strict && cur >= len(body) {
			return nil, diagnostic.SystemError(fmt.Sprintf(
				"more keyword list entries (%d) than format specifiers (%d)", n, i))
		}

		d, next, err := sc.item(names[i], cur)
		if err != nil {
			return nil, err
		}

		params = append(params, d)
		cur = next
	}

	// markers may trail the last item; they bound nothing
	for at(body, cur, '|') || at(body, cur, '$') || at(body, cur, '@') {
		cur++
	}

	if o.strict && cur < len(body) {
		return nil, diagnostic.SystemError(fmt.Sprintf(
			"more argument specifiers than keyword list entries (remaining format:'%s')", body[cur:]))
	}

	s.Params = params
	s.Hooks = sc.hooks
	s.hasOptionalMarker = minArgs != unset
	s.OptionalStart = orLen(minArgs, n)
	s.KeywordOnlyStart = orLen(maxArgs, n)
	s.RequiredKeywordOnlyStart = orLen(requiredKw, n)

	s.index = make(map[string]int, n-pos)
	for i := pos; i < n; i++ {
		if _, dup := s.index[names[i]]; !dup {
			s.index[names[i]] = i
		}
	}

	return s, nil
}

// MustCompile is like Compile but panics on malformed formats.
func MustCompile(format string, names []string, opts ...Option) *Specification {
	s, err := Compile(format, names, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

// splitSuffix strips the ":name" or ";message" suffix into s and returns the
// remaining format body.
func splitSuffix(s *Specification, format string) string {
	i := strings.IndexAny(format, ":;")
	if i < 0 {
		return format
	}

	if format[i] == ':' {
		s.FuncName = format[i+1:]
	} else {
		s.CustomMessage = format[i+1:]
		s.HasCustomMessage = true
	}

	return format[:i]
}

func orLen(v, n int) int {
	if v < 0 {
		return n
	}

	return v
}

// scanner parses items of a format body. The cursor is threaded through
// explicitly; only the hook counter is shared across the recursion.
type scanner struct {
	body  string
	hooks int
}

// item parses one item starting at pos. It delegates the extent of the item
// to skipItem so parsing and skipping never disagree.
func (sc *scanner) item(name string, pos int) (Descriptor, int, error) {
	end, msg := skipItem(sc.body, pos)
	if msg != "" {
		return Descriptor{}, pos, itemError(msg, sc.body, pos)
	}

	if sc.body[pos] == '(' {
		nested, err := sc.tuple(pos+1, end-1)
		if err != nil {
			return Descriptor{}, pos, err
		}

		return Descriptor{Name: name, Code: CodeTuple, Nested: nested, Hook: -1}, end, nil
	}

	d := Descriptor{Name: name, Code: Code(sc.body[pos:end]), Hook: -1}
	if d.Code.UsesHook() {
		d.Hook = sc.hooks
		sc.hooks++
	}

	return d, end, nil
}

// tuple parses the items between a tuple's parens, body[pos:end].
func (sc *scanner) tuple(pos, end int) (*Specification, error) {
	var params []Descriptor

	for pos < end {
		d, next, err := sc.item("", pos)
		if err != nil {
			return nil, err
		}

		params = append(params, d)
		pos = next
	}

	n := len(params)

	return &Specification{
		Params:                   params,
		OptionalStart:            n,
		KeywordOnlyStart:         n,
		RequiredKeywordOnlyStart: n,
	}, nil
}

func itemError(msg, body string, pos int) error {
	return diagnostic.SystemError(fmt.Sprintf("%s: '%s'", msg, body[pos:]))
}
