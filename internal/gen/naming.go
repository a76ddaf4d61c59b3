package gen

import (
	"strings"
	"unicode"

	"argbind/internal/match"
)

// initialisms are rendered upper-case inside identifiers.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"http": "HTTP",
	"json": "JSON",
	"api":  "API",
	"io":   "IO",
	"fd":   "FD",
}

// camelCase turns a parameter or function name into an exported Go
// identifier: "max_count" and "maxCount" both give "MaxCount".
func camelCase(name string) string {
	var b strings.Builder

	for _, w := range match.Words(name) {
		if up, ok := initialisms[w]; ok {
			b.WriteString(up)
			continue
		}

		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}

	ident := b.String()
	if ident == "" || !unicode.IsLetter([]rune(ident)[0]) {
		ident = "X" + ident
	}

	return ident
}

// snakeCase turns a function name into a file name stem.
func snakeCase(name string) string {
	return strings.Join(match.Words(name), "_")
}
