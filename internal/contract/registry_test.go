package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argbind/binder"
	"argbind/internal/ledger"
	"argbind/value"
)

const registryYAML = `
functions:
  - name: open
    format: "s|s$p@O&"
    params: [path, mode, closefd, opener]
    hooks:
      - converter: upper
  - name: encode
    format: "es"
    params: [text]
    hooks:
      - encoding: latin-1
  - name: check
    format: "O!"
    params: [obj]
    hooks:
      - type: int
  - name: log
    format: "%s"
    params: [msg]
    collect: [keyword]
`

func upper(v value.Value, _ *binder.Hook, _ *ledger.Ledger) (any, error) {
	s, ok := v.(value.Str)
	if !ok {
		return nil, binder.Mismatch("str", v)
	}

	return strings.ToUpper(string(s)), nil
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := NewRegistry(mustParse(t, registryYAML), WithConverter("upper", upper))
	require.NoError(t, err)

	return r
}

func TestRegistry_Bind(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, []string{"open", "encode", "check", "log"}, r.Names())

	res, err := r.Bind("open", value.Tuple{value.Str("a.txt")}, value.NewDict(value.Kw("opener", value.Str("x"))))
	require.NoError(t, err)

	opener, ok := res.Lookup("opener")
	require.True(t, ok)
	assert.Equal(t, "X", opener)

	_, err = r.Bind("open", value.Tuple{value.Str("a.txt")}, nil)
	assert.EqualError(t, err, "open() missing required keyword-only argument 'opener'")

	res, err = r.Bind("encode", value.Tuple{value.Str("é")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9}, res.Arg(0))
	res.Release()

	_, err = r.Bind("check", value.Tuple{value.Str("1")}, nil)
	assert.EqualError(t, err, "check() argument 1 must be int, not str")
}

func TestRegistry_Collectors(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Bind("log", value.Tuple{value.Str("hi")}, value.NewDict(value.Kw("level", value.Int(3))))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExtraKeyword().Len())

	// only the keyword catch-all was requested
	_, err = r.Bind("log", value.Tuple{value.Str("hi"), value.Str("extra")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, binder.ErrTypeError)
}

func TestRegistry_UnknownFunction(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Bind("opne", nil, nil)
	require.ErrorIs(t, err, ErrUnknownFunction)
	assert.EqualError(t, err, `unknown function "opne" (did you mean open?)`)

	_, err = r.Bind("zzz", nil, nil)
	assert.EqualError(t, err, `unknown function "zzz"`)
}

func TestRegistry_Lookup(t *testing.T) {
	r := newTestRegistry(t)

	b, ok := r.Lookup("open")
	require.True(t, ok)
	assert.Equal(t, "open", b.Spec().FuncName)

	fn, ok := r.Function("encode")
	require.True(t, ok)
	assert.Equal(t, "latin-1", fn.Hooks[0].Encoding)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(mustParse(t, registryYAML))
	require.ErrorIs(t, err, ErrUnknownConverter)
	assert.Contains(t, err.Error(), `function "open"`)

	_, err = NewRegistry(mustParse(t, "functions:\n  - {name: f, format: \"(i\", params: [a]}\n"))
	require.ErrorIs(t, err, ErrInvalidContract)
	assert.Contains(t, err.Error(), "invalid_format")
}
