package binder

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argbind/internal/convert"
	"argbind/value"
)

func args(vs ...value.Value) value.Tuple {
	return value.Tuple(vs)
}

func kw(entries ...value.Entry) *value.Dict {
	return value.NewDict(entries...)
}

func i64(n int64) value.Value {
	return value.Int(n)
}

func mustBinder(t *testing.T, format string, names []string, opts ...Option) *Binder {
	t.Helper()

	s, err := Compile(format, names, opts...)
	require.NoError(t, err)

	return New(s, opts...)
}

func TestBind_Scenarios(t *testing.T) {
	t.Run("exact positional call", func(t *testing.T) {
		res, err := mustBinder(t, "OO", []string{"a", "b"}).Bind(args(i64(1), i64(2)), nil)
		require.NoError(t, err)
		assert.Equal(t, i64(1), res.Arg(0))
		assert.Equal(t, i64(2), res.Arg(1))
	})

	t.Run("optional parameter left absent", func(t *testing.T) {
		res, err := mustBinder(t, "O|O", []string{"a", "b"}).Bind(args(i64(1)), nil)
		require.NoError(t, err)
		assert.Equal(t, i64(1), res.Arg(0))
		assert.False(t, res.Present(1))
		assert.Nil(t, res.Arg(1))
	})

	t.Run("positional-only cannot be given by keyword", func(t *testing.T) {
		_, err := mustBinder(t, "O", []string{""}).Bind(nil, kw(value.Kw("a", i64(5))))
		require.ErrorIs(t, err, ErrTypeError)
		assert.EqualError(t, err, "function takes exactly 1 positional argument (0 given)")
	})

	t.Run("required keyword-only missing", func(t *testing.T) {
		_, err := mustBinder(t, "O|$@O", []string{"a", "b"}).Bind(args(i64(1)), nil)
		require.ErrorIs(t, err, ErrTypeError)
		assert.EqualError(t, err, "function missing required keyword-only argument 'b'")

		var be *Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, 2, be.Param)
		assert.Equal(t, "b", be.Name)
	})

	t.Run("positional collector", func(t *testing.T) {
		res, err := mustBinder(t, "%O", []string{"a"}).Bind(args(i64(1), i64(2), i64(3)), nil)
		require.NoError(t, err)
		assert.Equal(t, i64(1), res.Arg(0))
		assert.Equal(t, args(i64(2), i64(3)), res.ExtraPositional())
		assert.Equal(t, 0, res.ExtraKeyword().Len())
	})

	t.Run("given by name and position", func(t *testing.T) {
		_, err := mustBinder(t, "O", []string{"a"}).Bind(args(i64(1)), kw(value.Kw("a", i64(1))))
		require.ErrorIs(t, err, ErrTypeError)
		assert.EqualError(t, err, "argument for function given by name ('a') and position (1)")
	})
}

func TestBind_Messages(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		names   []string
		opts    []Option
		args    value.Tuple
		kwargs  *value.Dict
		message string
	}{
		{
			name:    "too many arguments",
			format:  "OO:f",
			names:   []string{"a", "b"},
			args:    args(i64(1), i64(2), i64(3)),
			message: "f() takes at most 2 arguments (3 given)",
		},
		{
			name:    "too many keyword arguments",
			format:  "O",
			names:   []string{"a"},
			kwargs:  kw(value.Kw("a", i64(1)), value.Kw("b", i64(2))),
			message: "function takes at most 1 keyword argument (2 given)",
		},
		{
			name:    "too many before keyword-only",
			format:  "O|O$O",
			names:   []string{"a", "b", "c"},
			args:    args(i64(1), i64(2), i64(3)),
			message: "function takes at most 2 positional arguments (3 given)",
		},
		{
			name:    "exactly before keyword-only",
			format:  "OO$O",
			names:   []string{"a", "b", "c"},
			args:    args(i64(1), i64(2), i64(3)),
			message: "function takes exactly 2 positional arguments (3 given)",
		},
		{
			name:    "keyword-only function",
			format:  "$O:g",
			names:   []string{"a"},
			args:    args(i64(1)),
			message: "g() takes no positional arguments",
		},
		{
			name:    "missing required",
			format:  "OO",
			names:   []string{"a", "b"},
			args:    args(i64(1)),
			message: "function missing required argument 'b' (pos 2)",
		},
		{
			name:    "missing keyword-only without optional region",
			format:  "O$O",
			names:   []string{"a", "b"},
			args:    args(i64(1)),
			message: "function missing required keyword-only argument 'b'",
		},
		{
			name:    "invalid keyword",
			format:  "O|O:f",
			names:   []string{"a", "b"},
			args:    args(i64(1)),
			kwargs:  kw(value.Kw("c", i64(2))),
			message: "'c' is an invalid keyword argument for f()",
		},
		{
			name:    "invalid keyword unnamed",
			format:  "O|O",
			names:   []string{"a", "b"},
			kwargs:  kw(value.Kw("c", i64(2))),
			message: "'c' is an invalid keyword argument for this function",
		},
		{
			name:    "keywords must be strings",
			format:  "O|O",
			names:   []string{"a", "b"},
			args:    args(i64(1)),
			kwargs:  kw(value.Entry{Key: i64(1), Value: i64(2)}),
			message: "keywords must be strings",
		},
		{
			name:    "duplicate found after the loop",
			format:  "O|O",
			names:   []string{"a", "b"},
			args:    args(i64(1)),
			kwargs:  kw(value.Kw("a", i64(1))),
			message: "argument for function given by name ('a') and position (1)",
		},
		{
			name:    "optional positional-only",
			format:  "O|O",
			names:   []string{"", ""},
			message: "function takes at least 1 positional argument (0 given)",
		},
		{
			name:    "positional-only before keyword-only",
			format:  "OO|O$O",
			names:   []string{"", "b", "c", "d"},
			message: "function takes at least 1 positional argument (0 given)",
		},
		{
			name:    "keyword collector only rejects extra positional",
			format:  "%O",
			names:   []string{"a"},
			opts:    []Option{WithCollectors(CollectKeyword)},
			args:    args(i64(1), i64(2)),
			message: "function takes exactly 1 positional argument (2 given)",
		},
		{
			name:    "keyword collector without parameters",
			format:  "%",
			names:   nil,
			opts:    []Option{WithCollectors(CollectKeyword)},
			args:    args(i64(1)),
			message: "function takes no positional arguments",
		},
		{
			name:    "positional collector only rejects unknown keyword",
			format:  "%O",
			names:   []string{"a"},
			opts:    []Option{WithCollectors(CollectPositional)},
			args:    args(i64(1)),
			kwargs:  kw(value.Kw("z", i64(1))),
			message: "'z' is an invalid keyword argument for this function",
		},
		{
			name:    "conversion failure",
			format:  "i:f",
			names:   []string{"a"},
			args:    args(value.Str("1")),
			message: "f() argument 1 must be int, not str",
		},
		{
			name:    "conversion failure of None",
			format:  "Oi",
			names:   []string{"a", "b"},
			args:    args(i64(1), value.None),
			message: "argument 2 must be int, not None",
		},
		{
			name:    "custom message",
			format:  "i;expected a count",
			names:   []string{"a"},
			args:    args(value.Str("1")),
			message: "expected a count",
		},
		{
			name:    "standalone conversion failure",
			format:  "i;expected a count",
			names:   []string{"a"},
			args:    args(value.Float(1.5)),
			message: "integer argument expected, got float",
		},
		{
			name:    "nested element",
			format:  "(i(ii))",
			names:   []string{"a"},
			args:    args(args(i64(1), args(i64(2), value.Str("x")))),
			message: "argument 1, item 1, item 1 must be int, not str",
		},
		{
			name:    "top-level tuple arity",
			format:  "O(ii)",
			names:   []string{"a", "b"},
			args:    args(i64(1), args(i64(1))),
			message: "argument 2 expected 2 arguments, not 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustBinder(t, tt.format, tt.names, tt.opts...).Bind(tt.args, tt.kwargs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTypeError)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestBind_SystemErrors(t *testing.T) {
	t.Run("missing hook", func(t *testing.T) {
		_, err := mustBinder(t, "O&", []string{"a"}).Bind(args(i64(1)), nil)
		require.ErrorIs(t, err, ErrSystemError)
		assert.EqualError(t, err, "argument 1 (missing hook for slot 0)")
	})

	t.Run("malformed format", func(t *testing.T) {
		_, err := ParseTupleAndKeywords(nil, nil, "(i", []string{"a"})
		require.ErrorIs(t, err, ErrSystemError)
		assert.Contains(t, err.Error(), "unmatched left paren in format string")
	})

	t.Run("unregistered code", func(t *testing.T) {
		b := mustBinder(t, "i", []string{"a"}, WithRegistry(convert.Registry{}))

		_, err := b.Bind(args(i64(1)), nil)
		require.ErrorIs(t, err, ErrSystemError)
		assert.EqualError(t, err, "argument 1 (impossible<bad format char>)")
	})
}

func TestBind_CustomConverter(t *testing.T) {
	upper := func(v value.Value, _ *Hook, _ *Ledger) (any, error) {
		s, ok := v.(value.Str)
		if !ok {
			return nil, Mismatch("str", v)
		}

		return strings.ToUpper(string(s)), nil
	}

	b := mustBinder(t, "Us", []string{"a", "b"}, WithConverter("U", upper))

	res, err := b.Bind(args(value.Str("shout"), value.Str("quiet")), nil)
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", res.Arg(0))
	assert.Equal(t, "quiet", res.Arg(1))
}

func TestBind_InvalidKeywordSuggestions(t *testing.T) {
	b := mustBinder(t, "O|ss:decode", []string{"data", "encoding", "errors"})

	_, err := b.Bind(args(value.Bytes("x")), kw(value.Kw("encodng", value.Str("utf-8"))))

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "'encodng' is an invalid keyword argument for decode()", be.Message)
	assert.Equal(t, []string{"encoding"}, be.Suggestions)
	assert.Equal(t, "encodng", be.Name)
}

func TestBind_Keywords(t *testing.T) {
	b := mustBinder(t, "O|Oi$s@p", []string{"path", "mode", "buffering", "newline", "closefd"})

	res, err := b.Bind(args(value.Str("f.txt")), kw(
		value.Kw("closefd", value.Bool(false)),
		value.Kw("buffering", i64(4096)),
	))
	require.NoError(t, err)

	assert.Equal(t, value.Str("f.txt"), res.Arg(0))
	assert.False(t, res.Present(1))
	assert.Equal(t, int64(4096), res.Arg(2))
	assert.False(t, res.Present(3))
	assert.Equal(t, false, res.Arg(4))

	v, ok := res.Lookup("buffering")
	assert.True(t, ok)
	assert.Equal(t, int64(4096), v)

	_, ok = res.Lookup("mode")
	assert.False(t, ok)

	_, ok = res.Lookup("nope")
	assert.False(t, ok)

	_, err = b.Bind(args(value.Str("f.txt")), nil)
	assert.EqualError(t, err, "function missing required keyword-only argument 'closefd'")
}

func TestBind_KeywordCollector(t *testing.T) {
	b := mustBinder(t, "%O|O", []string{"a", "b"})

	res, err := b.Bind(args(i64(1), i64(2), i64(3)), kw(value.Kw("c", i64(4)), value.Kw("d", i64(5))))
	require.NoError(t, err)

	assert.Equal(t, args(i64(3)), res.ExtraPositional())
	assert.Equal(t, []value.Value{value.Str("c"), value.Str("d")}, res.ExtraKeyword().Keys())

	v, ok := res.ExtraKeyword().Get("d")
	assert.True(t, ok)
	assert.Equal(t, i64(5), v)
}

func TestBind_HookConverter(t *testing.T) {
	boom := errors.New("not a port")

	port := func(v value.Value, _ *Hook, _ *Ledger) (any, error) {
		n, ok := v.(value.Int)
		if !ok {
			return nil, Mismatch("port number", v)
		}

		if n <= 0 || n > 65535 {
			return nil, fmt.Errorf("%d: %w", n, boom)
		}

		return uint16(n), nil
	}

	b := mustBinder(t, "O!O&:listen", []string{"host", "port"},
		WithHooks(Hook{TypeName: "str"}, Hook{Func: port}))

	res, err := b.Bind(args(value.Str("localhost"), i64(8080)), nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), res.Arg(1))

	_, err = b.Bind(args(i64(1), i64(8080)), nil)
	assert.EqualError(t, err, "listen() argument 1 must be str, not int")

	_, err = b.Bind(args(value.Str("h"), value.Str("80")), nil)
	assert.EqualError(t, err, "listen() argument 2 must be port number, not str")

	_, err = b.Bind(args(value.Str("h"), i64(0)), nil)
	assert.EqualError(t, err, "0: not a port")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrTypeError)
}

func TestBind_LedgerReleasedOnFailure(t *testing.T) {
	b := mustBinder(t, "y*(y*i)i", []string{"a", "b", "c"})

	first := value.NewView([]byte("one"), true, true)
	second := value.NewView([]byte("two"), true, true)

	_, err := b.Bind(args(first, args(second, i64(1)), value.Str("bad")), nil)
	require.Error(t, err)

	assert.Equal(t, 1, first.Releases())
	assert.Equal(t, 1, second.Releases())
	assert.Equal(t, 0, first.Exports())
	assert.Equal(t, 0, second.Exports())

	t.Run("failure inside the tuple", func(t *testing.T) {
		third := value.NewView([]byte("three"), true, true)
		strided := value.NewView([]byte("four"), false, true)

		_, err := b.Bind(args(third, args(strided, i64(1)), i64(1)), nil)
		require.EqualError(t, err, "argument 2, item 0 must be contiguous buffer, not memoryview")

		assert.Equal(t, 1, third.Releases())
		assert.Equal(t, 1, strided.Releases())
	})

	t.Run("arity failure acquires nothing", func(t *testing.T) {
		view := value.NewView([]byte("x"), true, true)

		_, err := b.Bind(args(view, args(view, i64(1)), i64(1), i64(9)), nil)
		require.Error(t, err)
		assert.Equal(t, 0, view.Releases())
	})
}

func TestBind_ResultOwnsResources(t *testing.T) {
	b := mustBinder(t, "y*|w*", []string{"src", "dst"})

	src := value.NewView([]byte("src"), true, true)
	dst := value.NewByteArray([]byte("dst"))

	res, err := b.Bind(args(src, dst), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Resources())
	assert.Equal(t, 1, src.Exports())
	assert.Equal(t, 1, dst.Exports())

	res.Release()
	res.Release()

	assert.Equal(t, 0, res.Resources())
	assert.Equal(t, 1, src.Releases())
	assert.Equal(t, 0, dst.Exports())
}

func TestBind_ConcurrentUse(t *testing.T) {
	b := mustBinder(t, "i|s:f", []string{"n", "label"})

	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 100 {
				n := int64(g*1000 + j)

				res, err := b.Bind(args(i64(n)), kw(value.Kw("label", value.Str("x"))))
				if assert.NoError(t, err) {
					assert.Equal(t, n, res.Arg(0))
				}
			}
		}()
	}

	wg.Wait()
}

func TestBind_Logging(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := mustBinder(t, "i:f", []string{"n"}, WithLogger(logger))

	_, err := b.Bind(args(value.Str("x")), nil)
	require.Error(t, err)

	assert.Contains(t, buf.String(), "binding failed")
	assert.Contains(t, buf.String(), "kind=TypeError")
	assert.Contains(t, buf.String(), "param=1")
}

func TestParseTupleAndKeywords(t *testing.T) {
	names := []string{"a", "b"}

	res, err := ParseTupleAndKeywords(args(i64(1)), kw(value.Kw("b", value.Str("x"))), "i|s", names)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Arg(0))
	assert.Equal(t, "x", res.Arg(1))

	first, err := Compile("i|s", names)
	require.NoError(t, err)

	second, err := Compile("i|s", names)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = ParseTupleAndKeywords(nil, nil, "%O", []string{"a"}, WithCollectors(CollectKeyword))
	assert.EqualError(t, err, "function missing required argument 'a' (pos 1)")
}
