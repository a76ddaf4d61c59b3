package binder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argbind/value"
)

// callShapes enumerates positional counts 0..maxArgs combined with every
// subset of the given keyword names.
func callShapes(maxArgs int, keywords []string) []struct {
	args   value.Tuple
	kwargs *value.Dict
} {
	var out []struct {
		args   value.Tuple
		kwargs *value.Dict
	}

	for nargs := 0; nargs <= maxArgs; nargs++ {
		positional := make(value.Tuple, nargs)
		for i := range positional {
			positional[i] = value.Int(i + 1)
		}

		for mask := 0; mask < 1<<len(keywords); mask++ {
			d := value.NewDict()

			for k, name := range keywords {
				if mask&(1<<k) != 0 {
					d.Set(value.Str(name), value.Int(100+k))
				}
			}

			out = append(out, struct {
				args   value.Tuple
				kwargs *value.Dict
			}{positional, d})
		}
	}

	return out
}

func TestProperty_FastPathChangesNothing(t *testing.T) {
	contracts := []struct {
		format string
		names  []string
	}{
		{"OO", []string{"a", "b"}},
		{"O|OO", []string{"a", "b", "c"}},
		{"O|O$O", []string{"a", "b", "c"}},
		{"O|$O@O", []string{"a", "b", "c"}},
		{"O|O", []string{"", "b"}},
		{"OO|O", []string{"", "", "c"}},
		{"|OOO", []string{"a", "b", "c"}},
		{"$OO", []string{"a", "b"}},
		{"%O|O", []string{"a", "b"}},
		{"i|(ii)s", []string{"a", "b", "c"}},
	}

	for _, c := range contracts {
		t.Run(c.format, func(t *testing.T) {
			fast := mustBinder(t, c.format, c.names, WithFastPath(true))
			slow := mustBinder(t, c.format, c.names, WithFastPath(false))

			for _, call := range callShapes(4, append(c.names, "zz")) {
				want, wantErr := slow.Bind(call.args, call.kwargs)
				got, gotErr := fast.Bind(call.args, call.kwargs)

				label := fmt.Sprintf("%s args=%d kwargs=%v", c.format, len(call.args), value.Repr(call.kwargs))

				if wantErr != nil {
					require.Error(t, gotErr, label)
					assert.Equal(t, wantErr.Error(), gotErr.Error(), label)

					continue
				}

				require.NoError(t, gotErr, label)
				assert.Equal(t, want.values, got.values, label)
				assert.Equal(t, want.present, got.present, label)
				assert.Equal(t, want.extraPositional, got.extraPositional, label)
				assert.Equal(t, want.extraKeyword.Len(), got.extraKeyword.Len(), label)
			}
		})
	}
}

func TestProperty_ExactArity(t *testing.T) {
	for n := 0; n <= 4; n++ {
		format := strings.Repeat("O", n)
		names := make([]string, n)

		for i := range names {
			names[i] = fmt.Sprintf("p%d", i)
		}

		b := mustBinder(t, format, names)

		for nargs := 0; nargs <= n+2; nargs++ {
			positional := make(value.Tuple, nargs)
			for i := range positional {
				positional[i] = value.Int(i)
			}

			_, err := b.Bind(positional, nil)
			assert.Equal(t, nargs == n, err == nil, "n=%d nargs=%d err=%v", n, nargs, err)
		}

		_, err := b.Bind(nil, value.NewDict(value.Kw("unknown", value.None)))
		assert.Error(t, err)
	}
}

func TestProperty_OptionalMarker(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}

	for k := 0; k <= len(names); k++ {
		format := strings.Repeat("O", k) + "|" + strings.Repeat("O", len(names)-k)
		b := mustBinder(t, format, names)

		for nargs := k; nargs <= len(names); nargs++ {
			positional := make(value.Tuple, nargs)
			for i := range positional {
				positional[i] = value.Int(i)
			}

			res, err := b.Bind(positional, nil)
			require.NoError(t, err, "%s with %d", format, nargs)

			for i := range names {
				assert.Equal(t, i < nargs, res.Present(i), "%s with %d: param %d", format, nargs, i)
			}
		}
	}
}

func TestProperty_DuplicateAlwaysFails(t *testing.T) {
	for _, format := range []string{"O|O", "i|s", "n|d", "L|(ii)"} {
		b := mustBinder(t, format, []string{"a", "b"})

		_, err := b.Bind(value.Tuple{value.Int(1)}, value.NewDict(value.Kw("a", value.Int(1))))
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "given by name ('a') and position (1)", format)

		_, err = b.Bind(value.Tuple{value.Int(1), value.Int(2)}, value.NewDict(value.Kw("b", value.Int(1))))
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "given by name ('b') and position (2)", format)
	}
}

func TestProperty_UnknownKeyword(t *testing.T) {
	kwargs := value.NewDict(value.Kw("other", value.Str("v")))

	_, err := mustBinder(t, "|O", []string{"a"}).Bind(nil, kwargs)
	assert.EqualError(t, err, "'other' is an invalid keyword argument for this function")

	res, err := mustBinder(t, "%|O", []string{"a"}).Bind(nil, kwargs)
	require.NoError(t, err)

	v, ok := res.ExtraKeyword().Get("other")
	assert.True(t, ok)
	assert.Equal(t, value.Str("v"), v)
}

func TestProperty_NestingDepth(t *testing.T) {
	// depth d: the innermost tuple sits d levels below the parameter.
	for d := 1; d <= 5; d++ {
		format := strings.Repeat("(", d+1) + "ii" + strings.Repeat(")", d+1)

		var arg value.Value = value.Tuple{value.Int(1)}
		for range d {
			arg = value.Tuple{arg}
		}

		_, err := mustBinder(t, format, []string{"x"}).Bind(value.Tuple{arg}, nil)

		var be *Error
		require.ErrorAs(t, err, &be, "depth %d", d)
		assert.Len(t, be.Path, d)
		assert.Equal(t, d, strings.Count(be.Message, ", item "), be.Message)
		assert.True(t, strings.HasSuffix(be.Message, "must be 2-item sequence, not 1"), be.Message)
	}
}
