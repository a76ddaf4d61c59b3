package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkip(t *testing.T) {
	tests := []struct {
		body string
		next int
	}{
		{"O", 1},
		{"O!", 2},
		{"O&x", 2},
		{"s#", 2},
		{"s*", 2},
		{"u*", 1}, // '*' only follows s, z, y and w
		{"y*", 2},
		{"es#", 3},
		{"et", 2},
		{"(OO)i", 4},
		{"((Oi)(s#O))", 11},
		{"()", 2},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			next, err := Skip(tt.body, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestSkip_Malformed(t *testing.T) {
	for _, body := range []string{"", "(O", ")", "q", "e", "eq", "((O)"} {
		t.Run(body, func(t *testing.T) {
			next, err := Skip(body, 0)
			require.Error(t, err)
			assert.Equal(t, 0, next)
		})
	}
}

// Parsing must consume exactly the span the skip pass consumes.
func TestScannerAndSkipAgree(t *testing.T) {
	bodies := []string{
		"O", "O!", "O&", "b", "B", "h", "H", "i", "I", "l", "k", "L", "K", "n",
		"f", "d", "D", "c", "C", "p", "S", "Y", "U",
		"s", "s#", "s*", "z", "z#", "z*", "y", "y#", "y*", "u", "u#", "Z", "Z#", "w*",
		"es", "et", "es#", "et#",
		"(O)", "(Oi)", "((OO)s#)", "(()O)", "(y*(es(O&)))",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			skipped, err := Skip(body+"O", 0)
			require.NoError(t, err)

			sc := &scanner{body: body + "O"}
			_, parsed, err := sc.item("x", 0)
			require.NoError(t, err)

			assert.Equal(t, skipped, parsed)
			assert.Equal(t, len(body), parsed)
		})
	}
}
