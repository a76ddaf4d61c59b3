package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
functions:
  - name: open
    format: "s|si$p@O&"
    params: [path, mode, buffering, closefd, opener]
    hooks:
      - converter: opener
    description: Opens a file.
  - name: copy
    format: "y#y#|n;copy() needs a source and a target"
    params: ", , count"
  - name: log
    format: "%s"
    params: [msg]
    collect: keyword
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Functions, 3)

	open := f.Functions[0]
	assert.Equal(t, "s|si$p@O&:open", open.Format)
	assert.Equal(t, NameList{"path", "mode", "buffering", "closefd", "opener"}, open.Params)
	require.Len(t, open.Hooks, 1)
	assert.Equal(t, "opener", open.Hooks[0].Converter)
	assert.Equal(t, "Opens a file.", open.Description)

	// an existing suffix is kept as is
	cp := f.Functions[1]
	assert.Equal(t, "y#y#|n;copy() needs a source and a target", cp.Format)
	assert.Equal(t, NameList{"", "", "count"}, cp.Params)

	log := f.Functions[2]
	assert.Equal(t, NameList{"keyword"}, log.Collect)
	assert.True(t, log.HasPercent())
	assert.Equal(t, []string{"open", "copy", "log"}, f.Names())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("functions: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse contract YAML")

	_, err = Parse([]byte("functions:\n  - name: f\n    params: {a: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")
}

func TestFunction_Collectors(t *testing.T) {
	tests := []struct {
		collect  NameList
		wantMask int
		wantOK   bool
	}{
		{nil, 0, false},
		{NameList{"positional"}, 1, true},
		{NameList{"keyword"}, 2, true},
		{NameList{"positional", "keyword"}, 3, true},
		{NameList{"all"}, 3, true},
		{NameList{"bogus"}, 0, true},
	}

	for _, tt := range tests {
		fn := Function{Collect: tt.collect}
		mask, ok := fn.Collectors()
		assert.Equal(t, tt.wantMask, int(mask), "%v", tt.collect)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.collect)
	}
}

func TestFindFunction(t *testing.T) {
	f := &File{Functions: []Function{{Name: "a"}, {Name: "b"}}}

	fn, ok := f.FindFunction("b")
	require.True(t, ok)
	assert.Equal(t, "b", fn.Name)

	_, ok = f.FindFunction("c")
	assert.False(t, ok)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f := &File{
		Version: "1",
		Functions: []Function{{
			Name:   "encode",
			Format: "es|s:encode",
			Params: NameList{"text", "errors"},
			Hooks:  []HookDef{{Encoding: "latin-1"}},
		}},
	}

	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, WriteFile(f, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "encoding: latin-1")
	assert.NotContains(t, string(data), "collect")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
