package value

import (
	"errors"
	"fmt"
)

// ErrNoBuffer is returned by values that cannot export a buffer of the requested kind.
var ErrNoBuffer = errors.New("value does not support the buffer protocol")

// BufferExporter is implemented by bytes-like values.
type BufferExporter interface {
	Value
	// GetBuffer exports a view of the value's memory. The caller must
	// call Release on the returned buffer exactly once.
	GetBuffer(writable bool) (*Buffer, error)
	// HasReleaseHook reports whether the exporter tracks outstanding views,
	// which disqualifies it from borrowed read-only conversions.
	HasReleaseHook() bool
}

// Buffer is an exported view of a bytes-like value.
type Buffer struct {
	Data       []byte
	ReadOnly   bool
	Contiguous bool

	owner   Value
	release func()
}

// NewBuffer creates a buffer view owned by owner. release may be nil.
func NewBuffer(owner Value, data []byte, readOnly, contiguous bool, release func()) *Buffer {
	return &Buffer{
		Data:       data,
		ReadOnly:   readOnly,
		Contiguous: contiguous,
		owner:      owner,
		release:    release,
	}
}

// Owner returns the value the buffer was exported from.
func (b *Buffer) Owner() Value { return b.owner }

// Len returns the number of bytes in the view.
func (b *Buffer) Len() int { return len(b.Data) }

// Release returns the view to its exporter.
func (b *Buffer) Release() {
	if b.release != nil {
		b.release()
	}
}

// Bytes is an immutable byte string.
type Bytes []byte

func (Bytes) TypeName() string { return "bytes" }
func (Bytes) IsByteString() {}
func (Bytes) HasReleaseHook() bool { return false }
func (b Bytes) Len() int { return len(b) }
func (b Bytes) Truth() bool { return len(b) > 0 }

func (b Bytes) Item(i int) (Value, error) {
	if i < 0 || i >= len(b) {
		return nil, fmt.Errorf("index %d out of range", i)
	}

	return Int(b[i]), nil
}

func (b Bytes) GetBuffer(writable bool) (*Buffer, error) {
	if writable {
		return nil, ErrNoBuffer
	}

	return NewBuffer(b, b, true, true, nil), nil
}

// ByteArray is a mutable byte sequence. Unlike Bytes it is not a byte string,
// so it may be destructured into tuple parameters.
type ByteArray struct {
	data    []byte
	exports int
}

// NewByteArray copies data into a new ByteArray.
func NewByteArray(data []byte) *ByteArray {
	return &ByteArray{data: append([]byte(nil), data...)}
}

func (*ByteArray) TypeName() string { return "bytearray" }
func (*ByteArray) HasReleaseHook() bool { return true }
func (b *ByteArray) Len() int { return len(b.data) }
func (b *ByteArray) Truth() bool { return len(b.data) > 0 }

// Data returns the underlying bytes.
func (b *ByteArray) Data() []byte { return b.data }

// Exports returns the number of buffer views currently outstanding.
func (b *ByteArray) Exports() int { return b.exports }

func (b *ByteArray) Item(i int) (Value, error) {
	if i < 0 || i >= len(b.data) {
		return nil, fmt.Errorf("bytearray index %d out of range", i)
	}

	return Int(b.data[i]), nil
}

func (b *ByteArray) GetBuffer(bool) (*Buffer, error) {
	b.exports++

	return NewBuffer(b, b.data, false, true, func() { b.exports-- }), nil
}

// View is a memory view that may be non-contiguous (strided).
type View struct {
	data       []byte
	contiguous bool
	readOnly   bool
	exports    int
	releases   int
}

// NewView creates a View over data.
func NewView(data []byte, contiguous, readOnly bool) *View {
	return &View{data: data, contiguous: contiguous, readOnly: readOnly}
}

func (*View) TypeName() string { return "memoryview" }
func (*View) HasReleaseHook() bool { return false }
func (v *View) Len() int { return len(v.data) }
func (v *View) Truth() bool { return len(v.data) > 0 }

// Exports returns the number of buffer views currently outstanding.
func (v *View) Exports() int { return v.exports }

// Releases returns how many exported views were released.
func (v *View) Releases() int { return v.releases }

func (v *View) Item(i int) (Value, error) {
	if i < 0 || i >= len(v.data) {
		return nil, fmt.Errorf("memoryview index %d out of range", i)
	}

	return Int(v.data[i]), nil
}

func (v *View) GetBuffer(writable bool) (*Buffer, error) {
	if writable && v.readOnly {
		return nil, ErrNoBuffer
	}

	v.exports++

	return NewBuffer(v, v.data, v.readOnly, v.contiguous, func() {
		v.exports--
		v.releases++
	}), nil
}
