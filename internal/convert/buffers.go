package convert

import (
	"bytes"

	"argbind/internal/ledger"
	"argbind/value"
)

func bufferCodes() Registry {
	return Registry{
		"y":  nulFreeBytes,
		"y#": borrowedBytes,
		"s*": buffer(true, false),
		"z*": buffer(true, true),
		"y*": buffer(false, false),
		"w*": writableBuffer,
	}
}

// releaseBuffer is the ledger release for buffer views.
func releaseBuffer(handle any) {
	handle.(*value.Buffer).Release()
}

// acquire exports a contiguous view of v. On failure it returns the expected
// category for the error message.
func acquire(v value.Value, writable bool) (*value.Buffer, string) {
	exp, ok := v.(value.BufferExporter)
	if !ok {
		return nil, "bytes-like object"
	}

	buf, err := exp.GetBuffer(writable)
	if err != nil {
		return nil, "bytes-like object"
	}

	if !buf.Contiguous {
		buf.Release()
		return nil, "contiguous buffer"
	}

	return buf, ""
}

// readOnlyBytes borrows the bytes of an exporter that does not track views.
// The view is released before returning.
func readOnlyBytes(v value.Value) ([]byte, string) {
	exp, ok := v.(value.BufferExporter)
	if !ok || exp.HasReleaseHook() {
		return nil, "read-only bytes-like object"
	}

	buf, msg := acquire(v, false)
	if msg != "" {
		return nil, msg
	}

	defer buf.Release()

	return buf.Data, ""
}

func borrowedBytes(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	data, msg := readOnlyBytes(v)
	if msg != "" {
		return nil, Mismatch(msg, v)
	}

	return data, nil
}

func nulFreeBytes(v value.Value, _ *Hook, _ *ledger.Ledger) (any, error) {
	data, msg := readOnlyBytes(v)
	if msg != "" {
		return nil, Mismatch(msg, v)
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return nil, Mismatch("bytes without null bytes", v)
	}

	return data, nil
}

// buffer acquires a read view that stays alive until the ledger releases it.
// With allowText a str is viewed through its UTF-8 bytes.
func buffer(allowText, orNone bool) ItemFunc {
	return func(v value.Value, _ *Hook, l *ledger.Ledger) (any, error) {
		if orNone && (v == nil || value.IsNone(v)) {
			return nil, nil
		}

		if s, ok := v.(value.Str); ok && allowText {
			buf := value.NewBuffer(s, []byte(s), true, true, nil)
			l.Add(buf, releaseBuffer)

			return buf, nil
		}

		buf, msg := acquire(v, false)
		if msg != "" {
			return nil, Mismatch(msg, v)
		}

		l.Add(buf, releaseBuffer)

		return buf, nil
	}
}

func writableBuffer(v value.Value, _ *Hook, l *ledger.Ledger) (any, error) {
	buf, msg := acquire(v, true)
	if msg != "" {
		return nil, Mismatch("read-write bytes-like object", v)
	}

	if buf.ReadOnly {
		buf.Release()
		return nil, Mismatch("read-write bytes-like object", v)
	}

	l.Add(buf, releaseBuffer)

	return buf, nil
}
