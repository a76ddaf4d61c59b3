// Package value models the dynamically typed values a caller hands to the
// binder: None, numbers, strings, byte strings, buffers, sequences, opaque
// objects and the insertion-ordered Dict used for keyword arguments.
//
// Capabilities are expressed as small optional interfaces (Sequence,
// BufferExporter, ByteString, Truther) so callers can plug in their own
// value types.
package value
