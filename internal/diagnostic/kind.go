package diagnostic

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a binding failure.
type Kind int

const (
	_ Kind = iota // zero value is an invalid kind

	// KindSystemError marks a defect in the declared contract itself.
	KindSystemError
	// KindTypeError marks a caller error: arity, keywords or value shape.
	KindTypeError
)
