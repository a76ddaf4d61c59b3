package spec

// Code is a conversion selector taken verbatim from the format string,
// e.g. "O", "O!", "y*", "es#". Tuple parameters use CodeTuple.
type Code string

// CodeTuple marks a parameter destructured through a nested Specification.
const CodeTuple Code = "()"

// IsTuple reports whether the code denotes a nested tuple.
func (c Code) IsTuple() bool {
	return c == CodeTuple
}

// UsesHook reports whether the code consumes a hook slot: a type for "O!",
// a converter for "O&", an encoding for "es"/"et".
func (c Code) UsesHook() bool {
	switch c {
	case "O!", "O&", "es", "et", "es#", "et#":
		return true
	default:
		return false
	}
}

// AcquiresResource reports whether a successful conversion registers a
// release with the ledger.
func (c Code) AcquiresResource() bool {
	switch c {
	case "s*", "z*", "y*", "w*", "es", "et", "es#", "et#":
		return true
	default:
		return false
	}
}
