package common

// Plural returns the "s" suffix for counts other than one.
func Plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}

// CallName renders a function name for diagnostics: "name()" when known,
// otherwise fallback.
func CallName(name, fallback string) string {
	if name == "" {
		return fallback
	}

	return name + "()"
}
