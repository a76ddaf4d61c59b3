package spec

const (
	msgUnmatchedLeft  = "unmatched left paren in format string"
	msgUnmatchedRight = "unmatched right paren in format string"
	msgBadFormatChar  = "impossible<bad format char>"
)

// skipItem advances over exactly one item of body starting at pos without
// interpreting it. It returns the position just past the item, or a
// non-empty message when the item is malformed.
func skipItem(body string, pos int) (int, string) {
	if pos >= len(body) {
		return pos, msgBadFormatChar
	}

	c := body[pos]
	pos++

	switch c {
	case 'b', 'B', 'h', 'H', 'i', 'I', 'l', 'k', 'L', 'K', 'n',
		'f', 'd', 'D', 'c', 'C', 'p', 'S', 'Y', 'U':
		return pos, ""

	case 'e':
		if !at(body, pos, 's') && !at(body, pos, 't') {
			return pos, msgBadFormatChar
		}

		pos++
		if at(body, pos, '#') {
			pos++
		}

		return pos, ""

	case 's', 'z', 'y', 'u', 'Z', 'w':
		switch {
		case at(body, pos, '#'):
			pos++
		case at(body, pos, '*') && (c == 's' || c == 'z' || c == 'y' || c == 'w'):
			pos++
		}

		return pos, ""

	case 'O':
		if at(body, pos, '!') || at(body, pos, '&') {
			pos++
		}

		return pos, ""

	case '(':
		for !at(body, pos, ')') {
			if pos >= len(body) {
				return pos, msgUnmatchedLeft
			}

			next, msg := skipItem(body, pos)
			if msg != "" {
				return next, msg
			}

			pos = next
		}

		return pos + 1, ""

	case ')':
		return pos, msgUnmatchedRight

	default:
		return pos, msgBadFormatChar
	}
}

// Skip advances over one item of a format body and reports the position
// after it. It accepts exactly the grammar Compile accepts.
func Skip(body string, pos int) (int, error) {
	next, msg := skipItem(body, pos)
	if msg != "" {
		return pos, itemError(msg, body, pos)
	}

	return next, nil
}

func at(body string, pos int, c byte) bool {
	return pos < len(body) && body[pos] == c
}
