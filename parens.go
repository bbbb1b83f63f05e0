package zpad

// ParenMatch is the result of looking for the partner of the paren before the caret.
type ParenMatch int

const (
	ParenNone      ParenMatch = iota // no closing paren or quotation mark before the caret
	ParenMatched                     // the partner was found
	ParenUnmatched                   // closing paren without partner
)

// MatchingParen looks at the rune before the caret. If it is a right paren or a
// quotation mark, the position of its left partner is searched backward. It returns the
// partner's position, the position of the rune before the caret, and the match result.
func (c *Content) MatchingParen() (CharPos, CharPos, ParenMatch) {
	pos, ok := c.PrevPos(c.caret)
	if !ok {
		return CharPos{}, CharPos{}, ParenNone
	}
	r, ok := c.CharAt(pos)
	if !ok || !(IsRightParen(r) || IsQuotationMark(r)) {
		return CharPos{}, CharPos{}, ParenNone
	}
	start, ok := c.PrevPos(pos)
	if !ok {
		return CharPos{}, pos, ParenUnmatched
	}
	var lpos CharPos
	if IsQuotationMark(r) {
		lpos, ok = c.FindRune(start, true, func(q rune) bool { return q == r })
	} else {
		match := leftParen(r)
		depth := 1
		lpos, ok = c.FindRune(start, true, func(q rune) bool {
			switch {
			case q == r:
				depth++
			case q == match:
				depth--
			}
			return depth == 0
		})
	}
	if !ok {
		return CharPos{}, pos, ParenUnmatched
	}
	return lpos, pos, ParenMatched
}

func leftParen(r rune) rune {
	switch r {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return r
}

// IsLeftParen returns true if the rune is an opening paren, bracket or brace.
func IsLeftParen(c rune) bool {
	return c == '(' || c == '[' || c == '{'
}

// IsRightParen returns true if the rune is a closing paren, bracket or brace.
func IsRightParen(c rune) bool {
	return c == ')' || c == ']' || c == '}'
}

// IsQuotationMark returns true if the rune is a quotation mark that is matched like a paren.
func IsQuotationMark(c rune) bool {
	switch c {
	case '"', '\'', '`':
		return true
	}
	return false
}
