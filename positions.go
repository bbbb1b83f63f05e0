package zpad

// CharPos is a caret or character position in a Content. Line and Column are
// 0-based; Column counts runes and may equal the line length, which is the
// position after the last character of the line.
type CharPos struct {
	Line   int
	Column int
}

// CmpPos lexicographically compares two char positions and returns -1 if a is
// before b, 0 if they are equal, and 1 if a is after b. It doubles as the
// comparison function of the tag interval tree.
func CmpPos(a, b CharPos) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Column < b.Column:
		return -1
	case a.Column > b.Column:
		return 1
	}
	return 0
}

// MaxPos returns the later of the two positions.
func MaxPos(a, b CharPos) CharPos {
	if CmpPos(a, b) < 0 {
		return b
	}
	return a
}

// MinPos returns the earlier of the two positions.
func MinPos(a, b CharPos) CharPos {
	if CmpPos(a, b) <= 0 {
		return a
	}
	return b
}

// CharInterval is a half-open range of characters: Start is included, End is not.
type CharInterval struct {
	Start CharPos
	End   CharPos
}

// Empty returns true if the interval covers no characters.
func (c CharInterval) Empty() bool {
	return CmpPos(c.Start, c.End) >= 0
}

// Contains returns true if the character at pos lies in the interval.
func (c CharInterval) Contains(pos CharPos) bool {
	return CmpPos(pos, c.Start) >= 0 && CmpPos(pos, c.End) < 0
}

// Lines returns the number of lines this interval touches, including start and end line.
func (c CharInterval) Lines() int {
	return c.End.Line - c.Start.Line + 1
}

// MaybeSwap returns the interval with start and end exchanged if the end is before the start.
func (c CharInterval) MaybeSwap() CharInterval {
	if CmpPos(c.Start, c.End) > 0 {
		return CharInterval{Start: c.End, End: c.Start}
	}
	return c
}

// Sanitize computes a new interval that lies in [(0,0)...lastPos]. It calls MaybeSwap first.
func (c CharInterval) Sanitize(lastPos CharPos) CharInterval {
	r := c.MaybeSwap()
	if r.Start.Line < 0 {
		r.Start = CharPos{}
	}
	r.Start.Column = max(r.Start.Column, 0)
	if CmpPos(r.End, lastPos) > 0 {
		r.End = lastPos
	}
	if CmpPos(r.Start, r.End) > 0 {
		r.Start = r.End
	}
	return r
}
