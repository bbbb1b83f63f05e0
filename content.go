package zpad

import (
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

// DefaultPageLines is the page size used by page movements when an action does not set one.
const DefaultPageLines = 10

// Content is the text buffer of the editor: its lines, the caret and the selection.
// All changes go through Perform. Lines are never modified in place, edits replace
// them, so a Snapshot may be read on another goroutine while the buffer keeps changing.
type Content struct {
	rows      [][]rune
	caret     CharPos
	anchor    *CharPos // selection anchor, nil if nothing is selected
	preferred int      // column kept by vertical movements
}

// NewContent returns an empty buffer, which consists of a single empty line.
func NewContent() *Content {
	return NewContentWithText("")
}

// NewContentWithText returns a buffer holding s with the caret at the start.
func NewContentWithText(s string) *Content {
	lines := strings.Split(s, "\n")
	c := &Content{rows: make([][]rune, len(lines))}
	for i, line := range lines {
		c.rows[i] = []rune(line)
	}
	return c
}

// Snapshot returns a copy of the buffer that is not affected by later edits of c.
func (c *Content) Snapshot() *Content {
	s := &Content{rows: slices.Clone(c.rows), caret: c.caret, preferred: c.preferred}
	if c.anchor != nil {
		a := *c.anchor
		s.anchor = &a
	}
	return s
}

// Text returns the whole text with lines joined by '\n'.
func (c *Content) Text() string {
	var sb strings.Builder
	for i, row := range c.rows {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// LineCount returns the number of lines, which is at least 1.
func (c *Content) LineCount() int {
	return len(c.rows)
}

// LastLine returns the index of the last line.
func (c *Content) LastLine() int {
	return len(c.rows) - 1
}

// Line returns the text of line n, the empty string if n is out of bounds.
func (c *Content) Line(n int) string {
	if n < 0 || n > c.LastLine() {
		return ""
	}
	return string(c.rows[n])
}

// LineLen returns the number of runes in line n, 0 if n is out of bounds.
func (c *Content) LineLen(n int) int {
	if n < 0 || n > c.LastLine() {
		return 0
	}
	return len(c.rows[n])
}

// row returns the runes of line n without copying. Callers must not modify them.
func (c *Content) row(n int) []rune {
	if n < 0 || n > c.LastLine() {
		return nil
	}
	return c.rows[n]
}

// LastPos returns the position after the last character.
func (c *Content) LastPos() CharPos {
	return CharPos{Line: c.LastLine(), Column: c.LineLen(c.LastLine())}
}

// Caret returns the caret position.
func (c *Content) Caret() CharPos {
	return c.caret
}

// CursorPosition returns the 0-based line and column of the caret.
func (c *Content) CursorPosition() (int, int) {
	return c.caret.Line, c.caret.Column
}

// Selection returns the selected interval and true, or false if nothing is selected.
func (c *Content) Selection() (CharInterval, bool) {
	if c.anchor == nil || *c.anchor == c.caret {
		return CharInterval{}, false
	}
	return CharInterval{Start: *c.anchor, End: c.caret}.MaybeSwap(), true
}

// SelectedText returns the text of the selection, the empty string if there is none.
func (c *Content) SelectedText() string {
	sel, ok := c.Selection()
	if !ok {
		return ""
	}
	return c.TextRange(sel)
}

// TextRange returns the text in the given interval. Line breaks are returned as '\n'.
func (c *Content) TextRange(iv CharInterval) string {
	iv = CharInterval{Start: c.Clamp(iv.Start), End: c.Clamp(iv.End)}.MaybeSwap()
	if iv.Start.Line == iv.End.Line {
		return string(c.rows[iv.Start.Line][iv.Start.Column:iv.End.Column])
	}
	var sb strings.Builder
	sb.WriteString(string(c.rows[iv.Start.Line][iv.Start.Column:]))
	for i := iv.Start.Line + 1; i < iv.End.Line; i++ {
		sb.WriteRune('\n')
		sb.WriteString(string(c.rows[i]))
	}
	sb.WriteRune('\n')
	sb.WriteString(string(c.rows[iv.End.Line][:iv.End.Column]))
	return sb.String()
}

// Clamp returns the position closest to pos that lies within the text.
func (c *Content) Clamp(pos CharPos) CharPos {
	line := min(max(pos.Line, 0), c.LastLine())
	return CharPos{Line: line, Column: min(max(pos.Column, 0), len(c.rows[line]))}
}

// CharAt returns the rune at pos and true, or false if there is no character at pos.
// The end of a line holds no character.
func (c *Content) CharAt(pos CharPos) (rune, bool) {
	if pos.Line < 0 || pos.Line > c.LastLine() {
		return 0, false
	}
	if pos.Column < 0 || pos.Column >= len(c.rows[pos.Line]) {
		return 0, false
	}
	return c.rows[pos.Line][pos.Column], true
}

// PrevPos returns the position one step before pos. Stepping back from the start of a line
// reaches the end of the previous line. False is returned at the start of the text.
func (c *Content) PrevPos(pos CharPos) (CharPos, bool) {
	if pos.Column > 0 {
		return CharPos{Line: pos.Line, Column: pos.Column - 1}, true
	}
	if pos.Line <= 0 {
		return pos, false
	}
	return CharPos{Line: pos.Line - 1, Column: c.LineLen(pos.Line - 1)}, true
}

// NextPos returns the position one step after pos, or false at the end of the text.
func (c *Content) NextPos(pos CharPos) (CharPos, bool) {
	if pos.Column < c.LineLen(pos.Line) {
		return CharPos{Line: pos.Line, Column: pos.Column + 1}, true
	}
	if pos.Line >= c.LastLine() {
		return pos, false
	}
	return CharPos{Line: pos.Line + 1, Column: 0}, true
}

// FindRune searches forward or backward from pos, which is included, for a rune matching
// searchFunc and returns its position and true, or (0,0) and false.
func (c *Content) FindRune(pos CharPos, backward bool, searchFunc func(r rune) bool) (CharPos, bool) {
	for {
		if r, ok := c.CharAt(pos); ok && searchFunc(r) {
			return pos, true
		}
		var ok bool
		if backward {
			pos, ok = c.PrevPos(pos)
		} else {
			pos, ok = c.NextPos(pos)
		}
		if !ok {
			return CharPos{}, false
		}
	}
}

// Perform applies the action to the buffer.
func (c *Content) Perform(a Action) {
	switch a.Kind {
	case ActionMove:
		c.move(a.Movement, a.Lines)
	case ActionSelect:
		c.extend(a.Movement, a.Lines)
	case ActionSelectWord:
		c.selectWord()
	case ActionSelectLine:
		c.selectLine()
	case ActionSelectAll:
		c.setSelection(CharPos{}, c.LastPos())
	case ActionClick:
		c.anchor = nil
		c.setCaret(c.Clamp(a.Pos))
	case ActionDrag:
		anchor := c.caret
		if c.anchor != nil {
			anchor = *c.anchor
		}
		c.setSelection(anchor, c.Clamp(a.Pos))
	case ActionInsert:
		c.insert(string(a.Rune))
	case ActionPaste:
		c.insert(strings.ReplaceAll(a.Text, "\r\n", "\n"))
	case ActionEnter:
		c.insert("\n")
	case ActionBackspace:
		if c.deleteSelection() {
			return
		}
		if prev, ok := c.PrevPos(c.caret); ok {
			c.deleteRange(CharInterval{Start: prev, End: c.caret})
		}
	case ActionDelete:
		if c.deleteSelection() {
			return
		}
		if next, ok := c.NextPos(c.caret); ok {
			c.deleteRange(CharInterval{Start: c.caret, End: next})
		}
	}
}

func (c *Content) setCaret(pos CharPos) {
	c.caret = pos
	c.preferred = pos.Column
}

// setSelection selects from anchor to caret, dropping the selection if both are equal.
func (c *Content) setSelection(anchor, caret CharPos) {
	c.setCaret(caret)
	if anchor == caret {
		c.anchor = nil
		return
	}
	c.anchor = &anchor
}

func (c *Content) move(m CaretMovement, lines int) {
	if sel, ok := c.Selection(); ok && (m == CaretLeft || m == CaretRight) {
		c.anchor = nil
		if m == CaretLeft {
			c.setCaret(sel.Start)
		} else {
			c.setCaret(sel.End)
		}
		return
	}
	c.anchor = nil
	c.moveCaret(m, lines)
}

func (c *Content) extend(m CaretMovement, lines int) {
	anchor := c.caret
	if c.anchor != nil {
		anchor = *c.anchor
	}
	c.moveCaret(m, lines)
	if anchor == c.caret {
		c.anchor = nil
		return
	}
	c.anchor = &anchor
}

// moveCaret moves only the caret. Vertical movements keep the preferred column.
func (c *Content) moveCaret(m CaretMovement, lines int) {
	if lines <= 0 {
		lines = DefaultPageLines
	}
	pos := c.caret
	switch m {
	case CaretLeft:
		pos, _ = c.PrevPos(pos)
	case CaretRight:
		pos, _ = c.NextPos(pos)
	case CaretUp:
		if pos.Line > 0 {
			pos = c.vertical(pos.Line - 1)
		}
	case CaretDown:
		if pos.Line < c.LastLine() {
			pos = c.vertical(pos.Line + 1)
		}
	case CaretPageUp:
		pos = c.vertical(max(0, pos.Line-lines))
	case CaretPageDown:
		pos = c.vertical(min(c.LastLine(), pos.Line+lines))
	case CaretWordLeft:
		pos = c.wordLeft(pos)
	case CaretWordRight:
		pos = c.wordRight(pos)
	case CaretLineStart:
		pos = CharPos{Line: pos.Line}
	case CaretLineEnd:
		pos = CharPos{Line: pos.Line, Column: c.LineLen(pos.Line)}
	case CaretHome:
		pos = CharPos{}
	case CaretEnd:
		pos = c.LastPos()
	}
	if m.vertical() {
		c.caret = pos
		return
	}
	c.setCaret(pos)
}

func (c *Content) vertical(line int) CharPos {
	return CharPos{Line: line, Column: min(c.preferred, c.LineLen(line))}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// wordLeft skips non-word runes and then the word before pos. At the start of a line
// it steps to the end of the previous line.
func (c *Content) wordLeft(pos CharPos) CharPos {
	if pos.Column == 0 {
		pos, _ = c.PrevPos(pos)
		return pos
	}
	row := c.rows[pos.Line]
	col := pos.Column
	for col > 0 && !isWordRune(row[col-1]) {
		col--
	}
	for col > 0 && isWordRune(row[col-1]) {
		col--
	}
	return CharPos{Line: pos.Line, Column: col}
}

// wordRight skips non-word runes and then the word after pos.
func (c *Content) wordRight(pos CharPos) CharPos {
	row := c.rows[pos.Line]
	if pos.Column >= len(row) {
		pos, _ = c.NextPos(pos)
		return pos
	}
	col := pos.Column
	for col < len(row) && !isWordRune(row[col]) {
		col++
	}
	for col < len(row) && isWordRune(row[col]) {
		col++
	}
	return CharPos{Line: pos.Line, Column: col}
}

// selectWord selects the word around the caret. Nothing is selected if the caret
// is not next to a word.
func (c *Content) selectWord() {
	row := c.rows[c.caret.Line]
	start, end := c.caret.Column, c.caret.Column
	for start > 0 && isWordRune(row[start-1]) {
		start--
	}
	for end < len(row) && isWordRune(row[end]) {
		end++
	}
	c.setSelection(CharPos{Line: c.caret.Line, Column: start}, CharPos{Line: c.caret.Line, Column: end})
}

// selectLine selects the caret's line including its line break.
func (c *Content) selectLine() {
	line := c.caret.Line
	end := CharPos{Line: line, Column: c.LineLen(line)}
	if line < c.LastLine() {
		end = CharPos{Line: line + 1}
	}
	c.setSelection(CharPos{Line: line}, end)
}

// deleteSelection removes the selected text and returns true if there was a selection.
func (c *Content) deleteSelection() bool {
	sel, ok := c.Selection()
	if !ok {
		c.anchor = nil
		return false
	}
	c.deleteRange(sel)
	return true
}

// deleteRange removes the characters in fromTo and puts the caret at its start.
// Whatever follows the range on the end line is joined to the start line.
func (c *Content) deleteRange(fromTo CharInterval) {
	fromTo = CharInterval{Start: c.Clamp(fromTo.Start), End: c.Clamp(fromTo.End)}.MaybeSwap()
	c.anchor = nil
	start, end := fromTo.Start, fromTo.End
	head := c.rows[start.Line][:start.Column]
	tail := c.rows[end.Line][end.Column:]
	joined := make([]rune, 0, len(head)+len(tail))
	joined = append(joined, head...)
	joined = append(joined, tail...)
	c.rows = slices.Delete(c.rows, start.Line+1, end.Line+1)
	c.rows[start.Line] = joined
	c.setCaret(start)
}

// insert replaces the selection, if any, with s and puts the caret after the inserted text.
func (c *Content) insert(s string) {
	c.deleteSelection()
	pos := c.Clamp(c.caret)
	line := c.rows[pos.Line]
	head := slices.Clone(line[:pos.Column])
	tail := line[pos.Column:]
	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		ins := []rune(s)
		newLine := make([]rune, 0, len(line)+len(ins))
		newLine = append(newLine, head...)
		newLine = append(newLine, ins...)
		newLine = append(newLine, tail...)
		c.rows[pos.Line] = newLine
		c.setCaret(CharPos{Line: pos.Line, Column: pos.Column + len(ins)})
		return
	}
	newRows := make([][]rune, len(parts))
	newRows[0] = append(head, []rune(parts[0])...)
	for i := 1; i < len(parts)-1; i++ {
		newRows[i] = []rune(parts[i])
	}
	last := []rune(parts[len(parts)-1])
	column := len(last)
	newRows[len(parts)-1] = append(last, tail...)
	c.rows = slices.Replace(c.rows, pos.Line, pos.Line+1, newRows...)
	c.setCaret(CharPos{Line: pos.Line + len(parts) - 1, Column: column})
}
