package zpad

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"
)

// Editor is the text area widget. It displays a Content snapshot and reports every user
// interaction as an Action through OnAction; it never changes the content itself. The
// owner applies the action to its buffer and hands the result back with SetContent.
type Editor struct {
	widget.BaseWidget
	Lines    int           // the number of lines displayed, follows the widget size
	Columns  int           // the number of columns displayed, follows the widget size
	Tags     *TagContainer // display tags such as the selection
	Config   *Config       // editor configuration
	OnAction func(a Action)

	// internal fields
	content        *Content
	grid           *widget.TextGrid
	lineNumberGrid *widget.TextGrid
	scroll         *container.Scroll
	vSpacer        *FixedSpacer
	background     *canvas.Rectangle
	lineOffset     int
	scrollRest     float32 // wheel movement not yet scrolled, in lines
	columnOffset   int
	charSize       fyne.Size
	hasFocus       bool
	shift          bool
	dragging       bool
	stylers        []TagStyler
	handlers       map[string]func(z *Editor)
	keyHandlers    map[fyne.KeyName]func(z *Editor)
	canvas         fyne.Canvas
	// synchronization
	mutex sync.RWMutex
}

// NewEditor returns an editor widget displayed in the given canvas. If config is nil,
// the defaults of NewConfig are used.
func NewEditor(c fyne.Canvas, config *Config) *Editor {
	if config == nil {
		config = NewConfig()
	}
	z := &Editor{Config: config, canvas: c, content: NewContent()}
	z.Tags = NewTagContainer()
	z.handlers = make(map[string]func(z *Editor))
	z.keyHandlers = make(map[fyne.KeyName]func(z *Editor))
	z.charSize = fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{Monospace: true})
	z.Lines = max(1, int(math32.Floor(config.EditorMinHeight/z.charSize.Height)))
	z.Columns = 1
	z.grid = widget.NewTextGrid()
	z.lineNumberGrid = widget.NewTextGrid()
	z.lineNumberGrid.Hidden = !config.ShowLineNumbers
	z.initInternalGrid()

	z.vSpacer = NewFixedSpacer(fyne.Size{Width: 0, Height: z.charSize.Height})
	z.scroll = container.NewVScroll(z.vSpacer)
	z.scroll.OnScrolled = func(pos fyne.Position) {
		line := max(0, int(math32.Round(pos.Y/z.charSize.Height)))
		z.mutex.Lock()
		changed := line != z.lineOffset
		z.lineOffset = line
		z.mutex.Unlock()
		if changed {
			z.Refresh()
		}
	}
	z.background = canvas.NewRectangle(theme.InputBackgroundColor())
	z.background.StrokeColor = theme.BackgroundColor()
	z.background.StrokeWidth = 2

	z.stylers = []TagStyler{
		{TagName: config.SelectionTag.Name(), StyleFunc: config.SelectionStyleFunc},
		{TagName: config.HighlightTag.Name(), StyleFunc: config.HighlightStyleFunc},
		{TagName: config.ErrorTag.Name(), StyleFunc: config.ErrorStyleFunc},
	}
	z.addDefaultShortcuts()
	z.ExtendBaseWidget(z)
	return z
}

// initInternalGrid sets the display grid to Lines x Columns spaces. The grid only ever holds
// the visible part of the text.
func (z *Editor) initInternalGrid() {
	z.grid.Rows = make([]widget.TextGridRow, z.Lines)
	for i := range z.grid.Rows {
		z.grid.Rows[i].Cells = make([]widget.TextGridCell, z.Columns)
		for j := range z.grid.Rows[i].Cells {
			z.grid.Rows[i].Cells[j].Rune = ' '
		}
	}
	z.lineNumberGrid.Rows = make([]widget.TextGridRow, z.Lines)
}

// SetContent replaces the displayed content and scrolls the caret into view.
func (z *Editor) SetContent(c *Content) {
	z.mutex.Lock()
	z.content = c
	z.keepCaretVisible()
	z.mutex.Unlock()
	z.Refresh()
}

// Content returns the displayed content. It must not be modified.
func (z *Editor) Content() *Content {
	z.mutex.RLock()
	defer z.mutex.RUnlock()
	return z.content
}

// TopLine returns the first displayed line.
func (z *Editor) TopLine() int {
	z.mutex.RLock()
	defer z.mutex.RUnlock()
	return z.lineOffset
}

// SetTopLine sets the first displayed line.
func (z *Editor) SetTopLine(x int) {
	z.mutex.Lock()
	z.setTopLine(x)
	z.mutex.Unlock()
	z.Refresh()
}

func (z *Editor) setTopLine(x int) {
	z.lineOffset = min(max(0, x), max(0, z.content.LineCount()-z.Lines))
	z.scroll.Offset = fyne.Position{X: z.scroll.Offset.X, Y: float32(z.lineOffset) * z.charSize.Height}
}

// keepCaretVisible adjusts line and column offsets so that the caret is displayed.
func (z *Editor) keepCaretVisible() {
	caret := z.content.Caret()
	switch {
	case caret.Line < z.lineOffset:
		z.setTopLine(caret.Line)
	case caret.Line >= z.lineOffset+z.Lines:
		z.setTopLine(caret.Line - z.Lines + 1)
	}
	switch {
	case caret.Column < z.columnOffset:
		z.columnOffset = max(0, caret.Column-z.Columns/2)
	case caret.Column >= z.columnOffset+z.Columns:
		z.columnOffset = caret.Column - z.Columns/2
	}
}

// ScrollDown scrolls the display down by one line.
func (z *Editor) ScrollDown() {
	z.SetTopLine(z.TopLine() + 1)
}

// ScrollUp scrolls the display up by one line.
func (z *Editor) ScrollUp() {
	z.SetTopLine(z.TopLine() - 1)
}

// FocusGained implements fyne.Focusable.
func (z *Editor) FocusGained() {
	z.mutex.Lock()
	z.hasFocus = true
	z.mutex.Unlock()
	z.background.StrokeColor = theme.FocusColor()
	z.background.Refresh()
	z.Refresh()
}

// FocusLost implements fyne.Focusable.
func (z *Editor) FocusLost() {
	z.mutex.Lock()
	z.hasFocus = false
	z.shift = false
	z.mutex.Unlock()
	z.background.StrokeColor = theme.BackgroundColor()
	z.background.Refresh()
	z.Refresh()
}

// Focus sets focus to the editor.
func (z *Editor) Focus() {
	if z.canvas != nil {
		z.canvas.Focus(z)
	}
}

// AcceptsTab keeps the tab key in the editor, where it inserts a tab.
func (z *Editor) AcceptsTab() bool {
	return true
}

// Scrolled scrolls by whole lines. Fractions of a line are kept for the next event.
func (z *Editor) Scrolled(evt *fyne.ScrollEvent) {
	z.mutex.Lock()
	z.scrollRest += z.Config.ScrollFactor * evt.Scrolled.DY / z.charSize.Height
	step := int(z.scrollRest)
	z.scrollRest -= float32(step)
	top := z.lineOffset
	z.mutex.Unlock()
	if step != 0 {
		z.SetTopLine(top - step)
	}
}

func (z *Editor) Cursor() desktop.Cursor {
	return desktop.TextCursor
}

func (z *Editor) Tapped(evt *fyne.PointEvent) {
	z.Focus()
	pos := z.PosToCharPos(evt.Position)
	z.mutex.RLock()
	shift := z.shift
	z.mutex.RUnlock()
	if shift {
		z.emit(Drag(pos))
		return
	}
	z.emit(Click(pos))
}

func (z *Editor) DoubleTapped(evt *fyne.PointEvent) {
	z.Focus()
	z.emit(Click(z.PosToCharPos(evt.Position)))
	z.emit(Action{Kind: ActionSelectWord})
}

func (z *Editor) Dragged(evt *fyne.DragEvent) {
	pos := z.PosToCharPos(evt.Position)
	z.mutex.Lock()
	first := !z.dragging
	z.dragging = true
	top, lines := z.lineOffset, z.Lines
	z.mutex.Unlock()
	if first {
		z.Focus()
		start := evt.Position.Subtract(evt.Dragged)
		z.emit(Click(z.PosToCharPos(start)))
	}
	z.emit(Drag(pos))
	if pos.Line < top {
		z.ScrollUp()
	} else if pos.Line >= top+lines {
		z.ScrollDown()
	}
}

func (z *Editor) DragEnd() {
	z.mutex.Lock()
	z.dragging = false
	z.mutex.Unlock()
}

// PosToCharPos converts a position in the widget to the closest line and column of the text.
// The result may lie outside the text and is clamped when the action is performed.
func (z *Editor) PosToCharPos(pos fyne.Position) CharPos {
	z.mutex.RLock()
	defer z.mutex.RUnlock()
	x := pos.X
	if z.Config.ShowLineNumbers {
		x -= float32(z.lineNumberLen()+1) * z.charSize.Width
	}
	line := z.lineOffset + int(math32.Floor(pos.Y/z.charSize.Height))
	column := z.columnOffset + int(math32.Round(x/z.charSize.Width))
	return CharPos{Line: max(line, 0), Column: max(column, 0)}
}

func (z *Editor) MinSize() fyne.Size {
	z.mutex.RLock()
	defer z.mutex.RUnlock()
	width := 8 * z.charSize.Width
	if z.Config.ShowLineNumbers {
		width += float32(z.lineNumberLen()+1) * z.charSize.Width
	}
	return fyne.Size{Width: width, Height: max(z.Config.EditorMinHeight, z.charSize.Height)}
}

// layout places line numbers, text grid and scrollbar and recomputes the grid dimensions
// for the given widget size. The grids are only resized and refreshed with the lock held,
// their renderers read the rows written by refreshProc. The scroll container is handled
// after unlocking because its OnScrolled handler takes the lock.
func (z *Editor) layout(size fyne.Size) {
	z.mutex.Lock()
	var numbers float32
	if z.Config.ShowLineNumbers {
		numbers = float32(z.lineNumberLen()+1) * z.charSize.Width
	}
	bar := theme.ScrollBarSize()
	width := max(0, size.Width-bar-numbers)
	lines := max(1, int(math32.Floor(size.Height/z.charSize.Height)))
	columns := max(1, int(math32.Floor(width/z.charSize.Width)))
	changed := lines != z.Lines || columns != z.Columns
	if changed {
		z.Lines, z.Columns = lines, columns
		z.initInternalGrid()
		z.keepCaretVisible()
		z.refreshProc()
	}
	z.background.Resize(size)
	z.lineNumberGrid.Move(fyne.NewPos(0, 0))
	z.lineNumberGrid.Resize(fyne.NewSize(numbers, size.Height))
	z.grid.Move(fyne.NewPos(numbers, 0))
	z.grid.Resize(fyne.NewSize(width, size.Height))
	if changed {
		z.lineNumberGrid.Refresh()
		z.grid.Refresh()
	}
	z.mutex.Unlock()
	z.scroll.Move(fyne.NewPos(size.Width-bar, 0))
	z.scroll.Resize(fyne.NewSize(bar, size.Height))
	if changed {
		z.scroll.Refresh()
	}
}

// KEY HANDLING

func (z *Editor) emit(a Action) {
	if z.OnAction != nil {
		z.OnAction(a)
	}
}

// emitMove emits a selecting movement while shift is held, a plain movement otherwise.
func (z *Editor) emitMove(m CaretMovement) {
	z.mutex.RLock()
	shift, lines := z.shift, z.Lines
	z.mutex.RUnlock()
	a := Move(m)
	if shift {
		a = Select(m)
	}
	a.Lines = lines
	z.emit(a)
}

func (z *Editor) TypedRune(r rune) {
	z.emit(Insert(r))
}

func (z *Editor) TypedKey(evt *fyne.KeyEvent) {
	if handler, ok := z.keyHandlers[evt.Name]; ok {
		handler(z)
	}
}

// KeyDown tracks the shift key, which turns movements into selections.
func (z *Editor) KeyDown(evt *fyne.KeyEvent) {
	if evt.Name == desktop.KeyShiftLeft || evt.Name == desktop.KeyShiftRight {
		z.mutex.Lock()
		z.shift = true
		z.mutex.Unlock()
	}
}

func (z *Editor) KeyUp(evt *fyne.KeyEvent) {
	if evt.Name == desktop.KeyShiftLeft || evt.Name == desktop.KeyShiftRight {
		z.mutex.Lock()
		z.shift = false
		z.mutex.Unlock()
	}
}

func (z *Editor) TypedShortcut(s fyne.Shortcut) {
	switch sc := s.(type) {
	case *fyne.ShortcutCopy:
		z.copySelection(sc.Clipboard)
	case *fyne.ShortcutCut:
		if z.copySelection(sc.Clipboard) {
			z.emit(Action{Kind: ActionDelete})
		}
	case *fyne.ShortcutPaste:
		if sc.Clipboard != nil {
			z.emit(Paste(sc.Clipboard.Content()))
		}
	case *fyne.ShortcutSelectAll:
		z.emit(Action{Kind: ActionSelectAll})
	case fyne.KeyboardShortcut:
		if handler, ok := z.handlers[sc.ShortcutName()]; ok {
			handler(z)
		}
	}
}

// copySelection puts the selected text into the clipboard and returns true if there was any.
func (z *Editor) copySelection(clipboard fyne.Clipboard) bool {
	text := z.Content().SelectedText()
	if text == "" || clipboard == nil {
		return false
	}
	clipboard.SetContent(text)
	return true
}

// AddShortcutHandler adds a keyboard shortcut to the editor.
func (z *Editor) AddShortcutHandler(s fyne.KeyboardShortcut, handler func(z *Editor)) {
	z.handlers[s.ShortcutName()] = handler
}

// RemoveShortcutHandler removes the keyboard shortcut handler with the given name.
func (z *Editor) RemoveShortcutHandler(name string) {
	delete(z.handlers, name)
}

// AddKeyHandler adds a handler for the given key, which is called whenever the key is
// pressed without a modifier other than shift.
func (z *Editor) AddKeyHandler(key fyne.KeyName, handler func(z *Editor)) {
	z.keyHandlers[key] = handler
}

// RemoveKeyHandler removes the handler for the given key.
func (z *Editor) RemoveKeyHandler(key fyne.KeyName) {
	delete(z.keyHandlers, key)
}

// addDefaultShortcuts adds the standard keys and shortcuts of a text area.
func (z *Editor) addDefaultShortcuts() {
	movements := map[fyne.KeyName]CaretMovement{
		fyne.KeyLeft:     CaretLeft,
		fyne.KeyRight:    CaretRight,
		fyne.KeyUp:       CaretUp,
		fyne.KeyDown:     CaretDown,
		fyne.KeyHome:     CaretLineStart,
		fyne.KeyEnd:      CaretLineEnd,
		fyne.KeyPageUp:   CaretPageUp,
		fyne.KeyPageDown: CaretPageDown,
	}
	for key, m := range movements {
		z.AddKeyHandler(key, func(z *Editor) {
			z.emitMove(m)
		})
	}
	z.AddKeyHandler(fyne.KeyBackspace, func(z *Editor) {
		z.emit(Action{Kind: ActionBackspace})
	})
	z.AddKeyHandler(fyne.KeyDelete, func(z *Editor) {
		z.emit(Action{Kind: ActionDelete})
	})
	z.AddKeyHandler(fyne.KeyReturn, func(z *Editor) {
		z.emit(Action{Kind: ActionEnter})
	})
	z.AddKeyHandler(fyne.KeyEnter, func(z *Editor) {
		z.emit(Action{Kind: ActionEnter})
	})
	z.AddKeyHandler(fyne.KeyTab, func(z *Editor) {
		z.emit(Insert('\t'))
	})
	// shortcuts
	jumps := map[fyne.KeyName]CaretMovement{
		fyne.KeyLeft:  CaretWordLeft,
		fyne.KeyRight: CaretWordRight,
		fyne.KeyHome:  CaretHome,
		fyne.KeyEnd:   CaretEnd,
	}
	for key, m := range jumps {
		z.AddShortcutHandler(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(z *Editor) {
				z.emit(Move(m))
			})
		z.AddShortcutHandler(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
			func(z *Editor) {
				z.emit(Select(m))
			})
	}
	z.AddShortcutHandler(&desktop.CustomShortcut{KeyName: fyne.KeyL, Modifier: fyne.KeyModifierShortcutDefault},
		func(z *Editor) {
			z.emit(Action{Kind: ActionSelectLine})
		})
}

// LAYOUT UPDATING

// Refresh redraws the visible part of the content. The grids are refreshed before the
// lock is released so that no other goroutine rewrites their rows while they render.
func (z *Editor) Refresh() {
	z.mutex.Lock()
	z.refreshProc()
	z.lineNumberGrid.Refresh()
	z.grid.Refresh()
	z.mutex.Unlock()
	z.scroll.Refresh()
}

// refreshProc fills the grids from the content. The caller holds the lock.
func (z *Editor) refreshProc() {
	c := z.content
	z.syncTags(c)
	for i := range z.grid.Rows {
		row := c.row(i + z.lineOffset)
		cells := z.grid.Rows[i].Cells
		for j := range cells {
			r := ' '
			if col := j + z.columnOffset; col < len(row) {
				r = displayRune(row[col])
			}
			cells[j] = widget.TextGridCell{Rune: r}
		}
	}

	z.lineNumberGrid.Hidden = !z.Config.ShowLineNumbers
	if z.Config.ShowLineNumbers {
		fmtStr := "%" + strconv.Itoa(z.lineNumberLen()) + "d "
		style := lineNumberStyle()
		for i := range z.lineNumberGrid.Rows {
			s := []rune(fmt.Sprintf(fmtStr, z.lineOffset+i+1))
			if z.lineOffset+i > c.LastLine() {
				s = []rune(strings.Repeat(" ", len(s)))
			}
			cells := make([]widget.TextGridCell, len(s))
			for j := range s {
				cells[j] = widget.TextGridCell{Rune: s[j], Style: style}
			}
			z.lineNumberGrid.Rows[i] = widget.TextGridRow{Cells: cells}
		}
	}

	if _, ok := z.Tags.LookupRange(z.currentViewport()); ok {
		for i := len(z.stylers) - 1; i >= 0; i-- {
			for _, tag := range z.Tags.TagsByName(z.stylers[i].TagName) {
				if iv, ok := z.Tags.Lookup(tag); ok {
					z.maybeStyleRange(tag, iv, z.stylers[i].StyleFunc)
				}
			}
		}
	}
	z.maybeDrawCaret()
	// the largest scroll offset must be a whole number of lines
	height := float32(c.LineCount()) * z.charSize.Height
	if hidden := c.LineCount() - z.Lines; hidden > 0 {
		height = float32(hidden)*z.charSize.Height + z.scroll.Size().Height
	}
	z.vSpacer.SetHeight(height)
}

// syncTags derives the display tags from the content's selection and parens.
func (z *Editor) syncTags(c *Content) {
	if sel, ok := c.Selection(); ok {
		z.Tags.Upsert(z.Config.SelectionTag, sel)
	} else {
		z.Tags.Delete(z.Config.SelectionTag)
	}
	z.Tags.DeleteByName(z.Config.HighlightTag.Name())
	z.Tags.DeleteByName(z.Config.ErrorTag.Name())
	if !z.Config.HighlightParens {
		return
	}
	lpos, rpos, match := c.MatchingParen()
	switch match {
	case ParenMatched:
		z.Tags.Add(charAt(lpos), z.Config.HighlightTag.Clone(0))
		z.Tags.Add(charAt(rpos), z.Config.HighlightTag.Clone(1))
	case ParenUnmatched:
		z.Tags.Add(charAt(rpos), z.Config.ErrorTag)
	}
}

func charAt(pos CharPos) CharInterval {
	return CharInterval{Start: pos, End: CharPos{Line: pos.Line, Column: pos.Column + 1}}
}

// currentViewport is the char interval that is currently displayed.
func (z *Editor) currentViewport() CharInterval {
	return CharInterval{Start: CharPos{Line: z.lineOffset, Column: z.columnOffset},
		End: CharPos{Line: z.lineOffset + z.Lines - 1, Column: z.columnOffset + z.Columns}}
}

// maybeStyleRange applies the style func to the visible cells of the interval.
func (z *Editor) maybeStyleRange(tag Tag, iv CharInterval, styler TagStyleFunc) {
	if styler == nil {
		return
	}
	first := max(iv.Start.Line, z.lineOffset)
	last := min(iv.End.Line, z.lineOffset+z.Lines-1)
	for line := first; line <= last; line++ {
		cells := z.grid.Rows[line-z.lineOffset].Cells
		for j := range cells {
			if iv.Contains(CharPos{Line: line, Column: j + z.columnOffset}) {
				cells[j] = styler(tag, cells[j])
			}
		}
	}
}

// maybeDrawCaret draws the caret if the editor has focus and the caret is visible.
func (z *Editor) maybeDrawCaret() bool {
	if !z.Config.DrawCaret || !z.hasFocus {
		return false
	}
	caret := z.content.Caret()
	line := caret.Line - z.lineOffset
	col := caret.Column - z.columnOffset
	if line < 0 || line >= len(z.grid.Rows) || col < 0 || col >= len(z.grid.Rows[line].Cells) {
		return false
	}
	z.grid.Rows[line].Cells[col].Style = caretStyle()
	return true
}

func (z *Editor) lineNumberLen() int {
	return len(strconv.Itoa(z.content.LineCount()))
}

// displayRune maps runes the grid cannot show in a single cell to a space.
func displayRune(r rune) rune {
	switch r {
	case '\t', '\r':
		return ' '
	}
	return r
}

func (z *Editor) CreateRenderer() fyne.WidgetRenderer {
	return &editorRenderer{z}
}

type editorRenderer struct {
	editor *Editor
}

func (r *editorRenderer) Destroy() {}

func (r *editorRenderer) Layout(size fyne.Size) {
	r.editor.layout(size)
}

func (r *editorRenderer) MinSize() fyne.Size {
	return r.editor.MinSize()
}

func (r *editorRenderer) Objects() []fyne.CanvasObject {
	z := r.editor
	return []fyne.CanvasObject{z.background, z.lineNumberGrid, z.grid, z.scroll}
}

func (r *editorRenderer) Refresh() {
	r.editor.Refresh()
}
