package zpad

// CaretMovement names a direction or target the caret can move to.
type CaretMovement int

const (
	CaretLeft CaretMovement = iota + 1
	CaretRight
	CaretUp
	CaretDown
	CaretWordLeft
	CaretWordRight
	CaretLineStart
	CaretLineEnd
	CaretPageUp
	CaretPageDown
	CaretHome
	CaretEnd
)

// vertical movements keep the preferred column of the caret.
func (m CaretMovement) vertical() bool {
	switch m {
	case CaretUp, CaretDown, CaretPageUp, CaretPageDown:
		return true
	}
	return false
}

// ActionKind selects the operation an Action performs on a Content.
type ActionKind int

const (
	ActionMove ActionKind = iota + 1
	ActionSelect
	ActionSelectWord
	ActionSelectLine
	ActionSelectAll
	ActionClick
	ActionDrag
	ActionInsert
	ActionPaste
	ActionEnter
	ActionBackspace
	ActionDelete
)

var actionNames = map[ActionKind]string{
	ActionMove:       "move",
	ActionSelect:     "select",
	ActionSelectWord: "select-word",
	ActionSelectLine: "select-line",
	ActionSelectAll:  "select-all",
	ActionClick:      "click",
	ActionDrag:       "drag",
	ActionInsert:     "insert",
	ActionPaste:      "paste",
	ActionEnter:      "enter",
	ActionBackspace:  "backspace",
	ActionDelete:     "delete",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is one edit, movement or selection operation on a Content. Only the
// fields relevant to Kind are used: Movement for ActionMove and ActionSelect,
// Rune for ActionInsert, Text for ActionPaste and Pos for ActionClick and
// ActionDrag. Lines overrides the page size of CaretPageUp and CaretPageDown.
type Action struct {
	Kind     ActionKind
	Movement CaretMovement
	Rune     rune
	Text     string
	Pos      CharPos
	Lines    int
}

// Move returns an action moving the caret and dropping the selection.
func Move(m CaretMovement) Action {
	return Action{Kind: ActionMove, Movement: m}
}

// Select returns an action moving the caret while extending the selection.
func Select(m CaretMovement) Action {
	return Action{Kind: ActionSelect, Movement: m}
}

// Insert returns an action typing r at the caret.
func Insert(r rune) Action {
	return Action{Kind: ActionInsert, Rune: r}
}

// Paste returns an action inserting s at the caret.
func Paste(s string) Action {
	return Action{Kind: ActionPaste, Text: s}
}

// Click returns an action placing the caret at pos.
func Click(pos CharPos) Action {
	return Action{Kind: ActionClick, Pos: pos}
}

// Drag returns an action extending the selection to pos.
func Drag(pos CharPos) Action {
	return Action{Kind: ActionDrag, Pos: pos}
}
