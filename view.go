package zpad

import (
	"fmt"
)

// View is the declarative description of the window content: control bar on top,
// text area in the middle, status bar at the bottom.
type View struct {
	ControlBar ControlBarView
	Editor     EditorView
	StatusBar  StatusBarView
}

// ButtonView is a labeled button sending OnPress when it is pressed.
type ButtonView struct {
	Label   string
	OnPress Message
}

// ControlBarView holds the buttons above the text area.
type ControlBarView struct {
	Open ButtonView
}

// EditorView binds the text area to a content snapshot.
type EditorView struct {
	Content   *Content
	MinHeight float32
	OnAction  func(a Action) Message
}

// StatusBarView holds the left aligned file label and the right aligned caret position.
type StatusBarView struct {
	Left  string
	Right string
}

// Render builds the view of s. It neither changes s nor performs any I/O.
func Render(s *State, config *Config) View {
	left := config.NewFileLabel
	if s.FilePath != "" {
		left = s.FilePath
	}
	line, column := s.Content.CursorPosition()
	return View{
		ControlBar: ControlBarView{
			Open: ButtonView{Label: config.OpenLabel, OnPress: OpenFileRequestedMsg{}},
		},
		Editor: EditorView{
			Content:   s.Content.Snapshot(),
			MinHeight: config.EditorMinHeight,
			OnAction:  editMsg,
		},
		StatusBar: StatusBarView{
			Left:  left,
			Right: fmt.Sprintf("%d:%d", line+1, column+1),
		},
	}
}

func editMsg(a Action) Message {
	return EditMsg{Action: a}
}
