package zpad

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Shell holds the Fyne widgets of the window and updates them from views. Widget events
// are turned into messages by the handlers of the last applied view and passed to send.
type Shell struct {
	OpenButton  *widget.Button
	Editor      *Editor
	PathLabel   *widget.Label
	CursorLabel *widget.Label

	root  fyne.CanvasObject
	send  func(Message)
	view  View
	mutex sync.RWMutex
}

// NewShell creates the widgets for a window with the given canvas.
func NewShell(c fyne.Canvas, config *Config, send func(Message)) *Shell {
	s := &Shell{send: send}
	s.OpenButton = widget.NewButton(config.OpenLabel, func() {
		s.mutex.RLock()
		msg := s.view.ControlBar.Open.OnPress
		s.mutex.RUnlock()
		if msg != nil {
			s.send(msg)
		}
	})
	s.Editor = NewEditor(c, config)
	s.Editor.OnAction = func(a Action) {
		s.mutex.RLock()
		onAction := s.view.Editor.OnAction
		s.mutex.RUnlock()
		if onAction != nil {
			s.send(onAction(a))
		}
	}
	s.PathLabel = widget.NewLabel(config.NewFileLabel)
	s.CursorLabel = widget.NewLabel("1:1")
	controlBar := container.NewHBox(s.OpenButton)
	statusBar := container.NewHBox(s.PathLabel, layout.NewSpacer(), s.CursorLabel)
	s.root = container.NewPadded(container.NewBorder(controlBar, statusBar, nil, nil, s.Editor))
	return s
}

// Content returns the root object to put into the window.
func (s *Shell) Content() fyne.CanvasObject {
	return s.root
}

// View returns the view applied last.
func (s *Shell) View() View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view
}

// Apply updates the widgets to show v.
func (s *Shell) Apply(v View) {
	s.mutex.Lock()
	s.view = v
	s.mutex.Unlock()
	if s.OpenButton.Text != v.ControlBar.Open.Label {
		s.OpenButton.SetText(v.ControlBar.Open.Label)
	}
	s.Editor.SetContent(v.Editor.Content)
	s.PathLabel.SetText(v.StatusBar.Left)
	s.CursorLabel.SetText(v.StatusBar.Right)
}

// Application wires state, program and widgets of one editor window.
type Application struct {
	Window  fyne.Window
	Shell   *Shell
	Program *Program
	Config  *Config
}

// NewApplication sets up the editor in w. Files are picked with Fyne's file dialog.
func NewApplication(w fyne.Window, config *Config) *Application {
	return NewApplicationWithOpener(w, config, &FileOpener{Picker: &DialogPicker{Window: w}})
}

// NewApplicationWithOpener sets up the editor in w using opener for the open button.
func NewApplicationWithOpener(w fyne.Window, config *Config, opener Opener) *Application {
	if config == nil {
		config = NewConfig()
	}
	a := &Application{Window: w, Config: config}
	a.Shell = NewShell(w.Canvas(), config, func(msg Message) {
		a.Program.Send(msg)
	})
	a.Program = NewProgram(NewState(config.InitialText), config, opener, a.Shell.Apply)
	w.SetTitle(config.Title)
	w.SetContent(a.Shell.Content())
	w.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	return a
}

// Run runs the event loop until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	return a.Program.Run(ctx)
}
