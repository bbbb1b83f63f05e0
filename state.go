package zpad

// State is the application state. Exactly one exists per process; it is owned by the
// Program and only changed inside Update.
type State struct {
	Content   *Content // the edited text, never nil
	FilePath  string   // path of the opened file, empty until a file was opened
	LastError error    // the last failed open, recorded but not displayed
}

// NewState returns a state showing text in an unnamed buffer.
func NewState(text string) *State {
	return &State{Content: NewContentWithText(text)}
}

// Message is an event delivered to Update.
type Message interface {
	message()
}

// EditMsg carries an action of the text area.
type EditMsg struct {
	Action Action
}

// OpenFileRequestedMsg is sent when the open button is pressed.
type OpenFileRequestedMsg struct{}

// OpenFileCompletedMsg carries the result of an OpenFileCmd. Text and Path are only valid
// if Err is nil.
type OpenFileCompletedMsg struct {
	Path string
	Text string
	Err  error
}

func (EditMsg) message()              {}
func (OpenFileRequestedMsg) message() {}
func (OpenFileCompletedMsg) message() {}

// Cmd is asynchronous work requested by Update. Its result comes back as a Message.
type Cmd interface {
	cmd()
}

// OpenFileCmd asks for a file to be picked and read; it results in an OpenFileCompletedMsg.
type OpenFileCmd struct{}

func (OpenFileCmd) cmd() {}

// Update applies msg to s and returns the command to run next, or nil.
func Update(s *State, msg Message) Cmd {
	switch m := msg.(type) {
	case EditMsg:
		s.Content.Perform(m.Action)
	case OpenFileRequestedMsg:
		return OpenFileCmd{}
	case OpenFileCompletedMsg:
		if m.Err != nil {
			s.LastError = m.Err
			return nil
		}
		// unsaved edits are dropped without asking, there is no save
		s.Content = NewContentWithText(m.Text)
		s.FilePath = m.Path
	}
	return nil
}
