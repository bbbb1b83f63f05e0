package zpad

import (
	"github.com/sirupsen/logrus"
)

// Config stores the configuration of the application and its editor widget.
type Config struct {
	Title              string         // window title, constant for the process lifetime
	WindowWidth        float32        // initial window width
	WindowHeight       float32        // initial window height
	InitialText        string         // shown in the editor before any file is opened
	NewFileLabel       string         // status bar text while no file is open
	OpenLabel          string         // label of the open button
	EditorMinHeight    float32        // the editor fills the window but never gets lower than this
	ShowLineNumbers    bool           // display line numbers left of the text
	HighlightParens    bool           // highlight the partner of a paren or quotation mark before the caret
	DrawCaret          bool           // if false, the caret is tracked but not drawn
	BlendFG            BlendMode      // how tag colors are blended with the text foreground
	BlendBG            BlendMode      // how tag colors are blended with the text background
	ScrollFactor       float32        // speed of mouse wheel scrolling
	SelectionTag       Tag            // tag marking the selection
	HighlightTag       Tag            // tag marking matched parens
	ErrorTag           Tag            // tag marking unmatched parens
	SelectionStyleFunc TagStyleFunc   // style of the selection tag
	HighlightStyleFunc TagStyleFunc   // style of matched parens
	ErrorStyleFunc     TagStyleFunc   // style of unmatched parens
	Logger             *logrus.Logger // destination of all log output
}

// NewConfig returns a new config with default values.
func NewConfig() *Config {
	z := &Config{}
	z.Title = "zpad"
	z.WindowWidth = 200
	z.WindowHeight = 200
	z.NewFileLabel = "New File"
	z.OpenLabel = "Open"
	z.EditorMinHeight = 50
	z.HighlightParens = true
	z.DrawCaret = true
	z.BlendFG = BlendOverlay
	z.BlendBG = BlendOverlay
	z.ScrollFactor = 2.0
	z.SelectionTag = NewTag("selection")
	z.HighlightTag = NewTag("highlight")
	z.ErrorTag = NewTag("error")
	z.SelectionStyleFunc = selectionStyle(z)
	z.HighlightStyleFunc = highlightStyle(z)
	z.ErrorStyleFunc = errorStyle(z)
	z.Logger = logrus.New()
	z.Logger.SetLevel(logrus.InfoLevel)
	return z
}

func (c *Config) logger() logrus.FieldLogger {
	if c == nil || c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
