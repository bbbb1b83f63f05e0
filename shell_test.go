package zpad

import (
	"context"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellApply(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()
	var sent []Message
	s := NewShell(w.Canvas(), NewConfig(), func(msg Message) { sent = append(sent, msg) })
	w.SetContent(s.Content())

	// without a view the widgets send nothing
	test.Tap(s.OpenButton)
	assert.Empty(t, sent)

	state := &State{Content: perform(NewContentWithText("abc\ndef"), Move(CaretEnd)), FilePath: "/tmp/a.txt"}
	s.Apply(Render(state, NewConfig()))
	assert.Equal(t, "/tmp/a.txt", s.PathLabel.Text)
	assert.Equal(t, "2:4", s.CursorLabel.Text)
	assert.Equal(t, "Open", s.OpenButton.Text)
	assert.Equal(t, "abc\ndef", s.Editor.Content().Text())

	test.Tap(s.OpenButton)
	s.Editor.TypedRune('x')
	assert.Equal(t, []Message{OpenFileRequestedMsg{}, EditMsg{Action: Insert('x')}}, sent)
}

// newTestApplication starts the application. The returned stop func ends the dispatcher,
// widgets it writes to may be read once it returned.
func newTestApplication(t *testing.T, text string) (*Application, *stubOpener, func()) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(widget.NewLabel(""))
	t.Cleanup(w.Close)
	config := NewConfig()
	config.InitialText = text
	config.Logger.SetLevel(logrus.PanicLevel)
	opener := newStubOpener()
	a := NewApplicationWithOpener(w, config, opener)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
	t.Cleanup(stop)
	return a, opener, stop
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestApplicationWindow(t *testing.T) {
	a, _, stop := newTestApplication(t, "abc")
	assert.Equal(t, "zpad", a.Window.Title())
	eventually(t, func() bool { return a.Shell.Editor.Content().Text() == "abc" })
	assert.Equal(t, StatusBarView{Left: "New File", Right: "1:1"}, a.Shell.View().StatusBar)
	stop()
	assert.Equal(t, "New File", a.Shell.PathLabel.Text)
	assert.Equal(t, "1:1", a.Shell.CursorLabel.Text)
}

func TestApplicationTyping(t *testing.T) {
	a, _, stop := newTestApplication(t, "x")
	// widget events are dropped until the first view is applied
	eventually(t, func() bool { return a.Shell.Editor.Content().Text() == "x" })
	test.Type(a.Shell.Editor, "hi")
	eventually(t, func() bool { return a.Shell.View().StatusBar.Right == "1:3" })
	a.Shell.Editor.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	eventually(t, func() bool { return a.Shell.View().StatusBar.Right == "2:1" })
	eventually(t, func() bool { return a.Shell.Editor.Content().Text() == "hi\nx" })
	stop()
	assert.Equal(t, "2:1", a.Shell.CursorLabel.Text)
}

func TestApplicationOpen(t *testing.T) {
	a, opener, stop := newTestApplication(t, "initial")
	eventually(t, func() bool { return a.Shell.Editor.Content().Text() == "initial" })

	test.Tap(a.Shell.OpenButton)
	opener.results <- openResult{path: "/tmp/hello.txt", text: "hello"}
	eventually(t, func() bool { return a.Shell.View().StatusBar.Left == "/tmp/hello.txt" })
	assert.Equal(t, "hello", a.Shell.Editor.Content().Text())

	test.Tap(a.Shell.OpenButton)
	opener.results <- openResult{err: &IOError{Kind: KindNotFound, Path: "/nonexistent"}}
	a.Shell.Editor.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEnd})
	eventually(t, func() bool { return a.Shell.View().StatusBar.Right == "1:6" })
	assert.Equal(t, "/tmp/hello.txt", a.Shell.View().StatusBar.Left)
	assert.Equal(t, "hello", a.Shell.Editor.Content().Text())
	stop()
	assert.Equal(t, "/tmp/hello.txt", a.Shell.PathLabel.Text)
	assert.Equal(t, "1:6", a.Shell.CursorLabel.Text)
}
