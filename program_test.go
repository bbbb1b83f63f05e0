package zpad

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openResult struct {
	path string
	text string
	err  error
}

// stubOpener blocks every OpenFile call until a result is sent on results.
type stubOpener struct {
	results chan openResult
}

func newStubOpener() *stubOpener {
	return &stubOpener{results: make(chan openResult)}
}

func (o *stubOpener) OpenFile(ctx context.Context) (string, string, error) {
	select {
	case r := <-o.results:
		return r.path, r.text, r.err
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
}

type programHarness struct {
	program *Program
	views   chan View
	cancel  context.CancelFunc
	done    chan error
}

func startProgram(t *testing.T, text string, opener Opener) *programHarness {
	t.Helper()
	config := NewConfig()
	config.Logger, _ = test.NewNullLogger()
	h := &programHarness{views: make(chan View, 256), done: make(chan error, 1)}
	h.program = NewProgram(NewState(text), config, opener, func(v View) { h.views <- v })
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- h.program.Run(ctx) }()
	t.Cleanup(h.stop)
	return h
}

// waitView returns the first view matching pred.
func (h *programHarness) waitView(t *testing.T, pred func(View) bool) View {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case v := <-h.views:
			if pred(v) {
				return v
			}
		case <-timeout:
			require.FailNow(t, "no matching view rendered")
		}
	}
}

func (h *programHarness) stop() {
	h.cancel()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
	}
}

func TestProgramInitialView(t *testing.T) {
	h := startProgram(t, "hello", newStubOpener())
	v := h.waitView(t, func(View) bool { return true })
	assert.Equal(t, "New File", v.StatusBar.Left)
	assert.Equal(t, "1:1", v.StatusBar.Right)
	assert.Equal(t, "hello", v.Editor.Content.Text())
}

func TestProgramEdits(t *testing.T) {
	h := startProgram(t, "", newStubOpener())
	for _, r := range "ab" {
		h.program.Send(EditMsg{Action: Insert(r)})
	}
	h.program.Send(EditMsg{Action: Action{Kind: ActionEnter}})
	v := h.waitView(t, func(v View) bool { return v.StatusBar.Right == "2:1" })
	assert.Equal(t, "ab\n", v.Editor.Content.Text())
}

func TestProgramOpenFile(t *testing.T) {
	opener := newStubOpener()
	h := startProgram(t, "initial", opener)
	h.program.Send(OpenFileRequestedMsg{})
	opener.results <- openResult{path: "/tmp/hello.txt", text: "hello"}
	v := h.waitView(t, func(v View) bool { return v.StatusBar.Left == "/tmp/hello.txt" })
	assert.Equal(t, "hello", v.Editor.Content.Text())
	assert.Equal(t, "1:1", v.StatusBar.Right)

	h.stop()
	assert.Equal(t, "/tmp/hello.txt", h.program.State().FilePath)
	assert.NoError(t, h.program.State().LastError)
}

func TestProgramOpenFileCanceled(t *testing.T) {
	opener := newStubOpener()
	h := startProgram(t, "initial", opener)
	h.program.Send(OpenFileRequestedMsg{})
	opener.results <- openResult{err: ErrDialogCanceled}
	// initial view, request and completion
	views := 0
	v := h.waitView(t, func(View) bool { views++; return views == 3 })
	assert.Equal(t, "New File", v.StatusBar.Left)
	assert.Equal(t, "1:1", v.StatusBar.Right)
	assert.Equal(t, "initial", v.Editor.Content.Text())

	h.stop()
	assert.ErrorIs(t, h.program.State().LastError, ErrDialogCanceled)
}

func TestProgramOverlappingOpens(t *testing.T) {
	opener := newStubOpener()
	h := startProgram(t, "", opener)
	h.program.Send(OpenFileRequestedMsg{})
	h.program.Send(OpenFileRequestedMsg{})

	opener.results <- openResult{path: "/tmp/first.txt", text: "first"}
	h.waitView(t, func(v View) bool { return v.StatusBar.Left == "/tmp/first.txt" })
	opener.results <- openResult{path: "/tmp/second.txt", text: "second"}
	v := h.waitView(t, func(v View) bool { return v.StatusBar.Left == "/tmp/second.txt" })
	assert.Equal(t, "second", v.Editor.Content.Text())

	h.stop()
	assert.Equal(t, "/tmp/second.txt", h.program.State().FilePath)
}

func TestProgramStop(t *testing.T) {
	opener := newStubOpener()
	h := startProgram(t, "", opener)
	h.program.Send(OpenFileRequestedMsg{})
	h.waitView(t, func(View) bool { return true })
	h.cancel()

	select {
	case err := <-h.done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "program did not stop")
	}

	sent := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.program.Send(EditMsg{Action: Insert('x')})
		}
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "send blocked after the program stopped")
	}
}

func TestProgramLogsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	config := NewConfig()
	config.Logger = logger
	p := NewProgram(NewState(""), config, newStubOpener(), nil)

	p.dispatch(context.Background(), OpenFileCompletedMsg{Err: &IOError{Kind: KindNotFound, Path: "/nonexistent"}})
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "/nonexistent", entry.Data["path"])
	assert.Equal(t, KindNotFound, entry.Data["kind"])

	p.dispatch(context.Background(), OpenFileCompletedMsg{Path: "/tmp/a.txt", Text: "abc"})
	entry = hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 3, entry.Data["size"])

	p.dispatch(context.Background(), OpenFileCompletedMsg{Err: ErrDialogCanceled})
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "/tmp/a.txt", p.State().FilePath)
}
