package zpad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/dimchansky/utfbom"
)

// ErrDialogCanceled is returned when the user closes the file dialog without picking a file.
var ErrDialogCanceled = errors.New("file dialog canceled")

// IOKind classifies why reading a file failed.
type IOKind int

const (
	KindOther IOKind = iota
	KindNotFound
	KindPermissionDenied
	KindIsDirectory
	KindInvalidData
)

func (k IOKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindIsDirectory:
		return "is a directory"
	case KindInvalidData:
		return "invalid data"
	}
	return "other"
}

// IOError is a failed file read, classified by Kind.
type IOError struct {
	Kind IOKind
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("read %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("read %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// classify maps an OS error to an IOKind.
func classify(err error) IOKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	}
	return KindOther
}

// Picker lets the user choose a file.
type Picker interface {
	// PickFile blocks until the user picked a file starting in dir and returns its path,
	// or ErrDialogCanceled.
	PickFile(ctx context.Context, dir string) (string, error)
}

// Opener produces the path and text of a file to edit.
type Opener interface {
	OpenFile(ctx context.Context) (string, string, error)
}

// FileOpener combines a Picker with reading the picked file.
type FileOpener struct {
	Picker Picker
	Dir    string // directory the picker starts in, the working directory if empty
}

// OpenFile asks the picker for a file and reads it. It fails with ErrDialogCanceled if the
// dialog was canceled and with an *IOError if the file could not be read.
func (o *FileOpener) OpenFile(ctx context.Context) (string, string, error) {
	dir := o.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", &IOError{Kind: classify(err), Path: ".", Err: err}
		}
		dir = wd
	}
	path, err := o.Picker.PickFile(ctx, dir)
	if err != nil {
		return "", "", err
	}
	text, err := ReadText(ctx, path)
	if err != nil {
		return "", "", err
	}
	return path, text, nil
}

// ReadText reads the whole file as UTF-8 text. A byte order mark is skipped. Errors are
// returned as *IOError, data that is not valid UTF-8 fails with KindInvalidData.
func ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Kind: classify(err), Path: path, Err: err}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", &IOError{Kind: classify(err), Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &IOError{Kind: KindIsDirectory, Path: path}
	}
	data, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return "", &IOError{Kind: classify(err), Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &IOError{Kind: KindInvalidData, Path: path, Err: errors.New("stream did not contain valid UTF-8")}
	}
	return string(data), nil
}

// DialogPicker picks files with Fyne's file open dialog shown in Window.
type DialogPicker struct {
	Window fyne.Window
}

type pickResult struct {
	path string
	err  error
}

// PickFile shows the dialog and waits for the user. It must not be called on the
// goroutine running the Fyne event loop.
func (p *DialogPicker) PickFile(ctx context.Context, dir string) (string, error) {
	result := make(chan pickResult, 1)
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		switch {
		case err != nil:
			result <- pickResult{err: &IOError{Kind: classify(err), Err: err}}
		case r == nil:
			result <- pickResult{err: ErrDialogCanceled}
		default:
			// the dialog opened the file already, it is read again by path
			path := r.URI().Path()
			r.Close()
			result <- pickResult{path: path}
		}
	}, p.Window)
	if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
	select {
	case res := <-result:
		return res.path, res.err
	case <-ctx.Done():
		d.Hide()
		return "", ctx.Err()
	}
}
