package main

import (
	"context"
	_ "embed"

	"fyne.io/fyne/v2/app"
	"github.com/rasteric/zpad"
)

// The editor starts out showing its own source.
//
//go:embed main.go
var source string

func main() {
	a := app.New()
	config := zpad.NewConfig()
	config.InitialText = source
	w := a.NewWindow(config.Title)
	editor := zpad.NewApplication(w, config)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := editor.Run(ctx); err != nil && ctx.Err() == nil {
			config.Logger.WithError(err).Error("event loop stopped")
		}
	}()
	editor.Shell.Editor.Focus()
	w.ShowAndRun()
	cancel()
}
