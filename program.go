package zpad

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Program is the event loop. Its Run goroutine is the only one touching the State: it
// takes messages from Send, passes them to Update, renders the state into the view sink
// and starts commands on goroutines of their own, whose results come back through Send.
//
// Commands are not canceled and may overlap. If two opens are in flight, the one
// completing last determines the content.
type Program struct {
	state  *State
	config *Config
	opener Opener
	sink   func(View)
	msgs   chan Message
	done   chan struct{}
	log    logrus.FieldLogger
	wg     sync.WaitGroup
}

// NewProgram returns a program for the state. Each rendered view is passed to sink, which
// may be nil.
func NewProgram(state *State, config *Config, opener Opener, sink func(View)) *Program {
	if config == nil {
		config = NewConfig()
	}
	return &Program{
		state:  state,
		config: config,
		opener: opener,
		sink:   sink,
		msgs:   make(chan Message, 64),
		done:   make(chan struct{}),
		log:    config.logger(),
	}
}

// Send queues msg for Update. It does not block once Run has returned.
func (p *Program) Send(msg Message) {
	select {
	case p.msgs <- msg:
	case <-p.done:
	}
}

// Run renders the initial view and processes messages until ctx is done. It waits for
// running commands before returning.
func (p *Program) Run(ctx context.Context) error {
	defer p.wg.Wait()
	defer close(p.done)
	p.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-p.msgs:
			p.dispatch(ctx, msg)
		}
	}
}

func (p *Program) dispatch(ctx context.Context, msg Message) {
	p.logMessage(msg)
	if cmd := Update(p.state, msg); cmd != nil {
		p.exec(ctx, cmd)
	}
	p.render()
}

func (p *Program) render() {
	if p.sink != nil {
		p.sink(Render(p.state, p.config))
	}
}

func (p *Program) exec(ctx context.Context, cmd Cmd) {
	switch cmd.(type) {
	case OpenFileCmd:
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			path, text, err := p.opener.OpenFile(ctx)
			p.Send(OpenFileCompletedMsg{Path: path, Text: text, Err: err})
		}()
	default:
		p.log.WithField("cmd", cmd).Warn("unknown command")
	}
}

func (p *Program) logMessage(msg Message) {
	switch m := msg.(type) {
	case EditMsg:
		p.log.WithField("action", m.Action.Kind).Debug("edit")
	case OpenFileRequestedMsg:
		p.log.Debug("open file requested")
	case OpenFileCompletedMsg:
		if m.Err == nil {
			p.log.WithFields(logrus.Fields{"path": m.Path, "size": len(m.Text)}).Info("file opened")
			return
		}
		var ioErr *IOError
		switch {
		case errors.Is(m.Err, ErrDialogCanceled):
			p.log.Debug("file dialog canceled")
		case errors.As(m.Err, &ioErr):
			p.log.WithFields(logrus.Fields{"path": ioErr.Path, "kind": ioErr.Kind}).WithError(m.Err).Warn("open file failed")
		default:
			p.log.WithError(m.Err).Warn("open file failed")
		}
	}
}

// State returns the program's state. It is only safe to use once Run has returned or
// before it is called.
func (p *Program) State() *State {
	return p.state
}
