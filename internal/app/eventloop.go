package app

import (
	"errors"
	"fmt"

	"github.com/dshills/softtab/internal/input/key"
	"github.com/dshills/softtab/internal/renderer"
	"github.com/dshills/softtab/internal/renderer/backend"
)

// Application key bindings, handled before a document's chain.
var (
	keyQuit = key.MustParse("C-q")
	keySave = key.MustParse("C-s")
	keyNext = key.MustParse("C-n")
)

// Run draws the active document and processes events until quit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	b := app.opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		b = term
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.backend = b
	app.renderer = renderer.New(b)
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.backend = nil
		app.mu.Unlock()
	}()

	_, height := b.Size()
	app.handleResize(height)

	app.log.Info("event loop started")
	for {
		app.render()
		ev := b.PollEvent()
		if ev.Type == backend.EventNone {
			return nil
		}
		if err := app.handleBackendEvent(ev); err != nil {
			if isQuit(err) {
				app.log.Info("event loop stopped")
				return nil
			}
			return err
		}
	}
}

// quitRequest is the interrupt payload sent by Stop.
type quitRequest struct{}

// Stop asks a running event loop to exit without checking for unsaved
// changes.
func (app *Application) Stop() {
	if b := app.screen(); b != nil {
		b.Interrupt(quitRequest{})
	}
}

// handleBackendEvent processes one event. ErrQuit ends the loop.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev.Key)
	case backend.EventMouse:
		app.handleMouseEvent(ev.MouseX, ev.MouseY)
	case backend.EventResize:
		app.handleResize(ev.Height)
	case backend.EventInterrupt:
		switch ev.Data.(type) {
		case configReload:
			app.reloadConfig()
		case quitRequest:
			return ErrQuit
		}
	}
	return nil
}

func (app *Application) handleKeyEvent(ev key.Event) error {
	quitArmed := app.quitArmed
	app.quitArmed = false

	switch {
	case ev.Equals(keyQuit):
		err := app.Quit(quitArmed)
		if errors.Is(err, ErrUnsavedChanges) {
			app.quitArmed = true
			app.setMessage("unsaved changes: press Ctrl+Q again to quit")
			return nil
		}
		return err
	case ev.Equals(keySave):
		if err := app.SaveActive(); err != nil {
			app.setMessage(err.Error())
		} else {
			app.setMessage("saved")
		}
		return nil
	case ev.Equals(keyNext):
		app.documents.Next()
		return nil
	}

	doc := app.documents.Active()
	if doc == nil {
		return nil
	}
	if err := doc.Dispatch(ev); err != nil {
		app.setMessage(err.Error())
	}
	return nil
}

// handleMouseEvent places the caret under a click. The controller snaps
// it when snap-on-click is enabled.
func (app *Application) handleMouseEvent(x, y int) {
	doc := app.documents.Active()
	if doc == nil {
		return
	}
	_, height := app.backend.Size()
	if y >= height-1 {
		return
	}
	p := app.renderer.PositionAt(doc.Lines(), x, y, doc.IndentConfig().IndentSize)
	doc.MoveCaret(p)
}

func (app *Application) handleResize(height int) {
	for _, doc := range app.documents.All() {
		doc.SetPageSize(max(height-2, 1))
	}
}

// render draws the active document.
func (app *Application) render() {
	doc := app.documents.Active()
	if doc == nil {
		return
	}
	app.renderer.Render(app.frame(doc))
}

// frame builds the renderer input for doc.
func (app *Application) frame(doc *Document) renderer.Frame {
	indent := doc.IndentConfig()
	f := renderer.Frame{
		Lines:     doc.Lines(),
		Caret:     doc.Caret(),
		Selection: doc.Selection(),
		TabSize:   indent.IndentSize,
		Status:    app.status(doc),
	}
	if st := doc.Completion.State(); st.Active {
		f.Popup = make([]string, len(st.Items))
		for i, it := range st.Items {
			f.Popup[i] = it.Label
		}
		f.PopupSelected = st.Selected
	}
	return f
}

// status formats the status line: name, position, indentation and the
// latest message.
func (app *Application) status(doc *Document) string {
	name := doc.Name
	if doc.IsModified() {
		name += " [+]"
	}
	caret := doc.Caret()
	s := fmt.Sprintf(" %s  %d:%d", name, caret.Line+1, caret.VirtualColumn()+1)

	indent := doc.IndentConfig()
	if indent.Enabled() {
		s += fmt.Sprintf("  spaces:%d", indent.IndentSize)
	} else {
		s += "  soft tabs off"
	}
	if doc.Runner.Running() {
		s += "  [script]"
	}

	msg := app.takeMessage()
	if msg == "" {
		msg = doc.TakeMessage()
	}
	if msg != "" {
		s += "  " + msg
	}
	return s
}
