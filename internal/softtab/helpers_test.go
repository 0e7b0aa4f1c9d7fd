package softtab

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/softtab/internal/engine"
	"github.com/dshills/softtab/internal/engine/cursor"
)

var spaces4 = StaticConfig{ConvertTabsToSpaces: true, IndentSize: 4}

type surfaces struct {
	popup      bool
	automation bool
}

func (s *surfaces) SurfaceActive() bool { return s.popup }
func (s *surfaces) InAutomation() bool  { return s.automation }

type liveConfig struct {
	cfg  IndentConfig
	subs map[int]func()
	next int
}

func newLiveConfig(cfg IndentConfig) *liveConfig {
	return &liveConfig{cfg: cfg, subs: make(map[int]func())}
}

func (l *liveConfig) IndentConfig() IndentConfig { return l.cfg }

func (l *liveConfig) OnChange(fn func()) func() {
	id := l.next
	l.next++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *liveConfig) set(cfg IndentConfig) {
	l.cfg = cfg
	for _, fn := range l.subs {
		fn()
	}
}

// view bundles an engine with a controller for tests.
type view struct {
	t *testing.T
	e *engine.Engine
	c *Controller
}

func newView(t *testing.T, text string, caret cursor.Position, opts ...Option) *view {
	t.Helper()
	return newViewWith(t, text, caret, spaces4, nil, opts...)
}

func newViewWith(t *testing.T, text string, caret cursor.Position, cfg ConfigSource, sup Suppressor, opts ...Option) *view {
	t.Helper()
	e := engine.New(engine.WithContent(text))
	e.MoveCaret(caret)
	c := New(e, e, cfg, sup, opts...)
	t.Cleanup(c.Close)
	return &view{t: t, e: e, c: c}
}

// press runs a keystroke and falls back to a minimal host default when
// the controller does not handle it.
func (v *view) press(cmd Command, extend bool) Result {
	v.t.Helper()
	res := v.c.Exec(Keystroke{Command: cmd, Extend: extend})
	if res == Unhandled {
		hostDefault(v.e, cmd, extend)
	}
	return res
}

func hostDefault(e *engine.Engine, cmd Command, extend bool) {
	sel := e.Selection()
	p := e.Caret()
	move := func(to cursor.Position) {
		if extend {
			e.Select(cursor.NewSelection(sel.Anchor, to))
		} else {
			e.MoveCaret(to)
		}
	}

	switch cmd {
	case CmdLeft:
		switch {
		case p.VirtualSpaces > 0:
			move(cursor.Position{Line: p.Line, Column: p.Column, VirtualSpaces: p.VirtualSpaces - 1})
		case p.Column > 0:
			move(cursor.At(p.Line, p.Column-1))
		}
	case CmdRight:
		move(cursor.At(p.Line, p.Column+1))
	case CmdBackspace:
		if p.Column > 0 {
			start, _ := e.LineStartOffset(p.Line)
			_ = e.Delete(start+p.Column-1, start+p.Column)
		}
	case CmdDelete:
		start, _ := e.LineStartOffset(p.Line)
		if start+p.Column < e.Len() {
			_ = e.Delete(start+p.Column, start+p.Column+1)
		}
	}
}

func (v *view) wantCaret(want cursor.Position) {
	v.t.Helper()
	if diff := cmp.Diff(want, v.e.Caret()); diff != "" {
		v.t.Errorf("caret mismatch (-want +got):\n%s", diff)
	}
}

func (v *view) wantText(want string) {
	v.t.Helper()
	if got := v.e.Text(); got != want {
		v.t.Errorf("text = %q, want %q", got, want)
	}
}

func virtual(line, column, spaces int) cursor.Position {
	return cursor.Position{Line: line, Column: column, VirtualSpaces: spaces}
}
