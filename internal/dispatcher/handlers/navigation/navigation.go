// Package navigation connects the soft-tab controller to a dispatch chain.
package navigation

import (
	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/input/key"
	"github.com/dshills/softtab/internal/softtab"
)

// LinkName is the name of the navigation link in a dispatch chain.
const LinkName = "softtab"

// Executor runs one keystroke. *softtab.Controller implements it.
type Executor interface {
	Exec(k softtab.Keystroke) softtab.Result
}

// Link forwards every key the controller does not handle.
type Link struct {
	ctl Executor
}

// New creates a navigation link.
func New(ctl Executor) *Link {
	return &Link{ctl: ctl}
}

// Name implements handler.Link.
func (l *Link) Name() string {
	return LinkName
}

// Handle implements handler.Link.
// Every key reaches the controller so that non-navigation keys end a run
// of vertical moves.
func (l *Link) Handle(ev key.Event) handler.Result {
	if l.ctl.Exec(Keystroke(ev)) == softtab.Handled {
		return handler.Handled().WithRedraw()
	}
	return handler.Forward()
}

// Keystroke maps a key event to the controller's command set.
// Arrows accept Shift only; Backspace and Delete accept no modifiers.
func Keystroke(ev key.Event) softtab.Keystroke {
	mods := ev.Modifiers
	shift := mods.HasShift()

	if mods.Without(key.ModShift) == key.ModNone {
		switch ev.Key {
		case key.KeyLeft:
			return softtab.Keystroke{Command: softtab.CmdLeft, Extend: shift}
		case key.KeyRight:
			return softtab.Keystroke{Command: softtab.CmdRight, Extend: shift}
		case key.KeyUp:
			return softtab.Keystroke{Command: softtab.CmdUp, Extend: shift}
		case key.KeyDown:
			return softtab.Keystroke{Command: softtab.CmdDown, Extend: shift}
		}
	}

	if mods == key.ModNone {
		switch ev.Key {
		case key.KeyBackspace:
			return softtab.Keystroke{Command: softtab.CmdBackspace}
		case key.KeyDelete:
			return softtab.Keystroke{Command: softtab.CmdDelete}
		}
	}
	return softtab.Keystroke{Command: softtab.CmdOther}
}
