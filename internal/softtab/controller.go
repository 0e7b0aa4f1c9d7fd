package softtab

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/softtab/internal/engine/cursor"
)

// CaretState is the per-view navigation state.
type CaretState struct {
	// Position is the last caret position seen by the controller.
	Position cursor.Position

	// SavedColumn is the virtual column remembered across a run of
	// vertical moves. It is meaningful only when HasSavedColumn is set.
	SavedColumn    int
	HasSavedColumn bool

	// Active is set while the configuration enables soft tabs.
	Active bool
}

// ClearSavedColumn forgets the vertical column memory.
func (s *CaretState) ClearSavedColumn() {
	s.SavedColumn = 0
	s.HasSavedColumn = false
}

// Controller routes keystrokes for one view to the navigator and eraser.
type Controller struct {
	buf  TextBuffer
	view CaretView
	cfg  ConfigSource
	sup  Suppressor

	state  CaretState
	indent IndentConfig

	nav    Navigator
	eraser Eraser

	gating      EraseGating
	snap        VerticalSnap
	snapOnClick bool
	log         *zap.Logger

	// navigating is held while the controller moves the caret itself.
	navigating bool
	closed     bool

	unsubCaret  func()
	unsubConfig func()
}

// New creates a controller bound to one view.
// A nil sup never suppresses.
func New(buf TextBuffer, view CaretView, cfg ConfigSource, sup Suppressor, opts ...Option) *Controller {
	c := &Controller{
		buf:  buf,
		view: view,
		cfg:  cfg,
		sup:  sup,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sup == nil {
		c.sup = noSuppression{}
	}

	c.nav = Navigator{
		buf:   buf,
		view:  view,
		sel:   SelectionAdjuster{view: view},
		state: &c.state,
		snap:  c.snap,
		log:   c.log,
	}
	c.eraser = Eraser{
		buf:    buf,
		view:   view,
		gating: c.gating,
		log:    c.log,
	}

	c.state.Position = view.Caret()
	c.reload()
	c.unsubCaret = view.SubscribeCaret(c.caretMoved)
	c.unsubConfig = cfg.OnChange(c.reload)
	return c
}

// Exec handles one keystroke. Unhandled means the host should apply its
// default behavior.
func (c *Controller) Exec(k Keystroke) (res Result) {
	if c.closed || c.navigating {
		return Unhandled
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("keystroke aborted",
				zap.Stringer("command", k.Command),
				zap.Error(fmt.Errorf("%w: %v", ErrHostPanic, r)))
			res = Unhandled
		}
	}()

	if c.sup.SurfaceActive() || c.sup.InAutomation() {
		c.state.ClearSavedColumn()
		return Unhandled
	}
	if !k.Command.IsVertical() {
		c.state.ClearSavedColumn()
	}
	if !c.state.Active {
		return Unhandled
	}

	defer c.hold()()

	switch k.Command {
	case CmdLeft:
		res = c.nav.Left(k.Extend)
	case CmdRight:
		res = c.nav.Right(k.Extend)
	case CmdUp:
		res = c.nav.Vertical(true, k.Extend)
	case CmdDown:
		res = c.nav.Vertical(false, k.Extend)
	case CmdBackspace:
		res = c.eraser.Backspace()
	case CmdDelete:
		res = c.eraser.Delete()
	default:
		res = Unhandled
	}

	c.state.Position = c.view.Caret()
	return res
}

// State returns a copy of the view's navigation state.
func (c *Controller) State() CaretState {
	return c.state
}

// IndentConfig returns the configuration last read from the source.
func (c *Controller) IndentConfig() IndentConfig {
	return c.indent
}

// Close detaches the controller from the view and configuration.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.unsubCaret()
	c.unsubConfig()
}

// hold acquires the navigation guard and returns its release.
func (c *Controller) hold() func() {
	c.navigating = true
	return func() { c.navigating = false }
}

// reload re-reads the indentation configuration.
func (c *Controller) reload() {
	c.indent = c.cfg.IndentConfig()
	c.state.Active = c.indent.Enabled()
	c.nav.indentSize = c.indent.IndentSize
	c.eraser.indentSize = c.indent.IndentSize

	if !c.state.Active {
		c.state.ClearSavedColumn()
	}
	c.log.Debug("indent config loaded",
		zap.Bool("convertTabsToSpaces", c.indent.ConvertTabsToSpaces),
		zap.Int("indentSize", c.indent.IndentSize),
		zap.Bool("active", c.state.Active))
}

// caretMoved observes caret moves made outside the controller.
func (c *Controller) caretMoved(_, p cursor.Position) {
	if c.navigating || c.closed {
		return
	}
	c.state.Position = p
	c.state.ClearSavedColumn()

	if c.snapOnClick && c.state.Active && !c.editing() {
		c.snapToStop(p)
	}
}

// editing reports whether the current caret move comes from a text edit.
func (c *Controller) editing() bool {
	if r, ok := c.view.(EditReporter); ok {
		return r.Editing()
	}
	return false
}

// snapToStop moves a caret resting inside leading indentation to the
// nearest stop. A selection keeps its anchor.
func (c *Controller) snapToStop(p cursor.Position) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("snap aborted", zap.Error(fmt.Errorf("%w: %v", ErrHostPanic, r)))
		}
	}()

	if c.sup.SurfaceActive() || c.sup.InAutomation() || p.InVirtualSpace() {
		return
	}
	line, err := lineAt(c.buf, p.Line)
	if err != nil {
		return
	}

	m := NewColumnModel(line)
	col := m.ColumnOf(p)
	if col%c.indent.IndentSize == 0 || col >= m.IndentEnd() {
		return
	}
	stop := NearestStop(col, c.indent.IndentSize)
	if stop > m.IndentEnd() {
		return
	}

	defer c.hold()()
	sel := c.view.Selection()
	SelectionAdjuster{view: c.view}.Apply(!sel.IsEmpty(), sel.Anchor, cursor.At(p.Line, stop))
	c.state.Position = c.view.Caret()
}
