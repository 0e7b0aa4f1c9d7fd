package engine

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/softtab/internal/engine/buffer"
	"github.com/dshills/softtab/internal/engine/cursor"
)

// CaretListener is called after the caret moves.
type CaretListener = func(old, new cursor.Position)

// Engine is the editing facade for one view.
// It combines a buffer with the view's caret and selection.
type Engine struct {
	mu sync.RWMutex

	buf *buffer.Buffer
	sel cursor.Selection

	listeners    map[uint64]CaretListener
	nextListener uint64

	onReveal func(cursor.Position)
	modified bool

	// editing counts caret notifications caused by Insert or Delete.
	editing atomic.Int32

	// Configuration
	readOnly    bool
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{listeners: make(map[uint64]CaretListener)}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = buffer.NewBufferFromString(e.initContent)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	buf, err := buffer.NewBufferFromReader(r)
	if err != nil {
		return nil, err
	}
	e := &Engine{listeners: make(map[uint64]CaretListener)}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = buf
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() int {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(line int) (string, error) {
	return e.buf.LineText(line)
}

// LineStartOffset returns the byte offset of the start of a line.
func (e *Engine) LineStartOffset(line int) (int, error) {
	return e.buf.LineStartOffset(line)
}

// LineFromOffset returns the line containing offset.
func (e *Engine) LineFromOffset(offset int) (int, error) {
	return e.buf.LineFromOffset(offset)
}

// ByteAt returns the byte at the given offset.
func (e *Engine) ByteAt(offset int) (byte, bool) {
	return e.buf.ByteAt(offset)
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() buffer.RevisionID {
	return e.buf.RevisionID()
}

// IsModified reports whether the buffer was edited since creation.
func (e *Engine) IsModified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modified
}

// IsReadOnly reports whether edits are rejected.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at the given offset and shifts the caret and
// selection past it when they sit at or after the insertion point.
func (e *Engine) Insert(offset int, text string) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	before := e.sel
	anchor := e.offsetOf(before.Anchor)
	active := e.offsetOf(before.Active)
	size := e.buf.Len()
	if err := e.buf.Insert(offset, text); err != nil {
		e.mu.Unlock()
		return err
	}
	e.modified = true
	n := e.buf.Len() - size
	e.sel = cursor.Selection{
		Anchor: e.shiftInsert(before.Anchor, anchor, offset, n),
		Active: e.shiftInsert(before.Active, active, offset, n),
	}
	after := e.sel.Active
	e.mu.Unlock()

	e.notifyEdit(before.Active, after)
	return nil
}

// Delete removes text in [start, end) and pulls the caret and selection
// back accordingly.
func (e *Engine) Delete(start, end int) error {
	if e.readOnly {
		return ErrReadOnly
	}

	e.mu.Lock()
	before := e.sel
	anchor := e.offsetOf(before.Anchor)
	active := e.offsetOf(before.Active)
	if err := e.buf.Delete(start, end); err != nil {
		e.mu.Unlock()
		return err
	}
	e.modified = true
	e.sel = cursor.Selection{
		Anchor: e.shiftDelete(before.Anchor, anchor, start, end),
		Active: e.shiftDelete(before.Active, active, start, end),
	}
	after := e.sel.Active
	e.mu.Unlock()

	e.notifyEdit(before.Active, after)
	return nil
}

// shiftInsert transforms a position for an insertion of n bytes at offset.
// Positions before the insertion are unchanged; shifted positions lose
// their virtual space. Caller must hold the write lock.
func (e *Engine) shiftInsert(p cursor.Position, po, offset, n int) cursor.Position {
	if po < offset {
		return p
	}
	return e.positionOf(po + n)
}

// shiftDelete transforms a position for a deletion of [start, end).
// Caller must hold the write lock.
func (e *Engine) shiftDelete(p cursor.Position, po, start, end int) cursor.Position {
	switch {
	case po <= start:
		return p
	case po >= end:
		return e.positionOf(po - (end - start))
	default:
		return e.positionOf(start)
	}
}

// offsetOf returns the physical offset of p. Caller must hold a lock.
func (e *Engine) offsetOf(p cursor.Position) int {
	off, err := e.buf.PointToOffset(buffer.Point{Line: p.Line, Column: p.Column})
	if err != nil {
		return 0
	}
	return off
}

// positionOf converts an offset into a position. Caller must hold a lock.
func (e *Engine) positionOf(offset int) cursor.Position {
	pt, err := e.buf.OffsetToPoint(offset)
	if err != nil {
		return cursor.Position{}
	}
	return cursor.At(pt.Line, pt.Column)
}

// ============================================================================
// Caret and Selection
// ============================================================================

// Caret returns the caret position (the active end of the selection).
func (e *Engine) Caret() cursor.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Active
}

// Selection returns the current selection.
func (e *Engine) Selection() cursor.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// HasSelection returns true if the selection is not empty.
func (e *Engine) HasSelection() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.sel.IsEmpty()
}

// MoveCaret moves the caret to p and collapses the selection there.
// p is normalized: lines are clamped, and a column past the end of the
// line becomes virtual space.
func (e *Engine) MoveCaret(p cursor.Position) {
	e.mu.Lock()
	old := e.sel.Active
	p = e.normalize(p)
	e.sel = cursor.NewCaretSelection(p)
	e.mu.Unlock()

	e.notify(old, p)
}

// Select sets the selection; the caret follows the active end.
func (e *Engine) Select(sel cursor.Selection) {
	e.mu.Lock()
	old := e.sel.Active
	sel = cursor.NewSelection(e.normalize(sel.Anchor), e.normalize(sel.Active))
	e.sel = sel
	e.mu.Unlock()

	e.notify(old, sel.Active)
}

// EnsureVisible asks the host view to scroll the caret into view.
func (e *Engine) EnsureVisible() {
	if e.onReveal != nil {
		e.onReveal(e.Caret())
	}
}

// SetRevealHandler replaces the EnsureVisible callback.
func (e *Engine) SetRevealHandler(fn func(cursor.Position)) {
	e.onReveal = fn
}

// SubscribeCaret registers a listener for caret moves.
// The returned function removes the listener.
func (e *Engine) SubscribeCaret(fn CaretListener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Editing reports whether the caret listeners are running for a move
// caused by Insert or Delete.
func (e *Engine) Editing() bool {
	return e.editing.Load() > 0
}

func (e *Engine) notifyEdit(old, new cursor.Position) {
	e.editing.Add(1)
	defer e.editing.Add(-1)
	e.notify(old, new)
}

// notify delivers a caret move to listeners outside the lock.
func (e *Engine) notify(old, new cursor.Position) {
	if old == new {
		return
	}

	e.mu.RLock()
	listeners := make([]CaretListener, 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(old, new)
	}
}

// normalize clamps p into the buffer. Caller must hold a lock.
func (e *Engine) normalize(p cursor.Position) cursor.Position {
	lines := e.buf.LineCount()
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= lines {
		p.Line = lines - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if p.VirtualSpaces < 0 {
		p.VirtualSpaces = 0
	}

	n, _ := e.buf.LineLen(p.Line)
	switch {
	case p.Column > n:
		p.VirtualSpaces += p.Column - n
		p.Column = n
	case p.Column < n:
		p.VirtualSpaces = 0
	}
	return p
}
