package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/softtab/internal/config"
	"github.com/dshills/softtab/internal/dispatcher"
	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/dispatcher/handlers/completion"
	"github.com/dshills/softtab/internal/dispatcher/handlers/editor"
	"github.com/dshills/softtab/internal/dispatcher/handlers/navigation"
	"github.com/dshills/softtab/internal/engine"
	"github.com/dshills/softtab/internal/engine/buffer"
	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
	"github.com/dshills/softtab/internal/plugin/lua"
	"github.com/dshills/softtab/internal/softtab"
)

// Document is an open file with its single view.
type Document struct {
	ID uuid.UUID

	// Path is the absolute file path; empty for scratch buffers.
	Path string
	// Name is the display name.
	Name string

	Engine     *engine.Engine
	Controller *softtab.Controller
	Dispatcher *dispatcher.Dispatcher
	Completion *completion.Link
	Surfaces   *Surfaces
	Runner     *lua.Runner

	indent *config.IndentSource
	editor *editor.Link
	log    *Logger

	mu      sync.Mutex
	saved   buffer.RevisionID
	message string

	closeOnce sync.Once
}

// NewDocument creates a document for path with content. Soft-tab policies
// are taken from cfg now; indentation follows cfg while the document is
// open.
func NewDocument(path string, content []byte, cfg *config.Manager, log *Logger) (*Document, error) {
	if log == nil {
		log = NullLogger
	}
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	doc := &Document{
		ID:     uuid.New(),
		Path:   path,
		Name:   name,
		Engine: engine.New(engine.WithContent(text)),
		indent: cfg.IndentSource(path),
	}
	doc.log = log.WithField("document", doc.ID.String())
	doc.saved = doc.Engine.RevisionID()

	editorSettings := cfg.Settings().Editor
	doc.Surfaces = NewSurfaces(nil)
	doc.Controller = softtab.New(doc.Engine, doc.Engine, doc.indent, doc.Surfaces,
		softtab.WithEraseGating(editorSettings.EraseGating),
		softtab.WithVerticalSnap(editorSettings.VerticalSnap),
		softtab.WithSnapOnClick(editorSettings.SnapOnClick),
		softtab.WithLogger(doc.log.WithComponent("softtab").Zap()),
	)

	doc.Completion = completion.New(doc.Engine, completion.Words)
	doc.Completion.SetObserver(func(active bool) {
		doc.Surfaces.Set(SurfaceCompletion, active)
	})

	doc.editor = editor.New(doc.Engine, doc.indentSettings)
	doc.Dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	links := []handler.Link{
		doc.Completion,
		navigation.New(doc.Controller),
		doc.editor,
	}
	for _, l := range links {
		if err := doc.Dispatcher.Append(l); err != nil {
			doc.Controller.Close()
			return nil, err
		}
	}

	doc.Runner = lua.NewRunner(doc,
		lua.WithLogger(doc.log.WithComponent("lua").Zap()),
		lua.WithSetter(cfg.Set),
	)
	doc.Surfaces.setAutomation(doc.Runner.Running)
	return doc, nil
}

// OpenDocument reads path and creates its document. A missing file opens
// an empty document that saves to path.
func OpenDocument(path string, cfg *config.Manager, log *Logger) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &OperationError{Op: "open", Target: path, Err: err}
	}
	content, err := os.ReadFile(abs)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &OperationError{Op: "open", Target: abs, Err: err}
	}
	return NewDocument(abs, content, cfg, log)
}

func (d *Document) indentSettings() (int, bool) {
	c := d.indent.IndentConfig()
	return c.IndentSize, c.ConvertTabsToSpaces
}

// IndentConfig returns the indentation currently in effect.
func (d *Document) IndentConfig() softtab.IndentConfig {
	return d.indent.IndentConfig()
}

// SetPageSize sets the number of lines PageUp and PageDown move.
func (d *Document) SetPageSize(n int) {
	d.editor.SetPageSize(n)
}

// Dispatch sends ev through the document's key chain.
func (d *Document) Dispatch(ev key.Event) error {
	res := d.Dispatcher.Dispatch(ev)
	if res.Message != "" {
		d.setMessage(res.Message)
	}
	if res.Status == handler.StatusError {
		d.log.Debug("key %s failed: %v", ev, res.Error)
		return res.Error
	}
	return nil
}

// Caret returns the caret position.
func (d *Document) Caret() cursor.Position { return d.Engine.Caret() }

// Selection returns the selection.
func (d *Document) Selection() cursor.Selection { return d.Engine.Selection() }

// MoveCaret places the caret and collapses the selection.
func (d *Document) MoveCaret(p cursor.Position) { d.Engine.MoveCaret(p) }

// Text returns the full content.
func (d *Document) Text() string { return d.Engine.Text() }

// Lines returns the content split into lines.
func (d *Document) Lines() []string {
	return strings.Split(d.Engine.Text(), "\n")
}

// IsScratch reports whether the document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified reports whether the content changed since the last save.
func (d *Document) IsModified() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Engine.RevisionID() != d.saved
}

// Save writes the content to the document's path.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrNoFilePath
	}
	if err := os.WriteFile(d.Path, []byte(d.Engine.Text()), 0o644); err != nil {
		return &OperationError{Op: "save", Target: d.Path, Err: err}
	}
	d.mu.Lock()
	d.saved = d.Engine.RevisionID()
	d.mu.Unlock()
	d.log.Info("saved %s", d.Path)
	return nil
}

// TakeMessage returns and clears the last status message.
func (d *Document) TakeMessage() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	msg := d.message
	d.message = ""
	return msg
}

func (d *Document) setMessage(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.message = msg
}

// Close detaches the controller and releases the script state.
func (d *Document) Close() {
	d.closeOnce.Do(func() {
		d.Controller.Close()
		d.Runner.Close()
		if m := d.Dispatcher.Metrics(); m != nil {
			for _, lm := range m.Links() {
				d.log.Debug("link %s: handled=%d forwarded=%d errors=%d panics=%d",
					lm.Name, lm.Handled, lm.Forwarded, lm.Errors, lm.Panics)
			}
		}
	})
}

// DocumentManager tracks open documents in open order.
type DocumentManager struct {
	mu     sync.RWMutex
	docs   []*Document
	active *Document
}

// NewDocumentManager creates an empty manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{}
}

// Add registers doc and makes it active.
func (dm *DocumentManager) Add(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.docs = append(dm.docs, doc)
	dm.active = doc
}

// FindByPath returns the open document for an absolute path.
func (dm *DocumentManager) FindByPath(path string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, d := range dm.docs {
		if d.Path != "" && d.Path == path {
			return d, true
		}
	}
	return nil, false
}

// Get returns the document with id.
func (dm *DocumentManager) Get(id uuid.UUID) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, d := range dm.docs {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Active returns the active document, or nil.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive activates the document with id.
func (dm *DocumentManager) SetActive(id uuid.UUID) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, d := range dm.docs {
		if d.ID == id {
			dm.active = d
			return nil
		}
	}
	return ErrDocumentNotFound
}

// Next activates the document after the active one, wrapping around.
func (dm *DocumentManager) Next() *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if len(dm.docs) == 0 {
		return nil
	}
	i := dm.indexLocked(dm.active)
	dm.active = dm.docs[(i+1)%len(dm.docs)]
	return dm.active
}

// Remove closes and forgets the document with id. The following document
// becomes active.
func (dm *DocumentManager) Remove(id uuid.UUID) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for i, d := range dm.docs {
		if d.ID != id {
			continue
		}
		d.Close()
		dm.docs = append(dm.docs[:i], dm.docs[i+1:]...)
		if dm.active == d {
			dm.active = nil
			if len(dm.docs) > 0 {
				dm.active = dm.docs[min(i, len(dm.docs)-1)]
			}
		}
		return nil
	}
	return ErrDocumentNotFound
}

// All returns the documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make([]*Document, len(dm.docs))
	copy(out, dm.docs)
	return out
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.docs)
}

// HasModified reports whether any document has unsaved changes.
func (dm *DocumentManager) HasModified() bool {
	for _, d := range dm.All() {
		if d.IsModified() {
			return true
		}
	}
	return false
}

// CloseAll closes every document.
func (dm *DocumentManager) CloseAll() {
	dm.mu.Lock()
	docs := dm.docs
	dm.docs = nil
	dm.active = nil
	dm.mu.Unlock()
	for _, d := range docs {
		d.Close()
	}
}

func (dm *DocumentManager) indexLocked(doc *Document) int {
	for i, d := range dm.docs {
		if d == doc {
			return i
		}
	}
	return -1
}
