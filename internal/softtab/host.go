package softtab

import "github.com/dshills/softtab/internal/engine/cursor"

// TextBuffer is the buffer capability the engine edits through.
// Lookups fail with an error for out-of-range lines or offsets.
type TextBuffer interface {
	LineCount() int
	Len() int
	LineText(line int) (string, error)
	LineStartOffset(line int) (int, error)
	LineFromOffset(offset int) (int, error)
	Insert(offset int, text string) error
	Delete(start, end int) error
}

// CaretView is the caret and selection capability of one view.
type CaretView interface {
	Caret() cursor.Position
	Selection() cursor.Selection

	// MoveCaret places the caret and collapses the selection.
	MoveCaret(p cursor.Position)

	// Select sets the selection; the caret follows its active end.
	Select(sel cursor.Selection)

	// EnsureVisible scrolls the caret into view.
	EnsureVisible()

	// SubscribeCaret registers fn for caret moves and returns an
	// unsubscribe function.
	SubscribeCaret(fn func(old, new cursor.Position)) func()
}

// EditReporter is implemented by views that can tell caret moves caused
// by text edits apart from direct placement.
type EditReporter interface {
	Editing() bool
}

// IndentConfig holds the indentation options the engine depends on.
type IndentConfig struct {
	ConvertTabsToSpaces bool
	IndentSize          int
}

// Enabled reports whether soft-tab handling applies.
// A non-positive indent size disables the engine.
func (c IndentConfig) Enabled() bool {
	return c.ConvertTabsToSpaces && c.IndentSize > 0
}

// ConfigSource supplies IndentConfig and reports when it changes.
type ConfigSource interface {
	IndentConfig() IndentConfig

	// OnChange registers fn to run after the configuration changes and
	// returns an unsubscribe function.
	OnChange(fn func()) func()
}

// Suppressor reports host states in which no key is intercepted.
type Suppressor interface {
	// SurfaceActive reports whether a completion, signature help or
	// similar popup currently owns the keyboard.
	SurfaceActive() bool

	// InAutomation reports whether keys come from a script.
	InAutomation() bool
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig IndentConfig

// IndentConfig returns the fixed configuration.
func (s StaticConfig) IndentConfig() IndentConfig { return IndentConfig(s) }

// OnChange never fires.
func (s StaticConfig) OnChange(func()) func() { return func() {} }

type noSuppression struct{}

func (noSuppression) SurfaceActive() bool { return false }
func (noSuppression) InAutomation() bool  { return false }
