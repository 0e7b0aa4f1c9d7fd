package completion

import (
	"fmt"
	"strings"

	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
)

// LinkName is the name of the completion link in a dispatch chain.
const LinkName = "completion"

// Kind indicates the type of completion item.
type Kind int

const (
	KindText Kind = iota
	KindKeyword
	KindSnippet
)

// Item is a single completion suggestion.
type Item struct {
	// Label is the display text.
	Label string
	// Kind indicates the type of completion.
	Kind Kind
	// Detail provides additional information.
	Detail string
	// InsertText is the text to insert, if different from Label.
	InsertText string
}

func (it Item) text() string {
	if it.InsertText != "" {
		return it.InsertText
	}
	return it.Label
}

// Provider supplies completion items for a prefix.
type Provider interface {
	Complete(text, prefix string) []Item
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(text, prefix string) []Item

// Complete implements Provider.
func (f ProviderFunc) Complete(text, prefix string) []Item { return f(text, prefix) }

// Words completes from the words already present in the buffer.
var Words Provider = ProviderFunc(func(text, prefix string) []Item {
	words := findWordsWithPrefix(text, prefix)
	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = Item{Label: w, Kind: KindText}
	}
	return items
})

// View is the editing surface the popup completes into.
type View interface {
	Text() string
	LineStartOffset(line int) (int, error)
	Insert(offset int, text string) error
	Delete(start, end int) error
	Caret() cursor.Position
	Selection() cursor.Selection
}

// State holds the current completion session.
type State struct {
	// Items holds the filtered completion items.
	Items []Item
	// Selected is the currently selected index.
	Selected int
	// Prefix is the text being completed.
	Prefix string
	// StartOffset is where the prefix begins.
	StartOffset int
	// Active indicates an open popup.
	Active bool
}

// Link implements the completion popup.
type Link struct {
	view     View
	provider Provider
	state    State
	observer func(active bool)
}

// New creates a completion link. A nil provider completes buffer words.
func New(view View, provider Provider) *Link {
	if provider == nil {
		provider = Words
	}
	return &Link{view: view, provider: provider}
}

// Name implements handler.Link.
func (l *Link) Name() string {
	return LinkName
}

// SetObserver registers fn to be called when the popup opens or closes.
func (l *Link) SetObserver(fn func(active bool)) {
	l.observer = fn
}

// Active reports whether the popup is open.
func (l *Link) Active() bool {
	return l.state.Active
}

// State returns a copy of the session state.
func (l *Link) State() State {
	s := l.state
	s.Items = append([]Item(nil), l.state.Items...)
	return s
}

// Handle implements handler.Link.
func (l *Link) Handle(ev key.Event) handler.Result {
	if !l.state.Active {
		if isTrigger(ev) {
			return l.trigger()
		}
		return handler.Forward()
	}

	switch {
	case isTrigger(ev):
		return l.trigger()
	case ev.Modifiers != key.ModNone && !ev.IsChar():
		l.close()
		return handler.Forward()
	}

	switch ev.Key {
	case key.KeyUp:
		return l.navigate(-1)
	case key.KeyDown:
		return l.navigate(1)
	case key.KeyEnter, key.KeyTab:
		return l.accept()
	case key.KeyEscape:
		l.close()
		return handler.Handled().WithRedraw()
	case key.KeyBackspace:
		return handler.Forward()
	case key.KeyRune:
		if !isWordChar(ev.Rune) {
			l.close()
		}
		return handler.Forward()
	}

	l.close()
	return handler.Forward()
}

func isTrigger(ev key.Event) bool {
	return ev.Key == key.KeyRune && ev.Rune == ' ' && ev.Modifiers == key.ModCtrl
}

// trigger opens the popup for the word before the caret.
func (l *Link) trigger() handler.Result {
	if !l.view.Selection().IsEmpty() {
		return handler.Forward()
	}

	text, offset, ok := l.caretOffset()
	if !ok {
		return handler.Forward()
	}

	start := offset
	for start > 0 && isWordChar(rune(text[start-1])) {
		start--
	}
	prefix := text[start:offset]
	if prefix == "" {
		return handler.Handled().WithMessage("completion: no prefix")
	}

	items := l.provider.Complete(text, prefix)
	if len(items) == 0 {
		l.close()
		return handler.Handled().WithMessage("completion: no matches")
	}

	l.state = State{
		Items:       items,
		Prefix:      prefix,
		StartOffset: start,
		Active:      true,
	}
	l.changed(true)

	return handler.Handled().
		WithRedraw().
		WithMessage(fmt.Sprintf("completion: %d items", len(items)))
}

// refresh narrows the items to the prefix now before the caret.
// It closes the popup when the caret has left the word.
func (l *Link) refresh() bool {
	text, offset, ok := l.caretOffset()
	if !ok || offset < l.state.StartOffset {
		l.close()
		return false
	}

	prefix := text[l.state.StartOffset:offset]
	if prefix == l.state.Prefix {
		return true
	}
	for _, r := range prefix {
		if !isWordChar(r) {
			l.close()
			return false
		}
	}

	items := l.provider.Complete(text, prefix)
	if prefix == "" || len(items) == 0 {
		l.close()
		return false
	}
	l.state.Items = items
	l.state.Prefix = prefix
	l.state.Selected = 0
	return true
}

// navigate moves the selection in the list.
func (l *Link) navigate(delta int) handler.Result {
	if !l.refresh() {
		return handler.Handled().WithRedraw()
	}

	n := len(l.state.Items)
	l.state.Selected = ((l.state.Selected+delta)%n + n) % n
	return handler.Handled().WithRedraw()
}

// accept replaces the prefix with the selected item.
func (l *Link) accept() handler.Result {
	if !l.refresh() {
		return handler.Forward()
	}

	_, end, _ := l.caretOffset()
	start := l.state.StartOffset
	insert := l.state.Items[l.state.Selected].text()
	l.close()

	if err := l.view.Delete(start, end); err != nil {
		return handler.Error(err)
	}
	if err := l.view.Insert(start, insert); err != nil {
		return handler.Error(err)
	}
	return handler.Handled().WithRedraw()
}

func (l *Link) close() {
	if !l.state.Active {
		return
	}
	l.state = State{}
	l.changed(false)
}

func (l *Link) changed(active bool) {
	if l.observer != nil {
		l.observer(active)
	}
}

func (l *Link) caretOffset() (string, int, bool) {
	p := l.view.Caret()
	if p.InVirtualSpace() {
		return "", 0, false
	}
	start, err := l.view.LineStartOffset(p.Line)
	if err != nil {
		return "", 0, false
	}
	text := l.view.Text()
	offset := start + p.Column
	if offset > len(text) {
		return "", 0, false
	}
	return text, offset, true
}

// findWordsWithPrefix finds all words in text that extend prefix.
func findWordsWithPrefix(text, prefix string) []string {
	seen := make(map[string]bool)
	var words []string

	i := 0
	for i < len(text) {
		for i < len(text) && !isWordChar(rune(text[i])) {
			i++
		}

		start := i
		for i < len(text) && isWordChar(rune(text[i])) {
			i++
		}

		if start < i {
			word := text[start:i]
			if len(word) > len(prefix) && hasPrefix(word, prefix) && !seen[word] {
				seen[word] = true
				words = append(words, word)
			}
		}
	}

	return words
}

// hasPrefix reports whether s starts with prefix, ignoring case.
func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}
