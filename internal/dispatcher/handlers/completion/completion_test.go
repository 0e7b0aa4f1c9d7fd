package completion

import (
	"testing"

	"github.com/dshills/softtab/internal/engine"
	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
)

func newLink(t *testing.T, text string, caret cursor.Position) (*engine.Engine, *Link) {
	t.Helper()
	e := engine.New(engine.WithContent(text))
	e.MoveCaret(caret)
	return e, New(e, nil)
}

func press(t *testing.T, l *Link, spec string) bool {
	t.Helper()
	return l.Handle(key.MustParse(spec)).IsHandled()
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTriggerAndAccept(t *testing.T) {
	e, l := newLink(t, "foo fooBar foobaz\nfo", cursor.At(1, 2))

	if !press(t, l, "C-Space") {
		t.Fatal("trigger not handled")
	}
	if !l.Active() {
		t.Fatal("popup not open")
	}
	if got, want := labels(l.State().Items), []string{"foo", "fooBar", "foobaz"}; !equal(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}

	if !press(t, l, "Enter") {
		t.Fatal("accept not handled")
	}
	if got := e.Text(); got != "foo fooBar foobaz\nfoo" {
		t.Errorf("text = %q", got)
	}
	if got := e.Caret(); got != cursor.At(1, 3) {
		t.Errorf("caret = %v, want (1:3)", got)
	}
	if l.Active() {
		t.Error("popup still open after accept")
	}
}

func TestNavigateWraps(t *testing.T) {
	e, l := newLink(t, "alpha alps\nal", cursor.At(1, 2))

	press(t, l, "C-Space")
	press(t, l, "Up")
	if got := l.State().Selected; got != 1 {
		t.Fatalf("Selected = %d, want 1", got)
	}
	press(t, l, "Down")
	if got := l.State().Selected; got != 0 {
		t.Fatalf("Selected = %d, want 0", got)
	}
	press(t, l, "Down")
	press(t, l, "Tab")

	if got := e.Text(); got != "alpha alps\nalps" {
		t.Errorf("text = %q", got)
	}
}

func TestTypingNarrows(t *testing.T) {
	e, l := newLink(t, "foo fooBar foobaz\nfo", cursor.At(1, 2))
	press(t, l, "C-Space")

	// Word characters reach the buffer.
	if press(t, l, "o") {
		t.Fatal("word character should be forwarded")
	}
	if err := e.Insert(20, "o"); err != nil {
		t.Fatal(err)
	}

	press(t, l, "Down")
	s := l.State()
	if got, want := labels(s.Items), []string{"fooBar", "foobaz"}; !equal(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	if s.Prefix != "foo" || s.Selected != 1 {
		t.Errorf("state = %+v", s)
	}
}

func TestCaretLeavingWordCloses(t *testing.T) {
	e, l := newLink(t, "foo fooBar\n  fo", cursor.At(1, 4))
	press(t, l, "C-Space")

	e.MoveCaret(cursor.At(1, 1))
	press(t, l, "Down")
	if l.Active() {
		t.Error("popup open after caret left the word")
	}
}

func TestObserverAndClose(t *testing.T) {
	_, l := newLink(t, "foo fooBar\nfo", cursor.At(1, 2))

	var events []bool
	l.SetObserver(func(active bool) { events = append(events, active) })

	press(t, l, "C-Space")
	if !press(t, l, "Esc") {
		t.Error("Escape not handled while open")
	}
	if press(t, l, "Esc") {
		t.Error("Escape handled while closed")
	}

	press(t, l, "C-Space")
	if press(t, l, "Left") {
		t.Error("Left should close and forward")
	}
	press(t, l, "C-Space")
	if press(t, l, "(") {
		t.Error("non-word character should close and forward")
	}

	want := []bool{true, false, true, false, true, false}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestTriggerWithoutMatches(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret cursor.Position
	}{
		{"no prefix", "foo ", cursor.At(0, 4)},
		{"no matches", "xyz", cursor.At(0, 3)},
		{"virtual space", "foo", cursor.Position{Line: 0, Column: 3, VirtualSpaces: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, l := newLink(t, tt.text, tt.caret)
			press(t, l, "C-Space")
			if l.Active() {
				t.Error("popup opened")
			}
		})
	}
}

func TestClosedLinkForwards(t *testing.T) {
	_, l := newLink(t, "foo", cursor.At(0, 3))
	for _, spec := range []string{"Up", "Enter", "Tab", "a", "BS"} {
		if press(t, l, spec) {
			t.Errorf("%s handled while closed", spec)
		}
	}
}

func TestFindWordsWithPrefix(t *testing.T) {
	got := findWordsWithPrefix("Print printf print_x pr\nprintf", "pr")
	want := []string{"Print", "printf", "print_x"}
	if !equal(got, want) {
		t.Errorf("findWordsWithPrefix = %v, want %v", got, want)
	}
}
