package softtab

import (
	"testing"

	"github.com/dshills/softtab/internal/engine/cursor"
)

func TestBackspaceEightSpacesBothPolicies(t *testing.T) {
	for _, g := range []EraseGating{RunGating, MultipleGating} {
		t.Run(g.String(), func(t *testing.T) {
			v := newView(t, "        bar", cursor.At(0, 8), WithEraseGating(g))

			if res := v.c.Exec(Keystroke{Command: CmdBackspace}); res != Handled {
				t.Fatalf("Backspace = %v, want handled", res)
			}
			v.wantText("    bar")
			v.wantCaret(cursor.At(0, 4))
		})
	}
}

func TestBackspaceGatingIsDistinguishable(t *testing.T) {
	run := newView(t, "ab  ", cursor.At(0, 4), WithEraseGating(RunGating))
	if res := run.c.Exec(Keystroke{Command: CmdBackspace}); res != Handled {
		t.Fatalf("run gating: Backspace = %v, want handled", res)
	}
	run.wantText("ab")
	run.wantCaret(cursor.At(0, 2))

	multiple := newView(t, "ab  ", cursor.At(0, 4), WithEraseGating(MultipleGating))
	if res := multiple.c.Exec(Keystroke{Command: CmdBackspace}); res != Unhandled {
		t.Fatalf("multiple gating: Backspace = %v, want unhandled", res)
	}
	multiple.wantText("ab  ")
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     cursor.Position
		want      Result
		wantText  string
		wantCaret cursor.Position
	}{
		{"partial unit", "      x", cursor.At(0, 6), Handled, "    x", cursor.At(0, 4)},
		{"single space", " x", cursor.At(0, 1), Unhandled, " x", cursor.At(0, 1)},
		{"line start", "    x", cursor.At(0, 0), Unhandled, "    x", cursor.At(0, 0)},
		{"inside code", "  code", cursor.At(0, 4), Unhandled, "  code", cursor.At(0, 4)},
		{"stops at code", "ab ", cursor.At(0, 3), Unhandled, "ab ", cursor.At(0, 3)},
		{"second line", "a\n        b", cursor.At(1, 8), Handled, "a\n    b", cursor.At(1, 4)},
		{"virtual space", "ab", virtual(0, 2, 6), Handled, "ab    ", cursor.At(0, 4)},
		{"virtual space on empty line", "", virtual(0, 0, 4), Handled, "", cursor.At(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, tt.text, tt.caret)

			if res := v.c.Exec(Keystroke{Command: CmdBackspace}); res != tt.want {
				t.Errorf("Backspace = %v, want %v", res, tt.want)
			}
			v.wantText(tt.wantText)
			v.wantCaret(tt.wantCaret)
		})
	}
}

func TestBackspaceWithSelectionPassesThrough(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 8))
	v.e.Select(cursor.NewSelection(cursor.At(0, 4), cursor.At(0, 8)))

	if res := v.c.Exec(Keystroke{Command: CmdBackspace}); res != Unhandled {
		t.Errorf("Backspace = %v, want unhandled", res)
	}
	v.wantText("        x")
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     cursor.Position
		gating    EraseGating
		want      Result
		wantText  string
		wantCaret cursor.Position
	}{
		{"whole unit", "        x", cursor.At(0, 0), RunGating, Handled, "    x", cursor.At(0, 0)},
		{"to next stop", "        x", cursor.At(0, 2), RunGating, Handled, "      x", cursor.At(0, 2)},
		{"partial unit gated", "        x", cursor.At(0, 2), MultipleGating, Unhandled, "        x", cursor.At(0, 2)},
		{"before code", "    x", cursor.At(0, 4), RunGating, Unhandled, "    x", cursor.At(0, 4)},
		{"single space", "   x", cursor.At(0, 2), RunGating, Unhandled, "   x", cursor.At(0, 2)},
		{"trailing run", "x   ", cursor.At(0, 1), RunGating, Handled, "x", cursor.At(0, 1)},
		{"line end", "x\ny", cursor.At(0, 1), RunGating, Unhandled, "x\ny", cursor.At(0, 1)},
		{"virtual space", "ab", virtual(0, 2, 2), RunGating, Unhandled, "ab", virtual(0, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, tt.text, tt.caret, WithEraseGating(tt.gating))

			if res := v.c.Exec(Keystroke{Command: CmdDelete}); res != tt.want {
				t.Errorf("Delete = %v, want %v", res, tt.want)
			}
			v.wantText(tt.wantText)
			v.wantCaret(tt.wantCaret)
		})
	}
}

func TestEraseNeverRemovesCode(t *testing.T) {
	lines := []string{"    a  b    ", "  x ", "ab      ", "      ", "a b c"}

	for _, text := range lines {
		for col := 0; col <= len(text); col++ {
			for _, cmd := range []Command{CmdBackspace, CmdDelete} {
				v := newView(t, text, cursor.At(0, col))
				v.c.Exec(Keystroke{Command: cmd})

				got := v.e.Text()
				if stripSpaces(got) != stripSpaces(text) {
					t.Errorf("%v at %d on %q removed code: %q", cmd, col, text, got)
				}
				if removed := len(text) - len(got); removed > 4 {
					t.Errorf("%v at %d on %q removed %d spaces", cmd, col, text, removed)
				}
			}
		}
	}
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
