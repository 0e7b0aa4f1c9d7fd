package softtab

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/softtab/internal/engine/cursor"
)

// ============================================================================
// Horizontal
// ============================================================================

func TestRightFromInsideIndentLandsOnCode(t *testing.T) {
	v := newView(t, "    foo", cursor.At(0, 2))

	if res := v.press(CmdRight, false); res != Handled {
		t.Fatalf("first Right = %v, want handled", res)
	}
	v.wantCaret(cursor.At(0, 4))

	// Inside code the host moves one character.
	if res := v.press(CmdRight, false); res != Unhandled {
		t.Fatalf("second Right = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 5))
}

func TestLeftWalksBackByStops(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 8))

	v.press(CmdLeft, false)
	v.wantCaret(cursor.At(0, 4))
	v.press(CmdLeft, false)
	v.wantCaret(cursor.At(0, 0))

	if res := v.press(CmdLeft, false); res != Unhandled {
		t.Errorf("Left at line start = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 0))
}

func TestLeftFromOffStop(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 6))

	if res := v.press(CmdLeft, false); res != Handled {
		t.Fatalf("Left = %v, want handled", res)
	}
	v.wantCaret(cursor.At(0, 4))
}

func TestLeftAbortsAcrossCode(t *testing.T) {
	v := newView(t, "ab   ", cursor.At(0, 5))

	if res := v.press(CmdLeft, false); res != Handled {
		t.Fatalf("Left in trailing space = %v, want handled", res)
	}
	v.wantCaret(cursor.At(0, 4))

	// The stop at 0 lies behind "ab"; the host moves one column.
	if res := v.press(CmdLeft, false); res != Unhandled {
		t.Fatalf("Left toward code = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 3))
}

func TestRightStopsBeforeCode(t *testing.T) {
	v := newView(t, "  x", cursor.At(0, 0))

	if res := v.press(CmdRight, false); res != Unhandled {
		t.Fatalf("Right = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 1))
}

func TestRightAtLineEndPassesThrough(t *testing.T) {
	v := newView(t, "    ", cursor.At(0, 0))

	v.press(CmdRight, false)
	v.wantCaret(cursor.At(0, 4))

	if res := v.c.Exec(Keystroke{Command: CmdRight}); res != Unhandled {
		t.Errorf("Right at line end = %v, want unhandled", res)
	}
}

func TestArrowsInsideCodeAreUntouched(t *testing.T) {
	v := newView(t, "  code", cursor.At(0, 4))

	if res := v.press(CmdLeft, false); res != Unhandled {
		t.Errorf("Left in code = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 3))

	if res := v.press(CmdRight, false); res != Unhandled {
		t.Errorf("Right in code = %v, want unhandled", res)
	}
	v.wantCaret(cursor.At(0, 4))
}

func TestHorizontalInVirtualSpacePassesThrough(t *testing.T) {
	v := newView(t, "", virtual(0, 0, 6))

	if res := v.c.Exec(Keystroke{Command: CmdLeft}); res != Unhandled {
		t.Errorf("Left in virtual space = %v, want unhandled", res)
	}
	if res := v.c.Exec(Keystroke{Command: CmdRight}); res != Unhandled {
		t.Errorf("Right in virtual space = %v, want unhandled", res)
	}
}

func TestHorizontalRoundTrip(t *testing.T) {
	for _, start := range []int{0, 4, 8} {
		v := newView(t, "            x", cursor.At(0, start))

		if start > 0 {
			v.press(CmdLeft, false)
			v.press(CmdRight, false)
			v.wantCaret(cursor.At(0, start))
		}
		v.press(CmdRight, false)
		v.press(CmdLeft, false)
		v.wantCaret(cursor.At(0, start))
	}
}

// ============================================================================
// Selection
// ============================================================================

func TestShiftRightExtendsOverTwoStops(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 0))

	v.press(CmdRight, true)
	v.press(CmdRight, true)

	want := cursor.NewSelection(cursor.At(0, 0), cursor.At(0, 8))
	if diff := cmp.Diff(want, v.e.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestShiftLeftShrinksSelection(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 0))

	v.press(CmdRight, true)
	v.press(CmdRight, true)
	v.press(CmdLeft, true)

	want := cursor.NewSelection(cursor.At(0, 0), cursor.At(0, 4))
	if diff := cmp.Diff(want, v.e.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainArrowCollapsesSelection(t *testing.T) {
	v := newView(t, "        x", cursor.At(0, 0))
	v.e.Select(cursor.NewSelection(cursor.At(0, 0), cursor.At(0, 4)))

	if res := v.press(CmdRight, false); res != Handled {
		t.Fatalf("Right = %v, want handled", res)
	}
	if v.e.HasSelection() {
		t.Errorf("selection should collapse, got %v", v.e.Selection())
	}
	v.wantCaret(cursor.At(0, 8))
}

// ============================================================================
// Vertical
// ============================================================================

func TestDownOntoEmptyLineKeepsVirtualColumn(t *testing.T) {
	v := newView(t, "abc\n", cursor.At(0, 3))

	if res := v.press(CmdDown, false); res != Handled {
		t.Fatalf("Down = %v, want handled", res)
	}
	v.wantCaret(virtual(1, 0, 3))

	st := v.c.State()
	if !st.HasSavedColumn || st.SavedColumn != 3 {
		t.Errorf("saved column = %d (%v), want 3", st.SavedColumn, st.HasSavedColumn)
	}
}

func TestVerticalThroughRaggedLines(t *testing.T) {
	v := newView(t, "        a\n\n  b\n        c", cursor.At(0, 8))

	v.press(CmdDown, false)
	v.wantCaret(virtual(1, 0, 8))
	v.press(CmdDown, false)
	v.wantCaret(virtual(2, 3, 5))
	v.press(CmdDown, false)
	v.wantCaret(cursor.At(3, 8))

	v.press(CmdUp, false)
	v.press(CmdUp, false)
	v.press(CmdUp, false)
	v.wantCaret(cursor.At(0, 8))
}

func TestVerticalRoundTrip(t *testing.T) {
	text := "    if x {\n        y()\n    }\n\nz"

	for line := 0; line < 4; line++ {
		for _, col := range []int{0, 4, 8, 10, 12} {
			for _, snap := range []VerticalSnap{SnapNearest, SnapExact} {
				v := newView(t, text, cursor.At(line, col), WithVerticalSnap(snap))
				start := v.e.Caret()

				v.press(CmdDown, false)
				v.press(CmdUp, false)

				if diff := cmp.Diff(start, v.e.Caret()); diff != "" {
					t.Errorf("line %d col %d %v: round trip (-want +got):\n%s", line, col, snap, diff)
				}
			}
		}
	}
}

func TestVerticalRoundTripExactFromAnyColumn(t *testing.T) {
	text := "      a\n   b\n          c"

	for col := 0; col <= 7; col++ {
		v := newView(t, text, cursor.At(0, col), WithVerticalSnap(SnapExact))
		v.press(CmdDown, false)
		v.press(CmdDown, false)
		v.press(CmdUp, false)
		v.press(CmdUp, false)
		v.wantCaret(cursor.At(0, col))
	}
}

func TestVerticalSnapPolicy(t *testing.T) {
	tests := []struct {
		name string
		text string
		col  int
		snap VerticalSnap
		want cursor.Position
	}{
		{"nearest rounds down", "abcdef\n        x", 5, SnapNearest, cursor.At(1, 4)},
		{"nearest rounds up", "abcdef\n        x", 6, SnapNearest, cursor.At(1, 8)},
		{"exact keeps column", "abcdef\n        x", 5, SnapExact, cursor.At(1, 5)},
		{"stop past indent", "abc\n   x", 3, SnapNearest, cursor.At(1, 3)},
		{"inside code", "abcdef\n  xxxxxx", 5, SnapNearest, cursor.At(1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, tt.text, cursor.At(0, tt.col), WithVerticalSnap(tt.snap))
			v.press(CmdDown, false)
			v.wantCaret(tt.want)
		})
	}
}

func TestVerticalOutOfRangeStaysPut(t *testing.T) {
	v := newView(t, "  ab\n  cd", cursor.At(0, 2))

	if res := v.press(CmdUp, false); res != Handled {
		t.Errorf("Up from first line = %v, want handled", res)
	}
	v.wantCaret(cursor.At(0, 2))

	v.e.MoveCaret(cursor.At(1, 3))
	if res := v.press(CmdDown, false); res != Handled {
		t.Errorf("Down from last line = %v, want handled", res)
	}
	v.wantCaret(cursor.At(1, 3))
}

func TestVerticalOutOfRangeCollapsesSelection(t *testing.T) {
	tests := []struct {
		name   string
		cmd    Command
		extend bool
		sel    cursor.Selection
		want   cursor.Selection
	}{
		{
			name: "up from first line",
			cmd:  CmdUp,
			sel:  cursor.NewSelection(cursor.At(0, 2), cursor.At(0, 6)),
			want: cursor.NewCaretSelection(cursor.At(0, 6)),
		},
		{
			name: "down from last line",
			cmd:  CmdDown,
			sel:  cursor.NewSelection(cursor.At(1, 2), cursor.At(1, 6)),
			want: cursor.NewCaretSelection(cursor.At(1, 6)),
		},
		{
			name:   "shift up keeps selection",
			cmd:    CmdUp,
			extend: true,
			sel:    cursor.NewSelection(cursor.At(0, 2), cursor.At(0, 6)),
			want:   cursor.NewSelection(cursor.At(0, 2), cursor.At(0, 6)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, "    abc\n    def", tt.sel.Active)
			v.e.Select(tt.sel)

			if res := v.press(tt.cmd, tt.extend); res != Handled {
				t.Errorf("result = %v, want handled", res)
			}
			if diff := cmp.Diff(tt.want, v.e.Selection()); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShiftDownExtendsSelection(t *testing.T) {
	v := newView(t, "    a\n    b", cursor.At(0, 2))

	v.press(CmdDown, true)

	want := cursor.NewSelection(cursor.At(0, 2), cursor.At(1, 4))
	if diff := cmp.Diff(want, v.e.Selection()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSavedColumnClearedByOtherMoves(t *testing.T) {
	v := newView(t, "        a\n\n    b", cursor.At(0, 8))

	v.press(CmdDown, false)
	if !v.c.State().HasSavedColumn {
		t.Fatal("expected saved column after Down")
	}

	v.press(CmdLeft, false)
	if v.c.State().HasSavedColumn {
		t.Error("horizontal move should clear the saved column")
	}

	v.press(CmdDown, false)
	v.e.MoveCaret(cursor.At(0, 0))
	if v.c.State().HasSavedColumn {
		t.Error("external caret move should clear the saved column")
	}
}
