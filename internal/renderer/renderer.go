package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/renderer/backend"
)

// MaxPopupItems is the number of completion items shown at once.
const MaxPopupItems = 8

// Frame is one view to draw.
type Frame struct {
	Lines     []string
	Caret     cursor.Position
	Selection cursor.Selection
	TabSize   int

	// Popup lists completion items; empty when closed.
	Popup         []string
	PopupSelected int

	Status string
}

// Renderer draws frames and keeps the caret in view.
type Renderer struct {
	backend   backend.Backend
	top, left int
}

// New creates a renderer drawing on b.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b}
}

// Scroll returns the first visible line and display column.
func (r *Renderer) Scroll() (top, left int) {
	return r.top, r.left
}

// textHeight is the screen height minus the status line.
func (r *Renderer) textHeight() int {
	_, h := r.backend.Size()
	return max(h-1, 1)
}

// Render draws f and shows it.
func (r *Renderer) Render(f Frame) {
	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.scrollTo(f, width)
	r.backend.Clear()

	rows := r.textHeight()
	for row := 0; row < rows; row++ {
		line := r.top + row
		if line >= len(f.Lines) {
			r.backend.SetCell(0, row, backend.Cell{Rune: '~', Style: backend.Style{Dim: true}})
			continue
		}
		r.drawLine(f, line, row, width)
	}

	if height > 1 {
		r.drawText(0, height-1, width, f.Status, backend.Style{Reverse: true}, true)
	}

	x, y := r.caretCell(f)
	if len(f.Popup) > 0 {
		r.drawPopup(f, x, y+1, width, rows)
	}
	if x >= 0 && x < width && y >= 0 && y < rows {
		r.backend.ShowCursor(x, y)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

// scrollTo adjusts the scroll offset so the caret is visible.
func (r *Renderer) scrollTo(f Frame, width int) {
	rows := r.textHeight()
	line := f.Caret.Line
	if line < r.top {
		r.top = line
	} else if line >= r.top+rows {
		r.top = line - rows + 1
	}

	col := r.caretDisplay(f)
	if col < r.left {
		r.left = col
	} else if col >= r.left+width {
		r.left = col - width + 1
	}
}

func (r *Renderer) caretDisplay(f Frame) int {
	if f.Caret.Line < 0 || f.Caret.Line >= len(f.Lines) {
		return 0
	}
	return DisplayWidth(f.Lines[f.Caret.Line], f.Caret.Column, f.TabSize) + f.Caret.VirtualSpaces
}

// caretCell returns the caret's screen cell.
func (r *Renderer) caretCell(f Frame) (x, y int) {
	return r.caretDisplay(f) - r.left, f.Caret.Line - r.top
}

func (r *Renderer) drawLine(f Frame, line, row, width int) {
	text := f.Lines[line]
	sel := f.Selection
	hasSel := !sel.IsEmpty()
	start, end := sel.Start(), sel.End()

	w := 0
	for i, ch := range text {
		cw := cellWidth(ch, w, f.TabSize)
		style := backend.Style{}
		if hasSel {
			p := cursor.At(line, i)
			if p.Compare(start) >= 0 && p.Compare(end) < 0 {
				style.Reverse = true
			}
		}

		draw := ch
		if ch == '\t' {
			draw = ' '
		}
		for k := 0; k < cw; k++ {
			x := w + k - r.left
			if x >= 0 && x < width {
				if k == 0 || ch == '\t' {
					r.backend.SetCell(x, row, backend.Cell{Rune: draw, Style: style})
				}
			}
		}
		w += cw
		if w-r.left >= width {
			return
		}
	}
}

// drawText draws s at (x, y) clipped to width. With fill the rest of the
// row takes the style.
func (r *Renderer) drawText(x, y, width int, s string, style backend.Style, fill bool) int {
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw <= 0 {
			cw = 1
		}
		if x+cw > width {
			break
		}
		r.backend.SetCell(x, y, backend.Cell{Rune: ch, Style: style})
		x += cw
	}
	for fill && x < width {
		r.backend.SetCell(x, y, backend.Cell{Rune: ' ', Style: style})
		x++
	}
	return x
}

// drawPopup draws the completion list below the caret, or above it when
// there is no room.
func (r *Renderer) drawPopup(f Frame, x, y, width, rows int) {
	first := 0
	if f.PopupSelected >= MaxPopupItems {
		first = f.PopupSelected - MaxPopupItems + 1
	}
	items := f.Popup[first:min(len(f.Popup), first+MaxPopupItems)]

	boxWidth := 0
	for _, it := range items {
		boxWidth = max(boxWidth, runewidth.StringWidth(it))
	}
	boxWidth += 2

	if y+len(items) > rows {
		y = max(y-1-len(items), 0)
	}
	x = max(min(x, width-boxWidth), 0)

	for i, it := range items {
		style := backend.Style{Reverse: true}
		if first+i == f.PopupSelected {
			style = backend.Style{Bold: true, Underline: true}
		}
		r.drawText(x, y+i, min(x+boxWidth, width), " "+it+" ", style, true)
	}
}

// PositionAt maps a screen cell to a buffer position for lines, using
// the current scroll offset. Cells past the end of a line map to virtual
// space.
func (r *Renderer) PositionAt(lines []string, x, y, tabSize int) cursor.Position {
	if len(lines) == 0 {
		return cursor.Position{}
	}
	line := min(max(r.top+y, 0), len(lines)-1)
	col, virtual := ColumnAt(lines[line], max(r.left+x, 0), tabSize)
	return cursor.Position{Line: line, Column: col, VirtualSpaces: virtual}
}
