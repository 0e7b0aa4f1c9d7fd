package backend

import "sync"

// NullBackend is an in-memory Backend for tests and headless runs.
type NullBackend struct {
	mu sync.Mutex

	width, height int
	cells         []Cell
	front         []Cell

	cursorX, cursorY int
	cursorVisible    bool
	shows            int

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewNullBackend creates a backend of the given size.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		front:  make([]Cell, width*height),
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.once.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, c Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = c
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Show copies the drawn cells to the visible screen.
func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.front, b.cells)
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY, b.cursorVisible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventNone}
	}
}

func (b *NullBackend) Interrupt(data any) {
	b.Post(Event{Type: EventInterrupt, Data: data})
}

// Post queues an event for PollEvent.
func (b *NullBackend) Post(ev Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// Resize changes the size and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.cells = make([]Cell, width*height)
	b.front = make([]Cell, width*height)
	b.mu.Unlock()
	b.Post(Event{Type: EventResize, Width: width, Height: height})
}

// Cell returns the visible cell at x, y.
func (b *NullBackend) Cell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}
	}
	return b.front[y*b.width+x]
}

// Line returns the visible row y as text with trailing blanks removed.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	row := make([]rune, 0, b.width)
	for _, c := range b.front[y*b.width : (y+1)*b.width] {
		if c.Rune == 0 {
			row = append(row, ' ')
			continue
		}
		row = append(row, c.Rune)
	}
	end := len(row)
	for end > 0 && row[end-1] == ' ' {
		end--
	}
	return string(row[:end])
}

// Cursor returns the cursor position and visibility.
func (b *NullBackend) Cursor() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Shows returns how many frames have been shown.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}
