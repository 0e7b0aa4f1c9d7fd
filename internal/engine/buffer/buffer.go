package buffer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column is a byte offset within the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Buffer holds text as a single string plus an index of line starts.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []int
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	b := &Buffer{revisionID: NewRevisionID()}
	b.reindex()
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{
		text:       normalizeLineEndings(s),
		revisionID: NewRevisionID(),
	}
	b.reindex()
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	// CRLF sequences may be split across read boundaries, so read it all first
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// reindex rebuilds the line start index. Caller must hold the write lock.
func (b *Buffer) reindex() {
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, err := b.lineBounds(line)
	if err != nil {
		return "", err
	}
	return b.text[start:end], nil
}

// LineLen returns the length of a line in bytes, without its newline.
func (b *Buffer) LineLen(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, err := b.lineBounds(line)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, _, err := b.lineBounds(line)
	return start, err
}

// LineFromOffset returns the line containing offset.
// An offset equal to Len() belongs to the last line.
func (b *Buffer) LineFromOffset(offset int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > len(b.text) {
		return 0, ErrOffsetOutOfRange
	}
	return b.lineOf(offset), nil
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset int) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return 0, false
	}
	return b.text[offset], true
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset int) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > len(b.text) {
		return Point{}, ErrOffsetOutOfRange
	}
	line := b.lineOf(offset)
	return Point{Line: line, Column: offset - b.lineStarts[line]}, nil
}

// PointToOffset converts line/column to a byte offset.
// The column is clamped to the line length.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, err := b.lineBounds(p.Line)
	if err != nil {
		return 0, err
	}
	if p.Column < 0 {
		return 0, ErrOffsetOutOfRange
	}
	return min(start+p.Column, end), nil
}

// lineBounds returns [start, end) of a line, excluding the newline.
// Caller must hold a lock.
func (b *Buffer) lineBounds(line int) (int, int, error) {
	if line < 0 || line >= len(b.lineStarts) {
		return 0, 0, ErrLineOutOfRange
	}
	start := b.lineStarts[line]
	end := len(b.text)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1] - 1
	}
	return start, end, nil
}

// lineOf returns the line containing offset. Caller must hold a lock.
func (b *Buffer) lineOf(offset int) int {
	return sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
}

// Write Operations

// Insert inserts text at the given offset.
func (b *Buffer) Insert(offset int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.text) {
		return ErrOffsetOutOfRange
	}
	if text == "" {
		return nil
	}

	b.text = b.text[:offset] + normalizeLineEndings(text) + b.text[offset:]
	b.reindex()
	b.revisionID = NewRevisionID()
	return nil
}

// Delete removes text in [start, end).
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > len(b.text) {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}

	b.text = b.text[:start] + b.text[end:]
	b.reindex()
	b.revisionID = NewRevisionID()
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}
