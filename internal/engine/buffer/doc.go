// Package buffer provides a thread-safe, line-indexed text buffer. It is
// the host storage that the soft-tab engine reads and edits through its
// buffer capability.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - A newline index for O(log n) offset to line lookups
//   - Coordinate conversion between byte offsets and line/column points
//   - Line ending normalization to LF
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("    foo\nbar")
//
//	start, _ := buf.LineStartOffset(1) // 8
//	line, _ := buf.LineFromOffset(5)   // 0
//
//	_ = buf.Insert(0, "  ")
//	_ = buf.Delete(0, 2)
//
// Out-of-range lookups return ErrLineOutOfRange or ErrOffsetOutOfRange
// rather than panicking; callers that move a caret off the first or last
// line are expected to treat those errors as "stay put".
package buffer
