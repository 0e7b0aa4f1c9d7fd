// Package renderer draws an editor view on a backend.
//
// A Frame describes what to draw: the visible document, caret, selection,
// an optional completion popup and a status line. The renderer keeps a
// scroll offset so that the caret stays on screen, expands tabs to the
// configured width and measures wide runes with go-runewidth. Carets in
// virtual space are drawn past the end of the line.
package renderer
