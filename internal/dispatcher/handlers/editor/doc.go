// Package editor provides the default key behavior of a view.
//
// The Link sits at the end of a dispatch chain and handles whatever the
// links before it forwarded: single-character and single-line caret
// moves, Home/End, paging, character insertion, Enter with indentation
// carry-over, Tab, and one-character Backspace/Delete. Keys it does not
// know are forwarded to the caller.
package editor
