// Package app wires the soft-tab engine into a small terminal editor.
//
// Each open file is a Document with one engine view, one navigation
// controller and one key chain:
//
//	completion -> softtab -> editor
//
// The completion popup and running scripts suppress soft-tab handling
// through the document's Surfaces. The configuration file is watched and
// reloaded while the application runs.
package app
