// Package config provides the settings model and its live reload.
//
// Settings come from three layers merged in order: built-in defaults,
// the configuration file (TOML or YAML), and session overrides set at
// runtime. A Manager owns the layers and publishes a notify.Change
// whenever the merged result changes.
//
// Indentation is resolved per file type: values under [languages.<ext>]
// override [editor] for files with that extension. IndentSource adapts a
// Manager to the soft-tab engine's configuration capability for one file.
//
// Example:
//
//	[editor]
//	insertSpaces = true
//	tabSize = 4
//	verticalSnap = "nearest"
//	eraseGating = "run"
//
//	[languages.go]
//	insertSpaces = false
package config
