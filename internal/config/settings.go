package config

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/dshills/softtab/internal/softtab"
)

// Settings is the decoded configuration.
type Settings struct {
	Editor    EditorSettings
	Languages map[string]LanguageSettings
	Log       LogSettings
}

// EditorSettings configures the editing engine.
type EditorSettings struct {
	// InsertSpaces converts tabs to spaces.
	InsertSpaces bool
	// TabSize is the indent size. Non-positive disables soft tabs.
	TabSize int
	// VerticalSnap selects Up/Down landing inside indentation.
	VerticalSnap softtab.VerticalSnap
	// EraseGating selects when Backspace/Delete remove a space run.
	EraseGating softtab.EraseGating
	// SnapOnClick snaps external caret moves inside indentation.
	SnapOnClick bool
}

// LanguageSettings overrides indentation for one file type.
// Nil fields inherit from EditorSettings.
type LanguageSettings struct {
	InsertSpaces *bool
	TabSize      *int
}

// LogSettings configures logging.
type LogSettings struct {
	Level string
	File  string
}

// Defaults returns the built-in configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"insertSpaces": true,
			"tabSize":      4,
			"verticalSnap": softtab.SnapNearest.String(),
			"eraseGating":  softtab.RunGating.String(),
			"snapOnClick":  false,
		},
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// IndentFor returns the indent configuration for a file path.
func (s Settings) IndentFor(path string) softtab.IndentConfig {
	cfg := softtab.IndentConfig{
		ConvertTabsToSpaces: s.Editor.InsertSpaces,
		IndentSize:          s.Editor.TabSize,
	}
	if lang, ok := s.Languages[LanguageKey(path)]; ok {
		if lang.InsertSpaces != nil {
			cfg.ConvertTabsToSpaces = *lang.InsertSpaces
		}
		if lang.TabSize != nil {
			cfg.IndentSize = *lang.TabSize
		}
	}
	return cfg
}

// LanguageKey returns the [languages] key for a file path: the lower-cased
// extension without its dot, or the base name for files without one.
func LanguageKey(path string) string {
	if path == "" {
		return ""
	}
	if ext := filepath.Ext(path); ext != "" {
		return strings.ToLower(ext[1:])
	}
	return strings.ToLower(filepath.Base(path))
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Decode converts a merged configuration map to Settings.
// Every invalid setting is reported.
func Decode(data map[string]any) (Settings, error) {
	d := &decoder{}
	var s Settings

	editor := d.getTable(data, "editor")
	s.Editor.InsertSpaces = d.getBool(editor, "editor", "insertSpaces")
	s.Editor.TabSize = d.getInt(editor, "editor", "tabSize")
	s.Editor.SnapOnClick = d.getBool(editor, "editor", "snapOnClick")

	if v, ok := d.getString(editor, "editor", "verticalSnap"); ok {
		snap, err := softtab.ParseVerticalSnap(v)
		if err != nil {
			d.fail(valueError("editor.verticalSnap", err))
		}
		s.Editor.VerticalSnap = snap
	}
	if v, ok := d.getString(editor, "editor", "eraseGating"); ok {
		gating, err := softtab.ParseEraseGating(v)
		if err != nil {
			d.fail(valueError("editor.eraseGating", err))
		}
		s.Editor.EraseGating = gating
	}

	langs := d.getTable(data, "languages")
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prefix := "languages." + name
		table, ok := langs[name].(map[string]any)
		if !ok {
			d.fail(typeError(prefix, "table", langs[name]))
			continue
		}
		var ls LanguageSettings
		if _, ok := table["insertSpaces"]; ok {
			v := d.getBool(table, prefix, "insertSpaces")
			ls.InsertSpaces = &v
		}
		if _, ok := table["tabSize"]; ok {
			v := d.getInt(table, prefix, "tabSize")
			ls.TabSize = &v
		}
		if s.Languages == nil {
			s.Languages = make(map[string]LanguageSettings)
		}
		s.Languages[strings.ToLower(name)] = ls
	}

	logTable := d.getTable(data, "log")
	if v, ok := d.getString(logTable, "log", "level"); ok {
		v = strings.ToLower(v)
		if !logLevels[v] {
			d.fail(valueError("log.level", fmt.Errorf("unknown level %q", v)))
		}
		s.Log.Level = v
	}
	s.Log.File, _ = d.getString(logTable, "log", "file")

	return s, d.err
}

// decoder reads typed values and accumulates errors.
type decoder struct {
	err error
}

func (d *decoder) fail(err error) {
	d.err = multierr.Append(d.err, err)
}

func (d *decoder) getTable(data map[string]any, key string) map[string]any {
	v, ok := data[key]
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(typeError(key, "table", v))
		return nil
	}
	return m
}

func (d *decoder) getBool(table map[string]any, prefix, key string) bool {
	v, ok := table[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(typeError(prefix+"."+key, "bool", v))
	}
	return b
}

func (d *decoder) getInt(table map[string]any, prefix, key string) int {
	v, ok := table[key]
	if !ok {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		d.fail(typeError(prefix+"."+key, "integer", v))
	}
	return n
}

func (d *decoder) getString(table map[string]any, prefix, key string) (string, bool) {
	v, ok := table[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		d.fail(typeError(prefix+"."+key, "string", v))
		return "", false
	}
	return s, true
}

// toInt accepts the integer types produced by the TOML and YAML decoders
// and integral floats.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
