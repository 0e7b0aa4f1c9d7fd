package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "@"
//   - Key names: "Enter", "Esc", "Tab", "BS", "Del", "Space", "Left"
//   - Plus form: "Shift+Right", "Ctrl+Space"
//   - Dash form: "S-Right", "C-Space"
//   - Bracketed: "<S-Down>", "<BS>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
	}

	sep := ""
	switch {
	case len(spec) > 1 && strings.Contains(spec, "+"):
		sep = "+"
	case len(spec) > 1 && strings.Contains(spec[:len(spec)-1], "-"):
		sep = "-"
	}
	if sep == "" {
		return parseKey(spec, ModNone)
	}

	i := strings.LastIndex(spec[:len(spec)-1], sep)
	var mods Modifier
	for _, name := range strings.Split(spec[:i], sep) {
		mod := ModifierFromName(name)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		mods = mods.With(mod)
	}
	return parseKey(spec[i+1:], mods)
}

// parseKey parses a key name or character with known modifiers.
func parseKey(name string, mods Modifier) (Event, error) {
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(name) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	r := runes[0]
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	} else if unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse parses a key specification and panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}

// ParseSequence parses whitespace-separated key specifications.
func ParseSequence(s string) ([]Event, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	events := make([]Event, 0, len(fields))
	for _, f := range fields {
		e, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		events = append(events, e)
	}
	return events, nil
}
