package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/softtab/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// ConvertKey converts a tcell key event. Keys without an equivalent report
// false.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		switch {
		case mods.HasCtrl():
			r = unicode.ToLower(r)
		case unicode.IsUpper(r):
			mods = mods.With(key.ModShift)
		default:
			mods = mods.Without(key.ModShift)
		}
		return key.NewRuneEvent(r, mods), true

	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true

	case k == tcell.KeyNUL:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && !isNamedControl(k):
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	}

	if named, ok := specialKeys[ev.Key()]; ok {
		// Terminals report Ctrl for control codes that are keys of their own.
		if isNamedControl(ev.Key()) {
			mods = mods.Without(key.ModCtrl)
		}
		return key.NewSpecialEvent(named, mods), true
	}
	return key.Event{}, false
}

// isNamedControl reports control codes that double as named keys
// (Ctrl+H Backspace, Ctrl+I Tab, Ctrl+M Enter).
func isNamedControl(k tcell.Key) bool {
	return k == tcell.KeyBackspace || k == tcell.KeyTab || k == tcell.KeyEnter
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
