package config

import (
	"github.com/dshills/softtab/internal/config/notify"
	"github.com/dshills/softtab/internal/softtab"
)

// IndentSource resolves indentation for one file from a Manager.
// It implements softtab.ConfigSource.
type IndentSource struct {
	m    *Manager
	path string
}

var _ softtab.ConfigSource = (*IndentSource)(nil)

// IndentConfig returns the current indentation for the file.
func (s *IndentSource) IndentConfig() softtab.IndentConfig {
	return s.m.Settings().IndentFor(s.path)
}

// OnChange calls fn after a reload or a change under [editor] or [languages].
func (s *IndentSource) OnChange(fn func()) func() {
	subs := []*notify.Subscription{
		s.m.SubscribePath("editor", func(notify.Change) { fn() }),
		s.m.SubscribePath("languages", func(c notify.Change) {
			// Reloads already reached the editor subscription.
			if c.Type != notify.ChangeReload {
				fn()
			}
		}),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}
