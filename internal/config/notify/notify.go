// Package notify delivers configuration change events to observers.
//
// Observers subscribe to every change or to a settings path. A path
// subscription also receives changes below it ("editor" sees
// "editor.tabSize") and every reload.
package notify

import (
	"strings"
	"sync"
)

// ChangeType distinguishes single-value updates from reloads.
type ChangeType int

const (
	// ChangeSet means one path received a session value.
	ChangeSet ChangeType = iota

	// ChangeReload means the file was read again and any path may differ.
	ChangeReload
)

func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one configuration update.
type Change struct {
	// Path is the dotted settings path, empty for reloads.
	Path string
	Type ChangeType

	OldValue any
	NewValue any

	// Source is "file" or "session".
	Source string
}

// Observer receives changes synchronously on the publishing goroutine.
type Observer func(change Change)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id       uint64
	notifier *Notifier
	once     sync.Once
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.notifier != nil {
			s.notifier.unsubscribe(s.id)
		}
	})
}

type entry struct {
	path     string
	observer Observer
}

// Notifier fans configuration changes out to observers.
// Observers run synchronously on the notifying goroutine, outside the lock.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]entry
	nextID    uint64
	closed    bool
}

// New returns an empty Notifier.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]entry)}
}

// Subscribe registers observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below path.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = entry{path: path, observer: observer}

	return &Subscription{id: id, notifier: n}
}

// Notify sends a change notification to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	var observers []Observer
	for _, e := range n.observers {
		if matches(e.path, change) {
			observers = append(observers, e.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifySet publishes a ChangeSet for path.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{
		Path:     path,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// NotifyReload publishes a ChangeReload.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Close drops every subscription and ignores later notifications.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.observers = make(map[uint64]entry)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

func matches(path string, change Change) bool {
	if path == "" || change.Type == ChangeReload {
		return true
	}
	return change.Path == path || isParentPath(path, change.Path)
}

// isParentPath reports whether parent is a parent path of child.
// "editor" is a parent of "editor.tabSize".
func isParentPath(parent, child string) bool {
	return len(child) > len(parent) && strings.HasPrefix(child, parent) && child[len(parent)] == '.'
}
