package config

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/softtab/internal/config/loader"
	"github.com/dshills/softtab/internal/config/notify"
)

// Change sources reported in notify.Change.Source.
const (
	SourceFile    = "file"
	SourceSession = "session"
)

// Option configures a Manager.
type Option func(*Manager)

// WithPath sets the configuration file. The format follows the extension.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithFileSystem sets the file system the configuration is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(m *Manager) {
		if fs != nil {
			m.fs = fs
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// Manager owns the configuration layers and publishes changes.
type Manager struct {
	mu sync.RWMutex

	fs   loader.FileSystem
	path string
	log  *zap.Logger

	// Layers, lowest priority first.
	defaults map[string]any
	file     map[string]any
	session  map[string]any

	merged   map[string]any
	settings Settings

	notifier *notify.Notifier
	closed   bool
}

// New creates a manager holding the built-in defaults.
// Call Load to read the configuration file.
func New(opts ...Option) *Manager {
	m := &Manager{
		fs:       loader.DefaultFS(),
		log:      zap.NewNop(),
		defaults: Defaults(),
		session:  make(map[string]any),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(m)
	}

	merged := m.mergeLocked(nil, m.session)
	settings, err := Decode(merged)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	m.merged = merged
	m.settings = settings
	return m
}

// SetLogger replaces the logger. The application builds its logger
// from the loaded settings, after the manager exists.
func (m *Manager) SetLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the configuration file without notifying observers.
// On error the previous settings stay in effect.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

// Reload reads the configuration file and notifies observers.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if err := m.loadLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.log.Debug("config reloaded", zap.String("path", m.path))
	m.notifier.NotifyReload(SourceFile)
	return nil
}

func (m *Manager) loadLocked() error {
	if m.closed {
		return ErrClosed
	}

	var file map[string]any
	if m.path != "" {
		l, err := loader.New(m.fs, m.path)
		if err != nil {
			return err
		}
		if file, err = l.Load(); err != nil {
			return err
		}
		if file == nil {
			m.log.Debug("config file not found, using defaults", zap.String("path", m.path))
		}
	}

	merged := m.mergeLocked(file, m.session)
	settings, err := Decode(merged)
	if err != nil {
		return fmt.Errorf("%s: %w", m.path, err)
	}

	m.file = file
	m.merged = merged
	m.settings = settings
	return nil
}

func (m *Manager) mergeLocked(file, session map[string]any) map[string]any {
	merged := loader.Clone(m.defaults)
	merged = loader.DeepMerge(merged, file)
	return loader.DeepMerge(merged, session)
}

// Set stores a session override such as "editor.tabSize" and notifies
// observers. Invalid values are rejected and leave settings unchanged.
func (m *Manager) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return &SettingError{Path: path, Err: ErrInvalidValue}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}

	old, _ := getByPath(m.merged, path)
	session := loader.Clone(m.session)
	setByPath(session, path, value)

	merged := m.mergeLocked(m.file, session)
	settings, err := Decode(merged)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.session = session
	m.merged = merged
	m.settings = settings
	m.mu.Unlock()

	m.notifier.NotifySet(path, old, value, SourceSession)
	return nil
}

// Get returns the merged value at a dot-separated path.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getByPath(m.merged, path)
}

// Settings returns the current decoded settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Subscribe registers an observer for every change.
func (m *Manager) Subscribe(observer notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes at or below path.
func (m *Manager) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return m.notifier.SubscribePath(path, observer)
}

// IndentSource returns the indent configuration capability for a file.
func (m *Manager) IndentSource(filePath string) *IndentSource {
	return &IndentSource{m: m, path: filePath}
}

// Close drops all subscriptions. Later loads fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.notifier.Close()
}
