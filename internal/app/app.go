package app

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/softtab/internal/config"
	"github.com/dshills/softtab/internal/config/watcher"
	"github.com/dshills/softtab/internal/renderer"
	"github.com/dshills/softtab/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the defaults.
	ConfigPath string

	// Files are opened on startup. A scratch document is created when
	// none are given.
	Files []string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Logger overrides the logger built from the configuration.
	Logger *Logger

	// Backend is the screen Run draws on. Nil creates a tcell terminal.
	Backend backend.Backend

	// WatchConfig reloads the configuration file when it changes.
	WatchConfig bool

	// WatchDebounce overrides the watcher's debounce delay.
	WatchDebounce time.Duration

	// Interactive discards log output unless [log] file is set, so the
	// terminal screen stays clean.
	Interactive bool
}

// Application owns the configuration, the open documents and the screen.
type Application struct {
	opts Options

	log     *Logger
	logFile *os.File

	config  *config.Manager
	watcher *watcher.Watcher

	documents *DocumentManager

	backend  backend.Backend
	renderer *renderer.Renderer

	mu      sync.Mutex
	message string

	// quitArmed is set after a Ctrl+Q was refused for unsaved changes.
	quitArmed bool

	running      atomic.Bool
	shutdownOnce sync.Once
}

// New loads the configuration and opens the startup documents.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		documents: NewDocumentManager(),
	}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	app.config = config.New(config.WithPath(app.opts.ConfigPath))
	loadErr := app.config.Load()

	if err := app.setupLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.config.SetLogger(app.log.WithComponent("config").Zap())
	if loadErr != nil {
		return &InitError{Component: "config", Err: loadErr}
	}
	app.log.Debug("configuration loaded from %q", app.opts.ConfigPath)

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		if err := app.watchConfig(); err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
	}

	for _, path := range app.opts.Files {
		if _, err := app.OpenFile(path); err != nil {
			return err
		}
	}
	if app.documents.Count() == 0 {
		if _, err := app.NewScratch(); err != nil {
			return err
		}
	}
	return nil
}

// setupLogging builds the logger from the options and the [log] settings.
func (app *Application) setupLogging() error {
	if app.opts.Logger != nil {
		app.log = app.opts.Logger
		return nil
	}

	settings := app.config.Settings().Log
	level := settings.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	if settings.File == "" && app.opts.Interactive {
		app.log = NullLogger
		return nil
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(level)
	if settings.File != "" {
		f, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		cfg.Output = f
	}
	app.log = NewLogger(cfg)
	return nil
}

func (app *Application) watchConfig() error {
	log := app.log.WithComponent("config")
	opts := []watcher.Option{
		watcher.WithErrorHandler(func(err error) {
			log.Warn("watch error: %v", err)
		}),
	}
	if app.opts.WatchDebounce > 0 {
		opts = append(opts, watcher.WithDebounce(app.opts.WatchDebounce))
	}

	w, err := watcher.New(app.opts.ConfigPath, func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		// Controllers belong to the event loop; reload there when it runs.
		if b := app.screen(); b != nil {
			b.Interrupt(configReload{})
			return
		}
		app.reloadConfig()
	}, opts...)
	if err != nil {
		return err
	}
	app.watcher = w
	return nil
}

// configReload is the interrupt payload that asks the loop to reload.
type configReload struct{}

func (app *Application) reloadConfig() {
	if err := app.config.Reload(); err != nil {
		app.log.WithComponent("config").Warn("reload failed: %v", err)
		app.setMessage("config: " + err.Error())
		return
	}
	app.log.WithComponent("config").Info("configuration reloaded")
	app.setMessage("config reloaded")
}

// Config returns the configuration manager.
func (app *Application) Config() *config.Manager {
	return app.config
}

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager {
	return app.documents
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.log
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// OpenFile opens path, or activates it when already open.
func (app *Application) OpenFile(path string) (*Document, error) {
	doc, err := OpenDocument(path, app.config, app.log)
	if err != nil {
		return nil, err
	}
	if open, ok := app.documents.FindByPath(doc.Path); ok {
		doc.Close()
		_ = app.documents.SetActive(open.ID)
		return open, nil
	}
	app.documents.Add(doc)
	app.log.Debug("opened %s as %s", doc.Path, doc.ID)
	return doc, nil
}

// NewScratch creates an empty document without a path.
func (app *Application) NewScratch() (*Document, error) {
	doc, err := NewDocument("", nil, app.config, app.log)
	if err != nil {
		return nil, err
	}
	app.documents.Add(doc)
	return doc, nil
}

// SaveActive saves the active document.
func (app *Application) SaveActive() error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	return doc.Save()
}

// Quit stops the event loop. Unsaved changes block it unless force is set.
func (app *Application) Quit(force bool) error {
	if !force && app.documents.HasModified() {
		return ErrUnsavedChanges
	}
	return ErrQuit
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil && app.log != nil {
				app.log.Warn("close watcher: %v", err)
			}
		}
		app.documents.CloseAll()
		if app.config != nil {
			app.config.Close()
		}
		if app.log != nil {
			app.log.Sync()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// screen returns the backend once Run has started.
func (app *Application) screen() backend.Backend {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.backend
}

func (app *Application) setMessage(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.message = msg
}

func (app *Application) takeMessage() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	msg := app.message
	app.message = ""
	return msg
}

// isQuit reports whether err ends the event loop normally.
func isQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
