package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/softtab/internal/config"
	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
	"github.com/dshills/softtab/internal/renderer/backend"
)

var (
	right     = key.NewSpecialEvent(key.KeyRight, key.ModNone)
	enter     = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	ctrlSpace = key.NewRuneEvent(' ', key.ModCtrl)
	ctrlQ     = key.NewRuneEvent('q', key.ModCtrl)
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newDoc(t *testing.T, text string, caret cursor.Position) *Document {
	t.Helper()
	doc, err := NewDocument("test.txt", []byte(text), config.New(), nil)
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	doc.MoveCaret(caret)
	return doc
}

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	a, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func TestNewCreatesScratchDocument(t *testing.T) {
	a := newApp(t, Options{})

	require.Equal(t, 1, a.Documents().Count())
	doc := a.Documents().Active()
	require.NotNil(t, doc)
	assert.True(t, doc.IsScratch())
	assert.Equal(t, "Untitled", doc.Name)
	assert.False(t, a.IsRunning())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "softtab.toml", "[editor]\nverticalSnap = \"diagonal\"\n")

	_, err := New(Options{ConfigPath: path, Logger: NullLogger})
	require.Error(t, err)

	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "config", initErr.Component)
}

func TestDocumentChainSnapsToStop(t *testing.T) {
	doc := newDoc(t, "    foo", cursor.Position{Column: 2})

	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 4}, doc.Caret())

	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 5}, doc.Caret())
}

func TestOpenSurfaceSuppressesNavigation(t *testing.T) {
	doc := newDoc(t, "        x", cursor.Position{})

	doc.Surfaces.Set(SurfaceCompletion, true)
	assert.True(t, doc.Surfaces.SurfaceActive())
	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 1}, doc.Caret())

	doc.Surfaces.Set(SurfaceCompletion, false)
	assert.False(t, doc.Surfaces.SurfaceActive())
	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 4}, doc.Caret())
}

func TestCompletionPopupIsASurface(t *testing.T) {
	doc := newDoc(t, "foobar\nfo", cursor.Position{Line: 1, Column: 2})

	require.NoError(t, doc.Dispatch(ctrlSpace))
	assert.True(t, doc.Surfaces.IsOpen(SurfaceCompletion))
	assert.Equal(t, "completion: 1 items", doc.TakeMessage())

	require.NoError(t, doc.Dispatch(enter))
	assert.False(t, doc.Surfaces.IsOpen(SurfaceCompletion))
	assert.Equal(t, "foobar\nfoobar", doc.Text())
	assert.Equal(t, cursor.Position{Line: 1, Column: 6}, doc.Caret())
}

func TestScriptBypassesSoftTabs(t *testing.T) {
	a := newApp(t, Options{})
	doc := a.Documents().Active()
	require.NoError(t, a.RunScriptString(context.Background(), `input("    foo") move(0, 0) keys("Right")`))

	assert.Equal(t, "    foo", doc.Text())
	assert.Equal(t, cursor.Position{Column: 1}, doc.Caret())
	assert.False(t, doc.Surfaces.InAutomation())

	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 4}, doc.Caret())
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "notes.txt", "    foo\n")
	script := writeFile(t, dir, "macro.lua", `keys("Right Right") input("x")`)

	a := newApp(t, Options{Files: []string{file}})
	require.NoError(t, a.RunScript(context.Background(), script))
	assert.Equal(t, "  x  foo\n", a.Documents().Active().Text())

	err := a.RunScript(context.Background(), filepath.Join(dir, "missing.lua"))
	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "script", opErr.Op)
}

func TestLanguageOverrideApplies(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "softtab.toml", "[editor]\ntabSize = 4\n[languages.go]\ntabSize = 2\n")
	src := writeFile(t, dir, "main.go", "    x\n")

	a := newApp(t, Options{ConfigPath: cfg, Files: []string{src}})
	doc := a.Documents().Active()
	assert.Equal(t, 2, doc.IndentConfig().IndentSize)

	require.NoError(t, doc.Dispatch(right))
	assert.Equal(t, cursor.Position{Column: 2}, doc.Caret())
}

func TestOpenFileTwiceActivatesExisting(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "a")
	second := writeFile(t, dir, "b.txt", "b")

	a := newApp(t, Options{Files: []string{first, second}})
	require.Equal(t, 2, a.Documents().Count())

	doc, err := a.OpenFile(first)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Documents().Count())
	assert.Same(t, doc, a.Documents().Active())
	assert.Equal(t, "a", doc.Text())
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	a := newApp(t, Options{Files: []string{path}})

	doc := a.Documents().Active()
	assert.Equal(t, "", doc.Text())
	assert.Equal(t, "new.txt", doc.Name)
}

func TestSaveActive(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "    x")
	a := newApp(t, Options{Files: []string{path}})
	doc := a.Documents().Active()

	require.NoError(t, doc.Dispatch(key.NewRuneEvent('y', key.ModNone)))
	assert.True(t, doc.IsModified())

	require.NoError(t, a.SaveActive())
	assert.False(t, doc.IsModified())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y    x", string(data))
}

func TestSaveScratchFails(t *testing.T) {
	a := newApp(t, Options{})
	assert.ErrorIs(t, a.SaveActive(), ErrNoFilePath)
}

func TestQuitWithUnsavedChanges(t *testing.T) {
	a := newApp(t, Options{})
	require.NoError(t, a.Documents().Active().Dispatch(key.NewRuneEvent('a', key.ModNone)))

	assert.ErrorIs(t, a.Quit(false), ErrUnsavedChanges)
	assert.ErrorIs(t, a.Quit(true), ErrQuit)
}

func TestRunProcessesKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "        x")
	screen := backend.NewNullBackend(40, 10)
	a := newApp(t, Options{Files: []string{path}, Backend: screen})

	screen.Post(backend.Event{Type: backend.EventKey, Key: right})
	screen.Post(backend.Event{Type: backend.EventKey, Key: right})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	require.NoError(t, a.Run())

	assert.Equal(t, cursor.Position{Column: 8}, a.Documents().Active().Caret())
	assert.Equal(t, "        x", screen.Line(0))
	assert.Contains(t, screen.Line(9), "a.txt  1:9")
	assert.Contains(t, screen.Line(9), "spaces:4")
	assert.False(t, a.IsRunning())
}

func TestRunQuitNeedsConfirmation(t *testing.T) {
	screen := backend.NewNullBackend(100, 5)
	a := newApp(t, Options{Backend: screen})

	screen.Post(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('a', key.ModNone)})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	require.NoError(t, a.Run())

	assert.Contains(t, screen.Line(4), "press Ctrl+Q again")
	assert.Equal(t, "a", a.Documents().Active().Text())
}

func TestRunMouseClickSnaps(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "softtab.toml", "[editor]\nsnapOnClick = true\n")
	path := writeFile(t, dir, "a.txt", "        x")
	screen := backend.NewNullBackend(40, 10)
	a := newApp(t, Options{ConfigPath: cfg, Files: []string{path}, Backend: screen})

	screen.Post(backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 0})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	require.NoError(t, a.Run())

	assert.Equal(t, cursor.Position{Column: 4}, a.Documents().Active().Caret())
}

func TestRunShowsCompletionPopup(t *testing.T) {
	screen := backend.NewNullBackend(40, 10)
	a := newApp(t, Options{Backend: screen})
	doc := a.Documents().Active()
	require.NoError(t, a.RunScriptString(context.Background(), `input("alpha\nal")`))

	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlSpace})
	screen.Post(backend.Event{Type: backend.EventInterrupt})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	require.NoError(t, a.Run())

	assert.True(t, doc.Completion.Active())
	assert.Contains(t, screen.Line(2), "alpha")
}

func TestConfigReloadReachesDocuments(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "softtab.toml", "[editor]\ntabSize = 4\n")
	path := writeFile(t, dir, "a.txt", "    x")
	screen := backend.NewNullBackend(60, 10)

	a := newApp(t, Options{
		ConfigPath:    cfg,
		Files:         []string{path},
		Backend:       screen,
		WatchConfig:   true,
		WatchDebounce: 10 * time.Millisecond,
	})
	doc := a.Documents().Active()

	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	require.Eventually(t, func() bool { return a.screen() != nil }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(cfg, []byte("[editor]\ntabSize = 2\n"), 0o644))
	require.Eventually(t, func() bool {
		return doc.IndentConfig().IndentSize == 2
	}, 2*time.Second, 10*time.Millisecond)

	screen.Post(backend.Event{Type: backend.EventKey, Key: right})
	screen.Post(backend.Event{Type: backend.EventKey, Key: ctrlQ})
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not stop")
	}

	assert.Equal(t, 2, doc.Controller.IndentConfig().IndentSize)
	assert.Equal(t, cursor.Position{Column: 2}, doc.Caret())
}

func TestShutdownIsIdempotent(t *testing.T) {
	a, err := New(Options{Logger: NullLogger})
	require.NoError(t, err)
	a.Shutdown()
	a.Shutdown()
	assert.Equal(t, 0, a.Documents().Count())
}

func TestDocumentManager(t *testing.T) {
	dm := NewDocumentManager()
	assert.Nil(t, dm.Active())
	assert.Nil(t, dm.Next())

	a := newDoc(t, "a", cursor.Position{})
	b := newDoc(t, "b", cursor.Position{})
	c := newDoc(t, "c", cursor.Position{})
	dm.Add(a)
	dm.Add(b)
	dm.Add(c)
	assert.Same(t, c, dm.Active())

	assert.Same(t, a, dm.Next())
	require.NoError(t, dm.SetActive(b.ID))
	assert.Same(t, b, dm.Active())

	got, ok := dm.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)

	require.NoError(t, dm.Remove(b.ID))
	assert.Same(t, c, dm.Active())
	assert.Equal(t, 2, dm.Count())
	assert.ErrorIs(t, dm.Remove(b.ID), ErrDocumentNotFound)
	assert.ErrorIs(t, dm.SetActive(b.ID), ErrDocumentNotFound)

	require.NoError(t, dm.Remove(c.ID))
	assert.Same(t, a, dm.Active())
}

func TestDocumentIDsAreUnique(t *testing.T) {
	a := newDoc(t, "", cursor.Position{})
	b := newDoc(t, "", cursor.Position{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	log.Info("hidden")
	log.WithComponent("config").Warn("reload failed: %s", "boom")
	log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "reload failed: boom")
	assert.Contains(t, out, `"component": "config"`)
	assert.Contains(t, out, "test")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLogLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.in != "bogus" && tt.in != "warning" {
				assert.Equal(t, strings.ToLower(tt.in), got.String())
			}
		})
	}
}

func TestOperationErrorUnwraps(t *testing.T) {
	err := &OperationError{Op: "save", Target: "/tmp/x", Err: os.ErrPermission}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "save /tmp/x: permission denied", err.Error())
}

func TestSurfaceNames(t *testing.T) {
	assert.Equal(t, "completion", SurfaceCompletion.String())
	assert.Equal(t, "unknown", Surface(9).String())
}
