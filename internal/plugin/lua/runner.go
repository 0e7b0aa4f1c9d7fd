package lua

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/softtab/internal/engine/cursor"
	"github.com/dshills/softtab/internal/input/key"
)

// Host is the view a script drives.
type Host interface {
	// Dispatch sends one key through the view's handler chain.
	Dispatch(ev key.Event) error
	Caret() cursor.Position
	Selection() cursor.Selection
	MoveCaret(p cursor.Position)
	Text() string
}

// SetFunc stores a configuration override.
type SetFunc func(path string, value any) error

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that receives script output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithSetter enables the set() global.
func WithSetter(fn SetFunc) Option {
	return func(r *Runner) {
		r.set = fn
	}
}

// WithStateOptions configures the underlying Lua state.
func WithStateOptions(opts ...StateOption) Option {
	return func(r *Runner) {
		r.stateOpts = append(r.stateOpts, opts...)
	}
}

// Runner executes automation scripts against a Host.
type Runner struct {
	host      Host
	state     *State
	log       *zap.Logger
	set       SetFunc
	stateOpts []StateOption

	running atomic.Bool
}

// NewRunner creates a runner bound to host.
func NewRunner(host Host, opts ...Option) *Runner {
	r := &Runner{host: host, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.state = NewState(r.stateOpts...)
	r.install()
	return r
}

// Running reports whether a script is executing.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run executes Lua source.
func (r *Runner) Run(ctx context.Context, code string) error {
	return r.exec("<string>", func() error { return r.state.DoString(ctx, code) })
}

// RunFile executes a Lua file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.exec(path, func() error { return r.state.DoFile(ctx, path) })
}

func (r *Runner) exec(name string, fn func() error) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.running.Store(false)

	r.log.Debug("script started", zap.String("script", name))
	if err := fn(); err != nil {
		r.log.Warn("script failed", zap.String("script", name), zap.Error(err))
		return fmt.Errorf("script %s: %w", name, err)
	}
	r.log.Debug("script finished", zap.String("script", name))
	return nil
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.state.Close()
}

func (r *Runner) install() {
	L := r.state.L
	L.SetGlobal("keys", L.NewFunction(r.luaKeys))
	L.SetGlobal("input", L.NewFunction(r.luaInput))
	L.SetGlobal("caret", L.NewFunction(r.luaCaret))
	L.SetGlobal("selection", L.NewFunction(r.luaSelection))
	L.SetGlobal("move", L.NewFunction(r.luaMove))
	L.SetGlobal("text", L.NewFunction(r.luaText))
	L.SetGlobal("set", L.NewFunction(r.luaSet))
	L.SetGlobal("print", L.NewFunction(r.luaPrint))
}

// keys(spec) dispatches whitespace-separated key specs.
func (r *Runner) luaKeys(L *lua.LState) int {
	events, err := key.ParseSequence(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	for _, ev := range events {
		if err := r.host.Dispatch(ev); err != nil {
			L.RaiseError("keys: %s: %v", ev, err)
			return 0
		}
	}
	return 0
}

// input(text) dispatches one key per character.
func (r *Runner) luaInput(L *lua.LState) int {
	for _, ch := range L.CheckString(1) {
		if err := r.host.Dispatch(charEvent(ch)); err != nil {
			L.RaiseError("input: %q: %v", ch, err)
			return 0
		}
	}
	return 0
}

func charEvent(ch rune) key.Event {
	switch ch {
	case '\n':
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	case '\t':
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	case '\b':
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	default:
		return key.NewRuneEvent(ch, key.ModNone)
	}
}

// caret() returns line, column, virtual spaces.
func (r *Runner) luaCaret(L *lua.LState) int {
	p := r.host.Caret()
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
	L.Push(lua.LNumber(p.VirtualSpaces))
	return 3
}

// selection() returns anchor line, anchor column, active line, active column.
func (r *Runner) luaSelection(L *lua.LState) int {
	sel := r.host.Selection()
	L.Push(lua.LNumber(sel.Anchor.Line))
	L.Push(lua.LNumber(sel.Anchor.VirtualColumn()))
	L.Push(lua.LNumber(sel.Active.Line))
	L.Push(lua.LNumber(sel.Active.VirtualColumn()))
	return 4
}

// move(line, col [, vs]) places the caret.
func (r *Runner) luaMove(L *lua.LState) int {
	p := cursor.Position{
		Line:          L.CheckInt(1),
		Column:        L.CheckInt(2),
		VirtualSpaces: L.OptInt(3, 0),
	}
	if p.Line < 0 || p.Column < 0 || p.VirtualSpaces < 0 {
		L.ArgError(1, "position must not be negative")
		return 0
	}
	r.host.MoveCaret(p)
	return 0
}

func (r *Runner) luaText(L *lua.LState) int {
	L.Push(lua.LString(r.host.Text()))
	return 1
}

// set(path, value) stores a configuration override.
func (r *Runner) luaSet(L *lua.LState) int {
	if r.set == nil {
		L.RaiseError("set: configuration is read-only")
		return 0
	}
	path := L.CheckString(1)
	value, err := toGoValue(L.CheckAny(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if err := r.set(path, value); err != nil {
		L.RaiseError("set %s: %v", path, err)
	}
	return 0
}

func (r *Runner) luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	r.log.Info(strings.Join(parts, "\t"), zap.String("source", "lua"))
	return 0
}
