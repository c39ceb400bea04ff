// Package script hosts Lua-defined modifiers and triggers.
//
// A script declares constructors through the tactile global:
//
//	tactile.modifier("half", function(params)
//		return function(x, y, z, dt)
//			return x * 0.5, y * 0.5, z * 0.5
//		end
//	end)
//
//	tactile.trigger("turbo", function(params)
//		local count = 0
//		return {
//			evaluate = function(magnitude, dt)
//				if magnitude > 0.5 then return "fired" end
//				return "none"
//			end,
//			reset = function() count = 0 end,
//		}
//	end)
//
// Constructors run once per binding-table reference, so closure state is
// per-instance, matching native modifier and trigger semantics. Installed
// types appear in binding tables like any built-in.
//
// The Lua state is sandboxed: only the base, table, string, and math
// libraries are opened, and code-loading escape hatches are removed.
package script

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tactile/internal/config"
	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/modifier"
	"github.com/dshills/tactile/internal/input/trigger"
	"github.com/dshills/tactile/internal/input/value"
)

// ErrHostClosed is returned for operations on a closed host.
var ErrHostClosed = errors.New("script: host closed")

// Option configures a Host.
type Option func(*Host)

// WithErrorHandler replaces the default runtime-error log hook. Runtime
// failures inside scripted modifiers and triggers are reported here; the
// failing instance contributes zero (modifier) or None (trigger) for the
// tick.
func WithErrorHandler(fn func(err error)) Option {
	return func(h *Host) { h.onError = fn }
}

// Host owns one sandboxed Lua state and the constructors scripts have
// declared in it.
//
// The Lua state is not goroutine-safe; the host serializes every entry
// into it, so scripted modifiers and triggers may be spread across
// contexts evaluated by one engine.
type Host struct {
	mu      sync.Mutex
	l       *lua.LState
	closed  bool
	onError func(err error)

	modifiers map[string]*lua.LFunction
	triggers  map[string]*lua.LFunction
}

// NewHost creates a sandboxed Lua host.
func NewHost(opts ...Option) (*Host, error) {
	h := &Host{
		onError:   func(err error) { log.Printf("script: %v", err) },
		modifiers: make(map[string]*lua.LFunction),
		triggers:  make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(h)
	}

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	h.l = l
	if err := openSafeLibraries(l); err != nil {
		l.Close()
		return nil, err
	}
	sandbox(l)
	h.installAPI()
	return h, nil
}

// openSafeLibraries opens the side-effect-free parts of the Lua stdlib.
func openSafeLibraries(l *lua.LState) error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := l.CallByParam(lua.P{
			Fn:      l.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("script: opening %s: %w", lib.name, err)
		}
	}
	return nil
}

// sandbox strips the escape hatches the base library carries.
func sandbox(l *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		l.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := l.GetGlobal("package").(*lua.LTable); ok {
		l.SetField(pkg, "path", lua.LString(""))
		l.SetField(pkg, "cpath", lua.LString(""))
	}
}

// installAPI publishes the tactile registration table.
func (h *Host) installAPI() {
	api := h.l.NewTable()
	h.l.SetField(api, "modifier", h.l.NewFunction(func(l *lua.LState) int {
		name := l.CheckString(1)
		ctor := l.CheckFunction(2)
		h.modifiers[name] = ctor
		return 0
	}))
	h.l.SetField(api, "trigger", h.l.NewFunction(func(l *lua.LState) int {
		name := l.CheckString(1)
		ctor := l.CheckFunction(2)
		h.triggers[name] = ctor
		return 0
	}))
	h.l.SetGlobal("tactile", api)
}

// LoadFile runs the script at path, collecting its declarations.
func (h *Host) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: reading %s: %w", path, err)
	}
	return h.load(path, string(data))
}

// LoadString runs an in-memory script, collecting its declarations.
func (h *Host) LoadString(name, src string) error {
	return h.load(name, src)
}

func (h *Host) load(name, src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	fn, err := h.l.LoadString(src)
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	h.l.Push(fn)
	if err := h.l.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state. Instances created from this host stop
// contributing afterwards.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		h.l.Close()
	}
}

// Install registers every declared constructor with the factories, making
// scripted types available to binding tables.
func (h *Host) Install(fact *config.Factories) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHostClosed
	}
	for name, ctor := range h.modifiers {
		if err := fact.RegisterModifier(name, h.modifierFactory(name, ctor)); err != nil {
			return err
		}
	}
	for name, ctor := range h.triggers {
		if err := fact.RegisterTrigger(name, h.triggerFactory(name, ctor)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) modifierFactory(name string, ctor *lua.LFunction) config.ModifierFactory {
	return func(_ *config.Factories, p config.Params) (modifier.Modifier, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return nil, ErrHostClosed
		}
		ret, err := h.construct(ctor, p)
		if err != nil {
			return nil, fmt.Errorf("constructing %q: %w", name, err)
		}
		fn, ok := ret.(*lua.LFunction)
		if !ok {
			return nil, fmt.Errorf("%q constructor must return a function, got %s", name, ret.Type())
		}
		return &luaModifier{host: h, name: name, fn: fn}, nil
	}
}

func (h *Host) triggerFactory(name string, ctor *lua.LFunction) config.TriggerFactory {
	return func(_ *config.Factories, p config.Params) (trigger.Trigger, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return nil, ErrHostClosed
		}
		ret, err := h.construct(ctor, p)
		if err != nil {
			return nil, fmt.Errorf("constructing %q: %w", name, err)
		}
		t := &luaTrigger{host: h, name: name}
		switch v := ret.(type) {
		case *lua.LFunction:
			t.evaluate = v
		case *lua.LTable:
			t.evaluate, _ = h.l.GetField(v, "evaluate").(*lua.LFunction)
			t.reset, _ = h.l.GetField(v, "reset").(*lua.LFunction)
		}
		if t.evaluate == nil {
			return nil, fmt.Errorf("%q constructor must return a function or a table with evaluate", name)
		}
		return t, nil
	}
}

// construct calls a constructor with the definition's parameter table.
// Caller holds h.mu.
func (h *Host) construct(ctor *lua.LFunction, p config.Params) (lua.LValue, error) {
	params := h.l.NewTable()
	p.Each(func(key string, v any) {
		params.RawSetString(key, toLua(v))
	})
	if err := h.l.CallByParam(lua.P{Fn: ctor, NRet: 1, Protect: true}, params); err != nil {
		return nil, err
	}
	ret := h.l.Get(-1)
	h.l.Pop(1)
	return ret, nil
}

func toLua(v any) lua.LValue {
	switch x := v.(type) {
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	default:
		return lua.LNil
	}
}

// luaModifier bridges one constructed Lua closure into the modifier
// pipeline. Bool input widens to Axis1D before the call, as the native
// numeric modifiers do.
type luaModifier struct {
	host *Host
	name string
	fn   *lua.LFunction
}

// Apply implements modifier.Modifier.
func (m *luaModifier) Apply(v value.Value, dt time.Duration) (value.Value, error) {
	h := m.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return value.Value{}, ErrHostClosed
	}
	if v.Kind == value.KindBool {
		v = v.Convert(value.KindAxis1D)
	}

	err := h.l.CallByParam(lua.P{Fn: m.fn, NRet: 3, Protect: true},
		lua.LNumber(v.X), lua.LNumber(v.Y), lua.LNumber(v.Z), lua.LNumber(dt.Seconds()))
	if err != nil {
		return value.Value{}, fmt.Errorf("script: modifier %q: %w", m.name, err)
	}
	out := v
	out.Z = luaFloat(h.l.Get(-1), v.Z)
	out.Y = luaFloat(h.l.Get(-2), v.Y)
	out.X = luaFloat(h.l.Get(-3), v.X)
	h.l.Pop(3)
	return out, nil
}

func luaFloat(v lua.LValue, def float32) float32 {
	if n, ok := v.(lua.LNumber); ok {
		return float32(n)
	}
	return def
}

// luaTrigger bridges one constructed Lua closure into trigger evaluation.
// The evaluate function sees the value's magnitude and the tick delta in
// seconds and returns "none", "ongoing", or "fired". A runtime failure is
// reported to the host's error handler and reads as None for the tick.
type luaTrigger struct {
	host     *Host
	name     string
	evaluate *lua.LFunction
	reset    *lua.LFunction
}

// Evaluate implements trigger.Trigger.
func (t *luaTrigger) Evaluate(_ trigger.Resolver, v value.Value, dt time.Duration) action.State {
	h := t.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return action.StateNone
	}

	err := h.l.CallByParam(lua.P{Fn: t.evaluate, NRet: 1, Protect: true},
		lua.LNumber(v.Magnitude()), lua.LNumber(dt.Seconds()))
	if err != nil {
		h.onError(fmt.Errorf("trigger %q: %w", t.name, err))
		return action.StateNone
	}
	ret := h.l.Get(-1)
	h.l.Pop(1)

	switch lua.LVAsString(ret) {
	case "ongoing":
		return action.StateOngoing
	case "fired":
		return action.StateFired
	default:
		return action.StateNone
	}
}

// Kind implements trigger.Trigger.
func (t *luaTrigger) Kind() trigger.Kind { return trigger.KindExplicit }

// Reset implements trigger.Trigger.
func (t *luaTrigger) Reset() {
	if t.reset == nil {
		return
	}
	h := t.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if err := h.l.CallByParam(lua.P{Fn: t.reset, NRet: 0, Protect: true}); err != nil {
		h.onError(fmt.Errorf("trigger %q reset: %w", t.name, err))
	}
}
