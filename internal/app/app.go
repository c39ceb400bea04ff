// Package app wires the demo application: binding table, script host,
// terminal device, engine, and live reload.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/config"
	"github.com/dshills/tactile/internal/config/watcher"
	"github.com/dshills/tactile/internal/device/terminal"
	"github.com/dshills/tactile/internal/event"
	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/context"
	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/engine"
	"github.com/dshills/tactile/internal/input/snapshot"
	"github.com/dshills/tactile/internal/script"
)

// ErrQuit signals a user-requested exit.
var ErrQuit = errors.New("quit")

// eventLogSize is how many recent events the display keeps.
const eventLogSize = 24

// Options configures the application.
type Options struct {
	// BindingsPath is the TOML binding table to load and watch.
	BindingsPath string

	// ScriptPaths are Lua scripts declaring custom modifier and trigger
	// types, loaded before the binding table is built.
	ScriptPaths []string

	// TickRate is the fixed evaluation step.
	TickRate time.Duration

	// Consumer is the consumer ID the table's contexts register under.
	Consumer string
}

// App owns the demo's runtime pieces.
type App struct {
	opts Options

	state    *snapshot.State
	registry *context.Registry
	engine   *engine.Engine
	bus      *event.Bus
	fact     *config.Factories
	host     *script.Host

	device *terminal.Device
	watch  *watcher.Watcher

	handles []context.Handle
	events  []action.Event
}

// New loads scripts and the binding table and builds the engine. The
// terminal is not touched until Run.
func New(opts Options) (*App, error) {
	if opts.BindingsPath == "" {
		return nil, errors.New("app: no binding table given")
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 16 * time.Millisecond
	}
	if opts.Consumer == "" {
		opts.Consumer = "player"
	}

	a := &App{
		opts:     opts,
		state:    snapshot.NewState(),
		registry: context.NewRegistry(),
		bus:      event.NewBus(),
	}

	fact, host, err := buildFactories(opts.ScriptPaths)
	if err != nil {
		return nil, err
	}
	a.fact, a.host = fact, host

	a.engine = engine.New(a.registry, a.state, engine.WithSink(a.bus))
	if err := a.loadTable(); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

// Bus returns the application's event bus, for hosts embedding the demo
// loop that want filtered subscriptions alongside the display.
func (a *App) Bus() *event.Bus { return a.bus }

// buildFactories assembles the default factories plus scripted types.
func buildFactories(scripts []string) (*config.Factories, *script.Host, error) {
	fact := config.DefaultFactories()
	if len(scripts) == 0 {
		return fact, nil, nil
	}

	host, err := script.NewHost()
	if err != nil {
		return nil, nil, err
	}
	for _, path := range scripts {
		if err := host.LoadFile(path); err != nil {
			host.Close()
			return nil, nil, err
		}
	}
	if err := host.Install(fact); err != nil {
		host.Close()
		return nil, nil, err
	}
	return fact, host, nil
}

// loadTable builds the binding table and swaps the registered contexts.
// On failure the previous registration is kept.
func (a *App) loadTable() error {
	f, err := config.Load(a.opts.BindingsPath)
	if err != nil {
		return err
	}
	ctxs, err := f.Build(a.fact)
	if err != nil {
		return err
	}

	for _, h := range a.handles {
		if err := a.registry.Unregister(h); err != nil {
			return err
		}
	}
	a.handles = a.handles[:0]

	for _, ctx := range ctxs {
		h, err := a.registry.Register(a.opts.Consumer, ctx)
		if err != nil {
			return err
		}
		a.handles = append(a.handles, h)
	}
	return nil
}

// Run opens the terminal and drives the fixed-step loop until the user
// quits with Escape. Saving the binding table reloads it in place.
func (a *App) Run() error {
	dev, err := terminal.Open()
	if err != nil {
		return fmt.Errorf("app: opening terminal: %w", err)
	}
	a.device = dev

	w, err := watcher.New(a.opts.BindingsPath)
	if err != nil {
		return fmt.Errorf("app: watching %s: %w", a.opts.BindingsPath, err)
	}
	a.watch = w

	ticker := time.NewTicker(a.opts.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-a.watch.Events():
			if err := a.loadTable(); err != nil {
				log.Printf("app: reload failed, keeping previous table: %v", err)
			}
		case now := <-ticker.C:
			if err := a.tick(now); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// tick runs one evaluation step and redraws.
func (a *App) tick(now time.Time) error {
	a.device.Pump(a.state, now)
	if a.state.Pressed(control.Key(control.CodeEscape)) {
		return ErrQuit
	}

	events, err := a.engine.EvaluateTick(a.opts.TickRate)
	if err != nil {
		return err
	}
	a.state.Step()

	a.events = append(a.events, events...)
	if n := len(a.events) - eventLogSize; n > 0 {
		a.events = append(a.events[:0], a.events[n:]...)
	}

	a.draw()
	return nil
}

// draw renders the recent event log.
func (a *App) draw() {
	screen := a.device.Screen()
	screen.Clear()

	putLine(screen, 0, fmt.Sprintf("tactile demo  table=%s  (esc quits)", a.opts.BindingsPath))
	for i, ev := range a.events {
		putLine(screen, i+2, ev.String())
	}
	screen.Show()
}

func putLine(screen tcell.Screen, row int, text string) {
	width, _ := screen.Size()
	for col, r := range text {
		if col >= width {
			break
		}
		screen.SetContent(col, row, r, nil, tcell.StyleDefault)
	}
}

// Shutdown releases the terminal, watcher, and script host. Safe on a
// partially constructed app and safe to call twice.
func (a *App) Shutdown() {
	if a.watch != nil {
		a.watch.Close()
		a.watch = nil
	}
	if a.device != nil {
		a.device.Close()
		a.device = nil
	}
	if a.host != nil {
		a.host.Close()
		a.host = nil
	}
}
