// Package terminal feeds terminal input into a snapshot.
//
// Terminals report key presses but never key releases, so held keys are
// approximated: each key event arms a short hold window, and autorepeat
// extends it. A key whose window lapses without a repeat is released into
// the snapshot. Mouse buttons do report both edges and need no such
// emulation.
package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/snapshot"
)

// DefaultKeyHold is how long a key stays pressed after its last event.
// Terminal autorepeat cadence is well under this, so a physically held
// key stays down across repeats.
const DefaultKeyHold = 150 * time.Millisecond

// Option configures a Device.
type Option func(*Device)

// WithKeyHold overrides the synthetic key hold window.
func WithKeyHold(d time.Duration) Option {
	return func(dev *Device) {
		if d > 0 {
			dev.keyHold = d
		}
	}
}

// OnResize installs a callback for terminal resize events.
func OnResize(fn func(width, height int)) Option {
	return func(dev *Device) { dev.onResize = fn }
}

// Device translates tcell events into snapshot mutations.
type Device struct {
	screen  tcell.Screen
	owned   bool
	keyHold time.Duration

	onResize func(width, height int)

	events chan tcell.Event
	quit   chan struct{}

	mu       sync.Mutex
	expiry   map[control.ID]time.Time
	mouse    struct{ x, y int }
	hasMouse bool
	closed   bool
}

// Open initializes a real terminal screen and starts its event pump.
// The caller must Close the device to restore the terminal.
func Open(opts ...Option) (*Device, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	d := newDevice(screen, opts...)
	d.owned = true
	return d, nil
}

// NewWithScreen wraps an already initialized screen, typically a tcell
// simulation screen in tests. The screen is not finalized on Close.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Device {
	return newDevice(screen, opts...)
}

func newDevice(screen tcell.Screen, opts ...Option) *Device {
	d := &Device{
		screen:  screen,
		keyHold: DefaultKeyHold,
		events:  make(chan tcell.Event, 64),
		quit:    make(chan struct{}),
		expiry:  make(map[control.ID]time.Time),
	}
	for _, opt := range opts {
		opt(d)
	}
	go screen.ChannelEvents(d.events, d.quit)
	return d
}

// Screen exposes the underlying screen for hosts that draw.
func (d *Device) Screen() tcell.Screen { return d.screen }

// Close stops the event pump and, for devices created by Open, restores
// the terminal.
func (d *Device) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.quit)
	if d.owned {
		d.screen.Fini()
	}
}

// Pump drains pending terminal events into the snapshot and releases keys
// whose hold window lapsed before now. Call once per tick, before
// evaluation; call the snapshot's Step after evaluation as usual.
func (d *Device) Pump(st *snapshot.State, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		select {
		case ev, ok := <-d.events:
			if !ok {
				return
			}
			d.apply(st, ev, now)
		default:
			d.expire(st, now)
			return
		}
	}
}

// apply routes one tcell event into the snapshot.
func (d *Device) apply(st *snapshot.State, ev tcell.Event, now time.Time) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		c, ok := keyControl(e)
		if !ok {
			return
		}
		st.Press(c)
		st.SetMods(modMask(e.Modifiers()))
		d.expiry[c.ID()] = now.Add(d.keyHold)

	case *tcell.EventMouse:
		d.applyMouse(st, e)

	case *tcell.EventResize:
		if d.onResize != nil {
			d.onResize(e.Size())
		}
	}
}

// applyMouse handles button edges, wheel deltas, and motion.
func (d *Device) applyMouse(st *snapshot.State, e *tcell.EventMouse) {
	buttons := e.Buttons()
	for _, b := range []struct {
		mask tcell.ButtonMask
		code control.Code
	}{
		{tcell.Button1, control.MouseLeft},
		{tcell.Button2, control.MouseMiddle},
		{tcell.Button3, control.MouseRight},
	} {
		c := control.Mouse(b.code)
		if buttons&b.mask != 0 {
			st.Press(c)
		} else {
			st.Release(c)
		}
	}

	var wheelY float32
	if buttons&tcell.WheelUp != 0 {
		wheelY++
	}
	if buttons&tcell.WheelDown != 0 {
		wheelY--
	}
	if wheelY != 0 {
		st.SetAxis2(control.Mouse(control.MouseWheel), 0, wheelY)
	}

	x, y := e.Position()
	if d.hasMouse && (x != d.mouse.x || y != d.mouse.y) {
		st.SetAxis2(control.Mouse(control.MouseMotion),
			float32(x-d.mouse.x), float32(y-d.mouse.y))
	}
	d.mouse.x, d.mouse.y = x, y
	d.hasMouse = true
}

// expire releases keys whose hold window has lapsed.
func (d *Device) expire(st *snapshot.State, now time.Time) {
	for id, deadline := range d.expiry {
		if now.Before(deadline) {
			continue
		}
		st.Release(control.Control{Device: id.Device, Code: id.Code})
		delete(d.expiry, id)
	}
}
