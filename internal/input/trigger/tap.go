package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// Tap is Ongoing while held and fires on the release tick if the hold
// stayed within Window. Exceeding the window while still held drops the
// trigger to None immediately (the engine reports Canceled); the eventual
// release then produces nothing.
type Tap struct {
	// Window is the maximum hold time for a qualifying tap.
	Window time.Duration

	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	held     time.Duration
	actuated bool
	failed   bool
}

// Evaluate implements Trigger.
func (t *Tap) Evaluate(_ Resolver, v value.Value, dt time.Duration) action.State {
	if v.Actuated(threshold(t.Threshold)) {
		t.actuated = true
		t.held += dt
		if t.held > t.Window {
			t.failed = true
		}
		if t.failed {
			return action.StateNone
		}
		return action.StateOngoing
	}

	released := t.actuated && !t.failed && t.held <= t.Window
	t.actuated = false
	t.held = 0
	t.failed = false
	if released {
		return action.StateFired
	}
	return action.StateNone
}

// Kind implements Trigger.
func (t *Tap) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (t *Tap) Reset() {
	t.held = 0
	t.actuated = false
	t.failed = false
}

// DoubleTap fires on the release of the second qualifying tap, when both
// taps stay within Window and the gap between them stays within Spacing.
//
// The inter-tap clock deliberately survives the None state between taps —
// resetting on None would make a second tap unrecognizable. This is the
// documented exception to reset-on-inactive.
type DoubleTap struct {
	// Window is the maximum hold time for each tap.
	Window time.Duration

	// Spacing is the maximum gap between the first release and the second
	// press.
	Spacing time.Duration

	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	tap     Tap
	pending bool
	gap     time.Duration
}

// Evaluate implements Trigger.
func (d *DoubleTap) Evaluate(r Resolver, v value.Value, dt time.Duration) action.State {
	d.tap.Window = d.Window
	d.tap.Threshold = d.Threshold

	actuated := v.Actuated(threshold(d.Threshold))
	if d.pending && !actuated {
		d.gap += dt
		if d.gap > d.Spacing {
			d.pending = false
			d.gap = 0
		}
	}

	st := d.tap.Evaluate(r, v, dt)
	if st != action.StateFired {
		return st
	}

	// A qualifying tap released this tick.
	if d.pending {
		d.pending = false
		d.gap = 0
		return action.StateFired
	}
	d.pending = true
	d.gap = 0
	return action.StateOngoing
}

// Kind implements Trigger.
func (d *DoubleTap) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (d *DoubleTap) Reset() {
	d.tap.Reset()
	d.pending = false
	d.gap = 0
}
