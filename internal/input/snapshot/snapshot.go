// Package snapshot defines the read-only raw input view the engine polls
// once per tick, plus State, a mutable implementation that device backends
// and tests fill in between ticks.
package snapshot

import (
	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/value"
)

// Snapshot is the per-tick query surface over raw device state. The engine
// treats it as immutable for the duration of one evaluation pass.
type Snapshot interface {
	// Pressed reports whether the control is currently held, including any
	// required keyboard modifiers.
	Pressed(c control.Control) bool

	// JustPressed reports whether the control went down this tick.
	JustPressed(c control.Control) bool

	// JustReleased reports whether the control went up this tick.
	JustReleased(c control.Control) bool

	// Axis1 returns the current deflection of a one-dimensional axis.
	Axis1(c control.Control) float32

	// Axis2 returns the current deflection of a two-dimensional axis.
	Axis2(c control.Control) (x, y float32)
}

// Read captures a control's current value in its natural kind: Bool for
// buttons and keys, Axis1D for analog triggers, Axis2D for sticks and
// pointer deltas.
func Read(s Snapshot, c control.Control) value.Value {
	switch c.Kind() {
	case value.KindAxis1D:
		return value.Axis1D(s.Axis1(c))
	case value.KindAxis2D:
		x, y := s.Axis2(c)
		return value.Axis2D(x, y)
	default:
		return value.Bool(s.Pressed(c))
	}
}
