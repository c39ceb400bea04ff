// Package binding associates one raw control with one action: a control
// source, an ordered modifier chain, and the accumulation rule used when
// several bindings feed the same action.
package binding

import (
	"fmt"
	"time"

	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/modifier"
	"github.com/dshills/tactile/internal/input/snapshot"
	"github.com/dshills/tactile/internal/input/value"
)

// Binding feeds one action from one raw control through a modifier chain.
// A binding is owned by exactly one context and never shared.
type Binding struct {
	// Control is the raw input source.
	Control control.Control

	// Modifiers is the ordered transform chain. Order is semantic and is
	// never reordered.
	Modifiers modifier.Chain
}

// New creates a binding for the given control with an optional modifier
// chain.
func New(c control.Control, mods ...modifier.Modifier) Binding {
	return Binding{Control: c, Modifiers: mods}
}

// WithModifiers returns a copy of the binding with the chain appended.
func (b Binding) WithModifiers(mods ...modifier.Modifier) Binding {
	b.Modifiers = append(b.Modifiers, mods...)
	return b
}

// Capture reads the control from the snapshot and runs the modifier chain.
// The result is in whatever kind the chain produces; the caller converts to
// the action's declared kind before accumulating.
func (b *Binding) Capture(s snapshot.Snapshot, dt time.Duration) (value.Value, error) {
	v := snapshot.Read(s, b.Control)
	out, err := b.Modifiers.Apply(v, dt)
	if err != nil {
		return value.Value{}, fmt.Errorf("binding %s: %w", b.Control, err)
	}
	return out, nil
}

// Reset clears modifier state (smoothing buffers and the like).
func (b *Binding) Reset() {
	b.Modifiers.Reset()
}

// Accumulation selects how multiple binding contributions combine into one
// action value per tick.
type Accumulation uint8

const (
	// Cumulative sums contributions component-wise, then clamps axis
	// values to unit magnitude. Right for WASD-as-Axis2D, where opposite
	// keys should cancel and diagonals should not exceed stick range.
	Cumulative Accumulation = iota

	// MaxAbs keeps, per component, the contribution with the largest
	// absolute value. Right when several devices feed the same action and
	// must not double-count (keyboard and stick both bound to Move).
	MaxAbs
)

// String returns a human-readable name for the accumulation mode.
func (a Accumulation) String() string {
	switch a {
	case Cumulative:
		return "Cumulative"
	case MaxAbs:
		return "MaxAbs"
	default:
		return fmt.Sprintf("Accumulation(%d)", a)
	}
}

// Accumulate folds src into dst under the given mode. Both values must
// already be converted to the action's declared kind.
func Accumulate(mode Accumulation, dst, src value.Value) value.Value {
	switch mode {
	case MaxAbs:
		pick := func(a, b float32) float32 {
			if b*b > a*a {
				return b
			}
			return a
		}
		return value.Value{
			Kind: dst.Kind,
			X:    pick(dst.X, src.X),
			Y:    pick(dst.Y, src.Y),
			Z:    pick(dst.Z, src.Z),
		}
	default:
		sum, err := dst.Add(src)
		if err != nil {
			return dst
		}
		return sum
	}
}

// Finalize applies the mode's post-accumulation normalization: Cumulative
// clamps axis kinds to unit magnitude.
func Finalize(mode Accumulation, v value.Value) value.Value {
	if mode == Cumulative {
		return v.ClampMagnitude(1)
	}
	return v
}
