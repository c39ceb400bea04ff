package modifier

import (
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// Scale multiplies the input independently along each axis by a fixed
// factor. Bool input widens to Axis1D.
type Scale struct {
	X, Y, Z float32
}

// NewScale returns a scale with the same factor on every axis.
func NewScale(factor float32) *Scale {
	return &Scale{X: factor, Y: factor, Z: factor}
}

// Apply implements Modifier.
func (s *Scale) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	return v.Mul(s.X, s.Y, s.Z), nil
}

// DeltaScale multiplies the input by the tick's delta time in seconds,
// turning a per-tick rate into a per-tick displacement. Bool input widens
// to Axis1D. With a zero delta (paused tick) the output is zero.
type DeltaScale struct{}

// Apply implements Modifier.
func (DeltaScale) Apply(v value.Value, dt time.Duration) (value.Value, error) {
	return v.Scale(float32(dt.Seconds())), nil
}

// Negate flips the sign of the selected axes. Bool input widens to Axis1D.
type Negate struct {
	X, Y, Z bool
}

// NewNegate returns a negation of every axis.
func NewNegate() *Negate {
	return &Negate{X: true, Y: true, Z: true}
}

// Apply implements Modifier.
func (n *Negate) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	return v.Negate(n.X, n.Y, n.Z), nil
}
