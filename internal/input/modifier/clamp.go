package modifier

import (
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// Clamp limits every axis component to [Min, Max]. Bool input widens to
// Axis1D.
type Clamp struct {
	Min, Max float32
}

// Apply implements Modifier.
func (c *Clamp) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	return v.ClampAxes(c.Min, c.Max), nil
}

// ClampMagnitude limits the input's length to Max, preserving direction.
type ClampMagnitude struct {
	Max float32
}

// Apply implements Modifier.
func (c *ClampMagnitude) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	return v.ClampMagnitude(c.Max), nil
}

// Normalize rescales the input to unit length; zero input stays zero.
// Useful for diagonal key movement that would otherwise exceed stick range.
type Normalize struct{}

// Apply implements Modifier.
func (Normalize) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	return v.Normalize(), nil
}
