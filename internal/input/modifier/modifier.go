// Package modifier provides the value transforms applied along a binding's
// chain before accumulation: dead zones, scaling, negation, axis swizzles,
// smoothing. A chain is applied strictly in declared order; the engine never
// reorders it, because order is semantic (dead-zone before scale is not the
// same as scale before dead-zone).
package modifier

import (
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// Modifier transforms a captured value. Implementations may hold small
// bounded internal state (a smoothing buffer, a last-value slot) that lives
// as long as the binding owning the modifier.
//
// A returned error fails this binding's contribution for the current tick
// only: the engine substitutes a zero value and logs, it does not abort the
// tick.
type Modifier interface {
	Apply(v value.Value, dt time.Duration) (value.Value, error)
}

// Resettable is implemented by modifiers with internal state that must be
// cleared when their owning context is re-registered.
type Resettable interface {
	Reset()
}

// Chain is an ordered modifier sequence. Each modifier receives the output
// of the previous one.
type Chain []Modifier

// Apply runs the chain in order. The first error stops the chain.
func (c Chain) Apply(v value.Value, dt time.Duration) (value.Value, error) {
	var err error
	for _, m := range c {
		v, err = m.Apply(v, dt)
		if err != nil {
			return value.Value{}, err
		}
	}
	return v, nil
}

// Reset clears internal state on every resettable modifier in the chain.
func (c Chain) Reset() {
	for _, m := range c {
		if r, ok := m.(Resettable); ok {
			r.Reset()
		}
	}
}
