package modifier

import (
	"fmt"
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// SwizzleOrder names a permutation of the X, Y, Z components.
type SwizzleOrder uint8

const (
	// OrderYXZ swaps X and Y. The common case: route a 1D key press into
	// the Y axis of a 2D action.
	OrderYXZ SwizzleOrder = iota

	// OrderZYX swaps X and Z.
	OrderZYX

	// OrderXZY swaps Y and Z.
	OrderXZY

	// OrderYZX rotates left (X→Z, Y→X, Z→Y).
	OrderYZX

	// OrderZXY rotates right (X→Y, Y→Z, Z→X).
	OrderZXY
)

// String returns the permutation name, e.g. "YXZ".
func (o SwizzleOrder) String() string {
	switch o {
	case OrderYXZ:
		return "YXZ"
	case OrderZYX:
		return "ZYX"
	case OrderXZY:
		return "XZY"
	case OrderYZX:
		return "YZX"
	case OrderZXY:
		return "ZXY"
	default:
		return fmt.Sprintf("SwizzleOrder(%d)", o)
	}
}

// Swizzle permutes the input's axis components.
//
// The requested order must be defined for the input's actual variant:
// Bool cannot be swizzled at all, and a permutation referencing a component
// the variant does not carry (Z on Axis2D, anything but X on Axis1D) fails
// that binding's contribution for the tick.
type Swizzle struct {
	Order SwizzleOrder
}

// Apply implements Modifier.
func (s *Swizzle) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	if v.Kind == value.KindBool {
		return value.Value{}, fmt.Errorf("modifier: cannot swizzle a Bool value")
	}
	if err := s.checkDims(v.Kind); err != nil {
		return value.Value{}, err
	}
	switch s.Order {
	case OrderYXZ:
		return value.Value{Kind: v.Kind, X: v.Y, Y: v.X, Z: v.Z}, nil
	case OrderZYX:
		return value.Value{Kind: v.Kind, X: v.Z, Y: v.Y, Z: v.X}, nil
	case OrderXZY:
		return value.Value{Kind: v.Kind, X: v.X, Y: v.Z, Z: v.Y}, nil
	case OrderYZX:
		return value.Value{Kind: v.Kind, X: v.Y, Y: v.Z, Z: v.X}, nil
	case OrderZXY:
		return value.Value{Kind: v.Kind, X: v.Z, Y: v.X, Z: v.Y}, nil
	default:
		return value.Value{}, fmt.Errorf("modifier: unknown swizzle order %d", s.Order)
	}
}

// checkDims rejects permutations touching components the variant lacks.
func (s *Swizzle) checkDims(k value.Kind) error {
	dims := k.Dims()
	var needed int
	switch s.Order {
	case OrderYXZ:
		needed = 2
	default:
		needed = 3
	}
	if dims < needed {
		return fmt.Errorf("modifier: swizzle %s undefined for %s", s.Order, k)
	}
	return nil
}

// Reorder is the Axis2D-to-Axis1D narrowing: it selects one component of
// the input as a 1D value. Selecting a component the variant lacks fails
// the contribution.
type Reorder struct {
	// Component is 0 for X, 1 for Y, 2 for Z.
	Component int
}

// Apply implements Modifier.
func (r *Reorder) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	if r.Component >= v.Kind.Dims() || r.Component < 0 {
		return value.Value{}, fmt.Errorf("modifier: component %d undefined for %s", r.Component, v.Kind)
	}
	switch r.Component {
	case 1:
		return value.Axis1D(v.Y), nil
	case 2:
		return value.Axis1D(v.Z), nil
	default:
		return value.Axis1D(v.X), nil
	}
}
