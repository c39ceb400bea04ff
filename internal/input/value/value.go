// Package value provides the tagged numeric union that flows through the
// input pipeline. Every stage — raw capture, modifiers, accumulation,
// triggers — exchanges Value instances, so the arithmetic and the widening
// rules between variants are defined once, here.
package value

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for threshold and equality comparisons.
// Analog sources flutter around zero; comparing against a fixed epsilon
// keeps actuation edges stable.
const Epsilon = 1e-4

// Kind identifies the variant a Value carries.
type Kind uint8

const (
	// KindBool is a digital on/off value (keys, buttons).
	KindBool Kind = iota

	// KindAxis1D is a single analog axis (trigger, wheel).
	KindAxis1D

	// KindAxis2D is a pair of axes (stick, mouse motion).
	KindAxis2D

	// KindAxis3D is a triple of axes.
	KindAxis3D
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindAxis1D:
		return "Axis1D"
	case KindAxis2D:
		return "Axis2D"
	case KindAxis3D:
		return "Axis3D"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Dims returns the number of axis components the kind carries.
// Bool counts as one (its 0/1 widening).
func (k Kind) Dims() int {
	switch k {
	case KindAxis2D:
		return 2
	case KindAxis3D:
		return 3
	default:
		return 1
	}
}

// Value is a small tagged union over {Bool, Axis1D, Axis2D, Axis3D}.
// Values are plain data and are copied freely; a Bool stores 0 or 1 in X.
type Value struct {
	Kind Kind
	X    float32
	Y    float32
	Z    float32
}

// Bool returns a KindBool value.
func Bool(b bool) Value {
	var x float32
	if b {
		x = 1
	}
	return Value{Kind: KindBool, X: x}
}

// Axis1D returns a KindAxis1D value.
func Axis1D(x float32) Value {
	return Value{Kind: KindAxis1D, X: x}
}

// Axis2D returns a KindAxis2D value.
func Axis2D(x, y float32) Value {
	return Value{Kind: KindAxis2D, X: x, Y: y}
}

// Axis3D returns a KindAxis3D value.
func Axis3D(x, y, z float32) Value {
	return Value{Kind: KindAxis3D, X: x, Y: y, Z: z}
}

// Zero returns the zero value of the given kind.
func Zero(k Kind) Value {
	return Value{Kind: k}
}

// AsBool reports whether the value is actuated at all (any component
// beyond Epsilon from zero).
func (v Value) AsBool() bool {
	return v.MagnitudeSquared() > Epsilon*Epsilon
}

// Magnitude returns the Euclidean length across the value's components.
// For Bool this is 0 or 1.
func (v Value) Magnitude() float32 {
	return float32(math.Sqrt(float64(v.MagnitudeSquared())))
}

// MagnitudeSquared returns the squared length, avoiding the sqrt when only
// a comparison is needed.
func (v Value) MagnitudeSquared() float32 {
	switch v.Kind {
	case KindBool, KindAxis1D:
		return v.X * v.X
	case KindAxis2D:
		return v.X*v.X + v.Y*v.Y
	default:
		return v.X*v.X + v.Y*v.Y + v.Z*v.Z
	}
}

// Actuated reports whether the value's magnitude meets the threshold,
// within Epsilon.
func (v Value) Actuated(threshold float32) bool {
	return v.Magnitude() >= threshold-Epsilon
}

// Convert changes the value to another kind using the documented widening
// and narrowing rules:
//
//   - Bool widens to an axis value of 0 or 1 on X.
//   - Widening an axis value fills new components with zero.
//   - Narrowing drops trailing components.
//   - Narrowing to Bool yields actuation at Epsilon.
//
// Conversion is total; there is no undefined pair of kinds.
func (v Value) Convert(k Kind) Value {
	if v.Kind == k {
		return v
	}
	switch k {
	case KindBool:
		return Bool(v.AsBool())
	case KindAxis1D:
		return Axis1D(v.X)
	case KindAxis2D:
		if v.Kind == KindBool || v.Kind == KindAxis1D {
			return Axis2D(v.X, 0)
		}
		return Axis2D(v.X, v.Y)
	default:
		return Axis3D(v.X, v.Y, v.Z)
	}
}

// Add returns the component-wise sum of two values of the same kind.
// Mixing kinds is not defined; callers convert first. A mismatch fails
// fast with an error rather than guessing a widening.
func (v Value) Add(other Value) (Value, error) {
	if v.Kind != other.Kind {
		return Value{}, fmt.Errorf("value: cannot add %s to %s", other.Kind, v.Kind)
	}
	if v.Kind == KindBool {
		return Bool(v.AsBool() || other.AsBool()), nil
	}
	return Value{Kind: v.Kind, X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}, nil
}

// Scale multiplies every component by f. Bool widens to Axis1D first so
// that scaling a pressed key yields an analog contribution.
func (v Value) Scale(f float32) Value {
	if v.Kind == KindBool {
		v = v.Convert(KindAxis1D)
	}
	return Value{Kind: v.Kind, X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Mul multiplies component-wise by the given factors.
// Bool widens to Axis1D first.
func (v Value) Mul(x, y, z float32) Value {
	if v.Kind == KindBool {
		v = v.Convert(KindAxis1D)
	}
	return Value{Kind: v.Kind, X: v.X * x, Y: v.Y * y, Z: v.Z * z}
}

// Negate flips the sign of the selected components.
// Bool widens to Axis1D first.
func (v Value) Negate(x, y, z bool) Value {
	fx, fy, fz := float32(1), float32(1), float32(1)
	if x {
		fx = -1
	}
	if y {
		fy = -1
	}
	if z {
		fz = -1
	}
	return v.Mul(fx, fy, fz)
}

// ClampMagnitude limits the value's length to max, preserving direction.
// Bool values are unaffected.
func (v Value) ClampMagnitude(max float32) Value {
	if v.Kind == KindBool {
		return v
	}
	mag := v.Magnitude()
	if mag <= max || mag == 0 {
		return v
	}
	return v.Scale(max / mag)
}

// ClampAxes limits every component to the [min, max] range.
// Bool widens to Axis1D first.
func (v Value) ClampAxes(min, max float32) Value {
	if v.Kind == KindBool {
		v = v.Convert(KindAxis1D)
	}
	clamp := func(f float32) float32 {
		if f < min {
			return min
		}
		if f > max {
			return max
		}
		return f
	}
	return Value{Kind: v.Kind, X: clamp(v.X), Y: clamp(v.Y), Z: clamp(v.Z)}
}

// Normalize returns the value scaled to unit length. Zero values and Bool
// values are returned unchanged.
func (v Value) Normalize() Value {
	if v.Kind == KindBool {
		return v
	}
	mag := v.Magnitude()
	if mag < Epsilon {
		return v
	}
	return v.Scale(1 / mag)
}

// Lerp interpolates component-wise toward target by t in [0, 1].
// Both values must share a kind; mismatches return v unchanged.
func (v Value) Lerp(target Value, t float32) Value {
	if v.Kind != target.Kind || v.Kind == KindBool {
		return v
	}
	return Value{
		Kind: v.Kind,
		X:    v.X + (target.X-v.X)*t,
		Y:    v.Y + (target.Y-v.Y)*t,
		Z:    v.Z + (target.Z-v.Z)*t,
	}
}

// Equals reports whether two values share a kind and all components are
// within tolerance of each other.
func (v Value) Equals(other Value, tolerance float32) bool {
	if v.Kind != other.Kind {
		return false
	}
	near := func(a, b float32) bool {
		d := a - b
		return d <= tolerance && d >= -tolerance
	}
	return near(v.X, other.X) && near(v.Y, other.Y) && near(v.Z, other.Z)
}

// String returns a compact representation like "Axis2D(0.50, -1.00)".
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.AsBool())
	case KindAxis1D:
		return fmt.Sprintf("Axis1D(%.2f)", v.X)
	case KindAxis2D:
		return fmt.Sprintf("Axis2D(%.2f, %.2f)", v.X, v.Y)
	default:
		return fmt.Sprintf("Axis3D(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
	}
}
