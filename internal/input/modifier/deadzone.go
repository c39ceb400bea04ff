package modifier

import (
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// DeadZoneMode selects how a dead zone measures deflection.
type DeadZoneMode uint8

const (
	// DeadZoneRadial measures the whole vector's magnitude. This is the
	// default and the right choice for sticks: it preserves direction.
	DeadZoneRadial DeadZoneMode = iota

	// DeadZoneAxial applies the zone to each axis independently.
	DeadZoneAxial
)

// DeadZone zeroes input below a lower threshold and rescales the remaining
// range so output still spans [0, 1] between the thresholds. Values at or
// above the upper threshold map to full deflection.
type DeadZone struct {
	Mode  DeadZoneMode
	Lower float32
	Upper float32
}

// NewDeadZone returns a radial dead zone with the conventional 0.2 lower
// and 1.0 upper thresholds.
func NewDeadZone() *DeadZone {
	return &DeadZone{Mode: DeadZoneRadial, Lower: 0.2, Upper: 1.0}
}

// Apply implements Modifier. Bool input widens to Axis1D.
func (d *DeadZone) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	if v.Kind == value.KindBool {
		v = v.Convert(value.KindAxis1D)
	}
	switch d.Mode {
	case DeadZoneAxial:
		return value.Value{
			Kind: v.Kind,
			X:    d.rescale(v.X),
			Y:    d.rescale(v.Y),
			Z:    d.rescale(v.Z),
		}, nil
	default:
		mag := v.Magnitude()
		if mag < value.Epsilon {
			return value.Zero(v.Kind), nil
		}
		scaled := d.rescale(mag)
		return v.Scale(scaled / mag), nil
	}
}

// rescale maps |f| from [Lower, Upper] onto [0, 1], preserving sign.
func (d *DeadZone) rescale(f float32) float32 {
	sign := float32(1)
	if f < 0 {
		sign = -1
		f = -f
	}
	if f <= d.Lower {
		return 0
	}
	span := d.Upper - d.Lower
	if span <= 0 {
		return sign
	}
	out := (f - d.Lower) / span
	if out > 1 {
		out = 1
	}
	return sign * out
}
