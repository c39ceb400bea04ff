package modifier

import (
	"testing"
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

const tick = 16 * time.Millisecond

func apply(t *testing.T, m Modifier, v value.Value, dt time.Duration) value.Value {
	t.Helper()
	got, err := m.Apply(v, dt)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return got
}

func TestDeadZoneRadial(t *testing.T) {
	dz := NewDeadZone()

	tests := []struct {
		name string
		in   value.Value
		want value.Value
	}{
		{"below zone", value.Axis1D(0.1), value.Axis1D(0)},
		{"at lower edge", value.Axis1D(0.2), value.Axis1D(0)},
		{"midway", value.Axis1D(0.6), value.Axis1D(0.5)},
		{"full", value.Axis1D(1.0), value.Axis1D(1.0)},
		{"negative midway", value.Axis1D(-0.6), value.Axis1D(-0.5)},
		{"bool widens", value.Bool(true), value.Axis1D(1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, dz, tt.in, tick)
			if !got.Equals(tt.want, 1e-5) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeadZoneRadialPreservesDirection(t *testing.T) {
	dz := NewDeadZone()
	got := apply(t, dz, value.Axis2D(0.6, 0.8), tick) // magnitude 1.0

	if mag := got.Magnitude(); mag < 0.999 || mag > 1.001 {
		t.Errorf("magnitude = %v, want 1", mag)
	}
	if got.X/got.Y < 0.74 || got.X/got.Y > 0.76 {
		t.Errorf("direction changed: %v", got)
	}
}

func TestDeadZoneAxial(t *testing.T) {
	dz := &DeadZone{Mode: DeadZoneAxial, Lower: 0.2, Upper: 1.0}
	got := apply(t, dz, value.Axis2D(0.1, 0.6), tick)
	want := value.Axis2D(0, 0.5)
	if !got.Equals(want, 1e-5) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		mod  *Scale
		in   value.Value
		want value.Value
	}{
		{"splat bool", NewScale(2), value.Bool(true), value.Axis1D(2)},
		{"splat false", NewScale(2), value.Bool(false), value.Axis1D(0)},
		{"axis1d", NewScale(2), value.Axis1D(1), value.Axis1D(2)},
		{"axis2d", NewScale(2), value.Axis2D(1, 1), value.Axis2D(2, 2)},
		{"per axis", &Scale{X: 1, Y: -1, Z: 0}, value.Axis3D(2, 2, 2), value.Axis3D(2, -2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(t, tt.mod, tt.in, tick); got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeltaScale(t *testing.T) {
	half := 500 * time.Millisecond

	tests := []struct {
		name string
		in   value.Value
		want value.Value
	}{
		{"bool", value.Bool(true), value.Axis1D(0.5)},
		{"bool false", value.Bool(false), value.Axis1D(0)},
		{"axis1d", value.Axis1D(0.5), value.Axis1D(0.25)},
		{"axis2d", value.Axis2D(1, 1), value.Axis2D(0.5, 0.5)},
		{"axis3d", value.Axis3D(1, 1, 1), value.Axis3D(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, DeltaScale{}, tt.in, half)
			if !got.Equals(tt.want, 1e-6) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNegate(t *testing.T) {
	got := apply(t, &Negate{X: true}, value.Axis2D(1, 2), tick)
	want := value.Axis2D(-1, 2)
	if got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}

	got = apply(t, NewNegate(), value.Bool(true), tick)
	if got != value.Axis1D(-1) {
		t.Errorf("NewNegate on Bool = %v, want Axis1D(-1)", got)
	}
}

func TestSwizzle(t *testing.T) {
	tests := []struct {
		order SwizzleOrder
		want  value.Value
	}{
		{OrderYXZ, value.Axis3D(2, 1, 3)},
		{OrderZYX, value.Axis3D(3, 2, 1)},
		{OrderXZY, value.Axis3D(1, 3, 2)},
		{OrderYZX, value.Axis3D(2, 3, 1)},
		{OrderZXY, value.Axis3D(3, 1, 2)},
	}

	in := value.Axis3D(1, 2, 3)
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			got := apply(t, &Swizzle{Order: tt.order}, in, tick)
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSwizzleUndefined(t *testing.T) {
	tests := []struct {
		name  string
		order SwizzleOrder
		in    value.Value
	}{
		{"bool", OrderYXZ, value.Bool(true)},
		{"axis1d swap", OrderYXZ, value.Axis1D(1)},
		{"axis2d needs z", OrderZYX, value.Axis2D(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (&Swizzle{Order: tt.order}).Apply(tt.in, tick); err == nil {
				t.Error("Apply() should fail for undefined mapping, got nil error")
			}
		})
	}
}

func TestSwizzleSwapOnAxis2D(t *testing.T) {
	got := apply(t, &Swizzle{Order: OrderYXZ}, value.Axis2D(1, 2), tick)
	want := value.Axis2D(2, 1)
	if got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestReorder(t *testing.T) {
	got := apply(t, &Reorder{Component: 1}, value.Axis2D(1, 2), tick)
	if got != value.Axis1D(2) {
		t.Errorf("Apply() = %v, want Axis1D(2)", got)
	}

	if _, err := (&Reorder{Component: 2}).Apply(value.Axis2D(1, 2), tick); err == nil {
		t.Error("selecting Z of an Axis2D should fail, got nil error")
	}
}

func TestClamp(t *testing.T) {
	got := apply(t, &Clamp{Min: -1, Max: 1}, value.Axis2D(2, -3), tick)
	want := value.Axis2D(1, -1)
	if got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	got := apply(t, Normalize{}, value.Axis2D(1, 1), tick)
	if mag := got.Magnitude(); mag < 0.999 || mag > 1.001 {
		t.Errorf("magnitude = %v, want 1", mag)
	}
}

func TestLerpSmootherConverges(t *testing.T) {
	sm := NewLerpSmoother(20)

	// First sample primes the state.
	got := apply(t, sm, value.Axis1D(0), tick)
	if got != value.Axis1D(0) {
		t.Fatalf("first Apply() = %v, want 0", got)
	}

	// Repeated target of 1.0 approaches but does not jump to 1.
	for i := 0; i < 3; i++ {
		got = apply(t, sm, value.Axis1D(1), tick)
	}
	if got.X <= 0 || got.X >= 1 {
		t.Errorf("smoothed value = %v, want strictly between 0 and 1", got.X)
	}

	// Many samples converge.
	for i := 0; i < 500; i++ {
		got = apply(t, sm, value.Axis1D(1), tick)
	}
	if got.X < 0.99 {
		t.Errorf("smoothed value after convergence = %v, want ~1", got.X)
	}
}

func TestLerpSmootherZeroDelta(t *testing.T) {
	sm := NewLerpSmoother(20)
	apply(t, sm, value.Axis1D(0), tick)
	mid := apply(t, sm, value.Axis1D(1), tick)

	// Paused tick: output holds, regardless of input.
	held := apply(t, sm, value.Axis1D(1), 0)
	if held != mid {
		t.Errorf("Apply(dt=0) = %v, want held %v", held, mid)
	}
}

func TestWindowSmootherAverages(t *testing.T) {
	sm := NewWindowSmoother(4)

	apply(t, sm, value.Axis1D(1), tick)
	got := apply(t, sm, value.Axis1D(0), tick)
	if !got.Equals(value.Axis1D(0.5), 1e-5) {
		t.Errorf("partial window average = %v, want 0.5", got)
	}

	apply(t, sm, value.Axis1D(1), tick)
	got = apply(t, sm, value.Axis1D(0), tick)
	if !got.Equals(value.Axis1D(0.5), 1e-5) {
		t.Errorf("full window average = %v, want 0.5", got)
	}

	sm.Reset()
	got = apply(t, sm, value.Axis1D(1), tick)
	if !got.Equals(value.Axis1D(1), 1e-5) {
		t.Errorf("average after Reset = %v, want 1", got)
	}
}

func TestChainOrderMatters(t *testing.T) {
	in := value.Axis1D(0.3)

	dzThenScale := Chain{NewDeadZone(), NewScale(2)}
	scaleThenDz := Chain{NewScale(2), NewDeadZone()}

	a, err := dzThenScale.Apply(in, tick)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	b, err := scaleThenDz.Apply(in, tick)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if a.Equals(b, 1e-6) {
		t.Errorf("chain order should change result, both = %v", a)
	}
}

func TestChainStopsOnError(t *testing.T) {
	chain := Chain{&Swizzle{Order: OrderZYX}, NewScale(2)}
	if _, err := chain.Apply(value.Axis2D(1, 2), tick); err == nil {
		t.Error("chain with undefined swizzle should fail, got nil error")
	}
}
