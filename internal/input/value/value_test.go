package value

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBool, "Bool"},
		{KindAxis1D, "Axis1D"},
		{KindAxis2D, "Axis2D"},
		{KindAxis3D, "Axis3D"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertWidening(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		to   Kind
		want Value
	}{
		{"bool true to axis1d", Bool(true), KindAxis1D, Axis1D(1)},
		{"bool false to axis1d", Bool(false), KindAxis1D, Axis1D(0)},
		{"bool to axis2d", Bool(true), KindAxis2D, Axis2D(1, 0)},
		{"axis1d to axis2d", Axis1D(0.5), KindAxis2D, Axis2D(0.5, 0)},
		{"axis1d to axis3d", Axis1D(0.5), KindAxis3D, Axis3D(0.5, 0, 0)},
		{"axis2d to axis3d", Axis2D(1, 2), KindAxis3D, Axis3D(1, 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Convert(tt.to); got != tt.want {
				t.Errorf("Convert(%s) = %v, want %v", tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertNarrowing(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		to   Kind
		want Value
	}{
		{"axis2d drops y", Axis2D(0.5, 0.7), KindAxis1D, Axis1D(0.5)},
		{"axis3d drops z", Axis3D(1, 2, 3), KindAxis2D, Axis2D(1, 2)},
		{"axis1d to bool actuated", Axis1D(0.3), KindBool, Bool(true)},
		{"axis1d to bool zero", Axis1D(0), KindBool, Bool(false)},
		{"axis2d to bool", Axis2D(0, 0.2), KindBool, Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Convert(tt.to); got != tt.want {
				t.Errorf("Convert(%s) = %v, want %v", tt.to, got, tt.want)
			}
		})
	}
}

func TestAddSameKind(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"axis1d", Axis1D(0.25), Axis1D(0.5), Axis1D(0.75)},
		{"axis2d", Axis2D(1, -1), Axis2D(-1, 2), Axis2D(0, 1)},
		{"axis3d", Axis3D(1, 1, 1), Axis3D(0, 0, 1), Axis3D(1, 1, 2)},
		{"bool or", Bool(false), Bool(true), Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Add() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddKindMismatch(t *testing.T) {
	if _, err := Axis1D(1).Add(Axis2D(1, 1)); err == nil {
		t.Error("Add() across kinds should fail, got nil error")
	}
}

func TestAddCommutativeAssociative(t *testing.T) {
	a := Axis2D(0.1, 0.2)
	b := Axis2D(-0.3, 0.4)
	c := Axis2D(0.5, -0.6)

	ab, _ := a.Add(b)
	ba, _ := b.Add(a)
	if !ab.Equals(ba, 1e-6) {
		t.Errorf("a+b = %v, b+a = %v", ab, ba)
	}

	abc, _ := ab.Add(c)
	bc, _ := b.Add(c)
	abc2, _ := a.Add(bc)
	if !abc.Equals(abc2, 1e-6) {
		t.Errorf("(a+b)+c = %v, a+(b+c) = %v", abc, abc2)
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want float32
	}{
		{"bool true", Bool(true), 1},
		{"bool false", Bool(false), 0},
		{"axis1d negative", Axis1D(-2), 2},
		{"axis2d 3-4-5", Axis2D(3, 4), 5},
		{"axis3d unit", Axis3D(0, 0, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Magnitude()
			if got < tt.want-1e-5 || got > tt.want+1e-5 {
				t.Errorf("Magnitude() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActuated(t *testing.T) {
	tests := []struct {
		name      string
		in        Value
		threshold float32
		want      bool
	}{
		{"at threshold", Axis1D(0.5), 0.5, true},
		{"below threshold", Axis1D(0.49), 0.5, false},
		{"within epsilon", Axis1D(0.5 - Epsilon/2), 0.5, true},
		{"bool pressed", Bool(true), 0.5, true},
		{"bool released", Bool(false), 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Actuated(tt.threshold); got != tt.want {
				t.Errorf("Actuated(%v) = %v, want %v", tt.threshold, got, tt.want)
			}
		})
	}
}

func TestClampMagnitude(t *testing.T) {
	got := Axis2D(3, 4).ClampMagnitude(1)
	if mag := got.Magnitude(); mag < 0.999 || mag > 1.001 {
		t.Errorf("ClampMagnitude(1).Magnitude() = %v, want 1", mag)
	}
	// Direction preserved: x/y ratio stays 3/4.
	if got.X/got.Y < 0.74 || got.X/got.Y > 0.76 {
		t.Errorf("ClampMagnitude changed direction: %v", got)
	}

	small := Axis2D(0.1, 0.1)
	if clamped := small.ClampMagnitude(1); clamped != small {
		t.Errorf("ClampMagnitude should not change short values, got %v", clamped)
	}
}

func TestScaleWidensBool(t *testing.T) {
	got := Bool(true).Scale(2.5)
	want := Axis1D(2.5)
	if got != want {
		t.Errorf("Bool.Scale() = %v, want %v", got, want)
	}
}

func TestNegate(t *testing.T) {
	got := Axis3D(1, 2, 3).Negate(true, false, true)
	want := Axis3D(-1, 2, -3)
	if got != want {
		t.Errorf("Negate() = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	got := Axis2D(0, 5).Normalize()
	if !got.Equals(Axis2D(0, 1), 1e-5) {
		t.Errorf("Normalize() = %v, want (0, 1)", got)
	}
	zero := Axis2D(0, 0)
	if got := zero.Normalize(); got != zero {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
}
