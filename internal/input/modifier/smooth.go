package modifier

import (
	"math"
	"time"

	"github.com/dshills/tactile/internal/input/value"
)

// LerpSmoother exponentially eases the output toward the input. Speed
// controls how aggressively: higher is snappier, with the output covering
// roughly 63% of the remaining distance per 1/Speed seconds.
//
// A zero delta time (paused tick) returns the held value unchanged.
type LerpSmoother struct {
	Speed float32

	current value.Value
	primed  bool
}

// NewLerpSmoother returns a smoother with the given speed.
func NewLerpSmoother(speed float32) *LerpSmoother {
	return &LerpSmoother{Speed: speed}
}

// Apply implements Modifier.
func (l *LerpSmoother) Apply(v value.Value, dt time.Duration) (value.Value, error) {
	if v.Kind == value.KindBool {
		v = v.Convert(value.KindAxis1D)
	}
	if !l.primed || l.current.Kind != v.Kind {
		l.current = v
		l.primed = true
		return v, nil
	}
	if dt <= 0 {
		return l.current, nil
	}
	t := 1 - float32(math.Exp(float64(-l.Speed)*dt.Seconds()))
	l.current = l.current.Lerp(v, t)
	return l.current, nil
}

// Reset implements Resettable.
func (l *LerpSmoother) Reset() {
	l.current = value.Value{}
	l.primed = false
}

// WindowSmoother averages the last N samples in a fixed ring buffer sized
// at construction. It trades latency for stability, useful for noisy mouse
// deltas.
type WindowSmoother struct {
	window []value.Value
	next   int
	filled int
}

// NewWindowSmoother returns a smoother averaging over size samples.
// Sizes below one are treated as one.
func NewWindowSmoother(size int) *WindowSmoother {
	if size < 1 {
		size = 1
	}
	return &WindowSmoother{window: make([]value.Value, size)}
}

// Apply implements Modifier.
func (w *WindowSmoother) Apply(v value.Value, _ time.Duration) (value.Value, error) {
	if v.Kind == value.KindBool {
		v = v.Convert(value.KindAxis1D)
	}
	w.window[w.next] = v
	w.next = (w.next + 1) % len(w.window)
	if w.filled < len(w.window) {
		w.filled++
	}

	sum := value.Zero(v.Kind)
	for i := 0; i < w.filled; i++ {
		s := w.window[i].Convert(v.Kind)
		sum.X += s.X
		sum.Y += s.Y
		sum.Z += s.Z
	}
	return sum.Scale(1 / float32(w.filled)), nil
}

// Reset implements Resettable.
func (w *WindowSmoother) Reset() {
	for i := range w.window {
		w.window[i] = value.Value{}
	}
	w.next = 0
	w.filled = 0
}
