package snapshot

import (
	"github.com/dshills/tactile/internal/input/control"
)

// State is a mutable Snapshot implementation. A device backend (or a test)
// presses and releases controls and sets axis values between ticks, then
// calls Step once per tick so that just-pressed/just-released edges are
// derived from the previous tick's state.
//
// State is not safe for concurrent use; the host serializes mutation with
// engine evaluation.
type State struct {
	down map[control.ID]bool
	prev map[control.ID]bool
	ax1  map[control.ID]float32
	ax2  map[control.ID][2]float32
	mods control.ModMask
}

// NewState creates an empty snapshot state.
func NewState() *State {
	return &State{
		down: make(map[control.ID]bool),
		prev: make(map[control.ID]bool),
		ax1:  make(map[control.ID]float32),
		ax2:  make(map[control.ID][2]float32),
	}
}

// Press marks the control as held.
func (s *State) Press(c control.Control) {
	s.down[c.ID()] = true
}

// Release marks the control as up.
func (s *State) Release(c control.Control) {
	delete(s.down, c.ID())
}

// SetAxis1 sets a one-dimensional axis deflection.
func (s *State) SetAxis1(c control.Control, v float32) {
	s.ax1[c.ID()] = v
}

// SetAxis2 sets a two-dimensional axis deflection.
func (s *State) SetAxis2(c control.Control, x, y float32) {
	s.ax2[c.ID()] = [2]float32{x, y}
}

// SetMods sets the currently held keyboard modifiers.
func (s *State) SetMods(mods control.ModMask) {
	s.mods = mods
}

// Step rolls the current tick into history so edge queries work, and
// zeroes relative axes (mouse motion, wheel), which report per-tick deltas.
func (s *State) Step() {
	for id := range s.prev {
		delete(s.prev, id)
	}
	for id, d := range s.down {
		s.prev[id] = d
	}
	for id := range s.ax2 {
		if (control.Control{Device: id.Device, Code: id.Code}).IsRelative() {
			delete(s.ax2, id)
		}
	}
}

// Clear releases every control and zeroes every axis.
func (s *State) Clear() {
	for id := range s.down {
		delete(s.down, id)
	}
	for id := range s.ax1 {
		delete(s.ax1, id)
	}
	for id := range s.ax2 {
		delete(s.ax2, id)
	}
	s.mods = control.ModNone
}

// Pressed implements Snapshot.
func (s *State) Pressed(c control.Control) bool {
	return s.down[c.ID()] && s.mods.Contains(c.Mods)
}

// JustPressed implements Snapshot.
func (s *State) JustPressed(c control.Control) bool {
	return s.Pressed(c) && !s.prev[c.ID()]
}

// JustReleased implements Snapshot.
func (s *State) JustReleased(c control.Control) bool {
	return !s.down[c.ID()] && s.prev[c.ID()]
}

// Axis1 implements Snapshot.
func (s *State) Axis1(c control.Control) float32 {
	return s.ax1[c.ID()]
}

// Axis2 implements Snapshot.
func (s *State) Axis2(c control.Control) (float32, float32) {
	v := s.ax2[c.ID()]
	return v[0], v[1]
}
