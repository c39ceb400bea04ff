package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// Hold is Ongoing while the value stays actuated and fires once the held
// duration reaches Duration. With Repeat set it stays Fired for as long as
// the hold continues; otherwise it fires for a single tick and reports
// Ongoing afterwards. Releasing resets to None.
type Hold struct {
	// Duration is the required hold time.
	Duration time.Duration

	// Repeat keeps the trigger in Fired after the duration is reached.
	Repeat bool

	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	held  time.Duration
	fired bool
}

// Evaluate implements Trigger.
func (h *Hold) Evaluate(_ Resolver, v value.Value, dt time.Duration) action.State {
	if !v.Actuated(threshold(h.Threshold)) {
		h.held = 0
		h.fired = false
		return action.StateNone
	}

	h.held += dt
	if h.held < h.Duration {
		return action.StateOngoing
	}
	if h.Repeat {
		return action.StateFired
	}
	if !h.fired {
		h.fired = true
		return action.StateFired
	}
	return action.StateOngoing
}

// Kind implements Trigger.
func (h *Hold) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (h *Hold) Reset() {
	h.held = 0
	h.fired = false
}

// HoldAndRelease is Ongoing while held and fires on the release tick, but
// only if the hold lasted at least HoldTime. A shorter hold ends in None
// (the engine reports it as Canceled).
type HoldAndRelease struct {
	// HoldTime is the minimum hold before a release qualifies.
	HoldTime time.Duration

	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	held     time.Duration
	actuated bool
}

// Evaluate implements Trigger.
func (h *HoldAndRelease) Evaluate(_ Resolver, v value.Value, dt time.Duration) action.State {
	if v.Actuated(threshold(h.Threshold)) {
		h.actuated = true
		h.held += dt
		return action.StateOngoing
	}

	if h.actuated {
		held := h.held
		h.actuated = false
		h.held = 0
		if held >= h.HoldTime {
			return action.StateFired
		}
	}
	return action.StateNone
}

// Kind implements Trigger.
func (h *HoldAndRelease) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (h *HoldAndRelease) Reset() {
	h.held = 0
	h.actuated = false
}
