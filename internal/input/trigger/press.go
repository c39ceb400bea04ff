package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// Down fires every tick the value is actuated. This is the default
// condition for an action declared without any explicit trigger.
type Down struct {
	// Threshold overrides DefaultActuation when positive.
	Threshold float32
}

// Evaluate implements Trigger.
func (d *Down) Evaluate(_ Resolver, v value.Value, _ time.Duration) action.State {
	if v.Actuated(threshold(d.Threshold)) {
		return action.StateFired
	}
	return action.StateNone
}

// Kind implements Trigger.
func (d *Down) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (d *Down) Reset() {}

// Press fires exactly on the tick the value crosses from below the
// threshold to at or above it, and is None otherwise.
type Press struct {
	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	actuated bool
}

// Evaluate implements Trigger.
func (p *Press) Evaluate(_ Resolver, v value.Value, _ time.Duration) action.State {
	was := p.actuated
	p.actuated = v.Actuated(threshold(p.Threshold))
	if p.actuated && !was {
		return action.StateFired
	}
	return action.StateNone
}

// Kind implements Trigger.
func (p *Press) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (p *Press) Reset() { p.actuated = false }

// Release is Ongoing while the value is actuated and fires on the tick the
// value drops back below the threshold.
type Release struct {
	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	actuated bool
}

// Evaluate implements Trigger.
func (r *Release) Evaluate(_ Resolver, v value.Value, _ time.Duration) action.State {
	was := r.actuated
	r.actuated = v.Actuated(threshold(r.Threshold))
	switch {
	case r.actuated:
		return action.StateOngoing
	case was:
		return action.StateFired
	default:
		return action.StateNone
	}
}

// Kind implements Trigger.
func (r *Release) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (r *Release) Reset() { r.actuated = false }
