package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// All is the AND combinator: the result is the weakest member state, so it
// is Ongoing only when every member is at least Ongoing and Fired only when
// every member is Fired.
//
// Every member is evaluated every tick even after the result is decided,
// so member timers keep advancing. Members must be explicit triggers;
// registration rejects anything else.
type All struct {
	Members []Trigger
}

// Evaluate implements Trigger.
func (a *All) Evaluate(r Resolver, v value.Value, dt time.Duration) action.State {
	if len(a.Members) == 0 {
		return action.StateNone
	}
	result := action.StateFired
	for _, m := range a.Members {
		result = action.Min(result, m.Evaluate(r, v, dt))
	}
	return result
}

// Kind implements Trigger.
func (a *All) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (a *All) Reset() {
	for _, m := range a.Members {
		m.Reset()
	}
}

// Any is the OR combinator: the result is the strongest member state
// (Fired > Ongoing > None). Every member is evaluated every tick.
type Any struct {
	Members []Trigger
}

// Evaluate implements Trigger.
func (a *Any) Evaluate(r Resolver, v value.Value, dt time.Duration) action.State {
	result := action.StateNone
	for _, m := range a.Members {
		result = action.Max(result, m.Evaluate(r, v, dt))
	}
	return result
}

// Kind implements Trigger.
func (a *Any) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (a *Any) Reset() {
	for _, m := range a.Members {
		m.Reset()
	}
}
