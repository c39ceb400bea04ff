// Package action defines the discrete activation lifecycle of a semantic
// input action: the per-tick State produced by triggers and the lifecycle
// events derived from state transitions.
package action

import (
	"fmt"

	"github.com/dshills/tactile/internal/input/value"
)

// State is the discrete activation state of an action on a given tick.
// States are ordered: Fired > Ongoing > None, which combinators and
// implicit conditions rely on.
type State uint8

const (
	// StateNone means the action's conditions are not met.
	StateNone State = iota

	// StateOngoing means conditions are partially met (e.g. a hold that
	// has not yet reached its duration).
	StateOngoing

	// StateFired means the action's conditions are fully met this tick.
	StateFired
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateOngoing:
		return "Ongoing"
	case StateFired:
		return "Fired"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Min returns the weaker of two states.
func Min(a, b State) State {
	if a < b {
		return a
	}
	return b
}

// Max returns the stronger of two states.
func Max(a, b State) State {
	if a > b {
		return a
	}
	return b
}

// EventKind classifies a lifecycle transition.
type EventKind uint8

const (
	// EventStarted fires when an action leaves None.
	EventStarted EventKind = iota

	// EventOngoing fires every tick the action remains Ongoing.
	EventOngoing

	// EventFired fires every tick the action is in Fired.
	EventFired

	// EventCompleted fires when a Fired action returns to None.
	EventCompleted

	// EventCanceled fires when an Ongoing action returns to None without
	// having fired (e.g. a tap that missed its window).
	EventCanceled
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "Started"
	case EventOngoing:
		return "Ongoing"
	case EventFired:
		return "Fired"
	case EventCompleted:
		return "Completed"
	case EventCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is one lifecycle notification emitted by the engine for one action
// on one tick, carrying the tick's accumulated value.
type Event struct {
	// Consumer identifies the stack the action's context belongs to.
	Consumer string

	// Context is the name of the owning context.
	Context string

	// Action is the action's name.
	Action string

	// Kind is the lifecycle transition.
	Kind EventKind

	// State is the action's state after this tick.
	State State

	// Value is the action's accumulated value for this tick.
	Value value.Value
}

// String returns a compact representation for logs.
func (e Event) String() string {
	return fmt.Sprintf("%s/%s.%s %s %s", e.Consumer, e.Context, e.Action, e.Kind, e.Value)
}

// AppendTransitions appends the lifecycle events implied by a state
// transition to dst and returns it. The mapping is total:
//
//	None    → Ongoing  Started, Ongoing
//	None    → Fired    Started, Fired
//	Ongoing → Ongoing  Ongoing
//	Ongoing → Fired    Fired
//	Ongoing → None     Canceled
//	Fired   → Fired    Fired
//	Fired   → Ongoing  Ongoing
//	Fired   → None     Completed
//
// None → None produces nothing.
func AppendTransitions(dst []EventKind, prev, next State) []EventKind {
	switch prev {
	case StateNone:
		switch next {
		case StateOngoing:
			return append(dst, EventStarted, EventOngoing)
		case StateFired:
			return append(dst, EventStarted, EventFired)
		}
	case StateOngoing:
		switch next {
		case StateOngoing:
			return append(dst, EventOngoing)
		case StateFired:
			return append(dst, EventFired)
		case StateNone:
			return append(dst, EventCanceled)
		}
	case StateFired:
		switch next {
		case StateFired:
			return append(dst, EventFired)
		case StateOngoing:
			return append(dst, EventOngoing)
		case StateNone:
			return append(dst, EventCompleted)
		}
	}
	return dst
}
