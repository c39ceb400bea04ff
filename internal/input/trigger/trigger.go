// Package trigger provides the temporal conditions that turn an action's
// accumulated value into a discrete activation state: press, hold, tap,
// pulse, chords, and AND/OR combinators over them.
//
// Triggers are small state machines. Each owns its private timing state
// (held duration, tap clocks, pulse accumulators) and is advanced exactly
// once per tick by the engine. A zero delta time (paused tick) freezes
// timers without resetting them.
//
// # Kinds
//
// Explicit triggers are driven by the action's own accumulated value.
// Implicit triggers (Chord) depend on a sibling action's resolved state and
// can only lower the combined result, never raise it. Blocker triggers
// (BlockBy) veto the action outright. The engine resolves an action's
// triggers in a fixed order: blockers, then explicit triggers through the
// action's combinator, then implicit triggers clamping the result.
package trigger

import (
	"fmt"
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// DefaultActuation is the magnitude threshold at which a value counts as
// actuated when a trigger does not set its own.
const DefaultActuation = 0.5

// Kind classifies how a trigger participates in resolution.
type Kind uint8

const (
	// KindExplicit triggers are driven by the action's own value.
	KindExplicit Kind = iota

	// KindImplicit triggers depend on sibling action state and clamp the
	// explicit result.
	KindImplicit

	// KindBlocker triggers veto the action when satisfied.
	KindBlocker
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "Explicit"
	case KindImplicit:
		return "Implicit"
	case KindBlocker:
		return "Blocker"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Resolver gives dependent triggers read access to sibling action states
// within the same context. The engine guarantees siblings named by
// dependent triggers are resolved before the dependent trigger runs.
type Resolver interface {
	// ActionState returns the named sibling's state for this tick.
	// The second result is false if the action does not exist.
	ActionState(name string) (action.State, bool)
}

// Trigger is the condition state machine attached to an action.
type Trigger interface {
	// Evaluate consumes this tick's accumulated value and delta time and
	// returns the trigger's state. The resolver is nil-safe for explicit
	// triggers; dependent triggers receive the sibling lookup.
	Evaluate(r Resolver, v value.Value, dt time.Duration) action.State

	// Kind reports how the trigger participates in resolution.
	Kind() Kind

	// Reset clears all private timing state, returning the trigger to its
	// initial configuration.
	Reset()
}

// Dependent is implemented by triggers that reference another action by
// name (Chord, BlockBy). Registration uses it for cycle and existence
// checks.
type Dependent interface {
	// Dependency returns the referenced action's name.
	Dependency() string
}

// threshold returns t if positive, else the default actuation level.
func threshold(t float32) float32 {
	if t > 0 {
		return t
	}
	return DefaultActuation
}
