package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// Chord requires another action in the same context to be active and
// inherits that action's state. It is implicit: the engine evaluates it
// after the referenced sibling has been resolved, and the result can only
// clamp the action's explicit state downward.
//
// A chord referencing another chorded action is rejected at registration,
// so dependencies never chain.
type Chord struct {
	// Action is the required sibling's name.
	Action string
}

// Evaluate implements Trigger. A missing sibling resolves to None;
// registration validation makes that unreachable in practice.
func (c *Chord) Evaluate(r Resolver, _ value.Value, _ time.Duration) action.State {
	if r == nil {
		return action.StateNone
	}
	st, ok := r.ActionState(c.Action)
	if !ok {
		return action.StateNone
	}
	return st
}

// Kind implements Trigger.
func (c *Chord) Kind() Kind { return KindImplicit }

// Reset implements Trigger.
func (c *Chord) Reset() {}

// Dependency implements Dependent.
func (c *Chord) Dependency() string { return c.Action }

// BlockBy vetoes the action on any tick the named sibling action is Fired.
// Typical use: suppress "fire" while "reload" is running.
type BlockBy struct {
	// Action is the blocking sibling's name.
	Action string
}

// Evaluate implements Trigger. A non-None result means "blocked".
func (b *BlockBy) Evaluate(r Resolver, _ value.Value, _ time.Duration) action.State {
	if r == nil {
		return action.StateNone
	}
	if st, ok := r.ActionState(b.Action); ok && st == action.StateFired {
		return action.StateFired
	}
	return action.StateNone
}

// Kind implements Trigger.
func (b *BlockBy) Kind() Kind { return KindBlocker }

// Reset implements Trigger.
func (b *BlockBy) Reset() {}

// Dependency implements Dependent.
func (b *BlockBy) Dependency() string { return b.Action }
