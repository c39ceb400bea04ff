// Package context groups action declarations for one consumer: which
// actions exist, what feeds them, what triggers them, how the context ranks
// against others, and whether its activity consumes raw input from
// lower-priority contexts.
package context

import (
	"errors"
	"fmt"

	"github.com/dshills/tactile/internal/input/binding"
	"github.com/dshills/tactile/internal/input/trigger"
	"github.com/dshills/tactile/internal/input/value"
)

// ErrInvalidContext wraps every registration-time configuration error so
// hosts can detect the class with errors.Is.
var ErrInvalidContext = errors.New("invalid context")

// ActionSpec declares one action within a context: its identity, the value
// kind it accumulates, its bindings, and its triggers.
type ActionSpec struct {
	// Name is the action's stable identity within the context.
	Name string

	// Kind is the declared value kind. Binding outputs are converted to
	// this kind before accumulation.
	Kind value.Kind

	// Accumulation combines multiple binding contributions.
	Accumulation binding.Accumulation

	// Bindings feed the action. Each is owned by this context alone.
	Bindings []binding.Binding

	// Triggers gate activation. An action without explicit triggers uses
	// implicit Down semantics: Fired while the accumulated value is
	// actuated.
	Triggers []trigger.Trigger

	// Combine selects how multiple explicit triggers merge. Default is
	// CombineAny (OR).
	Combine Combine
}

// Combine selects the combinator applied across an action's explicit
// triggers.
type Combine uint8

const (
	// CombineAny takes the strongest state among explicit triggers.
	CombineAny Combine = iota

	// CombineAll takes the weakest state; Fired only when all fire.
	CombineAll
)

// String returns a human-readable name for the combine mode.
func (c Combine) String() string {
	switch c {
	case CombineAny:
		return "Any"
	case CombineAll:
		return "All"
	default:
		return fmt.Sprintf("Combine(%d)", c)
	}
}

// KindConstrained is implemented by triggers that only operate on certain
// value kinds. Validation rejects an action whose declared kind the
// trigger does not allow.
type KindConstrained interface {
	AllowsKind(k value.Kind) bool
}

// Context is an ordered set of action declarations with a priority and a
// consumption policy. Higher priority evaluates first; equal priorities
// keep registration order.
type Context struct {
	// Name identifies the context, e.g. "gameplay" or "menu".
	Name string

	// Priority orders the context within its consumer's stack.
	Priority int

	// ConsumeInput, when set, hides controls that contributed to this
	// context's active actions from lower-priority contexts for the rest
	// of the tick.
	ConsumeInput bool

	// Actions are the declarations, in declaration order.
	Actions []ActionSpec
}

// New creates a consuming context with the given name.
func New(name string) *Context {
	return &Context{Name: name, ConsumeInput: true}
}

// WithPriority sets the context's priority.
func (c *Context) WithPriority(priority int) *Context {
	c.Priority = priority
	return c
}

// NonConsuming marks the context as transparent: lower-priority contexts
// see its raw inputs regardless of this context's outcome.
func (c *Context) NonConsuming() *Context {
	c.ConsumeInput = false
	return c
}

// AddAction appends an action declaration.
func (c *Context) AddAction(spec ActionSpec) *Context {
	c.Actions = append(c.Actions, spec)
	return c
}

// Action returns the named action spec, or nil.
func (c *Context) Action(name string) *ActionSpec {
	for i := range c.Actions {
		if c.Actions[i].Name == name {
			return &c.Actions[i]
		}
	}
	return nil
}

// Validate checks the context against the registration-time rules:
// non-empty names, unique action identities, trigger kind constraints,
// dependent triggers referencing existing non-dependent siblings, and no
// dependent triggers nested inside combinators. All failures wrap
// ErrInvalidContext.
func (c *Context) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty context name", ErrInvalidContext)
	}

	seen := make(map[string]bool, len(c.Actions))
	for i := range c.Actions {
		spec := &c.Actions[i]
		if spec.Name == "" {
			return fmt.Errorf("%w: context %q: action %d has empty name", ErrInvalidContext, c.Name, i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: context %q: duplicate action %q", ErrInvalidContext, c.Name, spec.Name)
		}
		seen[spec.Name] = true
		if spec.Kind > value.KindAxis3D {
			return fmt.Errorf("%w: context %q: action %q: unknown value kind %d", ErrInvalidContext, c.Name, spec.Name, spec.Kind)
		}
	}

	for i := range c.Actions {
		if err := c.validateTriggers(&c.Actions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateTriggers checks one action's trigger set.
func (c *Context) validateTriggers(spec *ActionSpec) error {
	for _, t := range spec.Triggers {
		if kc, ok := t.(KindConstrained); ok && !kc.AllowsKind(spec.Kind) {
			return fmt.Errorf("%w: context %q: action %q: trigger %T does not accept kind %s",
				ErrInvalidContext, c.Name, spec.Name, t, spec.Kind)
		}

		switch m := t.(type) {
		case *trigger.All:
			if err := c.validateMembers(spec, m.Members); err != nil {
				return err
			}
		case *trigger.Any:
			if err := c.validateMembers(spec, m.Members); err != nil {
				return err
			}
		}

		dep, ok := t.(trigger.Dependent)
		if !ok {
			continue
		}
		target := c.Action(dep.Dependency())
		if target == nil {
			return fmt.Errorf("%w: context %q: action %q references unknown action %q",
				ErrInvalidContext, c.Name, spec.Name, dep.Dependency())
		}
		if target.Name == spec.Name {
			return fmt.Errorf("%w: context %q: action %q references itself",
				ErrInvalidContext, c.Name, spec.Name)
		}
		// Dependencies must not chain: a chord may only reference an
		// action that is itself independent.
		for _, tt := range target.Triggers {
			if _, chained := tt.(trigger.Dependent); chained {
				return fmt.Errorf("%w: context %q: action %q chords to %q, which is itself dependent",
					ErrInvalidContext, c.Name, spec.Name, target.Name)
			}
		}
	}
	return nil
}

// validateMembers rejects dependent or non-explicit triggers inside a
// combinator; dependencies attach at the action level where the engine's
// two-pass order can see them.
func (c *Context) validateMembers(spec *ActionSpec, members []trigger.Trigger) error {
	for _, m := range members {
		if m.Kind() != trigger.KindExplicit {
			return fmt.Errorf("%w: context %q: action %q: combinator member %T must be an explicit trigger",
				ErrInvalidContext, c.Name, spec.Name, m)
		}
	}
	return nil
}

// Reset clears all trigger and modifier state in the context, giving a
// freshly registered context clean timers.
func (c *Context) Reset() {
	for i := range c.Actions {
		spec := &c.Actions[i]
		for _, t := range spec.Triggers {
			t.Reset()
		}
		for j := range spec.Bindings {
			spec.Bindings[j].Reset()
		}
	}
}

// HasDependents reports whether any action carries a dependent (implicit
// or blocker) trigger, which forces the engine's second resolution pass.
func (c *Context) HasDependents() bool {
	for i := range c.Actions {
		for _, t := range c.Actions[i].Triggers {
			if t.Kind() != trigger.KindExplicit {
				return true
			}
		}
	}
	return false
}
