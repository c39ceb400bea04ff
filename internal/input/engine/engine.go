package engine

import (
	"errors"
	"log"
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/binding"
	"github.com/dshills/tactile/internal/input/context"
	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/snapshot"
	"github.com/dshills/tactile/internal/input/trigger"
	"github.com/dshills/tactile/internal/input/value"
)

// ErrTickInProgress is returned when EvaluateTick is re-entered. The
// offending call fails; the in-progress tick completes unaffected.
var ErrTickInProgress = errors.New("engine: evaluation already in progress")

// Logger is a printf-style log hook for non-fatal per-tick failures
// (undefined modifier mappings). Defaults to the standard logger.
type Logger func(format string, args ...any)

// EventSink receives lifecycle events as they are emitted. Optional;
// EvaluateTick also returns the tick's events.
type EventSink interface {
	HandleEvent(ev action.Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink routes lifecycle events to the given sink.
func WithSink(s EventSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithLogger replaces the default log function.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.logf = l }
}

// Engine drives one evaluation pass per host tick over every registered
// context stack. It owns all per-action runtime state between ticks.
type Engine struct {
	reg  *context.Registry
	snap snapshot.Snapshot
	sink EventSink
	logf Logger

	runtimes map[string]*contextRuntime
	consumed map[control.ID]struct{}
	events   []action.Event
	kinds    []action.EventKind
}

// New creates an engine over a registry and a raw input snapshot.
func New(reg *context.Registry, snap snapshot.Snapshot, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		snap:     snap,
		logf:     log.Printf,
		runtimes: make(map[string]*contextRuntime),
		consumed: make(map[control.ID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// contextRuntime is the engine-owned state for one registered context.
// It doubles as the trigger.Resolver handed to dependent triggers.
type contextRuntime struct {
	entry   *context.Entry
	actions []*actionRuntime
	byName  map[string]*actionRuntime
}

// ActionState implements trigger.Resolver.
func (rt *contextRuntime) ActionState(name string) (action.State, bool) {
	ar, ok := rt.byName[name]
	if !ok {
		return action.StateNone, false
	}
	return ar.state, true
}

// actionRuntime is one action's per-tick state.
type actionRuntime struct {
	spec  *context.ActionSpec
	state action.State
	prev  action.State
	val   value.Value

	// contributed lists controls whose capture was non-zero this tick,
	// for consumption marking.
	contributed []control.ID
}

// EvaluateTick runs one full evaluation pass:
//
//  1. Teardown events for contexts unregistered since the last tick.
//  2. Per consumer, walking contexts high-to-low priority: accumulate
//     each action's value from its bindings, honoring the tick's
//     consumed-control set.
//  3. Resolve explicit triggers, then dependent (chord/blocker) triggers
//     against the already-resolved siblings; mark consumed controls.
//  4. Diff each action's state against the previous tick and emit
//     lifecycle events.
//  5. Roll states over for the next tick.
//
// The returned slice is reused on the next call.
func (e *Engine) EvaluateTick(dt time.Duration) ([]action.Event, error) {
	if e.reg.Evaluating() {
		return nil, ErrTickInProgress
	}
	e.events = e.events[:0]
	e.emitRetired()

	e.reg.BeginTick()
	defer e.reg.EndTick()

	for _, consumer := range e.reg.Consumers() {
		clear(e.consumed)
		for _, entry := range e.reg.Stack(consumer) {
			rt := e.runtime(entry)
			e.accumulate(rt, dt)
			e.resolve(rt, dt)
			e.consume(rt)
		}
	}

	// Steps 4 and 5 run after every stack is resolved so events observe
	// the whole tick's outcome.
	for _, consumer := range e.reg.Consumers() {
		for _, entry := range e.reg.Stack(consumer) {
			rt := e.runtimes[entry.Handle.String()]
			for _, ar := range rt.actions {
				e.emit(consumer, rt.entry.Context.Name, ar)
				ar.prev = ar.state
			}
		}
	}
	return e.events, nil
}

// runtime returns the context's runtime, creating it on first evaluation.
func (e *Engine) runtime(entry *context.Entry) *contextRuntime {
	id := entry.Handle.String()
	if rt, ok := e.runtimes[id]; ok {
		return rt
	}
	ctx := entry.Context
	rt := &contextRuntime{
		entry:   entry,
		actions: make([]*actionRuntime, 0, len(ctx.Actions)),
		byName:  make(map[string]*actionRuntime, len(ctx.Actions)),
	}
	for i := range ctx.Actions {
		spec := &ctx.Actions[i]
		ar := &actionRuntime{spec: spec, val: value.Zero(spec.Kind)}
		rt.actions = append(rt.actions, ar)
		rt.byName[spec.Name] = ar
	}
	e.runtimes[id] = rt
	return rt
}

// accumulate computes each action's value from its bindings. Consumed
// controls contribute zero. A failed modifier chain zeroes that binding's
// contribution for this tick only and is logged.
func (e *Engine) accumulate(rt *contextRuntime, dt time.Duration) {
	for _, ar := range rt.actions {
		spec := ar.spec
		acc := value.Zero(spec.Kind)
		ar.contributed = ar.contributed[:0]

		for i := range spec.Bindings {
			b := &spec.Bindings[i]
			if _, taken := e.consumed[b.Control.ID()]; taken {
				continue
			}
			out, err := b.Capture(e.snap, dt)
			if err != nil {
				e.logf("input: %s.%s: %v", rt.entry.Context.Name, spec.Name, err)
				continue
			}
			conv := out.Convert(spec.Kind)
			if conv.AsBool() {
				ar.contributed = append(ar.contributed, b.Control.ID())
			}
			acc = binding.Accumulate(spec.Accumulation, acc, conv)
		}
		ar.val = binding.Finalize(spec.Accumulation, acc)
	}
}

// resolve runs the trigger passes for one context. Explicit triggers are
// evaluated for every action first; dependent triggers then read the
// resolved sibling states. Registration guarantees dependents only
// reference independent actions, so one dependent pass suffices.
func (e *Engine) resolve(rt *contextRuntime, dt time.Duration) {
	for _, ar := range rt.actions {
		ar.state = e.explicitState(ar, dt)
	}
	if !rt.entry.Context.HasDependents() {
		return
	}
	for _, ar := range rt.actions {
		ar.state = e.dependentState(rt, ar, dt)
	}
}

// explicitState resolves an action's explicit triggers through its
// combinator. An action with no explicit triggers defaults to Down
// semantics when it has bindings; a pure dependent alias (no bindings, no
// explicit triggers) starts from Fired and lets its implicit triggers
// decide.
func (e *Engine) explicitState(ar *actionRuntime, dt time.Duration) action.State {
	spec := ar.spec
	var result action.State
	evaluated := false

	switch spec.Combine {
	case context.CombineAll:
		result = action.StateFired
	default:
		result = action.StateNone
	}

	for _, t := range spec.Triggers {
		if t.Kind() != trigger.KindExplicit {
			continue
		}
		st := t.Evaluate(nil, ar.val, dt)
		evaluated = true
		if spec.Combine == context.CombineAll {
			result = action.Min(result, st)
		} else {
			result = action.Max(result, st)
		}
	}
	if evaluated {
		return result
	}
	if len(spec.Bindings) == 0 {
		return action.StateFired
	}
	if ar.val.Actuated(trigger.DefaultActuation) {
		return action.StateFired
	}
	return action.StateNone
}

// dependentState applies blockers and implicit triggers on top of the
// explicit result: a satisfied blocker forces None, and each implicit
// trigger clamps the state downward (a chord can gate, never promote).
func (e *Engine) dependentState(rt *contextRuntime, ar *actionRuntime, dt time.Duration) action.State {
	st := ar.state
	for _, t := range ar.spec.Triggers {
		switch t.Kind() {
		case trigger.KindBlocker:
			if t.Evaluate(rt, ar.val, dt) != action.StateNone {
				return action.StateNone
			}
		case trigger.KindImplicit:
			st = action.Min(st, t.Evaluate(rt, ar.val, dt))
		}
	}
	return st
}

// consume adds every control that contributed to an active action to the
// tick's consumed set, if the context's policy says so.
func (e *Engine) consume(rt *contextRuntime) {
	if !rt.entry.Context.ConsumeInput {
		return
	}
	for _, ar := range rt.actions {
		if ar.state == action.StateNone {
			continue
		}
		for _, id := range ar.contributed {
			e.consumed[id] = struct{}{}
		}
	}
}

// emit diffs one action against its previous state and appends the
// implied lifecycle events.
func (e *Engine) emit(consumer, ctxName string, ar *actionRuntime) {
	e.kinds = action.AppendTransitions(e.kinds[:0], ar.prev, ar.state)
	for _, k := range e.kinds {
		ev := action.Event{
			Consumer: consumer,
			Context:  ctxName,
			Action:   ar.spec.Name,
			Kind:     k,
			State:    ar.state,
			Value:    ar.val,
		}
		e.events = append(e.events, ev)
		if e.sink != nil {
			e.sink.HandleEvent(ev)
		}
	}
}

// emitRetired issues teardown events for contexts removed since the last
// tick: active actions are canceled or completed, then their state is
// discarded. A re-registered context of the same identity starts fresh.
func (e *Engine) emitRetired() {
	for _, entry := range e.reg.DrainRetired() {
		id := entry.Handle.String()
		rt, ok := e.runtimes[id]
		if !ok {
			continue
		}
		for _, ar := range rt.actions {
			var kind action.EventKind
			switch ar.prev {
			case action.StateOngoing:
				kind = action.EventCanceled
			case action.StateFired:
				kind = action.EventCompleted
			default:
				continue
			}
			ev := action.Event{
				Consumer: entry.Handle.Consumer(),
				Context:  entry.Context.Name,
				Action:   ar.spec.Name,
				Kind:     kind,
				State:    action.StateNone,
				Value:    value.Zero(ar.spec.Kind),
			}
			e.events = append(e.events, ev)
			if e.sink != nil {
				e.sink.HandleEvent(ev)
			}
		}
		delete(e.runtimes, id)
	}
}
