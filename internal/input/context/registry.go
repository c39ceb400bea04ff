package context

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Registry mutation errors.
var (
	// ErrMutationDuringTick is returned when the host attempts to change
	// the registry while an evaluation pass is in progress. The offending
	// call fails; the in-progress tick is unaffected.
	ErrMutationDuringTick = errors.New("context: registry mutation during evaluation")

	// ErrNotRegistered is returned for handles the registry does not know.
	ErrNotRegistered = errors.New("context: handle not registered")
)

// Handle identifies one registered context instance.
type Handle struct {
	id       string
	consumer string
}

// Consumer returns the consumer the handle's context was registered for.
func (h Handle) Consumer() string { return h.consumer }

// IsZero reports whether the handle is empty.
func (h Handle) IsZero() bool { return h.id == "" }

// String returns the handle's unique ID.
func (h Handle) String() string { return h.id }

// Entry is one registered context in a consumer's stack.
type Entry struct {
	Handle  Handle
	Context *Context

	seq uint64
}

// Registry holds per-consumer context stacks. It is mutated only between
// ticks; the engine brackets evaluation with BeginTick/EndTick, and any
// mutation attempted inside that window fails with ErrMutationDuringTick.
//
// Registry is not safe for concurrent use; the host serializes access, as
// it does for the snapshot.
type Registry struct {
	stacks     map[string][]*Entry
	byID       map[string]*Entry
	retired    []*Entry
	seq        uint64
	evaluating bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		stacks: make(map[string][]*Entry),
		byID:   make(map[string]*Entry),
	}
}

// Register validates the context and pushes it onto the consumer's stack.
// All trigger timers and modifier state are reset, so re-registering a
// previously removed context starts fresh. The stack stays ordered by
// priority, high first, stable for equal priorities.
func (r *Registry) Register(consumer string, ctx *Context) (Handle, error) {
	if r.evaluating {
		return Handle{}, ErrMutationDuringTick
	}
	if consumer == "" {
		return Handle{}, fmt.Errorf("%w: empty consumer", ErrInvalidContext)
	}
	if err := ctx.Validate(); err != nil {
		return Handle{}, err
	}
	ctx.Reset()

	r.seq++
	e := &Entry{
		Handle:  Handle{id: uuid.NewString(), consumer: consumer},
		Context: ctx,
		seq:     r.seq,
	}
	r.byID[e.Handle.id] = e

	stack := append(r.stacks[consumer], e)
	sort.SliceStable(stack, func(i, j int) bool {
		if stack[i].Context.Priority != stack[j].Context.Priority {
			return stack[i].Context.Priority > stack[j].Context.Priority
		}
		return stack[i].seq < stack[j].seq
	})
	r.stacks[consumer] = stack
	return e.Handle, nil
}

// Unregister removes the context from its consumer's stack. The entry is
// parked until the engine's next tick boundary, where its active actions
// receive their Completed/Canceled events before the state is discarded.
func (r *Registry) Unregister(h Handle) error {
	if r.evaluating {
		return ErrMutationDuringTick
	}
	e, ok := r.byID[h.id]
	if !ok {
		return ErrNotRegistered
	}
	delete(r.byID, h.id)

	stack := r.stacks[h.consumer]
	for i, se := range stack {
		if se == e {
			r.stacks[h.consumer] = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	if len(r.stacks[h.consumer]) == 0 {
		delete(r.stacks, h.consumer)
	}
	r.retired = append(r.retired, e)
	return nil
}

// Stack returns the consumer's contexts in evaluation order.
// The returned slice is the registry's own; callers must not mutate it.
func (r *Registry) Stack(consumer string) []*Entry {
	return r.stacks[consumer]
}

// Consumers returns all consumer IDs in sorted order, keeping evaluation
// deterministic across ticks.
func (r *Registry) Consumers() []string {
	out := make([]string, 0, len(r.stacks))
	for c := range r.stacks {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// BeginTick marks an evaluation pass in progress. Called by the engine.
func (r *Registry) BeginTick() {
	r.evaluating = true
}

// EndTick clears the in-progress mark. Called by the engine.
func (r *Registry) EndTick() {
	r.evaluating = false
}

// Evaluating reports whether a tick is in progress.
func (r *Registry) Evaluating() bool {
	return r.evaluating
}

// DrainRetired returns and clears the contexts unregistered since the last
// tick, so the engine can emit their teardown events.
func (r *Registry) DrainRetired() []*Entry {
	out := r.retired
	r.retired = nil
	return out
}
