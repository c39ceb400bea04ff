package context

import (
	"errors"
	"testing"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/binding"
	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/trigger"
	"github.com/dshills/tactile/internal/input/value"
)

func jumpContext() *Context {
	return New("gameplay").AddAction(ActionSpec{
		Name:     "jump",
		Kind:     value.KindBool,
		Bindings: []binding.Binding{binding.New(control.Key(control.CodeSpace))},
		Triggers: []trigger.Trigger{&trigger.Press{}},
	})
}

func TestValidateOK(t *testing.T) {
	if err := jumpContext().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateDuplicateAction(t *testing.T) {
	ctx := jumpContext().AddAction(ActionSpec{Name: "jump", Kind: value.KindBool})
	err := ctx.Validate()
	if !errors.Is(err, ErrInvalidContext) {
		t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
	}
}

func TestValidateEmptyNames(t *testing.T) {
	if err := New("").Validate(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("empty context name: error = %v, want ErrInvalidContext", err)
	}
	ctx := New("c").AddAction(ActionSpec{Kind: value.KindBool})
	if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("empty action name: error = %v, want ErrInvalidContext", err)
	}
}

func TestValidateChordTargets(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		ctx := New("c").AddAction(ActionSpec{
			Name:     "combo",
			Kind:     value.KindBool,
			Triggers: []trigger.Trigger{&trigger.Chord{Action: "missing"}},
		})
		if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
			t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
		}
	})

	t.Run("self reference", func(t *testing.T) {
		ctx := New("c").AddAction(ActionSpec{
			Name:     "combo",
			Kind:     value.KindBool,
			Triggers: []trigger.Trigger{&trigger.Chord{Action: "combo"}},
		})
		if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
			t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
		}
	})

	t.Run("chord of chord", func(t *testing.T) {
		ctx := New("c").
			AddAction(ActionSpec{Name: "base", Kind: value.KindBool}).
			AddAction(ActionSpec{
				Name:     "first",
				Kind:     value.KindBool,
				Triggers: []trigger.Trigger{&trigger.Chord{Action: "base"}},
			}).
			AddAction(ActionSpec{
				Name:     "second",
				Kind:     value.KindBool,
				Triggers: []trigger.Trigger{&trigger.Chord{Action: "first"}},
			})
		if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
			t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
		}
	})

	t.Run("valid chord", func(t *testing.T) {
		ctx := New("c").
			AddAction(ActionSpec{Name: "crouch", Kind: value.KindBool}).
			AddAction(ActionSpec{
				Name:     "slide",
				Kind:     value.KindBool,
				Triggers: []trigger.Trigger{&trigger.Chord{Action: "crouch"}},
			})
		if err := ctx.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestValidateCombinatorMembers(t *testing.T) {
	ctx := New("c").
		AddAction(ActionSpec{Name: "other", Kind: value.KindBool}).
		AddAction(ActionSpec{
			Name: "combo",
			Kind: value.KindBool,
			Triggers: []trigger.Trigger{
				&trigger.All{Members: []trigger.Trigger{&trigger.Chord{Action: "other"}}},
			},
		})
	if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
	}
}

// axisOnly is a trigger constrained to 1D values, for kind-check tests.
type axisOnly struct{ trigger.Down }

func (axisOnly) AllowsKind(k value.Kind) bool { return k == value.KindAxis1D }

func TestValidateKindConstraint(t *testing.T) {
	ctx := New("c").AddAction(ActionSpec{
		Name:     "zoom",
		Kind:     value.KindAxis2D,
		Triggers: []trigger.Trigger{&axisOnly{}},
	})
	if err := ctx.Validate(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("Validate() error = %v, want ErrInvalidContext", err)
	}
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()

	low, err := r.Register("p1", New("low").WithPriority(1))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := r.Register("p1", New("high").WithPriority(10)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := r.Register("p1", New("low-second").WithPriority(1)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stack := r.Stack("p1")
	var names []string
	for _, e := range stack {
		names = append(names, e.Context.Name)
	}
	want := []string{"high", "low", "low-second"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("stack order = %v, want %v", names, want)
		}
	}

	// Removal keeps the remainder ordered.
	if err := r.Unregister(low); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	stack = r.Stack("p1")
	if len(stack) != 2 || stack[0].Context.Name != "high" || stack[1].Context.Name != "low-second" {
		t.Errorf("stack after Unregister = %v", stack)
	}
}

func TestRegistryRejectsInvalidContext(t *testing.T) {
	r := NewRegistry()
	ctx := New("c").
		AddAction(ActionSpec{Name: "a", Kind: value.KindBool}).
		AddAction(ActionSpec{Name: "a", Kind: value.KindBool})
	if _, err := r.Register("p1", ctx); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("Register() error = %v, want ErrInvalidContext", err)
	}
	if len(r.Stack("p1")) != 0 {
		t.Error("invalid context must not join the stack")
	}
}

func TestRegistryMutationDuringTick(t *testing.T) {
	r := NewRegistry()
	h, err := r.Register("p1", New("c"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	r.BeginTick()
	if _, err := r.Register("p1", New("other")); !errors.Is(err, ErrMutationDuringTick) {
		t.Errorf("Register during tick: error = %v, want ErrMutationDuringTick", err)
	}
	if err := r.Unregister(h); !errors.Is(err, ErrMutationDuringTick) {
		t.Errorf("Unregister during tick: error = %v, want ErrMutationDuringTick", err)
	}
	r.EndTick()

	// The stack survived the rejected mutations.
	if len(r.Stack("p1")) != 1 {
		t.Errorf("stack length = %d, want 1", len(r.Stack("p1")))
	}
	if err := r.Unregister(h); err != nil {
		t.Errorf("Unregister between ticks: error = %v", err)
	}
}

func TestRegistryResetsTriggerState(t *testing.T) {
	hold := &trigger.Hold{Duration: 1}
	ctx := New("c").AddAction(ActionSpec{
		Name:     "charge",
		Kind:     value.KindBool,
		Triggers: []trigger.Trigger{hold},
	})

	// Advance the hold's private timer, then register: Register resets it.
	hold.Evaluate(nil, value.Bool(true), 10)

	r := NewRegistry()
	if _, err := r.Register("p1", ctx); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// A fresh evaluation at dt=0 must start from zero: a primed timer
	// would report Fired immediately.
	if got := hold.Evaluate(nil, value.Bool(true), 0); got != action.StateOngoing {
		t.Errorf("hold after re-register = %v, want Ongoing", got)
	}
}

func TestDrainRetired(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Register("p1", New("c"))
	if err := r.Unregister(h); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}

	retired := r.DrainRetired()
	if len(retired) != 1 || retired[0].Context.Name != "c" {
		t.Fatalf("DrainRetired() = %v, want the removed context", retired)
	}
	if len(r.DrainRetired()) != 0 {
		t.Error("DrainRetired() should clear the retired list")
	}
}

func TestConsumersSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zed", New("c1"))
	r.Register("alpha", New("c2"))

	got := r.Consumers()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zed" {
		t.Errorf("Consumers() = %v, want [alpha zed]", got)
	}
}
