package event

import (
	"testing"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

func fired(consumer, ctx, name string) action.Event {
	return action.Event{
		Consumer: consumer,
		Context:  ctx,
		Action:   name,
		Kind:     action.EventFired,
		State:    action.StateFired,
		Value:    value.Bool(true),
	}
}

func TestBusDeliversToMatchingSubscribers(t *testing.T) {
	b := NewBus()

	var all, jumpOnly, menuOnly int
	b.Subscribe(Filter{}, func(action.Event) { all++ })
	b.Subscribe(Filter{Action: "jump"}, func(action.Event) { jumpOnly++ })
	b.Subscribe(Filter{Context: "menu"}, func(action.Event) { menuOnly++ })

	b.HandleEvent(fired("p1", "gameplay", "jump"))
	b.HandleEvent(fired("p1", "gameplay", "shoot"))
	b.HandleEvent(fired("p1", "menu", "confirm"))

	if all != 3 {
		t.Errorf("unfiltered handler saw %d events, want 3", all)
	}
	if jumpOnly != 1 {
		t.Errorf("jump handler saw %d events, want 1", jumpOnly)
	}
	if menuOnly != 1 {
		t.Errorf("menu handler saw %d events, want 1", menuOnly)
	}
}

func TestBusFiltersByKind(t *testing.T) {
	b := NewBus()

	var got []action.EventKind
	b.Subscribe(Filter{Kinds: []action.EventKind{action.EventFired, action.EventCompleted}},
		func(ev action.Event) { got = append(got, ev.Kind) })

	for _, k := range []action.EventKind{
		action.EventStarted, action.EventOngoing, action.EventFired, action.EventCompleted,
	} {
		ev := fired("p1", "c", "a")
		ev.Kind = k
		b.HandleEvent(ev)
	}

	if len(got) != 2 || got[0] != action.EventFired || got[1] != action.EventCompleted {
		t.Errorf("kind filter delivered %v, want [Fired Completed]", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus()

	var n int
	sub := b.Subscribe(Filter{}, func(action.Event) { n++ })
	b.HandleEvent(fired("p1", "c", "a"))
	b.Unsubscribe(sub)
	b.HandleEvent(fired("p1", "c", "a"))

	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}

	// Unknown and zero subscriptions are ignored.
	b.Unsubscribe(sub)
	b.Unsubscribe(Subscription{})
}

func TestBusIsolatesPanics(t *testing.T) {
	b := NewBus()

	var after int
	b.Subscribe(Filter{}, func(action.Event) { panic("handler bug") })
	b.Subscribe(Filter{}, func(action.Event) { after++ })

	b.HandleEvent(fired("p1", "c", "a"))

	if after != 1 {
		t.Error("panicking handler stopped delivery to later subscribers")
	}
	stats := b.Stats()
	if stats.Panics != 1 || stats.Delivered != 1 || stats.Published != 1 {
		t.Errorf("Stats() = %+v, want 1 publish, 1 delivery, 1 panic", stats)
	}
}

func TestSubscriptionOrderIsDeliveryOrder(t *testing.T) {
	b := NewBus()

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		b.Subscribe(Filter{}, func(action.Event) { order = append(order, i) })
	}
	b.HandleEvent(fired("p1", "c", "a"))

	for i, got := range order {
		if got != i {
			t.Fatalf("delivery order = %v, want ascending", order)
		}
	}
}
