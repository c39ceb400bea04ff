// Package event distributes action lifecycle events to subscribers.
//
// The bus sits behind the engine as its sink: gameplay systems subscribe
// to the slice of events they care about (one action, one context, a
// lifecycle kind) instead of filtering the full stream themselves.
// Delivery is synchronous and in emission order, so handlers observe the
// same ordering guarantees the engine provides.
package event

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/tactile/internal/input/action"
)

// Handler receives matching events.
type Handler func(ev action.Event)

// Filter selects events by exact field match. Zero-valued fields match
// everything, so the zero Filter subscribes to the full stream.
type Filter struct {
	// Consumer matches Event.Consumer when non-empty.
	Consumer string

	// Context matches Event.Context when non-empty.
	Context string

	// Action matches Event.Action when non-empty.
	Action string

	// Kinds matches any listed lifecycle kind. Empty matches all kinds.
	Kinds []action.EventKind
}

// matches reports whether the filter selects the event.
func (f Filter) matches(ev action.Event) bool {
	if f.Consumer != "" && f.Consumer != ev.Consumer {
		return false
	}
	if f.Context != "" && f.Context != ev.Context {
		return false
	}
	if f.Action != "" && f.Action != ev.Action {
		return false
	}
	if len(f.Kinds) == 0 {
		return true
	}
	for _, k := range f.Kinds {
		if k == ev.Kind {
			return true
		}
	}
	return false
}

// Subscription identifies one registered handler.
type Subscription struct {
	id uint64
}

// IsZero reports whether the subscription is empty.
func (s Subscription) IsZero() bool { return s.id == 0 }

// Stats counts bus activity.
type Stats struct {
	// Published is the number of events handed to the bus.
	Published uint64

	// Delivered is the number of handler invocations that completed.
	Delivered uint64

	// Panics is the number of handler invocations that panicked. A
	// panicking handler never stops delivery to the others.
	Panics uint64
}

// Bus fans action events out to filtered subscribers. Safe for
// concurrent subscription; delivery itself is driven by the engine's
// single evaluation goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []*subscriber

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

type subscriber struct {
	id      uint64
	filter  Filter
	handler Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for events the filter selects.
func (b *Bus) Subscribe(f Filter, h Handler) Subscription {
	if h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs = append(b.subs, &subscriber{id: b.nextID, filter: f, handler: h})
	return Subscription{id: b.nextID}
}

// Unsubscribe removes a subscription. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(s Subscription) {
	if s.IsZero() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == s.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// HandleEvent implements the engine's sink interface: the event is
// delivered to every matching subscriber, in subscription order.
func (b *Bus) HandleEvent(ev action.Event) {
	b.published.Add(1)

	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, sub := range subs {
		if !sub.filter.matches(ev) {
			continue
		}
		b.deliver(sub, ev)
	}
}

// deliver invokes one handler, isolating its panics.
func (b *Bus) deliver(sub *subscriber, ev action.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
		}
	}()
	sub.handler(ev)
	b.delivered.Add(1)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Panics:    b.panics.Load(),
	}
}
