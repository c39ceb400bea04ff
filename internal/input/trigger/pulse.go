package trigger

import (
	"time"

	"github.com/dshills/tactile/internal/input/action"
	"github.com/dshills/tactile/internal/input/value"
)

// Pulse fires repeatedly every Interval while the value stays actuated and
// is Ongoing on the ticks in between. Releasing resets the cadence.
type Pulse struct {
	// Interval is the time between pulses.
	Interval time.Duration

	// TriggerOnStart fires an immediate pulse on actuation.
	TriggerOnStart bool

	// MaxPulses caps the number of pulses per activation; zero means
	// unlimited.
	MaxPulses int

	// Threshold overrides DefaultActuation when positive.
	Threshold float32

	active bool
	acc    time.Duration
	count  int
}

// Evaluate implements Trigger.
func (p *Pulse) Evaluate(_ Resolver, v value.Value, dt time.Duration) action.State {
	if !v.Actuated(threshold(p.Threshold)) {
		p.active = false
		p.acc = 0
		p.count = 0
		return action.StateNone
	}

	if !p.active {
		p.active = true
		p.acc = 0
		p.count = 0
		if p.TriggerOnStart && p.allowed() {
			p.count++
			return action.StateFired
		}
	}

	p.acc += dt
	if p.acc >= p.Interval && p.Interval > 0 && p.allowed() {
		p.acc -= p.Interval
		p.count++
		return action.StateFired
	}
	return action.StateOngoing
}

// allowed reports whether another pulse fits under MaxPulses.
func (p *Pulse) allowed() bool {
	return p.MaxPulses <= 0 || p.count < p.MaxPulses
}

// Kind implements Trigger.
func (p *Pulse) Kind() Kind { return KindExplicit }

// Reset implements Trigger.
func (p *Pulse) Reset() {
	p.active = false
	p.acc = 0
	p.count = 0
}
