package config

import (
	"fmt"

	"github.com/dshills/tactile/internal/input/modifier"
	"github.com/dshills/tactile/internal/input/trigger"
)

// ModifierFactory builds one modifier from its parameter table.
type ModifierFactory func(f *Factories, p Params) (modifier.Modifier, error)

// TriggerFactory builds one trigger from its parameter table.
type TriggerFactory func(f *Factories, p Params) (trigger.Trigger, error)

// Factories maps the "type" field of modifier and trigger tables to
// constructors. Hosts extend the default set to expose custom or scripted
// types to binding tables.
type Factories struct {
	modifiers map[string]ModifierFactory
	triggers  map[string]TriggerFactory
}

// RegisterModifier adds a modifier factory under the given type name.
func (f *Factories) RegisterModifier(name string, fn ModifierFactory) error {
	if _, ok := f.modifiers[name]; ok {
		return fmt.Errorf("%w: modifier %q", ErrAlreadyRegistered, name)
	}
	f.modifiers[name] = fn
	return nil
}

// RegisterTrigger adds a trigger factory under the given type name.
func (f *Factories) RegisterTrigger(name string, fn TriggerFactory) error {
	if _, ok := f.triggers[name]; ok {
		return fmt.Errorf("%w: trigger %q", ErrAlreadyRegistered, name)
	}
	f.triggers[name] = fn
	return nil
}

// buildModifier constructs the modifier described by one parameter table.
func (f *Factories) buildModifier(raw map[string]any) (modifier.Modifier, error) {
	p := newParams(raw)
	name, err := p.String("type", "")
	if err != nil || name == "" {
		return nil, fmt.Errorf("modifier table needs a type field")
	}
	fn, ok := f.modifiers[name]
	if !ok {
		return nil, fmt.Errorf("%w: modifier %q", ErrUnknownType, name)
	}
	m, err := fn(f, p)
	if err != nil {
		return nil, fmt.Errorf("modifier %q: %w", name, err)
	}
	if extra := p.unused(); len(extra) > 0 {
		return nil, fmt.Errorf("modifier %q: unknown keys %v", name, extra)
	}
	return m, nil
}

// buildTrigger constructs the trigger described by one parameter table.
func (f *Factories) buildTrigger(raw map[string]any) (trigger.Trigger, error) {
	p := newParams(raw)
	name, err := p.String("type", "")
	if err != nil || name == "" {
		return nil, fmt.Errorf("trigger table needs a type field")
	}
	fn, ok := f.triggers[name]
	if !ok {
		return nil, fmt.Errorf("%w: trigger %q", ErrUnknownType, name)
	}
	t, err := fn(f, p)
	if err != nil {
		return nil, fmt.Errorf("trigger %q: %w", name, err)
	}
	if extra := p.unused(); len(extra) > 0 {
		return nil, fmt.Errorf("trigger %q: unknown keys %v", name, extra)
	}
	return t, nil
}

// buildMembers constructs the nested trigger list of a combinator.
func (f *Factories) buildMembers(p Params) ([]trigger.Trigger, error) {
	tables, err := p.Table("members")
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("combinator needs a members array")
	}
	out := make([]trigger.Trigger, 0, len(tables))
	for _, raw := range tables {
		t, err := f.buildTrigger(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// DefaultFactories returns the built-in modifier and trigger types.
func DefaultFactories() *Factories {
	f := &Factories{
		modifiers: make(map[string]ModifierFactory),
		triggers:  make(map[string]TriggerFactory),
	}

	f.modifiers["dead_zone"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		d := modifier.NewDeadZone()
		mode, err := p.String("mode", "radial")
		if err != nil {
			return nil, err
		}
		switch mode {
		case "radial":
			d.Mode = modifier.DeadZoneRadial
		case "axial":
			d.Mode = modifier.DeadZoneAxial
		default:
			return nil, fmt.Errorf("mode must be radial or axial, got %q", mode)
		}
		if d.Lower, err = p.Float("lower", d.Lower); err != nil {
			return nil, err
		}
		if d.Upper, err = p.Float("upper", d.Upper); err != nil {
			return nil, err
		}
		if d.Lower < 0 || d.Upper <= d.Lower {
			return nil, fmt.Errorf("thresholds must satisfy 0 <= lower < upper")
		}
		return d, nil
	}

	f.modifiers["scale"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		factor, err := p.Float("factor", 1)
		if err != nil {
			return nil, err
		}
		s := modifier.NewScale(factor)
		if s.X, err = p.Float("x", s.X); err != nil {
			return nil, err
		}
		if s.Y, err = p.Float("y", s.Y); err != nil {
			return nil, err
		}
		if s.Z, err = p.Float("z", s.Z); err != nil {
			return nil, err
		}
		return s, nil
	}

	f.modifiers["delta_scale"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		return &modifier.DeltaScale{}, nil
	}

	f.modifiers["negate"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		n := modifier.NewNegate()
		var err error
		if n.X, err = p.Bool("x", n.X); err != nil {
			return nil, err
		}
		if n.Y, err = p.Bool("y", n.Y); err != nil {
			return nil, err
		}
		if n.Z, err = p.Bool("z", n.Z); err != nil {
			return nil, err
		}
		return n, nil
	}

	f.modifiers["swizzle"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		order, err := p.String("order", "yxz")
		if err != nil {
			return nil, err
		}
		s := &modifier.Swizzle{}
		switch order {
		case "yxz":
			s.Order = modifier.OrderYXZ
		case "zyx":
			s.Order = modifier.OrderZYX
		case "xzy":
			s.Order = modifier.OrderXZY
		case "yzx":
			s.Order = modifier.OrderYZX
		case "zxy":
			s.Order = modifier.OrderZXY
		default:
			return nil, fmt.Errorf("unknown swizzle order %q", order)
		}
		return s, nil
	}

	f.modifiers["reorder"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		component, err := p.Int("component", 0)
		if err != nil {
			return nil, err
		}
		return &modifier.Reorder{Component: component}, nil
	}

	f.modifiers["clamp"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		c := &modifier.Clamp{Min: -1, Max: 1}
		var err error
		if c.Min, err = p.Float("min", c.Min); err != nil {
			return nil, err
		}
		if c.Max, err = p.Float("max", c.Max); err != nil {
			return nil, err
		}
		return c, nil
	}

	f.modifiers["clamp_magnitude"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		max, err := p.Float("max", 1)
		if err != nil {
			return nil, err
		}
		return &modifier.ClampMagnitude{Max: max}, nil
	}

	f.modifiers["normalize"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		return &modifier.Normalize{}, nil
	}

	f.modifiers["lerp_smooth"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		speed, err := p.Float("speed", 8)
		if err != nil {
			return nil, err
		}
		return modifier.NewLerpSmoother(speed), nil
	}

	f.modifiers["window_smooth"] = func(_ *Factories, p Params) (modifier.Modifier, error) {
		size, err := p.Int("size", 4)
		if err != nil {
			return nil, err
		}
		return modifier.NewWindowSmoother(size), nil
	}

	f.triggers["down"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		threshold, err := p.Float("threshold", 0)
		if err != nil {
			return nil, err
		}
		return &trigger.Down{Threshold: threshold}, nil
	}

	f.triggers["press"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		threshold, err := p.Float("threshold", 0)
		if err != nil {
			return nil, err
		}
		return &trigger.Press{Threshold: threshold}, nil
	}

	f.triggers["release"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		threshold, err := p.Float("threshold", 0)
		if err != nil {
			return nil, err
		}
		return &trigger.Release{Threshold: threshold}, nil
	}

	f.triggers["hold"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		h := &trigger.Hold{}
		var err error
		if h.Duration, err = p.Duration("duration", 0); err != nil {
			return nil, err
		}
		if h.Duration <= 0 {
			return nil, fmt.Errorf("hold needs a positive duration")
		}
		if h.Repeat, err = p.Bool("repeat", false); err != nil {
			return nil, err
		}
		if h.Threshold, err = p.Float("threshold", 0); err != nil {
			return nil, err
		}
		return h, nil
	}

	f.triggers["hold_and_release"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		h := &trigger.HoldAndRelease{}
		var err error
		if h.HoldTime, err = p.Duration("hold_time", 0); err != nil {
			return nil, err
		}
		if h.HoldTime <= 0 {
			return nil, fmt.Errorf("hold_and_release needs a positive hold_time")
		}
		if h.Threshold, err = p.Float("threshold", 0); err != nil {
			return nil, err
		}
		return h, nil
	}

	f.triggers["tap"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		t := &trigger.Tap{}
		var err error
		if t.Window, err = p.Duration("window", 0); err != nil {
			return nil, err
		}
		if t.Window <= 0 {
			return nil, fmt.Errorf("tap needs a positive window")
		}
		if t.Threshold, err = p.Float("threshold", 0); err != nil {
			return nil, err
		}
		return t, nil
	}

	f.triggers["double_tap"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		t := &trigger.DoubleTap{}
		var err error
		if t.Window, err = p.Duration("window", 0); err != nil {
			return nil, err
		}
		if t.Window <= 0 {
			return nil, fmt.Errorf("double_tap needs a positive window")
		}
		if t.Spacing, err = p.Duration("spacing", 0); err != nil {
			return nil, err
		}
		if t.Spacing <= 0 {
			return nil, fmt.Errorf("double_tap needs a positive spacing")
		}
		if t.Threshold, err = p.Float("threshold", 0); err != nil {
			return nil, err
		}
		return t, nil
	}

	f.triggers["pulse"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		t := &trigger.Pulse{}
		var err error
		if t.Interval, err = p.Duration("interval", 0); err != nil {
			return nil, err
		}
		if t.Interval <= 0 {
			return nil, fmt.Errorf("pulse needs a positive interval")
		}
		if t.TriggerOnStart, err = p.Bool("trigger_on_start", false); err != nil {
			return nil, err
		}
		if t.MaxPulses, err = p.Int("max_pulses", 0); err != nil {
			return nil, err
		}
		if t.Threshold, err = p.Float("threshold", 0); err != nil {
			return nil, err
		}
		return t, nil
	}

	f.triggers["chord"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		name, err := p.String("action", "")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, fmt.Errorf("chord needs an action name")
		}
		return &trigger.Chord{Action: name}, nil
	}

	f.triggers["block_by"] = func(_ *Factories, p Params) (trigger.Trigger, error) {
		name, err := p.String("action", "")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, fmt.Errorf("block_by needs an action name")
		}
		return &trigger.BlockBy{Action: name}, nil
	}

	f.triggers["all"] = func(fs *Factories, p Params) (trigger.Trigger, error) {
		members, err := fs.buildMembers(p)
		if err != nil {
			return nil, err
		}
		return &trigger.All{Members: members}, nil
	}

	f.triggers["any"] = func(fs *Factories, p Params) (trigger.Trigger, error) {
		members, err := fs.buildMembers(p)
		if err != nil {
			return nil, err
		}
		return &trigger.Any{Members: members}, nil
	}

	return f
}
