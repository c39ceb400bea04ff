// Package config loads binding tables: TOML files declaring contexts,
// actions, bindings, modifiers, and triggers. A loaded table builds into
// context values ready for registration; every structural problem in the
// file is reported, not just the first.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tactile/internal/input/binding"
	"github.com/dshills/tactile/internal/input/context"
	"github.com/dshills/tactile/internal/input/control"
	"github.com/dshills/tactile/internal/input/value"
)

// File is the top-level binding table.
type File struct {
	// Version is the table format version. Zero and one are accepted.
	Version int `toml:"version"`

	// Contexts are the declared contexts, in file order.
	Contexts []ContextDef `toml:"context"`
}

// ContextDef declares one context.
type ContextDef struct {
	Name     string `toml:"name"`
	Priority int    `toml:"priority"`

	// ConsumeInput defaults to true when omitted.
	ConsumeInput *bool `toml:"consume_input"`

	Actions []ActionDef `toml:"action"`
}

// ActionDef declares one action.
type ActionDef struct {
	Name string `toml:"name"`

	// Kind is one of "bool", "axis1d", "axis2d", "axis3d".
	Kind string `toml:"kind"`

	// Accumulation is "cumulative" (default) or "max_abs".
	Accumulation string `toml:"accumulation"`

	// Combine is "any" (default) or "all".
	Combine string `toml:"combine"`

	Bindings []BindingDef     `toml:"binding"`
	Triggers []map[string]any `toml:"trigger"`
}

// BindingDef declares one binding: a control spec such as "ctrl+s",
// "mouse:motion", or "pad:left_stick", plus an ordered modifier chain.
type BindingDef struct {
	Control   string           `toml:"control"`
	Modifiers []map[string]any `toml:"modifier"`
}

// Load reads and parses the binding table at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading binding table %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse parses binding table data not tied to a file.
func Parse(data []byte) (*File, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if f.Version > 1 {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("unsupported version %d", f.Version)}
	}
	return &f, nil
}

// Build converts the table into contexts, resolving control specs and
// instantiating modifiers and triggers through the factories. Structural
// errors across the whole file are collected into ValidationErrors;
// contexts additionally run their own registration-time validation.
func (f *File) Build(fact *Factories) ([]*context.Context, error) {
	if fact == nil {
		fact = DefaultFactories()
	}

	var errs ValidationErrors
	out := make([]*context.Context, 0, len(f.Contexts))

	for _, cd := range f.Contexts {
		ctxPath := fmt.Sprintf("context[%s]", cd.Name)
		ctx := context.New(cd.Name).WithPriority(cd.Priority)
		if cd.ConsumeInput != nil && !*cd.ConsumeInput {
			ctx.NonConsuming()
		}

		for _, ad := range cd.Actions {
			spec, specErrs := buildAction(fact, ctxPath, ad)
			errs = append(errs, specErrs...)
			ctx.AddAction(spec)
		}

		if err := ctx.Validate(); err != nil {
			errs = append(errs, &ValidationError{Path: ctxPath, Message: err.Error()})
			continue
		}
		out = append(out, ctx)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildAction converts one action definition. Errors are collected so a
// broken trigger does not hide a broken binding next to it.
func buildAction(fact *Factories, ctxPath string, ad ActionDef) (context.ActionSpec, ValidationErrors) {
	var errs ValidationErrors
	path := fmt.Sprintf("%s.action[%s]", ctxPath, ad.Name)

	spec := context.ActionSpec{Name: ad.Name}

	switch ad.Kind {
	case "", "bool":
		spec.Kind = value.KindBool
	case "axis1d":
		spec.Kind = value.KindAxis1D
	case "axis2d":
		spec.Kind = value.KindAxis2D
	case "axis3d":
		spec.Kind = value.KindAxis3D
	default:
		errs = append(errs, &ValidationError{Path: path, Message: "unknown kind", Value: ad.Kind})
	}

	switch ad.Accumulation {
	case "", "cumulative":
		spec.Accumulation = binding.Cumulative
	case "max_abs":
		spec.Accumulation = binding.MaxAbs
	default:
		errs = append(errs, &ValidationError{Path: path, Message: "unknown accumulation", Value: ad.Accumulation})
	}

	switch ad.Combine {
	case "", "any":
		spec.Combine = context.CombineAny
	case "all":
		spec.Combine = context.CombineAll
	default:
		errs = append(errs, &ValidationError{Path: path, Message: "unknown combine mode", Value: ad.Combine})
	}

	for i, bd := range ad.Bindings {
		bPath := fmt.Sprintf("%s.binding[%d]", path, i)
		c, err := control.Parse(bd.Control)
		if err != nil {
			errs = append(errs, &ValidationError{Path: bPath, Message: err.Error(), Value: bd.Control})
			continue
		}
		b := binding.New(c)
		for j, md := range bd.Modifiers {
			m, err := fact.buildModifier(md)
			if err != nil {
				errs = append(errs, &ValidationError{
					Path:    fmt.Sprintf("%s.modifier[%d]", bPath, j),
					Message: err.Error(),
				})
				continue
			}
			b.Modifiers = append(b.Modifiers, m)
		}
		spec.Bindings = append(spec.Bindings, b)
	}

	for i, td := range ad.Triggers {
		t, err := fact.buildTrigger(td)
		if err != nil {
			errs = append(errs, &ValidationError{
				Path:    fmt.Sprintf("%s.trigger[%d]", path, i),
				Message: err.Error(),
			})
			continue
		}
		spec.Triggers = append(spec.Triggers, t)
	}

	return spec, errs
}
