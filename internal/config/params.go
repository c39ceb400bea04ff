package config

import (
	"fmt"
	"sort"
	"time"
)

// Params wraps the free-form key/value table of one modifier or trigger
// definition. Accessors remember which keys were read so the loader can
// reject typos left over in the table.
type Params struct {
	raw  map[string]any
	used map[string]bool
}

func newParams(raw map[string]any) Params {
	return Params{raw: raw, used: map[string]bool{"type": true}}
}

func (p Params) lookup(key string) (any, bool) {
	v, ok := p.raw[key]
	if ok {
		p.used[key] = true
	}
	return v, ok
}

// String returns the string under key, or def when absent.
func (p Params) String(key, def string) (string, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

// Bool returns the boolean under key, or def when absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}

// Float returns the number under key, or def when absent. TOML integers
// are accepted and widened.
func (p Params) Float(key string, def float32) (float32, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case int64:
		return float32(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

// Int returns the integer under key, or def when absent.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
	return int(n), nil
}

// Duration returns the duration under key, or def when absent. Durations
// are written as Go duration strings ("250ms") or as numeric seconds.
func (p Params) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return parsed, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case int64:
		return time.Duration(d) * time.Second, nil
	default:
		return 0, fmt.Errorf("%s must be a duration string or seconds, got %T", key, v)
	}
}

// Table returns the list of sub-tables under key, for nested definitions
// such as combinator members.
func (p Params) Table(key string) ([]map[string]any, error) {
	v, ok := p.lookup(key)
	if !ok {
		return nil, nil
	}
	list, ok := v.([]map[string]any)
	if ok {
		return list, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of tables, got %T", key, v)
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of tables, got element %T", key, item)
		}
		out = append(out, m)
	}
	return out, nil
}

// Each yields every entry and marks all keys used, for factories that
// forward the whole table elsewhere (scripted types).
func (p Params) Each(fn func(key string, v any)) {
	for k, v := range p.raw {
		if k == "type" {
			continue
		}
		p.used[k] = true
		fn(k, v)
	}
}

// unused returns the keys never read by any accessor, sorted.
func (p Params) unused() []string {
	var out []string
	for k := range p.raw {
		if !p.used[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
