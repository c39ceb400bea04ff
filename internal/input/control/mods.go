package control

import "strings"

// ModMask represents keyboard modifier keys as a bitmask.
type ModMask uint8

const (
	// ModNone indicates no modifiers.
	ModNone ModMask = 0

	// ModShift indicates the Shift key.
	ModShift ModMask = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Contains returns true if every modifier in required is present in m.
func (m ModMask) Contains(required ModMask) bool {
	return required&^m == 0
}

// With returns a new mask with the specified modifier added.
func (m ModMask) With(mod ModMask) ModMask {
	return m | mod
}

// Without returns a new mask with the specified modifier removed.
func (m ModMask) Without(mod ModMask) ModMask {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m ModMask) IsEmpty() bool {
	return m == ModNone
}

// String returns a representation like "Ctrl-Alt".
func (m ModMask) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "-")
}

// modNameMap maps modifier names (lowercase) to masks.
var modNameMap = map[string]ModMask{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"c":     ModCtrl,
	"alt":   ModAlt,
	"a":     ModAlt,
	"meta":  ModMeta,
	"cmd":   ModMeta,
	"super": ModMeta,
}

// ModFromName returns the mask for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModFromName(name string) ModMask {
	if m, ok := modNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}
