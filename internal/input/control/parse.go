package control

import (
	"fmt"
	"strings"
)

// keyNameMap maps keyboard control names (lowercase) to codes.
var keyNameMap = map[string]Code{
	"escape":    CodeEscape,
	"esc":       CodeEscape,
	"enter":     CodeEnter,
	"return":    CodeEnter,
	"tab":       CodeTab,
	"backspace": CodeBackspace,
	"bs":        CodeBackspace,
	"delete":    CodeDelete,
	"del":       CodeDelete,
	"insert":    CodeInsert,
	"ins":       CodeInsert,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pgup":      CodePageUp,
	"pagedown":  CodePageDown,
	"pgdn":      CodePageDown,
	"space":     CodeSpace,
	"up":        CodeUp,
	"down":      CodeDown,
	"left":      CodeLeft,
	"right":     CodeRight,
	"f1":        CodeF1,
	"f2":        CodeF2,
	"f3":        CodeF3,
	"f4":        CodeF4,
	"f5":        CodeF5,
	"f6":        CodeF6,
	"f7":        CodeF7,
	"f8":        CodeF8,
	"f9":        CodeF9,
	"f10":       CodeF10,
	"f11":       CodeF11,
	"f12":       CodeF12,
}

// mouseNameMap maps mouse control names (lowercase) to codes.
var mouseNameMap = map[string]Code{
	"left":   MouseLeft,
	"right":  MouseRight,
	"middle": MouseMiddle,
	"x1":     MouseX1,
	"x2":     MouseX2,
	"motion": MouseMotion,
	"wheel":  MouseWheel,
}

// padNameMap maps gamepad control names (lowercase) to codes.
var padNameMap = map[string]Code{
	"south":       PadSouth,
	"east":        PadEast,
	"west":        PadWest,
	"north":       PadNorth,
	"l1":          PadL1,
	"r1":          PadR1,
	"l2":          PadL2,
	"r2":          PadR2,
	"select":      PadSelect,
	"start":       PadStart,
	"left_thumb":  PadLeftThumb,
	"right_thumb": PadRightThumb,
	"dpad_up":     PadDPadUp,
	"dpad_down":   PadDPadDown,
	"dpad_left":   PadDPadLeft,
	"dpad_right":  PadDPadRight,
	"left_stick":  PadLeftStick,
	"right_stick": PadRightStick,
}

// Parse parses a control specification string.
//
// Formats:
//
//	"w"                a keyboard letter or digit
//	"space", "f5"      a named keyboard key
//	"ctrl+s"           keyboard key with modifiers
//	"mouse:left"       a mouse button
//	"mouse:motion"     the mouse motion axis
//	"pad:south"        a gamepad button
//	"pad:left_stick"   a gamepad stick
func Parse(spec string) (Control, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Control{}, fmt.Errorf("control: empty spec")
	}

	if rest, ok := strings.CutPrefix(spec, "mouse:"); ok {
		code, ok := mouseNameMap[strings.ToLower(rest)]
		if !ok {
			return Control{}, fmt.Errorf("control: unknown mouse control %q", rest)
		}
		return Mouse(code), nil
	}

	if rest, ok := strings.CutPrefix(spec, "pad:"); ok {
		code, ok := padNameMap[strings.ToLower(rest)]
		if !ok {
			return Control{}, fmt.Errorf("control: unknown gamepad control %q", rest)
		}
		return Pad(code), nil
	}

	// Keyboard: leading parts are modifiers, the last part is the key.
	parts := strings.Split(spec, "+")
	var mods ModMask
	for _, p := range parts[:len(parts)-1] {
		m := ModFromName(p)
		if m == ModNone {
			return Control{}, fmt.Errorf("control: unknown modifier %q in %q", p, spec)
		}
		mods = mods.With(m)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	code, err := keyFromName(keyName)
	if err != nil {
		return Control{}, err
	}
	return Key(code).WithMods(mods), nil
}

// keyFromName resolves a keyboard key name to a code. Single letters and
// digits map directly; everything else goes through the name map.
func keyFromName(name string) (Code, error) {
	lower := strings.ToLower(name)
	if len(lower) == 1 {
		ch := lower[0]
		switch {
		case ch >= 'a' && ch <= 'z':
			return CodeA + Code(ch-'a'), nil
		case ch >= '0' && ch <= '9':
			return Code0 + Code(ch-'0'), nil
		}
	}
	if code, ok := keyNameMap[lower]; ok {
		return code, nil
	}
	return CodeNone, fmt.Errorf("control: unknown key %q", name)
}

// codeName returns the canonical lowercase name for a code.
func codeName(code Code) string {
	switch {
	case code >= CodeA && code <= CodeZ:
		return string(rune('a' + (code - CodeA)))
	case code >= Code0 && code <= Code9:
		return string(rune('0' + (code - Code0)))
	}
	for name, c := range keyNameMap {
		if c == code && canonicalKeyName(name) {
			return name
		}
	}
	for name, c := range mouseNameMap {
		if c == code {
			return name
		}
	}
	for name, c := range padNameMap {
		if c == code {
			return name
		}
	}
	return fmt.Sprintf("code(%d)", code)
}

// canonicalKeyName filters out the short aliases so String() is stable.
func canonicalKeyName(name string) bool {
	switch name {
	case "esc", "return", "bs", "del", "ins", "pgup", "pgdn":
		return false
	default:
		return true
	}
}
