package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/input/control"
)

// specialKeys maps tcell's named keys to control codes.
var specialKeys = map[tcell.Key]control.Code{
	tcell.KeyEscape:     control.CodeEscape,
	tcell.KeyEnter:      control.CodeEnter,
	tcell.KeyTab:        control.CodeTab,
	tcell.KeyBackspace:  control.CodeBackspace,
	tcell.KeyBackspace2: control.CodeBackspace,
	tcell.KeyDelete:     control.CodeDelete,
	tcell.KeyInsert:     control.CodeInsert,
	tcell.KeyHome:       control.CodeHome,
	tcell.KeyEnd:        control.CodeEnd,
	tcell.KeyPgUp:       control.CodePageUp,
	tcell.KeyPgDn:       control.CodePageDown,
	tcell.KeyUp:         control.CodeUp,
	tcell.KeyDown:       control.CodeDown,
	tcell.KeyLeft:       control.CodeLeft,
	tcell.KeyRight:      control.CodeRight,
	tcell.KeyF1:         control.CodeF1,
	tcell.KeyF2:         control.CodeF2,
	tcell.KeyF3:         control.CodeF3,
	tcell.KeyF4:         control.CodeF4,
	tcell.KeyF5:         control.CodeF5,
	tcell.KeyF6:         control.CodeF6,
	tcell.KeyF7:         control.CodeF7,
	tcell.KeyF8:         control.CodeF8,
	tcell.KeyF9:         control.CodeF9,
	tcell.KeyF10:        control.CodeF10,
	tcell.KeyF11:        control.CodeF11,
	tcell.KeyF12:        control.CodeF12,
}

// runeCode maps a printable rune to its keyboard code. Letters fold to
// lower case; the shift distinction lives in the modifier mask.
func runeCode(r rune) (control.Code, bool) {
	r = unicode.ToLower(r)
	switch {
	case r == ' ':
		return control.CodeSpace, true
	case r >= 'a' && r <= 'z':
		return control.CodeA + control.Code(r-'a'), true
	case r >= '0' && r <= '9':
		return control.Code0 + control.Code(r-'0'), true
	default:
		return 0, false
	}
}

// keyControl translates one tcell key event into a control press.
func keyControl(ev *tcell.EventKey) (control.Control, bool) {
	if ev.Key() == tcell.KeyRune {
		code, ok := runeCode(ev.Rune())
		if !ok {
			return control.Control{}, false
		}
		return control.Key(code), true
	}
	// Named keys win over the control-character range they overlap:
	// Enter is Ctrl-M, Tab is Ctrl-I.
	if code, ok := specialKeys[ev.Key()]; ok {
		return control.Key(code), true
	}
	// Remaining Ctrl-letter combos arrive as dedicated key constants in
	// the KeyCtrlA..KeyCtrlZ range; fold them back to the letter.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return control.Key(control.CodeA + control.Code(ev.Key()-tcell.KeyCtrlA)), true
	}
	return control.Control{}, false
}

// modMask translates tcell's modifier bits.
func modMask(m tcell.ModMask) control.ModMask {
	var out control.ModMask
	if m&tcell.ModShift != 0 {
		out = out.With(control.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = out.With(control.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = out.With(control.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = out.With(control.ModMeta)
	}
	return out
}
