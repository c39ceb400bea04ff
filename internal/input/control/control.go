// Package control identifies physical input sources. A Control names one
// device-level signal (a key, a button, an axis pair) plus any required
// keyboard modifiers; bindings reference Controls and the snapshot layer is
// queried with them.
package control

import (
	"fmt"

	"github.com/dshills/tactile/internal/input/value"
)

// Device identifies the hardware class a control belongs to.
type Device uint8

const (
	// DeviceKeyboard covers keys and keyboard modifiers.
	DeviceKeyboard Device = iota

	// DeviceMouse covers buttons, motion, and the wheel.
	DeviceMouse

	// DeviceGamepad covers pad buttons, triggers, and sticks.
	DeviceGamepad
)

// String returns a human-readable name for the device.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "Keyboard"
	case DeviceMouse:
		return "Mouse"
	case DeviceGamepad:
		return "Gamepad"
	default:
		return fmt.Sprintf("Device(%d)", d)
	}
}

// Code identifies a single control within a device.
type Code uint16

// Keyboard codes.
const (
	CodeNone Code = iota

	// Special keys
	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeSpace

	// Arrow keys
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	// Letters
	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	// Digits
	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9
)

// Mouse codes.
const (
	MouseLeft Code = iota + 256
	MouseRight
	MouseMiddle
	MouseX1
	MouseX2

	// MouseMotion is the per-tick cursor delta, captured as Axis2D.
	MouseMotion

	// MouseWheel is the per-tick scroll delta, captured as Axis2D.
	MouseWheel
)

// Gamepad codes.
const (
	PadSouth Code = iota + 512
	PadEast
	PadWest
	PadNorth
	PadL1
	PadR1
	PadSelect
	PadStart
	PadLeftThumb
	PadRightThumb
	PadDPadUp
	PadDPadDown
	PadDPadLeft
	PadDPadRight

	// PadL2 and PadR2 are analog triggers, captured as Axis1D.
	PadL2
	PadR2

	// PadLeftStick and PadRightStick are captured as Axis2D.
	PadLeftStick
	PadRightStick
)

// Control identifies one raw input source: a device, a code within it, and
// any keyboard modifiers that must be held for the control to register.
// Gamepad controls carry no modifiers.
type Control struct {
	Device Device
	Code   Code
	Mods   ModMask
}

// Key returns a keyboard control for the given code.
func Key(code Code) Control {
	return Control{Device: DeviceKeyboard, Code: code}
}

// Mouse returns a mouse control for the given code.
func Mouse(code Code) Control {
	return Control{Device: DeviceMouse, Code: code}
}

// Pad returns a gamepad control for the given code.
func Pad(code Code) Control {
	return Control{Device: DeviceGamepad, Code: code}
}

// WithMods returns a copy of the control requiring the given modifiers.
func (c Control) WithMods(mods ModMask) Control {
	c.Mods = mods
	return c
}

// Kind returns the value kind the control is captured as: buttons and keys
// are Bool, analog triggers are Axis1D, sticks, motion, and the wheel are
// Axis2D.
func (c Control) Kind() value.Kind {
	switch c.Code {
	case MouseMotion, MouseWheel, PadLeftStick, PadRightStick:
		return value.KindAxis2D
	case PadL2, PadR2:
		return value.KindAxis1D
	default:
		return value.KindBool
	}
}

// IsRelative reports whether the control reports a per-tick delta rather
// than an absolute position. Relative axes are zeroed by the snapshot at
// the start of each tick.
func (c Control) IsRelative() bool {
	return c.Code == MouseMotion || c.Code == MouseWheel
}

// ID returns the control's identity ignoring modifiers. Consumption
// tracking keys on this: a consumed key is consumed regardless of which
// modified chord touched it.
func (c Control) ID() ID {
	return ID{Device: c.Device, Code: c.Code}
}

// String returns a canonical representation like "Ctrl-s" or "pad:south".
func (c Control) String() string {
	name := codeName(c.Code)
	switch c.Device {
	case DeviceMouse:
		name = "mouse:" + name
	case DeviceGamepad:
		name = "pad:" + name
	}
	if c.Mods != ModNone {
		return c.Mods.String() + "-" + name
	}
	return name
}

// ID is a control identity without modifiers, usable as a map key.
type ID struct {
	Device Device
	Code   Code
}
