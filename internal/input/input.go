// Package input implements the DMG joypad: the P1/JOYP register at
// 0xFF00, which multiplexes eight buttons onto four read-only lines
// through two selectable "key groups".
package input

// Button indexes bits within both the direction and action groups.
// DMG wiring puts Right/A in bit 0, Left/B in bit 1, Up/Select in bit
// 2 and Down/Start in bit 3 of whichever group is currently selected.
type Button uint

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

const (
	selectButtonKeys    = 1 << 5 // P1 bit 5, active low
	selectDirectionKeys = 1 << 4 // P1 bit 4, active low
)

// Joypad holds the live (unlatched) button state and the currently
// selected key group, and renders the DMG P1 register on demand.
type Joypad struct {
	direction byte // bits 0-3: Right,Left,Up,Down — 1 == released
	action    byte // bits 0-3: A,B,Select,Start — 1 == released
	selection byte // raw bits 4-5 as last written to P1
}

// NewJoypad returns a Joypad with every button released.
func NewJoypad() *Joypad {
	return &Joypad{direction: 0x0F, action: 0x0F, selection: selectButtonKeys | selectDirectionKeys}
}

// SetButton updates the live state of one button. DMG lines are active
// low, so pressed clears the corresponding bit. It returns true when
// this call is the kind of press that should raise the joypad
// interrupt: a released-to-pressed transition on a line belonging to
// a currently selected group.
func (j *Joypad) SetButton(b Button, pressed bool) bool {
	group, bit := j.groupFor(b)
	wasPressed := *group&(1<<bit) == 0

	if pressed {
		*group &^= 1 << bit
	} else {
		*group |= 1 << bit
	}

	if !pressed || wasPressed {
		return false
	}
	return j.groupSelected(b)
}

func (j *Joypad) groupSelected(b Button) bool {
	switch b {
	case ButtonRight, ButtonLeft, ButtonUp, ButtonDown:
		return j.selection&selectDirectionKeys == 0
	default:
		return j.selection&selectButtonKeys == 0
	}
}

func (j *Joypad) groupFor(b Button) (*byte, uint) {
	switch b {
	case ButtonRight:
		return &j.direction, 0
	case ButtonLeft:
		return &j.direction, 1
	case ButtonUp:
		return &j.direction, 2
	case ButtonDown:
		return &j.direction, 3
	case ButtonA:
		return &j.action, 0
	case ButtonB:
		return &j.action, 1
	case ButtonSelect:
		return &j.action, 2
	case ButtonStart:
		return &j.action, 3
	default:
		return &j.direction, 0
	}
}

// Read8 returns the current P1 register value: bits 6-7 fixed high,
// bits 4-5 the last-selected group, bits 0-3 the selected group's line
// states (1 == released). When both groups are deselected the low
// nibble reads all 1s; when both are selected it is the AND of the two
// groups' line states.
func (j *Joypad) Read8() byte {
	lines := byte(0x0F)
	if j.selection&selectDirectionKeys == 0 {
		lines &= j.direction
	}
	if j.selection&selectButtonKeys == 0 {
		lines &= j.action
	}
	return 0xC0 | j.selection | lines
}

// Write8 stores the group-selection bits (4-5); the low nibble is
// read-only and any written value there is ignored.
func (j *Joypad) Write8(v byte) {
	j.selection = v & (selectButtonKeys | selectDirectionKeys)
}
