// Package input implements NES controller reading: the strobe latch and
// serial shift register behind $4016/$4017.
package input

// Button identifies one of the eight buttons on a standard controller.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single standard NES controller: a button latch plus the
// 8-bit shift register the CPU reads serially.
type Controller struct {
	buttons uint8

	strobe        bool
	shiftRegister uint8
}

// New creates an idle controller with no buttons pressed.
func New() *Controller {
	return &Controller{}
}

// SetButton sets or clears a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight buttons at once, in A,B,Select,Start,Up,Down,
// Left,Right order.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(order[i])
		}
	}
}

// IsPressed reports whether button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write latches the controller's strobe bit. While strobe is high the
// shift register continuously reloads from the live button state; the
// falling edge freezes it for serial reading.
func (c *Controller) Write(value uint8) {
	if c.strobe || value&1 != 0 {
		c.shiftRegister = c.buttons
	}
	c.strobe = value&1 != 0
}

// Read shifts one bit out of the register. While strobe is held high, bit
// 0 (button A) is returned on every read without advancing the register.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	bit := c.shiftRegister & 1
	c.shiftRegister = c.shiftRegister>>1 | 0x80
	return bit
}

// Peek reports the next bit Read would return, without shifting the
// register, for use by a side-effect-free tracer.
func (c *Controller) Peek() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	return c.shiftRegister & 1
}

// Reset returns the controller to its power-up state.
func (c *Controller) Reset() {
	c.buttons = 0
	c.strobe = false
	c.shiftRegister = 0
}

// InputState holds the two controller ports the CPU bus exposes at
// $4016/$4017.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState builds an InputState with two idle controllers.
func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

// Reset resets both controllers.
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets controller 1's button state.
func (is *InputState) SetButtons1(buttons [8]bool) { is.Controller1.SetButtons(buttons) }

// SetButtons2 sets controller 2's button state.
func (is *InputState) SetButtons2(buttons [8]bool) { is.Controller2.SetButtons(buttons) }

// Read dispatches a CPU read to the addressed controller port. $4017
// always has bit 6 forced set: open-bus behavior real NES hardware
// exhibits since nothing drives that bit on the second port.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Peek mirrors Read without shifting either controller's register.
func (is *InputState) Peek(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Peek()
	case 0x4017:
		return is.Controller2.Peek() | 0x40
	default:
		return 0
	}
}

// Write strobes both controller ports; real hardware wires $4016's write
// to both controllers simultaneously.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
