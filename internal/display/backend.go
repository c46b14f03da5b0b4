// Package display hosts the emulator in a window, a terminal dashboard,
// or nothing at all, behind one shared interface so cmd/gones can pick a
// backend from a flag instead of branching on concrete types.
package display

import "nespit/internal/input"

// Machine is what a display backend needs from the running emulator: a
// way to advance time and a way to read controller input from the host.
type Machine interface {
	RunFrame()
	SetControllerButton(controller int, button input.Button, pressed bool)
	FrameBuffer() [256 * 240]uint32
	CycleCount() uint64
	PC() uint16
}

// Backend hosts a Machine until the user quits or the host process is
// signaled to stop.
type Backend interface {
	Run(m Machine) error
}
