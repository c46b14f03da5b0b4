// Package bus wires the CPU, PPU, APU, cartridge and controllers together
// into one NES system and drives their relative timing.
package bus

import (
	"nespit/internal/apu"
	"nespit/internal/cartridge"
	"nespit/internal/cpu"
	"nespit/internal/input"
	"nespit/internal/memory"
	"nespit/internal/ppu"
)

// Bus is the system bus: it owns every component and is the CPU's sole
// view of the outside world.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	ppuMemory *memory.PPUMemory
	cart      memory.CartridgeInterface

	cpuCycles  uint64
	frameCount uint64

	lastNMILine bool
	nmiLatched  bool

	dmaSuspendCycles uint64
}

// New creates a bus with no cartridge loaded. LoadCartridge must be called
// before Step will do anything useful.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(nil),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}
	b.Memory = memory.New(b.PPU, b.APU, b.Input, nil)
	b.Memory.SetDMACallback(b.triggerOAMDMA)
	b.CPU = cpu.New(b)
	return b
}

// LoadCartridge wires a freshly loaded cartridge into the existing bus,
// rewiring the address-space views that depend on it (the PPU's view is
// built on the first load and reused afterwards), and resets
// the CPU so PC picks up the new reset vector.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.Memory.SetCartridge(cart)

	mirror := memory.MirrorHorizontal
	switch cart.MirrorMode() {
	case cartridge.MirrorVertical:
		mirror = memory.MirrorVertical
	case cartridge.MirrorFourScreen:
		mirror = memory.MirrorFourScreen
	}

	if b.ppuMemory == nil {
		b.ppuMemory = memory.NewPPUMemory(cart, mirror)
		b.PPU.SetMemory(b.ppuMemory)
	} else {
		b.ppuMemory.SetCartridge(cart)
		b.ppuMemory.SetMirror(mirror)
	}

	b.Reset()
}

// Reset resets every component and the bus's own timing state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	b.cpuCycles = 0
	b.frameCount = 0
	b.dmaSuspendCycles = 0
	b.lastNMILine = false
	b.nmiLatched = false
}

// Read performs a CPU-bus read.
func (b *Bus) Read(address uint16) uint8 { return b.Memory.Read(address) }

// Write performs a CPU-bus write.
func (b *Bus) Write(address uint16, value uint8) { b.Memory.Write(address, value) }

// Peek performs a side-effect-free CPU-bus read for the trace package.
func (b *Bus) Peek(address uint16) uint8 { return b.Memory.Peek(address) }

// PollNMI reports and consumes a pending NMI, satisfying cpu.Bus. It is
// edge-latched here rather than in the PPU: the bus samples the PPU's
// level-based NMI output every PPU tick and records the 0->1 transition.
func (b *Bus) PollNMI() bool {
	if b.nmiLatched {
		b.nmiLatched = false
		return true
	}
	return false
}

// PendingNMI reports whether an NMI is latched without consuming it, for a
// caller (the trace formatter) that needs to know whether the next Step
// will service an interrupt instead of executing the instruction at PC.
func (b *Bus) PendingNMI() bool {
	return b.nmiLatched
}

// Step executes exactly one CPU instruction (or one cycle of OAM-DMA
// stall) and fans the consumed cycles out to the PPU at 3x and the APU at
// 1x, the fixed NTSC clock ratio.
func (b *Bus) Step() uint8 {
	var cycles uint8
	if b.dmaSuspendCycles > 0 {
		b.dmaSuspendCycles--
		cycles = 1
	} else {
		cycles = b.CPU.Step()
	}

	for i := uint8(0); i < cycles; i++ {
		for j := 0; j < 3; j++ {
			b.PPU.Step()
			b.sampleNMIEdge()
		}
		b.APU.Step()
	}

	b.cpuCycles += uint64(cycles)
	return cycles
}

func (b *Bus) sampleNMIEdge() {
	line := b.PPU.NMIOutput()
	if line && !b.lastNMILine {
		b.nmiLatched = true
	}
	b.lastNMILine = line
}

// triggerOAMDMA performs an immediate 256-byte OAM transfer from
// sourcePage*0x100 and stalls the CPU for 513 cycles, or 514 if the
// transfer starts on an odd CPU cycle.
func (b *Bus) triggerOAMDMA(sourcePage uint8) {
	base := uint16(sourcePage) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAM(uint8(i), b.Memory.Read(base+uint16(i)))
	}

	stall := uint64(513)
	if b.cpuCycles%2 == 1 {
		stall = 514
	}
	b.dmaSuspendCycles += stall
}

// RunFrame steps the bus until the PPU reports one more completed frame
// than it had when this call began.
func (b *Bus) RunFrame() {
	target := b.PPU.Frame + 1
	for b.PPU.Frame < target {
		b.Step()
	}
}

// CycleCount returns the number of CPU cycles the bus has executed.
func (b *Bus) CycleCount() uint64 { return b.cpuCycles }

// PC returns the CPU's current program counter, for a display backend's
// status readout.
func (b *Bus) PC() uint16 { return b.CPU.PC }

// FrameBuffer returns the PPU's current picture buffer.
func (b *Bus) FrameBuffer() [ppu.FrameWidth * ppu.FrameHeight]uint32 {
	return b.PPU.FrameBuffer()
}

// SetControllerButton sets a single button on controller 1 or 2 (1-indexed).
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all eight buttons on controller 1 or 2
// (1-indexed) at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}
