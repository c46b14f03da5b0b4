// Package memory implements the CPU and PPU address spaces the bus
// arbitrates between RAM, the PPU/APU register windows, the controller
// ports and cartridge ROM.
package memory

import "fmt"

// PPUInterface is the subset of PPU register behavior the CPU address space
// needs. ReadRegister may have side effects (reading $2002 clears vblank
// and the write-latch); PeekRegister must not, so a tracer can describe an
// instruction before it runs.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	PeekRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the subset of APU behavior visible on the CPU bus.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface is the subset of controller behavior visible on the CPU
// bus. Read shifts the controller's register; Peek reports the next bit
// without consuming it.
type InputInterface interface {
	Read(address uint16) uint8
	Peek(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is what a loaded cartridge exposes to both address
// spaces.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// MirrorMode controls how the 2KB of physical nametable RAM maps onto the
// PPU's four logical 1KB nametables.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

// Memory is the CPU's view of the address space. The bus owns one of these;
// nothing about it is reachable except through the bus.
type Memory struct {
	ram       [0x0800]uint8
	ppu       PPUInterface
	apu       APUInterface
	input     InputInterface
	cartridge CartridgeInterface
	dma       func(page uint8)
}

// New builds a CPU memory view wired to the given collaborators. RAM starts
// zeroed; nothing in this emulator relies on or reproduces the NES's
// power-on RAM noise.
func New(ppu PPUInterface, apu APUInterface, input InputInterface, cart CartridgeInterface) *Memory {
	return &Memory{ppu: ppu, apu: apu, input: input, cartridge: cart}
}

// SetCartridge rewires the cartridge a loaded ROM is read through, used
// when the bus swaps cartridges without rebuilding the whole memory map.
func (m *Memory) SetCartridge(cart CartridgeInterface) { m.cartridge = cart }

// SetDMACallback registers the bus's OAM DMA handler for writes to $4014.
// The bus is the sole owner of DMA timing; Memory only forwards the write.
func (m *Memory) SetDMACallback(fn func(page uint8)) { m.dma = fn }

// Read performs a CPU memory read, which may have side effects on the PPU,
// APU or controllers it's routed through.
func (m *Memory) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]
	case address < 0x4000:
		return m.ppu.ReadRegister(0x2000 + address&0x0007)
	case address == 0x4015:
		return m.apu.ReadStatus()
	case address == 0x4016 || address == 0x4017:
		return m.input.Read(address)
	case address < 0x4020:
		return 0
	case address < 0x6000:
		return 0
	default:
		return m.cartridge.ReadPRG(address)
	}
}

// Peek performs a side-effect-free read, used by the trace formatter to
// describe an instruction's operand value before it executes.
func (m *Memory) Peek(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]
	case address < 0x4000:
		return m.ppu.PeekRegister(0x2000 + address&0x0007)
	case address == 0x4016 || address == 0x4017:
		return m.input.Peek(address)
	case address < 0x6000:
		return 0
	default:
		return m.cartridge.ReadPRG(address)
	}
}

// Write performs a CPU memory write. A write to $8000-$FFFF (PRG ROM) is a
// programmer error, not runtime data, and is fatal rather than silently
// dropped.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value
	case address < 0x4000:
		m.ppu.WriteRegister(0x2000+address&0x0007, value)
	case address == 0x4014:
		if m.dma != nil {
			m.dma(value)
		}
	case address == 0x4016:
		m.input.Write(address, value)
	case address < 0x4018:
		m.apu.WriteRegister(address, value)
	case address < 0x6000:
		// Unmapped expansion/test space.
	case address < 0x8000:
		m.cartridge.WritePRG(address, value)
	default:
		panic(fmt.Sprintf("memory: write to PRG ROM space %#04x", address))
	}
}

// PPUMemory is the PPU's view of its own address space: pattern tables
// (through the cartridge), nametables and palette RAM.
type PPUMemory struct {
	nametables [0x1000]uint8
	palette    [32]uint8
	cartridge  CartridgeInterface
	mirror     MirrorMode
}

// NewPPUMemory builds a PPU memory view for the given cartridge and
// mirroring mode.
func NewPPUMemory(cart CartridgeInterface, mirror MirrorMode) *PPUMemory {
	return &PPUMemory{cartridge: cart, mirror: mirror}
}

// SetCartridge rewires the cartridge backing the pattern tables.
func (p *PPUMemory) SetCartridge(cart CartridgeInterface) { p.cartridge = cart }

// SetMirror changes the active nametable mirroring mode.
func (p *PPUMemory) SetMirror(mode MirrorMode) { p.mirror = mode }

// Read reads a byte from PPU address space ($0000-$3FFF).
func (p *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return p.cartridge.ReadCHR(address)
	case address < 0x3F00:
		return p.nametables[p.nametableIndex(address)]
	default:
		return p.palette[paletteIndex(address)]
	}
}

// Write writes a byte to PPU address space.
func (p *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		p.cartridge.WriteCHR(address, value)
	case address < 0x3F00:
		p.nametables[p.nametableIndex(address)] = value
	default:
		p.palette[paletteIndex(address)] = value
	}
}

// nametableIndex maps a $2000-$2FFF address (already mirrored down from the
// $3000-$3EFF alias range below) onto one of the two physical 1KB
// nametables according to the cartridge's mirroring mode.
func (p *PPUMemory) nametableIndex(address uint16) uint16 {
	offset := (address - 0x2000) % 0x1000
	table := offset / 0x0400
	within := offset % 0x0400

	switch p.mirror {
	case MirrorHorizontal:
		// Tables 0,1 share physical bank 0; tables 2,3 share bank 1.
		return (table/2)*0x0400 + within
	case MirrorVertical:
		// Tables 0,2 share physical bank 0; tables 1,3 share bank 1.
		return (table%2)*0x0400 + within
	default: // MirrorFourScreen
		return offset
	}
}

func paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) % 0x20
	// $3F10/$3F14/$3F18/$3F1C mirror the backdrop colors at $3F00/04/08/0C.
	if index >= 0x10 && index%4 == 0 {
		index -= 0x10
	}
	return index
}
