// Package cpu implements an instruction-accurate interpreter for the NES's
// 6502 (technically Ricoh 2A03, no decimal mode) core.
package cpu

// Status flag bit positions within the P register. Bits 4 and 5 have no
// backing flip-flop; they are synthesized only when P is pushed to the
// stack (PHP, BRK, IRQ, NMI) and ignored when P is loaded back (PLP, RTI).
const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

const stackBase uint16 = 0x0100

const (
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
)

// Bus is everything the CPU needs from its host to execute instructions.
// Read may have side effects (a PPU status read clears vblank); Peek must
// never have any and exists solely so a disassembler/tracer can describe an
// instruction before it runs without disturbing the machine it describes.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Peek(addr uint16) uint8
	PollNMI() bool
}

// CPU holds 6502 register state and drives instruction execution against a
// Bus. Fields are exported the way a debugger or trace formatter needs to
// read them directly.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	C, Z, I, D, V, N bool

	Cycles uint64

	bus    Bus
	halted bool
}

// New wires a CPU to its bus. Call Reset before the first Step.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset puts the CPU into its documented power-up/reset register state and
// loads PC from the reset vector. The real reset sequence burns 7 cycles
// doing dummy stack reads; nestest-style traces count those, so Cycles
// starts at 7 rather than 0.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.setStatus(0x24)
	c.PC = c.read16(resetVector)
	c.Cycles = 7
	c.halted = false
}

// Halted reports whether the CPU executed a JAM opcode and is frozen.
func (c *CPU) Halted() bool {
	return c.halted
}

// Status packs the flags into a P register byte, with bit 5 always set and
// bit 4 (B) set only by the caller's choice (push-time semantics differ
// between PHP/BRK and IRQ/NMI).
func (c *CPU) Status(breakFlag bool) uint8 {
	var p uint8 = flagU
	if c.C {
		p |= flagC
	}
	if c.Z {
		p |= flagZ
	}
	if c.I {
		p |= flagI
	}
	if c.D {
		p |= flagD
	}
	if breakFlag {
		p |= flagB
	}
	if c.V {
		p |= flagV
	}
	if c.N {
		p |= flagN
	}
	return p
}

func (c *CPU) setStatus(p uint8) {
	c.C = p&flagC != 0
	c.Z = p&flagZ != 0
	c.I = p&flagI != 0
	c.D = p&flagD != 0
	c.V = p&flagV != 0
	c.N = p&flagN != 0
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return lo | hi<<8
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// Step polls for a pending NMI, then fetches, decodes and executes exactly
// one instruction, returning the number of CPU cycles it consumed so the
// caller (the bus) can fan those cycles out to the PPU and APU.
func (c *CPU) Step() uint8 {
	if c.halted {
		return 2
	}

	if c.bus.PollNMI() {
		return c.serviceInterrupt(nmiVector, false)
	}

	opcode := c.bus.Read(c.PC)
	info := opcodes[opcode]
	c.PC++

	addr, pageCrossed := c.resolveOperand(info.Mode, c.bus.Read)
	c.PC += uint16(info.Bytes) - 1

	cycles := info.Cycles
	extra := c.execute(info, addr)
	cycles += extra

	if pageCrossed && info.Kind == KindRead {
		cycles++
	}

	c.Cycles += uint64(cycles)
	return cycles
}

// resolveOperand computes the effective address for mode using read as the
// byte source for operand/pointer fetches. The operand bytes are read
// starting at c.PC (which must already point past the opcode byte); read16
// is not reused here because the indirect modes wrap within the zero page
// or within a single page, details read16 does not model.
func (c *CPU) resolveOperand(mode AddressingMode, read func(uint16) uint8) (addr uint16, pageCrossed bool) {
	pc := c.PC
	switch mode {
	case Implicit, Accumulator:
		return 0, false
	case Immediate:
		return pc, false
	case ZeroPage:
		return uint16(read(pc)), false
	case ZeroPageX:
		return uint16(read(pc) + c.X), false
	case ZeroPageY:
		return uint16(read(pc) + c.Y), false
	case Absolute:
		return uint16(read(pc)) | uint16(read(pc+1))<<8, false
	case AbsoluteX:
		base := uint16(read(pc)) | uint16(read(pc+1))<<8
		addr := base + uint16(c.X)
		return addr, base&0xFF00 != addr&0xFF00
	case AbsoluteY:
		base := uint16(read(pc)) | uint16(read(pc+1))<<8
		addr := base + uint16(c.Y)
		return addr, base&0xFF00 != addr&0xFF00
	case Indirect:
		ptr := uint16(read(pc)) | uint16(read(pc+1))<<8
		// Hardware bug: the high byte fetch does not cross a page
		// boundary, it wraps within the same page as the pointer's low byte.
		hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
		lo := read(ptr)
		hi := read(hiAddr)
		return uint16(lo) | uint16(hi)<<8, false
	case IndirectX:
		zp := read(pc) + c.X
		lo := read(uint16(zp))
		hi := read(uint16(zp + 1))
		return uint16(lo) | uint16(hi)<<8, false
	case IndirectY:
		zp := read(pc)
		lo := read(uint16(zp))
		hi := read(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Y)
		return addr, base&0xFF00 != addr&0xFF00
	case Relative:
		offset := int8(read(pc))
		target := pc + 1 + uint16(offset)
		return target, false
	}
	return 0, false
}

// PeekOperand mirrors resolveOperand but reads exclusively through
// bus.Peek, for use by a disassembler/tracer that must describe the
// instruction at pc without side effects. pc must point at the byte
// immediately following the opcode, matching resolveOperand's convention.
func (c *CPU) PeekOperand(mode AddressingMode, pc uint16) (addr uint16, pageCrossed bool) {
	saved := c.PC
	c.PC = pc
	addr, pageCrossed = c.resolveOperand(mode, c.bus.Peek)
	c.PC = saved
	return addr, pageCrossed
}

// Peek exposes the bus's side-effect-free read for collaborators (the
// trace formatter) that need to show an operand's value without disturbing
// machine state.
func (c *CPU) Peek(addr uint16) uint8 {
	return c.bus.Peek(addr)
}

func (c *CPU) serviceInterrupt(vector uint16, breakFlag bool) uint8 {
	c.pushWord(c.PC)
	c.push(c.Status(breakFlag))
	c.I = true
	c.PC = c.read16(vector)
	return 7
}

// execute runs the decoded instruction and returns any cycle cost beyond
// info.Cycles that only the operation itself knows about (branches taken,
// taken-across-a-page).
func (c *CPU) execute(info Opcode, addr uint16) uint8 {
	mode := info.Mode
	switch info.Mnemonic {
	case "LDA":
		c.A = c.bus.Read(addr)
		c.setZN(c.A)
	case "LDX":
		c.X = c.bus.Read(addr)
		c.setZN(c.X)
	case "LDY":
		c.Y = c.bus.Read(addr)
		c.setZN(c.Y)
	case "STA":
		c.bus.Write(addr, c.A)
	case "STX":
		c.bus.Write(addr, c.X)
	case "STY":
		c.bus.Write(addr, c.Y)
	case "TAX":
		c.X = c.A
		c.setZN(c.X)
	case "TAY":
		c.Y = c.A
		c.setZN(c.Y)
	case "TXA":
		c.A = c.X
		c.setZN(c.A)
	case "TYA":
		c.A = c.Y
		c.setZN(c.A)
	case "TSX":
		c.X = c.SP
		c.setZN(c.X)
	case "TXS":
		c.SP = c.X
	case "PHA":
		c.push(c.A)
	case "PHP":
		c.push(c.Status(true))
	case "PLA":
		c.A = c.pop()
		c.setZN(c.A)
	case "PLP":
		c.setStatus(c.pop())
	case "ADC":
		c.adc(c.bus.Read(addr))
	case "SBC":
		c.adc(^c.bus.Read(addr))
	case "AND":
		c.A &= c.bus.Read(addr)
		c.setZN(c.A)
	case "ORA":
		c.A |= c.bus.Read(addr)
		c.setZN(c.A)
	case "EOR":
		c.A ^= c.bus.Read(addr)
		c.setZN(c.A)
	case "CMP":
		c.compare(c.A, c.bus.Read(addr))
	case "CPX":
		c.compare(c.X, c.bus.Read(addr))
	case "CPY":
		c.compare(c.Y, c.bus.Read(addr))
	case "INC":
		v := c.bus.Read(addr) + 1
		c.bus.Write(addr, v)
		c.setZN(v)
	case "INX":
		c.X++
		c.setZN(c.X)
	case "INY":
		c.Y++
		c.setZN(c.Y)
	case "DEC":
		v := c.bus.Read(addr) - 1
		c.bus.Write(addr, v)
		c.setZN(v)
	case "DEX":
		c.X--
		c.setZN(c.X)
	case "DEY":
		c.Y--
		c.setZN(c.Y)
	case "ASL":
		c.shiftRMW(mode, addr, func(v uint8) uint8 {
			c.C = v&0x80 != 0
			return v << 1
		})
	case "LSR":
		c.shiftRMW(mode, addr, func(v uint8) uint8 {
			c.C = v&0x01 != 0
			return v >> 1
		})
	case "ROL":
		c.shiftRMW(mode, addr, func(v uint8) uint8 {
			carryIn := c.C
			c.C = v&0x80 != 0
			result := v << 1
			if carryIn {
				result |= 0x01
			}
			return result
		})
	case "ROR":
		c.shiftRMW(mode, addr, func(v uint8) uint8 {
			carryIn := c.C
			c.C = v&0x01 != 0
			result := v >> 1
			if carryIn {
				result |= 0x80
			}
			return result
		})
	case "BIT":
		v := c.bus.Read(addr)
		c.Z = c.A&v == 0
		c.V = v&0x40 != 0
		c.N = v&0x80 != 0
	case "JMP":
		c.PC = addr
	case "JSR":
		c.pushWord(c.PC - 1)
		c.PC = addr
	case "RTS":
		c.PC = c.popWord() + 1
	case "RTI":
		c.setStatus(c.pop())
		c.PC = c.popWord()
	case "BRK":
		c.PC++
		return c.serviceInterrupt(irqVector, true) - info.Cycles
	case "CLC":
		c.C = false
	case "SEC":
		c.C = true
	case "CLI":
		c.I = false
	case "SEI":
		c.I = true
	case "CLV":
		c.V = false
	case "CLD":
		c.D = false
	case "SED":
		c.D = true
	case "NOP":
		// Unofficial NOP variants still read their operand for the bus
		// side effects and timing; the value itself is discarded.
		if mode != Implicit {
			c.bus.Read(addr)
		}
	case "BPL":
		return c.branch(!c.N, addr)
	case "BMI":
		return c.branch(c.N, addr)
	case "BVC":
		return c.branch(!c.V, addr)
	case "BVS":
		return c.branch(c.V, addr)
	case "BCC":
		return c.branch(!c.C, addr)
	case "BCS":
		return c.branch(c.C, addr)
	case "BNE":
		return c.branch(!c.Z, addr)
	case "BEQ":
		return c.branch(c.Z, addr)
	case "JAM":
		c.halted = true
		c.PC -= uint16(info.Bytes)
	case "LAX":
		c.A = c.bus.Read(addr)
		c.X = c.A
		c.setZN(c.A)
	case "SAX":
		c.bus.Write(addr, c.A&c.X)
	case "DCP":
		v := c.bus.Read(addr) - 1
		c.bus.Write(addr, v)
		c.compare(c.A, v)
	case "ISB":
		v := c.bus.Read(addr) + 1
		c.bus.Write(addr, v)
		c.adc(^v)
	case "SLO":
		v := c.bus.Read(addr)
		c.C = v&0x80 != 0
		v <<= 1
		c.bus.Write(addr, v)
		c.A |= v
		c.setZN(c.A)
	case "RLA":
		v := c.bus.Read(addr)
		carryIn := c.C
		c.C = v&0x80 != 0
		v <<= 1
		if carryIn {
			v |= 0x01
		}
		c.bus.Write(addr, v)
		c.A &= v
		c.setZN(c.A)
	case "SRE":
		v := c.bus.Read(addr)
		c.C = v&0x01 != 0
		v >>= 1
		c.bus.Write(addr, v)
		c.A ^= v
		c.setZN(c.A)
	case "RRA":
		v := c.bus.Read(addr)
		carryIn := c.C
		c.C = v&0x01 != 0
		v >>= 1
		if carryIn {
			v |= 0x80
		}
		c.bus.Write(addr, v)
		c.adc(v)
	case "ANC":
		c.A &= c.bus.Read(addr)
		c.setZN(c.A)
		c.C = c.N
	case "ALR":
		c.A &= c.bus.Read(addr)
		c.C = c.A&0x01 != 0
		c.A >>= 1
		c.setZN(c.A)
	case "ARR":
		c.A &= c.bus.Read(addr)
		c.A = (c.A >> 1) | boolBit(c.C)<<7
		c.setZN(c.A)
		c.C = c.A&0x40 != 0
		c.V = (c.A>>6)&1^(c.A>>5)&1 != 0
	case "ANE":
		// Unstable on real silicon; this models the commonly-cited
		// magic-constant approximation (A = (A|0xEE) & X & imm).
		c.A = (c.A | 0xEE) & c.X & c.bus.Read(addr)
		c.setZN(c.A)
	case "LXA":
		c.A = (c.A | 0xEE) & c.bus.Read(addr)
		c.X = c.A
		c.setZN(c.A)
	case "SBX":
		v := c.bus.Read(addr)
		result := (c.A & c.X) - v
		c.C = c.A&c.X >= v
		c.X = result
		c.setZN(c.X)
	case "SHA":
		v := c.A & c.X & uint8(addr>>8+1)
		c.bus.Write(addr, v)
	case "SHX":
		v := c.X & uint8(addr>>8+1)
		c.bus.Write(addr, v)
	case "SHY":
		v := c.Y & uint8(addr>>8+1)
		c.bus.Write(addr, v)
	case "TAS":
		c.SP = c.A & c.X
		v := c.SP & uint8(addr>>8+1)
		c.bus.Write(addr, v)
	case "LAS":
		v := c.bus.Read(addr) & c.SP
		c.A, c.X, c.SP = v, v, v
		c.setZN(v)
	}
	return 0
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// shiftRMW applies fn to the accumulator or to the byte at addr, matching
// the dual Accumulator/memory form ASL, LSR, ROL and ROR all share.
func (c *CPU) shiftRMW(mode AddressingMode, addr uint16, fn func(uint8) uint8) {
	if mode == Accumulator {
		c.A = fn(c.A)
		c.setZN(c.A)
		return
	}
	v := c.bus.Read(addr)
	v = fn(v)
	c.bus.Write(addr, v)
	c.setZN(v)
}

// adc implements both ADC and SBC; SBC is ADC with the operand inverted,
// which is exactly how the hardware's ALU sees it.
func (c *CPU) adc(value uint8) {
	sum := uint16(c.A) + uint16(value)
	if c.C {
		sum++
	}
	result := uint8(sum)
	c.C = sum > 0xFF
	c.V = (c.A^result)&(value^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg, value uint8) {
	c.C = reg >= value
	c.setZN(reg - value)
}

// branch applies a conditional branch's timing: +1 cycle if taken, +1 more
// if the branch target lands on a different page than the instruction
// following the branch.
func (c *CPU) branch(taken bool, target uint16) uint8 {
	if !taken {
		return 0
	}
	from := c.PC
	c.PC = target
	if from&0xFF00 != target&0xFF00 {
		return 2
	}
	return 1
}
