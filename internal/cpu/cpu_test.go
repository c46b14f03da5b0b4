package cpu

import "testing"

// testBus is a flat 64KB address space with no side effects, used to drive
// the CPU in isolation from the real bus package.
type testBus struct {
	mem [0x10000]uint8
	nmi bool
}

func (b *testBus) Read(addr uint16) uint8         { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v uint8)     { b.mem[addr] = v }
func (b *testBus) Peek(addr uint16) uint8         { return b.mem[addr] }
func (b *testBus) PollNMI() bool {
	v := b.nmi
	b.nmi = false
	return v
}

func (b *testBus) load(addr uint16, program []uint8) {
	copy(b.mem[addr:], program)
}

func newTestCPU() (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU()
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Fatalf("expected zeroed registers, got A=%02X X=%02X Y=%02X", c.A, c.X, c.Y)
	}
	if c.SP != 0xFD {
		t.Fatalf("expected SP=0xFD, got %02X", c.SP)
	}
	if c.Status(false) != 0x24 {
		t.Fatalf("expected P=0x24, got %02X", c.Status(false))
	}
	if c.PC != 0x8000 {
		t.Fatalf("expected PC loaded from reset vector, got %04X", c.PC)
	}
	if c.Cycles != 7 {
		t.Fatalf("expected 7 cycles burned by reset, got %d", c.Cycles)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x8000, []uint8{0xA9, 0x00})
	c.Step()
	if !c.Z {
		t.Fatal("expected Z set after loading 0")
	}
	bus.load(0x8000, []uint8{0xA9, 0x80})
	c.PC = 0x8000
	c.Step()
	if !c.N {
		t.Fatal("expected N set after loading a negative value")
	}
}

func TestAdcOverflowAndCarry(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x50
	bus.load(0x8000, []uint8{0x69, 0x50}) // ADC #$50
	c.Step()
	if c.A != 0xA0 {
		t.Fatalf("expected A=0xA0, got %02X", c.A)
	}
	if !c.V {
		t.Fatal("expected signed overflow from 0x50+0x50")
	}
	if c.C {
		t.Fatal("did not expect carry out")
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	bus.load(0x8000, []uint8{0xBD, 0x01, 0x00}) // LDA $0001,X -> $0100, crosses page
	cycles := c.Step()
	if cycles != 5 {
		t.Fatalf("expected 4 base + 1 page-cross cycle, got %d", cycles)
	}
}

func TestStaAbsoluteXNeverGetsPageCrossBonus(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	bus.load(0x8000, []uint8{0x9D, 0x01, 0x00}) // STA $0001,X
	cycles := c.Step()
	if cycles != 5 {
		t.Fatalf("STA,X is always 5 cycles, got %d", cycles)
	}
}

func TestBranchTakenAcrossPage(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x80F8
	bus.load(0x80F8, []uint8{0xF0, 0x10}) // BEQ +16: next instruction $80FA, target $810A
	c.Z = true
	cycles := c.Step()
	if cycles != 4 {
		t.Fatalf("expected 2 base + 2 for taken-across-page, got %d", cycles)
	}
	if c.PC != 0x810A {
		t.Fatalf("unexpected branch target %04X", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x30FF] = 0x80
	bus.mem[0x3000] = 0x50 // hardware bug: high byte wraps within the page
	bus.mem[0x3100] = 0x00
	bus.load(0x8000, []uint8{0x6C, 0xFF, 0x30}) // JMP ($30FF)
	c.Step()
	if c.PC != 0x5080 {
		t.Fatalf("expected JMP indirect page-wrap bug to produce $5080, got %04X", c.PC)
	}
}

func TestStackWrapsWithinPageOne(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0x00
	bus.load(0x8000, []uint8{0x48}) // PHA
	c.Step()
	if bus.mem[0x0100] != c.A {
		t.Fatal("expected push to wrap to $0100 when SP is 0")
	}
	if c.SP != 0xFF {
		t.Fatalf("expected SP to wrap to 0xFF, got %02X", c.SP)
	}
}

func TestBRKIsSevenCycleInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x90
	bus.load(0x8000, []uint8{0x00, 0x00}) // BRK
	cycles := c.Step()
	if cycles != 7 {
		t.Fatalf("expected BRK to cost 7 cycles, got %d", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("expected PC vectored through $FFFE, got %04X", c.PC)
	}
	if !c.I {
		t.Fatal("expected I set after BRK")
	}
	pushedStatus := bus.mem[0x01FB]
	if pushedStatus&flagB == 0 {
		t.Fatal("expected B flag set in the pushed status for BRK")
	}
}

func TestNMIServicedBeforeNextInstruction(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90
	bus.nmi = true
	bus.load(0x8000, []uint8{0xEA}) // NOP, should never run
	cycles := c.Step()
	if cycles != 7 {
		t.Fatalf("expected NMI service to cost 7 cycles, got %d", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("expected PC vectored through $FFFA, got %04X", c.PC)
	}
	pushedStatus := bus.mem[0x01FB]
	if pushedStatus&flagB != 0 {
		t.Fatal("NMI should not set the B flag in the pushed status")
	}
}

func TestJAMHaltsTheCPU(t *testing.T) {
	c, bus := newTestCPU()
	bus.load(0x8000, []uint8{0x02}) // JAM
	pc := c.PC
	c.Step()
	if !c.Halted() {
		t.Fatal("expected JAM to halt the CPU")
	}
	if c.PC != pc {
		t.Fatalf("expected PC to stay at the JAM opcode, got %04X want %04X", c.PC, pc)
	}
	cycles := c.Step()
	if cycles != 2 || c.PC != pc {
		t.Fatal("expected a halted CPU to stay frozen on further Step calls")
	}
}

func TestIndirectYIndexingWithPageCross(t *testing.T) {
	c, bus := newTestCPU()
	c.Y = 0xFF
	bus.mem[0x0010] = 0x01
	bus.mem[0x0011] = 0x00 // pointer at $0010 -> $0001, +Y(0xFF) crosses into $0100
	bus.mem[0x0100] = 0x42
	bus.load(0x8000, []uint8{0xB1, 0x10}) // LDA ($10),Y
	cycles := c.Step()
	if c.A != 0x42 {
		t.Fatalf("expected A=0x42, got %02X", c.A)
	}
	if cycles != 6 {
		t.Fatalf("expected 5 base + 1 page-cross cycle, got %d", cycles)
	}
}
