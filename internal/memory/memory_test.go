package memory

import "testing"

type mockPPU struct {
	registers [8]uint8
	writes    []uint16
}

func (m *mockPPU) ReadRegister(address uint16) uint8  { return m.registers[address&7] }
func (m *mockPPU) PeekRegister(address uint16) uint8  { return m.registers[address&7] }
func (m *mockPPU) WriteRegister(address uint16, value uint8) {
	m.writes = append(m.writes, address)
	m.registers[address&7] = value
}

type mockAPU struct {
	lastWriteAddr uint16
	lastWriteVal  uint8
	status        uint8
}

func (m *mockAPU) WriteRegister(address uint16, value uint8) {
	m.lastWriteAddr, m.lastWriteVal = address, value
}
func (m *mockAPU) ReadStatus() uint8 { return m.status }

type mockInput struct {
	reads  []uint16
	writes []uint16
}

func (m *mockInput) Read(address uint16) uint8 {
	m.reads = append(m.reads, address)
	return 0x41
}
func (m *mockInput) Peek(address uint16) uint8 { return 0x41 }
func (m *mockInput) Write(address uint16, value uint8) {
	m.writes = append(m.writes, address)
}

type mockCartridge struct {
	prg [0x8000]uint8
	chr [0x2000]uint8
}

func (m *mockCartridge) ReadPRG(address uint16) uint8 {
	if address < 0x8000 {
		return 0
	}
	return m.prg[address-0x8000]
}
func (m *mockCartridge) WritePRG(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 {
		m.prg[address-0x6000] = value
	}
}
func (m *mockCartridge) ReadCHR(address uint16) uint8         { return m.chr[address] }
func (m *mockCartridge) WriteCHR(address uint16, value uint8) { m.chr[address] = value }

func newTestMemory() (*Memory, *mockPPU, *mockAPU, *mockInput, *mockCartridge) {
	ppu, apu, input, cart := &mockPPU{}, &mockAPU{}, &mockInput{}, &mockCartridge{}
	return New(ppu, apu, input, cart), ppu, apu, input, cart
}

func TestRAMIsMirroredEveryTwoKilobytes(t *testing.T) {
	m, _, _, _, _ := newTestMemory()
	m.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := m.Read(mirror); got != 0x42 {
			t.Fatalf("expected mirror at %#04x to read 0x42, got %#02x", mirror, got)
		}
	}
}

func TestPPURegistersAreMirroredEveryEightBytes(t *testing.T) {
	m, ppu, _, _, _ := newTestMemory()
	m.Write(0x2000, 0x80)
	if ppu.registers[0] != 0x80 {
		t.Fatalf("expected PPUCTRL write to land, got %#02x", ppu.registers[0])
	}
	if got := m.Read(0x2008); got != 0x80 {
		t.Fatalf("expected mirrored read at 0x2008 to return 0x80, got %#02x", got)
	}
}

func TestAPUStatusReadRoutesToFourThousandFifteen(t *testing.T) {
	m, _, apu, _, _ := newTestMemory()
	apu.status = 0x1F
	if got := m.Read(0x4015); got != 0x1F {
		t.Fatalf("expected $4015 read to return APU status, got %#02x", got)
	}
}

func TestControllerReadsDispatchToInput(t *testing.T) {
	m, _, _, input, _ := newTestMemory()
	if got := m.Read(0x4016); got != 0x41 {
		t.Fatalf("expected controller read to return 0x41, got %#02x", got)
	}
	if got := m.Read(0x4017); got != 0x41 {
		t.Fatalf("expected controller read to return 0x41, got %#02x", got)
	}
	if len(input.reads) != 2 {
		t.Fatalf("expected 2 input reads, got %d", len(input.reads))
	}
}

func TestOAMDMAWriteInvokesCallback(t *testing.T) {
	m, _, _, _, _ := newTestMemory()
	var gotPage uint8
	called := false
	m.SetDMACallback(func(page uint8) {
		called = true
		gotPage = page
	})
	m.Write(0x4014, 0x03)
	if !called {
		t.Fatal("expected DMA callback to fire on $4014 write")
	}
	if gotPage != 0x03 {
		t.Fatalf("expected DMA page 0x03, got %#02x", gotPage)
	}
}

func TestCartridgePRGReadAboveSixThousand(t *testing.T) {
	m, _, _, _, cart := newTestMemory()
	cart.prg[0] = 0xAB
	if got := m.Read(0x8000); got != 0xAB {
		t.Fatalf("expected cartridge PRG read, got %#02x", got)
	}
}

func TestPeekDoesNotConsumeControllerShiftRegister(t *testing.T) {
	m, _, _, input, _ := newTestMemory()
	m.Peek(0x4016)
	if len(input.reads) != 0 {
		t.Fatal("expected Peek to avoid calling Input.Read")
	}
}

func TestSRAMWriteBelowEightThousandReachesCartridge(t *testing.T) {
	m, _, _, _, cart := newTestMemory()
	m.Write(0x6000, 0x55)
	if cart.prg[0] != 0x55 {
		t.Fatalf("expected SRAM write to reach the cartridge, got %#02x", cart.prg[0])
	}
}

func TestWriteToPRGROMIsFatal(t *testing.T) {
	m, _, _, _, _ := newTestMemory()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a write to $8000+ to panic")
		}
	}()
	m.Write(0x8000, 0x00)
}

func TestNametableMirroringHorizontal(t *testing.T) {
	p := NewPPUMemory(&mockCartridge{}, MirrorHorizontal)
	p.Write(0x2000, 0x10)
	if got := p.Read(0x2400); got != 0x10 {
		t.Fatalf("expected horizontal mirroring to alias $2000 and $2400, got %#02x", got)
	}
	if got := p.Read(0x2800); got == 0x10 {
		t.Fatal("expected $2800 to be a distinct physical bank under horizontal mirroring")
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	p := NewPPUMemory(&mockCartridge{}, MirrorVertical)
	p.Write(0x2000, 0x10)
	if got := p.Read(0x2800); got != 0x10 {
		t.Fatalf("expected vertical mirroring to alias $2000 and $2800, got %#02x", got)
	}
}

func TestPaletteMirrorsBackdropColors(t *testing.T) {
	p := NewPPUMemory(&mockCartridge{}, MirrorHorizontal)
	p.Write(0x3F00, 0x0F)
	if got := p.Read(0x3F10); got != 0x0F {
		t.Fatalf("expected $3F10 to mirror the backdrop color at $3F00, got %#02x", got)
	}
}
