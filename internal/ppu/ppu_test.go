package ppu

import "testing"

type testMemory struct {
	data [0x4000]uint8
}

func (m *testMemory) Read(address uint16) uint8  { return m.data[address&0x3FFF] }
func (m *testMemory) Write(address uint16, v uint8) { m.data[address&0x3FFF] = v }

func newTestPPU() *PPU {
	return New(&testMemory{})
}

func stepN(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

func TestVBlankSetAtScanline241Dot1(t *testing.T) {
	p := newTestPPU()
	// Step to scanline 241, dot 1: (241*341)+1 steps from (0,0).
	stepN(p, 241*dotsPerScanline+1)
	if p.Scanline != 241 || p.Dot != 1 {
		t.Fatalf("expected scanline 241 dot 1, got %d,%d", p.Scanline, p.Dot)
	}
	if p.status&0x80 == 0 {
		t.Fatal("expected vblank flag set")
	}
}

func TestVBlankClearedAtPreRender(t *testing.T) {
	p := newTestPPU()
	stepN(p, 241*dotsPerScanline+1)
	if p.status&0x80 == 0 {
		t.Fatal("expected vblank set before pre-render")
	}
	stepN(p, (preRenderLine-vblankStartLine)*dotsPerScanline)
	if p.status&0x80 != 0 {
		t.Fatal("expected vblank cleared at pre-render scanline dot 1")
	}
}

func TestReadingStatusClearsVBlankAndLatch(t *testing.T) {
	p := newTestPPU()
	stepN(p, 241*dotsPerScanline+1)
	p.addrLatch = true
	v := p.ReadRegister(0x2002)
	if v&0x80 == 0 {
		t.Fatal("expected read value to reflect vblank set")
	}
	if p.status&0x80 != 0 {
		t.Fatal("expected vblank cleared after read")
	}
	if p.addrLatch {
		t.Fatal("expected address latch reset after reading $2002")
	}
}

func TestPeekRegisterDoesNotClearVBlank(t *testing.T) {
	p := newTestPPU()
	stepN(p, 241*dotsPerScanline+1)
	_ = p.PeekRegister(0x2002)
	if p.status&0x80 == 0 {
		t.Fatal("expected peek to leave vblank untouched")
	}
}

func TestNMIOutputRequiresBothEnableAndVBlank(t *testing.T) {
	p := newTestPPU()
	if p.NMIOutput() {
		t.Fatal("expected NMI output low before vblank")
	}
	p.WriteRegister(0x2000, 0x80)
	stepN(p, 241*dotsPerScanline+1)
	if !p.NMIOutput() {
		t.Fatal("expected NMI output high once enabled and in vblank")
	}
}

func TestPPUDataBufferedReadForNonPalette(t *testing.T) {
	p := newTestPPU()
	mem := p.mem.(*testMemory)
	mem.data[0x0010] = 0x55
	mem.data[0x0011] = 0x66
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x10)
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("expected stale buffered value 0 on first read, got %02X", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x55 {
		t.Fatalf("expected buffered value 0x55, got %02X", second)
	}
}

func TestPPUDataPaletteReadIsUnbuffered(t *testing.T) {
	p := newTestPPU()
	mem := p.mem.(*testMemory)
	mem.data[0x3F00] = 0x30
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	v := p.ReadRegister(0x2007)
	if v != 0x30 {
		t.Fatalf("expected immediate palette read 0x30, got %02X", v)
	}
}

func TestPPUDataAddressIncrementModeFromCtrl(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2000, 0x04) // increment by 32
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0xAA)
	if p.vramAddr != 32 {
		t.Fatalf("expected vram address to advance by 32, got %d", p.vramAddr)
	}
}

func TestOAMWriteAndReadViaRegisters(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0x42)
	if p.oam[0x10] != 0x42 {
		t.Fatalf("expected OAM[0x10]=0x42, got %02X", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatal("expected OAM address to auto-increment after write")
	}
}

func TestWriteOAMDirectForDMA(t *testing.T) {
	p := newTestPPU()
	p.WriteOAM(5, 0x99)
	if p.oam[5] != 0x99 {
		t.Fatal("expected direct OAM write used by DMA to land")
	}
}

func TestFrameCompleteCallbackFiresOncePerFrame(t *testing.T) {
	p := newTestPPU()
	count := 0
	p.SetFrameCompleteCallback(func() { count++ })
	stepN(p, scanlinesPerFrame*dotsPerScanline)
	if count != 1 {
		t.Fatalf("expected exactly one frame-complete callback, got %d", count)
	}
}

func TestFrameBufferHasNativeNESDimensions(t *testing.T) {
	p := newTestPPU()
	fb := p.FrameBuffer()
	if len(fb) != FrameWidth*FrameHeight {
		t.Fatalf("expected frame buffer of %d pixels, got %d", FrameWidth*FrameHeight, len(fb))
	}
}

func TestRenderingEnabledReflectsMask(t *testing.T) {
	p := newTestPPU()
	if p.RenderingEnabled() {
		t.Fatal("expected rendering disabled by default")
	}
	p.WriteRegister(0x2001, 0x08)
	if !p.RenderingEnabled() {
		t.Fatal("expected rendering enabled once background bit set")
	}
}
