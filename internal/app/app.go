// Package app wires the bus, configuration and display backend together
// into a runnable emulator and owns its lifecycle.
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"nespit/internal/bus"
	"nespit/internal/cartridge"
	"nespit/internal/config"
	"nespit/internal/cpu"
	"nespit/internal/display"
	"nespit/internal/trace"
)

// Application owns the bus, its configuration, and the chosen display
// backend, and drives the run loop.
type Application struct {
	Bus    *bus.Bus
	Config *config.Config

	backend display.Backend

	traceWriter io.Writer
	traceCloser io.Closer
}

// New loads romPath and builds an Application configured per cfg. cfg may
// be nil, in which case defaults are used.
func New(romPath string, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.New()
	}

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("app: loading cartridge: %w", err)
	}

	b := bus.New()
	b.LoadCartridge(cart)

	a := &Application{Bus: b, Config: cfg}
	a.backend = a.selectBackend()

	if cfg.Debug.Trace {
		if err := a.enableTrace(cfg.Debug.TracePath); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Application) selectBackend() display.Backend {
	switch a.Config.Window.Backend {
	case "terminal":
		return &display.TerminalBackend{}
	case "headless":
		return &display.HeadlessBackend{}
	default:
		return &display.EbitenBackend{Scale: a.Config.Window.Scale}
	}
}

func (a *Application) enableTrace(path string) error {
	if path == "" {
		a.traceWriter = os.Stdout
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("app: opening trace file: %w", err)
	}
	a.traceWriter = f
	a.traceCloser = f
	return nil
}

// Run hands the application off to its chosen display backend and blocks
// until it returns. When tracing is enabled it runs the trace loop instead
// and the display backend is never started.
func (a *Application) Run() error {
	if a.traceCloser != nil {
		defer a.traceCloser.Close()
	}
	if a.traceWriter != nil {
		a.runWithTrace(0)
		return nil
	}
	if err := a.backend.Run(a.Bus); err != nil {
		return fmt.Errorf("app: backend exited: %w", err)
	}
	return nil
}

// runWithTrace drives the bus instruction-by-instruction, writing a
// nestest-format line for each instruction actually about to execute,
// bypassing the display backend entirely: tracing and a live display are
// mutually exclusive modes in this emulator. maxInstructions of 0 means run
// until the write fails (e.g. the process is killed).
//
// A pending NMI is serviced by Step instead of the instruction at PC, so a
// trace line is only emitted when no NMI is latched. Logging one for every
// Step would describe an instruction that never ran whenever vblank-driven
// NMI interrupts the program the trace is following.
func (a *Application) runWithTrace(maxInstructions uint64) {
	for i := uint64(0); maxInstructions == 0 || i < maxInstructions; i++ {
		if !a.Bus.PendingNMI() {
			regs := trace.Registers{PC: a.Bus.CPU.PC, A: a.Bus.CPU.A, X: a.Bus.CPU.X, Y: a.Bus.CPU.Y, SP: a.Bus.CPU.SP}
			line := trace.Line(a.traceCPU(), regs)
			if _, err := fmt.Fprintln(a.traceWriter, line); err != nil {
				log.Printf("app: writing trace line: %v", err)
				return
			}
		}
		a.Bus.Step()
	}
}

// traceCPU adapts the bus's CPU to the small interface the trace
// formatter needs.
func (a *Application) traceCPU() traceCPUAdapter {
	return traceCPUAdapter{cpu: a.Bus.CPU}
}

type traceCPUAdapter struct {
	cpu *cpu.CPU
}

func (t traceCPUAdapter) PeekOperand(mode cpu.AddressingMode, pc uint16) (uint16, bool) {
	return t.cpu.PeekOperand(mode, pc)
}
func (t traceCPUAdapter) Peek(addr uint16) uint8      { return t.cpu.Peek(addr) }
func (t traceCPUAdapter) Status(breakFlag bool) uint8 { return t.cpu.Status(breakFlag) }
