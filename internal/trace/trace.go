// Package trace formats CPU instructions in the nestest disassembly
// convention, used to cross-check this emulator's execution against a
// canonical reference log.
package trace

import (
	"fmt"
	"strings"

	"nespit/internal/cpu"
)

// CPU is the subset of *cpu.CPU the formatter needs: register state plus
// the side-effect-free Peek/PeekOperand pair so formatting an instruction
// never mutates the machine it describes.
type CPU interface {
	PeekOperand(mode cpu.AddressingMode, pc uint16) (addr uint16, pageCrossed bool)
	Peek(addr uint16) uint8
	Status(breakFlag bool) uint8
}

// Registers snapshots the register fields a trace line reports.
type Registers struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
}

// Line formats one instruction at pc in the nestest format:
//
//	PPPP  BB BB BB  MMM OPERAND                 A:AA X:XX Y:YY P:PP SP:SS
//
// c must be positioned such that reading pc returns the not-yet-executed
// opcode byte; formatting never advances or mutates c.
func Line(c CPU, regs Registers) string {
	opcodeByte := c.Peek(regs.PC)
	op := cpu.Lookup(opcodeByte)

	raw := make([]string, op.Bytes)
	raw[0] = fmt.Sprintf("%02X", opcodeByte)
	for i := uint8(1); i < op.Bytes; i++ {
		raw[i] = fmt.Sprintf("%02X", c.Peek(regs.PC+uint16(i)))
	}

	mnemonic := op.Mnemonic
	if op.Illegal {
		mnemonic = "*" + mnemonic
	} else {
		mnemonic = " " + mnemonic
	}

	operand := formatOperand(c, regs, op)

	var b strings.Builder
	fmt.Fprintf(&b, "%04X  ", regs.PC)
	fmt.Fprintf(&b, "%-9s", strings.Join(raw, " "))
	fmt.Fprintf(&b, "%-4s", mnemonic)
	fmt.Fprintf(&b, "%-29s", operand)
	fmt.Fprintf(&b, "A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		regs.A, regs.X, regs.Y, c.Status(false), regs.SP)
	return b.String()
}

func formatOperand(c CPU, regs Registers, op cpu.Opcode) string {
	operandPC := regs.PC + 1

	switch op.Mode {
	case cpu.Implicit:
		return ""
	case cpu.Accumulator:
		return " A"
	case cpu.Immediate:
		return fmt.Sprintf(" #$%02X", c.Peek(operandPC))
	case cpu.ZeroPage:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		return fmt.Sprintf(" $%02X = %02X", addr, c.Peek(addr))
	case cpu.ZeroPageX:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		return fmt.Sprintf(" $%02X,X @ %02X = %02X", c.Peek(operandPC), addr, c.Peek(addr))
	case cpu.ZeroPageY:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		return fmt.Sprintf(" $%02X,Y @ %02X = %02X", c.Peek(operandPC), addr, c.Peek(addr))
	case cpu.Absolute:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		if op.Mnemonic == "JMP" || op.Mnemonic == "JSR" {
			return fmt.Sprintf(" $%04X", addr)
		}
		return fmt.Sprintf(" $%04X = %02X", addr, c.Peek(addr))
	case cpu.AbsoluteX:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		base := uint16(c.Peek(operandPC)) | uint16(c.Peek(operandPC+1))<<8
		return fmt.Sprintf(" $%04X,X @ %04X = %02X", base, addr, c.Peek(addr))
	case cpu.AbsoluteY:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		base := uint16(c.Peek(operandPC)) | uint16(c.Peek(operandPC+1))<<8
		return fmt.Sprintf(" $%04X,Y @ %04X = %02X", base, addr, c.Peek(addr))
	case cpu.IndirectX:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		zp := c.Peek(operandPC)
		wrap := zp + regs.X
		return fmt.Sprintf(" ($%02X,X) @ %02X = %04X = %02X", zp, wrap, addr, c.Peek(addr))
	case cpu.IndirectY:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		zp := c.Peek(operandPC)
		base := addr - uint16(regs.Y)
		return fmt.Sprintf(" ($%02X),Y = %04X @ %04X = %02X", zp, base, addr, c.Peek(addr))
	case cpu.Indirect:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		ptr := uint16(c.Peek(operandPC)) | uint16(c.Peek(operandPC+1))<<8
		return fmt.Sprintf(" ($%04X) = %04X", ptr, addr)
	case cpu.Relative:
		addr, _ := c.PeekOperand(op.Mode, operandPC)
		return fmt.Sprintf(" $%04X", addr)
	default:
		return ""
	}
}
