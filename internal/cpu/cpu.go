/*
 * a2e - W65C02 core: registers, flags, reset and interrupt entry, step.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package cpu implements the W65C02S instruction set: 256 opcodes across
// 16 addressing modes, a packed processor-status byte, and cycle counts
// including page-cross, branch, and decimal-mode penalties.
package cpu

import (
	"github.com/rcornwell/a2e/internal/memory"
)

// Status flag bits within P.
const (
	FlagC uint8 = 1 << 0
	FlagZ uint8 = 1 << 1
	FlagI uint8 = 1 << 2
	FlagD uint8 = 1 << 3
	FlagB uint8 = 1 << 4
	Flag5 uint8 = 1 << 5 // always reads as 1
	FlagV uint8 = 1 << 6
	FlagN uint8 = 1 << 7
)

const (
	vecNMI   = 0xFFFA
	vecReset = 0xFFFC
	vecIRQ   = 0xFFFE

	stackBase = 0x0100
)

// CPU holds the W65C02 register file. P is kept packed, matching the
// real processor status byte, rather than as individual booleans.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8
	PC uint16

	Cycles uint64

	irqPending bool
	nmiPending bool

	// halted is set by STP; waiting is set by WAI and cleared when an
	// interrupt is serviced (a pending IRQ masked by I does not clear
	// it). Both are surfaced to the caller as
	// coreerr.UnimplementedOpcode so the debugger can decide what to do.
	halted  bool
	waiting bool
}

// Snapshot is a read-only copy of the register file, used by the trace
// ring buffer and the debugger without exposing the live CPU.
type Snapshot struct {
	A, X, Y, S, P uint8
	PC            uint16
	Cycles        uint64
}

// New returns a CPU with P initialized to the power-on value (I and the
// unused bit 5 set).
func New() *CPU {
	return &CPU{P: FlagI | Flag5}
}

// Snapshot returns the current register state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{A: c.A, X: c.X, Y: c.Y, S: c.S, P: c.P, PC: c.PC, Cycles: c.Cycles}
}

func (c *CPU) getFlag(f uint8) bool { return c.P&f != 0 }

func (c *CPU) setFlag(f uint8, v bool) {
	if v {
		c.P |= f
	} else {
		c.P &^= f
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) push8(m *memory.Memory, v uint8) error {
	err := m.Write(stackBase+uint16(c.S), v)
	c.S--
	return err
}

func (c *CPU) pop8(m *memory.Memory) uint8 {
	c.S++
	return m.Read(stackBase + uint16(c.S))
}

func (c *CPU) push16(m *memory.Memory, v uint16) error {
	if err := c.push8(m, uint8(v>>8)); err != nil {
		return err
	}
	return c.push8(m, uint8(v))
}

func (c *CPU) pop16(m *memory.Memory) uint16 {
	lo := uint16(c.pop8(m))
	hi := uint16(c.pop8(m))
	return lo | hi<<8
}

// Reset sets the power-on register state: A, X, and Y are zeroed and S
// is forced to $FD, matching a real W65C02 reset regardless of what the
// registers held beforehand (spec.md §3, §8 scenario 1).
func (c *CPU) Reset(m *memory.Memory) {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.S = 0xFD
	c.P = FlagI | Flag5
	c.halted = false
	c.waiting = false
	c.PC = c.read16(m, vecReset)
	c.Cycles = 0
}

// IRQ requests a maskable interrupt; it takes effect on the next Step if
// the I flag is clear.
func (c *CPU) IRQ() { c.irqPending = true }

// NMI requests a non-maskable interrupt; it always takes effect on the
// next Step.
func (c *CPU) NMI() { c.nmiPending = true }

// Halted reports whether the CPU executed STP and is no longer running
// instructions.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) serviceInterrupt(m *memory.Memory, vector uint16, brk bool) error {
	c.waiting = false
	err := c.push16(m, c.PC)
	p := c.P | Flag5
	if brk {
		p |= FlagB
	} else {
		p &^= FlagB
	}
	if pushErr := c.push8(m, p); err == nil {
		err = pushErr
	}
	c.setFlag(FlagI, true)
	c.setFlag(FlagD, false) // 65C02 clears D on interrupt entry, unlike NMOS 6502
	c.PC = c.read16(m, vector)
	c.Cycles += 7
	return err
}

// Step executes exactly one instruction (servicing any pending interrupt
// first) and returns the number of cycles it consumed and any non-fatal
// error the instruction raised (coreerr.WriteProtected,
// coreerr.SuspiciousCode, coreerr.UnimplementedOpcode): spec.md §7 treats
// all of these as "break into the debugger", never as fatal.
func (c *CPU) Step(m *memory.Memory) (uint64, error) {
	before := c.Cycles

	if c.nmiPending {
		c.nmiPending = false
		err := c.serviceInterrupt(m, vecNMI, false)
		return c.Cycles - before, err
	}
	if c.irqPending && !c.getFlag(FlagI) {
		c.irqPending = false
		err := c.serviceInterrupt(m, vecIRQ, false)
		return c.Cycles - before, err
	}
	if c.waiting {
		c.Cycles++
		return 1, nil
	}
	if c.halted {
		c.Cycles++
		return 1, nil
	}

	op := c.fetch8(m)
	entry := &opcodeTable[op]
	err := entry.exec(c, m, entry)
	return c.Cycles - before, err
}
