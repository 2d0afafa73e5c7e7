/*
 * a2e - W65C02 addressing mode resolution.
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

package cpu

import "github.com/rcornwell/a2e/internal/memory"

// Mode identifies one of the 16 addressing modes named in spec.md §4.2.
type Mode uint8

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirectZP   // (zp)
	ModeIndexedIndX  // (zp,X)
	ModeIndirectIndY // (zp),Y
	ModeIndirect     // absolute (jmp)
	ModeIndirectX    // absolute indirect,X (jmp)
	ModeRelative
	ModeZPRelative // zero-page and relative, for BBRn/BBSn
)

// operand is the result of resolving one instruction's addressing mode:
// the effective address (when the mode has one) and whether a page
// boundary was crossed while forming it.
type operand struct {
	addr    uint16
	crossed bool
}

func (c *CPU) fetch8(m *memory.Memory) uint8 {
	v := m.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16(m *memory.Memory) uint16 {
	lo := uint16(c.fetch8(m))
	hi := uint16(c.fetch8(m))
	return lo | hi<<8
}

func (c *CPU) read16(m *memory.Memory, addr uint16) uint16 {
	lo := uint16(m.Read(addr))
	hi := uint16(m.Read(addr + 1))
	return lo | hi<<8
}

// resolve fetches the operand bytes for mode from the instruction
// stream and returns the effective address it names. Immediate mode
// returns the address of the operand byte itself; relative mode returns
// the branch target (the next instruction's address plus the offset).
func (c *CPU) resolve(m *memory.Memory, mode Mode) operand {
	switch mode {
	case ModeImmediate:
		addr := c.PC
		c.PC++
		return operand{addr: addr}

	case ModeZeroPage:
		return operand{addr: uint16(c.fetch8(m))}

	case ModeZeroPageX:
		return operand{addr: uint16(uint8(c.fetch8(m) + c.X))}

	case ModeZeroPageY:
		return operand{addr: uint16(uint8(c.fetch8(m) + c.Y))}

	case ModeAbsolute:
		return operand{addr: c.fetch16(m)}

	case ModeAbsoluteX:
		base := c.fetch16(m)
		addr := base + uint16(c.X)
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}

	case ModeAbsoluteY:
		base := c.fetch16(m)
		addr := base + uint16(c.Y)
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}

	case ModeIndirectZP:
		zp := uint16(c.fetch8(m))
		lo := uint16(m.Read(zp))
		hi := uint16(m.Read(uint16(uint8(zp + 1))))
		return operand{addr: lo | hi<<8}

	case ModeIndexedIndX:
		zp := uint16(uint8(c.fetch8(m) + c.X))
		lo := uint16(m.Read(zp))
		hi := uint16(m.Read(uint16(uint8(zp + 1))))
		return operand{addr: lo | hi<<8}

	case ModeIndirectIndY:
		zp := uint16(c.fetch8(m))
		lo := uint16(m.Read(zp))
		hi := uint16(m.Read(uint16(uint8(zp + 1))))
		base := lo | hi<<8
		addr := base + uint16(c.Y)
		return operand{addr: addr, crossed: (base & 0xFF00) != (addr & 0xFF00)}

	case ModeIndirect:
		ptr := c.fetch16(m)
		return operand{addr: c.read16(m, ptr)}

	case ModeIndirectX:
		base := c.fetch16(m)
		ptr := base + uint16(c.X)
		return operand{addr: c.read16(m, ptr)}

	case ModeRelative:
		offset := int8(c.fetch8(m))
		return operand{addr: uint16(int32(c.PC) + int32(offset))}

	default: // ModeImplied, ModeAccumulator
		return operand{}
	}
}

// resolveZPRelative is used only by BBRn/BBSn: a zero-page address to
// test, followed by a relative branch offset. offset is returned
// alongside zp and target so bbsExec can recognize the $FF $FF
// "suspicious code" pattern.
func (c *CPU) resolveZPRelative(m *memory.Memory) (zp uint16, target uint16, offset int8) {
	zp = uint16(c.fetch8(m))
	offset = int8(c.fetch8(m))
	target = uint16(int32(c.PC) + int32(offset))
	return zp, target, offset
}
