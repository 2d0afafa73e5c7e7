/*
 * a2e - Instruction trace ring buffer and disassembler.
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

// Package trace keeps a ring buffer of pre-execution register snapshots
// and disassembles them on demand, for the debugger's "trace" command.
package trace

import (
	"fmt"
	"io"

	"github.com/rcornwell/a2e/internal/cpu"
	"github.com/rcornwell/a2e/internal/memory"
)

const bufferSize = 256

type mode uint8

const (
	amAccu mode = iota
	amImpl
	amImm
	amAbs
	amAbsi
	amAbsx
	amAbsy
	amAbix
	amRel
	amZp
	amZpx
	amZpy
	amZpyi
	amZpix
	amZpr
	amZpi
)

var addressMode = [256]mode{
	amImpl, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amAccu, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZp, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbs, amAbsx, amAbsx, amZpr,
	amAbs, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amAccu, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbsx, amAbsx, amAbsx, amZpr,
	amImpl, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amAccu, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbs, amAbsx, amAbsx, amZpr,
	amImpl, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amAccu, amImpl, amAbsi, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbix, amAbsx, amAbsx, amZpr,
	amRel, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amImpl, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpy, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbs, amAbsx, amAbsx, amZpr,
	amImm, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amImpl, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpy, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbsx, amAbsx, amAbsy, amZpr,
	amImm, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amImpl, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbs, amAbsx, amAbsx, amZpr,
	amImm, amZpix, amImm, amImpl, amZp, amZp, amZp, amZp,
	amImpl, amImm, amImpl, amImpl, amAbs, amAbs, amAbs, amZpr,
	amRel, amZpyi, amZpi, amImpl, amZpx, amZpx, amZpx, amZp,
	amImpl, amAbsy, amImpl, amImpl, amAbs, amAbsx, amAbsx, amZpr,
}

var mnemonic = [256]string{
	"BRK", "ORA", "NOP", "NOP", "TSB", "ORA", "ASL", "RMB0",
	"PHP", "ORA", "ASL", "NOP", "TSB", "ORA", "ASL", "BBR0",
	"BPL", "ORA", "ORA", "NOP", "TRB", "ORA", "ASL", "RMB1",
	"CLC", "ORA", "INC", "NOP", "TRB", "ORA", "ASL", "BBR1",
	"JSR", "AND", "NOP", "NOP", "BIT", "AND", "ROL", "RMB2",
	"PLP", "AND", "ROL", "NOP", "BIT", "AND", "ROL", "BBR2",
	"BMI", "AND", "AND", "NOP", "BIT", "AND", "ROL", "RMB3",
	"SEC", "AND", "DEC", "NOP", "BIT", "AND", "ROL", "BBR3",
	"RTI", "EOR", "NOP", "NOP", "NOP", "EOR", "LSR", "RMB4",
	"PHA", "EOR", "LSR", "NOP", "JMP", "EOR", "LSR", "BBR4",
	"BVC", "EOR", "EOR", "NOP", "NOP", "EOR", "LSR", "RMB5",
	"CLI", "EOR", "PHY", "NOP", "NOP", "EOR", "LSR", "BBR5",
	"RTS", "ADC", "NOP", "NOP", "STZ", "ADC", "ROR", "RMB6",
	"PLA", "ADC", "ROR", "NOP", "JMP", "ADC", "ROR", "BBR6",
	"BVS", "ADC", "ADC", "NOP", "STZ", "ADC", "ROR", "RMB7",
	"SEI", "ADC", "PLY", "NOP", "JMP", "ADC", "ROR", "BBR7",
	"BRA", "STA", "NOP", "NOP", "STY", "STA", "STX", "SMB0",
	"DEY", "BIT", "TXA", "NOP", "STY", "STA", "STX", "BBS0",
	"BCC", "STA", "STA", "NOP", "STY", "STA", "STX", "SMB1",
	"TYA", "STA", "TXS", "NOP", "STZ", "STA", "STZ", "BBS1",
	"LDY", "LDA", "LDX", "NOP", "LDY", "LDA", "LDX", "SMB2",
	"TAY", "LDA", "TAX", "NOP", "LDY", "LDA", "LDX", "BBS2",
	"BCS", "LDA", "LDA", "NOP", "LDY", "LDA", "LDX", "SMB3",
	"CLV", "LDA", "TSX", "NOP", "LDY", "LDA", "LDX", "BBS3",
	"CPY", "CMP", "NOP", "NOP", "CPY", "CMP", "DEC", "SMB4",
	"INY", "CMP", "DEX", "WAI", "CPY", "CMP", "DEC", "BBS4",
	"BNE", "CMP", "CMP", "NOP", "NOP", "CMP", "DEC", "SMB5",
	"CLD", "CMP", "PHX", "STP", "NOP", "CMP", "DEC", "BBS5",
	"CPX", "SBC", "NOP", "NOP", "CPX", "SBC", "INC", "SMB6",
	"INX", "SBC", "NOP", "NOP", "CPX", "SBC", "INC", "BBS6",
	"BEQ", "SBC", "SBC", "NOP", "NOP", "SBC", "INC", "SMB7",
	"SED", "SBC", "PLX", "NOP", "NOP", "SBC", "INC", "BBS7",
}

// entry is one ring-buffer slot: the register state before the
// instruction executed, and the three bytes starting at PC (more than
// enough for any addressing mode).
type entry struct {
	snap cpu.Snapshot
	mc   [3]uint8
}

// Buffer is a fixed-size ring of recently executed instructions.
type Buffer struct {
	slots [bufferSize]entry
	next  int
	count int
}

// New returns an empty trace buffer.
func New() *Buffer {
	return &Buffer{}
}

// Add records snap as about to execute, reading the three bytes at its
// PC from m for later disassembly.
func (b *Buffer) Add(snap cpu.Snapshot, m *memory.Memory) {
	b.slots[b.next] = entry{
		snap: snap,
		mc:   [3]uint8{m.Read(snap.PC), m.Read(snap.PC + 1), m.Read(snap.PC + 2)},
	}
	b.next = (b.next + 1) % bufferSize
	if b.count < bufferSize {
		b.count++
	}
}

// Dump writes every recorded entry to w, oldest first, one line each.
func (b *Buffer) Dump(w io.Writer) {
	start := (b.next - b.count + bufferSize) % bufferSize
	for i := 0; i < b.count; i++ {
		e := b.slots[(start+i)%bufferSize]
		fmt.Fprintln(w, registerDump(e.snap, e.mc))
	}
}

func registerDump(s cpu.Snapshot, mc [3]uint8) string {
	return fmt.Sprintf("PC:%04x   %sA:%02x X:%02x Y:%02x S:%02x P:%s",
		s.PC, disassemble(s.PC, mc), s.A, s.X, s.Y, s.S, flagString(s.P))
}

func flagString(p uint8) string {
	bit := func(mask uint8, set, clear byte) byte {
		if p&mask != 0 {
			return set
		}
		return clear
	}
	return string([]byte{
		bit(cpu.FlagN, 'N', '.'),
		bit(cpu.FlagV, 'V', '.'),
		'-',
		bit(cpu.FlagB, 'B', '.'),
		bit(cpu.FlagD, 'D', '.'),
		bit(cpu.FlagI, 'I', '.'),
		bit(cpu.FlagZ, 'Z', '.'),
		bit(cpu.FlagC, 'C', '.'),
	})
}

// disassemble formats one instruction's bytes and operand the way the
// original trace printer laid out its fixed-width columns.
func disassemble(pc uint16, mc [3]uint8) string {
	op := mc[0]
	var bytes, operand string

	switch addressMode[op] {
	case amAccu, amImpl:
		bytes = fmt.Sprintf("%02x      ", op)
	case amImm, amRel, amZp, amZpx, amZpy, amZpyi, amZpix, amZpi:
		bytes = fmt.Sprintf("%02x %02x   ", op, mc[1])
	default: // amAbs, amAbsi, amAbsx, amAbsy, amAbix, amZpr
		bytes = fmt.Sprintf("%02x %02x %02x", op, mc[1], mc[2])
	}

	switch addressMode[op] {
	case amAccu:
		operand = "A"
	case amImpl:
		operand = ""
	case amImm:
		operand = fmt.Sprintf("#$%02x", mc[1])
	case amAbs:
		operand = fmt.Sprintf("$%02x%02x", mc[2], mc[1])
	case amAbsi:
		operand = fmt.Sprintf("($%02x%02x)", mc[2], mc[1])
	case amAbsx:
		operand = fmt.Sprintf("$%02x%02x,X", mc[2], mc[1])
	case amAbsy:
		operand = fmt.Sprintf("$%02x%02x,Y", mc[2], mc[1])
	case amAbix:
		operand = fmt.Sprintf("($%02x%02x,X)", mc[2], mc[1])
	case amRel:
		target := pc + 2 + uint16(int8(mc[1]))
		operand = fmt.Sprintf("$%04x", target)
	case amZp:
		operand = fmt.Sprintf("$%02x", mc[1])
	case amZpx:
		operand = fmt.Sprintf("$%02x,X", mc[1])
	case amZpy:
		operand = fmt.Sprintf("$%02x,Y", mc[1])
	case amZpyi:
		operand = fmt.Sprintf("($%02x),Y", mc[1])
	case amZpix:
		operand = fmt.Sprintf("($%02x,X)", mc[1])
	case amZpr:
		target := pc + 3 + uint16(int8(mc[2]))
		operand = fmt.Sprintf("$%02x,$%04x", mc[1], target)
	case amZpi:
		operand = fmt.Sprintf("($%02x)", mc[1])
	}

	return fmt.Sprintf("%s %-9s %-10s ", bytes, mnemonic[op], operand)
}
