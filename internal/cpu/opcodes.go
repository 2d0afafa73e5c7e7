/*
 * a2e - W65C02 opcode table and instruction bodies.
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

import (
	"github.com/rcornwell/a2e/internal/coreerr"
	"github.com/rcornwell/a2e/internal/memory"
)

// execFunc runs one opcode and returns the non-fatal error it raised,
// if any (a write to write-protected language-card RAM, BBS7's
// suspicious-code check). Most instructions always return nil.
type execFunc func(c *CPU, m *memory.Memory, e *opcodeEntry) error

// opcodeEntry describes one of the 256 possible opcode bytes: its
// mnemonic (for the trace package), addressing mode, base cycle count,
// whether a page-crossing effective address costs one extra cycle, and
// the bit index used by RMBn/SMBn/BBRn/BBSn.
type opcodeEntry struct {
	name           string
	mode           Mode
	cycles         uint8
	pageCrossExtra bool
	bit            uint8
	exec           execFunc
}

var opcodeTable [256]opcodeEntry

func set(op uint8, name string, mode Mode, cycles uint8, pageCrossExtra bool, fn execFunc) {
	opcodeTable[op] = opcodeEntry{name: name, mode: mode, cycles: cycles, pageCrossExtra: pageCrossExtra, exec: fn}
}

func setBit(op uint8, name string, mode Mode, cycles uint8, bit uint8, fn execFunc) {
	opcodeTable[op] = opcodeEntry{name: name, mode: mode, cycles: cycles, bit: bit, exec: fn}
}

func init() {
	// Row $0_
	set(0x00, "BRK", ModeImplied, 7, false, brkExec)
	set(0x01, "ORA", ModeIndexedIndX, 6, false, oraExec)
	set(0x02, "NOP", ModeImmediate, 2, false, nopExec)
	set(0x03, "NOP", ModeImplied, 1, false, nopExec)
	set(0x04, "TSB", ModeZeroPage, 5, false, tsbExec)
	set(0x05, "ORA", ModeZeroPage, 3, false, oraExec)
	set(0x06, "ASL", ModeZeroPage, 5, false, aslExec)
	setBit(0x07, "RMB0", ModeZeroPage, 5, 0, rmbExec)
	set(0x08, "PHP", ModeImplied, 3, false, phpExec)
	set(0x09, "ORA", ModeImmediate, 2, false, oraExec)
	set(0x0A, "ASL", ModeAccumulator, 2, false, aslExec)
	set(0x0B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x0C, "TSB", ModeAbsolute, 6, false, tsbExec)
	set(0x0D, "ORA", ModeAbsolute, 4, false, oraExec)
	set(0x0E, "ASL", ModeAbsolute, 6, false, aslExec)
	setBit(0x0F, "BBR0", ModeZPRelative, 5, 0, bbrExec)

	// Row $1_
	set(0x10, "BPL", ModeRelative, 2, false, branchExec(FlagN, false))
	set(0x11, "ORA", ModeIndirectIndY, 5, true, oraExec)
	set(0x12, "ORA", ModeIndirectZP, 5, false, oraExec)
	set(0x13, "NOP", ModeImplied, 1, false, nopExec)
	set(0x14, "TRB", ModeZeroPage, 5, false, trbExec)
	set(0x15, "ORA", ModeZeroPageX, 4, false, oraExec)
	set(0x16, "ASL", ModeZeroPageX, 6, false, aslExec)
	setBit(0x17, "RMB1", ModeZeroPage, 5, 1, rmbExec)
	set(0x18, "CLC", ModeImplied, 2, false, clcExec)
	set(0x19, "ORA", ModeAbsoluteY, 4, true, oraExec)
	set(0x1A, "INC", ModeAccumulator, 2, false, incExec)
	set(0x1B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x1C, "TRB", ModeAbsolute, 6, false, trbExec)
	set(0x1D, "ORA", ModeAbsoluteX, 4, true, oraExec)
	set(0x1E, "ASL", ModeAbsoluteX, 6, true, aslExec)
	setBit(0x1F, "BBR1", ModeZPRelative, 5, 1, bbrExec)

	// Row $2_
	set(0x20, "JSR", ModeAbsolute, 6, false, jsrExec)
	set(0x21, "AND", ModeIndexedIndX, 6, false, andExec)
	set(0x22, "NOP", ModeImmediate, 2, false, nopExec)
	set(0x23, "NOP", ModeImplied, 1, false, nopExec)
	set(0x24, "BIT", ModeZeroPage, 3, false, bitExec)
	set(0x25, "AND", ModeZeroPage, 3, false, andExec)
	set(0x26, "ROL", ModeZeroPage, 5, false, rolExec)
	setBit(0x27, "RMB2", ModeZeroPage, 5, 2, rmbExec)
	set(0x28, "PLP", ModeImplied, 4, false, plpExec)
	set(0x29, "AND", ModeImmediate, 2, false, andExec)
	set(0x2A, "ROL", ModeAccumulator, 2, false, rolExec)
	set(0x2B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x2C, "BIT", ModeAbsolute, 4, false, bitExec)
	set(0x2D, "AND", ModeAbsolute, 4, false, andExec)
	set(0x2E, "ROL", ModeAbsolute, 6, false, rolExec)
	setBit(0x2F, "BBR2", ModeZPRelative, 5, 2, bbrExec)

	// Row $3_
	set(0x30, "BMI", ModeRelative, 2, false, branchExec(FlagN, true))
	set(0x31, "AND", ModeIndirectIndY, 5, true, andExec)
	set(0x32, "AND", ModeIndirectZP, 5, false, andExec)
	set(0x33, "NOP", ModeImplied, 1, false, nopExec)
	set(0x34, "BIT", ModeZeroPageX, 4, false, bitExec)
	set(0x35, "AND", ModeZeroPageX, 4, false, andExec)
	set(0x36, "ROL", ModeZeroPageX, 6, false, rolExec)
	setBit(0x37, "RMB3", ModeZeroPage, 5, 3, rmbExec)
	set(0x38, "SEC", ModeImplied, 2, false, secExec)
	set(0x39, "AND", ModeAbsoluteY, 4, true, andExec)
	set(0x3A, "DEC", ModeAccumulator, 2, false, decExec)
	set(0x3B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x3C, "BIT", ModeAbsoluteX, 4, true, bitExec)
	set(0x3D, "AND", ModeAbsoluteX, 4, true, andExec)
	set(0x3E, "ROL", ModeAbsoluteX, 6, true, rolExec)
	setBit(0x3F, "BBR3", ModeZPRelative, 5, 3, bbrExec)

	// Row $4_
	set(0x40, "RTI", ModeImplied, 6, false, rtiExec)
	set(0x41, "EOR", ModeIndexedIndX, 6, false, eorExec)
	set(0x42, "NOP", ModeImmediate, 2, false, nopExec)
	set(0x43, "NOP", ModeImplied, 1, false, nopExec)
	set(0x44, "NOP", ModeZeroPage, 3, false, nopExec)
	set(0x45, "EOR", ModeZeroPage, 3, false, eorExec)
	set(0x46, "LSR", ModeZeroPage, 5, false, lsrExec)
	setBit(0x47, "RMB4", ModeZeroPage, 5, 4, rmbExec)
	set(0x48, "PHA", ModeImplied, 3, false, phaExec)
	set(0x49, "EOR", ModeImmediate, 2, false, eorExec)
	set(0x4A, "LSR", ModeAccumulator, 2, false, lsrExec)
	set(0x4B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x4C, "JMP", ModeAbsolute, 3, false, jmpExec)
	set(0x4D, "EOR", ModeAbsolute, 4, false, eorExec)
	set(0x4E, "LSR", ModeAbsolute, 6, false, lsrExec)
	setBit(0x4F, "BBR4", ModeZPRelative, 5, 4, bbrExec)

	// Row $5_
	set(0x50, "BVC", ModeRelative, 2, false, branchExec(FlagV, false))
	set(0x51, "EOR", ModeIndirectIndY, 5, true, eorExec)
	set(0x52, "EOR", ModeIndirectZP, 5, false, eorExec)
	set(0x53, "NOP", ModeImplied, 1, false, nopExec)
	set(0x54, "NOP", ModeZeroPageX, 4, false, nopExec)
	set(0x55, "EOR", ModeZeroPageX, 4, false, eorExec)
	set(0x56, "LSR", ModeZeroPageX, 6, false, lsrExec)
	setBit(0x57, "RMB5", ModeZeroPage, 5, 5, rmbExec)
	set(0x58, "CLI", ModeImplied, 2, false, cliExec)
	set(0x59, "EOR", ModeAbsoluteY, 4, true, eorExec)
	set(0x5A, "PHY", ModeImplied, 3, false, phyExec)
	set(0x5B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x5C, "NOP", ModeAbsolute, 8, false, nopExec)
	set(0x5D, "EOR", ModeAbsoluteX, 4, true, eorExec)
	set(0x5E, "LSR", ModeAbsoluteX, 6, true, lsrExec)
	setBit(0x5F, "BBR5", ModeZPRelative, 5, 5, bbrExec)

	// Row $6_
	set(0x60, "RTS", ModeImplied, 6, false, rtsExec)
	set(0x61, "ADC", ModeIndexedIndX, 6, false, adcExec)
	set(0x62, "NOP", ModeImmediate, 2, false, nopExec)
	set(0x63, "NOP", ModeImplied, 1, false, nopExec)
	set(0x64, "STZ", ModeZeroPage, 3, false, stzExec)
	set(0x65, "ADC", ModeZeroPage, 3, false, adcExec)
	set(0x66, "ROR", ModeZeroPage, 5, false, rorExec)
	setBit(0x67, "RMB6", ModeZeroPage, 5, 6, rmbExec)
	set(0x68, "PLA", ModeImplied, 4, false, plaExec)
	set(0x69, "ADC", ModeImmediate, 2, false, adcExec)
	set(0x6A, "ROR", ModeAccumulator, 2, false, rorExec)
	set(0x6B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x6C, "JMP", ModeIndirect, 6, false, jmpExec)
	set(0x6D, "ADC", ModeAbsolute, 4, false, adcExec)
	set(0x6E, "ROR", ModeAbsolute, 6, false, rorExec)
	setBit(0x6F, "BBR6", ModeZPRelative, 5, 6, bbrExec)

	// Row $7_
	set(0x70, "BVS", ModeRelative, 2, false, branchExec(FlagV, true))
	set(0x71, "ADC", ModeIndirectIndY, 5, true, adcExec)
	set(0x72, "ADC", ModeIndirectZP, 5, false, adcExec)
	set(0x73, "NOP", ModeImplied, 1, false, nopExec)
	set(0x74, "STZ", ModeZeroPageX, 4, false, stzExec)
	set(0x75, "ADC", ModeZeroPageX, 4, false, adcExec)
	set(0x76, "ROR", ModeZeroPageX, 6, false, rorExec)
	setBit(0x77, "RMB7", ModeZeroPage, 5, 7, rmbExec)
	set(0x78, "SEI", ModeImplied, 2, false, seiExec)
	set(0x79, "ADC", ModeAbsoluteY, 4, true, adcExec)
	set(0x7A, "PLY", ModeImplied, 4, false, plyExec)
	set(0x7B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x7C, "JMP", ModeIndirectX, 6, false, jmpExec)
	set(0x7D, "ADC", ModeAbsoluteX, 4, true, adcExec)
	set(0x7E, "ROR", ModeAbsoluteX, 6, true, rorExec)
	setBit(0x7F, "BBR7", ModeZPRelative, 5, 7, bbrExec)

	// Row $8_
	set(0x80, "BRA", ModeRelative, 3, false, braExec)
	set(0x81, "STA", ModeIndexedIndX, 6, false, staExec)
	set(0x82, "NOP", ModeImmediate, 2, false, nopExec)
	set(0x83, "NOP", ModeImplied, 1, false, nopExec)
	set(0x84, "STY", ModeZeroPage, 3, false, styExec)
	set(0x85, "STA", ModeZeroPage, 3, false, staExec)
	set(0x86, "STX", ModeZeroPage, 3, false, stxExec)
	setBit(0x87, "SMB0", ModeZeroPage, 5, 0, smbExec)
	set(0x88, "DEY", ModeImplied, 2, false, deyExec)
	set(0x89, "BIT", ModeImmediate, 2, false, bitImmExec)
	set(0x8A, "TXA", ModeImplied, 2, false, txaExec)
	set(0x8B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x8C, "STY", ModeAbsolute, 4, false, styExec)
	set(0x8D, "STA", ModeAbsolute, 4, false, staExec)
	set(0x8E, "STX", ModeAbsolute, 4, false, stxExec)
	setBit(0x8F, "BBS0", ModeZPRelative, 5, 0, bbsExec)

	// Row $9_
	set(0x90, "BCC", ModeRelative, 2, false, branchExec(FlagC, false))
	set(0x91, "STA", ModeIndirectIndY, 6, false, staExec)
	set(0x92, "STA", ModeIndirectZP, 5, false, staExec)
	set(0x93, "NOP", ModeImplied, 1, false, nopExec)
	set(0x94, "STY", ModeZeroPageX, 4, false, styExec)
	set(0x95, "STA", ModeZeroPageX, 4, false, staExec)
	set(0x96, "STX", ModeZeroPageY, 4, false, stxExec)
	setBit(0x97, "SMB1", ModeZeroPage, 5, 1, smbExec)
	set(0x98, "TYA", ModeImplied, 2, false, tyaExec)
	set(0x99, "STA", ModeAbsoluteY, 5, false, staExec)
	set(0x9A, "TXS", ModeImplied, 2, false, txsExec)
	set(0x9B, "NOP", ModeImplied, 1, false, nopExec)
	set(0x9C, "STZ", ModeAbsolute, 4, false, stzExec)
	set(0x9D, "STA", ModeAbsoluteX, 5, false, staExec)
	set(0x9E, "STZ", ModeAbsoluteX, 5, false, stzExec)
	setBit(0x9F, "BBS1", ModeZPRelative, 5, 1, bbsExec)

	// Row $A_
	set(0xA0, "LDY", ModeImmediate, 2, false, ldyExec)
	set(0xA1, "LDA", ModeIndexedIndX, 6, false, ldaExec)
	set(0xA2, "LDX", ModeImmediate, 2, false, ldxExec)
	set(0xA3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xA4, "LDY", ModeZeroPage, 3, false, ldyExec)
	set(0xA5, "LDA", ModeZeroPage, 3, false, ldaExec)
	set(0xA6, "LDX", ModeZeroPage, 3, false, ldxExec)
	setBit(0xA7, "SMB2", ModeZeroPage, 5, 2, smbExec)
	set(0xA8, "TAY", ModeImplied, 2, false, tayExec)
	set(0xA9, "LDA", ModeImmediate, 2, false, ldaExec)
	set(0xAA, "TAX", ModeImplied, 2, false, taxExec)
	set(0xAB, "NOP", ModeImplied, 1, false, nopExec)
	set(0xAC, "LDY", ModeAbsolute, 4, false, ldyExec)
	set(0xAD, "LDA", ModeAbsolute, 4, false, ldaExec)
	set(0xAE, "LDX", ModeAbsolute, 4, false, ldxExec)
	setBit(0xAF, "BBS2", ModeZPRelative, 5, 2, bbsExec)

	// Row $B_
	set(0xB0, "BCS", ModeRelative, 2, false, branchExec(FlagC, true))
	set(0xB1, "LDA", ModeIndirectIndY, 5, true, ldaExec)
	set(0xB2, "LDA", ModeIndirectZP, 5, false, ldaExec)
	set(0xB3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xB4, "LDY", ModeZeroPageX, 4, false, ldyExec)
	set(0xB5, "LDA", ModeZeroPageX, 4, false, ldaExec)
	set(0xB6, "LDX", ModeZeroPageY, 4, false, ldxExec)
	setBit(0xB7, "SMB3", ModeZeroPage, 5, 3, smbExec)
	set(0xB8, "CLV", ModeImplied, 2, false, clvExec)
	set(0xB9, "LDA", ModeAbsoluteY, 4, true, ldaExec)
	set(0xBA, "TSX", ModeImplied, 2, false, tsxExec)
	set(0xBB, "NOP", ModeImplied, 1, false, nopExec)
	set(0xBC, "LDY", ModeAbsoluteX, 4, true, ldyExec)
	set(0xBD, "LDA", ModeAbsoluteX, 4, true, ldaExec)
	set(0xBE, "LDX", ModeAbsoluteY, 4, true, ldxExec)
	setBit(0xBF, "BBS3", ModeZPRelative, 5, 3, bbsExec)

	// Row $C_
	set(0xC0, "CPY", ModeImmediate, 2, false, cpyExec)
	set(0xC1, "CMP", ModeIndexedIndX, 6, false, cmpExec)
	set(0xC2, "NOP", ModeImmediate, 2, false, nopExec)
	set(0xC3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xC4, "CPY", ModeZeroPage, 3, false, cpyExec)
	set(0xC5, "CMP", ModeZeroPage, 3, false, cmpExec)
	set(0xC6, "DEC", ModeZeroPage, 5, false, decExec)
	setBit(0xC7, "SMB4", ModeZeroPage, 5, 4, smbExec)
	set(0xC8, "INY", ModeImplied, 2, false, inyExec)
	set(0xC9, "CMP", ModeImmediate, 2, false, cmpExec)
	set(0xCA, "DEX", ModeImplied, 2, false, dexExec)
	set(0xCB, "WAI", ModeImplied, 3, false, waiExec)
	set(0xCC, "CPY", ModeAbsolute, 4, false, cpyExec)
	set(0xCD, "CMP", ModeAbsolute, 4, false, cmpExec)
	set(0xCE, "DEC", ModeAbsolute, 6, false, decExec)
	setBit(0xCF, "BBS4", ModeZPRelative, 5, 4, bbsExec)

	// Row $D_
	set(0xD0, "BNE", ModeRelative, 2, false, branchExec(FlagZ, false))
	set(0xD1, "CMP", ModeIndirectIndY, 5, true, cmpExec)
	set(0xD2, "CMP", ModeIndirectZP, 5, false, cmpExec)
	set(0xD3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xD4, "NOP", ModeZeroPageX, 4, false, nopExec)
	set(0xD5, "CMP", ModeZeroPageX, 4, false, cmpExec)
	set(0xD6, "DEC", ModeZeroPageX, 6, false, decExec)
	setBit(0xD7, "SMB5", ModeZeroPage, 5, 5, smbExec)
	set(0xD8, "CLD", ModeImplied, 2, false, cldExec)
	set(0xD9, "CMP", ModeAbsoluteY, 4, true, cmpExec)
	set(0xDA, "PHX", ModeImplied, 3, false, phxExec)
	set(0xDB, "STP", ModeImplied, 3, false, stpExec)
	set(0xDC, "NOP", ModeAbsoluteX, 4, false, nopExec)
	set(0xDD, "CMP", ModeAbsoluteX, 4, true, cmpExec)
	set(0xDE, "DEC", ModeAbsoluteX, 7, false, decExec)
	setBit(0xDF, "BBS5", ModeZPRelative, 5, 5, bbsExec)

	// Row $E_
	set(0xE0, "CPX", ModeImmediate, 2, false, cpxExec)
	set(0xE1, "SBC", ModeIndexedIndX, 6, false, sbcExec)
	set(0xE2, "NOP", ModeImmediate, 2, false, nopExec)
	set(0xE3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xE4, "CPX", ModeZeroPage, 3, false, cpxExec)
	set(0xE5, "SBC", ModeZeroPage, 3, false, sbcExec)
	set(0xE6, "INC", ModeZeroPage, 5, false, incExec)
	setBit(0xE7, "SMB6", ModeZeroPage, 5, 6, smbExec)
	set(0xE8, "INX", ModeImplied, 2, false, inxExec)
	set(0xE9, "SBC", ModeImmediate, 2, false, sbcExec)
	set(0xEA, "NOP", ModeImplied, 2, false, nopExec)
	set(0xEB, "NOP", ModeImplied, 1, false, nopExec)
	set(0xEC, "CPX", ModeAbsolute, 4, false, cpxExec)
	set(0xED, "SBC", ModeAbsolute, 4, false, sbcExec)
	set(0xEE, "INC", ModeAbsolute, 6, false, incExec)
	setBit(0xEF, "BBS6", ModeZPRelative, 5, 6, bbsExec)

	// Row $F_
	set(0xF0, "BEQ", ModeRelative, 2, false, branchExec(FlagZ, true))
	set(0xF1, "SBC", ModeIndirectIndY, 5, true, sbcExec)
	set(0xF2, "SBC", ModeIndirectZP, 5, false, sbcExec)
	set(0xF3, "NOP", ModeImplied, 1, false, nopExec)
	set(0xF4, "NOP", ModeZeroPageX, 4, false, nopExec)
	set(0xF5, "SBC", ModeZeroPageX, 4, false, sbcExec)
	set(0xF6, "INC", ModeZeroPageX, 6, false, incExec)
	setBit(0xF7, "SMB7", ModeZeroPage, 5, 7, smbExec)
	set(0xF8, "SED", ModeImplied, 2, false, sedExec)
	set(0xF9, "SBC", ModeAbsoluteY, 4, true, sbcExec)
	set(0xFA, "PLX", ModeImplied, 4, false, plxExec)
	set(0xFB, "NOP", ModeImplied, 1, false, nopExec)
	set(0xFC, "NOP", ModeAbsoluteX, 4, false, nopExec)
	set(0xFD, "SBC", ModeAbsoluteX, 4, true, sbcExec)
	set(0xFE, "INC", ModeAbsoluteX, 7, false, incExec)
	setBit(0xFF, "BBS7", ModeZPRelative, 5, 7, bbsExec)
}

func (c *CPU) accountCycles(e *opcodeEntry, crossed bool) {
	c.Cycles += uint64(e.cycles)
	if e.pageCrossExtra && crossed {
		c.Cycles++
	}
}

// --- loads / stores ---

func ldaExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.A = m.Read(op.addr)
	c.setZN(c.A)
	c.accountCycles(e, op.crossed)
	return nil
}

func ldxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.X = m.Read(op.addr)
	c.setZN(c.X)
	c.accountCycles(e, op.crossed)
	return nil
}

func ldyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.Y = m.Read(op.addr)
	c.setZN(c.Y)
	c.accountCycles(e, op.crossed)
	return nil
}

func staExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	err := m.Write(op.addr, c.A)
	c.accountCycles(e, false)
	return err
}

func stxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	err := m.Write(op.addr, c.X)
	c.accountCycles(e, false)
	return err
}

func styExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	err := m.Write(op.addr, c.Y)
	c.accountCycles(e, false)
	return err
}

func stzExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	err := m.Write(op.addr, 0)
	c.accountCycles(e, false)
	return err
}

// --- arithmetic / logic ---

func adcExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	carryIn := c.getFlag(FlagC)
	if c.getFlag(FlagD) {
		result, carryOut, overflow := adcDecimal(c.A, v, carryIn)
		c.setFlag(FlagV, overflow)
		c.A = result
		c.setFlag(FlagC, carryOut)
		c.setZN(c.A)
		c.Cycles++ // decimal-mode penalty
	} else {
		sum := uint16(c.A) + uint16(v)
		if carryIn {
			sum++
		}
		result := uint8(sum)
		c.setFlag(FlagV, overflowAdd(c.A, v, result))
		c.A = result
		c.setFlag(FlagC, sum > 0xFF)
		c.setZN(c.A)
	}
	c.accountCycles(e, op.crossed)
	return nil
}

func sbcExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	carryIn := c.getFlag(FlagC)
	if c.getFlag(FlagD) {
		result, carryOut, binResult := sbcDecimal(c.A, v, carryIn)
		c.setFlag(FlagV, overflowSub(c.A, v, binResult))
		c.A = result
		c.setFlag(FlagC, carryOut)
		c.setZN(c.A)
		c.Cycles++ // decimal-mode penalty
	} else {
		borrow := uint16(0)
		if !carryIn {
			borrow = 1
		}
		diff := int32(c.A) - int32(v) - int32(borrow)
		result := uint8(diff)
		c.setFlag(FlagV, overflowSub(c.A, v, result))
		c.A = result
		c.setFlag(FlagC, diff >= 0)
		c.setZN(c.A)
	}
	c.accountCycles(e, op.crossed)
	return nil
}

func andExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.A &= m.Read(op.addr)
	c.setZN(c.A)
	c.accountCycles(e, op.crossed)
	return nil
}

func oraExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.A |= m.Read(op.addr)
	c.setZN(c.A)
	c.accountCycles(e, op.crossed)
	return nil
}

func eorExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.A ^= m.Read(op.addr)
	c.setZN(c.A)
	c.accountCycles(e, op.crossed)
	return nil
}

func compare(c *CPU, reg, v uint8) {
	result := reg - v
	c.setFlag(FlagC, reg >= v)
	c.setZN(result)
}

func cmpExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	compare(c, c.A, m.Read(op.addr))
	c.accountCycles(e, op.crossed)
	return nil
}

func cpxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	compare(c, c.X, m.Read(op.addr))
	c.accountCycles(e, op.crossed)
	return nil
}

func cpyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	compare(c, c.Y, m.Read(op.addr))
	c.accountCycles(e, op.crossed)
	return nil
}

// bitExec implements BIT for memory operands: Z reflects A&v, N and V
// are copied from bits 7 and 6 of the operand itself.
func bitExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
	c.setFlag(FlagV, v&0x40 != 0)
	c.accountCycles(e, op.crossed)
	return nil
}

// bitImmExec implements the 65C02 BIT #imm form: only Z is affected.
func bitImmExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	c.setFlag(FlagZ, c.A&v == 0)
	c.accountCycles(e, false)
	return nil
}

// --- read-modify-write ---

func (c *CPU) rmw(m *memory.Memory, e *opcodeEntry, f func(uint8) uint8) error {
	if e.mode == ModeAccumulator {
		c.A = f(c.A)
		c.setZN(c.A)
		c.accountCycles(e, false)
		return nil
	}
	op := c.resolve(m, e.mode)
	v := f(m.Read(op.addr))
	err := m.Write(op.addr, v)
	c.setZN(v)
	c.accountCycles(e, op.crossed)
	return err
}

func aslExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 {
		c.setFlag(FlagC, v&0x80 != 0)
		return v << 1
	})
}

func lsrExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 {
		c.setFlag(FlagC, v&0x01 != 0)
		return v >> 1
	})
}

func rolExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 {
		carryIn := c.getFlag(FlagC)
		c.setFlag(FlagC, v&0x80 != 0)
		result := v << 1
		if carryIn {
			result |= 0x01
		}
		return result
	})
}

func rorExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 {
		carryIn := c.getFlag(FlagC)
		c.setFlag(FlagC, v&0x01 != 0)
		result := v >> 1
		if carryIn {
			result |= 0x80
		}
		return result
	})
}

func incExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 { return v + 1 })
}

func decExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	return c.rmw(m, e, func(v uint8) uint8 { return v - 1 })
}

// trbExec / tsbExec test A against memory (setting Z as BIT would, but
// without touching N or V) and then clear or set the tested bits.
func trbExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	c.setFlag(FlagZ, v&c.A == 0)
	err := m.Write(op.addr, v&^c.A)
	c.accountCycles(e, false)
	return err
}

func tsbExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	c.setFlag(FlagZ, v&c.A == 0)
	err := m.Write(op.addr, v|c.A)
	c.accountCycles(e, false)
	return err
}

func rmbExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	err := m.Write(op.addr, v&^(1<<e.bit))
	c.accountCycles(e, false)
	return err
}

func smbExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	v := m.Read(op.addr)
	err := m.Write(op.addr, v|(1<<e.bit))
	c.accountCycles(e, false)
	return err
}

func bbrExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	zp, target, _ := c.resolveZPRelative(m)
	v := m.Read(zp)
	c.accountCycles(e, false)
	if v&(1<<e.bit) == 0 {
		crossed := (c.PC & 0xFF00) != (target & 0xFF00)
		c.PC = target
		c.Cycles++
		if crossed {
			c.Cycles++
		}
	}
	return nil
}

// bbsExec implements BBS0-BBS7. BBS7 additionally flags operand bytes
// $FF $FF (zero-page address $FF, branch offset -1) as suspicious: on
// the real machine this pattern only appears in uninitialized or
// corrupted memory, never in assembled code.
func bbsExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	zp, target, offset := c.resolveZPRelative(m)
	v := m.Read(zp)
	c.accountCycles(e, false)
	if v&(1<<e.bit) != 0 {
		crossed := (c.PC & 0xFF00) != (target & 0xFF00)
		c.PC = target
		c.Cycles++
		if crossed {
			c.Cycles++
		}
	}
	if e.bit == 7 && zp == 0xFF && offset == -1 {
		return coreerr.New(coreerr.SuspiciousCode, c.PC, "BBS7 $FF $FF: suspicious machine code")
	}
	return nil
}

// --- registers, stack, flags ---

func inxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.X++
	c.setZN(c.X)
	c.accountCycles(e, false)
	return nil
}

func inyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.Y++
	c.setZN(c.Y)
	c.accountCycles(e, false)
	return nil
}

func dexExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.X--
	c.setZN(c.X)
	c.accountCycles(e, false)
	return nil
}

func deyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.Y--
	c.setZN(c.Y)
	c.accountCycles(e, false)
	return nil
}

func taxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.X = c.A
	c.setZN(c.X)
	c.accountCycles(e, false)
	return nil
}

func tayExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.Y = c.A
	c.setZN(c.Y)
	c.accountCycles(e, false)
	return nil
}

func txaExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.A = c.X
	c.setZN(c.A)
	c.accountCycles(e, false)
	return nil
}

func tyaExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.A = c.Y
	c.setZN(c.A)
	c.accountCycles(e, false)
	return nil
}

func txsExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.S = c.X
	c.accountCycles(e, false)
	return nil
}

func tsxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.X = c.S
	c.setZN(c.X)
	c.accountCycles(e, false)
	return nil
}

func phaExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	err := c.push8(m, c.A)
	c.accountCycles(e, false)
	return err
}

func phxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	err := c.push8(m, c.X)
	c.accountCycles(e, false)
	return err
}

func phyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	err := c.push8(m, c.Y)
	c.accountCycles(e, false)
	return err
}

func plaExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.A = c.pop8(m)
	c.setZN(c.A)
	c.accountCycles(e, false)
	return nil
}

func plxExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.X = c.pop8(m)
	c.setZN(c.X)
	c.accountCycles(e, false)
	return nil
}

func plyExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.Y = c.pop8(m)
	c.setZN(c.Y)
	c.accountCycles(e, false)
	return nil
}

// phpExec always pushes B and the unused bit set, matching a real
// 6502/65C02 PHP.
func phpExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	err := c.push8(m, c.P|FlagB|Flag5)
	c.accountCycles(e, false)
	return err
}

// plpExec restores all flags except B and bit 5 regardless of what was
// pushed: B is cleared and bit 5 always reads back set.
func plpExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.P = (c.pop8(m) &^ FlagB) | Flag5
	c.accountCycles(e, false)
	return nil
}

func clcExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagC, false)
	c.accountCycles(e, false)
	return nil
}

func secExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagC, true)
	c.accountCycles(e, false)
	return nil
}

func cliExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagI, false)
	c.accountCycles(e, false)
	return nil
}

func seiExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagI, true)
	c.accountCycles(e, false)
	return nil
}

func clvExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagV, false)
	c.accountCycles(e, false)
	return nil
}

func cldExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagD, false)
	c.accountCycles(e, false)
	return nil
}

func sedExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.setFlag(FlagD, true)
	c.accountCycles(e, false)
	return nil
}

// --- control flow ---

func jmpExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	c.PC = op.addr
	c.accountCycles(e, false)
	return nil
}

func jsrExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	err := c.push16(m, c.PC-1)
	c.PC = op.addr
	c.accountCycles(e, false)
	return err
}

func rtsExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.PC = c.pop16(m) + 1
	c.accountCycles(e, false)
	return nil
}

func rtiExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.P = (c.pop8(m) &^ FlagB) | Flag5
	c.PC = c.pop16(m)
	c.accountCycles(e, false)
	return nil
}

// brkExec pushes PC+2 (BRK's operand byte is a signature byte, always
// skipped) with the B flag set, then jumps through the IRQ vector.
func brkExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.PC++
	return c.serviceInterrupt(m, vecIRQ, true)
}

func stpExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.halted = true
	c.accountCycles(e, false)
	return coreerr.New(coreerr.UnimplementedOpcode, c.PC, "STP executed, CPU halted")
}

func waiExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.waiting = true
	c.accountCycles(e, false)
	return coreerr.New(coreerr.UnimplementedOpcode, c.PC, "WAI executed, CPU waiting for interrupt")
}

func braExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	op := c.resolve(m, e.mode)
	crossed := (c.PC & 0xFF00) != (op.addr & 0xFF00)
	c.PC = op.addr
	c.accountCycles(e, false)
	if crossed {
		c.Cycles++
	}
	return nil
}

// branchExec returns an exec function for a conditional branch testing
// whether flag f is set to want.
func branchExec(f uint8, want bool) execFunc {
	return func(c *CPU, m *memory.Memory, e *opcodeEntry) error {
		op := c.resolve(m, e.mode)
		c.accountCycles(e, false)
		if c.getFlag(f) == want {
			crossed := (c.PC & 0xFF00) != (op.addr & 0xFF00)
			c.PC = op.addr
			c.Cycles++
			if crossed {
				c.Cycles++
			}
		}
		return nil
	}
}

// --- NOPs: reserved opcodes documented to behave as multi-byte,
// multi-cycle no-ops on the W65C02S. ---

func nopExec(c *CPU, m *memory.Memory, e *opcodeEntry) error {
	c.resolve(m, e.mode)
	c.accountCycles(e, false)
	return nil
}
