package cpu

/*
 * a2e - W65C02 core tests.
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

import (
	"testing"

	"github.com/rcornwell/a2e/internal/coreerr"
	"github.com/rcornwell/a2e/internal/memory"
)

func newTestSystem() (*CPU, *memory.Memory) {
	return New(), memory.New()
}

func TestResetFetchesVector(t *testing.T) {
	c, m := newTestSystem()
	m.LCRam = true // map language-card RAM over the vectors; ROM writes are dropped
	m.Write(0xFFFC, 0x00)
	m.Write(0xFFFD, 0x80)
	c.Reset(m)
	if c.PC != 0x8000 {
		t.Errorf("PC = %#x, want 0x8000", c.PC)
	}
	if !c.getFlag(FlagI) {
		t.Errorf("I flag should be set after reset")
	}
}

func load(m *memory.Memory, addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.Write(addr+uint16(i), b)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, m := newTestSystem()
	c.PC = 0x1000
	load(m, 0x1000, 0xA9, 0x00) // LDA #$00
	c.Step(m)
	if c.A != 0 || !c.getFlag(FlagZ) || c.getFlag(FlagN) {
		t.Errorf("A=%#x P=%#x", c.A, c.P)
	}

	c.PC = 0x1000
	load(m, 0x1000, 0xA9, 0x80) // LDA #$80
	c.Step(m)
	if c.A != 0x80 || c.getFlag(FlagZ) || !c.getFlag(FlagN) {
		t.Errorf("A=%#x P=%#x", c.A, c.P)
	}
}

func TestDecimalAdd99Plus1(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, false)
	c.A = 0x99
	c.PC = 0x1000
	load(m, 0x1000, 0x69, 0x01) // ADC #$01
	c.Step(m)
	if c.A != 0x00 {
		t.Errorf("A = %#x, want 0x00", c.A)
	}
	if !c.getFlag(FlagC) {
		t.Errorf("expected carry out of decimal add")
	}
}

func TestDecimalAdd58Plus46(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, false)
	c.A = 0x58
	c.PC = 0x1000
	load(m, 0x1000, 0x69, 0x46) // ADC #$46
	c.Step(m)
	if c.A != 0x04 || !c.getFlag(FlagC) {
		t.Errorf("A = %#x C=%v, want 0x04 with carry", c.A, c.getFlag(FlagC))
	}
}

func TestDecimalSubtract20Minus1(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, true) // no borrow
	c.A = 0x20
	c.PC = 0x1000
	load(m, 0x1000, 0xE9, 0x01) // SBC #$01
	c.Step(m)
	if c.A != 0x19 || !c.getFlag(FlagC) {
		t.Errorf("A = %#x C=%v, want 0x19 with carry", c.A, c.getFlag(FlagC))
	}
}

func TestPageCrossAddsCycle(t *testing.T) {
	c, m := newTestSystem()
	c.X = 0xFF
	c.PC = 0x1000
	load(m, 0x1000, 0xBD, 0x01, 0x10) // LDA $1001,X -> $1100, crosses page
	cycles, _ := c.Step(m)
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5 (4 base + 1 page-cross)", cycles)
	}
}

func TestNoPageCrossBaseCycles(t *testing.T) {
	c, m := newTestSystem()
	c.X = 0x01
	c.PC = 0x1000
	load(m, 0x1000, 0xBD, 0x01, 0x10) // LDA $1001,X -> $1002, same page
	cycles, _ := c.Step(m)
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4", cycles)
	}
}

func TestBranchTakenCrossingPageCosts2Extra(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagZ, true)
	c.PC = 0x10FD
	load(m, 0x10FD, 0xF0, 0x05) // BEQ +5 -> next-PC $10FF + 5 = $1104, crosses page
	cycles, _ := c.Step(m)
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4 (2 base + 1 taken + 1 page-cross)", cycles)
	}
	if c.PC != 0x1104 {
		t.Errorf("PC = %#x, want 0x1104", c.PC)
	}
}

func TestBranchNotTakenBaseCycles(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagZ, false)
	c.PC = 0x1000
	load(m, 0x1000, 0xF0, 0x10) // BEQ, not taken
	cycles, _ := c.Step(m)
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if c.PC != 0x1002 {
		t.Errorf("PC = %#x, want 0x1002", c.PC)
	}
}

func TestPHPSetsBAndBit5(t *testing.T) {
	c, m := newTestSystem()
	c.P = 0
	c.S = 0xFF
	c.PC = 0x1000
	load(m, 0x1000, 0x08) // PHP
	c.Step(m)
	pushed := m.Read(0x01FF)
	if pushed&FlagB == 0 || pushed&Flag5 == 0 {
		t.Errorf("pushed P = %#x, want B and bit 5 set", pushed)
	}
}

func TestPLPIgnoresBAndBit5(t *testing.T) {
	c, m := newTestSystem()
	c.S = 0xFE
	m.Write(0x01FF, 0xFF) // all bits set including B
	c.PC = 0x1000
	load(m, 0x1000, 0x28) // PLP
	c.Step(m)
	if c.P&FlagB != 0 {
		t.Errorf("B should never be latched into live P")
	}
	if c.P&Flag5 == 0 {
		t.Errorf("bit 5 should always read as set")
	}
}

func TestBRKPushesPCPlus2AndSetsB(t *testing.T) {
	c, m := newTestSystem()
	m.LCRam = true // map language-card RAM over the vectors; ROM writes are dropped
	m.Write(0xFFFE, 0x00)
	m.Write(0xFFFF, 0x90)
	c.S = 0xFF
	c.PC = 0x1000
	load(m, 0x1000, 0x00, 0xEA) // BRK <signature byte>
	c.Step(m)
	if c.PC != 0x9000 {
		t.Errorf("PC = %#x, want 0x9000", c.PC)
	}
	pushedPC := uint16(m.Read(0x01FE)) | uint16(m.Read(0x01FF))<<8
	if pushedPC != 0x1002 {
		t.Errorf("pushed PC = %#x, want 0x1002", pushedPC)
	}
	pushedP := m.Read(0x01FD)
	if pushedP&FlagB == 0 {
		t.Errorf("expected B set in the pushed status byte")
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, m := newTestSystem()
	c.S = 0xFF
	c.PC = 0x1000
	load(m, 0x1000, 0x20, 0x00, 0x20) // JSR $2000
	load(m, 0x2000, 0x60)            // RTS
	c.Step(m)
	if c.PC != 0x2000 {
		t.Errorf("PC after JSR = %#x, want 0x2000", c.PC)
	}
	c.Step(m)
	if c.PC != 0x1003 {
		t.Errorf("PC after RTS = %#x, want 0x1003", c.PC)
	}
}

func TestBBR0BranchesWhenBitClear(t *testing.T) {
	c, m := newTestSystem()
	m.Write(0x0050, 0x00)
	c.PC = 0x1000
	load(m, 0x1000, 0x0F, 0x50, 0x05) // BBR0 $50,+5
	c.Step(m)
	if c.PC != 0x1008 {
		t.Errorf("PC = %#x, want 0x1008", c.PC)
	}
}

func TestBBR0PageCrossAddsCycle(t *testing.T) {
	c, m := newTestSystem()
	m.Write(0x0050, 0x00)
	c.PC = 0x10FB
	load(m, 0x10FB, 0x0F, 0x50, 0x05) // BBR0 $50,+5 -> next-PC $10FE + 5 = $1103, crosses page
	cycles, _ := c.Step(m)
	if c.PC != 0x1103 {
		t.Errorf("PC = %#x, want 0x1103", c.PC)
	}
	if cycles != 7 {
		t.Errorf("cycles = %d, want 7 (5 base + 1 taken + 1 page-cross)", cycles)
	}
}

func TestRMB0ClearsBitWithoutTouchingFlags(t *testing.T) {
	c, m := newTestSystem()
	m.Write(0x0050, 0xFF)
	c.P = FlagZ
	c.PC = 0x1000
	load(m, 0x1000, 0x07, 0x50) // RMB0 $50
	c.Step(m)
	if got := m.Read(0x0050); got != 0xFE {
		t.Errorf("got %#x, want 0xFE", got)
	}
	if !c.getFlag(FlagZ) {
		t.Errorf("RMB must not touch flags")
	}
}

func TestSTPHalts(t *testing.T) {
	c, m := newTestSystem()
	c.PC = 0x1000
	load(m, 0x1000, 0xDB, 0xEA) // STP, NOP
	c.Step(m)
	if !c.Halted() {
		t.Errorf("expected CPU halted after STP")
	}
	pcAfterStop := c.PC
	c.Step(m)
	if c.PC != pcAfterStop {
		t.Errorf("PC advanced after STP, CPU should be frozen")
	}
}

func TestCMPSetsCarryWhenRegGreaterOrEqual(t *testing.T) {
	c, m := newTestSystem()
	c.A = 0x10
	c.PC = 0x1000
	load(m, 0x1000, 0xC9, 0x10) // CMP #$10
	c.Step(m)
	if !c.getFlag(FlagC) || !c.getFlag(FlagZ) {
		t.Errorf("expected C and Z set for equal compare")
	}
}

func TestIRQHeldOffByIFlag(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagI, true)
	c.PC = 0x1000
	load(m, 0x1000, 0xEA) // NOP
	c.IRQ()
	c.Step(m)
	if c.PC != 0x1001 {
		t.Errorf("IRQ should have been held off, PC = %#x", c.PC)
	}
}

func TestNMIAlwaysTaken(t *testing.T) {
	c, m := newTestSystem()
	c.setFlag(FlagI, true)
	m.LCRam = true // map language-card RAM over the vectors; ROM writes are dropped
	m.Write(0xFFFA, 0x00)
	m.Write(0xFFFB, 0x40)
	c.PC = 0x1000
	c.NMI()
	c.Step(m)
	if c.PC != 0x4000 {
		t.Errorf("PC = %#x, want 0x4000", c.PC)
	}
}

func TestResetZeroesRegistersRegardlessOfPriorState(t *testing.T) {
	c, m := newTestSystem()
	c.A, c.X, c.Y, c.S = 0x11, 0x22, 0x33, 0x44
	m.Write(0xFFFC, 0x00)
	m.Write(0xFFFD, 0x80)
	c.Reset(m)
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("A=%#x X=%#x Y=%#x, want all zero", c.A, c.X, c.Y)
	}
	if c.S != 0xFD {
		t.Errorf("S = %#x, want 0xFD", c.S)
	}
}

func TestResetClearsAllFlagsExceptIAndBit5(t *testing.T) {
	c, m := newTestSystem()
	c.P = 0xFF
	m.Write(0xFFFC, 0x00)
	m.Write(0xFFFD, 0x80)
	c.Reset(m)
	if c.P != FlagI|Flag5 {
		t.Errorf("P = %#x, want only I and bit 5 set", c.P)
	}
}

func TestDecimalAdcOverflowReadFromPreCorrectionSum(t *testing.T) {
	// $50 + $50 in decimal mode: pre-correction nibble sum is $A0, whose
	// signed high-nibble combination overflows even though the corrected
	// BCD result ($00 with carry) looks unremarkable.
	c, m := newTestSystem()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, false)
	c.A = 0x50
	c.PC = 0x1000
	load(m, 0x1000, 0x69, 0x50) // ADC #$50
	c.Step(m)
	if c.A != 0x00 || !c.getFlag(FlagC) {
		t.Errorf("A=%#x C=%v, want 0x00 with carry", c.A, c.getFlag(FlagC))
	}
	if !c.getFlag(FlagV) {
		t.Errorf("expected V set for $50+$50 decimal add")
	}
}

func TestDecimalSbcOverflowReadFromPreCorrectionResult(t *testing.T) {
	// $20 - $90 with C=1 (no borrow) in decimal mode: the pre-correction
	// binary subtraction $20-$90=$90 is negative-to-negative, so V=1,
	// even though the BCD-corrected result looks unremarkable.
	c, m := newTestSystem()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, true)
	c.A = 0x20
	c.PC = 0x1000
	load(m, 0x1000, 0xE9, 0x90) // SBC #$90
	c.Step(m)
	if !c.getFlag(FlagV) {
		t.Errorf("expected V set for $20-$90 decimal subtract")
	}
}

func TestASLAbsoluteXPageCrossCosts7(t *testing.T) {
	c, m := newTestSystem()
	c.X = 0xFF
	c.PC = 0x1000
	load(m, 0x1000, 0x1E, 0x01, 0x10) // ASL $1001,X -> $1100, crosses page
	cycles, _ := c.Step(m)
	if cycles != 7 {
		t.Errorf("cycles = %d, want 7 (6 base + 1 page-cross)", cycles)
	}
}

func TestASLAbsoluteXNoPageCrossCosts6(t *testing.T) {
	c, m := newTestSystem()
	c.X = 0x01
	c.PC = 0x1000
	load(m, 0x1000, 0x1E, 0x01, 0x10) // ASL $1001,X -> $1002, same page
	cycles, _ := c.Step(m)
	if cycles != 6 {
		t.Errorf("cycles = %d, want 6", cycles)
	}
}

func TestBBS7SuspiciousCodePattern(t *testing.T) {
	c, m := newTestSystem()
	m.Write(0x00FF, 0x80) // bit 7 set, so the branch is also taken
	c.PC = 0x1000
	load(m, 0x1000, 0xFF, 0xFF, 0xFF) // BBS7 $FF,-1
	_, err := c.Step(m)
	if err == nil {
		t.Fatalf("expected a suspicious-code error for BBS7 $FF $FF")
	}
	ce, ok := err.(*coreerr.Error)
	if !ok || ce.Kind != coreerr.SuspiciousCode {
		t.Errorf("error = %v, want a coreerr.SuspiciousCode error", err)
	}
}
