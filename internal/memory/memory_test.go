package memory

/*
 * a2e - Memory and soft-switch tests.
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
)

func TestMainVsAuxByAltZP(t *testing.T) {
	m := New()
	if err := m.Write(0x0050, 0x11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.AltZP = true
	if err := m.Write(0x0050, 0x22); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.AltZP = false
	if got := m.Read(0x0050); got != 0x11 {
		t.Errorf("main zero page got %#x want 0x11", got)
	}
	m.AltZP = true
	if got := m.Read(0x0050); got != 0x22 {
		t.Errorf("aux zero page got %#x want 0x22", got)
	}
}

func TestStore80Page2Page1(t *testing.T) {
	m := New()
	m.Store80 = true
	m.Page2 = true
	if err := m.Write(0x0400, 0xAB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Read(0x0400); got != 0xAB {
		t.Errorf("got %#x want 0xAB", got)
	}
	if got := m.DumpAux(0x0400, 0x0400)[0]; got != 0xAB {
		t.Errorf("aux byte not set: %#x", got)
	}
	if got := m.DumpMain(0x0400, 0x0400)[0]; got == 0xAB {
		t.Errorf("main byte should not be set")
	}
}

func TestHiResRequiresHiresFlag(t *testing.T) {
	m := New()
	m.Store80 = true
	m.Page2 = true
	if err := m.Write(0x2000, 0x55); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// hires not set: falls through to store80-only rule, lands in main.
	if got := m.DumpMain(0x2000, 0x2000)[0]; got != 0x55 {
		t.Errorf("expected main write without hires, got %#x", got)
	}
	m.Hires = true
	if err := m.Write(0x2000, 0x66); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.DumpAux(0x2000, 0x2000)[0]; got != 0x66 {
		t.Errorf("expected aux write with hires, got %#x", got)
	}
}

func TestLanguageCardUnlock(t *testing.T) {
	m := New()
	m.Read(0xC081)
	if !m.WP {
		t.Fatalf("wp should stay set after a single read")
	}
	m.Read(0xC081)
	if m.WP {
		t.Fatalf("wp should clear after two consecutive reads")
	}
	if err := m.Write(0xD000, 0xAA); err != nil {
		t.Fatalf("unexpected error writing unlocked RAM: %v", err)
	}
	m.Read(0xC088) // bank 1, re-locks
	if got := m.Read(0xD000); got != 0xAA {
		t.Errorf("expected bank 2 RAM to read back 0xAA, got %#x", got)
	}
}

func TestLanguageCardUnlockResetByOtherSwitch(t *testing.T) {
	m := New()
	m.Read(0xC081)
	m.Read(0xC054) // touch an unrelated switch
	m.Read(0xC081)
	if !m.WP {
		t.Errorf("unlock latch should have been reset by the intervening access")
	}
}

func TestWriteProtectedError(t *testing.T) {
	m := New()
	m.LCRam = true
	m.WP = true
	err := m.Write(0xD000, 0x01)
	if err == nil {
		t.Fatalf("expected a WriteProtected error")
	}
	ce, ok := err.(*coreerr.Error)
	if !ok || ce.Kind != coreerr.WriteProtected {
		t.Errorf("got %v, want WriteProtected", err)
	}
}

func TestIOUDHiresToggleWhenDisabled(t *testing.T) {
	m := New()
	m.IOUDisable = true
	m.Read(0xC05E)
	if !m.IOUDHires {
		t.Errorf("expected DHIRES set")
	}
	if got := m.Read(0xC07F); got != 0 {
		t.Errorf("C07F should report DHIRES on (inverted bit clear), got %#x", got)
	}
	m.Read(0xC05F)
	if m.IOUDHires {
		t.Errorf("expected DHIRES cleared")
	}
	if got := m.Read(0xC07F); got != 0x80 {
		t.Errorf("C07F should report DHIRES off (inverted bit set), got %#x", got)
	}
}

func TestIOUY0EdgeWhenEnabled(t *testing.T) {
	m := New()
	m.IOUDisable = false
	m.Read(0xC05F)
	if !m.IOUY0Edge {
		t.Errorf("expected Y0 edge set when IOU not disabled")
	}
}

func TestROMMapping(t *testing.T) {
	m := New()
	rom := make([]byte, romSize)
	rom[0x0100] = 0x22 // low bank: $C100 - $C000 = $0100
	rom[0x4100] = 0x11 // high bank: $C100 - $8000 = $4100
	m.LoadROM(rom)
	if got := m.Read(0xC100); got != 0x22 {
		t.Errorf("low bank ROM got %#x want 0x22", got)
	}
	m.RomBank = true
	if got := m.Read(0xC100); got != 0x11 {
		t.Errorf("high bank ROM got %#x want 0x11", got)
	}
}

func TestIOUnmappedReadIsZero(t *testing.T) {
	m := New()
	if got := m.Read(0xC060); got != 0 {
		t.Errorf("unmapped I/O read should be 0, got %#x", got)
	}
}
