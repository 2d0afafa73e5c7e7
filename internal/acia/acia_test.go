package acia

/*
 * a2e - ACIA tests.
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

import "testing"

func TestWriteThenReadStatusInitiallyTxEmpty(t *testing.T) {
	a := New(0xC090, nil)
	if a.ReadIO(0xC091) != statusTxEmpty {
		t.Errorf("expected TX empty bit set at reset")
	}
}

func TestCommandRegisterResetClearsLow5Bits(t *testing.T) {
	a := New(0xC090, nil)
	a.command = 0xFF
	a.WriteIO(0xC091, 0) // address offset 1 is "reset" on write
	if a.command != 0xE0 {
		t.Errorf("command = %#x, want 0xE0", a.command)
	}
}

func TestRxFIFORoundTrip(t *testing.T) {
	a := New(0xC090, nil)
	a.rx.write(0x41)
	a.status |= statusRxFull
	if got := a.ReadIO(0xC090); got != 0x41 {
		t.Errorf("got %#x, want 0x41", got)
	}
	if a.status&statusRxFull != 0 {
		t.Errorf("rx-full status should clear once fifo drains")
	}
}

func TestBaudRateTable(t *testing.T) {
	a := New(0xC090, nil)
	a.control = 0b1110 // 9600
	rate, ok := a.BaudRate()
	if !ok || rate != 9600 {
		t.Errorf("got rate=%d ok=%v, want 9600/true", rate, ok)
	}
}
