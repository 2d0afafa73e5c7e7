package debugger

/*
 * a2e - Debugger tests.
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
	"bytes"
	"strings"
	"testing"

	"github.com/rcornwell/a2e/internal/memory"
)

func newTestDebugger(out *bytes.Buffer) *Debugger {
	return &Debugger{
		Mem:        memory.New(),
		breakpoint: -1,
		out:        out,
	}
}

func TestSetBreakpointThenClear(t *testing.T) {
	var out bytes.Buffer
	d := newTestDebugger(&out)

	d.setBreakpoint([]string{"b", "1234"})
	if addr, ok := d.Breakpoint(); !ok || addr != 0x1234 {
		t.Fatalf("breakpoint = %#x, %v", addr, ok)
	}

	d.setBreakpoint([]string{"b"})
	if _, ok := d.Breakpoint(); ok {
		t.Fatalf("breakpoint should be cleared")
	}
}

func TestDumpRangeFormatsHexRows(t *testing.T) {
	var out bytes.Buffer
	d := newTestDebugger(&out)

	d.dumpRange([]string{"d", "0300", "030F"}, d.Mem.DumpMain)
	if !strings.HasPrefix(out.String(), "0300: ") {
		t.Errorf("got %q", out.String())
	}
}

func TestDumpSwitchesReportsState(t *testing.T) {
	var out bytes.Buffer
	d := newTestDebugger(&out)
	d.Mem.Store80 = true

	d.dumpSwitches()
	if !strings.Contains(out.String(), "store80=true") {
		t.Errorf("got %q", out.String())
	}
}
