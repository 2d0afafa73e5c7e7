package trace

/*
 * a2e - Trace buffer tests.
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
	"strings"
	"testing"

	"github.com/rcornwell/a2e/internal/cpu"
	"github.com/rcornwell/a2e/internal/memory"
)

func TestDisassembleImmediate(t *testing.T) {
	got := disassemble(0x1000, [3]uint8{0xA9, 0x42, 0x00})
	if !strings.Contains(got, "LDA") || !strings.Contains(got, "#$42") {
		t.Errorf("got %q", got)
	}
}

func TestDisassembleZPRelative(t *testing.T) {
	got := disassemble(0x1000, [3]uint8{0x0F, 0x10, 0x05})
	if !strings.Contains(got, "BBR0") || !strings.Contains(got, "$10,$1008") {
		t.Errorf("got %q", got)
	}
}

func TestBufferWrapsAndOrdersOldestFirst(t *testing.T) {
	b := New()
	m := memory.New()
	for i := 0; i < bufferSize+3; i++ {
		s := cpu.Snapshot{PC: uint16(i)}
		b.Add(s, m)
	}
	var out strings.Builder
	b.Dump(&out)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != bufferSize {
		t.Fatalf("got %d lines, want %d", len(lines), bufferSize)
	}
	if !strings.Contains(lines[0], "PC:0003") {
		t.Errorf("expected oldest surviving entry PC:0003 first, got %q", lines[0])
	}
}
