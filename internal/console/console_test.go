package console

/*
 * a2e - Console tests.
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

	"github.com/rcornwell/a2e/internal/memory"
)

func TestDrawModeForText(t *testing.T) {
	sw := memory.Switches{VideoText: true, Video80Column: true}
	if got := drawModeFor(sw); got != drawText80Column {
		t.Errorf("got %v, want drawText80Column", got)
	}
}

func TestDrawModeForHiresDouble(t *testing.T) {
	sw := memory.Switches{Hires: true, Video80Column: true, IOUDHires: true}
	if got := drawModeFor(sw); got != drawHiresDouble {
		t.Errorf("got %v, want drawHiresDouble", got)
	}
}

func TestDrawModeForLores40(t *testing.T) {
	sw := memory.Switches{}
	if got := drawModeFor(sw); got != drawLores40Column {
		t.Errorf("got %v, want drawLores40Column", got)
	}
}

func TestCharSetTablesCoverAllBytes(t *testing.T) {
	for i := 0; i < 256; i++ {
		if primaryCharSet[i] == 0 {
			t.Errorf("primaryCharSet[%d] unset", i)
		}
		if alternateCharSet[i] == 0 {
			t.Errorf("alternateCharSet[%d] unset", i)
		}
	}
}

func TestKeyboardIOReadWrite(t *testing.T) {
	c := &Console{}
	c.key = 0x80 | 'A'
	if got := c.ReadIO(0xC000); got != 0x80|'A' {
		t.Errorf("C000 got %#x", got)
	}
	if got := c.ReadIO(0xC010); got != 0x80 {
		t.Errorf("C010 got %#x, want 0x80", got)
	}
	if c.key&0x80 != 0 {
		t.Errorf("strobe should clear after C010 read")
	}
}

func TestButtonSwitches(t *testing.T) {
	c := &Console{openApple: true, mouseButton: false}
	if got := c.ReadIO(0xC061); got != 0x80 {
		t.Errorf("open apple got %#x, want 0x80", got)
	}
	if got := c.ReadIO(0xC063); got != 0x80 {
		t.Errorf("mouse button (not pressed) got %#x, want 0x80", got)
	}
}
