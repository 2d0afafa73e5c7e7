/*
 * a2e - Console: text/lores/hires display rendering and keyboard input.
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

// Package console renders the Apple //e's eight display modes (text,
// lores, and hires, each in 40- or 80-column/double variants) onto a
// terminal via termbox-go, and supplies the $C000/$C010 keyboard
// strobe and the $C060-$C063 paddle-button switches.
package console

import (
	"github.com/nsf/termbox-go"

	"github.com/rcornwell/a2e/internal/memory"
)

// executeCyclesPerFrame throttles rendering and input polling to once
// every N simulated cycles, matching the 10,000-cycle cadence the
// original used so a text terminal isn't repainted once per CPU cycle.
const executeCyclesPerFrame = 10000

type drawMode int

const (
	drawUnknown drawMode = iota
	drawText80Column
	drawText40Column
	drawHiresDouble
	drawHires80Column
	drawHires40Column
	drawLoresDouble
	drawLores80Column
	drawLores40Column
)

// colorMap pairs each of the Apple's 16 lores colors with an xterm
// 256-color palette index, matching the default xterm/rxvt palette.
var colorMap = [16]int{
	232, 52, 62, 164, 22, 242, 44, 104,
	58, 208, 244, 218, 40, 142, 116, 255,
}

// rowAddressMap gives the text-page-1 base address of each of the 24
// screen rows; the interleave groups of 8 are the familiar Apple II
// "every eighth row" scan order.
var rowAddressMap = [24]uint16{
	0x400, 0x480, 0x500, 0x580, 0x600, 0x680, 0x700, 0x780,
	0x428, 0x4A8, 0x528, 0x5A8, 0x628, 0x6A8, 0x728, 0x7A8,
	0x450, 0x4D0, 0x550, 0x5D0, 0x650, 0x6D0, 0x750, 0x7D0,
}

// hiresRowAddressMap gives the HiRes-page-1 base address of the first
// of each row's eight scanlines.
var hiresRowAddressMap = [24]uint16{
	0x2000, 0x2080, 0x2100, 0x2180, 0x2200, 0x2280, 0x2300, 0x2380,
	0x2028, 0x20A8, 0x2128, 0x21A8, 0x2228, 0x22A8, 0x2328, 0x23A8,
	0x2050, 0x20D0, 0x2150, 0x21D0, 0x2250, 0x22D0, 0x2350, 0x23D0,
}

var primaryCharSet [256]rune
var alternateCharSet [256]rune

func init() {
	const block = "@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_ !\"#$%&'()*+,-./0123456789:;<=>?"
	for rep := 0; rep < 3; rep++ {
		for i, r := range block {
			primaryCharSet[rep*64+i] = r
			alternateCharSet[rep*64+i] = r
		}
	}
	lower := "`abcdefghijklmnopqrstuvwxyz{|}~#"
	for i, r := range lower {
		primaryCharSet[192+i] = r
		alternateCharSet[192+i] = r
	}
	// Alternate char set's third quarter ($80-$9F -> mousetext/inverse
	// glyphs) has no clean terminal equivalent; approximate with the
	// closest printable ASCII the original's fallback table used.
	mouseText := []rune("aa^hccmm<.v^-r#<>v^-L>##[]|*=+#|")
	for i, r := range mouseText {
		alternateCharSet[128+i] = r
	}
}

// Console is one keyboard/display adapter, reading main/aux RAM and
// soft switches through mem and painting a terminal via termbox-go.
type Console struct {
	mem *memory.Memory

	key          uint8
	openApple    bool
	solidApple   bool
	col8040      bool
	mouseButton  bool

	cycle    int
	lastDraw drawMode

	events  chan termbox.Event
	onReset func()
}

// New initializes the terminal via termbox-go and registers the
// keyboard/button I/O addresses into mem. onReset, if non-nil, is
// called when the user presses the emulated reset key (F1).
func New(mem *memory.Memory, onReset func()) (*Console, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	c := &Console{
		mem:     mem,
		events:  make(chan termbox.Event, 16),
		onReset: onReset,
	}

	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			c.events <- ev
		}
	}()

	mem.RegisterIO(0xC000, c, nil)
	mem.RegisterIO(0xC010, c, c)
	mem.RegisterIO(0xC019, c, nil)
	mem.RegisterIO(0xC060, c, nil)
	mem.RegisterIO(0xC061, c, nil)
	mem.RegisterIO(0xC062, c, nil)
	mem.RegisterIO(0xC063, c, nil)

	return c, nil
}

// Close tears down the terminal, restoring the prior mode.
func (c *Console) Close() {
	termbox.Interrupt()
	termbox.Close()
}

// Pause releases the terminal so a foreground REPL (the debugger) can
// use stdin/stdout normally; call Resume before returning to Execute.
func (c *Console) Pause() {
	termbox.Close()
}

// Resume reclaims the terminal after Pause.
func (c *Console) Resume() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	c.lastDraw = drawUnknown
	return nil
}

// ReadIO implements memory.Reader for the keyboard strobe and the
// pseudo-button switches.
func (c *Console) ReadIO(addr uint16) uint8 {
	switch addr {
	case 0xC000:
		return c.key
	case 0xC010:
		if c.key&0x80 != 0 {
			c.key &^= 0x80
			return 0x80
		}
		return 0
	case 0xC019:
		return 0 // vertical-blank interrupt reset: not modeled
	case 0xC060:
		return boolBit(c.col8040)
	case 0xC061:
		return boolBit(c.openApple)
	case 0xC062:
		return boolBit(c.solidApple)
	case 0xC063:
		return boolBit(!c.mouseButton)
	default:
		return 0
	}
}

// WriteIO implements memory.Writer; only $C010 (clear keyboard strobe)
// is writable.
func (c *Console) WriteIO(addr uint16, _ uint8) {
	if addr == 0xC010 {
		c.key &^= 0x80
	}
}

func boolBit(b bool) uint8 {
	if b {
		return 0x80
	}
	return 0
}

// Execute redraws the screen and samples one keyboard event, but only
// once every executeCyclesPerFrame calls; call it once per CPU cycle.
func (c *Console) Execute() {
	c.cycle++
	if c.cycle < executeCyclesPerFrame {
		return
	}
	c.cycle = 0

	sw := c.mem.DumpSwitches()
	next := drawModeFor(sw)
	if next != c.lastDraw {
		termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	}
	switch next {
	case drawText80Column:
		c.drawText80Column(sw)
	case drawText40Column:
		c.drawText40Column(sw)
	case drawHiresDouble:
		c.drawHiresDouble(sw)
	case drawHires80Column:
		c.drawHires80Column(sw)
	case drawHires40Column:
		c.drawHires40Column(sw)
	case drawLoresDouble:
		c.drawLoresDouble(sw)
	case drawLores80Column:
		c.drawLores80Column(sw)
	case drawLores40Column:
		c.drawLores40Column(sw)
	}
	c.lastDraw = next
	termbox.Flush()

	c.pollInput()
}

func drawModeFor(sw memory.Switches) drawMode {
	if sw.VideoText {
		if sw.Video80Column {
			return drawText80Column
		}
		return drawText40Column
	}
	if sw.Hires {
		if sw.Video80Column {
			if sw.IOUDHires {
				return drawHiresDouble
			}
			return drawHires80Column
		}
		return drawHires40Column
	}
	if sw.Video80Column {
		if sw.IOUDHires {
			return drawLoresDouble
		}
		return drawLores80Column
	}
	return drawLores40Column
}

func (c *Console) pollInput() {
	select {
	case ev := <-c.events:
		if ev.Type != termbox.EventKey {
			return
		}
		switch {
		case ev.Key == termbox.KeyEnter:
			c.key = 0x0D
		case ev.Key == termbox.KeyArrowUp:
			c.key = 0x0B
		case ev.Key == termbox.KeyArrowDown:
			c.key = 0x0A
		case ev.Key == termbox.KeyArrowRight:
			c.key = 0x15
		case ev.Key == termbox.KeyArrowLeft:
			c.key = 0x08
		case ev.Key == termbox.KeyBackspace || ev.Key == termbox.KeyBackspace2:
			c.key = 0x7F
		case ev.Key == termbox.KeyF1:
			if c.onReset != nil {
				c.onReset()
			}
			return
		case ev.Key == termbox.KeyF2:
			c.openApple = !c.openApple
			return
		case ev.Key == termbox.KeyF3:
			c.solidApple = !c.solidApple
			return
		case ev.Key == termbox.KeyF4:
			c.col8040 = !c.col8040
			return
		case ev.Ch != 0:
			c.key = uint8(ev.Ch)
		default:
			return
		}
		c.key |= 0x80
	default:
	}
}
