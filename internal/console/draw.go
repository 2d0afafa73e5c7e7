/*
 * a2e - Console: per-mode pixel and character rendering.
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

package console

import (
	"github.com/nsf/termbox-go"

	"github.com/rcornwell/a2e/internal/memory"
)

func (c *Console) drawChar(row, col int, ch uint8, altCharSet bool) {
	reverse := (ch >> 7) == 0
	if altCharSet && ch >= 0x40 && ch <= 0x5F {
		reverse = false // MouseText glyphs are never shown inverse.
	}

	set := &primaryCharSet
	if altCharSet {
		set = &alternateCharSet
	}
	r := set[ch]

	fg, bg := termbox.ColorDefault, termbox.ColorDefault
	if reverse {
		fg, bg = bg, fg
	}
	termbox.SetCell(col, row, r, fg, bg)
}

func (c *Console) drawLoresPixel(row, col, color int) {
	attr := termbox.Attribute(colorMap[color&0xF] + 1)
	termbox.SetCell(col, row, ' ', termbox.ColorDefault, attr)
}

// drawHiresPixels truncates the 280x192 HiRes bitmap to the terminal's
// character grid (192/4=48 rows, 280/4=70 columns), same as the
// original's curses renderer.
func (c *Console) drawHiresPixels(row, col int, b uint8) {
	ch := byte(' ')
	if b&0x0F > 0 {
		ch = '#'
	}
	termbox.SetCell(col/4, row/4, rune(ch), termbox.ColorDefault, termbox.ColorDefault)

	ch = ' '
	if b&0x70 > 0 {
		ch = '#'
	}
	termbox.SetCell(col/4+1, row/4, rune(ch), termbox.ColorDefault, termbox.ColorDefault)
}

// drawDoubleHiresPixels truncates 560x192 double-HiRes to 48 rows by
// 70 columns.
func (c *Console) drawDoubleHiresPixels(row, col int, b uint8) {
	ch := byte(' ')
	if b&0x7F > 0 {
		ch = '#'
	}
	termbox.SetCell(col/8, row/4, rune(ch), termbox.ColorDefault, termbox.ColorDefault)
}

func (c *Console) drawText40Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 40; col++ {
			addr := rowAddressMap[row] + uint16(col)
			if sw.Page2 {
				addr += 0x400
			}
			c.drawChar(row, col, c.mem.PeekMain(addr), sw.VideoAltChar)
		}
	}
}

func (c *Console) drawText80Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			addr := rowAddressMap[row] + uint16(col/2)
			if col%2 == 0 {
				c.drawChar(row, col, c.mem.PeekAux(addr), sw.VideoAltChar)
			} else {
				c.drawChar(row, col, c.mem.PeekMain(addr), sw.VideoAltChar)
			}
		}
	}
}

func (c *Console) drawLores40Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 40; col++ {
			addr := rowAddressMap[row] + uint16(col)
			if sw.Page2 {
				addr += 0x400
			}
			b := c.mem.PeekMain(addr)
			if row >= 20 && sw.VideoMixed {
				c.drawChar(row+20, col, b, sw.VideoAltChar)
				continue
			}
			c.drawLoresPixel(row*2, col, int(b%0x10))
			c.drawLoresPixel(row*2+1, col, int(b/0x10))
		}
	}
}

func (c *Console) drawLores80Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			addr := rowAddressMap[row] + uint16(col/2)
			if row >= 20 && sw.VideoMixed {
				if col%2 == 0 {
					c.drawChar(row+20, col, c.mem.PeekAux(addr), sw.VideoAltChar)
				} else {
					c.drawChar(row+20, col, c.mem.PeekMain(addr), sw.VideoAltChar)
				}
				continue
			}
			b := c.mem.PeekMain(addr)
			c.drawLoresPixel(row*2, col, int(b%0x10))
			c.drawLoresPixel(row*2+1, col, int(b/0x10))
		}
	}
}

func (c *Console) drawLoresDouble(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			addr := rowAddressMap[row] + uint16(col/2)
			if row >= 20 && sw.VideoMixed {
				if col%2 == 0 {
					c.drawChar(row+20, col, c.mem.PeekAux(addr), sw.VideoAltChar)
				} else {
					c.drawChar(row+20, col, c.mem.PeekMain(addr), sw.VideoAltChar)
				}
				continue
			}
			var b uint8
			if col%2 == 0 {
				b = c.mem.PeekAux(addr)
			} else {
				b = c.mem.PeekMain(addr)
			}
			c.drawLoresPixel(row*2, col, int(b%0x10))
			c.drawLoresPixel(row*2+1, col, int(b/0x10))
		}
	}
}

func (c *Console) drawHires40Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 40; col++ {
			if row >= 20 && sw.VideoMixed {
				addr := rowAddressMap[row] + uint16(col)
				if sw.Page2 {
					addr += 0x400
				}
				c.drawChar(row+20, col, c.mem.PeekMain(addr), sw.VideoAltChar)
				continue
			}
			addr := hiresRowAddressMap[row] + uint16(col)
			if sw.Page2 {
				addr += 0x2000
			}
			for line := uint16(0); line < 8; line++ {
				c.drawHiresPixels(row*8+int(line), col*7, c.mem.PeekMain(addr+line*0x400))
			}
		}
	}
}

func (c *Console) drawHires80Column(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			if row >= 20 && sw.VideoMixed {
				addr := rowAddressMap[row] + uint16(col/2)
				if col%2 == 0 {
					c.drawChar(row+20, col, c.mem.PeekAux(addr), sw.VideoAltChar)
				} else {
					c.drawChar(row+20, col, c.mem.PeekMain(addr), sw.VideoAltChar)
				}
				continue
			}
			if col%2 != 0 {
				continue
			}
			addr := hiresRowAddressMap[row] + uint16(col/2)
			for line := uint16(0); line < 8; line++ {
				c.drawHiresPixels(row*8+int(line), (col/2)*7, c.mem.PeekMain(addr+line*0x400))
			}
		}
	}
}

func (c *Console) drawHiresDouble(sw memory.Switches) {
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			addr := rowAddressMap[row] + uint16(col/2)
			if row >= 20 && sw.VideoMixed {
				if col%2 == 0 {
					c.drawChar(row+20, col, c.mem.PeekAux(addr), sw.VideoAltChar)
				} else {
					c.drawChar(row+20, col, c.mem.PeekMain(addr), sw.VideoAltChar)
				}
				continue
			}
			hAddr := hiresRowAddressMap[row] + uint16(col/2)
			for line := uint16(0); line < 8; line++ {
				if col%2 == 0 {
					c.drawDoubleHiresPixels(row*8+int(line), col*7, c.mem.PeekAux(hAddr+line*0x400))
				} else {
					c.drawDoubleHiresPixels(row*8+int(line), col*7, c.mem.PeekMain(hAddr+line*0x400))
				}
			}
		}
	}
}
