/*
 * a2e - Built-in $C000-$C0FF soft switches (bank select, video, IOU).
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

package memory

// bankSelect implements the $C000-$C00F bank switches (80STORE, RAMRD,
// RAMWRT, ALTZP) and the $C080-$C08B language-card family, plus the
// handful of display-page switches that read through the same status
// bits as the language-card group ($C018, $C01C, $C01D, $C054-$C057).
type bankSelect struct {
	m *Memory
}

func (b bankSelect) ReadIO(addr uint16) uint8 {
	switch addr {
	case 0xC011:
		return boolBit(b.m.Bnk2)
	case 0xC012:
		return boolBit(b.m.LCRam)
	case 0xC013:
		return boolBit(b.m.RamRd)
	case 0xC014:
		return boolBit(b.m.RamWrt)
	case 0xC016:
		return boolBit(b.m.AltZP)
	case 0xC018:
		return boolBit(b.m.Store80)
	case 0xC01C:
		return boolBit(b.m.Page2)
	case 0xC01D:
		return boolBit(b.m.Hires)

	case 0xC054:
		b.m.Page2 = false
		b.m.clearUnlock()
		return 0
	case 0xC055:
		b.m.Page2 = true
		b.m.clearUnlock()
		return 0
	case 0xC056:
		b.m.Hires = false
		b.m.clearUnlock()
		return 0
	case 0xC057:
		b.m.Hires = true
		b.m.clearUnlock()
		return 0

	case 0xC080:
		b.m.LCRam, b.m.Bnk2, b.m.WP = true, true, true
		b.m.clearUnlock()
		return 0
	case 0xC081:
		b.m.LCRam, b.m.Bnk2 = false, true
		b.m.unlock(addr)
		return 0
	case 0xC082:
		b.m.LCRam, b.m.Bnk2, b.m.WP = false, true, true
		b.m.clearUnlock()
		return 0
	case 0xC083:
		b.m.LCRam, b.m.Bnk2 = true, true
		b.m.unlock(addr)
		return 0
	case 0xC088:
		b.m.LCRam, b.m.Bnk2, b.m.WP = true, false, true
		b.m.clearUnlock()
		return 0
	case 0xC089:
		b.m.LCRam, b.m.Bnk2 = false, false
		b.m.unlock(addr)
		return 0
	case 0xC08A:
		b.m.LCRam, b.m.Bnk2, b.m.WP = false, false, true
		b.m.clearUnlock()
		return 0
	case 0xC08B:
		b.m.LCRam, b.m.Bnk2 = true, false
		b.m.unlock(addr)
		return 0

	default:
		return 0
	}
}

func (b bankSelect) WriteIO(addr uint16, _ uint8) {
	switch addr {
	case 0xC000:
		b.m.Store80 = false
	case 0xC001:
		b.m.Store80 = true
	case 0xC002:
		b.m.RamRd = false
	case 0xC003:
		b.m.RamRd = true
	case 0xC004:
		b.m.RamWrt = false
	case 0xC005:
		b.m.RamWrt = true
	case 0xC008:
		b.m.AltZP = false
	case 0xC009:
		b.m.AltZP = true
	case 0xC028:
		b.m.RomBank = !b.m.RomBank
	case 0xC054, 0xC055, 0xC056, 0xC057,
		0xC080, 0xC081, 0xC082, 0xC083,
		0xC088, 0xC089, 0xC08A, 0xC08B:
		// Writes to these pass through as a read.
		b.ReadIO(addr)
		return
	default:
		return
	}
	b.m.clearUnlock()
}

// unlock implements the language-card two-reads-in-a-row rule: wp only
// clears when the same address is touched twice consecutively.
func (m *Memory) unlock(addr uint16) {
	if m.RRExpect == addr {
		m.WP = false
	} else {
		m.WP = true
		m.RRExpect = addr
	}
}

// clearUnlock resets the two-read latch; called by the other bankSelect
// switches ($C000-$C009 and $C028 writes, $C054-$C057, and
// $C080/C082/C088/C08A). The status reads and the video and IOU switches
// leave the latch as it is.
func (m *Memory) clearUnlock() {
	m.RRExpect = 0
}

func boolBit(b bool) uint8 {
	if b {
		return 0x80
	}
	return 0
}

// video implements the $C00C-$C00F write-only switches, the $C050-$C053
// read/write-pass-through switches, and the $C01A/$C01B/$C01E/$C01F
// status reads.
type video struct {
	m *Memory
}

func (v video) ReadIO(addr uint16) uint8 {
	switch addr {
	case 0xC01A:
		return boolBit(v.m.VideoText)
	case 0xC01B:
		return boolBit(v.m.VideoMixed)
	case 0xC01E:
		return boolBit(v.m.VideoAltChar)
	case 0xC01F:
		return boolBit(v.m.Video80Column)
	case 0xC050, 0xC051, 0xC052, 0xC053:
		v.WriteIO(addr, 0)
		return 0
	default:
		return 0
	}
}

func (v video) WriteIO(addr uint16, _ uint8) {
	switch addr {
	case 0xC00C:
		v.m.Video80Column = false
	case 0xC00D:
		v.m.Video80Column = true
	case 0xC00E:
		v.m.VideoAltChar = false
	case 0xC00F:
		v.m.VideoAltChar = true
	case 0xC050:
		v.m.VideoText = false
	case 0xC051:
		v.m.VideoText = true
	case 0xC052:
		v.m.VideoMixed = false
	case 0xC053:
		v.m.VideoMixed = true
	}
}

// iouSwitches implements the IOU at $C040-$C043, $C058-$C05F, and
// $C07E/$C07F. When iou_disable is set, $C05E/$C05F control DHIRES
// instead of the Y0 edge latch.
type iouSwitches struct {
	m *Memory
}

func (io iouSwitches) ReadIO(addr uint16) uint8 {
	switch addr {
	case 0xC040:
		return boolBit(io.m.IOUXYMask)
	case 0xC041:
		return boolBit(io.m.IOUVBLMask)
	case 0xC042:
		return boolBit(io.m.IOUX0Edge)
	case 0xC043:
		return boolBit(io.m.IOUY0Edge)
	case 0xC07E:
		return boolBit(io.m.IOUDisable)
	case 0xC07F:
		return boolBit(!io.m.IOUDHires) // inverted
	case 0xC058, 0xC059, 0xC05A, 0xC05B, 0xC05C, 0xC05D, 0xC05E, 0xC05F:
		io.WriteIO(addr, 0)
		return 0
	default:
		return 0
	}
}

func (io iouSwitches) WriteIO(addr uint16, _ uint8) {
	switch addr {
	case 0xC058:
		if !io.m.IOUDisable {
			io.m.IOUXYMask = false
		}
	case 0xC059:
		if !io.m.IOUDisable {
			io.m.IOUXYMask = true
		}
	case 0xC05A:
		if !io.m.IOUDisable {
			io.m.IOUVBLMask = false
		}
	case 0xC05B:
		if !io.m.IOUDisable {
			io.m.IOUVBLMask = true
		}
	case 0xC05C:
		if !io.m.IOUDisable {
			io.m.IOUX0Edge = false
		}
	case 0xC05D:
		if !io.m.IOUDisable {
			io.m.IOUX0Edge = true
		}
	case 0xC05E:
		if !io.m.IOUDisable {
			io.m.IOUY0Edge = false
		} else {
			io.m.IOUDHires = true
		}
	case 0xC05F:
		if !io.m.IOUDisable {
			io.m.IOUY0Edge = true
		} else {
			io.m.IOUDHires = false
		}
	case 0xC07E:
		io.m.IOUDisable = true
	case 0xC07F:
		io.m.IOUDisable = false
	}
}
