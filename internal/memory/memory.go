/*
 * a2e - Bank-switched main memory and I/O page dispatch.
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

// Package memory implements the Apple //e address decode: flat main/aux
// RAM, a 32 KiB ROM, and the $C000-$C0FF soft-switch I/O page. Every CPU
// load and store passes through Read/Write; the soft-switch state stored
// here selects which bank a given address actually reaches.
package memory

import "github.com/rcornwell/a2e/internal/coreerr"

const (
	ramSize = 0x10000
	romSize = 0x8000

	ioBase = 0xC000
	ioTop  = 0xC0FF
)

// Reader is implemented by a peripheral that owns one or more addresses
// in the $C000-$C0FF I/O page.
type Reader interface {
	ReadIO(addr uint16) uint8
}

// Writer is implemented by a peripheral that owns one or more addresses
// in the $C000-$C0FF I/O page.
type Writer interface {
	WriteIO(addr uint16, value uint8)
}

// Switches holds every soft-switch flag named in spec.md's Data Model.
type Switches struct {
	Store80 bool
	Page2   bool
	Hires   bool
	RamRd   bool
	RamWrt  bool
	AltZP   bool
	RomBank bool
	LCRam   bool
	Bnk2    bool
	WP      bool

	RRExpect uint16

	Video80Column bool
	VideoText     bool
	VideoMixed    bool
	VideoAltChar  bool

	IOUDisable bool
	IOUDHires  bool
	IOUXYMask  bool
	IOUVBLMask bool
	IOUX0Edge  bool
	IOUY0Edge  bool
}

// Memory owns main/aux RAM, ROM, the soft-switch state, and the I/O
// dispatch table for $C000-$C0FF.
type Memory struct {
	main [ramSize]byte
	aux  [ramSize]byte
	rom  [romSize]byte

	Switches

	ioRead  [256]Reader
	ioWrite [256]Writer
}

// New returns a Memory with all built-in soft switches wired into the
// I/O dispatch table. Peripherals (IWM, ACIA, console) are registered
// afterward with RegisterIO by the outer driver.
func New() *Memory {
	m := &Memory{}
	bs := bankSelect{m}
	vid := video{m}
	iou := iouSwitches{m}
	for _, a := range []uint16{0x11, 0x12, 0x13, 0x14, 0x16, 0x18, 0x1C, 0x1D, 0x54, 0x55, 0x56, 0x57, 0x80, 0x81, 0x82, 0x83, 0x88, 0x89, 0x8A, 0x8B} {
		m.ioRead[a] = bs
	}
	for _, a := range []uint16{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x08, 0x09, 0x28, 0x54, 0x55, 0x56, 0x57, 0x80, 0x81, 0x82, 0x83, 0x88, 0x89, 0x8A, 0x8B} {
		m.ioWrite[a] = bs
	}
	for _, a := range []uint16{0x1A, 0x1B, 0x1E, 0x1F, 0x50, 0x51, 0x52, 0x53} {
		m.ioRead[a] = vid
	}
	for _, a := range []uint16{0x0C, 0x0D, 0x0E, 0x0F, 0x50, 0x51, 0x52, 0x53} {
		m.ioWrite[a] = vid
	}
	for _, a := range []uint16{0x40, 0x41, 0x42, 0x43, 0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F, 0x7E, 0x7F} {
		m.ioRead[a] = iou
	}
	for _, a := range []uint16{0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F, 0x7E, 0x7F} {
		m.ioWrite[a] = iou
	}
	return m
}

// RegisterIO wires a peripheral into one address of the I/O page. addr
// must be in $C000-$C0FF.
func (m *Memory) RegisterIO(addr uint16, r Reader, w Writer) {
	hook := addr - ioBase
	if r != nil {
		m.ioRead[hook] = r
	}
	if w != nil {
		m.ioWrite[hook] = w
	}
}

// LoadROM copies up to 32 KiB into the ROM image.
func (m *Memory) LoadROM(data []byte) {
	copy(m.rom[:], data)
}

// Read classifies addr into one of five regions and returns the byte
// seen there given the current soft-switch state.
func (m *Memory) Read(addr uint16) uint8 {
	switch {
	case addr < 0x0200:
		if m.AltZP {
			return m.aux[addr]
		}
		return m.main[addr]

	case addr < ioBase:
		if m.Store80 && addr >= 0x0400 && addr < 0x0800 {
			if m.Page2 {
				return m.aux[addr]
			}
			return m.main[addr]
		}
		if m.Store80 && addr >= 0x2000 && addr < 0x4000 {
			if m.Page2 && m.Hires {
				return m.aux[addr]
			}
			return m.main[addr]
		}
		if m.RamRd {
			return m.aux[addr]
		}
		return m.main[addr]

	case addr <= ioTop:
		hook := addr - ioBase
		if r := m.ioRead[hook]; r != nil {
			return r.ReadIO(addr)
		}
		return 0

	case addr < 0xD000:
		if !m.RomBank {
			return m.rom[addr-0xC000]
		}
		return m.rom[addr-0x8000]

	default:
		if !m.LCRam {
			if !m.RomBank {
				return m.rom[addr-0xC000]
			}
			return m.rom[addr-0x8000]
		}
		a := addr
		if a < 0xE000 && !m.Bnk2 {
			a -= 0x1000
		}
		if m.AltZP {
			return m.aux[a]
		}
		return m.main[a]
	}
}

// Write classifies addr the same way Read does and stores value, or
// drops it silently if the target region is read-only. A write to
// write-protected language-card RAM returns a *coreerr.Error instead of
// taking effect.
func (m *Memory) Write(addr uint16, value uint8) error {
	switch {
	case addr < 0x0200:
		if m.AltZP {
			m.aux[addr] = value
		} else {
			m.main[addr] = value
		}
		return nil

	case addr < ioBase:
		if m.Store80 && addr >= 0x0400 && addr < 0x0800 {
			if m.Page2 {
				m.aux[addr] = value
			} else {
				m.main[addr] = value
			}
			return nil
		}
		if m.Store80 && addr >= 0x2000 && addr < 0x4000 {
			if m.Page2 && m.Hires {
				m.aux[addr] = value
			} else {
				m.main[addr] = value
			}
			return nil
		}
		if m.RamWrt {
			m.aux[addr] = value
		} else {
			m.main[addr] = value
		}
		return nil

	case addr <= ioTop:
		hook := addr - ioBase
		if w := m.ioWrite[hook]; w != nil {
			w.WriteIO(addr, value)
		}
		return nil

	case addr < 0xD000:
		return nil // ROM, read-only

	default:
		if !m.LCRam {
			return nil // ROM, read-only
		}
		if m.WP {
			return coreerr.New(coreerr.WriteProtected, addr, "write to write-protected language-card RAM")
		}
		a := addr
		if a < 0xE000 && !m.Bnk2 {
			a -= 0x1000
		}
		if m.AltZP {
			m.aux[a] = value
		} else {
			m.main[a] = value
		}
		return nil
	}
}

// PeekMain reads one byte of main RAM directly, bypassing the
// store80/page2/ram_rd bank routing that Read applies. The console
// renderer uses this: it always knows which physical bank (main or
// aux) it wants, rather than which bank the CPU's current addressing
// mode would resolve to.
func (m *Memory) PeekMain(addr uint16) uint8 { return m.main[addr] }

// PeekAux reads one byte of aux RAM directly. See PeekMain.
func (m *Memory) PeekAux(addr uint16) uint8 { return m.aux[addr] }

// DumpMain returns a copy of main RAM between start and end, inclusive.
func (m *Memory) DumpMain(start, end uint16) []byte {
	return dumpRange(m.main[:], start, end)
}

// DumpAux returns a copy of aux RAM between start and end, inclusive.
func (m *Memory) DumpAux(start, end uint16) []byte {
	return dumpRange(m.aux[:], start, end)
}

// DumpSwitches returns a snapshot of the current soft-switch state.
func (m *Memory) DumpSwitches() Switches {
	return m.Switches
}

func dumpRange(src []byte, start, end uint16) []byte {
	if end < start {
		start, end = end, start
	}
	out := make([]byte, int(end)-int(start)+1)
	copy(out, src[start:int(end)+1])
	return out
}
