/*
 * a2e - Integrated Woz Machine: stepper motor, soft switches, disk read.
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

// Package iwm emulates the Integrated Woz Machine disk controller: the
// four-phase stepper motor that positions a drive's read head over one
// of 35 tracks, and the 6-and-2 GCR-encoded bitstream it plays back
// under $C0E0-$C0EF.
package iwm

import "github.com/rcornwell/a2e/internal/coreerr"

const stepperEnergyThreshold = 1000

// maxHalfTrack is the highest half-track the stepper can reach: 35
// tracks of 5.25" media, addressed in half-track units.
const maxHalfTrack = tracksPerDisk*2 - 1

// Controller is one IWM, driving up to two daisy-chained 5.25" drives.
type Controller struct {
	Disks [2]Disk

	ph0, ph1, ph2, ph3                 bool
	ph0Energy, ph1Energy, ph2Energy, ph3Energy uint32
	stepperPos int

	motorOn      bool
	driveSelect  bool
	l6, l7       bool
	data         uint8
	handshake    uint8
	status       uint8
	mode         uint8
}

// New returns an IWM controller with both drive bays empty.
func New() *Controller {
	return &Controller{}
}

// LoadDisk loads a disk image into drive (0 or 1). hasOverride/override
// force a specific interleave instead of auto-detection.
func (c *Controller) LoadDisk(drive int, path string, override Interleave, hasOverride bool) error {
	if drive != 0 && drive != 1 {
		return coreerr.New(coreerr.DisksError, 0, "invalid drive index")
	}
	return c.Disks[drive].Load(path, override, hasOverride)
}

// selectedDrive returns the index of the currently selected drive.
func (c *Controller) selectedDrive() int {
	if c.driveSelect {
		return 1
	}
	return 0
}

// CurrentTrack reports the selected drive's half-track position in
// whole tracks, for the debugger and status displays.
func (c *Controller) CurrentTrack() int {
	return c.stepperPos / 2
}

func (c *Controller) applySwitch(addr uint16) {
	switch addr {
	case 0xC0E0:
		c.ph0 = false
	case 0xC0E1:
		c.ph0 = true
	case 0xC0E2:
		c.ph1 = false
	case 0xC0E3:
		c.ph1 = true
	case 0xC0E4:
		c.ph2 = false
	case 0xC0E5:
		c.ph2 = true
	case 0xC0E6:
		c.ph3 = false
	case 0xC0E7:
		c.ph3 = true
	case 0xC0E8:
		c.motorOn = false
	case 0xC0E9:
		c.motorOn = true
	case 0xC0EA:
		c.driveSelect = false
	case 0xC0EB:
		c.driveSelect = true
	case 0xC0EC:
		c.l6 = false
	case 0xC0ED:
		c.l6 = true
	case 0xC0EE:
		c.l7 = false
	case 0xC0EF:
		c.l7 = true
	}
}

// ReadIO implements memory.Reader for $C0E0-$C0EF. Reads only occur on
// even addresses; odd addresses still apply the switch but return 0.
func (c *Controller) ReadIO(addr uint16) uint8 {
	c.applySwitch(addr)

	if addr&1 == 1 {
		return 0
	}

	switch {
	case !c.l6 && !c.l7:
		if !c.motorOn {
			return 0xFF
		}
		drive := c.selectedDrive()
		if !c.Disks[drive].Loaded() {
			return 0xFF
		}
		c.data = c.Disks[drive].spinRead()
		return c.data

	case !c.l6 && c.l7:
		return c.handshake

	case c.l6 && !c.l7:
		c.status = c.mode & 0x1F
		if c.motorOn {
			c.status |= 0x20
		}
		return c.status
	}

	return 0
}

// WriteIO implements memory.Writer for $C0E0-$C0EF. Writes only occur
// on odd addresses.
func (c *Controller) WriteIO(addr uint16, value uint8) {
	c.applySwitch(addr)

	if addr&1 == 0 {
		return
	}

	if c.l6 && c.l7 {
		if !c.motorOn {
			c.mode = value
		}
		// Writing data to the track is not modeled: this core is
		// read-only toward disk images.
	}
}

// Execute advances the stepper-motor energy model by one tick. Call it
// once per CPU cycle (or at whatever fixed rate the driver chooses);
// the 1000-tick energize threshold below assumes a call per cycle at a
// 1 MHz bus rate, matching the real drive's step timing.
func (c *Controller) Execute() {
	prevTrack := c.stepperPos / 2

	tick := func(active bool, energy *uint32) {
		if active {
			*energy++
		} else {
			*energy = 0
		}
	}
	tick(c.ph0, &c.ph0Energy)
	tick(c.ph1, &c.ph1Energy)
	tick(c.ph2, &c.ph2Energy)
	tick(c.ph3, &c.ph3Energy)

	switch c.stepperPos % 4 {
	case 0:
		if c.ph0Energy == 0 {
			if c.ph1Energy > stepperEnergyThreshold {
				c.stepperPos++
			} else if c.ph3Energy > stepperEnergyThreshold {
				c.stepperPos--
			}
		}
	case 1:
		if c.ph1Energy == 0 {
			if c.ph2Energy > stepperEnergyThreshold {
				c.stepperPos++
			} else if c.ph0Energy > stepperEnergyThreshold {
				c.stepperPos--
			}
		}
	case 2:
		if c.ph2Energy == 0 {
			if c.ph3Energy > stepperEnergyThreshold {
				c.stepperPos++
			} else if c.ph1Energy > stepperEnergyThreshold {
				c.stepperPos--
			}
		}
	case 3:
		if c.ph3Energy == 0 {
			if c.ph0Energy > stepperEnergyThreshold {
				c.stepperPos++
			} else if c.ph2Energy > stepperEnergyThreshold {
				c.stepperPos--
			}
		}
	}

	if c.stepperPos < 0 {
		c.stepperPos = 0
	} else if c.stepperPos > maxHalfTrack {
		c.stepperPos = maxHalfTrack
	}

	if c.motorOn && prevTrack != c.stepperPos/2 {
		// Reload the track for whichever drive is actually selected.
		// The original always reloaded drive 0's buffer here regardless
		// of drive_select, which meant drive 1 never saw a track change
		// after its initial load; a single shared stepper arm moving
		// two independent drives' heads makes more sense per-drive.
		drive := c.selectedDrive()
		if c.Disks[drive].Loaded() {
			c.Disks[drive].loadTrack(c.stepperPos / 2)
		}
	}
}
