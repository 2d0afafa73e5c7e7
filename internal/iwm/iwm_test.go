package iwm

/*
 * a2e - IWM tests.
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
	"os"
	"path/filepath"
	"testing"
)

func TestGCRAlphabetHasNoLowByte(t *testing.T) {
	seen := map[uint8]bool{}
	for _, b := range gcrMap {
		if b&0x80 == 0 {
			t.Errorf("gcr byte %#x missing high bit", b)
		}
		if seen[b] {
			t.Errorf("duplicate gcr byte %#x", b)
		}
		seen[b] = true
	}
}

func TestOddEvenEncodeRoundTrips(t *testing.T) {
	for b := 0; b < 256; b++ {
		odd, even := oddEvenEncode(uint8(b))
		// Reassemble: odd nibble carries bits 7,5,3,1 into 6,4,2,0 shifted up;
		// even nibble carries bits 6,4,2,0 directly.
		got := ((odd & 0x40) << 1) | ((odd & 0x10) << 1) | ((odd & 0x04) << 1) | ((odd & 0x01) << 1) |
			(even & 0x40) | (even & 0x10) | (even & 0x04) | (even & 0x01)
		if got != uint8(b) {
			t.Fatalf("byte %#x: odd=%#x even=%#x reassembled to %#x", b, odd, even, got)
		}
	}
}

func TestSectorToNibbleCoversAllBytes(t *testing.T) {
	sector := make([]uint8, 256)
	for i := range sector {
		sector[i] = uint8(i)
	}
	nibble := sectorToNibble(sector)
	if len(nibble) != 342 {
		t.Fatalf("got %d nibbles, want 342", len(nibble))
	}
	for _, v := range nibble {
		if v > 0x3F {
			t.Fatalf("nibble value %#x exceeds 6 bits", v)
		}
	}
}

func TestLoadTrackPrologueAndEpilogue(t *testing.T) {
	d := &Disk{data: make([]uint8, diskSize), interleave: InterleaveRaw}
	d.loadTrack(0)
	if d.track[0] != 0xD5 || d.track[1] != 0xAA || d.track[2] != 0x96 {
		t.Errorf("address prologue = %#x %#x %#x", d.track[0], d.track[1], d.track[2])
	}
	addrEpilogueOffset := 3 + 8
	if d.track[addrEpilogueOffset] != 0xDE || d.track[addrEpilogueOffset+1] != 0xAA || d.track[addrEpilogueOffset+2] != 0xEB {
		t.Errorf("address epilogue at offset %d wrong", addrEpilogueOffset)
	}
	dataPrologueOffset := 3 + 8 + 3
	if d.track[dataPrologueOffset] != 0xD5 || d.track[dataPrologueOffset+1] != 0xAA || d.track[dataPrologueOffset+2] != 0xAD {
		t.Errorf("data prologue at offset %d wrong", dataPrologueOffset)
	}
}

func TestStepperMovesAfterEnergyThreshold(t *testing.T) {
	c := New()
	c.motorOn = true
	c.Disks[0].data = make([]uint8, diskSize)
	c.Disks[0].loaded = true
	c.ph1 = true
	for i := 0; i < stepperEnergyThreshold+1; i++ {
		c.Execute()
	}
	if c.stepperPos != 1 {
		t.Errorf("stepperPos = %d, want 1 (one half-track step)", c.stepperPos)
	}
}

func TestMotorOffReadsFF(t *testing.T) {
	c := New()
	if got := c.ReadIO(0xC0E0); got != 0xFF {
		t.Errorf("got %#x, want 0xFF with motor off", got)
	}
}

func TestDetectInterleaveByExtension(t *testing.T) {
	if got := detectInterleave("game.do", nil); got != InterleaveDOS {
		t.Errorf("got %v, want InterleaveDOS", got)
	}
	if got := detectInterleave("game.po", nil); got != InterleaveProDOS {
		t.Errorf("got %v, want InterleaveProDOS", got)
	}
}

func TestLoadDefaultsVolumeNoTo254WhenNotDOS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.po")
	if err := os.WriteFile(path, make([]uint8, diskSize), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	d := &Disk{}
	if err := d.Load(path, 0, false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.volumeNo != 254 {
		t.Errorf("volumeNo = %d, want 254", d.volumeNo)
	}
}

func TestDetectInterleaveBySignature(t *testing.T) {
	data := make([]uint8, 16)
	data[0], data[1], data[2], data[3], data[4] = 0x01, 0xA5, 0x27, 0xC9, 0x09
	if got := detectInterleave("image.dsk", data); got != InterleaveDOS {
		t.Errorf("got %v, want InterleaveDOS", got)
	}
}
