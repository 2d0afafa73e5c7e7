/*
 * a2e - Disk images: interleave, track nibblization, auto-detection.
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

package iwm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rcornwell/a2e/internal/coreerr"
)

// Interleave identifies which logical-to-physical sector map a 5.25"
// image was imaged with.
type Interleave int

const (
	InterleaveDOS Interleave = iota
	InterleaveProDOS
	InterleaveRaw
)

const (
	sectorsPerTrack = 16
	sectorSize      = 256
	tracksPerDisk   = 35
	diskSize        = tracksPerDisk * sectorsPerTrack * sectorSize // 143360
	trackBytes      = sectorsPerTrack * (3 + 8 + 3 + 3 + 343 + 3)  // 5808
)

var interleaveDOS = [sectorsPerTrack]int{
	0x0, 0x7, 0xE, 0x6, 0xD, 0x5, 0xC, 0x4,
	0xB, 0x3, 0xA, 0x2, 0x9, 0x1, 0x8, 0xF,
}

var interleaveProDOS = [sectorsPerTrack]int{
	0x0, 0x8, 0x1, 0x9, 0x2, 0xA, 0x3, 0xB,
	0x4, 0xC, 0x5, 0xD, 0x6, 0xE, 0x7, 0xF,
}

// Disk is one 140 KiB 5.25" floppy image: the raw sector data, the
// interleave it was written with, and the nibblized track currently
// spinning under the head.
type Disk struct {
	data []uint8
	track [trackBytes]uint8
	trackPos int

	loaded       bool
	writeProtect bool
	interleave   Interleave
	volumeNo     uint8
}

// Loaded reports whether an image is currently in the drive.
func (d *Disk) Loaded() bool { return d.loaded }

// Load reads path into the disk image, auto-detecting interleave from
// the file extension or boot-sector signature unless override is given.
func (d *Disk) Load(path string, override Interleave, hasOverride bool) error {
	d.loaded = false

	raw, err := os.ReadFile(path)
	if err != nil {
		return coreerr.New(coreerr.IOLoadFailed, 0, "reading disk image "+path+": "+err.Error())
	}

	d.data = make([]uint8, diskSize)
	n := copy(d.data, raw)
	if n < diskSize {
		// Short images are zero-padded rather than rejected: many
		// legitimate DOS 3.3 images omit trailing unused tracks.
	}

	if hasOverride {
		d.interleave = override
	} else {
		d.interleave = detectInterleave(path, d.data)
	}

	d.volumeNo = 254
	if d.interleave == InterleaveDOS {
		d.volumeNo = d.data[0x11006]
	}

	d.loadTrack(0)
	d.loaded = true
	return nil
}

func detectInterleave(path string, data []uint8) Interleave {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".do":
		return InterleaveDOS
	case ".po":
		return InterleaveProDOS
	}

	if len(data) >= 5 {
		if data[0] == 0x01 && data[1] == 0xA5 && data[2] == 0x27 && data[3] == 0xC9 && data[4] == 0x09 {
			return InterleaveDOS
		}
		if data[0] == 0x01 && data[1] == 0x38 && data[2] == 0xB0 && data[3] == 0x03 && data[4] == 0x4C {
			return InterleaveProDOS
		}
	}
	return InterleaveRaw
}

// loadTrack nibblizes the 16 sectors of trackNo into d.track, resetting
// the read head to the start of the track.
func (d *Disk) loadTrack(trackNo int) {
	pos := 0
	for sectorNo := 0; sectorNo < sectorsPerTrack; sectorNo++ {
		d.track[pos] = 0xD5
		d.track[pos+1] = 0xAA
		d.track[pos+2] = 0x96
		pos += 3

		vOdd, vEven := oddEvenEncode(d.volumeNo)
		tOdd, tEven := oddEvenEncode(uint8(trackNo))
		sOdd, sEven := oddEvenEncode(uint8(sectorNo))
		cOdd, cEven := oddEvenEncode(d.volumeNo ^ uint8(trackNo) ^ uint8(sectorNo))
		d.track[pos], d.track[pos+1] = vOdd, vEven
		d.track[pos+2], d.track[pos+3] = tOdd, tEven
		d.track[pos+4], d.track[pos+5] = sOdd, sEven
		d.track[pos+6], d.track[pos+7] = cOdd, cEven
		pos += 8

		d.track[pos] = 0xDE
		d.track[pos+1] = 0xAA
		d.track[pos+2] = 0xEB
		pos += 3

		d.track[pos] = 0xD5
		d.track[pos+1] = 0xAA
		d.track[pos+2] = 0xAD
		pos += 3

		logicalSector := sectorNo
		switch d.interleave {
		case InterleaveDOS:
			logicalSector = interleaveDOS[sectorNo]
		case InterleaveProDOS:
			logicalSector = interleaveProDOS[sectorNo]
		}
		offset := trackNo*sectorsPerTrack*sectorSize + logicalSector*sectorSize
		nibble := sectorToNibble(d.data[offset : offset+sectorSize])

		var checksum uint8
		for i := 0; i < 342; i++ {
			d.track[pos] = gcrMap[checksum^nibble[i]]
			checksum = nibble[i]
			pos++
		}
		d.track[pos] = gcrMap[checksum]
		pos++

		d.track[pos] = 0xDE
		d.track[pos+1] = 0xAA
		d.track[pos+2] = 0xEB
		pos += 3
	}
	d.trackPos = 0
}

// spinRead returns the next byte under the head and advances the
// rotational position, wrapping at the end of the track.
func (d *Disk) spinRead() uint8 {
	b := d.track[d.trackPos]
	d.trackPos++
	if d.trackPos >= trackBytes {
		d.trackPos = 0
	}
	return b
}
