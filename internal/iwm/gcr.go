/*
 * a2e - 6-and-2 GCR encoding: alphabet, odd-even fields, nibblization.
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

// gcrMap is the 64-entry 6-and-2 GCR alphabet: every byte here has its
// high bit set and never has more than two consecutive zero bits, so it
// can never be confused with a sync byte on the wire.
var gcrMap = [64]uint8{
	0x96, 0x97, 0x9A, 0x9B, 0x9D, 0x9E, 0x9F, 0xA6,
	0xA7, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF, 0xB2, 0xB3,
	0xB4, 0xB5, 0xB6, 0xB7, 0xB9, 0xBA, 0xBB, 0xBC,
	0xBD, 0xBE, 0xBF, 0xCB, 0xCD, 0xCE, 0xCF, 0xD3,
	0xD6, 0xD7, 0xD9, 0xDA, 0xDB, 0xDC, 0xDD, 0xDE,
	0xDF, 0xE5, 0xE6, 0xE7, 0xE9, 0xEA, 0xEB, 0xEC,
	0xED, 0xEE, 0xEF, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6,
	0xF7, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD, 0xFE, 0xFF,
}

// oddEvenEncode splits a byte into its odd-bit and even-bit disk nibbles,
// each OR'd onto 0xAA so the result always has its odd bit positions set.
func oddEvenEncode(b uint8) (odd, even uint8) {
	odd = 0xAA
	odd += (b >> 1) & 0x40
	odd += (b >> 1) & 0x10
	odd += (b >> 1) & 0x04
	odd += (b >> 1) & 0x01
	even = 0xAA
	even += b & 0x40
	even += b & 0x10
	even += b & 0x04
	even += b & 0x01
	return odd, even
}

// sectorToNibble scatters a 256-byte sector into 342 six-bit values: the
// high 6 bits of every byte land at nibble[86:342] in byte order, and
// the low 2 bits of every byte land three-per-nibble-byte across
// nibble[0:86], banded by which third of the sector the source byte
// came from.
func sectorToNibble(sector []uint8) []uint8 {
	nibble := make([]uint8, 342)
	for i := 0; i < 256; i++ {
		nibble[i+86] = sector[i] >> 2

		switch i / 86 {
		case 0:
			nibble[i%86] |= (sector[i] >> 1) & 0x01
			nibble[i%86] |= (sector[i] << 1) & 0x02
		case 1:
			nibble[i%86] |= (sector[i] << 1) & 0x04
			nibble[i%86] |= (sector[i] << 3) & 0x08
		case 2:
			nibble[i%86] |= (sector[i] << 3) & 0x10
			nibble[i%86] |= (sector[i] << 5) & 0x20
		}
	}
	return nibble
}
