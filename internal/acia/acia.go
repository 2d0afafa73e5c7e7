/*
 * a2e - 6551 ACIA: a 4-register serial adapter bridged to a host TTY.
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

// Package acia emulates a 6551 Asynchronous Communications Interface
// Adapter: a four-register memory-mapped UART, FIFO-buffered in both
// directions and bridged onto a real file descriptor (a pty or serial
// device) so software expecting a modem or printer card can talk to it.
package acia

import (
	"io"

	"golang.org/x/term"
)

const (
	rxFIFOSize = 256
	txFIFOSize = 256

	statusRxFull  = 0x08
	statusTxEmpty = 0x10

	// executeCyclesPerPoll matches the original's "every 1000 cycles"
	// throttle so the host TTY isn't polled once per CPU cycle.
	executeCyclesPerPoll = 1000
)

type ringBuffer struct {
	buf        [256]uint8
	head, tail int
}

func (r *ringBuffer) write(b uint8) bool {
	next := (r.head + 1) % len(r.buf)
	if next == r.tail {
		return false // full
	}
	r.buf[r.head] = b
	r.head = next
	return true
}

func (r *ringBuffer) read() (uint8, bool) {
	if r.tail == r.head {
		return 0, false // empty
	}
	b := r.buf[r.tail]
	r.tail = (r.tail + 1) % len(r.buf)
	return b, true
}

func (r *ringBuffer) empty() bool { return r.tail == r.head }

// ACIA is one 6551 instance, occupying four consecutive I/O addresses.
type ACIA struct {
	base uint16

	rx, tx ringBuffer

	status  uint8
	command uint8
	control uint8

	cycle uint32

	tty       io.ReadWriter
	priorMode *term.State
}

// New returns an ACIA mapped at base (base+0 .. base+3). tty, when
// non-nil, is bridged in both directions by Execute; it is typically a
// pty opened by the caller with golang.org/x/term already put into raw
// mode, since the guest expects to drive framing and flow control
// itself.
func New(base uint16, tty io.ReadWriter) *ACIA {
	return &ACIA{base: base, status: statusTxEmpty, tty: tty}
}

// ReadIO implements memory.Reader across the four ACIA registers.
func (a *ACIA) ReadIO(addr uint16) uint8 {
	switch addr - a.base {
	case 0:
		b, ok := a.rx.read()
		if !ok {
			return 0
		}
		if a.rx.empty() {
			a.status &^= statusRxFull
		}
		return b
	case 1:
		return a.status
	case 2:
		return a.command
	case 3:
		return a.control
	default:
		return 0
	}
}

// WriteIO implements memory.Writer across the four ACIA registers.
func (a *ACIA) WriteIO(addr uint16, value uint8) {
	switch addr - a.base {
	case 0:
		a.tx.write(value)
	case 1:
		a.command &^= 0x1F
	case 2:
		a.command = value
	case 3:
		a.control = value
	}
}

// Execute drains one byte to the host TTY and admits one from it, but
// only once every executeCyclesPerPoll calls; call it once per CPU
// cycle from the driver loop.
func (a *ACIA) Execute() {
	if a.tty == nil {
		return
	}
	a.cycle++
	if a.cycle < executeCyclesPerPoll {
		return
	}
	a.cycle = 0

	var in [1]byte
	if n, err := a.tty.Read(in[:]); err == nil && n == 1 {
		if a.rx.write(in[0]) {
			a.status |= statusRxFull
		}
	}

	if b, ok := a.tx.read(); ok {
		a.tty.Write([]byte{b})
	}
}

// baudRate maps the control register's low nibble to a termios speed
// the way the original's cfsetispeed/cfsetospeed table did. It is
// exposed through BaudRate so the debugger can report the configured
// rate; no rate is applied to the host TTY.
func baudRate(control uint8) (rate int, ok bool) {
	switch control & 0xF {
	case 0b0110:
		return 300, true
	case 0b0111:
		return 600, true
	case 0b1000:
		return 1200, true
	case 0b1010:
		return 2400, true
	case 0b1100:
		return 4800, true
	case 0b1110:
		return 9600, true
	case 0b1111:
		return 19200, true
	default:
		return 0, false
	}
}

// BaudRate reports the currently configured baud rate, if the control
// register names one of the seven recognized settings.
func (a *ACIA) BaudRate() (int, bool) {
	return baudRate(a.control)
}
