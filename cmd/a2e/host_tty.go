/*
 * a2e - Host TTY bridge for ACIA 2.
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

package main

import (
	"os"
	"syscall"

	"golang.org/x/term"
)

// hostTTY bridges an ACIA to a real device file (a pty, a USB-serial
// node), putting it into raw mode for the duration so the guest
// software drives framing itself instead of the host line discipline.
type hostTTY struct {
	f     *os.File
	prior *term.State
}

func openHostTTY(path string) (*hostTTY, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	// Non-blocking: ACIA.Execute is polled from the single-threaded
	// instruction loop and must never suspend the CPU waiting for host
	// input (spec.md §5).
	_ = syscall.SetNonblock(int(f.Fd()), true)

	t := &hostTTY{f: f}
	if term.IsTerminal(int(f.Fd())) {
		prior, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			f.Close()
			return nil, err
		}
		t.prior = prior
	}
	return t, nil
}

func (t *hostTTY) Read(p []byte) (int, error)  { return t.f.Read(p) }
func (t *hostTTY) Write(p []byte) (int, error) { return t.f.Write(p) }

func (t *hostTTY) Close() error {
	if t.prior != nil {
		term.Restore(int(t.f.Fd()), t.prior)
	}
	return t.f.Close()
}
