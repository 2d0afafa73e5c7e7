/*
 * a2e - Typed errors reported by the emulation core.
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

// Package coreerr defines the error kinds raised by the CPU, memory, and
// IWM packages. All of them are non-fatal: the caller (cmd/a2e or the
// debugger) decides whether to break into the debugger, reset, or carry
// on.
package coreerr

import "fmt"

// Kind identifies which of the core's recognized failure modes occurred.
type Kind int

const (
	// IOLoadFailed indicates a ROM or disk image could not be opened or read.
	IOLoadFailed Kind = iota
	// WriteProtected indicates a write to language-card RAM while wp was set.
	WriteProtected
	// UnimplementedOpcode indicates STP or WAI was executed.
	UnimplementedOpcode
	// SuspiciousCode indicates BBS7 encountered operand $FF $FF $FF.
	SuspiciousCode
	// DisksError indicates an invalid drive index on disk load.
	DisksError
)

func (k Kind) String() string {
	switch k {
	case IOLoadFailed:
		return "IOLoadFailed"
	case WriteProtected:
		return "WriteProtected"
	case UnimplementedOpcode:
		return "UnimplementedOpcode"
	case SuspiciousCode:
		return "SuspiciousCode"
	case DisksError:
		return "DisksError"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by the core for all non-fatal conditions.
type Error struct {
	Kind    Kind
	Message string
	Addr    uint16 // address involved, when applicable
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at $%04X: %s", e.Kind, e.Addr, e.Message)
}

// New constructs an Error of the given kind at the given address.
func New(kind Kind, addr uint16, message string) *Error {
	return &Error{Kind: kind, Message: message, Addr: addr}
}
