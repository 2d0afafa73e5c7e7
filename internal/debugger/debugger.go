/*
 * a2e - Interactive debugger REPL.
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

// Package debugger implements the break-in command loop: q/h/c/s/w/f/
// t/d/a/m/b/r/i/z, read with github.com/peterh/liner so history and
// line editing work the way an interactive CLI tool should.
package debugger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/a2e/internal/acia"
	"github.com/rcornwell/a2e/internal/cpu"
	"github.com/rcornwell/a2e/internal/iwm"
	"github.com/rcornwell/a2e/internal/memory"
	"github.com/rcornwell/a2e/internal/trace"
	"github.com/rcornwell/a2e/util/hex"
)

// Debugger owns references into the running core; it never mutates
// anything the outer driver doesn't already expose through exported
// methods.
type Debugger struct {
	CPU   *cpu.CPU
	Mem   *memory.Memory
	IWM   *iwm.Controller
	Trace *trace.Buffer
	ACIA1 *acia.ACIA
	ACIA2 *acia.ACIA
	Warp  *bool

	breakpoint int32 // -1 means unset
	out        io.Writer
	line       *liner.State
}

// New returns a Debugger reading from stdin via liner and writing to
// stdout. Call Close when the process exits.
func New(cpuC *cpu.CPU, mem *memory.Memory, iwmC *iwm.Controller, tr *trace.Buffer, acia1, acia2 *acia.ACIA, warp *bool) *Debugger {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return &Debugger{
		CPU: cpuC, Mem: mem, IWM: iwmC, Trace: tr, ACIA1: acia1, ACIA2: acia2, Warp: warp,
		breakpoint: -1,
		out:        os.Stdout,
		line:       l,
	}
}

// Close releases the line editor's terminal state.
func (d *Debugger) Close() { d.line.Close() }

// Breakpoint reports the address set by the "b" command, if any.
func (d *Debugger) Breakpoint() (uint16, bool) {
	if d.breakpoint < 0 {
		return 0, false
	}
	return uint16(d.breakpoint), true
}

func (d *Debugger) help() {
	fmt.Fprint(d.out, `Debugger Commands:
  q               - Quit
  h               - Help
  c               - Continue
  s               - Step
  w               - Warp Mode Toggle
  f <file> [type] - Load Floppy Disk Image (type: 0=dos 1=prodos 2=raw)
  t               - Dump CPU Trace
  d <addr> [end]  - Dump Main RAM
  a <addr> [end]  - Dump Auxiliary RAM
  b <addr>        - CPU Breakpoint (no argument clears it)
  r               - CPU Reset
  i               - Dump IWM Status
  z               - Dump ACIA Status
`)
}

// Run drives one break-in session. It returns true if the caller
// should single-step exactly one instruction and re-enter the
// debugger, or false if it should resume free-running execution.
func (d *Debugger) Run() bool {
	fmt.Fprintln(d.out)
	for {
		prompt := fmt.Sprintf("$%04X> ", d.CPU.PC)
		input, err := d.line.Prompt(prompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				os.Exit(0)
			}
			continue
		}
		d.line.AppendHistory(input)

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		switch fields[0][0] {
		case 'q':
			os.Exit(0)
		case 'h', '?':
			d.help()
		case 'c':
			return false
		case 's':
			return true
		case 'w':
			*d.Warp = !*d.Warp
			if *d.Warp {
				fmt.Fprintln(d.out, "Warp Mode: On")
			} else {
				fmt.Fprintln(d.out, "Warp Mode: Off")
			}
		case 'f':
			d.loadDisk(fields)
		case 't':
			d.Trace.Dump(d.out)
		case 'd':
			d.dumpRange(fields, d.Mem.DumpMain)
		case 'a':
			d.dumpRange(fields, d.Mem.DumpAux)
		case 'm':
			d.dumpSwitches()
		case 'b':
			d.setBreakpoint(fields)
		case 'r':
			d.CPU.Reset(d.Mem)
		case 'i':
			d.dumpIWM()
		case 'z':
			d.dumpACIA()
		default:
			fmt.Fprintf(d.out, "Unknown command %q, 'h' for help\n", fields[0])
		}
	}
}

func (d *Debugger) loadDisk(fields []string) {
	if len(fields) < 2 {
		fmt.Fprintln(d.out, "Missing argument!")
		return
	}
	override, hasOverride := iwm.InterleaveRaw, false
	if len(fields) >= 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			fmt.Fprintln(d.out, "Invalid type argument!")
			return
		}
		override, hasOverride = iwm.Interleave(n), true
	}
	if err := d.IWM.LoadDisk(0, fields[1], override, hasOverride); err != nil {
		fmt.Fprintf(d.out, "Loading of disk image '%s' failed: %v\n", fields[1], err)
	}
}

func (d *Debugger) dumpRange(fields []string, dump func(start, end uint16) []byte) {
	if len(fields) < 2 {
		fmt.Fprintln(d.out, "Missing argument!")
		return
	}
	start, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		fmt.Fprintln(d.out, "Invalid address!")
		return
	}
	end := start + 0xFF
	if len(fields) >= 3 {
		end, err = strconv.ParseUint(fields[2], 16, 16)
		if err != nil {
			fmt.Fprintln(d.out, "Invalid address!")
			return
		}
	}
	if end > 0xFFFF {
		end = 0xFFFF
	}

	data := dump(uint16(start), uint16(end))
	var b strings.Builder
	for i, by := range data {
		if i%16 == 0 {
			if i != 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%04X: ", uint16(start)+uint16(i))
		}
		hex.FormatByte(&b, by)
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	fmt.Fprint(d.out, b.String())
}

func (d *Debugger) dumpSwitches() {
	sw := d.Mem.DumpSwitches()
	fmt.Fprintf(d.out, "store80=%v page2=%v hires=%v ram_rd=%v ram_wrt=%v alt_zp=%v "+
		"rom_bank=%v lcram=%v bnk2=%v wp=%v\n",
		sw.Store80, sw.Page2, sw.Hires, sw.RamRd, sw.RamWrt, sw.AltZP,
		sw.RomBank, sw.LCRam, sw.Bnk2, sw.WP)
	fmt.Fprintf(d.out, "video_80col=%v video_text=%v video_mixed=%v video_altchar=%v\n",
		sw.Video80Column, sw.VideoText, sw.VideoMixed, sw.VideoAltChar)
	fmt.Fprintf(d.out, "iou_disable=%v iou_dhires=%v\n", sw.IOUDisable, sw.IOUDHires)
}

func (d *Debugger) setBreakpoint(fields []string) {
	if len(fields) < 2 {
		if d.breakpoint < 0 {
			fmt.Fprintln(d.out, "Missing argument!")
		} else {
			fmt.Fprintf(d.out, "Breakpoint at $%04X removed.\n", d.breakpoint)
			d.breakpoint = -1
		}
		return
	}
	addr, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		fmt.Fprintln(d.out, "Invalid argument!")
		return
	}
	d.breakpoint = int32(addr)
	fmt.Fprintf(d.out, "Breakpoint at $%04X set.\n", d.breakpoint)
}

func (d *Debugger) dumpIWM() {
	for i, disk := range d.IWM.Disks {
		fmt.Fprintf(d.out, "drive %d: loaded=%v\n", i, disk.Loaded())
	}
	fmt.Fprintf(d.out, "current track: %d\n", d.IWM.CurrentTrack())
}

func (d *Debugger) dumpACIA() {
	if rate, ok := d.ACIA1.BaudRate(); ok {
		fmt.Fprintf(d.out, "acia1: baud=%d\n", rate)
	} else {
		fmt.Fprintln(d.out, "acia1: baud=unset")
	}
	if rate, ok := d.ACIA2.BaudRate(); ok {
		fmt.Fprintf(d.out, "acia2: baud=%d\n", rate)
	} else {
		fmt.Fprintln(d.out, "acia2: baud=unset")
	}
}
