/*
 * a2e - Main process: CLI parsing, peripheral wiring, instruction loop.
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

// Command a2e drives the emulation core end to end: it parses CLI
// flags and an optional config file, constructs memory/CPU/IWM/ACIA/
// console, wires the peripherals into memory's I/O table, and runs the
// cooperative instruction loop spec.md §9 describes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/a2e/internal/acia"
	"github.com/rcornwell/a2e/internal/config"
	"github.com/rcornwell/a2e/internal/console"
	"github.com/rcornwell/a2e/internal/cpu"
	"github.com/rcornwell/a2e/internal/debugger"
	"github.com/rcornwell/a2e/internal/emlog"
	"github.com/rcornwell/a2e/internal/iwm"
	"github.com/rcornwell/a2e/internal/memory"
	"github.com/rcornwell/a2e/internal/trace"
)

const defaultROM = "rom_ff.bin"

func main() {
	optConfig := getopt.StringLong("config", 'c', "a2e.cfg", "Configuration file")
	optROM := getopt.StringLong("rom", 'r', "", "ROM image (overrides config/default)")
	optDisk0 := getopt.StringLong("disk0", '0', "", "Floppy image for drive 0")
	optDisk1 := getopt.StringLong("disk1", '1', "", "Floppy image for drive 1")
	optInterleave0 := getopt.StringLong("interleave0", 0, "", "Force drive 0 interleave (raw|dos|prodos)")
	optInterleave1 := getopt.StringLong("interleave1", 0, "", "Force drive 1 interleave (raw|dos|prodos)")
	optTTY := getopt.StringLong("tty", 's', "", "Host TTY device bridged to ACIA 2")
	optWarp := getopt.BoolLong("warp", 'w', "Run at full host speed, skipping the pacing stall")
	optDebug := getopt.BoolLong("debug", 'd', "Break into the debugger on start")
	optLog := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Display this help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := &config.Config{}
	if _, err := os.Stat(*optConfig); err == nil {
		loaded, err := config.LoadFile(*optConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlagOverrides(cfg, *optROM, *optDisk0, *optDisk1, *optInterleave0, *optInterleave1, *optTTY, *optDebug)

	logPath := cfg.Log
	if *optLog != "" {
		logPath = *optLog
	}
	var logFile *os.File
	if logPath != "" {
		logFile, _ = os.Create(logPath)
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(emlog.NewHandler(logFile, &slog.HandlerOptions{Level: level}, cfg.Debug)))
	slog.Info("a2e started")

	romPath := cfg.ROM
	if romPath == "" {
		romPath = defaultROM
	}

	mem := memory.New()
	rom, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading ROM %q failed: %v\n", romPath, err)
		os.Exit(1)
	}
	mem.LoadROM(rom)

	iwmCtrl := iwm.New()
	for addr := uint16(0xC0E0); addr <= 0xC0EF; addr++ {
		mem.RegisterIO(addr, iwmCtrl, iwmCtrl)
	}
	if cfg.Disk0 != "" {
		if err := iwmCtrl.LoadDisk(0, cfg.Disk0, cfg.Disk0Interleave, cfg.Disk0Override); err != nil {
			fmt.Fprintf(os.Stderr, "loading disk image %q failed: %v\n", cfg.Disk0, err)
			os.Exit(1)
		}
	}
	if cfg.Disk1 != "" {
		if err := iwmCtrl.LoadDisk(1, cfg.Disk1, cfg.Disk1Interleave, cfg.Disk1Override); err != nil {
			fmt.Fprintf(os.Stderr, "loading disk image %q failed: %v\n", cfg.Disk1, err)
			os.Exit(1)
		}
	}

	acia1 := acia.New(0xC098, nil) // internal/unused slot, matches main.c's acia1
	var acia2TTY *hostTTY
	if cfg.TTYDevice != "" {
		acia2TTY, err = openHostTTY(cfg.TTYDevice)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening TTY %q failed: %v\n", cfg.TTYDevice, err)
			os.Exit(1)
		}
		defer acia2TTY.Close()
	}
	var acia2 *acia.ACIA
	if acia2TTY != nil {
		acia2 = acia.New(0xC0A8, acia2TTY)
	} else {
		acia2 = acia.New(0xC0A8, nil)
	}
	mem.RegisterIO(0xC098, acia1, acia1)
	mem.RegisterIO(0xC099, acia1, acia1)
	mem.RegisterIO(0xC09A, acia1, acia1)
	mem.RegisterIO(0xC09B, acia1, acia1)
	mem.RegisterIO(0xC0A8, acia2, acia2)
	mem.RegisterIO(0xC0A9, acia2, acia2)
	mem.RegisterIO(0xC0AA, acia2, acia2)
	mem.RegisterIO(0xC0AB, acia2, acia2)

	cpuCore := cpu.New()

	warp := *optWarp
	debuggerBreak := cfg.Debug

	consoleDev, err := console.New(mem, func() { cpuCore.Reset(mem) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing console failed: %v\n", err)
		os.Exit(1)
	}
	defer consoleDev.Close()

	tr := trace.New()
	dbg := debugger.New(cpuCore, mem, iwmCtrl, tr, acia1, acia2, &warp)
	defer dbg.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)

	cpuCore.Reset(mem)

	count := 0
	for {
		select {
		case <-sigChan:
			debuggerBreak = true
		default:
		}

		tr.Add(cpuCore.Snapshot(), mem)
		cycles, stepErr := cpuCore.Step(mem)

		for i := uint64(0); i < cycles; i++ {
			acia1.Execute()
			acia2.Execute()
			iwmCtrl.Execute()
			consoleDev.Execute()
			count++
		}

		if stepErr != nil {
			slog.Warn("cpu step raised error", "err", stepErr, "pc", cpuCore.PC)
			debuggerBreak = true
		}
		if bp, ok := dbg.Breakpoint(); ok && bp == cpuCore.PC {
			debuggerBreak = true
		}
		if cpuCore.Halted() {
			debuggerBreak = true
		}

		if debuggerBreak {
			consoleDev.Pause()
			debuggerBreak = dbg.Run()
			if !debuggerBreak {
				if err := consoleDev.Resume(); err != nil {
					fmt.Fprintf(os.Stderr, "resuming console failed: %v\n", err)
					os.Exit(1)
				}
			}
		}

		if !warp && count > 10230 {
			count = 0
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func applyFlagOverrides(cfg *config.Config, rom, disk0, disk1, interleave0, interleave1, tty string, debug bool) {
	if rom != "" {
		cfg.ROM = rom
	}
	if disk0 != "" {
		cfg.Disk0 = disk0
	}
	if disk1 != "" {
		cfg.Disk1 = disk1
	}
	if il, ok := parseInterleaveFlag(interleave0); ok {
		cfg.Disk0Interleave, cfg.Disk0Override = il, true
	}
	if il, ok := parseInterleaveFlag(interleave1); ok {
		cfg.Disk1Interleave, cfg.Disk1Override = il, true
	}
	if tty != "" {
		cfg.TTYDevice = tty
	}
	if debug {
		cfg.Debug = true
	}
}

func parseInterleaveFlag(s string) (iwm.Interleave, bool) {
	switch s {
	case "raw":
		return iwm.InterleaveRaw, true
	case "dos":
		return iwm.InterleaveDOS, true
	case "prodos":
		return iwm.InterleaveProDOS, true
	default:
		return 0, false
	}
}
