package config

/*
 * a2e - config parser tests.
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
	"strings"
	"testing"

	"github.com/rcornwell/a2e/internal/iwm"
)

func TestParseBasicKeys(t *testing.T) {
	input := `# a2e config
rom = rom_ff.bin
disk0 = game.dsk
disk0_interleave = dos
debug_entry = true
`
	cfg, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ROM != "rom_ff.bin" {
		t.Errorf("ROM = %q", cfg.ROM)
	}
	if cfg.Disk0 != "game.dsk" || !cfg.Disk0Override || cfg.Disk0Interleave != iwm.InterleaveDOS {
		t.Errorf("disk0 fields wrong: %+v", cfg)
	}
	if !cfg.Debug {
		t.Errorf("debug_entry not applied")
	}
}

func TestParseBlankAndCommentLinesIgnored(t *testing.T) {
	input := "\n  # nothing here\n\nrom = x.bin\n"
	cfg, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ROM != "x.bin" {
		t.Errorf("ROM = %q", cfg.ROM)
	}
}

func TestParseUnknownKeyErrors(t *testing.T) {
	_, err := parse(strings.NewReader("bogus = 1\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseMissingEqualsErrors(t *testing.T) {
	_, err := parse(strings.NewReader("rom_ff.bin\n"))
	if err == nil {
		t.Fatal("expected error for missing '='")
	}
}
