/*
 * a2e - Configuration file parser.
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

// Package config parses a2e.cfg: a small line-oriented "key = value"
// format, hand-rolled rather than built on a struct-tag marshaling
// library, following the same no-external-library approach the
// original configuration parser took for its own (considerably larger)
// device/model DSL.
//
// Format: '#' starts a comment to end of line; blank lines are
// ignored; every other line is "key = value" with whitespace trimmed
// from both sides.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/a2e/internal/iwm"
)

// Config holds every setting a2e.cfg or the equivalent CLI flags can
// supply. Zero values mean "not set"; cmd/a2e applies CLI overrides on
// top of whatever LoadFile returned.
type Config struct {
	ROM  string
	Log  string
	Debug bool

	Disk0           string
	Disk0Interleave iwm.Interleave
	Disk0Override   bool

	Disk1           string
	Disk1Interleave iwm.Interleave
	Disk1Override   bool

	TTYDevice string
}

// LoadFile parses path into a new Config. Unknown keys are reported as
// errors rather than silently ignored, matching the original parser's
// refusal to accept an unrecognized model/option name.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("config line %d: missing '=': %q", lineNo, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if err := cfg.applyKey(key, value, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyKey(key, value string, lineNo int) error {
	switch key {
	case "rom":
		cfg.ROM = value
	case "log":
		cfg.Log = value
	case "debug_entry":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config line %d: debug_entry: %w", lineNo, err)
		}
		cfg.Debug = b
	case "disk0":
		cfg.Disk0 = value
	case "disk0_interleave":
		il, err := parseInterleave(value)
		if err != nil {
			return fmt.Errorf("config line %d: %w", lineNo, err)
		}
		cfg.Disk0Interleave, cfg.Disk0Override = il, true
	case "disk1":
		cfg.Disk1 = value
	case "disk1_interleave":
		il, err := parseInterleave(value)
		if err != nil {
			return fmt.Errorf("config line %d: %w", lineNo, err)
		}
		cfg.Disk1Interleave, cfg.Disk1Override = il, true
	case "tty":
		cfg.TTYDevice = value
	default:
		return fmt.Errorf("config line %d: unknown key %q", lineNo, key)
	}
	return nil
}

func parseInterleave(value string) (iwm.Interleave, error) {
	switch strings.ToLower(value) {
	case "raw":
		return iwm.InterleaveRaw, nil
	case "dos":
		return iwm.InterleaveDOS, nil
	case "prodos":
		return iwm.InterleaveProDOS, nil
	default:
		return 0, fmt.Errorf("unknown interleave %q (want raw, dos, or prodos)", value)
	}
}
