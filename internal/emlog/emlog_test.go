package emlog

/*
 * a2e - emlog tests.
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
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, false)
	logger := slog.New(h)
	logger.Info("disk loaded", "path", "game.dsk")

	out := buf.String()
	if !strings.Contains(out, "disk loaded") || !strings.Contains(out, "game.dsk") {
		t.Errorf("log output missing expected content: %q", out)
	}
}

func TestNilFileDoesNotPanic(t *testing.T) {
	h := NewHandler(nil, nil, false)
	logger := slog.New(h)
	logger.Info("no file backing this logger")
}
