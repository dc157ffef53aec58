/*
 * nakgpu - Trace-mask gated debug logging tests.
 *
 * Copyright 2026, Richard Cornwell
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

package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h)
}

func TestTracefGatedByMask(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	Tracef(log, TraceLower, TraceSaturate, "should not appear")
	if buf.Len() != 0 {
		t.Errorf("got: %q expected: no output when bit is not set in mask", buf.String())
	}

	Tracef(log, TraceLower, TraceLower, "lowering %s", "fadd")
	if !strings.Contains(buf.String(), "lowering fadd") {
		t.Errorf("got: %q expected a record containing %q", buf.String(), "lowering fadd")
	}
}

func TestTracefNilLogger(t *testing.T) {
	// Must not panic.
	Tracef(nil, TraceLower, TraceLower, "anything")
}
