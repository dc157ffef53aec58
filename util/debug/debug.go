/*
 * nakgpu - Trace-mask gated debug logging.
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
	"fmt"
	"log/slog"
)

// Mask is a bitmask of trace facilities. A facility's Debug records are
// emitted only when its bit is set in the configured mask passed to Tracef
// (the lowering Engine's CompileOptions.TraceMask).
type Mask uint32

const (
	TraceLower Mask = 1 << iota
	TraceSaturate
	TraceUnsupported
	TraceCopyProp
)

// Tracef emits a Debug-level record through log when bit is set in
// configured. log may be nil, in which case this is a no-op.
func Tracef(log *slog.Logger, configured, bit Mask, format string, a ...interface{}) {
	if log == nil || configured&bit == 0 {
		return
	}
	log.Debug(fmt.Sprintf(format, a...))
}
