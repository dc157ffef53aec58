/*
 * nakgpu - Three-input boolean truth tables used by Lop3/PLop3.
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

package ir

// LogicOp3 is a 3-input boolean truth table, encoded the way the hardware
// encodes it: each of the 8 rows of (x,y,z) selects one bit of Lut. Lut==0
// is constant-false; Lut==^uint8(0) is constant-true.
type LogicOp3 struct {
	Lut uint8
}

// SrcMasks gives the truth table of x, y, and z respectively: SrcMasks[0]
// is the LUT that reproduces source 0 unchanged, SrcMasks[1] source 1,
// SrcMasks[2] source 2.
var SrcMasks = [3]uint8{0xF0, 0xCC, 0xAA}

// LogicOp3FromFn builds a LogicOp3 from x/y/z truth values.
func LogicOp3FromFn(fn func(x, y, z bool) bool) LogicOp3 {
	var lut uint8
	for i := 0; i < 8; i++ {
		x := i&4 != 0
		y := i&2 != 0
		z := i&1 != 0
		if fn(x, y, z) {
			lut |= 1 << uint(i)
		}
	}
	return LogicOp3{Lut: lut}
}

// Eval applies the table to a triple of 32-bit words, lane by lane.
func (op LogicOp3) Eval(x, y, z uint32) uint32 {
	var out uint32
	for bit := 0; bit < 32; bit++ {
		xb := (x >> uint(bit)) & 1
		yb := (y >> uint(bit)) & 1
		zb := (z >> uint(bit)) & 1
		idx := (xb << 2) | (yb << 1) | zb
		if (op.Lut>>idx)&1 != 0 {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// And2, Or2, Xor2, and the unary/identity LUTs are the constants the SSA
// Builder's lop2/lop3 convenience emitters reach for.
var (
	LutSrc0   = LogicOp3{Lut: SrcMasks[0]}
	LutSrc1   = LogicOp3{Lut: SrcMasks[1]}
	LutSrc2   = LogicOp3{Lut: SrcMasks[2]}
	LutFalse  = LogicOp3{Lut: 0}
	LutTrue   = LogicOp3{Lut: ^uint8(0)}
	LutAnd2   = LogicOp3{Lut: SrcMasks[0] & SrcMasks[1]}
	LutOr2    = LogicOp3{Lut: SrcMasks[0] | SrcMasks[1]}
	LutXor2   = LogicOp3{Lut: SrcMasks[0] ^ SrcMasks[1]}
	LutXnor2  = LogicOp3{Lut: ^(SrcMasks[0] ^ SrcMasks[1])}
	LutNot0   = LogicOp3{Lut: ^SrcMasks[0]}
)
