/*
 * nakgpu - Source operand modifiers and their composition.
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

// SrcMod is the cheap per-source transformation the hardware applies
// in-flight when an operand is fetched. The six variants span three disjoint
// families (float abs/neg, integer negate, boolean not); a source can only
// ever carry a modifier from one family at a time.
type SrcMod uint8

const (
	ModNone SrcMod = iota
	ModFAbs
	ModFNeg
	ModFNegAbs
	ModINeg
	ModBNot
)

func (m SrcMod) String() string {
	switch m {
	case ModNone:
		return ""
	case ModFAbs:
		return "abs"
	case ModFNeg:
		return "neg"
	case ModFNegAbs:
		return "negabs"
	case ModINeg:
		return "ineg"
	case ModBNot:
		return "not"
	default:
		return "mod(?)"
	}
}

// IsNone reports whether m applies no transformation at all.
func (m SrcMod) IsNone() bool { return m == ModNone }

func (m SrcMod) isFloatFamily() bool {
	switch m {
	case ModNone, ModFAbs, ModFNeg, ModFNegAbs:
		return true
	default:
		return false
	}
}

func (m SrcMod) floatBits() (neg, abs bool) {
	switch m {
	case ModFAbs:
		return false, true
	case ModFNeg:
		return true, false
	case ModFNegAbs:
		return true, true
	default:
		return false, false
	}
}

func floatMod(neg, abs bool) SrcMod {
	switch {
	case neg && abs:
		return ModFNegAbs
	case abs:
		return ModFAbs
	case neg:
		return ModFNeg
	default:
		return ModNone
	}
}

// Modify composes an already-applied modifier (the receiver, "inner") with a
// modifier requested at a later use site ("outer"), returning the single
// modifier that has the same effect as applying inner then outer. It is a
// partial operation: a legal composition only ever involves one family.
// Mixing families (e.g. an INeg folded on top of an FAbs) is an IR
// invariant violation that the per-use legality rules should never
// construct, so it panics rather than silently picking one side.
func (inner SrcMod) Modify(outer SrcMod) SrcMod {
	if outer == ModNone {
		return inner
	}
	if inner == ModNone {
		return outer
	}

	if inner.isFloatFamily() && outer.isFloatFamily() {
		innerNeg, innerAbs := inner.floatBits()
		outerNeg, outerAbs := outer.floatBits()
		abs := innerAbs || outerAbs
		var neg bool
		if outerAbs {
			neg = outerNeg
		} else {
			neg = innerNeg != outerNeg
		}
		return floatMod(neg, abs)
	}

	if inner == ModINeg && outer == ModINeg {
		return ModNone
	}

	if inner == ModBNot && outer == ModBNot {
		return ModNone
	}

	panic("ir: illegal SrcMod composition across modifier families")
}
