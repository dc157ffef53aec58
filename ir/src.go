/*
 * nakgpu - Operand origins (SrcRef), operand-use types, and Src wrapper.
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

import "math"

// SrcRefKind tags the closed set of operand origins.
type SrcRefKind uint8

const (
	RefZero SrcRefKind = iota
	RefTrue
	RefFalse
	RefImm32
	RefCBuf
	RefSSA
	// RefReg is a post-allocation physical register. It must never appear
	// as an input to the copy-propagation pass.
	RefReg
)

// CBufRef addresses a bound, read-only constant buffer by (buf, byte
// offset).
type CBufRef struct {
	Buf    uint8
	Offset uint16
}

// OffsetBy returns a CBufRef into the same buffer shifted by n bytes.
func (c CBufRef) OffsetBy(n uint16) CBufRef {
	return CBufRef{Buf: c.Buf, Offset: c.Offset + n}
}

// RegRef is a post-allocation physical register reference.
type RegRef struct {
	File  RegFile
	Index uint32
}

// SrcRef identifies the origin of an operand: a constant, a constant-buffer
// cell, an SSA value (pre-allocation) or, after register allocation, a
// physical register.
type SrcRef struct {
	Kind SrcRefKind
	Imm  uint32
	CBuf CBufRef
	SSA  SSARef
	Reg  RegRef
}

func ZeroRef() SrcRef           { return SrcRef{Kind: RefZero} }
func TrueRef() SrcRef           { return SrcRef{Kind: RefTrue} }
func FalseRef() SrcRef          { return SrcRef{Kind: RefFalse} }
func Imm32Ref(v uint32) SrcRef  { return SrcRef{Kind: RefImm32, Imm: v} }
func CBufSrcRef(c CBufRef) SrcRef { return SrcRef{Kind: RefCBuf, CBuf: c} }
func SSARefOf(ref SSARef) SrcRef  { return SrcRef{Kind: RefSSA, SSA: ref} }
func SSAValueRef(v SSAValue) SrcRef {
	return SrcRef{Kind: RefSSA, SSA: SSARef{v}}
}
func RegSrcRef(r RegRef) SrcRef { return SrcRef{Kind: RefReg, Reg: r} }

// GetReg returns the physical register this ref names, if any.
func (r SrcRef) GetReg() (RegRef, bool) {
	if r.Kind == RefReg {
		return r.Reg, true
	}
	return RegRef{}, false
}

// AsU32 returns the compile-time-known 32-bit bit pattern this ref denotes,
// if it is a constant.
func (r SrcRef) AsU32() (uint32, bool) {
	switch r.Kind {
	case RefZero:
		return 0, true
	case RefFalse:
		return 0, true
	case RefTrue:
		return 1, true
	case RefImm32:
		return r.Imm, true
	default:
		return 0, false
	}
}

// IsZero reports whether r is the constant zero.
func (r SrcRef) IsZero() bool {
	v, ok := r.AsU32()
	return ok && v == 0
}

// SrcSwizzle selects which 16-bit halves of a packed half-precision operand
// are read.
type SrcSwizzle uint8

const (
	SwizNone SrcSwizzle = iota
	SwizXx
	SwizYy
)

// SrcType is the operand-type kind expected at a particular use site. It is
// a property of the use, not of the value.
type SrcType uint8

const (
	TypeSSA SrcType = iota
	TypeGPR
	TypeALU
	TypeF16
	TypeF16v2
	TypeF32
	TypeF64
	TypeI32
	TypeB32
	TypePred
	TypeBar
)

func (t SrcType) String() string {
	names := [...]string{"SSA", "GPR", "ALU", "F16", "F16v2", "F32", "F64", "I32", "B32", "Pred", "Bar"}
	if int(t) < len(names) {
		return names[t]
	}
	return "SrcType(?)"
}

// Src is an operand: an origin, a modifier, and (for packed half-precision
// operands) a swizzle.
type Src struct {
	Ref     SrcRef
	Mod     SrcMod
	Swizzle SrcSwizzle
}

// NewSrc wraps a bare SrcRef with no modifier or swizzle.
func NewSrc(ref SrcRef) Src { return Src{Ref: ref} }

// SrcZero is the constant-zero operand.
func SrcZero() Src { return NewSrc(ZeroRef()) }

// SrcFromSSA wraps an SSARef as an unmodified source.
func SrcFromSSA(ref SSARef) Src { return NewSrc(SSARefOf(ref)) }

func (s Src) IsZero() bool { return s.Mod.IsNone() && s.Ref.IsZero() }

// AsU32 forwards to the underlying ref when no modifier is present.
func (s Src) AsU32() (uint32, bool) {
	if !s.Mod.IsNone() {
		return 0, false
	}
	return s.Ref.AsU32()
}

// FNeg returns s negated as a float.
func (s Src) FNeg() Src {
	neg, abs := s.Mod.floatBits()
	if !s.Mod.isFloatFamily() {
		panic("ir: FNeg applied to a non-float-family source modifier")
	}
	s.Mod = floatMod(!neg, abs)
	return s
}

// FAbs returns the absolute value of s as a float.
func (s Src) FAbs() Src {
	if !s.Mod.isFloatFamily() {
		panic("ir: FAbs applied to a non-float-family source modifier")
	}
	s.Mod = floatMod(false, true)
	return s
}

// INeg returns s negated as an integer.
func (s Src) INeg() Src {
	switch s.Mod {
	case ModNone:
		s.Mod = ModINeg
	case ModINeg:
		s.Mod = ModNone
	default:
		panic("ir: INeg applied on top of an incompatible source modifier")
	}
	return s
}

// BNot returns the bitwise/boolean complement of s.
func (s Src) BNot() Src {
	switch s.Mod {
	case ModNone:
		s.Mod = ModBNot
	case ModBNot:
		s.Mod = ModNone
	default:
		panic("ir: BNot applied on top of an incompatible source modifier")
	}
	return s
}

// IsFNegZero reports whether s, interpreted under srcType, is exactly
// negative zero: a float-typed zero constant carrying FNeg or FNegAbs, or
// the (equivalent) packed-zero under F16v2.
func (s Src) IsFNegZero(srcType SrcType) bool {
	if s.Mod != ModFNeg && s.Mod != ModFNegAbs {
		return false
	}
	switch srcType {
	case TypeF64:
		return s.Ref.Kind == RefZero
	default:
		v, ok := s.Ref.AsU32()
		if !ok {
			return false
		}
		if srcType == TypeF16v2 {
			return v == 0
		}
		return v == 0
	}
}

// FNegZeroBits is the IEEE-754 bit pattern for -0.0f.
func FNegZeroBits() uint32 { return math.Float32bits(float32(math.Copysign(0, -1))) }
