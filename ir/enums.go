/*
 * nakgpu - Small closed enumerations carried as Op flags.
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

// CmpOp is a comparison predicate used by ISetP/FSetP/ISet/FSet.
type CmpOp uint8

const (
	CmpLt CmpOp = iota
	CmpLe
	CmpGt
	CmpGe
	CmpEq
	CmpNe
)

// CmpType distinguishes signed-integer, unsigned-integer, and float
// comparisons.
type CmpType uint8

const (
	CmpTypeI32 CmpType = iota
	CmpTypeU32
	CmpTypeF32
	CmpTypeF64
)

// RoundMode is a float rounding mode.
type RoundMode uint8

const (
	RoundNearestEven RoundMode = iota
	RoundNegInf
	RoundPosInf
	RoundZero
)

// MuFuOp selects the transcendental unit fed by an Op_MuFu.
type MuFuOp uint8

const (
	MuFuCos MuFuOp = iota
	MuFuSin
	MuFuExp2
	MuFuLog2
	MuFuRcp
	MuFuRsq
	MuFuSqrt
)

// MemSpace is the address space targeted by a memory op.
type MemSpace uint8

const (
	MemGlobal MemSpace = iota
	MemShared
	MemLocal
)

// MemAddrType is the bit width of a memory address.
type MemAddrType uint8

const (
	AddrA32 MemAddrType = iota
	AddrA64
)

// MemOrder is the memory ordering a load/store/atomic enforces.
type MemOrder uint8

const (
	OrderWeak MemOrder = iota
	OrderStrong
	OrderAcquire
	OrderRelease
)

// MemScope is the scope a memory ordering applies across.
type MemScope uint8

const (
	ScopeCTA MemScope = iota
	ScopeGPU
	ScopeSystem
	ScopeNone
)

// AtomOp names an atomic read-modify-write operation.
type AtomOp uint8

const (
	AtomAdd AtomOp = iota
	AtomMin
	AtomMax
	AtomAnd
	AtomOr
	AtomXor
	AtomExch
)

// AtomType is the data-type interpretation an atomic operates under.
type AtomType uint8

const (
	AtomI32 AtomType = iota
	AtomU32
	AtomI64
	AtomU64
	AtomF32
	AtomF16x2
)

// TexDim is the sampler dimensionality, folding in array-ness.
type TexDim uint8

const (
	Tex1D TexDim = iota
	Tex1DArray
	Tex2D
	Tex2DArray
	Tex3D
	TexCube
	TexCubeArray
)

// LodMode selects how level-of-detail is supplied to a texture op.
type LodMode uint8

const (
	LodAuto LodMode = iota
	LodZero
	LodBias
	LodLod
	LodClampBias
	LodClampLod
)

// OffsetMode selects how a texel offset is supplied.
type OffsetMode uint8

const (
	OffsetNone OffsetMode = iota
	OffsetAA
	OffsetPerPx
)

// PrmtMode selects how Prmt's selection word is interpreted.
type PrmtMode uint8

const (
	PrmtModeIndex PrmtMode = iota
	PrmtModeForward4Extract
	PrmtModeBackward4Extract
	PrmtModeReplicate8
)

// F2FRound additionally carries the flush-to-zero bit F2F needs alongside
// a RoundMode.
type F2FRound struct {
	Round RoundMode
	Ftz   bool
}
