/*
 * nakgpu - The machine-IR operation set.
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

// Package ir is the data vocabulary of the machine-oriented SSA IR: SSA
// values, operand wrappers, the closed Op enumeration, and the
// block/function/shader containers. Op is a tagged variant over ~60
// machine operations; Go has no closed sum type, so each variant gets its
// own struct and Op is the interface every one of them satisfies. Keep new
// variants exhaustively handled at every type switch over Op — there is no
// default case that silently does the right thing.
package ir

// Op is satisfied by every machine operation. SrcsMut/SrcTypes/Dsts give
// lowering and copy propagation uniform, type-directed access to operands
// without a giant per-field switch at every call site.
type Op interface {
	// Name is the operation's mnemonic, used by the Printer and by panic
	// messages naming an unsupported construct.
	Name() string
	// SrcsMut returns mutable pointers to every source operand, in
	// operand order. Copy propagation rewrites through these pointers.
	SrcsMut() []*Src
	// SrcTypes returns the declared SrcType for each entry of SrcsMut, in
	// the same order.
	SrcTypes() []SrcType
	// Dsts returns every destination this op writes, SSA or None.
	Dsts() []Dst
}

// --- floating point ---------------------------------------------------

type OpFAdd struct {
	Dst      Dst
	Srcs     [2]Src
	Saturate bool
	Round    RoundMode
}

func (o *OpFAdd) Name() string        { return "FAdd" }
func (o *OpFAdd) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpFAdd) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32} }
func (o *OpFAdd) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFMul struct {
	Dst      Dst
	Srcs     [2]Src
	Saturate bool
	Round    RoundMode
}

func (o *OpFMul) Name() string        { return "FMul" }
func (o *OpFMul) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpFMul) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32} }
func (o *OpFMul) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFFma struct {
	Dst      Dst
	Srcs     [3]Src
	Saturate bool
	Round    RoundMode
}

func (o *OpFFma) Name() string        { return "FFma" }
func (o *OpFFma) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpFFma) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32, TypeF32} }
func (o *OpFFma) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFMnMx struct {
	Dst  Dst
	Srcs [2]Src
	Min  bool
}

func (o *OpFMnMx) Name() string        { return "FMnMx" }
func (o *OpFMnMx) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpFMnMx) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32} }
func (o *OpFMnMx) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFRnd struct {
	Dst   Dst
	Src   Src
	Round RoundMode
}

func (o *OpFRnd) Name() string        { return "FRnd" }
func (o *OpFRnd) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpFRnd) SrcTypes() []SrcType { return []SrcType{TypeF32} }
func (o *OpFRnd) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFSetP struct {
	Dst  Dst
	Cmp  CmpOp
	Srcs [2]Src
}

func (o *OpFSetP) Name() string        { return "FSetP" }
func (o *OpFSetP) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpFSetP) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32} }
func (o *OpFSetP) Dsts() []Dst         { return []Dst{o.Dst} }

type OpFSet struct {
	Dst  Dst
	Cmp  CmpOp
	Srcs [2]Src
}

func (o *OpFSet) Name() string        { return "FSet" }
func (o *OpFSet) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpFSet) SrcTypes() []SrcType { return []SrcType{TypeF32, TypeF32} }
func (o *OpFSet) Dsts() []Dst         { return []Dst{o.Dst} }

// OpDAdd is 64-bit float add; Dst is an arity-2 SSARef.
type OpDAdd struct {
	Dst  Dst
	Srcs [2]Src
}

func (o *OpDAdd) Name() string        { return "DAdd" }
func (o *OpDAdd) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpDAdd) SrcTypes() []SrcType { return []SrcType{TypeF64, TypeF64} }
func (o *OpDAdd) Dsts() []Dst         { return []Dst{o.Dst} }

// OpHAdd2 is a packed-half (two f16 lanes in one 32-bit lane) add.
type OpHAdd2 struct {
	Dst      Dst
	Srcs     [2]Src
	Saturate bool
}

func (o *OpHAdd2) Name() string        { return "HAdd2" }
func (o *OpHAdd2) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpHAdd2) SrcTypes() []SrcType { return []SrcType{TypeF16v2, TypeF16v2} }
func (o *OpHAdd2) Dsts() []Dst         { return []Dst{o.Dst} }

type OpMuFu struct {
	Dst Dst
	Src Src
	Op  MuFuOp
}

func (o *OpMuFu) Name() string        { return "MuFu" }
func (o *OpMuFu) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpMuFu) SrcTypes() []SrcType { return []SrcType{TypeF32} }
func (o *OpMuFu) Dsts() []Dst         { return []Dst{o.Dst} }

// --- conversions --------------------------------------------------------

type OpF2F struct {
	Dst        Dst
	Src        Src
	SrcBits    uint8
	DstBits    uint8
	Round      RoundMode
	Ftz        bool
	HighHalf   bool // for F16->F32, selects which packed half to read
}

func (o *OpF2F) Name() string        { return "F2F" }
func (o *OpF2F) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpF2F) SrcTypes() []SrcType { return []SrcType{TypeF32} }
func (o *OpF2F) Dsts() []Dst         { return []Dst{o.Dst} }

type OpF2I struct {
	Dst    Dst
	Src    Src
	Signed bool
	Round  RoundMode
}

func (o *OpF2I) Name() string        { return "F2I" }
func (o *OpF2I) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpF2I) SrcTypes() []SrcType { return []SrcType{TypeF32} }
func (o *OpF2I) Dsts() []Dst         { return []Dst{o.Dst} }

type OpI2F struct {
	Dst    Dst
	Src    Src
	Signed bool
	Round  RoundMode
}

func (o *OpI2F) Name() string        { return "I2F" }
func (o *OpI2F) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpI2F) SrcTypes() []SrcType { return []SrcType{TypeI32} }
func (o *OpI2F) Dsts() []Dst         { return []Dst{o.Dst} }

// --- integer --------------------------------------------------------

// OpIAdd2 is a 2-input integer add with an optional carry-out predicate.
type OpIAdd2 struct {
	Dst      Dst
	Srcs     [2]Src
	CarryOut Dst // None if the carry is unused
}

func (o *OpIAdd2) Name() string        { return "IAdd2" }
func (o *OpIAdd2) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpIAdd2) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32} }
func (o *OpIAdd2) Dsts() []Dst         { return []Dst{o.Dst, o.CarryOut} }

// OpIAdd3 is a 3-input integer add. Overflow holds up to two carry-out
// predicate destinations; CarryIn holds up to two carry-in predicates
// consumed from a prior IAdd3 (used to chain 64-bit adds). Neither
// Overflow nor CarryIn is rewritten by copy propagation; the carry must
// never fold.
type OpIAdd3 struct {
	Dst      Dst
	Srcs     [3]Src
	Overflow [2]Dst
	CarryIn  [2]PredRef
}

func (o *OpIAdd3) Name() string    { return "IAdd3" }
func (o *OpIAdd3) SrcsMut() []*Src { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpIAdd3) SrcTypes() []SrcType {
	return []SrcType{TypeI32, TypeI32, TypeI32}
}
func (o *OpIAdd3) Dsts() []Dst { return []Dst{o.Dst, o.Overflow[0], o.Overflow[1]} }

// HasOverflow reports whether either overflow output is written. Both
// outputs gate the carry-aware ALU-typed propagation path.
func (o *OpIAdd3) HasOverflow() bool {
	return o.Overflow[0].IsSSA || o.Overflow[1].IsSSA
}

type OpIMad struct {
	Dst    Dst
	Srcs   [3]Src
	Signed bool
}

func (o *OpIMad) Name() string        { return "IMad" }
func (o *OpIMad) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpIMad) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32, TypeI32} }
func (o *OpIMad) Dsts() []Dst         { return []Dst{o.Dst} }

// OpIMad64 is IMad widened to a 64-bit (2-lane) product; DstHigh selects
// whether the result keeps only the high lane (imul_high/umul_high) or
// the full 2-lane product (imul_2x32_64/umul_2x32_64).
type OpIMad64 struct {
	Dst      Dst
	Srcs     [3]Src
	Signed   bool
	DstHigh  bool
}

func (o *OpIMad64) Name() string        { return "IMad64" }
func (o *OpIMad64) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpIMad64) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32, TypeI32} }
func (o *OpIMad64) Dsts() []Dst         { return []Dst{o.Dst} }

type OpIAbs struct {
	Dst Dst
	Src Src
}

func (o *OpIAbs) Name() string        { return "IAbs" }
func (o *OpIAbs) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpIAbs) SrcTypes() []SrcType { return []SrcType{TypeI32} }
func (o *OpIAbs) Dsts() []Dst         { return []Dst{o.Dst} }

type OpINeg struct {
	Dst Dst
	Src Src
}

func (o *OpINeg) Name() string        { return "INeg" }
func (o *OpINeg) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpINeg) SrcTypes() []SrcType { return []SrcType{TypeI32} }
func (o *OpINeg) Dsts() []Dst         { return []Dst{o.Dst} }

type OpISetP struct {
	Dst     Dst
	Cmp     CmpOp
	CmpType CmpType
	Srcs    [2]Src
}

func (o *OpISetP) Name() string        { return "ISetP" }
func (o *OpISetP) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpISetP) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32} }
func (o *OpISetP) Dsts() []Dst         { return []Dst{o.Dst} }

type OpISet struct {
	Dst     Dst
	Cmp     CmpOp
	CmpType CmpType
	Srcs    [2]Src
}

func (o *OpISet) Name() string        { return "ISet" }
func (o *OpISet) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpISet) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32} }
func (o *OpISet) Dsts() []Dst         { return []Dst{o.Dst} }

type OpIMnMx struct {
	Dst     Dst
	CmpType CmpType
	Min     bool
	Srcs    [2]Src
}

func (o *OpIMnMx) Name() string        { return "IMnMx" }
func (o *OpIMnMx) SrcsMut() []*Src     { return []*Src{&o.Srcs[0], &o.Srcs[1]} }
func (o *OpIMnMx) SrcTypes() []SrcType { return []SrcType{TypeI32, TypeI32} }
func (o *OpIMnMx) Dsts() []Dst         { return []Dst{o.Dst} }

// OpShf is a funnel shift: {low, high} lanes shifted by Shift, selecting
// left or right and wrap vs clamp behavior.
type OpShf struct {
	Dst      Dst
	Low      Src
	High     Src
	Shift    Src
	Right    bool
	Wrap     bool
	DstHigh  bool
}

func (o *OpShf) Name() string    { return "Shf" }
func (o *OpShf) SrcsMut() []*Src { return []*Src{&o.Low, &o.High, &o.Shift} }
func (o *OpShf) SrcTypes() []SrcType {
	return []SrcType{TypeGPR, TypeGPR, TypeI32}
}
func (o *OpShf) Dsts() []Dst { return []Dst{o.Dst} }

type OpBFind struct {
	Dst              Dst
	Src              Src
	Signed           bool
	ReturnShiftAmount bool
}

func (o *OpBFind) Name() string        { return "BFind" }
func (o *OpBFind) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpBFind) SrcTypes() []SrcType { return []SrcType{TypeI32} }
func (o *OpBFind) Dsts() []Dst         { return []Dst{o.Dst} }

type OpBrev struct {
	Dst Dst
	Src Src
}

func (o *OpBrev) Name() string        { return "Brev" }
func (o *OpBrev) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpBrev) SrcTypes() []SrcType { return []SrcType{TypeB32} }
func (o *OpBrev) Dsts() []Dst         { return []Dst{o.Dst} }

type OpPopC struct {
	Dst Dst
	Src Src
}

func (o *OpPopC) Name() string        { return "PopC" }
func (o *OpPopC) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpPopC) SrcTypes() []SrcType { return []SrcType{TypeB32} }
func (o *OpPopC) Dsts() []Dst         { return []Dst{o.Dst} }

// --- logic / select / permute -----------------------------------------

type OpLop3 struct {
	Dst  Dst
	Op   LogicOp3
	Srcs [3]Src
}

func (o *OpLop3) Name() string    { return "Lop3" }
func (o *OpLop3) SrcsMut() []*Src { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpLop3) SrcTypes() []SrcType {
	return []SrcType{TypeB32, TypeB32, TypeB32}
}
func (o *OpLop3) Dsts() []Dst { return []Dst{o.Dst} }

// OpPLop3 computes up to two predicate results from the same 3 predicate
// sources in one instruction, each with its own truth table.
type OpPLop3 struct {
	Dsts [2]Dst
	Ops  [2]LogicOp3
	Srcs [3]Src
}

func (o *OpPLop3) Name() string    { return "PLop3" }
func (o *OpPLop3) SrcsMut() []*Src { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Srcs[2]} }
func (o *OpPLop3) SrcTypes() []SrcType {
	return []SrcType{TypePred, TypePred, TypePred}
}
func (o *OpPLop3) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpSel struct {
	Dst  Dst
	Cond Src
	Srcs [2]Src
}

func (o *OpSel) Name() string    { return "Sel" }
func (o *OpSel) SrcsMut() []*Src { return []*Src{&o.Cond, &o.Srcs[0], &o.Srcs[1]} }
func (o *OpSel) SrcTypes() []SrcType {
	return []SrcType{TypePred, TypeGPR, TypeGPR}
}
func (o *OpSel) Dsts() []Dst { return []Dst{o.Dst} }

type OpPrmt struct {
	Dst  Dst
	Srcs [2]Src
	Sel  Src
	Mode PrmtMode
}

func (o *OpPrmt) Name() string    { return "Prmt" }
func (o *OpPrmt) SrcsMut() []*Src { return []*Src{&o.Srcs[0], &o.Srcs[1], &o.Sel} }
func (o *OpPrmt) SrcTypes() []SrcType {
	return []SrcType{TypeGPR, TypeGPR, TypeI32}
}
func (o *OpPrmt) Dsts() []Dst { return []Dst{o.Dst} }

// --- copies -------------------------------------------------------------

type OpCopy struct {
	Dst Dst
	Src Src
}

func (o *OpCopy) Name() string        { return "Copy" }
func (o *OpCopy) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpCopy) SrcTypes() []SrcType { return []SrcType{TypeGPR} }
func (o *OpCopy) Dsts() []Dst         { return []Dst{o.Dst} }

type OpMov struct {
	Dst Dst
	Src Src
}

func (o *OpMov) Name() string        { return "Mov" }
func (o *OpMov) SrcsMut() []*Src     { return []*Src{&o.Src} }
func (o *OpMov) SrcTypes() []SrcType { return []SrcType{TypeGPR} }
func (o *OpMov) Dsts() []Dst         { return []Dst{o.Dst} }

// DstSrc is one dst<-src pair within a ParCopy.
type DstSrc struct {
	Dst Dst
	Src Src
}

// OpParCopy performs a set of dst<-src pairs as if simultaneously: used
// for vector assembly and for the PhiSrcs/PhiDsts lowering of phi nodes.
type OpParCopy struct {
	Pairs []DstSrc
}

func (o *OpParCopy) Name() string { return "ParCopy" }
func (o *OpParCopy) SrcsMut() []*Src {
	out := make([]*Src, len(o.Pairs))
	for i := range o.Pairs {
		out[i] = &o.Pairs[i].Src
	}
	return out
}
func (o *OpParCopy) SrcTypes() []SrcType {
	out := make([]SrcType, len(o.Pairs))
	for i := range out {
		out[i] = TypeGPR
	}
	return out
}
func (o *OpParCopy) Dsts() []Dst {
	out := make([]Dst, len(o.Pairs))
	for i := range o.Pairs {
		out[i] = o.Pairs[i].Dst
	}
	return out
}

// --- memory ---------------------------------------------------------

type OpLd struct {
	Dst       Dst
	Addr      Src
	Offset    int32
	AddrType  MemAddrType
	Space     MemSpace
	Order     MemOrder
	Scope     MemScope
}

func (o *OpLd) Name() string        { return "Ld" }
func (o *OpLd) SrcsMut() []*Src     { return []*Src{&o.Addr} }
func (o *OpLd) SrcTypes() []SrcType { return []SrcType{TypeGPR} }
func (o *OpLd) Dsts() []Dst         { return []Dst{o.Dst} }

type OpSt struct {
	Addr      Src
	Data      Src
	Offset    int32
	AddrType  MemAddrType
	Space     MemSpace
	Order     MemOrder
	Scope     MemScope
}

func (o *OpSt) Name() string        { return "St" }
func (o *OpSt) SrcsMut() []*Src     { return []*Src{&o.Addr, &o.Data} }
func (o *OpSt) SrcTypes() []SrcType { return []SrcType{TypeGPR, TypeGPR} }
func (o *OpSt) Dsts() []Dst         { return nil }

type OpAtom struct {
	Dst      Dst
	Addr     Src
	Data     Src
	Offset   int32
	AtomOp   AtomOp
	AtomType AtomType
	AddrType MemAddrType
	Space    MemSpace
	Order    MemOrder
	Scope    MemScope
}

func (o *OpAtom) Name() string        { return "Atom" }
func (o *OpAtom) SrcsMut() []*Src     { return []*Src{&o.Addr, &o.Data} }
func (o *OpAtom) SrcTypes() []SrcType { return []SrcType{TypeGPR, TypeGPR} }
func (o *OpAtom) Dsts() []Dst         { return []Dst{o.Dst} }

type OpAtomCas struct {
	Dst      Dst
	Addr     Src
	Cmp      Src
	Data     Src
	Offset   int32
	AtomType AtomType
	AddrType MemAddrType
	Space    MemSpace
	Order    MemOrder
	Scope    MemScope
}

func (o *OpAtomCas) Name() string    { return "AtomCas" }
func (o *OpAtomCas) SrcsMut() []*Src { return []*Src{&o.Addr, &o.Cmp, &o.Data} }
func (o *OpAtomCas) SrcTypes() []SrcType {
	return []SrcType{TypeGPR, TypeGPR, TypeGPR}
}
func (o *OpAtomCas) Dsts() []Dst { return []Dst{o.Dst} }

type OpMemBar struct {
	Order MemOrder
	Scope MemScope
}

func (o *OpMemBar) Name() string        { return "MemBar" }
func (o *OpMemBar) SrcsMut() []*Src     { return nil }
func (o *OpMemBar) SrcTypes() []SrcType { return nil }
func (o *OpMemBar) Dsts() []Dst         { return nil }

type OpBar struct{}

func (o *OpBar) Name() string        { return "Bar" }
func (o *OpBar) SrcsMut() []*Src     { return nil }
func (o *OpBar) SrcTypes() []SrcType { return nil }
func (o *OpBar) Dsts() []Dst         { return nil }

// --- attribute / system / constant-bank access ---------------------

type OpALd struct {
	Dst        Dst
	VtxOffset  Src
	Offset     uint16
	PerVertex  bool
}

func (o *OpALd) Name() string        { return "ALd" }
func (o *OpALd) SrcsMut() []*Src     { return []*Src{&o.VtxOffset} }
func (o *OpALd) SrcTypes() []SrcType { return []SrcType{TypeGPR} }
func (o *OpALd) Dsts() []Dst         { return []Dst{o.Dst} }

type OpASt struct {
	VtxOffset Src
	Data      Src
	Offset    uint16
}

func (o *OpASt) Name() string        { return "ASt" }
func (o *OpASt) SrcsMut() []*Src     { return []*Src{&o.VtxOffset, &o.Data} }
func (o *OpASt) SrcTypes() []SrcType { return []SrcType{TypeGPR, TypeGPR} }
func (o *OpASt) Dsts() []Dst         { return nil }

// OpIpa interpolates one fragment-shader input component.
type OpIpa struct {
	Dst    Dst
	Offset uint16
	Freq   uint8 // 0=perspective, 1=linear, 2=flat (closed enum kept small; not spec-critical)
}

func (o *OpIpa) Name() string        { return "Ipa" }
func (o *OpIpa) SrcsMut() []*Src     { return nil }
func (o *OpIpa) SrcTypes() []SrcType { return nil }
func (o *OpIpa) Dsts() []Dst         { return []Dst{o.Dst} }

type OpS2R struct {
	Dst Dst
	Reg uint8
}

func (o *OpS2R) Name() string        { return "S2R" }
func (o *OpS2R) SrcsMut() []*Src     { return nil }
func (o *OpS2R) SrcTypes() []SrcType { return nil }
func (o *OpS2R) Dsts() []Dst         { return []Dst{o.Dst} }

type OpLdc struct {
	Dst    Dst
	Buf    Src
	Offset Src
}

func (o *OpLdc) Name() string        { return "Ldc" }
func (o *OpLdc) SrcsMut() []*Src     { return []*Src{&o.Buf, &o.Offset} }
func (o *OpLdc) SrcTypes() []SrcType { return []SrcType{TypeGPR, TypeI32} }
func (o *OpLdc) Dsts() []Dst         { return []Dst{o.Dst} }

// --- texture --------------------------------------------------------

type OpTex struct {
	Dsts       [2]Dst
	Handle     Src
	Coords     []Src
	Dim        TexDim
	LodMode    LodMode
	Lod        Src
	OffsetMode OffsetMode
	Offset     Src
	DepthCmp   bool
	Mask       uint8
}

func (o *OpTex) Name() string { return "Tex" }
func (o *OpTex) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return append(out, &o.Lod, &o.Offset)
}
func (o *OpTex) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+3)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeF32)
	}
	return append(out, TypeF32, TypeI32)
}
func (o *OpTex) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpTld struct {
	Dsts   [2]Dst
	Handle Src
	Coords []Src
	Dim    TexDim
	MS     bool
	Offset Src
	Mask   uint8
}

func (o *OpTld) Name() string { return "Tld" }
func (o *OpTld) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return append(out, &o.Offset)
}
func (o *OpTld) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+2)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeI32)
	}
	return append(out, TypeI32)
}
func (o *OpTld) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpTld4 struct {
	Dsts       [2]Dst
	Handle     Src
	Coords     []Src
	Dim        TexDim
	Component  uint8
	OffsetMode OffsetMode
	Offset     Src
	DepthCmp   bool
	Mask       uint8
}

func (o *OpTld4) Name() string { return "Tld4" }
func (o *OpTld4) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return append(out, &o.Offset)
}
func (o *OpTld4) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+2)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeF32)
	}
	return append(out, TypeI32)
}
func (o *OpTld4) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpTxd struct {
	Dsts   [2]Dst
	Handle Src
	Coords []Src
	DdxDdy []Src
	Dim    TexDim
	Offset Src
	Mask   uint8
}

func (o *OpTxd) Name() string { return "Txd" }
func (o *OpTxd) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	for i := range o.DdxDdy {
		out = append(out, &o.DdxDdy[i])
	}
	return append(out, &o.Offset)
}
func (o *OpTxd) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+len(o.DdxDdy)+2)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeF32)
	}
	for range o.DdxDdy {
		out = append(out, TypeF32)
	}
	return append(out, TypeI32)
}
func (o *OpTxd) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpTxq struct {
	Dst    Dst
	Handle Src
	Query  uint8 // which query: dims, mip levels, ...
}

func (o *OpTxq) Name() string        { return "Txq" }
func (o *OpTxq) SrcsMut() []*Src     { return []*Src{&o.Handle} }
func (o *OpTxq) SrcTypes() []SrcType { return []SrcType{TypeGPR} }
func (o *OpTxq) Dsts() []Dst         { return []Dst{o.Dst} }

type OpTmml struct {
	Dsts   [2]Dst
	Handle Src
	Coords []Src
	Dim    TexDim
}

func (o *OpTmml) Name() string { return "Tmml" }
func (o *OpTmml) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return out
}
func (o *OpTmml) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+1)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeF32)
	}
	return out
}
func (o *OpTmml) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

// --- surface / image (storage-image) access -----------------------

type OpSuLd struct {
	Dsts   [2]Dst
	Handle Src
	Coords []Src
	Dim    TexDim
	Mask   uint8
}

func (o *OpSuLd) Name() string { return "SuLd" }
func (o *OpSuLd) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return out
}
func (o *OpSuLd) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+1)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeI32)
	}
	return out
}
func (o *OpSuLd) Dsts() []Dst { return []Dst{o.Dsts[0], o.Dsts[1]} }

type OpSuSt struct {
	Handle Src
	Coords []Src
	Data   []Src
	Dim    TexDim
}

func (o *OpSuSt) Name() string { return "SuSt" }
func (o *OpSuSt) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	for i := range o.Data {
		out = append(out, &o.Data[i])
	}
	return out
}
func (o *OpSuSt) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+len(o.Data)+1)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeI32)
	}
	for range o.Data {
		out = append(out, TypeGPR)
	}
	return out
}
func (o *OpSuSt) Dsts() []Dst { return nil }

type OpSuAtom struct {
	Dst      Dst
	Handle   Src
	Coords   []Src
	Data     Src
	Dim      TexDim
	AtomOp   AtomOp
	AtomType AtomType
}

func (o *OpSuAtom) Name() string { return "SuAtom" }
func (o *OpSuAtom) SrcsMut() []*Src {
	out := []*Src{&o.Handle}
	for i := range o.Coords {
		out = append(out, &o.Coords[i])
	}
	return append(out, &o.Data)
}
func (o *OpSuAtom) SrcTypes() []SrcType {
	out := make([]SrcType, 0, len(o.Coords)+2)
	out = append(out, TypeGPR)
	for range o.Coords {
		out = append(out, TypeI32)
	}
	return append(out, TypeGPR)
}
func (o *OpSuAtom) Dsts() []Dst { return []Dst{o.Dst} }

// --- control flow and phis -------------------------------------------

type OpBra struct {
	Target uint32
}

func (o *OpBra) Name() string        { return "Bra" }
func (o *OpBra) SrcsMut() []*Src     { return nil }
func (o *OpBra) SrcTypes() []SrcType { return nil }
func (o *OpBra) Dsts() []Dst         { return nil }

type OpExit struct{}

func (o *OpExit) Name() string        { return "Exit" }
func (o *OpExit) SrcsMut() []*Src     { return nil }
func (o *OpExit) SrcTypes() []SrcType { return nil }
func (o *OpExit) Dsts() []Dst         { return nil }

type OpUndef struct {
	Dst Dst
}

func (o *OpUndef) Name() string        { return "Undef" }
func (o *OpUndef) SrcsMut() []*Src     { return nil }
func (o *OpUndef) SrcTypes() []SrcType { return nil }
func (o *OpUndef) Dsts() []Dst         { return []Dst{o.Dst} }

// OpFSOut captures a fragment shader's output registers immediately before
// its terminator; Srcs holds one entry per shader output.
type OpFSOut struct {
	Srcs []Src
}

func (o *OpFSOut) Name() string { return "FSOut" }
func (o *OpFSOut) SrcsMut() []*Src {
	out := make([]*Src, len(o.Srcs))
	for i := range o.Srcs {
		out[i] = &o.Srcs[i]
	}
	return out
}
func (o *OpFSOut) SrcTypes() []SrcType {
	out := make([]SrcType, len(o.Srcs))
	for i := range out {
		out[i] = TypeGPR
	}
	return out
}
func (o *OpFSOut) Dsts() []Dst { return nil }

// PhiDst is one phi id / destination pair.
type PhiDst struct {
	ID  uint32
	Dst Dst
}

// OpPhiDsts sits at the top of a block with multiple predecessors.
type OpPhiDsts struct {
	Dsts []PhiDst
}

func (o *OpPhiDsts) Name() string        { return "PhiDsts" }
func (o *OpPhiDsts) SrcsMut() []*Src     { return nil }
func (o *OpPhiDsts) SrcTypes() []SrcType { return nil }
func (o *OpPhiDsts) Dsts() []Dst {
	out := make([]Dst, len(o.Dsts))
	for i := range o.Dsts {
		out[i] = o.Dsts[i].Dst
	}
	return out
}

// PhiSrc is one phi id / operand pair supplied to a successor.
type PhiSrc struct {
	ID  uint32
	Src Src
}

// OpPhiSrcs sits just before a block's terminator, one entry per phi
// defined in the successor the terminator (or this arm of it) targets.
type OpPhiSrcs struct {
	Srcs []PhiSrc
}

func (o *OpPhiSrcs) Name() string { return "PhiSrcs" }
func (o *OpPhiSrcs) SrcsMut() []*Src {
	out := make([]*Src, len(o.Srcs))
	for i := range o.Srcs {
		out[i] = &o.Srcs[i].Src
	}
	return out
}
func (o *OpPhiSrcs) SrcTypes() []SrcType {
	out := make([]SrcType, len(o.Srcs))
	for i := range out {
		out[i] = TypeSSA
	}
	return out
}
func (o *OpPhiSrcs) Dsts() []Dst { return nil }
