/*
 * nakgpu - Tests for the copy-propagation pass.
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

package copyprop

import (
	"testing"

	ir "github.com/rcornwell/nakgpu/ir"
)

func oneBlockFunc(ops ...ir.Op) *ir.Function {
	f := ir.NewFunction()
	b := ir.NewBasicBlock(0)
	for _, op := range ops {
		b.Append(ir.NewInstr(op))
	}
	b.Append(ir.NewInstr(&ir.OpExit{}))
	f.Blocks = []*ir.BasicBlock{b}
	return f
}

// A Copy-then-use chain: the second instruction's source should end up
// pointing directly at the original SSA value instead of the Copy's dest.
// Op_Mov is deliberately NOT learned (it is a real hardware move, not the
// compiler-internal copy tracked via Copy/ParCopy).
func TestPropagatesThroughCopy(t *testing.T) {
	alloc := ir.NewAlloc()
	src := alloc.AllocSSAValue(ir.FileGPR)
	copyDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	copyOp := &ir.OpCopy{Dst: ir.SSADst(copyDst), Src: ir.SrcFromSSA(ir.SSARef{src})}
	useOp := &ir.OpIAbs{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(copyDst)}

	f := oneBlockFunc(copyOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	got := useOp.Src.Ref
	if got.Kind != ir.RefSSA || got.SSA[0] != src {
		t.Fatalf("expected use to be rewritten to original src %v, got %v", src, got)
	}
}

// fadd(x, -0.0) should fold away to a Copy of x: adding negative zero
// is an identity.
func TestFAddNegZeroFoldsToCopy(t *testing.T) {
	alloc := ir.NewAlloc()
	x := alloc.AllocSSAValue(ir.FileGPR)
	addDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	negZero := ir.Src{Ref: ir.ZeroRef(), Mod: ir.ModFNeg}
	addOp := &ir.OpFAdd{Dst: ir.SSADst(addDst), Srcs: [2]ir.Src{ir.SrcFromSSA(ir.SSARef{x}), negZero}}
	useOp := &ir.OpMuFu{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(addDst), Op: ir.MuFuRcp}

	f := oneBlockFunc(addOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	got := useOp.Src.Ref
	if got.Kind != ir.RefSSA || got.SSA[0] != x {
		t.Fatalf("expected FAdd-with-negzero to fold through to %v, got %v", x, got)
	}
}

// Lop3 with the all-zero LUT should become a learned zero copy.
func TestLop3ZeroLutFoldsToZero(t *testing.T) {
	alloc := ir.NewAlloc()
	a := alloc.AllocSSAValue(ir.FileGPR)
	b := alloc.AllocSSAValue(ir.FileGPR)
	c := alloc.AllocSSAValue(ir.FileGPR)
	lopDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	lopOp := &ir.OpLop3{Dst: ir.SSADst(lopDst), Op: ir.LutFalse, Srcs: [3]ir.Src{
		ir.SrcFromSSA(ir.SSARef{a}), ir.SrcFromSSA(ir.SSARef{b}), ir.SrcFromSSA(ir.SSARef{c}),
	}}
	useOp := &ir.OpIAbs{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(lopDst)}

	f := oneBlockFunc(lopOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	if !useOp.Src.IsZero() {
		t.Fatalf("expected Lop3(0-lut) use to fold to zero, got %+v", useOp.Src)
	}
}

// Prmt selecting 0x3210 is a pure pass-through of source 0 and should be
// learned as a GPR copy rather than kept as an entry.Prmt fact.
func TestPrmtIdentitySelectionFoldsToCopy(t *testing.T) {
	alloc := ir.NewAlloc()
	s0 := alloc.AllocSSAValue(ir.FileGPR)
	s1 := alloc.AllocSSAValue(ir.FileGPR)
	prmtDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	prmtOp := &ir.OpPrmt{
		Dst:  ir.SSADst(prmtDst),
		Srcs: [2]ir.Src{ir.SrcFromSSA(ir.SSARef{s0}), ir.SrcFromSSA(ir.SSARef{s1})},
		Sel:  ir.NewSrc(ir.Imm32Ref(0x3210)),
		Mode: ir.PrmtModeIndex,
	}
	useOp := &ir.OpIAbs{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(prmtDst)}

	f := oneBlockFunc(prmtOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	got := useOp.Src.Ref
	if got.Kind != ir.RefSSA || got.SSA[0] != s0 {
		t.Fatalf("expected identity Prmt to propagate source 0 (%v), got %v", s0, got)
	}
}

// Carry-producing IAdd2 must not have its operands folded under the plain
// I32 rules; the INeg learned from the upstream OpINeg must survive untouched so
// the carry semantics are preserved.
func TestIAdd2WithCarryOutBlocksINegFold(t *testing.T) {
	alloc := ir.NewAlloc()
	n := alloc.AllocSSAValue(ir.FileGPR)
	negDst := alloc.AllocSSA(ir.FileGPR, 1)
	sum := alloc.AllocSSA(ir.FileGPR, 1)
	carry := alloc.AllocSSA(ir.FilePred, 1)

	negOp := &ir.OpINeg{Dst: ir.SSADst(negDst), Src: ir.SrcFromSSA(ir.SSARef{n})}
	addOp := &ir.OpIAdd2{
		Dst:      ir.SSADst(sum),
		Srcs:     [2]ir.Src{ir.SrcFromSSA(negDst), ir.SrcZero()},
		CarryOut: ir.SSADst(carry),
	}

	f := oneBlockFunc(negOp, addOp)
	f.Alloc = alloc
	Run(f, nil)

	if addOp.Srcs[0].Ref.Kind != ir.RefSSA || addOp.Srcs[0].Ref.SSA[0] != negDst[0] {
		t.Fatalf("expected carry-producing IAdd2 to leave the INeg source unfolded, got %+v", addOp.Srcs[0])
	}
}

// A Copy whose source is already a physical register must never be
// learned; the pass only ever runs pre-allocation.
func TestAddCopyPanicsOnPhysicalRegisterSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic learning a copy from a physical register")
		}
	}()
	p := NewPass(nil)
	dst := ir.NewAlloc().AllocSSAValue(ir.FileGPR)
	p.addCopy(dst, ir.TypeGPR, ir.NewSrc(ir.RegSrcRef(ir.RegRef{File: ir.FileGPR, Index: 3})))
}

// Prmt with two immediate sources evaluates the byte permutation at
// compile time and is learned as a single immediate copy.
func TestPrmtImmediateSourcesFold(t *testing.T) {
	alloc := ir.NewAlloc()
	prmtDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	prmtOp := &ir.OpPrmt{
		Dst:  ir.SSADst(prmtDst),
		Srcs: [2]ir.Src{ir.NewSrc(ir.Imm32Ref(0xDEADBEEF)), ir.NewSrc(ir.Imm32Ref(0x01020304))},
		Sel:  ir.NewSrc(ir.Imm32Ref(0x4567)),
		Mode: ir.PrmtModeIndex,
	}
	useOp := &ir.OpIAbs{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(prmtDst)}

	f := oneBlockFunc(prmtOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	got := useOp.Src.Ref
	if got.Kind != ir.RefImm32 || got.Imm != 0x04030201 {
		t.Fatalf("expected byte-reversed immediate 0x04030201, got %+v", got)
	}
}

// Two CBuf copies at offsets 0 and 4 of the same buffer feeding the lo/hi
// halves of an F64 operand collapse into one 64-bit CBuf reference.
func TestF64CBufHalvesCollapse(t *testing.T) {
	alloc := ir.NewAlloc()
	lo := alloc.AllocSSA(ir.FileGPR, 1)
	hi := alloc.AllocSSA(ir.FileGPR, 1)
	x := alloc.AllocSSA(ir.FileGPR, 2)
	sum := alloc.AllocSSA(ir.FileGPR, 2)

	cb := ir.CBufRef{Buf: 0, Offset: 0}
	copyLo := &ir.OpCopy{Dst: ir.SSADst(lo), Src: ir.NewSrc(ir.CBufSrcRef(cb))}
	copyHi := &ir.OpCopy{Dst: ir.SSADst(hi), Src: ir.NewSrc(ir.CBufSrcRef(cb.OffsetBy(4)))}
	add := &ir.OpDAdd{
		Dst:  ir.SSADst(sum),
		Srcs: [2]ir.Src{ir.SrcFromSSA(ir.SSARef{lo[0], hi[0]}), ir.SrcFromSSA(x)},
	}

	f := oneBlockFunc(copyLo, copyHi, add)
	f.Alloc = alloc
	Run(f, nil)

	got := add.Srcs[0].Ref
	if got.Kind != ir.RefCBuf || got.CBuf != cb {
		t.Fatalf("expected lo/hi CBuf halves to collapse to %v, got %+v", cb, got)
	}
}

// A predicate guard that resolves to the complement of another predicate
// folds into the guard: the reference is replaced and the invert bit
// flipped.
func TestPredGuardFoldsThroughPLop3Not(t *testing.T) {
	alloc := ir.NewAlloc()
	p0 := alloc.AllocSSAValue(ir.FilePred)
	notDst := alloc.AllocSSA(ir.FilePred, 1)
	movDst := alloc.AllocSSA(ir.FileGPR, 1)

	notOp := &ir.OpPLop3{
		Dsts: [2]ir.Dst{ir.SSADst(notDst), ir.NoDst()},
		Ops:  [2]ir.LogicOp3{ir.LutNot0, ir.LutFalse},
		Srcs: [3]ir.Src{ir.SrcFromSSA(ir.SSARef{p0}), ir.NewSrc(ir.TrueRef()), ir.NewSrc(ir.TrueRef())},
	}
	movInstr := &ir.Instr{
		Pred: ir.Pred{Ref: ir.SSAPredRef(notDst[0])},
		Op:   &ir.OpMov{Dst: ir.SSADst(movDst), Src: ir.SrcZero()},
	}

	f := ir.NewFunction()
	b := ir.NewBasicBlock(0)
	b.Append(ir.NewInstr(notOp))
	b.Append(movInstr)
	b.Append(ir.NewInstr(&ir.OpExit{}))
	f.Blocks = []*ir.BasicBlock{b}
	f.Alloc = alloc
	Run(f, nil)

	if !movInstr.Pred.Ref.IsSSA || movInstr.Pred.Ref.SSA != p0 {
		t.Fatalf("expected guard to resolve to %v, got %+v", p0, movInstr.Pred.Ref)
	}
	if !movInstr.Pred.Inv {
		t.Errorf("expected the guard's invert bit to flip through the complement")
	}
}

// A second pass over already-propagated IR changes nothing.
func TestRunIsIdempotent(t *testing.T) {
	alloc := ir.NewAlloc()
	x := alloc.AllocSSAValue(ir.FileGPR)
	addDst := alloc.AllocSSA(ir.FileGPR, 1)
	useDst := alloc.AllocSSA(ir.FileGPR, 1)

	negZero := ir.Src{Ref: ir.ZeroRef(), Mod: ir.ModFNeg}
	addOp := &ir.OpFAdd{Dst: ir.SSADst(addDst), Srcs: [2]ir.Src{ir.SrcFromSSA(ir.SSARef{x}), negZero}}
	useOp := &ir.OpMuFu{Dst: ir.SSADst(useDst), Src: ir.SrcFromSSA(addDst), Op: ir.MuFuRcp}

	f := oneBlockFunc(addOp, useOp)
	f.Alloc = alloc
	Run(f, nil)

	var p ir.Printer
	first := p.Print(&ir.Shader{Functions: []*ir.Function{f}})
	Run(f, nil)
	second := p.Print(&ir.Shader{Functions: []*ir.Function{f}})
	if first != second {
		t.Errorf("second pass changed the IR:\n%s\nvs\n%s", first, second)
	}
}
