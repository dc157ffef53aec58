/*
 * nakgpu - Lowering engine end-to-end tests, driven off inputir/fixtures.
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

package lower

import (
	"strings"
	"testing"

	"github.com/rcornwell/nakgpu/inputir"
	"github.com/rcornwell/nakgpu/inputir/fixtures"
	ir "github.com/rcornwell/nakgpu/ir"
)

func lowerFixture(t *testing.T, name string) *ir.Shader {
	t.Helper()
	shader, ok := fixtures.ByName(name)
	if !ok {
		t.Fatalf("no such fixture: %q", name)
	}
	e := NewEngine(CompileOptions{SM: 70, AddrImmBits: 12}, nil)
	return e.Lower(shader)
}

// A bare fsat whose source has no other use folds into the producer: the
// fadd comes out saturated and the fsat itself becomes a Mov of the sum
// instead of a second FAdd.
func TestStraightLineFoldsSaturate(t *testing.T) {
	out := lowerFixture(t, "straight_line")
	if len(out.Functions) != 1 {
		t.Fatalf("got %d functions expected: 1", len(out.Functions))
	}
	f := out.Functions[0]

	var sawSSAMov bool
	var fAdds []*ir.OpFAdd
	for _, blk := range f.Blocks {
		for _, instr := range blk.Instrs {
			switch op := instr.Op.(type) {
			case *ir.OpMov:
				if op.Src.Ref.Kind == ir.RefSSA {
					sawSSAMov = true
				}
			case *ir.OpFAdd:
				fAdds = append(fAdds, op)
			}
		}
	}
	if len(fAdds) != 1 {
		t.Fatalf("got %d FAdds expected: 1 (the fsat must not emit a second)", len(fAdds))
	}
	if !fAdds[0].Saturate {
		t.Errorf("expected the producing FAdd to carry the folded saturate")
	}
	if !sawSSAMov {
		t.Errorf("expected fsat of a saturated producer to fold into a Mov of the sum")
	}
}

// The branch fixture must lower to four blocks, with the if-header
// branching on an inverted predicate and the merge block carrying phi
// sources from both arms.
func TestBranchLowersControlFlow(t *testing.T) {
	out := lowerFixture(t, "branch")
	f := out.Functions[0]
	if len(f.Blocks) != 4 {
		t.Fatalf("got %d blocks expected: 4", len(f.Blocks))
	}

	header := f.Block(0)
	term := header.Terminator()
	bra, ok := term.Op.(*ir.OpBra)
	if !ok {
		t.Fatalf("header terminator is %T, expected *ir.OpBra", term.Op)
	}
	if bra.Target != 2 {
		t.Errorf("got branch target %d expected: 2 (else arm)", bra.Target)
	}
	if !term.Pred.Inv {
		t.Errorf("expected header branch predicate to be inverted")
	}

	var sawPhiSrcs, sawPhiDsts bool
	for _, blk := range f.Blocks {
		for _, instr := range blk.Instrs {
			switch instr.Op.(type) {
			case *ir.OpPhiSrcs:
				sawPhiSrcs = true
			case *ir.OpPhiDsts:
				sawPhiDsts = true
			}
		}
	}
	if !sawPhiSrcs || !sawPhiDsts {
		t.Errorf("expected both OpPhiSrcs and OpPhiDsts to be emitted, got srcs=%v dsts=%v", sawPhiSrcs, sawPhiDsts)
	}
}

// The memory fixture's literal UBO offset (0x40, non-zero) must take the
// general per-lane Ldc path rather than the literal-zero ParCopy collapse,
// and its store/atomic must resolve the address-offset helper's immediate
// split against the LoadConst producer.
func TestMemoryLowersIntrinsics(t *testing.T) {
	out := lowerFixture(t, "memory")
	f := out.Functions[0]

	var sawLdc, sawSt, sawAtom bool
	for _, blk := range f.Blocks {
		for _, instr := range blk.Instrs {
			switch op := instr.Op.(type) {
			case *ir.OpLdc:
				sawLdc = true
			case *ir.OpSt:
				sawSt = true
				if op.Offset != 0x40 {
					t.Errorf("got store offset %#x expected: %#x", op.Offset, 0x40)
				}
			case *ir.OpAtom:
				sawAtom = true
				if op.AtomOp != ir.AtomAdd {
					t.Errorf("got atom op %v expected: AtomAdd", op.AtomOp)
				}
				if op.Offset != 0x40 {
					t.Errorf("got atomic offset %#x expected: %#x", op.Offset, 0x40)
				}
			}
		}
	}
	if !sawLdc {
		t.Errorf("expected a non-zero-offset UBO load to lower through OpLdc")
	}
	if !sawSt {
		t.Errorf("expected store_global to lower to OpSt")
	}
	if !sawAtom {
		t.Errorf("expected the atomic add to lower to OpAtom")
	}
}

// The fragment fixture's store_output must be captured into the epilogue
// OpFSOut rather than becoming a standalone attribute store.
func TestFragmentCapturesEpilogue(t *testing.T) {
	out := lowerFixture(t, "fragment")
	f := out.Functions[0]

	var sawFSOut, sawASt, sawIpa bool
	for _, blk := range f.Blocks {
		for _, instr := range blk.Instrs {
			switch instr.Op.(type) {
			case *ir.OpFSOut:
				sawFSOut = true
			case *ir.OpASt:
				sawASt = true
			case *ir.OpIpa:
				sawIpa = true
			}
		}
	}
	if !sawIpa {
		t.Errorf("expected load_interpolated to lower to OpIpa")
	}
	if !sawFSOut {
		t.Errorf("expected a fragment entrypoint's last block to carry OpFSOut")
	}
	if sawASt {
		t.Errorf("fragment store_output must not lower to OpASt")
	}
}

func TestPrinterRendersWithoutPanicking(t *testing.T) {
	for _, name := range fixtures.Names() {
		out := lowerFixture(t, name)
		var p ir.Printer
		text := p.Print(out)
		if !strings.Contains(text, "shader sm70") {
			t.Errorf("fixture %q: got %q, expected header naming sm70", name, text)
		}
	}
}

// 64-bit iadd lowers to a carry-chained IAdd3 pair sharing one predicate.
func TestIAdd64LowersToCarryChain(t *testing.T) {
	a := inputir.Def{Index: 0, NumComponents: 1, BitSize: 64}
	b := inputir.Def{Index: 1, NumComponents: 1, BitSize: 64}
	sum := inputir.Def{Index: 2, NumComponents: 1, BitSize: 64}
	blk := &inputir.Block{Index: 0, Instrs: []inputir.Instr{
		&inputir.LoadConst{Dst: a, Values: []uint64{0x1_0000_0001}},
		&inputir.LoadConst{Dst: b, Values: []uint64{2}},
		&inputir.ALU{Op: "iadd", Dst: sum, Srcs: []inputir.ALUSrc{{Src: a}, {Src: b}}},
	}}
	fn := &inputir.Function{Blocks: []*inputir.Block{blk}, EndBlockID: 1, IsEntrypoint: true}
	sh := &inputir.Shader{Stage: inputir.StageCompute, SM: 70, Functions: []*inputir.Function{fn}}

	e := NewEngine(CompileOptions{SM: 70, AddrImmBits: 12}, nil)
	out := e.Lower(sh)

	var adds []*ir.OpIAdd3
	for _, b := range out.Functions[0].Blocks {
		for _, instr := range b.Instrs {
			if add, ok := instr.Op.(*ir.OpIAdd3); ok {
				adds = append(adds, add)
			}
		}
	}
	if len(adds) != 2 {
		t.Fatalf("got %d IAdd3s expected: 2", len(adds))
	}
	lo, hi := adds[0], adds[1]
	if !lo.Overflow[0].IsSSA {
		t.Fatalf("low-half add must write a carry-out predicate")
	}
	if !hi.CarryIn[0].IsSSA {
		t.Fatalf("high-half add must consume a carry-in predicate")
	}
	if lo.Overflow[0].SSA[0] != hi.CarryIn[0].SSA {
		t.Errorf("carry must chain: low writes %v but high reads %v", lo.Overflow[0].SSA[0], hi.CarryIn[0].SSA)
	}
}
