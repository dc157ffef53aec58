/*
 * nakgpu - Control-flow lowering: phi-id assignment, per-successor phi
 * sources, terminator selection, and the fragment-shader epilogue.
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
	inputir "github.com/rcornwell/nakgpu/inputir"
	ir "github.com/rcornwell/nakgpu/ir"
)

// phiID returns the stable id assigned to (def, lane), allocating a fresh
// one on first sight. Every block that defines or reads this phi lane must
// agree on the same id, which is why allocation is keyed off the def index
// rather than the block: a phi's destination def is only ever seen once
// (at its owning block), but PhiSrcs in every predecessor must resolve to
// that same id.
func (e *Engine) phiID(def uint32, lane int) uint32 {
	key := phiKey{def: def, lane: lane}
	if id, ok := e.phiMap[key]; ok {
		return id
	}
	id := e.numPhis
	e.numPhis++
	e.phiMap[key] = id
	return id
}

// lowerPhiDst allocates phi's destination and returns one PhiDst per lane.
// The actual cross-block value flow is carried by the OpPhiSrcs this
// engine emits into each predecessor block's tail (see lowerPhiSrcs),
// keyed by the same ids this returns.
func (e *Engine) lowerPhiDst(blk *inputir.Block, phi *inputir.Phi) []ir.PhiDst {
	ref := e.defAllocSSA(phi.Dst)
	dsts := make([]ir.PhiDst, len(ref))
	for lane, v := range ref {
		dsts[lane] = ir.PhiDst{ID: e.phiID(phi.Dst.Index, lane), Dst: ir.SSADst(ir.SSARef{v})}
	}
	return dsts
}

// lowerPhiSrcs scans blk's successor blocks for phi nodes whose Srcs list
// names blk as a predecessor, and returns the OpPhiSrcs pairs this block's terminator
// must carry — one per lane of every such phi.
func (e *Engine) lowerPhiSrcs(fn *inputir.Function, blk *inputir.Block) []ir.PhiSrc {
	var pairs []ir.PhiSrc
	for _, succ := range blk.Succs {
		target := blockByIndex(fn, succ)
		if target == nil {
			continue
		}
		for _, instr := range target.Instrs {
			phi, ok := instr.(*inputir.Phi)
			if !ok {
				continue
			}
			for _, ps := range phi.Srcs {
				if ps.Pred != blk.Index {
					continue
				}
				ref := e.getSSA(ps.Src)
				for lane, v := range ref {
					pairs = append(pairs, ir.PhiSrc{
						ID:  e.phiID(phi.Dst.Index, lane),
						Src: ir.SrcFromSSA(ir.SSARef{v}),
					})
				}
			}
		}
	}
	return pairs
}

func blockByIndex(fn *inputir.Function, idx uint32) *inputir.Block {
	for _, b := range fn.Blocks {
		if b.Index == idx {
			return b
		}
	}
	return nil
}

// lowerTerminator assembles blk's phi-src instruction (if it feeds any
// phi) and its single control-transfer instruction, then — for a
// fragment entrypoint's final block — inserts the FSOut epilogue ahead of
// it.
func (e *Engine) lowerTerminator(fn *inputir.Function, blk *inputir.Block) {
	if pairs := e.lowerPhiSrcs(fn, blk); len(pairs) > 0 {
		e.builder.PushOp(&ir.OpPhiSrcs{Srcs: pairs})
	}

	isLastBlock := blk.Index == fn.Blocks[len(fn.Blocks)-1].Index
	if e.fsOutRegs != nil && isLastBlock {
		e.builder.PushOp(&ir.OpFSOut{Srcs: e.fsOutRegs})
	}

	switch len(blk.Succs) {
	case 0:
		e.builder.PushOp(&ir.OpExit{})

	case 1:
		if blk.Succs[0] == e.endBlockID {
			e.builder.PushOp(&ir.OpExit{})
		} else {
			e.builder.PushOp(&ir.OpBra{Target: blk.Succs[0]})
		}

	case 2:
		// if-header: Succs[0] is the fallthrough ("then") target, laid out
		// as the next block in sequence; Succs[1] is reached by a branch
		// taken when Cond is false.
		if blk.Cond == nil {
			ir.Unsupported("block %d has two successors but no condition", blk.Index)
			return
		}
		condRef := e.getSSA(*blk.Cond)
		pred := ir.Pred{Ref: ir.SSAPredRef(condRef[0]), Inv: true}
		e.builder.PushPredOp(pred, &ir.OpBra{Target: blk.Succs[1]})

	default:
		ir.Unsupported("block %d has %d successors", blk.Index, len(blk.Succs))
	}
}
