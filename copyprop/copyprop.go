/*
 * nakgpu - Function-local copy-propagation pass over the machine IR.
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

// Package copyprop is the local rewrite pass over machine IR: it tracks
// SSA-defining copy-like operations as it walks a function in program
// order and rewrites later operand uses through those defs.
package copyprop

import (
	"log/slog"

	ir "github.com/rcornwell/nakgpu/ir"
)

type copyEntry struct {
	srcType ir.SrcType
	src     ir.Src
}

type prmtEntry struct {
	srcs      [2]ir.Src
	selection uint16
}

// entry is CopyPropEntry: either a Copy or a Prmt learned fact.
type entry struct {
	isPrmt bool
	copy   copyEntry
	prmt   prmtEntry
}

// Pass is a single function-local invocation. Its ssaMap is discarded on
// completion; there is no state shared across functions.
type Pass struct {
	ssaMap map[ir.SSAValue]entry
	log    *slog.Logger

	learned   int
	rewritten int
}

// NewPass returns an empty pass. log may be nil.
func NewPass(log *slog.Logger) *Pass {
	return &Pass{ssaMap: make(map[ir.SSAValue]entry), log: log}
}

func (p *Pass) addCopy(dst ir.SSAValue, srcType ir.SrcType, src ir.Src) {
	if _, ok := src.Ref.GetReg(); ok {
		panic("copyprop: learned copy source names a post-allocation register")
	}
	p.ssaMap[dst] = entry{copy: copyEntry{srcType: srcType, src: src}}
	p.learned++
}

func (p *Pass) addPrmt(dst ir.SSAValue, srcs [2]ir.Src, selection uint16) {
	for _, s := range srcs {
		if _, ok := s.Ref.GetReg(); ok {
			panic("copyprop: learned prmt source names a post-allocation register")
		}
	}
	p.ssaMap[dst] = entry{isPrmt: true, prmt: prmtEntry{srcs: srcs, selection: selection}}
	p.learned++
}

// addFP64Copy explodes a 64-bit source into independent lo/hi-32 copy
// entries so scalar consumers of either half can still see through it.
func (p *Pass) addFP64Copy(dst ir.SSARef, src ir.Src) {
	if dst.Comps() != 2 {
		panic("copyprop: addFP64Copy requires a 2-component destination")
	}
	switch src.Ref.Kind {
	case ir.RefZero, ir.RefImm32:
		p.addCopy(dst[0], ir.TypeALU, ir.SrcZero())
		p.addCopy(dst[1], ir.TypeF64, src)
	case ir.RefCBuf:
		lo32 := ir.NewSrc(ir.CBufSrcRef(src.Ref.CBuf))
		hi32 := ir.Src{Ref: ir.CBufSrcRef(src.Ref.CBuf.OffsetBy(4)), Mod: src.Mod, Swizzle: src.Swizzle}
		p.addCopy(dst[0], ir.TypeALU, lo32)
		p.addCopy(dst[1], ir.TypeF64, hi32)
	case ir.RefSSA:
		if src.Ref.SSA.Comps() != 2 {
			panic("copyprop: 64-bit SSA source must have arity 2")
		}
		lo32 := ir.NewSrc(ir.SSAValueRef(src.Ref.SSA[0]))
		hi32 := ir.Src{Ref: ir.SSAValueRef(src.Ref.SSA[1]), Mod: src.Mod, Swizzle: src.Swizzle}
		p.addCopy(dst[0], ir.TypeALU, lo32)
		p.addCopy(dst[1], ir.TypeF64, hi32)
	default:
		// True/False/Reg have no 64-bit interpretation here; learn nothing.
	}
}

func (p *Pass) getCopy(v ir.SSAValue) (entry, bool) {
	e, ok := p.ssaMap[v]
	return e, ok
}

// --- propagation ------------------------------------------------------

func (p *Pass) propToPred(pred *ir.Pred) {
	for {
		if !pred.Ref.IsSSA {
			return
		}
		e, ok := p.getCopy(pred.Ref.SSA)
		if !ok || e.isPrmt {
			return
		}

		switch e.copy.src.Ref.Kind {
		case ir.RefTrue:
			pred.Ref = ir.NonePredRef()
		case ir.RefFalse:
			pred.Ref = ir.NonePredRef()
			pred.Inv = !pred.Inv
		case ir.RefSSA:
			if e.copy.src.Ref.SSA.Comps() != 1 {
				panic("copyprop: predicate copy source must be a scalar SSA ref")
			}
			pred.Ref = ir.SSAPredRef(e.copy.src.Ref.SSA[0])
		default:
			return
		}

		switch e.copy.src.Mod {
		case ir.ModNone:
		case ir.ModBNot:
			pred.Inv = !pred.Inv
		default:
			panic("copyprop: invalid predicate modifier")
		}
		p.rewritten++
	}
}

// propToSSARef rewrites, component by component, any component whose def is
// a modifier-free Copy to another single-lane SSA value. It returns
// whether it made any progress; callers iterate it to a fixpoint.
func (p *Pass) propToSSARef(ref ir.SSARef) bool {
	progress := false
	for c := 0; c < ref.Comps(); c++ {
		e, ok := p.getCopy(ref[c])
		if !ok || e.isPrmt {
			continue
		}
		if e.copy.src.Mod.IsNone() && e.copy.src.Ref.Kind == ir.RefSSA {
			if e.copy.src.Ref.SSA.Comps() != 1 {
				panic("copyprop: SSA copy source must be a scalar SSA ref")
			}
			ref[c] = e.copy.src.Ref.SSA[0]
			progress = true
		}
	}
	return progress
}

func (p *Pass) propToSSASrc(src *ir.Src) {
	if !src.Mod.IsNone() {
		panic("copyprop: SSA-typed source must carry no modifier")
	}
	if src.Ref.Kind != ir.RefSSA {
		return
	}
	for p.propToSSARef(src.Ref.SSA) {
		p.rewritten++
	}
}

func (p *Pass) propToGPRSrc(src *ir.Src) {
	for {
		if src.Ref.Kind != ir.RefSSA {
			return
		}
		ssa := src.Ref.SSA
		if p.propToSSARef(ssa) {
			p.rewritten++
			continue
		}

		for c := 0; c < ssa.Comps(); c++ {
			e, ok := p.getCopy(ssa[c])
			if !ok || e.isPrmt {
				return
			}
			switch e.copy.src.Ref.Kind {
			case ir.RefZero:
			case ir.RefImm32:
				if e.copy.src.Ref.Imm != 0 {
					return
				}
			default:
				return
			}
		}

		src.Ref = ir.ZeroRef()
		p.rewritten++
		return
	}
}

func (p *Pass) propToScalarSrc(srcType ir.SrcType, src *ir.Src) {
	for {
		if src.Ref.Kind != ir.RefSSA {
			return
		}
		ssa := src.Ref.SSA
		if ssa.Comps() != 1 {
			panic("copyprop: scalar source must reference a single-component SSA ref")
		}
		e, ok := p.getCopy(ssa[0])
		if !ok {
			return
		}

		if !e.isPrmt {
			ce := e.copy
			if !ce.src.Mod.IsNone() && ce.srcType != srcType {
				return
			}
			src.Ref = ce.src.Ref
			src.Mod = ce.src.Mod.Modify(src.Mod)
			p.rewritten++
			continue
		}

		pe := e.prmt
		var swizzlePrmt [4]uint8
		switch srcType {
		case ir.TypeF16:
			swizzlePrmt = [4]uint8{0, 1, 0, 1}
		case ir.TypeF16v2:
			switch src.Swizzle {
			case ir.SwizNone:
				swizzlePrmt = [4]uint8{0, 1, 2, 3}
			case ir.SwizXx:
				swizzlePrmt = [4]uint8{0, 1, 0, 1}
			case ir.SwizYy:
				swizzlePrmt = [4]uint8{2, 3, 2, 3}
			}
		default:
			swizzlePrmt = [4]uint8{0, 1, 2, 3}
		}

		var entrySrcIdx int = -1
		var combined [4]uint8
		ok = true
		for i := 0; i < 4; i++ {
			val := uint8((pe.selection >> (uint(swizzlePrmt[i]) * 4)) & 0xF)
			if val&8 != 0 {
				ok = false
				break
			}
			targetSrcIdx := int(val / 4)
			if entrySrcIdx == -1 {
				entrySrcIdx = targetSrcIdx
			} else if entrySrcIdx != targetSrcIdx {
				ok = false
				break
			}
			combined[i] = val & 0x3
		}
		if !ok {
			return
		}

		entrySrc := pe.srcs[entrySrcIdx]

		var newSwizzle ir.SrcSwizzle
		switch srcType {
		case ir.TypeF16:
			if combined != ([4]uint8{0, 1, 0, 1}) {
				return
			}
			newSwizzle = ir.SwizNone
		case ir.TypeF16v2:
			switch combined {
			case [4]uint8{0, 1, 2, 3}:
				newSwizzle = ir.SwizNone
			case [4]uint8{0, 1, 0, 1}:
				newSwizzle = ir.SwizXx
			case [4]uint8{2, 3, 2, 3}:
				newSwizzle = ir.SwizYy
			default:
				return
			}
		default:
			if combined != ([4]uint8{0, 1, 2, 3}) {
				return
			}
			newSwizzle = ir.SwizNone
		}

		src.Ref = entrySrc.Ref
		src.Mod = entrySrc.Mod.Modify(src.Mod)
		src.Swizzle = newSwizzle
		p.rewritten++
	}
}

func (p *Pass) propToF64Src(src *ir.Src) {
	for {
		if src.Ref.Kind != ir.RefSSA {
			return
		}
		ssa := src.Ref.SSA
		if ssa.Comps() != 2 {
			panic("copyprop: F64 source must reference a 2-component SSA ref")
		}

		loEntry, loOk := p.getCopy(ssa[0])
		if loOk && !loEntry.isPrmt && loEntry.copy.src.Mod.IsNone() && loEntry.copy.src.Ref.Kind == ir.RefSSA {
			ssa[0] = loEntry.copy.src.Ref.SSA[0]
			p.rewritten++
			continue
		}

		hiEntry, hiOk := p.getCopy(ssa[1])
		if hiOk && !hiEntry.isPrmt && (hiEntry.copy.src.Mod.IsNone() || hiEntry.copy.srcType == ir.TypeF64) && hiEntry.copy.src.Ref.Kind == ir.RefSSA {
			ssa[1] = hiEntry.copy.src.Ref.SSA[0]
			src.Mod = hiEntry.copy.src.Mod.Modify(src.Mod)
			p.rewritten++
			continue
		}

		if !loOk || loEntry.isPrmt {
			return
		}
		if !hiOk || hiEntry.isPrmt {
			return
		}
		if !loEntry.copy.src.Mod.IsNone() {
			return
		}
		if !hiEntry.copy.src.Mod.IsNone() && hiEntry.copy.srcType != ir.TypeF64 {
			return
		}

		var newRef ir.SrcRef
		switch hiEntry.copy.src.Ref.Kind {
		case ir.RefZero:
			switch loEntry.copy.src.Ref.Kind {
			case ir.RefZero:
				newRef = ir.ZeroRef()
			case ir.RefImm32:
				if loEntry.copy.src.Ref.Imm != 0 {
					return
				}
				newRef = ir.ZeroRef()
			default:
				return
			}
		case ir.RefImm32:
			switch loEntry.copy.src.Ref.Kind {
			case ir.RefZero:
				newRef = ir.Imm32Ref(hiEntry.copy.src.Ref.Imm)
			case ir.RefImm32:
				if loEntry.copy.src.Ref.Imm != 0 {
					return
				}
				newRef = ir.Imm32Ref(hiEntry.copy.src.Ref.Imm)
			default:
				return
			}
		case ir.RefCBuf:
			if loEntry.copy.src.Ref.Kind != ir.RefCBuf {
				return
			}
			hiCb := hiEntry.copy.src.Ref.CBuf
			loCb := loEntry.copy.src.Ref.CBuf
			if hiCb.Buf != loCb.Buf {
				return
			}
			if loCb.Offset%8 != 0 {
				return
			}
			if hiCb.Offset != loCb.Offset+4 {
				return
			}
			newRef = ir.CBufSrcRef(loCb)
		default:
			return
		}

		src.Ref = newRef
		src.Mod = hiEntry.copy.src.Mod.Modify(src.Mod)
		p.rewritten++
		return
	}
}

func (p *Pass) propToSrc(srcType ir.SrcType, src *ir.Src) {
	switch srcType {
	case ir.TypeSSA:
		p.propToSSASrc(src)
	case ir.TypeGPR:
		p.propToGPRSrc(src)
	case ir.TypeALU, ir.TypeF16, ir.TypeF16v2, ir.TypeF32, ir.TypeI32, ir.TypeB32, ir.TypePred:
		p.propToScalarSrc(srcType, src)
	case ir.TypeF64:
		p.propToF64Src(src)
	case ir.TypeBar:
		// no-op
	}
}

// --- learning -----------------------------------------------------

func (p *Pass) tryAddInstr(instr *ir.Instr) {
	switch op := instr.Op.(type) {
	case *ir.OpHAdd2:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: HAdd2 destination must be scalar")
		}
		if !op.Saturate {
			if op.Srcs[0].IsFNegZero(ir.TypeF16v2) {
				p.addCopy(dst[0], ir.TypeF16v2, op.Srcs[1])
			} else if op.Srcs[1].IsFNegZero(ir.TypeF16v2) {
				p.addCopy(dst[0], ir.TypeF16v2, op.Srcs[0])
			}
		}
	case *ir.OpFAdd:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: FAdd destination must be scalar")
		}
		if !op.Saturate {
			if op.Srcs[0].IsFNegZero(ir.TypeF32) {
				p.addCopy(dst[0], ir.TypeF32, op.Srcs[1])
			} else if op.Srcs[1].IsFNegZero(ir.TypeF32) {
				p.addCopy(dst[0], ir.TypeF32, op.Srcs[0])
			}
		}
	case *ir.OpDAdd:
		dst := op.Dst.AsSSA()
		if op.Srcs[0].IsFNegZero(ir.TypeF64) {
			p.addFP64Copy(dst, op.Srcs[1])
		} else if op.Srcs[1].IsFNegZero(ir.TypeF64) {
			p.addFP64Copy(dst, op.Srcs[0])
		}
	case *ir.OpLop3:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: Lop3 destination must be scalar")
		}
		lut := op.Op.Lut
		switch {
		case lut == 0:
			p.addCopy(dst[0], ir.TypeALU, ir.NewSrc(ir.ZeroRef()))
		case lut == ^uint8(0):
			p.addCopy(dst[0], ir.TypeALU, ir.NewSrc(ir.Imm32Ref(0xFFFFFFFF)))
		default:
			for s := 0; s < 3; s++ {
				if lut == ir.SrcMasks[s] {
					p.addCopy(dst[0], ir.TypeALU, op.Srcs[s])
				}
			}
		}
	case *ir.OpPLop3:
		for i := 0; i < 2; i++ {
			d := op.Dsts[i]
			if !d.IsSSA {
				continue
			}
			if d.SSA.Comps() != 1 {
				panic("copyprop: PLop3 destination must be scalar")
			}
			dst := d.SSA[0]
			lut := op.Ops[i].Lut
			switch {
			case lut == 0:
				p.addCopy(dst, ir.TypePred, ir.NewSrc(ir.FalseRef()))
			case lut == ^uint8(0):
				p.addCopy(dst, ir.TypePred, ir.NewSrc(ir.TrueRef()))
			default:
				for s := 0; s < 3; s++ {
					if lut == ir.SrcMasks[s] {
						p.addCopy(dst, ir.TypePred, op.Srcs[s])
					} else if lut == ^ir.SrcMasks[s] {
						p.addCopy(dst, ir.TypePred, op.Srcs[s].BNot())
					}
				}
			}
		}
	case *ir.OpINeg:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: INeg destination must be scalar")
		}
		p.addCopy(dst[0], ir.TypeI32, op.Src.INeg())
	case *ir.OpPrmt:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: Prmt destination must be scalar")
		}
		if op.Mode != ir.PrmtModeIndex {
			return
		}
		if op.Sel.Ref.Kind != ir.RefImm32 {
			return
		}
		sel := op.Sel.Ref.Imm

		switch sel {
		case 0x3210:
			p.addCopy(dst[0], ir.TypeGPR, op.Srcs[0])
		case 0x7654:
			p.addCopy(dst[0], ir.TypeGPR, op.Srcs[1])
		default:
			isImm := true
			var imm uint32
			for d := 0; d < 4 && isImm; d++ {
				s := uint((sel >> uint(d*4)) & 0x7)
				sign := (sel>>uint(d*4))&0x8 != 0
				u, ok := op.Srcs[s/4].AsU32()
				if !ok {
					isImm = false
					break
				}
				sb := byte(u >> ((s % 4) * 8))
				if sign {
					sb = byte(int8(sb) >> 7)
				}
				imm |= uint32(sb) << uint(d*8)
			}
			if isImm {
				p.addCopy(dst[0], ir.TypeGPR, ir.NewSrc(ir.Imm32Ref(imm)))
			} else {
				p.addPrmt(dst[0], op.Srcs, uint16(sel))
			}
		}
	case *ir.OpCopy:
		dst := op.Dst.AsSSA()
		if dst.Comps() != 1 {
			panic("copyprop: Copy destination must be scalar")
		}
		p.addCopy(dst[0], ir.TypeGPR, op.Src)
	case *ir.OpParCopy:
		for _, pair := range op.Pairs {
			dst := pair.Dst.AsSSA()
			if dst.Comps() != 1 {
				panic("copyprop: ParCopy destination must be scalar")
			}
			p.addCopy(dst[0], ir.TypeGPR, pair.Src)
		}
	}
}

// Run walks f's blocks in order, learning copy facts and rewriting operand
// uses as it goes. Blocks and instructions are visited in program order;
// the input IR's SSA dominance property guarantees every def a use could
// legally depend on is already known.
func Run(f *ir.Function, log *slog.Logger) {
	p := NewPass(log)
	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			p.tryAddInstr(instr)

			p.propToPred(&instr.Pred)

			switch op := instr.Op.(type) {
			case *ir.OpIAdd2:
				if !op.CarryOut.IsSSA {
					p.propToSrc(ir.TypeI32, &op.Srcs[0])
					p.propToSrc(ir.TypeI32, &op.Srcs[1])
				} else {
					p.propToSrc(ir.TypeALU, &op.Srcs[0])
					p.propToSrc(ir.TypeALU, &op.Srcs[1])
				}
			case *ir.OpIAdd3:
				if !op.HasOverflow() {
					p.propToSrc(ir.TypeI32, &op.Srcs[0])
					p.propToSrc(ir.TypeI32, &op.Srcs[1])
					p.propToSrc(ir.TypeI32, &op.Srcs[2])
				} else {
					p.propToSrc(ir.TypeALU, &op.Srcs[0])
					p.propToSrc(ir.TypeALU, &op.Srcs[1])
					p.propToSrc(ir.TypeALU, &op.Srcs[2])
				}
			default:
				types := instr.SrcTypes()
				for i, s := range instr.SrcsMut() {
					p.propToSrc(types[i], s)
				}
			}
		}
	}
	if log != nil {
		log.Debug("copy propagation pass complete",
			slog.Int("entries learned", p.learned),
			slog.Int("instrs rewritten", p.rewritten))
	}
}
