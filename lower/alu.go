/*
 * nakgpu - ALU instruction lowering.
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
	debug "github.com/rcornwell/nakgpu/util/debug"
)

func (e *Engine) aluLane(a inputir.ALUSrc, comp int) int {
	if comp < len(a.Swizzle) {
		return int(a.Swizzle[comp])
	}
	return comp
}

// scalarSrc gathers one 32-bit-or-narrower lane of a source, honoring its
// swizzle and its fabs/fneg source modifiers.
func (e *Engine) scalarSrc(a inputir.ALUSrc, comp int) ir.Src {
	ref := e.getSSA(a.Src)
	idx := e.aluLane(a, comp)
	s := ir.SrcFromSSA(ir.SSARef{ref[idx]})
	if a.Abs {
		s = s.FAbs()
	}
	if a.Neg {
		s = s.FNeg()
	}
	return s
}

// f64Src gathers the 2-lane pair for a 64-bit source's comp'th component:
// 64-bit sources take the lane pair at 2*swizzle.
func (e *Engine) f64Src(a inputir.ALUSrc, comp int) ir.Src {
	ref := e.getSSA(a.Src)
	idx := e.aluLane(a, comp) * 2
	s := ir.SrcFromSSA(ir.SSARef{ref[idx], ref[idx+1]})
	if a.Abs {
		s = s.FAbs()
	}
	if a.Neg {
		s = s.FNeg()
	}
	return s
}

// tryFoldSaturate reports whether a's destination is in the saturated
// set, in which case the saturate folds into the producer.
func (e *Engine) tryFoldSaturate(dst inputir.Def) bool {
	return e.saturated[dst.Index]
}

func (e *Engine) dst1(a *inputir.ALU) ir.Dst {
	ref := e.defAllocSSA(a.Dst)
	return ir.SSADst(ir.SSARef{ref[0]})
}

func (e *Engine) predDst1(a *inputir.ALU) ir.Dst {
	ref := e.defAllocSSA(a.Dst)
	return ir.SSADst(ir.SSARef{ref[0]})
}

func (e *Engine) lowerALU(a *inputir.ALU) {
	switch a.Op {
	case "mov":
		ref := e.defAllocSSA(a.Dst)
		var pairs []ir.DstSrc
		lane := 0
		for c := 0; c < int(a.Dst.NumComponents); c++ {
			if a.Dst.BitSize == 64 {
				for half := 0; half < 2; half++ {
					pairs = append(pairs, ir.DstSrc{
						Dst: ir.SSADst(ir.SSARef{ref[lane]}),
						Src: e.halfLane(a.Srcs[0], c, half),
					})
					lane++
				}
			} else {
				pairs = append(pairs, ir.DstSrc{
					Dst: ir.SSADst(ir.SSARef{ref[lane]}),
					Src: e.scalarSrc(a.Srcs[0], c),
				})
				lane++
			}
		}
		e.builder.PushOp(&ir.OpParCopy{Pairs: pairs})

	case "vec2", "vec3", "vec4", "vec5", "vec8", "vec16":
		ref := e.defAllocSSA(a.Dst)
		var pairs []ir.DstSrc
		lane := 0
		for _, s := range a.Srcs {
			if a.Dst.BitSize == 64 {
				for half := 0; half < 2; half++ {
					pairs = append(pairs, ir.DstSrc{
						Dst: ir.SSADst(ir.SSARef{ref[lane]}),
						Src: e.halfLane(s, 0, half),
					})
					lane++
				}
			} else {
				pairs = append(pairs, ir.DstSrc{
					Dst: ir.SSADst(ir.SSARef{ref[lane]}),
					Src: e.scalarSrc(s, 0),
				})
				lane++
			}
		}
		e.builder.PushOp(&ir.OpParCopy{Pairs: pairs})

	case "b2b1":
		e.builder.PushOp(&ir.OpISetP{
			Dst: e.predDst1(a), Cmp: ir.CmpNe, CmpType: ir.CmpTypeI32,
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), ir.SrcZero()},
		})

	case "b2b32", "b2i32":
		e.builder.PushOp(&ir.OpSel{
			Dst: e.dst1(a), Cond: e.scalarSrc(a.Srcs[0], 0).BNot(),
			Srcs: [2]ir.Src{ir.SrcZero(), ir.NewSrc(ir.Imm32Ref(1))},
		})

	case "b2f32":
		e.builder.PushOp(&ir.OpSel{
			Dst: e.dst1(a), Cond: e.scalarSrc(a.Srcs[0], 0).BNot(),
			Srcs: [2]ir.Src{ir.SrcZero(), ir.NewSrc(ir.Imm32Ref(0x3f800000))},
		})

	case "bcsel":
		e.builder.PushOp(&ir.OpSel{
			Dst: e.dst1(a), Cond: e.scalarSrc(a.Srcs[0], 0),
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[1], 0), e.scalarSrc(a.Srcs[2], 0)},
		})

	case "bit_count":
		e.builder.PushOp(&ir.OpPopC{Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0)})

	case "bitfield_reverse":
		e.builder.PushOp(&ir.OpBrev{Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0)})

	case "find_lsb":
		rev := e.builder.AllocSSA(ir.FileGPR, 1)
		e.builder.PushOp(&ir.OpBrev{Dst: ir.SSADst(rev), Src: e.scalarSrc(a.Srcs[0], 0)})
		e.builder.PushOp(&ir.OpBFind{
			Dst: e.dst1(a), Src: ir.SrcFromSSA(rev), Signed: false, ReturnShiftAmount: true,
		})

	case "f2i32", "f2u32":
		e.builder.PushOp(&ir.OpF2I{
			Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0), Signed: a.Op == "f2i32", Round: ir.RoundZero,
		})

	case "fabs", "fneg":
		src := e.scalarSrc(a.Srcs[0], 0)
		if a.Op == "fabs" {
			src = src.FAbs()
		} else {
			src = src.FNeg()
		}
		e.builder.PushOp(&ir.OpFAdd{
			Dst: e.dst1(a), Srcs: [2]ir.Src{src, ir.SrcZero()},
			Round: ir.RoundNearestEven, Saturate: e.tryFoldSaturate(a.Dst),
		})

	case "fadd":
		if a.Dst.BitSize == 64 {
			ref := e.defAllocSSA(a.Dst)
			e.builder.PushOp(&ir.OpDAdd{
				Dst:  ir.SSADst(ref),
				Srcs: [2]ir.Src{e.f64Src(a.Srcs[0], 0), e.f64Src(a.Srcs[1], 0)},
			})
			return
		}
		e.builder.PushOp(&ir.OpFAdd{
			Dst: e.dst1(a), Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
			Round: ir.RoundNearestEven, Saturate: e.tryFoldSaturate(a.Dst),
		})

	case "fceil", "ffloor", "ftrunc", "fround_even":
		round := map[string]ir.RoundMode{
			"fceil": ir.RoundPosInf, "ffloor": ir.RoundNegInf,
			"ftrunc": ir.RoundZero, "fround_even": ir.RoundNearestEven,
		}[a.Op]
		e.builder.PushOp(&ir.OpFRnd{Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0), Round: round})

	case "fcos", "fsin":
		invTwoPi := ir.NewSrc(ir.Imm32Ref(0x3e22f983))
		scaled := e.builder.FMul(e.scalarSrc(a.Srcs[0], 0), invTwoPi)
		op := ir.MuFuCos
		if a.Op == "fsin" {
			op = ir.MuFuSin
		}
		e.builder.PushOp(&ir.OpMuFu{Dst: e.dst1(a), Src: ir.SrcFromSSA(scaled), Op: op})

	case "fexp2", "flog2", "frcp", "frsq", "fsqrt":
		op := map[string]ir.MuFuOp{
			"fexp2": ir.MuFuExp2, "flog2": ir.MuFuLog2, "frcp": ir.MuFuRcp,
			"frsq": ir.MuFuRsq, "fsqrt": ir.MuFuSqrt,
		}[a.Op]
		e.builder.PushOp(&ir.OpMuFu{Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0), Op: op})

	case "fmax", "fmin":
		e.builder.PushOp(&ir.OpFMnMx{
			Dst: e.dst1(a), Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
			Min: a.Op == "fmin",
		})

	case "fmul":
		e.builder.PushOp(&ir.OpFMul{
			Dst: e.dst1(a), Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
			Round: ir.RoundNearestEven, Saturate: e.tryFoldSaturate(a.Dst),
		})

	case "fquantize2f16":
		half := e.builder.AllocSSA(ir.FileGPR, 1)
		e.builder.PushOp(&ir.OpF2F{
			Dst: ir.SSADst(half), Src: e.scalarSrc(a.Srcs[0], 0), SrcBits: 32, DstBits: 16, Ftz: true,
		})
		e.builder.PushOp(&ir.OpF2F{
			Dst: e.dst1(a), Src: ir.SrcFromSSA(half), SrcBits: 16, DstBits: 32, Ftz: true,
		})

	case "fsat":
		src0 := a.Srcs[0].Src
		if e.saturated[src0.Index] {
			debug.Tracef(e.log, e.opts.TraceMask, debug.TraceSaturate, "folding fsat of def %d into Mov", src0.Index)
			e.builder.PushOp(&ir.OpMov{Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0)})
		} else {
			e.builder.PushOp(&ir.OpFAdd{
				Dst: e.dst1(a), Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), ir.SrcZero()},
				Round: ir.RoundNearestEven, Saturate: true,
			})
		}

	case "fsign":
		s := e.scalarSrc(a.Srcs[0], 0)
		lz := e.builder.FSet(ir.CmpLt, s, ir.SrcZero())
		gz := e.builder.FSet(ir.CmpGt, s, ir.SrcZero())
		e.builder.PushOp(&ir.OpFAdd{
			Dst: e.dst1(a), Srcs: [2]ir.Src{ir.SrcFromSSA(gz), ir.SrcFromSSA(lz).FNeg()},
			Round: ir.RoundNearestEven,
		})

	case "isign":
		s := e.scalarSrc(a.Srcs[0], 0)
		gtPred := e.builder.ISetP(ir.CmpTypeI32, ir.CmpGt, s, ir.SrcZero())
		gt := e.builder.Sel(ir.SrcFromSSA(gtPred).BNot(), ir.SrcZero(), ir.NewSrc(ir.Imm32Ref(^uint32(0))))
		ltPred := e.builder.ISetP(ir.CmpTypeI32, ir.CmpLt, s, ir.SrcZero())
		lt := e.builder.Sel(ir.SrcFromSSA(ltPred).BNot(), ir.SrcZero(), ir.NewSrc(ir.Imm32Ref(^uint32(0))))
		gtNeg := e.builder.INeg(ir.SrcFromSSA(gt))
		switch a.Dst.BitSize {
		case 32:
			e.builder.PushOp(&ir.OpIAdd3{
				Dst:  e.dst1(a),
				Srcs: [3]ir.Src{ir.SrcFromSSA(lt), ir.SrcFromSSA(gtNeg), ir.SrcZero()},
			})
		case 64:
			ref := e.defAllocSSA(a.Dst)
			e.builder.PushOp(&ir.OpIAdd3{
				Dst:  ir.SSADst(ir.SSARef{ref[0]}),
				Srcs: [3]ir.Src{ir.SrcFromSSA(lt), ir.SrcFromSSA(gtNeg), ir.SrcZero()},
			})
			e.builder.PushOp(&ir.OpShf{
				Dst: ir.SSADst(ir.SSARef{ref[1]}), Low: ir.SrcZero(),
				High:  ir.SrcFromSSA(ir.SSARef{ref[0]}),
				Shift: ir.NewSrc(ir.Imm32Ref(31)), Right: true, Wrap: true, DstHigh: true,
			})
		default:
			panic("lower: isign on an unreachable integer type")
		}

	case "iadd":
		if a.Dst.BitSize == 64 {
			e.lowerIAdd64(a)
			return
		}
		e.builder.PushOp(&ir.OpIAdd3{
			Dst: e.dst1(a), Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.SrcZero()},
		})

	case "iand", "ior", "ixor":
		lut := map[string]ir.LogicOp3{"iand": ir.LutAnd2, "ior": ir.LutOr2, "ixor": ir.LutXor2}[a.Op]
		e.builder.PushOp(&ir.OpLop3{
			Dst: e.dst1(a), Op: lut,
			Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.SrcZero()},
		})

	case "inot":
		if a.Dst.BitSize == 1 {
			e.builder.PushOp(&ir.OpPLop3{
				Dsts: [2]ir.Dst{e.predDst1(a), ir.NoDst()},
				Ops:  [2]ir.LogicOp3{ir.LutXor2, ir.LutFalse},
				Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), ir.NewSrc(ir.TrueRef()), ir.NewSrc(ir.TrueRef())},
			})
			return
		}
		e.builder.PushOp(&ir.OpLop3{
			Dst: e.dst1(a), Op: ir.LutNot0,
			Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), ir.SrcZero(), ir.SrcZero()},
		})

	case "ieq", "ine":
		if a.Srcs[0].Src.BitSize == 1 {
			lut := ir.LutXor2
			if a.Op == "ieq" {
				lut = ir.LutXnor2
			}
			e.builder.PushOp(&ir.OpPLop3{
				Dsts: [2]ir.Dst{e.predDst1(a), ir.NoDst()},
				Ops:  [2]ir.LogicOp3{lut, ir.LutFalse},
				Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.NewSrc(ir.TrueRef())},
			})
			return
		}
		cmp := ir.CmpEq
		if a.Op == "ine" {
			cmp = ir.CmpNe
		}
		e.builder.PushOp(&ir.OpISetP{
			Dst: e.predDst1(a), Cmp: cmp, CmpType: ir.CmpTypeI32,
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
		})

	case "ige", "ilt":
		cmp := ir.CmpGe
		if a.Op == "ilt" {
			cmp = ir.CmpLt
		}
		e.builder.PushOp(&ir.OpISetP{
			Dst: e.predDst1(a), Cmp: cmp, CmpType: ir.CmpTypeI32,
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
		})

	case "uge", "ult":
		cmp := ir.CmpGe
		if a.Op == "ult" {
			cmp = ir.CmpLt
		}
		e.builder.PushOp(&ir.OpISetP{
			Dst: e.predDst1(a), Cmp: cmp, CmpType: ir.CmpTypeU32,
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
		})

	case "imax", "imin", "umax", "umin":
		ct := ir.CmpTypeI32
		if a.Op[0] == 'u' {
			ct = ir.CmpTypeU32
		}
		e.builder.PushOp(&ir.OpIMnMx{
			Dst: e.dst1(a), CmpType: ct, Min: a.Op == "imin" || a.Op == "umin",
			Srcs: [2]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0)},
		})

	case "imul":
		e.builder.PushOp(&ir.OpIMad{
			Dst: e.dst1(a), Signed: false,
			Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.SrcZero()},
		})

	case "imul_2x32_64", "umul_2x32_64":
		e.builder.PushOp(&ir.OpIMad64{
			Dst: e.dst1(a), Signed: a.Op == "imul_2x32_64", DstHigh: false,
			Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.SrcZero()},
		})

	case "imul_high", "umul_high":
		e.builder.PushOp(&ir.OpIMad64{
			Dst: e.dst1(a), Signed: a.Op == "imul_high", DstHigh: true,
			Srcs: [3]ir.Src{e.scalarSrc(a.Srcs[0], 0), e.scalarSrc(a.Srcs[1], 0), ir.SrcZero()},
		})

	case "ishl":
		e.builder.PushOp(&ir.OpShf{
			Dst: e.dst1(a), Low: e.scalarSrc(a.Srcs[0], 0), High: ir.SrcZero(),
			Shift: e.scalarSrc(a.Srcs[1], 0), Right: false, Wrap: true,
		})

	case "ishr":
		e.builder.PushOp(&ir.OpShf{
			Dst: e.dst1(a), Low: ir.SrcZero(), High: e.scalarSrc(a.Srcs[0], 0),
			Shift: e.scalarSrc(a.Srcs[1], 0), Right: true, Wrap: true, DstHigh: true,
		})

	case "ushr":
		e.builder.PushOp(&ir.OpShf{
			Dst: e.dst1(a), Low: e.scalarSrc(a.Srcs[0], 0), High: ir.SrcZero(),
			Shift: e.scalarSrc(a.Srcs[1], 0), Right: true, Wrap: true,
		})

	case "pack_64_2x32_split":
		ref := e.defAllocSSA(a.Dst)
		e.builder.PushOp(&ir.OpParCopy{Pairs: []ir.DstSrc{
			{Dst: ir.SSADst(ir.SSARef{ref[0]}), Src: e.scalarSrc(a.Srcs[0], 0)},
			{Dst: ir.SSADst(ir.SSARef{ref[1]}), Src: e.scalarSrc(a.Srcs[1], 0)},
		}})

	case "pack_half_2x16_split":
		lo := e.builder.AllocSSA(ir.FileGPR, 1)
		hi := e.builder.AllocSSA(ir.FileGPR, 1)
		e.builder.PushOp(&ir.OpF2F{Dst: ir.SSADst(lo), Src: e.scalarSrc(a.Srcs[0], 0), SrcBits: 32, DstBits: 16})
		e.builder.PushOp(&ir.OpF2F{Dst: ir.SSADst(hi), Src: e.scalarSrc(a.Srcs[1], 0), SrcBits: 32, DstBits: 16})
		e.builder.PushOp(&ir.OpPrmt{
			Dst: e.dst1(a), Srcs: [2]ir.Src{ir.SrcFromSSA(lo), ir.SrcFromSSA(hi)},
			Sel: ir.NewSrc(ir.Imm32Ref(0x5410)), Mode: ir.PrmtModeIndex,
		})

	case "unpack_half_2x16_split_x", "unpack_half_2x16_split_y":
		e.builder.PushOp(&ir.OpF2F{
			Dst: e.dst1(a), Src: e.scalarSrc(a.Srcs[0], 0), SrcBits: 16, DstBits: 32,
			HighHalf: a.Op == "unpack_half_2x16_split_y",
		})

	case "unpack_64_2x32_split_x", "unpack_64_2x32_split_y":
		ref := e.getSSA(a.Srcs[0].Src)
		idx := 0
		if a.Op == "unpack_64_2x32_split_y" {
			idx = 1
		}
		e.builder.PushOp(&ir.OpMov{Dst: e.dst1(a), Src: ir.SrcFromSSA(ir.SSARef{ref[idx]})})

	default:
		ir.Unsupported("ALU op %q", a.Op)
	}
}

// lowerIAdd64 implements the 64-bit iadd row: a low IAdd3 producing a
// carry-out overflow, chained into a high IAdd3 that consumes it as a
// carry-in.
func (e *Engine) lowerIAdd64(a *inputir.ALU) {
	ref := e.defAllocSSA(a.Dst)
	carry := e.builder.AllocSSA(ir.FilePred, 1)

	loSrc0, loSrc1 := e.halfLane(a.Srcs[0], 0, 0), e.halfLane(a.Srcs[1], 0, 0)

	e.builder.PushOp(&ir.OpIAdd3{
		Dst:      ir.SSADst(ir.SSARef{ref[0]}),
		Srcs:     [3]ir.Src{loSrc0, loSrc1, ir.SrcZero()},
		Overflow: [2]ir.Dst{ir.SSADst(carry), ir.NoDst()},
	})
	hiSrc0, hiSrc1 := e.halfLane(a.Srcs[0], 0, 1), e.halfLane(a.Srcs[1], 0, 1)
	e.builder.PushOp(&ir.OpIAdd3{
		Dst:     ir.SSADst(ir.SSARef{ref[1]}),
		Srcs:    [3]ir.Src{hiSrc0, hiSrc1, ir.SrcZero()},
		CarryIn: [2]ir.PredRef{ir.SSAPredRef(carry[0]), {}},
	})
}

// halfLane returns the lo (half=0) or hi (half=1) 32-bit lane of a
// 64-bit ALU source's comp'th component.
func (e *Engine) halfLane(a inputir.ALUSrc, comp, half int) ir.Src {
	ref := e.getSSA(a.Src)
	idx := e.aluLane(a, comp)*2 + half
	return ir.SrcFromSSA(ir.SSARef{ref[idx]})
}
