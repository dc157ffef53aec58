/*
 * nakgpu - Texture instruction lowering: TexDim mapping, LOD/offset mode
 * decode, op dispatch.
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

// texDim maps an input sampler dimensionality and array-ness onto the
// machine TexDim enum.
func texDim(dim string, isArray bool) ir.TexDim {
	switch dim {
	case "1D":
		if isArray {
			return ir.Tex1DArray
		}
		return ir.Tex1D
	case "2D", "Buf", "MS":
		if isArray {
			return ir.Tex2DArray
		}
		return ir.Tex2D
	case "3D":
		return ir.Tex3D
	case "Cube":
		if isArray {
			return ir.TexCubeArray
		}
		return ir.TexCube
	default:
		ir.Unsupported("sampler dim %q", dim)
		return ir.Tex2D
	}
}

// decodeLodMode interprets the opaque backend flag word's LOD bits.
func decodeLodMode(flags uint32) ir.LodMode {
	switch flags & 0x7 {
	case 0:
		return ir.LodAuto
	case 1:
		return ir.LodZero
	case 2:
		return ir.LodBias
	case 3:
		return ir.LodLod
	case 4:
		return ir.LodClampBias
	case 5:
		return ir.LodClampLod
	default:
		return ir.LodAuto
	}
}

// decodeOffsetMode interprets the opaque backend flag word's offset bit.
func decodeOffsetMode(flags uint32, hasOffset bool) ir.OffsetMode {
	if !hasOffset {
		return ir.OffsetNone
	}
	if flags&0x8 != 0 {
		return ir.OffsetPerPx
	}
	return ir.OffsetAA
}

func srcsFromDefs(e *Engine, defs []inputir.Def) []ir.Src {
	out := make([]ir.Src, len(defs))
	for i, d := range defs {
		ref := e.getSSA(d)
		out[i] = ir.SrcFromSSA(ir.SSARef{ref[0]})
	}
	return out
}

func handleSrc(e *Engine, h inputir.Def) ir.Src {
	ref := e.getSSA(h)
	return ir.SrcFromSSA(ir.SSARef{ref[0]})
}

func offsetSrc(offs []int32) ir.Src {
	if len(offs) == 0 {
		return ir.SrcZero()
	}
	var packed uint32
	for i, v := range offs {
		if i >= 4 {
			break
		}
		packed |= (uint32(v) & 0xFF) << uint(i*8)
	}
	return ir.NewSrc(ir.Imm32Ref(packed))
}

// texMask normalizes a TexInstr's component mask: zero means every
// destination component is written.
func texMask(t *inputir.TexInstr) uint8 {
	if t.Mask != 0 {
		return t.Mask
	}
	return uint8(1)<<t.Dst.NumComponents - 1
}

// texDsts allocates the packed destination refs for the enabled components
// of dst (1 or 2 refs of up to 2 components each) and records dst's final
// lane vector, filling masked-off components with Mov(Zero).
func (e *Engine) texDsts(dst inputir.Def, mask uint8) [2]ir.Dst {
	comps := int(dst.NumComponents)
	var texLanes ir.SSARef
	final := make([]ir.SSAValue, comps)
	for c := 0; c < comps; c++ {
		if mask&(1<<uint(c)) != 0 {
			v := e.builder.AllocSSA(ir.FileGPR, 1)[0]
			texLanes = append(texLanes, v)
			final[c] = v
		} else {
			final[c] = e.builder.Mov(ir.SrcZero())[0]
		}
	}
	e.setSSA(dst, ir.NewSSARef(final))

	var out [2]ir.Dst
	if len(texLanes) == 0 {
		return out
	}
	if len(texLanes) <= 2 {
		out[0] = ir.SSADst(texLanes)
	} else {
		out[0] = ir.SSADst(texLanes[:2])
		out[1] = ir.SSADst(texLanes[2:])
	}
	return out
}

func (e *Engine) lowerTex(t *inputir.TexInstr) {
	switch t.Op {
	case "txq":
		ref := e.defAllocSSA(t.Dst)
		e.builder.PushOp(&ir.OpTxq{Dst: ir.SSADst(ir.SSARef{ref[0]}), Handle: handleSrc(e, t.Handle), Query: 0})

	case "lod":
		e.builder.PushOp(&ir.OpTmml{
			Dsts: e.texDsts(t.Dst, texMask(t)), Handle: handleSrc(e, t.Handle),
			Coords: srcsFromDefs(e, t.Coords), Dim: texDim(t.Dim, t.IsArray),
		})

	case "txd":
		coords := srcsFromDefs(e, t.Coords)
		ddxddy := append(srcsFromDefs(e, t.Ddx), srcsFromDefs(e, t.Ddy)...)
		e.builder.PushOp(&ir.OpTxd{
			Dsts: e.texDsts(t.Dst, texMask(t)), Handle: handleSrc(e, t.Handle), Coords: coords,
			DdxDdy: ddxddy, Dim: texDim(t.Dim, t.IsArray), Offset: offsetSrc(t.Offset),
			Mask: texMask(t),
		})

	case "txf", "txf_ms":
		e.builder.PushOp(&ir.OpTld{
			Dsts: e.texDsts(t.Dst, texMask(t)), Handle: handleSrc(e, t.Handle), Coords: srcsFromDefs(e, t.Coords),
			Dim: texDim(t.Dim, t.IsArray), MS: t.Op == "txf_ms", Offset: offsetSrc(t.Offset),
			Mask: texMask(t),
		})

	case "tg4":
		e.builder.PushOp(&ir.OpTld4{
			Dsts: e.texDsts(t.Dst, texMask(t)), Handle: handleSrc(e, t.Handle), Coords: srcsFromDefs(e, t.Coords),
			Dim: texDim(t.Dim, t.IsArray), Component: t.Component,
			OffsetMode: decodeOffsetMode(t.FlagWord, len(t.Offset) > 0), Offset: offsetSrc(t.Offset),
			DepthCmp: t.IsShadow, Mask: texMask(t),
		})

	default: // "tex" and any other sample variant
		lodMode := decodeLodMode(t.FlagWord)
		lod := ir.SrcZero()
		if t.Lod != nil {
			lod = handleSrc(e, *t.Lod)
		} else if t.Bias != nil {
			lod = handleSrc(e, *t.Bias)
		}
		e.builder.PushOp(&ir.OpTex{
			Dsts: e.texDsts(t.Dst, texMask(t)), Handle: handleSrc(e, t.Handle), Coords: srcsFromDefs(e, t.Coords),
			Dim: texDim(t.Dim, t.IsArray), LodMode: lodMode, Lod: lod,
			OffsetMode: decodeOffsetMode(t.FlagWord, len(t.Offset) > 0), Offset: offsetSrc(t.Offset),
			DepthCmp: t.IsShadow, Mask: texMask(t),
		})
	}
}
