/*
 * nakgpu - Intrinsic lowering: memory, atomic, barrier, constant-buffer,
 * attribute, interpolation, and fragment-output intrinsics.
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

	inputir "github.com/rcornwell/nakgpu/inputir"
	ir "github.com/rcornwell/nakgpu/ir"
)

// getIOAddrOffset is the host's address-offset helper: it decides how
// much of addr can be folded into a compile-time-immediate offset within
// the target's imm_bits window, returning the remaining SSA base and the
// immediate. The core treats this split as definitive. A
// literal address (a bare LoadConst) collapses entirely into the
// immediate; an iadd(base, const) collapses its constant half; anything
// else keeps the whole address as the base with a zero immediate.
func (e *Engine) getIOAddrOffset(addr inputir.Def, immBits uint8) (ir.Src, int32) {
	mask := int32(1)<<immBits - 1

	if lc, ok := e.defProducer[addr.Index].(*inputir.LoadConst); ok {
		v := int32(uint32(lc.Values[0]))
		if v >= 0 && v <= mask {
			return ir.SrcZero(), v
		}
	}

	if alu, ok := e.defProducer[addr.Index].(*inputir.ALU); ok && alu.Op == "iadd" && len(alu.Srcs) == 2 {
		if lc, ok := e.defProducer[alu.Srcs[1].Src.Index].(*inputir.LoadConst); ok {
			v := int32(uint32(lc.Values[0]))
			if v >= 0 && v <= mask {
				ref := e.getSSA(alu.Srcs[0].Src)
				return ir.SrcFromSSA(ir.SSARef{ref[0]}), v
			}
		}
	}

	ref := e.getSSA(addr)
	return ir.SrcFromSSA(ir.SSARef{ref[0]}), 0
}

func memSpace(name string) (ir.MemSpace, string) {
	switch {
	case strings.HasPrefix(name, "global_"):
		return ir.MemGlobal, strings.TrimPrefix(name, "global_")
	case strings.HasPrefix(name, "shared_"):
		return ir.MemShared, strings.TrimPrefix(name, "shared_")
	case strings.HasPrefix(name, "local_"):
		return ir.MemLocal, strings.TrimPrefix(name, "local_")
	case strings.HasSuffix(name, "_global"):
		return ir.MemGlobal, strings.TrimSuffix(name, "_global")
	case strings.HasSuffix(name, "_shared"):
		return ir.MemShared, strings.TrimSuffix(name, "_shared")
	case strings.HasSuffix(name, "_local"):
		return ir.MemLocal, strings.TrimSuffix(name, "_local")
	default:
		ir.Unsupported("intrinsic %q has no recognized address-space prefix", name)
		return ir.MemGlobal, name
	}
}

func memOrder(order string) ir.MemOrder {
	switch order {
	case "relaxed", "":
		return ir.OrderWeak
	case "acquire":
		return ir.OrderAcquire
	case "release":
		return ir.OrderRelease
	case "acq_rel", "seq_cst":
		return ir.OrderStrong
	default:
		ir.Unsupported("memory order %q", order)
		return ir.OrderWeak
	}
}

func memScope(scope string) ir.MemScope {
	switch scope {
	case "none", "":
		return ir.ScopeNone
	case "invocation", "workgroup":
		return ir.ScopeCTA
	case "queue_family", "device":
		return ir.ScopeGPU
	case "system":
		return ir.ScopeSystem
	default:
		ir.Unsupported("memory scope %q", scope)
		return ir.ScopeNone
	}
}

func addrType(bits uint8) ir.MemAddrType {
	if bits == 64 {
		return ir.AddrA64
	}
	return ir.AddrA32
}

var atomOpTable = map[string]ir.AtomOp{
	"iadd": ir.AtomAdd, "fadd": ir.AtomAdd,
	"imin": ir.AtomMin, "umin": ir.AtomMin, "fmin": ir.AtomMin,
	"imax": ir.AtomMax, "umax": ir.AtomMax, "fmax": ir.AtomMax,
	"iand": ir.AtomAnd, "ior": ir.AtomOr, "ixor": ir.AtomXor,
	"xchg": ir.AtomExch,
}

func atomType(op string, bitSize uint8) ir.AtomType {
	switch op {
	case "fadd", "fmin", "fmax":
		return ir.AtomF32
	case "umin", "umax":
		if bitSize == 64 {
			return ir.AtomU64
		}
		return ir.AtomU32
	default:
		if bitSize == 64 {
			return ir.AtomI64
		}
		return ir.AtomI32
	}
}

func (e *Engine) lowerIntrinsic(in *inputir.Intrinsic) {
	switch {
	case in.Name == "barrier":
		if in.Memory.MemoryScope != "none" && in.Memory.MemoryScope != "" {
			e.builder.PushOp(&ir.OpMemBar{
				Order: memOrder(in.Memory.Order), Scope: memScope(in.Memory.MemoryScope),
			})
		}
		if in.Memory.ExecutionScope != "none" && in.Memory.ExecutionScope != "" {
			e.builder.PushOp(&ir.OpBar{})
		}

	case in.Name == "load_ubo":
		e.lowerLoadUBO(in)

	case in.Name == "load_input":
		e.lowerLoadInput(in)

	case in.Name == "load_interpolated":
		e.lowerLoadInterpolated(in)

	case in.Name == "store_output":
		e.lowerStoreOutput(in)

	case strings.HasSuffix(in.Name, "_cmpxchg"):
		e.lowerAtomCas(in)

	case strings.Contains(in.Name, "_atomic_"):
		e.lowerAtom(in)

	case strings.HasPrefix(in.Name, "load_"):
		e.lowerLoad(in)

	case strings.HasPrefix(in.Name, "store_"):
		e.lowerStore(in)

	default:
		ir.Unsupported("intrinsic %q", in.Name)
	}
}

// lowerLoad handles load_global/load_shared/load_local: one OpLd per
// destination lane, addresses folded through the address-offset helper and
// walked forward 4 bytes per lane.
func (e *Engine) lowerLoad(in *inputir.Intrinsic) {
	space, _ := memSpace(in.Name)
	base, off := e.getIOAddrOffset(in.Srcs[0], e.opts.AddrImmBits)

	ref := e.defAllocSSA(*in.Dst)
	for i, v := range ref {
		e.builder.PushOp(&ir.OpLd{
			Dst: ir.SSADst(ir.SSARef{v}), Addr: base, Offset: off + int32(i)*4,
			AddrType: addrType(in.Memory.AddrBits), Space: space,
			Order: memOrder(in.Memory.Order), Scope: memScope(in.Memory.MemoryScope),
		})
	}
}

// lowerStore handles store_global/store_shared/store_local: Srcs[0] is the
// address, Srcs[1:] the data components, one OpSt per component.
func (e *Engine) lowerStore(in *inputir.Intrinsic) {
	space, _ := memSpace(in.Name)
	base, off := e.getIOAddrOffset(in.Srcs[0], e.opts.AddrImmBits)

	for i, d := range in.Srcs[1:] {
		ref := e.getSSA(d)
		e.builder.PushOp(&ir.OpSt{
			Addr: base, Data: ir.SrcFromSSA(ir.SSARef{ref[0]}), Offset: off + int32(i)*4,
			AddrType: addrType(in.Memory.AddrBits), Space: space,
			Order: memOrder(in.Memory.Order), Scope: memScope(in.Memory.MemoryScope),
		})
	}
}

// lowerAtom handles the non-compare-and-swap atomics: {space}_atomic_{op}.
func (e *Engine) lowerAtom(in *inputir.Intrinsic) {
	space, rest := memSpace(in.Name)
	op := strings.TrimPrefix(rest, "atomic_")
	atomOp, ok := atomOpTable[op]
	if !ok {
		ir.Unsupported("atomic op %q", op)
		return
	}
	base, off := e.getIOAddrOffset(in.Srcs[0], e.opts.AddrImmBits)
	dataRef := e.getSSA(in.Srcs[1])
	bitSize := in.Srcs[1].BitSize

	e.builder.PushOp(&ir.OpAtom{
		Dst: e.dstForIntrinsic(in), Addr: base, Data: ir.SrcFromSSA(ir.SSARef{dataRef[0]}),
		Offset: off, AtomOp: atomOp, AtomType: atomType(op, bitSize),
		AddrType: addrType(in.Memory.AddrBits), Space: space,
		Order: memOrder(in.Memory.Order), Scope: memScope(in.Memory.MemoryScope),
	})
}

// lowerAtomCas handles {space}_atomic_cmpxchg: Srcs are [addr, cmp, data].
func (e *Engine) lowerAtomCas(in *inputir.Intrinsic) {
	space, _ := memSpace(in.Name)
	base, off := e.getIOAddrOffset(in.Srcs[0], e.opts.AddrImmBits)
	cmpRef := e.getSSA(in.Srcs[1])
	dataRef := e.getSSA(in.Srcs[2])

	e.builder.PushOp(&ir.OpAtomCas{
		Dst: e.dstForIntrinsic(in), Addr: base,
		Cmp: ir.SrcFromSSA(ir.SSARef{cmpRef[0]}), Data: ir.SrcFromSSA(ir.SSARef{dataRef[0]}),
		Offset: off, AtomType: atomType("", in.Srcs[1].BitSize),
		AddrType: addrType(in.Memory.AddrBits), Space: space,
		Order: memOrder(in.Memory.Order), Scope: memScope(in.Memory.MemoryScope),
	})
}

func (e *Engine) dstForIntrinsic(in *inputir.Intrinsic) ir.Dst {
	if in.Dst == nil {
		return ir.NoDst()
	}
	return ir.SSADst(e.defAllocSSA(*in.Dst))
}

// lowerLoadUBO lowers load_ubo: Const[0] is the
// literal constant-buffer index; Srcs[0] is the byte offset. A literal
// zero offset collapses to a ParCopy straight from CBuf refs; anything
// else goes through OpLdc, one lane at a time.
func (e *Engine) lowerLoadUBO(in *inputir.Intrinsic) {
	buf := uint8(in.Const[0])
	ref := e.defAllocSSA(*in.Dst)

	if lc, ok := e.defProducer[in.Srcs[0].Index].(*inputir.LoadConst); ok && lc.Values[0] == 0 {
		pairs := make([]ir.DstSrc, len(ref))
		for i, v := range ref {
			cb := ir.CBufRef{Buf: buf, Offset: uint16(i * 4)}
			pairs[i] = ir.DstSrc{Dst: ir.SSADst(ir.SSARef{v}), Src: ir.NewSrc(ir.CBufSrcRef(cb))}
		}
		e.builder.PushOp(&ir.OpParCopy{Pairs: pairs})
		return
	}

	offRef := e.getSSA(in.Srcs[0])
	offSrc := ir.SrcFromSSA(ir.SSARef{offRef[0]})
	for i, v := range ref {
		off := offSrc
		if i > 0 {
			off = ir.SrcFromSSA(e.builder.IAdd(offSrc, ir.NewSrc(ir.Imm32Ref(uint32(i*4)))))
		}
		e.builder.PushOp(&ir.OpLdc{
			Dst: ir.SSADst(ir.SSARef{v}), Buf: ir.NewSrc(ir.Imm32Ref(uint32(buf))), Offset: off,
		})
	}
}

// lowerLoadInput implements per-vertex and non-per-vertex attribute loads:
// Const[0] is the base attribute offset; a non-empty Srcs[0] supplies an
// explicit per-vertex offset, otherwise Zero is passed.
func (e *Engine) lowerLoadInput(in *inputir.Intrinsic) {
	base := uint16(in.Const[0])
	perVertex := len(in.Srcs) > 0
	vtxOffset := ir.SrcZero()
	if perVertex {
		ref := e.getSSA(in.Srcs[0])
		vtxOffset = ir.SrcFromSSA(ir.SSARef{ref[0]})
	}

	ref := e.defAllocSSA(*in.Dst)
	for i, v := range ref {
		e.builder.PushOp(&ir.OpALd{
			Dst: ir.SSADst(ir.SSARef{v}), VtxOffset: vtxOffset,
			Offset: base + uint16(i)*4, PerVertex: perVertex,
		})
	}
}

// lowerLoadInterpolated emits one OpIpa per destination component.
func (e *Engine) lowerLoadInterpolated(in *inputir.Intrinsic) {
	base := uint16(in.Const[0])
	ref := e.defAllocSSA(*in.Dst)
	for i, v := range ref {
		e.builder.PushOp(&ir.OpIpa{Dst: ir.SSADst(ir.SSARef{v}), Offset: base + uint16(i)*4})
	}
}

// lowerStoreOutput handles fragment-shader output capture: in a
// fragment shader, writes land in fs_out_regs indexed by
// base+component; in every other stage they become OpASt attribute stores.
func (e *Engine) lowerStoreOutput(in *inputir.Intrinsic) {
	base := int(in.Const[0])
	ref := e.getSSA(in.Srcs[0])

	if e.fsOutRegs != nil {
		for i, v := range ref {
			idx := base + i
			if idx < len(e.fsOutRegs) {
				e.fsOutRegs[idx] = ir.SrcFromSSA(ir.SSARef{v})
			}
		}
		return
	}

	for i, v := range ref {
		e.builder.PushOp(&ir.OpASt{
			VtxOffset: ir.SrcZero(), Data: ir.SrcFromSSA(ir.SSARef{v}),
			Offset: uint16(base+i) * 4,
		})
	}
}
