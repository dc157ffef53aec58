/*
 * nakgpu - Lowering engine: translates input-IR (a NIR-like SSA form)
 * into the machine IR defined by package ir. One instruction family per
 * file: ALU in alu.go, textures in tex.go, intrinsics in mem.go, control
 * flow in cf.go.
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

// Package lower is the Lowering Engine: it walks an inputir.Shader and
// builds the equivalent ir.Shader, one machine block per input-IR block.
package lower

import (
	"log/slog"

	inputir "github.com/rcornwell/nakgpu/inputir"
	ir "github.com/rcornwell/nakgpu/ir"
	ssa "github.com/rcornwell/nakgpu/ssa"
	debug "github.com/rcornwell/nakgpu/util/debug"
)

// CompileOptions parameterizes lowering decisions that vary by target
// (the address-immediate-bits window memory lowering splits into
// base+offset).
type CompileOptions struct {
	SM          uint8
	AddrImmBits uint8
	TraceMask   debug.Mask
}

type phiKey struct {
	def  uint32
	lane int
}

// Engine holds the per-function lowering state. The maps are reset at the
// top of every function; nothing carries over between functions.
type Engine struct {
	opts CompileOptions

	builder *ssa.Builder
	ssaMap  map[uint32]ir.SSARef
	phiMap  map[phiKey]uint32
	numPhis uint32

	saturated map[uint32]bool

	fsOutRegs []ir.Src

	endBlockID uint32

	// defProducer maps an input-IR def index to the instruction that
	// defines it, consulted only by the address-offset helper to
	// recognize a def-plus-immediate addressing pattern; nothing else in
	// the engine needs reverse lookup since SSA is already forward-only.
	defProducer map[uint32]inputir.Instr

	log *slog.Logger
}

// NewEngine returns an Engine configured for opts. log may be nil; it
// receives Debug-level records gated by opts.TraceMask (TraceLower for
// every instruction lowered, TraceSaturate when saturation folding
// collapses a consumer into a Mov, TraceUnsupported just before the fatal
// ir.Unsupported panic for an input-IR instruction kind the engine does not
// handle; unsupported ops, intrinsics and successor shapes within a handled
// kind panic without a trace record).
func NewEngine(opts CompileOptions, log *slog.Logger) *Engine {
	return &Engine{opts: opts, log: log}
}

// Lower translates the whole input-IR shader.
func (e *Engine) Lower(in *inputir.Shader) *ir.Shader {
	out := &ir.Shader{SM: in.SM}
	for _, fn := range in.Functions {
		out.Functions = append(out.Functions, e.lowerFunction(in, fn))
	}
	return out
}

func (e *Engine) lowerFunction(shader *inputir.Shader, fn *inputir.Function) *ir.Function {
	f := ir.NewFunction()
	e.builder = ssa.NewBuilder(f.Alloc)
	e.ssaMap = make(map[uint32]ir.SSARef)
	e.phiMap = make(map[phiKey]uint32)
	e.numPhis = 0
	e.endBlockID = fn.EndBlockID

	if shader.Stage == inputir.StageFragment && fn.IsEntrypoint {
		e.fsOutRegs = make([]ir.Src, shader.NumOutputs)
		for i := range e.fsOutRegs {
			e.fsOutRegs[i] = ir.SrcZero()
		}
	} else {
		e.fsOutRegs = nil
	}

	e.computeSaturated(fn)
	e.computeDefProducers(fn)

	for _, blk := range fn.Blocks {
		e.lowerBlock(fn, blk)
		f.Blocks = append(f.Blocks, ir.NewBasicBlock(blk.Index))
		f.Blocks[len(f.Blocks)-1].Instrs = e.builder.AsVec()
	}

	return f
}

// allocDef applies the value-allocation rule: one
// predicate lane per component for bit_size==1 defs, otherwise
// ceil(bit_size*num_components/32) GPR lanes, component-major.
func (e *Engine) allocDef(d inputir.Def) ir.SSARef {
	if d.BitSize == 1 {
		return e.builder.AllocSSA(ir.FilePred, int(d.NumComponents))
	}
	totalBits := int(d.BitSize) * int(d.NumComponents)
	lanes := (totalBits + 31) / 32
	return e.builder.AllocSSA(ir.FileGPR, lanes)
}

// setSSA records def's machine-IR allocation. It panics if def already
// has an entry, enforcing the set-once discipline SSA soundness
// requires.
func (e *Engine) setSSA(def inputir.Def, ref ir.SSARef) {
	if _, ok := e.ssaMap[def.Index]; ok {
		panic("lower: def already has a machine-IR allocation")
	}
	e.ssaMap[def.Index] = ref
}

// defAllocSSA allocates and records def's machine-IR value in one step,
// the common case for every instruction with a single scalar-or-vector
// output.
func (e *Engine) defAllocSSA(def inputir.Def) ir.SSARef {
	ref := e.allocDef(def)
	e.setSSA(def, ref)
	return ref
}

func (e *Engine) getSSA(def inputir.Def) ir.SSARef {
	ref, ok := e.ssaMap[def.Index]
	if !ok {
		panic("lower: use of a def with no machine-IR allocation")
	}
	return ref
}

// lowerBlock lowers every instruction in blk in order, then assembles the
// block's phi-src and terminator instructions.
func (e *Engine) lowerBlock(fn *inputir.Function, blk *inputir.Block) {
	var phiDsts []ir.PhiDst
	var rest []inputir.Instr
	for _, instr := range blk.Instrs {
		if phi, ok := instr.(*inputir.Phi); ok {
			phiDsts = append(phiDsts, e.lowerPhiDst(blk, phi)...)
			continue
		}
		rest = append(rest, instr)
	}
	if len(phiDsts) > 0 {
		e.builder.PushOp(&ir.OpPhiDsts{Dsts: phiDsts})
	}

	for _, instr := range rest {
		e.lowerInstr(instr)
	}

	e.lowerTerminator(fn, blk)
}

func (e *Engine) lowerInstr(instr inputir.Instr) {
	switch in := instr.(type) {
	case *inputir.ALU:
		debug.Tracef(e.log, e.opts.TraceMask, debug.TraceLower, "lowering alu %q", in.Op)
		e.lowerALU(in)
	case *inputir.Intrinsic:
		debug.Tracef(e.log, e.opts.TraceMask, debug.TraceLower, "lowering intrinsic %q", in.Name)
		e.lowerIntrinsic(in)
	case *inputir.TexInstr:
		debug.Tracef(e.log, e.opts.TraceMask, debug.TraceLower, "lowering tex %q", in.Op)
		e.lowerTex(in)
	case *inputir.LoadConst:
		e.lowerLoadConst(in)
	case *inputir.Undef:
		ref := e.defAllocSSA(in.Dst)
		for _, v := range ref {
			e.builder.PushOp(&ir.OpUndef{Dst: ir.SSADst(ir.SSARef{v})})
		}
	default:
		debug.Tracef(e.log, e.opts.TraceMask, debug.TraceUnsupported, "unsupported input-IR instruction %T", instr)
		ir.Unsupported("input-IR instruction %T", instr)
	}
}

func (e *Engine) lowerLoadConst(lc *inputir.LoadConst) {
	ref := e.defAllocSSA(lc.Dst)
	if lc.Dst.BitSize == 64 {
		for c := 0; c < int(lc.Dst.NumComponents); c++ {
			v := lc.Values[c]
			lo := ir.SSADst(ir.SSARef{ref[c*2]})
			hi := ir.SSADst(ir.SSARef{ref[c*2+1]})
			e.builder.PushOp(&ir.OpMov{Dst: lo, Src: ir.NewSrc(ir.Imm32Ref(uint32(v)))})
			e.builder.PushOp(&ir.OpMov{Dst: hi, Src: ir.NewSrc(ir.Imm32Ref(uint32(v >> 32)))})
		}
		return
	}
	for c, v := range lc.Values {
		dst := ir.SSADst(ir.SSARef{ref[c]})
		e.builder.PushOp(&ir.OpMov{Dst: dst, Src: ir.NewSrc(ir.Imm32Ref(uint32(v)))})
	}
}

// computeSaturated marks every def all of whose uses are a bare fsat ALU
// instruction, provided its producer folds a saturate (fabs, fneg, fmul,
// 32-bit fadd) or is itself an fsat.
func (e *Engine) computeSaturated(fn *inputir.Function) {
	e.saturated = make(map[uint32]bool)
	allUsesSat := make(map[uint32]bool)
	seen := make(map[uint32]bool)
	canSat := make(map[uint32]bool)

	mark := func(defIdx uint32, isSat bool) {
		if seen[defIdx] {
			allUsesSat[defIdx] = allUsesSat[defIdx] && isSat
		} else {
			seen[defIdx] = true
			allUsesSat[defIdx] = isSat
		}
	}

	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instrs {
			switch in := instr.(type) {
			case *inputir.ALU:
				switch in.Op {
				case "fabs", "fneg", "fmul", "fsat":
					canSat[in.Dst.Index] = true
				case "fadd":
					canSat[in.Dst.Index] = in.Dst.BitSize != 64
				}
				isFsat := in.Op == "fsat"
				for _, s := range in.Srcs {
					mark(s.Src.Index, isFsat)
				}
			case *inputir.Intrinsic:
				for _, s := range in.Srcs {
					mark(s.Index, false)
				}
			case *inputir.TexInstr:
				mark(in.Handle.Index, false)
				for _, c := range in.Coords {
					mark(c.Index, false)
				}
				if in.Bias != nil {
					mark(in.Bias.Index, false)
				}
				if in.Lod != nil {
					mark(in.Lod.Index, false)
				}
				for _, d := range in.Ddx {
					mark(d.Index, false)
				}
				for _, d := range in.Ddy {
					mark(d.Index, false)
				}
			case *inputir.Phi:
				for _, s := range in.Srcs {
					mark(s.Src.Index, false)
				}
			}
		}
		if blk.Cond != nil {
			mark(blk.Cond.Index, false)
		}
	}
	for idx, allSat := range allUsesSat {
		if allSat && canSat[idx] {
			e.saturated[idx] = true
		}
	}
}

// defProducerDef returns the def index an Instr defines, or false for
// instructions with no single def (phis are walked separately and never
// consulted by the address-offset helper).
func defProducerDef(instr inputir.Instr) (uint32, bool) {
	switch in := instr.(type) {
	case *inputir.ALU:
		return in.Dst.Index, true
	case *inputir.LoadConst:
		return in.Dst.Index, true
	case *inputir.Intrinsic:
		if in.Dst != nil {
			return in.Dst.Index, true
		}
	}
	return 0, false
}

// computeDefProducers records, for every def in fn, the instruction that
// defines it. Used only by the address-offset helper to recognize a
// def-plus-immediate addressing pattern ahead of lowering.
func (e *Engine) computeDefProducers(fn *inputir.Function) {
	e.defProducer = make(map[uint32]inputir.Instr)
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instrs {
			if idx, ok := defProducerDef(instr); ok {
				e.defProducer[idx] = instr
			}
		}
	}
}
