/*
 * nakgpu - Built-in test shaders, used by cmd/shaderc in place of a
 * real shader-input frontend.
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

// Package fixtures builds small hand-written inputir.Shader values the
// driver can lower and copy-propagate end to end.
package fixtures

import (
	inputir "github.com/rcornwell/nakgpu/inputir"
)

func def(idx uint32, comps, bits uint8) inputir.Def {
	return inputir.Def{Index: idx, NumComponents: comps, BitSize: bits}
}

func alu1(dst inputir.Def, op string, signed bool, srcs ...inputir.Def) *inputir.ALU {
	aSrcs := make([]inputir.ALUSrc, len(srcs))
	for i, s := range srcs {
		aSrcs[i] = inputir.ALUSrc{Src: s}
	}
	return &inputir.ALU{Op: op, Dst: dst, Srcs: aSrcs, Signed: signed}
}

// StraightLine is a single-block function computing (a + b) then fsat'ing
// the result, exercising both ALU lowering and the saturation-fold rule.
func StraightLine() *inputir.Shader {
	a := def(0, 1, 32)
	b := def(1, 1, 32)
	sum := def(2, 1, 32)
	sat := def(3, 1, 32)

	blk := &inputir.Block{
		Index: 0,
		Instrs: []inputir.Instr{
			&inputir.LoadConst{Dst: a, Values: []uint64{0x3f800000}},
			&inputir.LoadConst{Dst: b, Values: []uint64{0x40000000}},
			alu1(sum, "fadd", false, a, b),
			alu1(sat, "fsat", false, sum),
		},
	}

	fn := &inputir.Function{Blocks: []*inputir.Block{blk}, EndBlockID: 1, IsEntrypoint: true}
	return &inputir.Shader{Stage: inputir.StageCompute, SM: 70, Functions: []*inputir.Function{fn}}
}

// Branch is a two-block-then-merge function: an if-header comparing a
// loaded constant against zero, two arms each defining a value, and a
// phi merging them — exercising control-flow and phi lowering.
func Branch() *inputir.Shader {
	cond := def(0, 1, 1)
	condSrc := def(1, 1, 32)
	thenVal := def(2, 1, 32)
	elseVal := def(3, 1, 32)
	merged := def(4, 1, 32)
	zero := def(5, 1, 32)

	header := &inputir.Block{
		Index: 0,
		Instrs: []inputir.Instr{
			&inputir.LoadConst{Dst: condSrc, Values: []uint64{1}},
			&inputir.LoadConst{Dst: zero, Values: []uint64{0}},
			alu1(cond, "ine", false, condSrc, zero),
		},
		Succs: []uint32{1, 2},
		Cond:  &cond,
	}
	thenBlk := &inputir.Block{
		Index: 1,
		Instrs: []inputir.Instr{
			&inputir.LoadConst{Dst: thenVal, Values: []uint64{0x3f800000}},
		},
		Succs: []uint32{3},
	}
	elseBlk := &inputir.Block{
		Index: 2,
		Instrs: []inputir.Instr{
			&inputir.LoadConst{Dst: elseVal, Values: []uint64{0}},
		},
		Succs: []uint32{3},
	}
	mergeBlk := &inputir.Block{
		Index: 3,
		Instrs: []inputir.Instr{
			&inputir.Phi{
				Dst: merged,
				Srcs: []inputir.PhiSrc{
					{Pred: 1, Src: thenVal},
					{Pred: 2, Src: elseVal},
				},
			},
		},
		Succs: []uint32{4},
	}

	fn := &inputir.Function{
		Blocks:       []*inputir.Block{header, thenBlk, elseBlk, mergeBlk},
		EndBlockID:   4,
		IsEntrypoint: true,
	}
	return &inputir.Shader{Stage: inputir.StageVertex, SM: 70, Functions: []*inputir.Function{fn}}
}

// Memory loads a UBO scalar, stores it to global memory at a folded
// immediate offset, then atomically adds 1 to it — exercising the
// intrinsic-lowering rules and the address-offset helper.
func Memory() *inputir.Shader {
	addr := def(0, 1, 32)
	val := def(1, 1, 32)
	one := def(2, 1, 32)

	blk := &inputir.Block{
		Index: 0,
		Instrs: []inputir.Instr{
			&inputir.LoadConst{Dst: addr, Values: []uint64{0x40}},
			&inputir.Intrinsic{
				Name: "load_ubo", Dst: &val, Srcs: []inputir.Def{addr}, Const: []int64{0},
			},
			&inputir.Intrinsic{
				Name: "store_global", Srcs: []inputir.Def{addr, val},
				Memory: inputir.MemoryInfo{AddrBits: 32, Order: "relaxed"},
			},
			&inputir.LoadConst{Dst: one, Values: []uint64{1}},
			&inputir.Intrinsic{
				Name: "global_atomic_iadd", Srcs: []inputir.Def{addr, one},
				Memory: inputir.MemoryInfo{AddrBits: 32, Order: "acq_rel", MemoryScope: "device"},
			},
		},
	}

	fn := &inputir.Function{Blocks: []*inputir.Block{blk}, EndBlockID: 1, IsEntrypoint: true}
	return &inputir.Shader{Stage: inputir.StageCompute, SM: 70, Functions: []*inputir.Function{fn}}
}

// Fragment interpolates an input and stores it straight to the fragment
// output, exercising load_interpolated and the fs-epilogue capture of
// store_output.
func Fragment() *inputir.Shader {
	interp := def(0, 1, 32)

	blk := &inputir.Block{
		Index: 0,
		Instrs: []inputir.Instr{
			&inputir.Intrinsic{Name: "load_interpolated", Dst: &interp, Const: []int64{0}},
			&inputir.Intrinsic{Name: "store_output", Srcs: []inputir.Def{interp}, Const: []int64{0}},
		},
	}

	fn := &inputir.Function{Blocks: []*inputir.Block{blk}, EndBlockID: 1, IsEntrypoint: true}
	return &inputir.Shader{
		Stage: inputir.StageFragment, SM: 70, Functions: []*inputir.Function{fn}, NumOutputs: 4,
	}
}

// ByName returns the fixture shader registered under name, and whether it
// was found.
func ByName(name string) (*inputir.Shader, bool) {
	switch name {
	case "straight_line":
		return StraightLine(), true
	case "branch":
		return Branch(), true
	case "memory":
		return Memory(), true
	case "fragment":
		return Fragment(), true
	default:
		return nil, false
	}
}

// Names lists every registered fixture, in a fixed, stable order.
func Names() []string {
	return []string{"straight_line", "branch", "memory", "fragment"}
}
