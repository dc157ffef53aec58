/*
 * nakgpu - Append-only SSA value allocator and instruction builder.
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

// Package ssa is the value-allocating helper the Lowering Engine drives: it
// owns a function's SSA allocator and an in-progress instruction list for
// the block currently under construction.
package ssa

import (
	ir "github.com/rcornwell/nakgpu/ir"
)

// Builder is append-only: it never removes or reorders instructions it has
// already buffered, and it never recycles an SSAValue.
type Builder struct {
	alloc  *ir.Alloc
	instrs []*ir.Instr
}

// NewBuilder returns a Builder drawing fresh values from alloc.
func NewBuilder(alloc *ir.Alloc) *Builder {
	return &Builder{alloc: alloc}
}

// AllocSSA returns a fresh SSARef of the requested arity in file.
func (b *Builder) AllocSSA(file ir.RegFile, arity int) ir.SSARef {
	return b.alloc.AllocSSA(file, arity)
}

// PushOp wraps op in an unconditionally-predicated Instr and appends it.
func (b *Builder) PushOp(op ir.Op) {
	b.instrs = append(b.instrs, ir.NewInstr(op))
}

// PushPredOp appends op guarded by pred.
func (b *Builder) PushPredOp(pred ir.Pred, op ir.Op) {
	b.instrs = append(b.instrs, &ir.Instr{Pred: pred, Op: op})
}

// AsVec drains and returns the buffered instructions.
func (b *Builder) AsVec() []*ir.Instr {
	out := b.instrs
	b.instrs = nil
	return out
}

// --- convenience emitters -------------------------------------------
//
// Each materializes exactly one machine operation and returns its
// destination SSARef, the pattern every call site in lower/ relies on to
// stay a one-liner.

func (b *Builder) Mov(src ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpMov{Dst: ir.SSADst(dst), Src: src})
	return dst
}

func (b *Builder) IAdd(s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpIAdd3{Dst: ir.SSADst(dst), Srcs: [3]ir.Src{s0, s1, ir.SrcZero()}})
	return dst
}

func (b *Builder) INeg(s ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpINeg{Dst: ir.SSADst(dst), Src: s})
	return dst
}

func (b *Builder) IAbs(s ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpIAbs{Dst: ir.SSADst(dst), Src: s})
	return dst
}

func (b *Builder) FMul(s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpFMul{Dst: ir.SSADst(dst), Srcs: [2]ir.Src{s0, s1}})
	return dst
}

func (b *Builder) FAdd(s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpFAdd{Dst: ir.SSADst(dst), Srcs: [2]ir.Src{s0, s1}})
	return dst
}

// Sel materializes a GPR-valued select: cond ? t : f.
func (b *Builder) Sel(cond ir.Src, t, f ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpSel{Dst: ir.SSADst(dst), Cond: cond, Srcs: [2]ir.Src{t, f}})
	return dst
}

func (b *Builder) FSetP(cmp ir.CmpOp, s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FilePred, 1)
	b.PushOp(&ir.OpFSetP{Dst: ir.SSADst(dst), Cmp: cmp, Srcs: [2]ir.Src{s0, s1}})
	return dst
}

func (b *Builder) ISetP(ct ir.CmpType, cmp ir.CmpOp, s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FilePred, 1)
	b.PushOp(&ir.OpISetP{Dst: ir.SSADst(dst), Cmp: cmp, CmpType: ct, Srcs: [2]ir.Src{s0, s1}})
	return dst
}

func (b *Builder) FSet(cmp ir.CmpOp, s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpFSet{Dst: ir.SSADst(dst), Cmp: cmp, Srcs: [2]ir.Src{s0, s1}})
	return dst
}

// Lop2 materializes a 2-input logic op as a Lop3 with a don't-care third
// source, the idiom the hardware itself uses: there is no narrower 2-input
// encoding, so every bitwise boolean op is an Lop3 in disguise.
func (b *Builder) Lop2(op ir.LogicOp3, s0, s1 ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpLop3{Dst: ir.SSADst(dst), Op: op, Srcs: [3]ir.Src{s0, s1, ir.SrcZero()}})
	return dst
}

func (b *Builder) MuFu(op ir.MuFuOp, s ir.Src) ir.SSARef {
	dst := b.AllocSSA(ir.FileGPR, 1)
	b.PushOp(&ir.OpMuFu{Dst: ir.SSADst(dst), Src: s, Op: op})
	return dst
}
