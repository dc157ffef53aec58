/*
 * nakgpu - Instr, BasicBlock, Function and Shader containers.
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

package ir

// Instr pairs a guarding Pred with the Op it guards. Destinations and
// source operands are reached through accessors on Op; Instr just forwards
// SrcsMut/SrcTypes so callers never need to know the concrete Op variant.
type Instr struct {
	Pred Pred
	Op   Op
}

// NewInstr wraps op with an unconditional predicate, mirroring the SSA
// Builder's push_op contract.
func NewInstr(op Op) *Instr {
	return &Instr{Pred: AlwaysTrue(), Op: op}
}

func (i *Instr) SrcsMut() []*Src     { return i.Op.SrcsMut() }
func (i *Instr) SrcTypes() []SrcType { return i.Op.SrcTypes() }
func (i *Instr) Dsts() []Dst         { return i.Op.Dsts() }

// IsTerminator reports whether Op ends a basic block.
func (i *Instr) IsTerminator() bool {
	switch i.Op.(type) {
	case *OpBra, *OpExit:
		return true
	default:
		return false
	}
}

// BasicBlock is an ordered instruction sequence terminating in exactly one
// control-transfer op, possibly preceded by a single PhiSrcs.
type BasicBlock struct {
	Index uint32
	Instrs []*Instr
}

// NewBasicBlock returns an empty block with the given input-IR index.
func NewBasicBlock(index uint32) *BasicBlock {
	return &BasicBlock{Index: index}
}

// Append appends instr to the block's instruction list.
func (b *BasicBlock) Append(instr *Instr) {
	b.Instrs = append(b.Instrs, instr)
}

// Terminator returns the block's final instruction, which must be a Bra or
// Exit.
func (b *BasicBlock) Terminator() *Instr {
	if len(b.Instrs) == 0 {
		return nil
	}
	return b.Instrs[len(b.Instrs)-1]
}

// Function is one compiled function: its SSA allocator and its ordered
// blocks. Block Index values match the input-IR block indices.
type Function struct {
	Alloc  *Alloc
	Blocks []*BasicBlock
}

// NewFunction returns a Function with a fresh SSA allocator and no blocks.
func NewFunction() *Function {
	return &Function{Alloc: NewAlloc()}
}

// Block returns the block with the given index, or nil.
func (f *Function) Block(index uint32) *BasicBlock {
	for _, b := range f.Blocks {
		if b.Index == index {
			return b
		}
	}
	return nil
}

// Shader is the top-level compiled unit.
type Shader struct {
	SM        uint8
	Functions []*Function
	TLSSize   uint32
}
