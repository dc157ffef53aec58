/*
 * nakgpu - SSA value and SSA allocator, arena + index style.
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

import "fmt"

// SSAValue is a unique per-function identifier. It belongs to exactly one
// register file and occupies exactly one lane (one 32-bit GPR lane, or one
// predicate bit). Immutable after allocation; defined exactly once.
type SSAValue struct {
	idx  uint32
	file RegFile
}

// File returns the register file this value lives in.
func (v SSAValue) File() RegFile { return v.file }

// Index returns the opaque monotonic allocation index of this value.
func (v SSAValue) Index() uint32 { return v.idx }

// IsPredicate reports whether v lives in the predicate file.
func (v SSAValue) IsPredicate() bool { return v.file == FilePred }

func (v SSAValue) String() string {
	if v.file == FilePred {
		return fmt.Sprintf("P%d", v.idx)
	}
	return fmt.Sprintf("R%d", v.idx)
}

// SSARef is an ordered sequence of 1..N SSAValues from the same register
// file, representing a composite (multi-lane) value. comps() is its arity.
type SSARef []SSAValue

// NewSSARef builds an SSARef from a slice of values, asserting that all
// components share a single register file.
func NewSSARef(vals []SSAValue) SSARef {
	if len(vals) == 0 {
		panic("ir: SSARef must have at least one component")
	}
	file := vals[0].file
	for _, v := range vals[1:] {
		if v.file != file {
			panic("ir: SSARef components span more than one register file")
		}
	}
	return SSARef(vals)
}

// Comps returns the arity (number of components) of the ref.
func (r SSARef) Comps() int { return len(r) }

// File returns the register file shared by every component.
func (r SSARef) File() RegFile { return r[0].file }

func (r SSARef) String() string {
	if len(r) == 1 {
		return r[0].String()
	}
	s := "{"
	for i, v := range r {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + "}"
}

// Alloc is a per-function SSA value allocator. It hands out opaque
// monotonic ids; it never recycles them. Owned by exactly one Function for
// the duration of lowering.
type Alloc struct {
	next uint32
}

// NewAlloc returns a fresh, empty allocator.
func NewAlloc() *Alloc {
	return &Alloc{}
}

// AllocSSA returns a fresh SSARef of the requested arity in the requested
// register file.
func (a *Alloc) AllocSSA(file RegFile, arity int) SSARef {
	if arity <= 0 {
		panic("ir: AllocSSA requires arity >= 1")
	}
	vals := make([]SSAValue, arity)
	for i := range vals {
		vals[i] = SSAValue{idx: a.next, file: file}
		a.next++
	}
	return SSARef(vals)
}

// AllocSSAValue is a convenience for the common arity-1 case.
func (a *Alloc) AllocSSAValue(file RegFile) SSAValue {
	return a.AllocSSA(file, 1)[0]
}
