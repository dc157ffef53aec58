/*
 * nakgpu - Predicate guards and destination wrappers.
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

// PredRef is None (unconditional) or a single predicate SSAValue.
type PredRef struct {
	IsSSA bool
	SSA   SSAValue
}

// NonePredRef is the unconditional predicate reference.
func NonePredRef() PredRef { return PredRef{} }

// SSAPredRef wraps a single predicate value.
func SSAPredRef(v SSAValue) PredRef {
	if !v.IsPredicate() {
		panic("ir: PredRef requires a value from the predicate file")
	}
	return PredRef{IsSSA: true, SSA: v}
}

// Pred guards an Instr. A None pred_ref means the instruction is
// unconditional.
type Pred struct {
	Ref PredRef
	Inv bool
}

// AlwaysTrue is the unconditional predicate attached by ssa.Builder.PushOp.
func AlwaysTrue() Pred { return Pred{} }

// Dst is either None or a single SSARef destination.
type Dst struct {
	IsSSA bool
	SSA   SSARef
}

// NoDst is the empty destination (used by stores, branches, etc).
func NoDst() Dst { return Dst{} }

// SSADst wraps ref as a destination.
func SSADst(ref SSARef) Dst { return Dst{IsSSA: true, SSA: ref} }

// AsSSA returns the destination's SSARef, panicking if the destination is
// None. Copy propagation's learning phase leans on this to unwrap defs
// it knows must be SSA.
func (d Dst) AsSSA() SSARef {
	if !d.IsSSA {
		panic("ir: Dst.AsSSA called on a None destination")
	}
	return d.SSA
}
