/*
 * nakgpu - Text dump of machine IR: optional predicate, SSA destinations,
 * opcode name, then operands left to right.
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

import (
	"fmt"
	"strings"

	hex "github.com/rcornwell/nakgpu/util/hex"
)

// Printer renders a Shader as readable text. It is a pure reader: it never
// mutates the IR it walks.
type Printer struct {
	sb strings.Builder
}

// Print formats the whole shader.
func (p *Printer) Print(s *Shader) string {
	p.sb.Reset()
	fmt.Fprintf(&p.sb, "shader sm%d tls=%d\n", s.SM, s.TLSSize)
	for i, f := range s.Functions {
		fmt.Fprintf(&p.sb, "fn %d {\n", i)
		p.printFunction(f)
		p.sb.WriteString("}\n")
	}
	return p.sb.String()
}

func (p *Printer) printFunction(f *Function) {
	for _, b := range f.Blocks {
		fmt.Fprintf(&p.sb, "  block %d:\n", b.Index)
		for _, instr := range b.Instrs {
			p.sb.WriteString("    ")
			p.printInstr(instr)
			p.sb.WriteByte('\n')
		}
	}
}

func (p *Printer) printInstr(instr *Instr) {
	if instr.Pred.Ref.IsSSA {
		if instr.Pred.Inv {
			p.sb.WriteString("@!")
		} else {
			p.sb.WriteByte('@')
		}
		p.sb.WriteString(instr.Pred.Ref.SSA.String())
		p.sb.WriteByte(' ')
	}

	for _, d := range instr.Op.Dsts() {
		if d.IsSSA {
			p.sb.WriteString(d.SSA.String())
			p.sb.WriteString(" = ")
		}
	}
	p.sb.WriteString(instr.Op.Name())

	for _, s := range instr.Op.SrcsMut() {
		p.sb.WriteByte(' ')
		p.sb.WriteString(printSrc(*s))
	}
}

func printSrc(s Src) string {
	var sb strings.Builder
	if !s.Mod.IsNone() {
		sb.WriteString(s.Mod.String())
		sb.WriteByte('(')
	}
	switch s.Ref.Kind {
	case RefZero:
		sb.WriteByte('0')
	case RefTrue:
		sb.WriteString("true")
	case RefFalse:
		sb.WriteString("false")
	case RefImm32:
		var hb strings.Builder
		hex.FormatWord(&hb, []uint32{s.Ref.Imm})
		sb.WriteString(strings.TrimSpace(hb.String()))
	case RefCBuf:
		fmt.Fprintf(&sb, "c[%d][%d]", s.Ref.CBuf.Buf, s.Ref.CBuf.Offset)
	case RefSSA:
		sb.WriteString(s.Ref.SSA.String())
	case RefReg:
		fmt.Fprintf(&sb, "reg(%s%d)", s.Ref.Reg.File, s.Ref.Reg.Index)
	}
	if !s.Mod.IsNone() {
		sb.WriteByte(')')
	}
	return sb.String()
}
