/*
 * nakgpu - Input-IR model: the NIR-like SSA form the lowering engine
 * consumes. Carries only the fields lowering actually reads.
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

// Package inputir is the "foreign collaborator" IR the Lowering Engine
// translates: a NIR-flavored SSA form with ALU, texture, and intrinsic
// instructions, already structured so that loop headers and breaks have
// been resolved by an upstream pass.
package inputir

// Def identifies one SSA definition: its index is unique within a
// Function, and (NumComponents, BitSize) determine how many machine-IR
// lanes it occupies.
type Def struct {
	Index         uint32
	NumComponents uint8
	BitSize       uint8
}

// Instr is satisfied by every input-IR instruction kind.
type Instr interface {
	instr()
}

// ALUSrc is one operand of an ALU instruction: the def it reads, a
// per-destination-component swizzle selecting which source component
// feeds each destination lane, and the two modifier flags NIR allows on
// an ALU source.
type ALUSrc struct {
	Src     Def
	Swizzle []uint8
	Abs     bool
	Neg     bool
}

// ALU is a single NIR-style ALU instruction tagged by its opcode name
// ("fadd", "imul", ...).
type ALU struct {
	Op   string
	Dst  Def
	Srcs []ALUSrc
	// Signed distinguishes the signedness half of paired ops
	// (f2i32 vs f2u32, imul_high vs umul_high, ...).
	Signed bool
}

func (*ALU) instr() {}

// Intrinsic covers memory, atomic, barrier, and I/O intrinsics. Const
// carries the intrinsic's compile-time constant indices (e.g. load_ubo's
// block index, store_output's base/component/write-mask).
type Intrinsic struct {
	Name   string
	Dst    *Def
	Srcs   []Def
	Const  []int64
	Memory MemoryInfo
}

func (*Intrinsic) instr() {}

// MemoryInfo carries the ordering/scope/address-space qualifiers NIR
// attaches to memory and barrier intrinsics.
type MemoryInfo struct {
	AddrBits       uint8 // 0 if not applicable
	Space          string // "global", "shared", "local"
	MemoryScope    string // "none", "invocation", "workgroup", "queue_family", "device"
	ExecutionScope string
	Order          string // "relaxed", "acquire", "release", "acq_rel", "seq_cst"
}

// TexInstr is a texture/image fetch.
type TexInstr struct {
	Op        string // "tex", "txf", "txf_ms", "txd", "lod", "txq", "tg4"
	Dst       Def
	Handle    Def
	Coords    []Def
	Bias      *Def
	Lod       *Def
	Ddx, Ddy  []Def
	Offset    []int32
	Dim       string // "1D", "2D", "3D", "Cube", "Buf"
	IsArray   bool
	IsShadow  bool
	Component uint8
	// Mask enables destination components, one bit per component; zero
	// means all components are written.
	Mask uint8
	// FlagWord is the opaque backend flag word: bits 0-2 hold the LOD
	// mode (0 auto, 1 zero, 2 bias, 3 explicit lod, 4 clamped bias,
	// 5 clamped lod; 6 and 7 decode as auto) and bit 3 selects a
	// per-pixel offset, consumed by lower/tex.go's decode helpers.
	FlagWord uint32
}

func (*TexInstr) instr() {}

// LoadConst materializes a compile-time-known constant into a def, one
// raw bit pattern per component (sign/zero-extension already applied by
// the producer of the input IR).
type LoadConst struct {
	Dst    Def
	Values []uint64
}

func (*LoadConst) instr() {}

// Undef produces an uninitialized def (dead-code-eligible, never read
// before being reassigned in practice, but still a legal def).
type Undef struct {
	Dst Def
}

func (*Undef) instr() {}

// PhiSrc pairs a predecessor block index with the operand it supplies.
type PhiSrc struct {
	Pred uint32
	Src  Def
}

// Phi is an SSA phi node, one per block with multiple predecessors.
type Phi struct {
	Dst  Def
	Srcs []PhiSrc
}

func (*Phi) instr() {}

// Block is a single-entry, single-exit straight-line instruction
// sequence. Cond is non-nil exactly when len(Succs) == 2: an if-header
// block, whose second successor is the "else" target and whose terminator
// is patched to carry Cond inverted.
type Block struct {
	Index  uint32
	Instrs []Instr
	Succs  []uint32
	Cond   *Def
}

// Function is one compiled input-IR function: a flat, already-scheduled
// block list (structural loop headers/breaks resolved upstream) plus the
// id of its single after-end block.
type Function struct {
	Blocks       []*Block
	EndBlockID   uint32
	IsEntrypoint bool
}

// Stage names the shader pipeline stage, controlling fs-epilogue
// insertion and per-vertex-input handling.
type Stage uint8

const (
	StageFragment Stage = iota
	StageVertex
	StageCompute
)

// Shader is the top-level input-IR unit the Lowering Engine consumes.
type Shader struct {
	Stage     Stage
	SM        uint8
	Functions []*Function
	// NumOutputs sizes a fragment shader's fs_out_regs: one 32-bit slot
	// per output component, indexed by store_output's base (Const[0])
	// plus the component.
	NumOutputs int
}
