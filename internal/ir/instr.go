package ir

import (
	"fmt"
	"strings"
)

// Opcode tags an Instruction's variant (spec.md §3.5).
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpLoad
	OpStore
	OpICmp
	OpBr
	OpRet
	// OpOther stands in for any instruction opaque to the optimizer (a
	// call, an intrinsic, ...): spec.md §3.5 "others opaque to the
	// optimizer". The peephole and unroll passes must skip these safely.
	OpOther
)

func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpICmp:
		return "icmp"
	case OpBr:
		return "br"
	case OpRet:
		return "ret"
	default:
		return "other"
	}
}

// IsBinaryArith reports whether op is one of the four arithmetic binary
// opcodes (spec.md §4.4 targets these).
func (op Opcode) IsBinaryArith() bool {
	return op == OpAdd || op == OpSub || op == OpMul || op == OpDiv
}

// Predicate is a Compare instruction's relational operator (spec.md §3.5).
type Predicate int

const (
	PredLT Predicate = iota
	PredGT
	PredLE
	PredGE
	PredEQ
	PredNE
)

func (p Predicate) String() string {
	switch p {
	case PredLT:
		return "slt"
	case PredGT:
		return "sgt"
	case PredLE:
		return "sle"
	case PredGE:
		return "sge"
	case PredEQ:
		return "eq"
	default:
		return "ne"
	}
}

// Instruction is a single IR instruction: a tagged variant with typed
// operands (spec.md §3.5). It is itself a Value when it produces a result
// (everything but Store/Br/Ret).
type Instruction struct {
	Op        Opcode
	Operands  []Value
	Predicate Predicate // meaningful only when Op == OpICmp
	ResultTy  Kind

	// Succs holds branch targets: one entry for an unconditional branch,
	// two ([then, else]) for a conditional one. Empty for every other
	// opcode.
	Succs []*BasicBlock

	block *BasicBlock
	id    int
}

// Type implements Value.
func (i *Instruction) Type() Kind { return i.ResultTy }

// Name is this instruction's SSA name, assigned when it is appended to a
// block.
func (i *Instruction) Name() string { return fmt.Sprintf("%%%d", i.id) }

// Repr implements Value: an instruction is referred to by its SSA name
// wherever it appears as another instruction's operand.
func (i *Instruction) Repr() string { return i.Name() }

// Block returns the basic block currently owning this instruction, or nil
// if it has been erased or not yet inserted (e.g. a freshly cloned
// instruction).
func (i *Instruction) Block() *BasicBlock { return i.block }

// -----------------------------------------------------------------------------
// Downcasting helpers (spec.md §6.3: "downcasting Instructions to BinaryOp,
// Compare, Load, Store").

// IsLoad reports whether this is a Load(pointer) instruction and returns
// its pointer operand.
func (i *Instruction) IsLoad() (ptr Value, ok bool) {
	if i.Op == OpLoad {
		return i.Operands[0], true
	}
	return nil, false
}

// IsStore reports whether this is a Store(pointer, value) instruction and
// returns its operands.
func (i *Instruction) IsStore() (ptr, val Value, ok bool) {
	if i.Op == OpStore {
		return i.Operands[0], i.Operands[1], true
	}
	return nil, nil, false
}

// IsBinaryOp reports whether this is a BinaryOp(lhs, rhs) instruction and
// returns its operands.
func (i *Instruction) IsBinaryOp() (lhs, rhs Value, ok bool) {
	if i.Op.IsBinaryArith() {
		return i.Operands[0], i.Operands[1], true
	}
	return nil, nil, false
}

// IsCompare reports whether this is a Compare(predicate, lhs, rhs)
// instruction and returns its operands.
func (i *Instruction) IsCompare() (lhs, rhs Value, ok bool) {
	if i.Op == OpICmp {
		return i.Operands[0], i.Operands[1], true
	}
	return nil, nil, false
}

// -----------------------------------------------------------------------------
// Mutation primitives (spec.md §6.3).

// SetOperand replaces operand idx in place.
func (i *Instruction) SetOperand(idx int, v Value) {
	i.Operands[idx] = v
}

// ReplaceAllUsesWith rewrites every operand of every instruction in the
// owning function that refers to i so that it refers to v instead. Used by
// both peephole passes to redirect uses of an eliminated instruction to the
// value it duplicated (spec.md §4.3, §4.4).
func (i *Instruction) ReplaceAllUsesWith(v Value) {
	if i.block == nil || i.block.parent == nil {
		return
	}
	for _, blk := range i.block.parent.Blocks {
		for _, other := range blk.Insts {
			for idx, operand := range other.Operands {
				if operand == Value(i) {
					other.Operands[idx] = v
				}
			}
		}
		if blk.Term != nil {
			for idx, operand := range blk.Term.Operands {
				if operand == Value(i) {
					blk.Term.Operands[idx] = v
				}
			}
		}
	}
}

// Clone returns a new, unattached instruction with the same opcode,
// predicate, result type, and operands as i. Per spec.md §4.2.4, operands
// are NOT remapped — the clone shares Values with the original.
func (i *Instruction) Clone() *Instruction {
	operands := make([]Value, len(i.Operands))
	copy(operands, i.Operands)

	succs := make([]*BasicBlock, len(i.Succs))
	copy(succs, i.Succs)

	return &Instruction{
		Op:        i.Op,
		Operands:  operands,
		Predicate: i.Predicate,
		ResultTy:  i.ResultTy,
		Succs:     succs,
	}
}

// EraseFromParent removes i from its owning block. It is a no-op if i has
// already been erased or was never inserted.
func (i *Instruction) EraseFromParent() {
	if i.block == nil {
		return
	}
	i.block.removeInst(i)
	i.block = nil
}

// Line renders a full textual line for this instruction ("%1 = add %0 1"),
// used by dump tooling; not part of the optimizer contract itself. Distinct
// from Repr, which is the short form used when this instruction appears as
// another instruction's operand (spec.md §3.5: a Value's Repr is how it's
// referred to, not how it's defined).
func (i *Instruction) Line() string {
	var sb strings.Builder

	if i.Op != OpStore && i.Op != OpBr && i.Op != OpRet {
		sb.WriteString(i.Name())
		sb.WriteString(" = ")
	}

	sb.WriteString(i.Op.String())

	if i.Op == OpICmp {
		sb.WriteRune(' ')
		sb.WriteString(i.Predicate.String())
	}

	for _, operand := range i.Operands {
		sb.WriteRune(' ')
		sb.WriteString(operand.Repr())
	}

	for _, succ := range i.Succs {
		sb.WriteRune(' ')
		sb.WriteString(succ.Name)
	}

	return sb.String()
}
