// Package ir implements the low-level IR contract spec.md §3.5 and §6.3
// describe: Module -> Function -> BasicBlock -> Instruction, with typed
// Value operands, and the mutation primitives (clone, insert-before, erase,
// replace-all-uses-with, set-operand) the optimizer's passes are specified
// against. Spec.md treats this IR as produced by an external lowering
// collaborator; internal/lower plays that role in miniature so the
// optimizer has something concrete to run against end to end.
//
// Grounded on the teacher's bootstrap/mir package: a Value interface with a
// Repr method, block-owns-ordered-statements shape, one small file per
// concern.
package ir

import "fmt"

// Kind is the IR's own low-level type system — narrower than the parser's
// types.Type. Predicate results need a boolean-ish kind the source
// language has no surface syntax for, and array/pointer operands need a
// pointer kind; neither exists in types.Type.
type Kind int

const (
	I32 Kind = iota
	F64
	I1  // result of a Compare
	Ptr // address of a scalar slot (a variable or array element)
)

func (k Kind) String() string {
	switch k {
	case I32:
		return "i32"
	case F64:
		return "f64"
	case I1:
		return "i1"
	default:
		return "ptr"
	}
}

// Value is anything usable as an instruction operand: a compile-time
// constant or the SSA result of an earlier instruction (spec.md §3.5).
type Value interface {
	Type() Kind
	Repr() string
}

// ConstantInt is an integer constant operand (spec.md §3.5, §6.3). Loop
// bounds and steps are always this type; ConstantFloat below never
// participates in the unroller's rewrites.
type ConstantInt struct {
	BitWidth int
	Val      int64
	Typ      Kind
}

// NewConstantInt constructs a ConstantInt of typ with the given signed
// value (spec.md §6.3 "constructing ConstantInt of a given type").
func NewConstantInt(typ Kind, bitWidth int, val int64) *ConstantInt {
	return &ConstantInt{BitWidth: bitWidth, Val: val, Typ: typ}
}

func (c *ConstantInt) Type() Kind   { return c.Typ }
func (c *ConstantInt) Repr() string { return fmt.Sprintf("%d", c.Val) }

// ConstantFloat is a floating-point constant operand. It never participates
// in the unroller's bound/step rewrites (those are always integer-typed
// per spec.md §4.2), but the lowerer still needs it to represent float
// literals faithfully instead of hiding them behind an opaque instruction.
type ConstantFloat struct {
	Val float64
}

func NewConstantFloat(val float64) *ConstantFloat { return &ConstantFloat{Val: val} }

func (c *ConstantFloat) Type() Kind   { return F64 }
func (c *ConstantFloat) Repr() string { return fmt.Sprintf("%g", c.Val) }

// Slot is the address of a function-local storage location: a scalar
// variable or an array's base, referenced by every Load/Store touching that
// variable (spec.md §3.5's "pointer operand"). internal/lower creates one
// Slot per distinct local or parameter name in a function, the first time
// it meets that name. Two Slots are the same Value only by pointer
// identity, which is what the peephole passes rely on.
type Slot struct {
	Name string
}

// NewSlot constructs a fresh, uniquely-identified storage location.
func NewSlot(name string) *Slot { return &Slot{Name: name} }

func (s *Slot) Type() Kind   { return Ptr }
func (s *Slot) Repr() string { return "@" + s.Name }
