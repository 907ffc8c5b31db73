package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comedicchimera/toyc/internal/ir"
)

// S-6: `v1 = load p; v2 = load p; use v1; use v2` with no intervening store
// collapses to a single load, and every use is redirected to it.
func TestEliminateRedundantLoads(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.AddBlock("entry")

	p := ir.NewSlot("p")
	v1 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b.Append(v1)
	v2 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b.Append(v2)
	use1 := &ir.Instruction{Op: ir.OpOther, Operands: []ir.Value{v1}}
	b.Append(use1)
	use2 := &ir.Instruction{Op: ir.OpOther, Operands: []ir.Value{v2}}
	b.Append(use2)
	b.SetTerminator(&ir.Instruction{Op: ir.OpRet})

	n := EliminateRedundantLoads(fn)
	require.Equal(t, 1, n)
	require.Len(t, b.Insts, 3)

	require.Same(t, v1, use1.Operands[0])
	require.Same(t, v1, use2.Operands[0])
}

func TestEliminateRedundantLoadsStoreInvalidates(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.AddBlock("entry")

	p := ir.NewSlot("p")
	v1 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b.Append(v1)
	b.Append(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{p, ir.NewConstantInt(ir.I32, 32, 1)}})
	v2 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b.Append(v2)
	b.SetTerminator(&ir.Instruction{Op: ir.OpRet})

	n := EliminateRedundantLoads(fn)
	require.Equal(t, 0, n)
	require.Len(t, b.Insts, 3)
}

func TestEliminateRedundantLoadsDoesNotCrossBlocks(t *testing.T) {
	fn := ir.NewFunction("f")
	b1 := fn.AddBlock("b1")
	b2 := fn.AddBlock("b2")

	p := ir.NewSlot("p")
	v1 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b1.Append(v1)
	b1.SetTerminator(&ir.Instruction{Op: ir.OpBr, Succs: []*ir.BasicBlock{b2}})

	v2 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{p}, ResultTy: ir.I32}
	b2.Append(v2)
	b2.SetTerminator(&ir.Instruction{Op: ir.OpRet})

	n := EliminateRedundantLoads(fn)
	require.Equal(t, 0, n)
}

func TestEliminateRedundantBinOps(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.AddBlock("entry")

	a := ir.NewConstantInt(ir.I32, 32, 1)
	c := ir.NewConstantInt(ir.I32, 32, 2)

	first := &ir.Instruction{Op: ir.OpAdd, Operands: []ir.Value{a, c}, ResultTy: ir.I32}
	b.Append(first)
	second := &ir.Instruction{Op: ir.OpAdd, Operands: []ir.Value{a, c}, ResultTy: ir.I32}
	b.Append(second)
	use := &ir.Instruction{Op: ir.OpOther, Operands: []ir.Value{second}}
	b.Append(use)
	b.SetTerminator(&ir.Instruction{Op: ir.OpRet})

	n := EliminateRedundantBinOps(fn)
	require.Equal(t, 1, n)
	require.Len(t, b.Insts, 2)
	require.Same(t, first, use.Operands[0])
}

func TestEliminateRedundantBinOpsStoreInvalidatesOperand(t *testing.T) {
	fn := ir.NewFunction("f")
	b := fn.AddBlock("entry")

	a := ir.NewConstantInt(ir.I32, 32, 1)
	c := ir.NewConstantInt(ir.I32, 32, 2)

	first := &ir.Instruction{Op: ir.OpAdd, Operands: []ir.Value{a, c}, ResultTy: ir.I32}
	b.Append(first)
	b.Append(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{a, c}})
	second := &ir.Instruction{Op: ir.OpAdd, Operands: []ir.Value{a, c}, ResultTy: ir.I32}
	b.Append(second)
	b.SetTerminator(&ir.Instruction{Op: ir.OpRet})

	n := EliminateRedundantBinOps(fn)
	require.Equal(t, 0, n)
}
