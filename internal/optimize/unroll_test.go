package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comedicchimera/toyc/internal/ir"
)

// buildLoop builds the exact IR shape S-5 describes: header ends in
// `cmp slt i, 10` with two successors, latch contains
// `i0 = load i; i_new = add i0, 1; store i_new, p; br header`.
func buildLoop(t *testing.T) (*ir.Function, *ir.BasicBlock, *ir.BasicBlock, *ir.Slot) {
	t.Helper()

	fn := ir.NewFunction("f")
	header := fn.AddBlock("header")
	body := fn.AddBlock("body")
	exit := fn.AddBlock("exit")

	i := ir.NewSlot("i")
	p := ir.NewSlot("p")

	loadI := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{i}, ResultTy: ir.I32}
	header.Append(loadI)
	cmp := &ir.Instruction{
		Op:        ir.OpICmp,
		Operands:  []ir.Value{loadI, ir.NewConstantInt(ir.I32, 32, 10)},
		Predicate: ir.PredLT,
		ResultTy:  ir.I1,
	}
	header.Append(cmp)
	header.SetTerminator(&ir.Instruction{Op: ir.OpBr, Operands: []ir.Value{cmp}, Succs: []*ir.BasicBlock{body, exit}})

	loadI2 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{i}, ResultTy: ir.I32}
	body.Append(loadI2)
	add := &ir.Instruction{Op: ir.OpAdd, Operands: []ir.Value{loadI2, ir.NewConstantInt(ir.I32, 32, 1)}, ResultTy: ir.I32}
	body.Append(add)
	store := &ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{p, add}}
	body.Append(store)
	body.SetTerminator(&ir.Instruction{Op: ir.OpBr, Succs: []*ir.BasicBlock{header}})

	return fn, header, body, i
}

func TestUnrollByTwo(t *testing.T) {
	fn, header, body, _ := buildLoop(t)

	n := Unroll(fn, 2)
	require.Equal(t, 1, n)

	cmp := header.Insts[len(header.Insts)-1]
	require.Equal(t, ir.OpICmp, cmp.Op)
	bound, ok := cmp.Operands[1].(*ir.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 5, bound.Val)

	// The original add (still the first add/sub in the latch) now carries
	// the scaled step.
	var originalAdd *ir.Instruction
	for _, inst := range body.Insts {
		if inst.Op == ir.OpAdd {
			originalAdd = inst
			break
		}
	}
	require.NotNil(t, originalAdd)
	step, ok := originalAdd.Operands[1].(*ir.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 2, step.Val)

	// Exactly one clone of the [load, add, store] prefix was spliced in before
	// the terminator, and it retains the pre-rewrite constant (spec.md
	// §4.2.4, S-5).
	storeCount := 0
	addCount := 0
	for _, inst := range body.Insts {
		if inst.Op == ir.OpStore {
			storeCount++
		}
		if inst.Op == ir.OpAdd {
			addCount++
		}
	}
	require.Equal(t, 2, storeCount)
	require.Equal(t, 2, addCount)

	require.Same(t, header, body.Term.Succs[0])
}

func TestUnrollFactorZeroAndOneAreNoops(t *testing.T) {
	fn, header, body, _ := buildLoop(t)
	origHeaderLen := len(header.Insts)
	origBodyLen := len(body.Insts)

	require.Equal(t, 0, Unroll(fn, 0))
	require.Equal(t, 0, Unroll(fn, 1))

	require.Equal(t, origHeaderLen, len(header.Insts))
	require.Equal(t, origBodyLen, len(body.Insts))
}

func TestUnrollSubStepPreservesSign(t *testing.T) {
	fn := ir.NewFunction("g")
	header := fn.AddBlock("header")
	body := fn.AddBlock("body")
	exit := fn.AddBlock("exit")

	i := ir.NewSlot("i")

	loadI := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{i}, ResultTy: ir.I32}
	header.Append(loadI)
	cmp := &ir.Instruction{
		Op:        ir.OpICmp,
		Operands:  []ir.Value{loadI, ir.NewConstantInt(ir.I32, 32, 10)},
		Predicate: ir.PredGT,
		ResultTy:  ir.I1,
	}
	header.Append(cmp)
	header.SetTerminator(&ir.Instruction{Op: ir.OpBr, Operands: []ir.Value{cmp}, Succs: []*ir.BasicBlock{body, exit}})

	loadI2 := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{i}, ResultTy: ir.I32}
	body.Append(loadI2)
	sub := &ir.Instruction{Op: ir.OpSub, Operands: []ir.Value{loadI2, ir.NewConstantInt(ir.I32, 32, 1)}, ResultTy: ir.I32}
	body.Append(sub)
	body.Append(&ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{i, sub}})
	body.SetTerminator(&ir.Instruction{Op: ir.OpBr, Succs: []*ir.BasicBlock{header}})

	Unroll(fn, 3)

	var originalSub *ir.Instruction
	for _, inst := range body.Insts {
		if inst.Op == ir.OpSub {
			originalSub = inst
			break
		}
	}
	require.NotNil(t, originalSub)
	step, ok := originalSub.Operands[1].(*ir.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 3, step.Val)
}

func TestUnrollSkipsFunctionWithNoLoop(t *testing.T) {
	fn := ir.NewFunction("h")
	fn.AddBlock("only")
	require.NotPanics(t, func() {
		require.Equal(t, 0, Unroll(fn, 2))
	})
}
