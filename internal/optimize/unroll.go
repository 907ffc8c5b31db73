// Package optimize implements the IR optimizer: constant-factor loop
// unrolling and the two block-local peephole passes (spec.md §4.2-§4.4).
// This is THE CORE, part (b).
//
// Grounded on the teacher's general pass-writing idiom (one small file per
// concern, package-level functions over a function/module, early-return on
// missing structure) seen throughout bootstrap/generate/gen_*.go; chai
// itself never implements loop unrolling or local CSE, so the
// transformations below follow spec.md directly rather than any literal
// teacher analog.
package optimize

import (
	"github.com/comedicchimera/toyc/internal/ir"
	"github.com/comedicchimera/toyc/internal/loopinfo"
	"github.com/comedicchimera/toyc/internal/report"
)

// Stats accumulates counts for the CLI's optimizer summary; it carries no
// semantic weight for the transformations themselves.
type Stats struct {
	LoopsUnrolled    int
	LoadsEliminated  int
	BinOpsEliminated int
}

// Unroll rewrites every top-level loop in fn so that one iteration of the
// rewritten loop performs `factor` iterations of the original (spec.md
// §4.2.1). factor <= 1 is a no-op: 0 explicitly by contract, and 1 is
// already the identity transformation (P-6, P-7).
func Unroll(fn *ir.Function, factor int) int {
	if factor <= 1 {
		return 0
	}

	unrolled := 0
	for _, loop := range loopinfo.Find(fn) {
		if unrollLoop(fn, loop, factor) {
			unrolled++
		}
	}
	return unrolled
}

func unrollLoop(fn *ir.Function, loop loopinfo.Loop, factor int) bool {
	if loop.Latch == nil {
		report.StructuralWarning(fn.Name, "loop has no latch block; skipping unroll")
		return false
	}

	// Clone the latch's body BEFORE the bound/step rewrite mutates it: the
	// replicas must retain the pre-rewrite constants (spec.md §4.2.4, S-5),
	// and Clone shares operand Values rather than copying them, so cloning
	// after mutation would carry the rewritten step into every replica.
	replicas := cloneLatchPrefix(loop.Latch, factor-1)

	rewriteBound(fn.Name, loop.Exiting, factor)
	rewriteStep(fn.Name, loop.Latch, factor)

	for _, replica := range replicas {
		for _, inst := range replica {
			loop.Latch.InsertBefore(loop.Latch.Term, inst)
		}
	}

	return true
}

// rewriteBound implements spec.md §4.2.2: in the exiting block, find the
// first Compare and truncate-divide each ConstantInt operand by factor.
func rewriteBound(fnName string, exiting *ir.BasicBlock, factor int) {
	if exiting == nil {
		report.StructuralWarning(fnName, "loop has no exiting block; bound left unchanged")
		return
	}

	cmp := firstCompare(exiting)
	if cmp == nil {
		report.StructuralWarning(fnName, "exiting block has no compare instruction; bound left unchanged")
		return
	}

	found := false
	for idx, operand := range cmp.Operands {
		if c, ok := operand.(*ir.ConstantInt); ok {
			cmp.SetOperand(idx, ir.NewConstantInt(c.Typ, c.BitWidth, c.Val/int64(factor)))
			found = true
		}
	}
	if !found {
		report.StructuralWarning(fnName, "compare has no constant operand; bound left unchanged")
	}
}

func firstCompare(b *ir.BasicBlock) *ir.Instruction {
	for _, inst := range b.Insts {
		if inst.Op == ir.OpICmp {
			return inst
		}
	}
	return nil
}

// rewriteStep implements spec.md §4.2.3: walking the latch in reverse,
// find the first add/sub whose right operand is a ConstantInt S and scale
// it by factor. The opcode is left untouched — scaling the raw operand by
// factor is equivalent to scaling old_step (S for add, -S for sub) by
// factor and re-deriving the operand from the new step, since both
// transformations agree in sign and magnitude (a `sub i, 1` unrolled by u
// becomes `sub i, u`, representing step -u, exactly as spec.md's worked
// example describes).
func rewriteStep(fnName string, latch *ir.BasicBlock, factor int) {
	for idx := len(latch.Insts) - 1; idx >= 0; idx-- {
		inst := latch.Insts[idx]
		if inst.Op != ir.OpAdd && inst.Op != ir.OpSub {
			continue
		}
		c, ok := inst.Operands[1].(*ir.ConstantInt)
		if !ok {
			continue
		}

		inst.SetOperand(1, ir.NewConstantInt(c.Typ, c.BitWidth, c.Val*int64(factor)))
		return
	}

	report.StructuralWarning(fnName, "latch has no add/sub with a constant step; step left unchanged")
}

// cloneLatchPrefix builds n replicas of the latch's body prefix: each
// replica clones the latch's instructions in order, stopping after (and
// including) the first store encountered — spec.md §4.2.4's cloning
// policy. If the latch contains no store, the whole body is the prefix.
func cloneLatchPrefix(latch *ir.BasicBlock, n int) [][]*ir.Instruction {
	var prefix []*ir.Instruction
	for _, inst := range latch.Insts {
		prefix = append(prefix, inst)
		if inst.Op == ir.OpStore {
			break
		}
	}

	if len(prefix) == 0 {
		return nil
	}

	replicas := make([][]*ir.Instruction, n)
	for r := 0; r < n; r++ {
		replica := make([]*ir.Instruction, len(prefix))
		for i, inst := range prefix {
			replica[i] = inst.Clone()
		}
		replicas[r] = replica
	}
	return replicas
}
