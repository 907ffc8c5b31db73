package optimize

import "github.com/comedicchimera/toyc/internal/ir"

// EliminateRedundantBinOps runs the block-local pass described in spec.md
// §4.4. It is a deliberately coarse heuristic, not a sound CSE: a BinaryOp
// with operands (a, b) is considered redundant whenever BOTH a and b
// already appear as keys of last-binop, regardless of whether they were
// recorded by the same earlier instruction. The replacement is always
// last-binop[a]. This matches the pass's specified (and admittedly
// unsound) behavior rather than a textbook common-subexpression pass.
func EliminateRedundantBinOps(fn *ir.Function) int {
	eliminated := 0
	for _, b := range fn.Blocks {
		eliminated += eliminateRedundantBinOpsInBlock(b)
	}
	return eliminated
}

func eliminateRedundantBinOpsInBlock(b *ir.BasicBlock) int {
	lastBinop := make(map[ir.Value]*ir.Instruction)
	eliminated := 0

	for _, inst := range append([]*ir.Instruction(nil), b.Insts...) {
		if a, c, ok := inst.IsBinaryOp(); ok {
			_, aKnown := lastBinop[a]
			_, cKnown := lastBinop[c]
			if aKnown && cKnown {
				inst.ReplaceAllUsesWith(lastBinop[a])
				inst.EraseFromParent()
				eliminated++
				continue
			}
			lastBinop[a] = inst
			lastBinop[c] = inst
			continue
		}

		if p, _, ok := inst.IsStore(); ok {
			delete(lastBinop, p)
		}
	}

	return eliminated
}
