package optimize

import "github.com/comedicchimera/toyc/internal/ir"

// EliminateRedundantLoads runs the block-local load-forwarding pass
// described in spec.md §4.3: within a single basic block, a Load from a
// pointer already known (from an earlier Load to that same pointer, with
// no intervening Store to it) is replaced by the value already on hand,
// and the redundant Load is erased. A Store invalidates only its own
// pointer's entry; no alias analysis is attempted (§4.3's accepted
// limitation). The map is implicitly cleared at each block boundary since
// a fresh one is built per block.
func EliminateRedundantLoads(fn *ir.Function) int {
	eliminated := 0
	for _, b := range fn.Blocks {
		eliminated += eliminateRedundantLoadsInBlock(b)
	}
	return eliminated
}

func eliminateRedundantLoadsInBlock(b *ir.BasicBlock) int {
	lastLoad := make(map[ir.Value]*ir.Instruction)
	eliminated := 0

	for _, inst := range append([]*ir.Instruction(nil), b.Insts...) {
		if ptr, ok := inst.IsLoad(); ok {
			if prior, ok := lastLoad[ptr]; ok {
				inst.ReplaceAllUsesWith(prior)
				inst.EraseFromParent()
				eliminated++
				continue
			}
			lastLoad[ptr] = inst
			continue
		}

		if ptr, _, ok := inst.IsStore(); ok {
			delete(lastLoad, ptr)
		}
	}

	return eliminated
}
