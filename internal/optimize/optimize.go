package optimize

import "github.com/comedicchimera/toyc/internal/ir"

// Run applies the unroller followed by both peephole passes to every
// function in mod, in that order, and returns the aggregate counts for the
// CLI's summary display. unrollFactor <= 1 skips unrolling entirely but
// the peephole passes still run — they are independent of unrolling.
func Run(mod *ir.Module, unrollFactor int) Stats {
	var stats Stats
	for _, fn := range mod.Funcs {
		stats.LoopsUnrolled += Unroll(fn, unrollFactor)
		stats.LoadsEliminated += EliminateRedundantLoads(fn)
		stats.BinOpsEliminated += EliminateRedundantBinOps(fn)
	}
	return stats
}
