// Package loopinfo identifies a function's top-level counted loops so the
// unroller (internal/optimize) has something to operate on. Per spec.md §2
// item 6 this is an external collaborator to THE CORE — the unroller
// consumes its result but the analysis itself is out of scope. It is kept
// intentionally minimal: a single back-edge scan, no dominance computation,
// no support for irreducible or nested control flow.
package loopinfo

import "github.com/comedicchimera/toyc/internal/ir"

// Loop exposes exactly the three blocks the unroller's contract needs
// (spec.md §3.5): the header, the single latch (back-edge source), and the
// single exiting block (where the loop's termination test lives).
type Loop struct {
	Header  *ir.BasicBlock
	Latch   *ir.BasicBlock
	Exiting *ir.BasicBlock
}

// Find returns fn's top-level loops in block order. Nested loops are not
// discovered (spec.md §5 "nested loops below top-level are not visited").
func Find(fn *ir.Function) []Loop {
	index := make(map[*ir.BasicBlock]int, len(fn.Blocks))
	for i, b := range fn.Blocks {
		index[b] = i
	}

	var loops []Loop
	var spans [][2]int
	for i, b := range fn.Blocks {
		if b.Term == nil || len(b.Term.Succs) != 1 {
			continue
		}

		header := b.Term.Succs[0]
		headerIdx, ok := index[header]
		if !ok || headerIdx > i {
			continue // not a back edge
		}

		loops = append(loops, Loop{
			Header:  header,
			Latch:   b,
			Exiting: findExiting(fn, headerIdx, i),
		})
		spans = append(spans, [2]int{headerIdx, i})
	}

	// Drop every loop whose [header, latch] block range lies inside another
	// loop's range: only top-level loops are returned.
	var top []Loop
	for j, s := range spans {
		nested := false
		for k, o := range spans {
			nested = nested || (k != j && o[0] <= s[0] && s[1] <= o[1])
		}
		if !nested {
			top = append(top, loops[j])
		}
	}
	return top
}

// findExiting locates the single block, within [headerIdx, latchIdx], whose
// terminator is a conditional branch — the loop's termination test (spec.md
// glossary "Exiting block"). Canonical loops produced by internal/lower
// always have exactly one: the header itself.
func findExiting(fn *ir.Function, headerIdx, latchIdx int) *ir.BasicBlock {
	for i := headerIdx; i <= latchIdx; i++ {
		b := fn.Blocks[i]
		if b.Term != nil && len(b.Term.Succs) == 2 {
			return b
		}
	}
	return nil
}
