package lower

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comedicchimera/toyc/internal/ir"
	"github.com/comedicchimera/toyc/internal/loopinfo"
	"github.com/comedicchimera/toyc/internal/syntax"
)

func lowerSource(t *testing.T, src string) *ir.Module {
	t.Helper()
	p := syntax.New(bufio.NewReader(strings.NewReader(src)))
	prog := p.Parse()
	return Program(prog)
}

func TestLowerSimpleFunction(t *testing.T) {
	mod := lowerSource(t, "int f(int x){ return x + 1; }")

	require.Len(t, mod.Funcs, 1)
	fn := mod.Funcs[0]
	require.Equal(t, "f", fn.Name)
	require.Len(t, fn.Blocks, 1)

	entry := fn.Blocks[0]
	require.NotNil(t, entry.Term)
	require.Equal(t, ir.OpRet, entry.Term.Op)

	var sawAdd bool
	for _, inst := range entry.Insts {
		if inst.Op == ir.OpAdd {
			sawAdd = true
		}
	}
	require.True(t, sawAdd)
}

// P-8: for a canonical counted loop, the lowered IR exposes a Header that
// is also the Exiting block, and a Latch that loopinfo discovers via the
// back edge.
func TestLowerCanonicalForLoop(t *testing.T) {
	mod := lowerSource(t, `
int f(){
	array<int> a[3] = {0,0,0}
	for (int i = 0; i < 3; i = i + 1) {
		a[i] = i
	}
	return a[0]
}`)

	fn := mod.Funcs[0]
	loops := loopinfo.Find(fn)
	require.Len(t, loops, 1)
	require.Same(t, loops[0].Header, loops[0].Exiting)
	require.NotNil(t, loops[0].Latch)

	foundStore := false
	for _, inst := range loops[0].Latch.Insts {
		if inst.Op == ir.OpStore {
			foundStore = true
		}
	}
	require.True(t, foundStore)
}

func TestLowerArrayLiteralEmitsPerElementStores(t *testing.T) {
	mod := lowerSource(t, "int f(){ array<int> a[3] = {1,2,3}; return a[0]; }")

	fn := mod.Funcs[0]
	entry := fn.Blocks[0]

	stores := 0
	for _, inst := range entry.Insts {
		if inst.Op == ir.OpStore {
			stores++
		}
	}
	require.Equal(t, 3, stores)
}
