package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()

	var prog *ast.Program
	var caught interface{}

	func() {
		defer func() { caught = recover() }()
		p := New(bufio.NewReader(strings.NewReader(src)))
		prog = p.Parse()
	}()

	require.Nil(t, caught, "unexpected parse panic: %v", caught)
	return prog
}

// S-1: simple function, one param, one Ret(Arith).
func TestParseSimpleFunc(t *testing.T) {
	prog := parse(t, "int f(int x){ return x + 1; }")

	require.Len(t, prog.Funcs, 1)
	fn := prog.Funcs[0]
	require.Equal(t, "f", fn.Name)
	require.Equal(t, types.Int, fn.ReturnType)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "x", fn.Params[0].Name)
	require.Equal(t, types.Int, fn.Params[0].Type)

	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.Ret)
	require.True(t, ok)

	arith, ok := ret.Value.(*ast.Arith)
	require.True(t, ok)
	require.Equal(t, ast.Add, arith.Op)
	require.Equal(t, types.Int, arith.Type())
}

// S-2: precedence — 2 + 3 * 4 parses as Arith(+, 2, Arith(*, 3, 4)).
func TestParsePrecedence(t *testing.T) {
	prog := parse(t, "int g(){ int a = 2 + 3 * 4; return a; }")

	fn := prog.Funcs[0]
	require.Len(t, fn.Body, 2)

	assn, ok := fn.Body[0].(*ast.Assn)
	require.True(t, ok)

	top, ok := assn.Value.(*ast.Arith)
	require.True(t, ok)
	require.Equal(t, ast.Add, top.Op)

	_, leftIsLit := top.Left.(*ast.Literal)
	require.True(t, leftIsLit)

	right, ok := top.Right.(*ast.Arith)
	require.True(t, ok)
	require.Equal(t, ast.Mul, right.Op)

	ret, ok := fn.Body[1].(*ast.Ret)
	require.True(t, ok)
	ident, ok := ret.Value.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "a", ident.Name)
}

// S-3: array declaration, literal, and indexing.
func TestParseArrayLiteralAndIndex(t *testing.T) {
	prog := parse(t, "int h(){ array<int> a[3] = {1,2,3}; return a[0]; }")

	fn := prog.Funcs[0]
	assn, ok := fn.Body[0].(*ast.Assn)
	require.True(t, ok)

	arr, ok := assn.Value.(*ast.Array)
	require.True(t, ok)
	require.Equal(t, 3, arr.Count)
	require.Len(t, arr.Elements, 3)

	ret, ok := fn.Body[1].(*ast.Ret)
	require.True(t, ok)
	idx, ok := ret.Value.(*ast.Index)
	require.True(t, ok)
	require.Equal(t, "a", idx.Name)
	require.Equal(t, types.Int, idx.Type())
}

func TestParseArraySizeOneRejected(t *testing.T) {
	require.Panics(t, func() {
		p := New(bufio.NewReader(strings.NewReader("int f(){ array<int> a[1] = {1}; return a[0]; }")))
		p.Parse()
	})
}

func TestParseArrayElementCountMismatch(t *testing.T) {
	require.Panics(t, func() {
		p := New(bufio.NewReader(strings.NewReader("int f(){ array<int> a[3] = {1,2}; return a[0]; }")))
		p.Parse()
	})
}

// S-4: unary minus on a declared-but-uninitialized variable lowers to
// Arith(-, 0, 5).
func TestParseDeclarationThenUnaryMinusReassignment(t *testing.T) {
	prog := parse(t, "int f(){ int x; x = -5; return x; }")

	fn := prog.Funcs[0]
	require.Len(t, fn.Body, 3)

	decl, ok := fn.Body[0].(*ast.Assn)
	require.True(t, ok)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, "", lit.Text)

	reassn, ok := fn.Body[1].(*ast.Assn)
	require.True(t, ok)
	neg, ok := reassn.Value.(*ast.Arith)
	require.True(t, ok)
	require.Equal(t, ast.Sub, neg.Op)

	zero, ok := neg.Left.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, "0", zero.Text)
}

func TestParseSelfRecursiveCall(t *testing.T) {
	prog := parse(t, "int fib(int n){ return fib(n); }")
	require.Len(t, prog.Funcs, 1)
}

func TestParseRedefinitionIsFatal(t *testing.T) {
	require.Panics(t, func() {
		p := New(bufio.NewReader(strings.NewReader("int f(){ int x; int x; return x; }")))
		p.Parse()
	})
}

func TestParseUndeclaredIdentifierIsFatal(t *testing.T) {
	require.Panics(t, func() {
		p := New(bufio.NewReader(strings.NewReader("int f(){ return y; }")))
		p.Parse()
	})
}
