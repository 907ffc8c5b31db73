// Package lower turns a parsed ast.Program into internal/ir form, playing
// the role spec.md §2 assigns to an external lowering collaborator so the
// optimizer has real IR to run against end to end. It is explicitly NOT
// part of THE CORE (spec.md treats IR production as already given); it
// handles the canonical shapes the end-to-end scenarios describe well and
// falls back to opaque instructions elsewhere, mirroring the teacher's own
// bootstrap/lower staged-lowering idiom (one Lowerer instance per pass,
// block tracked as the "current insertion point", a scope-style map of
// names to storage) in miniature.
package lower

import (
	"fmt"
	"strconv"

	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/ir"
	"github.com/comedicchimera/toyc/internal/types"
)

// Lowerer converts one function at a time. A fresh Lowerer is used per
// function; Program lowers each function independently.
type Lowerer struct {
	fn    *ir.Function
	block *ir.BasicBlock
	slots map[string]*ir.Slot

	blockCounter int
}

// Program lowers every function in prog into a fresh Module.
func Program(prog *ast.Program) *ir.Module {
	mod := ir.NewModule()
	for _, f := range prog.Funcs {
		l := &Lowerer{slots: make(map[string]*ir.Slot)}
		l.lowerFunc(mod, f)
	}
	return mod
}

func (l *Lowerer) lowerFunc(mod *ir.Module, f *ast.Func) {
	l.fn = mod.AddFunc(f.Name)
	l.block = l.fn.AddBlock("entry")

	for _, p := range f.Params {
		slot := ir.NewSlot(p.Name)
		l.slots[p.Name] = slot

		arg := &ir.Instruction{Op: ir.OpOther, ResultTy: kindOf(p.Type)}
		l.block.Append(arg)
		l.emitStore(slot, arg)
	}

	l.lowerStmts(f.Body)

	if l.block.Term == nil {
		l.block.SetTerminator(&ir.Instruction{Op: ir.OpRet})
	}
}

func (l *Lowerer) lowerStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		if l.block.Term != nil {
			// unreachable code after a terminator (e.g. past a return);
			// nothing downstream of this pipeline inspects it.
			return
		}
		l.lowerStmt(s)
	}
}

func (l *Lowerer) lowerStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Assn:
		l.lowerAssn(v)
	case *ast.Ret:
		val := l.lowerExpr(v.Value)
		l.block.SetTerminator(&ir.Instruction{Op: ir.OpRet, Operands: []ir.Value{val}})
	case *ast.CallStmt:
		l.lowerCall(v.Call)
	case *ast.If:
		l.lowerIf(v)
	case *ast.For:
		l.lowerFor(v)
	default:
		panic(fmt.Sprintf("lower: unhandled statement %T", s))
	}
}

func (l *Lowerer) lowerAssn(a *ast.Assn) {
	if arr, ok := a.Value.(*ast.Array); ok {
		ident := a.Target.(*ast.Identifier)
		base := l.slotFor(ident.Name)
		for i, elem := range arr.Elements {
			val := l.lowerExpr(elem)
			addr := l.elementAddr(base, ir.NewConstantInt(ir.I32, 32, int64(i)))
			l.emitStore(addr, val)
		}
		return
	}

	val := l.lowerExpr(a.Value)
	ptr := l.lowerAddr(a.Target)
	l.emitStore(ptr, val)
}

// lowerAddr computes the storage address of an assignment target,
// allocating a fresh Slot the first time a name is seen (a declaration).
func (l *Lowerer) lowerAddr(target ast.Expr) ir.Value {
	switch t := target.(type) {
	case *ast.Identifier:
		return l.slotFor(t.Name)
	case *ast.Index:
		base := l.slotFor(t.Name)
		idx := l.lowerExpr(t.Idx)
		return l.elementAddr(base, idx)
	default:
		panic(fmt.Sprintf("lower: unhandled assignment target %T", target))
	}
}

func (l *Lowerer) slotFor(name string) *ir.Slot {
	if slot, ok := l.slots[name]; ok {
		return slot
	}
	slot := ir.NewSlot(name)
	l.slots[name] = slot
	return slot
}

func (l *Lowerer) elementAddr(base ir.Value, idx ir.Value) ir.Value {
	return l.emitOther(ir.Ptr, base, idx)
}

func (l *Lowerer) lowerExpr(e ast.Expr) ir.Value {
	switch v := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(v)
	case *ast.Identifier:
		return l.emitLoad(l.slotFor(v.Name), kindOf(v.Type()))
	case *ast.Index:
		addr := l.lowerAddr(v)
		return l.emitLoad(addr, kindOf(v.Type()))
	case *ast.Call:
		return l.lowerCall(v)
	case *ast.Arith:
		lhs := l.lowerExpr(v.Left)
		rhs := l.lowerExpr(v.Right)
		return l.emitBinOp(opcodeFor(v.Op), lhs, rhs, kindOf(v.Type()))
	default:
		panic(fmt.Sprintf("lower: unhandled expression %T", e))
	}
}

func (l *Lowerer) lowerLiteral(lit *ast.Literal) ir.Value {
	if lit.Type() == types.Float {
		f, _ := strconv.ParseFloat(lit.Text, 64)
		return ir.NewConstantFloat(f)
	}
	n, _ := strconv.ParseInt(lit.Text, 10, 64)
	return ir.NewConstantInt(ir.I32, 32, n)
}

func (l *Lowerer) lowerCall(c *ast.Call) ir.Value {
	operands := make([]ir.Value, len(c.Args))
	for i, arg := range c.Args {
		operands[i] = l.lowerExpr(arg)
	}
	inst := &ir.Instruction{Op: ir.OpOther, Operands: operands, ResultTy: kindOf(c.Type())}
	l.block.Append(inst)
	return inst
}

func (l *Lowerer) lowerCondition(c *ast.Condition) ir.Value {
	lhs := l.lowerExpr(c.Left)
	rhs := l.lowerExpr(c.Right)
	inst := &ir.Instruction{
		Op:        ir.OpICmp,
		Operands:  []ir.Value{lhs, rhs},
		Predicate: predicateFor(c.Op),
		ResultTy:  ir.I1,
	}
	l.block.Append(inst)
	return inst
}

func (l *Lowerer) lowerIf(s *ast.If) {
	cond := l.lowerCondition(s.Cond)

	taken := l.fn.AddBlock(l.freshName("if.then"))
	join := l.fn.AddBlock(l.freshName("if.end"))

	var notTaken *ir.BasicBlock
	if len(s.NotTaken) > 0 {
		notTaken = l.fn.AddBlock(l.freshName("if.else"))
	} else {
		notTaken = join
	}

	l.block.SetTerminator(&ir.Instruction{
		Op:       ir.OpBr,
		Operands: []ir.Value{cond},
		Succs:    []*ir.BasicBlock{taken, notTaken},
	})

	l.block = taken
	l.lowerStmts(s.Taken)
	l.emitBr(join)

	if len(s.NotTaken) > 0 {
		l.block = notTaken
		l.lowerStmts(s.NotTaken)
		l.emitBr(join)
	}

	l.block = join
}

// lowerFor lowers a canonical counted loop into header (condition test,
// also the loop's exiting block) / body / exit. The step and the back edge
// are emitted in whatever block is current once the body is lowered, and
// that block is the loop's latch: the body block itself when the body has
// no nested control flow, otherwise the last block the body created (e.g.
// an if's join block). This matches the shape internal/loopinfo and
// internal/optimize expect (spec.md §3.5 glossary "Header", "Latch",
// "Exiting block").
func (l *Lowerer) lowerFor(s *ast.For) {
	l.lowerAssn(s.Init)

	header := l.fn.AddBlock(l.freshName("for.header"))
	l.emitBr(header)

	l.block = header
	cond := l.lowerCondition(s.Cond)

	body := l.fn.AddBlock(l.freshName("for.body"))
	exit := l.fn.AddBlock(l.freshName("for.exit"))
	header.SetTerminator(&ir.Instruction{
		Op:       ir.OpBr,
		Operands: []ir.Value{cond},
		Succs:    []*ir.BasicBlock{body, exit},
	})

	l.block = body
	l.lowerStmts(s.Body)
	if l.block.Term == nil {
		l.lowerAssn(s.Step)
		l.emitBr(header)
	}

	l.block = exit
}

func (l *Lowerer) emitLoad(ptr ir.Value, resultTy ir.Kind) ir.Value {
	inst := &ir.Instruction{Op: ir.OpLoad, Operands: []ir.Value{ptr}, ResultTy: resultTy}
	l.block.Append(inst)
	return inst
}

func (l *Lowerer) emitStore(ptr, val ir.Value) {
	inst := &ir.Instruction{Op: ir.OpStore, Operands: []ir.Value{ptr, val}}
	l.block.Append(inst)
}

func (l *Lowerer) emitBinOp(op ir.Opcode, lhs, rhs ir.Value, resultTy ir.Kind) ir.Value {
	inst := &ir.Instruction{Op: op, Operands: []ir.Value{lhs, rhs}, ResultTy: resultTy}
	l.block.Append(inst)
	return inst
}

// emitOther models an opaque address computation (an array element's
// address from its base and index) — there is no dedicated opcode for
// this in spec.md §3.5's instruction set, so it is represented the same
// way any other instruction opaque to the optimizer would be.
func (l *Lowerer) emitOther(resultTy ir.Kind, operands ...ir.Value) ir.Value {
	inst := &ir.Instruction{Op: ir.OpOther, Operands: operands, ResultTy: resultTy}
	l.block.Append(inst)
	return inst
}

func (l *Lowerer) emitBr(target *ir.BasicBlock) {
	l.block.SetTerminator(&ir.Instruction{Op: ir.OpBr, Succs: []*ir.BasicBlock{target}})
}

func (l *Lowerer) freshName(prefix string) string {
	l.blockCounter++
	return fmt.Sprintf("%s.%d", prefix, l.blockCounter)
}

func kindOf(t types.Type) ir.Kind {
	if t == types.Float || (t.IsArray() && t.ElemType() == types.Float) {
		return ir.F64
	}
	return ir.I32
}

func opcodeFor(op ast.ArithOp) ir.Opcode {
	switch op {
	case ast.Add:
		return ir.OpAdd
	case ast.Sub:
		return ir.OpSub
	case ast.Mul:
		return ir.OpMul
	default:
		return ir.OpDiv
	}
}

func predicateFor(op ast.CompareOp) ir.Predicate {
	switch op {
	case ast.CmpLT:
		return ir.PredLT
	case ast.CmpGT:
		return ir.PredGT
	case ast.CmpLE:
		return ir.PredLE
	case ast.CmpGE:
		return ir.PredGE
	case ast.CmpEQ:
		return ir.PredEQ
	default:
		return ir.PredNE
	}
}
