package syntax

import (
	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// stmt := if-stmt | for-stmt | return-stmt | call-stmt | assn-stmt
//
// Dispatch is by the current token (spec.md §4.1.3). A statement is
// terminated implicitly by the next statement's first token or `}`;
// semicolons are only required inside a for-header.
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.got(token.KwIf):
		return p.parseIf()
	case p.got(token.KwFor):
		return p.parseFor()
	case p.got(token.KwReturn):
		return p.parseReturn()
	case p.got(token.IDENT):
		if _, ok := p.funcs.Lookup(p.tok.Value); ok {
			return p.parseCallStmt()
		}
		return p.parseReassignment()
	case p.got(token.KwInt) || p.got(token.KwFloat) || p.got(token.KwArray):
		return p.parseDeclaration()
	default:
		p.errorf("unexpected token at start of statement: %s", p.describeCur())
		return nil
	}
}

// parseBlock parses `{ stmt* }`, opening and closing a fresh scope frame,
// and returns the parsed statements and that frame's declared locals.
func (p *Parser) parseBlock() ([]ast.Stmt, map[string]types.Type) {
	p.scope.Push()

	p.expect(token.LBRACE)
	stmts := p.parseStmts(token.RBRACE)
	p.expect(token.RBRACE)

	return stmts, p.scope.Pop()
}

// -----------------------------------------------------------------------------
// Assignments (spec.md §4.1.4)

// Declaration-assignment: `type ident (= expr | ε)` for scalars, or
// `array<T> ident [N] = array-lit` for arrays. A name already in scope is
// rejected as a redefinition before the initializer is parsed, and the
// identifier is only declared in the innermost frame AFTER its initializer,
// so a self-referencing initializer is rejected as an undeclared variable
// (spec.md §4.1.4(a)).
func (p *Parser) parseDeclaration() *ast.Assn {
	declaredType := p.declType()

	if !p.got(token.IDENT) {
		p.reject(token.IDENT)
	}
	name := p.tok.Value
	line := p.tok.Line
	p.next()

	if _, _, exists := p.scope.Lookup(name); exists {
		p.errorOnLine(line, "redefinition of variable `%s`", name)
	}
	target := ast.NewIdentifier(name, declaredType, line)

	if declaredType.IsArray() {
		count := p.parseArrayLen()
		p.expect(token.ASSIGN)
		lit := p.parseArrayLiteral(count, declaredType.ElemType())
		p.scope.Declare(name, declaredType)
		return &ast.Assn{Target: target, Value: lit}
	}

	if p.got(token.ASSIGN) {
		p.next()
		value := p.parseExpr(declaredType)
		p.scope.Declare(name, declaredType)
		return &ast.Assn{Target: target, Value: value}
	}

	// No initializer: synthesize a type-only placeholder literal
	// (spec.md §4.1.4(a)).
	p.scope.Declare(name, declaredType)
	return &ast.Assn{Target: target, Value: ast.NewLiteral(declaredType, "", line)}
}

// Re-assignment: `ident = expr` or `ident '[' expr ']' = expr`. The
// identifier must already be in scope (spec.md I-1); the expected type for
// the RHS is the target's scalar type, or the element type for an indexed
// target (spec.md §4.1.4(b)).
func (p *Parser) parseReassignment() *ast.Assn {
	name := p.tok.Value
	line := p.tok.Line
	p.next()

	declaredType, _, ok := p.scope.Lookup(name)
	if !ok {
		p.errorOnLine(line, "use of undeclared variable `%s`", name)
	}

	var target ast.Expr
	expected := declaredType

	if p.got(token.LBRACKET) {
		if !declaredType.IsArray() {
			p.errorOnLine(line, "cannot index non-array variable `%s`", name)
		}
		p.next()
		idx := p.parseExpr(types.Int)
		p.expect(token.RBRACKET)

		expected = declaredType.ElemType()
		target = ast.NewIndex(name, idx, expected, line)
	} else {
		target = ast.NewIdentifier(name, declaredType, line)
	}

	p.expect(token.ASSIGN)
	value := p.parseExpr(expected)
	return &ast.Assn{Target: target, Value: value}
}

// -----------------------------------------------------------------------------

// return-stmt := 'return' expr
//
// The expression is parsed with the enclosing function's return type as the
// expected-type context (spec.md §4.1.3).
func (p *Parser) parseReturn() *ast.Ret {
	p.expect(token.KwReturn)
	value := p.parseExpr(p.curReturnType)
	return &ast.Ret{Value: value}
}

// call-stmt := ident '(' [ expr { ',' expr } ] ')'
//
// Wrapped tagged built-in or normal based on the function table entry
// (spec.md §4.1.3).
func (p *Parser) parseCallStmt() *ast.CallStmt {
	name := p.tok.Value
	line := p.tok.Line
	sig, _ := p.funcs.Lookup(name)
	p.next()

	args := p.parseArgs(name, sig.ParamTypes)
	call := ast.NewCall(name, args, sig.ReturnType, line)

	kind := ast.NormalCall
	if sig.IsBuiltin {
		kind = ast.BuiltinCall
	}
	return &ast.CallStmt{Call: call, Kind: kind}
}

// -----------------------------------------------------------------------------

// cond := expr relop expr
func (p *Parser) parseCondition() *ast.Condition {
	// The left operand determines the shared operand type for both sides
	// (spec.md I-3); it is parsed unconstrained, then the right side is
	// parsed against whatever type the left side turned out to have.
	left := p.parseExpr(types.Max)

	op, ok := relOpFor(p.tok.Kind)
	if !ok {
		p.errorf("expected a relational operator, got %s", p.describeCur())
	}
	p.next()

	right := p.parseExpr(left.Type())

	if !left.Type().IsScalar() {
		p.errorf("condition operands must be int or float")
	}

	return &ast.Condition{Left: left, Right: right, Op: op, OperandType: left.Type()}
}

func relOpFor(k token.Kind) (ast.CompareOp, bool) {
	switch k {
	case token.LT:
		return ast.CmpLT, true
	case token.GT:
		return ast.CmpGT, true
	case token.LTEQ:
		return ast.CmpLE, true
	case token.GTEQ:
		return ast.CmpGE, true
	case token.EQ:
		return ast.CmpEQ, true
	case token.NEQ:
		return ast.CmpNE, true
	default:
		return 0, false
	}
}

// -----------------------------------------------------------------------------

// if-stmt := 'if' '(' cond ')' '{' stmt* '}' [ 'else' '{' stmt* '}' ]
func (p *Parser) parseIf() *ast.If {
	p.expect(token.KwIf)
	p.expect(token.LPAREN)
	cond := p.parseCondition()
	p.expect(token.RPAREN)

	taken, takenLocals := p.parseBlock()

	var notTaken []ast.Stmt
	var notTakenLocals map[string]types.Type
	if p.got(token.KwElse) {
		p.next()
		notTaken, notTakenLocals = p.parseBlock()
	}

	return &ast.If{
		Cond:           cond,
		Taken:          taken,
		NotTaken:       notTaken,
		TakenLocals:    takenLocals,
		NotTakenLocals: notTakenLocals,
	}
}

// for-stmt := 'for' '(' assn ';' cond ';' assn ')' '{' stmt* '}'
//
// Init and Step share For's own frame with Body, so a variable declared in
// Init is visible throughout (spec.md §4.1.7).
func (p *Parser) parseFor() *ast.For {
	p.expect(token.KwFor)
	p.scope.Push()
	p.expect(token.LPAREN)

	init := p.parseForClauseAssn()
	p.expect(token.SEMI)

	cond := p.parseCondition()
	p.expect(token.SEMI)

	step := p.parseForClauseAssn()
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	body := p.parseStmts(token.RBRACE)
	p.expect(token.RBRACE)

	locals := p.scope.Pop()

	return &ast.For{Init: init, Cond: cond, Step: step, Body: body, Locals: locals}
}

// parseForClauseAssn parses the init/step clause of a for-header, which is
// always an assignment (declaration or re-assignment) with no statement
// terminator of its own — the surrounding `;`/`)` delimits it.
func (p *Parser) parseForClauseAssn() *ast.Assn {
	if p.got(token.KwInt) || p.got(token.KwFloat) || p.got(token.KwArray) {
		return p.parseDeclaration()
	}
	if !p.got(token.IDENT) {
		p.errorf("expected an assignment, got %s", p.describeCur())
	}
	return p.parseReassignment()
}
