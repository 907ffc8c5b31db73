package syntax

import (
	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// strictTypeCheck verifies that actual satisfies the expected type context
// (spec.md "strict type check"): if expected is types.Max there is nothing
// to check against (the caller has no constraint); otherwise actual must
// equal expected exactly.
func (p *Parser) strictTypeCheck(actual, expected types.Type, line int) {
	if expected == types.Max {
		return
	}
	if actual != expected {
		p.errorOnLine(line, "type mismatch: expected %s, got %s", expected, actual)
	}
}

// expr = term {('+'|'-') term}
func (p *Parser) parseExpr(expected types.Type) ast.Expr {
	left := p.parseTerm(expected)

	for p.got(token.PLUS) || p.got(token.MINUS) {
		op := ast.Add
		if p.got(token.MINUS) {
			op = ast.Sub
		}
		line := p.tok.Line
		p.next()

		right := p.parseTerm(expected)
		left = ast.NewArith(op, left, right, line)
	}

	return left
}

// term = factor {('*'|'/') factor}
func (p *Parser) parseTerm(expected types.Type) ast.Expr {
	left := p.parseFactor(expected)

	for p.got(token.STAR) || p.got(token.SLASH) {
		op := ast.Mul
		if p.got(token.SLASH) {
			op = ast.Div
		}
		line := p.tok.Line
		p.next()

		right := p.parseFactor(expected)
		left = ast.NewArith(op, left, right, line)
	}

	return left
}

// factor = int-lit | float-lit | ident | ident '[' expr ']' | ident '(' args ')'
//        | '(' expr ')' | ('+'|'-') factor
func (p *Parser) parseFactor(expected types.Type) ast.Expr {
	switch p.tok.Kind {
	case token.INT_LIT:
		return p.parseLiteral(types.Int, expected)
	case token.FLOAT_LIT:
		return p.parseLiteral(types.Float, expected)
	case token.IDENT:
		return p.parseIdentLike(expected)
	case token.LPAREN:
		p.next()
		inner := p.parseExpr(expected)
		p.expect(token.RPAREN)
		return inner
	case token.PLUS:
		p.next()
		return p.parseFactor(expected)
	case token.MINUS:
		return p.parseUnaryMinus(expected)
	default:
		p.errorf("unexpected token in expression: %s", p.describeCur())
		return nil
	}
}

func (p *Parser) parseLiteral(natural, expected types.Type) ast.Expr {
	line := p.tok.Line
	text := p.tok.Value
	p.strictTypeCheck(natural, expected, line)
	p.next()
	return ast.NewLiteral(natural, text, line)
}

// Unary `-x` lowers to `0 - x` with a zero literal of the current expected
// scalar type (spec.md §4.1.5). The expected type must already be known to
// be int or float: there is no way to pick the zero's type otherwise.
func (p *Parser) parseUnaryMinus(expected types.Type) ast.Expr {
	line := p.tok.Line
	if expected != types.Int && expected != types.Float {
		p.errorf("invalid operand type for unary `-`: expected type is not numeric")
	}
	p.next()

	operand := p.parseFactor(expected)
	zero := ast.NewLiteral(expected, "0", line)
	return ast.NewArith(ast.Sub, zero, operand, line)
}

// parseIdentLike parses a bare identifier, an indexed access, or a call,
// all of which start with IDENT.
func (p *Parser) parseIdentLike(expected types.Type) ast.Expr {
	name := p.tok.Value
	line := p.tok.Line
	p.next()

	switch p.tok.Kind {
	case token.LBRACKET:
		return p.parseIndex(name, line, expected)
	case token.LPAREN:
		return p.parseCallExpr(name, line, expected)
	default:
		t, _, ok := p.scope.Lookup(name)
		if !ok {
			p.errorOnLine(line, "use of undeclared variable `%s`", name)
		}
		p.strictTypeCheck(t, expected, line)
		return ast.NewIdentifier(name, t, line)
	}
}

// Array index expressions parse their index sub-expression with the
// expected type forced to int regardless of the outer context, restoring
// the outer context afterward (spec.md §4.1.5).
func (p *Parser) parseIndex(name string, line int, expected types.Type) ast.Expr {
	arrType, _, ok := p.scope.Lookup(name)
	if !ok {
		p.errorOnLine(line, "use of undeclared variable `%s`", name)
	}
	if !arrType.IsArray() {
		p.errorOnLine(line, "cannot index non-array variable `%s`", name)
	}

	p.expect(token.LBRACKET)
	idx := p.parseExpr(types.Int)
	p.expect(token.RBRACKET)

	elemType := arrType.ElemType()
	p.strictTypeCheck(elemType, expected, line)
	return ast.NewIndex(name, idx, elemType, line)
}

// Each call argument is parsed with its expected type set to the
// corresponding declared parameter type; the outer context is saved and
// restored around the call (spec.md §4.1.5).
func (p *Parser) parseCallExpr(name string, line int, expected types.Type) ast.Expr {
	sig, ok := p.funcs.Lookup(name)
	if !ok {
		p.errorOnLine(line, "call to undeclared function `%s`", name)
	}

	args := p.parseArgs(name, sig.ParamTypes)

	p.strictTypeCheck(sig.ReturnType, expected, line)
	return ast.NewCall(name, args, sig.ReturnType, line)
}

func (p *Parser) parseArgs(name string, paramTypes []types.Type) []ast.Expr {
	line := p.tok.Line
	p.expect(token.LPAREN)

	var args []ast.Expr
	if !p.got(token.RPAREN) {
		for {
			i := len(args)
			if i >= len(paramTypes) {
				p.errorf("too many arguments to `%s`", name)
			}
			args = append(args, p.parseExpr(paramTypes[i]))

			if p.got(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}

	if len(args) != len(paramTypes) {
		p.errorOnLine(line, "`%s` expects %d argument(s), got %d", name, len(paramTypes), len(args))
	}

	p.expect(token.RPAREN)
	return args
}
