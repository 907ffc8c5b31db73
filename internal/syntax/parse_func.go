package syntax

import (
	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/symbols"
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// func-def := type ident '(' [ param { ',' param } ] ')' '{' stmt* '}'
//
// Follows spec.md §4.1.2 exactly: return type, name, open the body frame,
// parse parameters into it, record the signature (enabling self-recursion)
// before the body is parsed, then parse the body against that frame.
func (p *Parser) parseFunc() *ast.Func {
	retType := p.scalarType()

	if !p.got(token.IDENT) {
		p.reject(token.IDENT)
	}
	name := p.tok.Value
	line := p.tok.Line
	p.next()

	p.expect(token.LPAREN)

	p.scope.Push()
	params := p.parseParams()
	p.expect(token.RPAREN)

	paramTypes := make([]types.Type, len(params))
	for i, param := range params {
		paramTypes[i] = param.Type
	}

	if !p.funcs.Declare(name, &symbols.Signature{ReturnType: retType, ParamTypes: paramTypes}) {
		p.errorOnLine(line, "redefinition of function `%s`", name)
	}

	prevReturnType := p.curReturnType
	p.curReturnType = retType

	p.expect(token.LBRACE)
	body := p.parseStmts(token.RBRACE)
	p.expect(token.RBRACE)

	p.curReturnType = prevReturnType
	locals := p.scope.Pop()

	return &ast.Func{
		ReturnType: retType,
		Name:       name,
		Params:     params,
		Body:       body,
		Locals:     locals,
	}
}

// param := type ident
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.got(token.RPAREN) {
		return params
	}

	for {
		t := p.scalarType()
		if t == types.Void {
			p.errorf("`void` is not a valid parameter type")
		}

		if !p.got(token.IDENT) {
			p.reject(token.IDENT)
		}
		name := p.tok.Value
		line := p.tok.Line
		p.next()

		if !p.scope.Declare(name, t) {
			p.errorOnLine(line, "redefinition of parameter `%s`", name)
		}
		params = append(params, ast.Param{Name: name, Type: t})

		if p.got(token.COMMA) {
			p.next()
			continue
		}
		break
	}

	return params
}
