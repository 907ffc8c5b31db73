package syntax

import (
	"strconv"

	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// parseArrayLen parses the `[N]` of an array declaration. N must be an
// integer literal greater than 1 (spec.md I-5).
func (p *Parser) parseArrayLen() int {
	p.expect(token.LBRACKET)

	if !p.got(token.INT_LIT) {
		p.errorf("array length must be an integer literal")
	}
	line := p.tok.Line
	text := p.tok.Value
	p.next()

	p.expect(token.RBRACKET)

	n, err := strconv.Atoi(text)
	if err != nil || n <= 1 {
		p.errorOnLine(line, "array elements must be larger than 1")
	}
	return n
}

// array-lit = '{' [ expr { ',' expr } ] '}'
//
// N must equal the declared element count, or the literal is the empty
// pre-allocation literal `{}` (spec.md §4.1.6, I-4).
func (p *Parser) parseArrayLiteral(count int, elemType types.Type) *ast.Array {
	line := p.tok.Line
	p.expect(token.LBRACE)

	if p.got(token.RBRACE) {
		p.next()
		return ast.NewArray(count, nil, elemType, line)
	}

	var elems []ast.Expr
	for {
		elems = append(elems, p.parseExpr(elemType))
		if p.got(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACE)

	if len(elems) != count {
		p.errorOnLine(line, "array literal has %d element(s), expected %d", len(elems), count)
	}

	return ast.NewArray(count, elems, elemType, line)
}
