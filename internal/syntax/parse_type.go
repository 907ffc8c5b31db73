package syntax

import (
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// scalarType consumes one of 'int' | 'float' | 'void' (spec.md §6.1 `type`).
func (p *Parser) scalarType() types.Type {
	switch p.tok.Kind {
	case token.KwInt:
		p.next()
		return types.Int
	case token.KwFloat:
		p.next()
		return types.Float
	case token.KwVoid:
		p.next()
		return types.Void
	default:
		p.errorf("unsupported return type: %s", p.describeCur())
		return types.Void
	}
}

// declType consumes the type prefix of a declaration-assignment: either a
// bare scalar type, or `array` '<' ('int'|'float') '>' for an array
// declaration (spec.md §4.1.6). `void` is rejected here — it's only valid
// as a function return type.
func (p *Parser) declType() types.Type {
	if p.got(token.KwArray) {
		p.next()
		p.expect(token.LT)

		var elem types.Type
		switch p.tok.Kind {
		case token.KwInt:
			elem = types.Int
		case token.KwFloat:
			elem = types.Float
		default:
			p.errorf("array element type must be `int` or `float`")
		}
		p.next()

		p.expect(token.GT)
		return types.ArrayOf(elem)
	}

	t := p.scalarType()
	if t == types.Void {
		p.errorf("`void` is not a valid variable type")
	}
	return t
}
