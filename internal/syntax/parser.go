// Package syntax implements the recursive-descent parser with embedded
// semantic analysis described in spec.md §4.1 — precedence-climbing
// expression parsing, a scoped symbol table, an eagerly-populated function
// table, and inline type propagation. This is THE CORE, part (a).
//
// Grounded on the teacher's bootstrap/syntax package: the next/got/assert
// token-cursor API and per-construct parseX functions, each documented with
// the EBNF production it recognizes.
package syntax

import (
	"bufio"

	"github.com/comedicchimera/toyc/internal/ast"
	"github.com/comedicchimera/toyc/internal/lexer"
	"github.com/comedicchimera/toyc/internal/report"
	"github.com/comedicchimera/toyc/internal/symbols"
	"github.com/comedicchimera/toyc/internal/token"
	"github.com/comedicchimera/toyc/internal/types"
)

// Parser consumes a token stream and produces a Program AST, declaring
// symbols as it goes. It performs no separate semantic pass: type checking
// happens inline, during parsing (spec.md §1).
type Parser struct {
	lex *lexer.Lexer
	tok *token.Token

	scope *symbols.Scope
	funcs *symbols.FuncTable

	// curReturnType is the return type of the function currently being
	// parsed, used as the expected type when parsing a return statement.
	curReturnType types.Type
}

// New creates a parser reading from r.
func New(r *bufio.Reader) *Parser {
	return &Parser{
		lex:   lexer.New(r),
		scope: symbols.NewScope(),
		funcs: symbols.NewFuncTable(),
	}
}

// Parse parses a full source file into a Program. On any fatal diagnostic,
// the process terminates (spec.md §4.1.1) via report.CatchAndExit, which
// the caller must have deferred — Parse itself does not recover.
func (p *Parser) Parse() *ast.Program {
	p.next()

	var funcs []*ast.Func
	for !p.got(token.EOF) {
		funcs = append(funcs, p.parseFunc())
	}

	return &ast.Program{Funcs: funcs}
}

// Funcs exposes the populated function table, e.g. for a lowering stage
// that needs to know a callee's signature.
func (p *Parser) Funcs() *symbols.FuncTable {
	return p.funcs
}

// parseStmts parses statements until end, consuming a single optional
// trailing semicolon after each one. Spec.md's grammar (§6.1) requires a
// semicolon only between the clauses of a for-header, but every worked
// example in §8 still terminates ordinary statements with one, so a
// semicolon here is accepted, not required.
func (p *Parser) parseStmts(end token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.got(end) {
		stmts = append(stmts, p.parseStmt())
		if p.got(token.SEMI) {
			p.next()
		}
	}
	return stmts
}

// -----------------------------------------------------------------------------

// next advances the parser to the next token.
func (p *Parser) next() {
	p.tok = p.lex.NextToken()
}

// got reports whether the parser is positioned on a token of kind k.
func (p *Parser) got(k token.Kind) bool {
	return p.tok.Kind == k
}

// assert raises a fatal diagnostic if the parser is not on a token of kind
// k. This is the "assertion" checkpoint spec.md §4.1.8 calls for at grammar
// points that must hold given the production already committed to.
func (p *Parser) assert(k token.Kind) {
	if !p.got(k) {
		p.reject(k)
	}
}

// expect asserts kind k and advances past it.
func (p *Parser) expect(k token.Kind) {
	p.assert(k)
	p.next()
}

// reject raises a fatal "expected X, got Y" diagnostic on the current
// token.
func (p *Parser) reject(want token.Kind) {
	panic(report.Raise(p.tok.Line, "expected %s, got %s", want, p.describeCur()))
}

func (p *Parser) describeCur() string {
	if p.tok.Kind == token.EOF {
		return "end of file"
	}
	return p.tok.Kind.String()
}

// errorf raises a fatal diagnostic on the current line with a free-form
// message (used for semantic errors that aren't simple token mismatches).
func (p *Parser) errorf(format string, args ...interface{}) {
	panic(report.Raise(p.tok.Line, format, args...))
}

// errorOnLine is like errorf but reports against an earlier line, used when
// the offending construct has already been fully consumed by the time the
// error is detected (e.g. an array initializer count mismatch).
func (p *Parser) errorOnLine(line int, format string, args ...interface{}) {
	panic(report.Raise(line, format, args...))
}
