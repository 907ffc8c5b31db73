package ast

import "strings"

// Dump renders a human-readable, indented tree of an AST node — a debug
// view, not part of the language's semantics. Grounded on
// original_source/parser/parser.cc:839-985 (`RetStatement::printStatement`,
// `AssnStatement::printStatement`, `FuncStatement::printStatement`,
// `IfStatement::printStatement`, `ForStatement::printStatement`,
// `Condition::printStatement`), which print the parsed tree to stdout for
// inspection; reworked here into string-returning methods (so callers
// choose where the output goes, per Go idiom) rather than writing directly
// to stdout, and indentation is tracked by an explicit depth argument
// instead of the original's per-call hardcoded spaces.

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Dump renders e as an indented subtree.
func (l *Literal) Dump(depth int) string {
	return indent(depth) + l.Text + "\n"
}

func (id *Identifier) Dump(depth int) string {
	return indent(depth) + id.Name + "\n"
}

func (ix *Index) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString(ix.Name)
	sb.WriteString("[\n")
	sb.WriteString(ix.Idx.Dump(depth + 1))
	sb.WriteString(indent(depth))
	sb.WriteString("]\n")
	return sb.String()
}

func (c *Call) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString(c.Name)
	sb.WriteString("(\n")
	for _, arg := range c.Args {
		sb.WriteString(arg.Dump(depth + 1))
	}
	sb.WriteString(indent(depth))
	sb.WriteString(")\n")
	return sb.String()
}

func (a *Arith) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("[")
	sb.WriteString(a.Op.String())
	sb.WriteString("]\n")
	sb.WriteString(a.Left.Dump(depth + 1))
	sb.WriteString(a.Right.Dump(depth + 1))
	return sb.String()
}

func (arr *Array) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	for _, elem := range arr.Elements {
		sb.WriteString(elem.Dump(depth + 1))
	}
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

// Dump renders a Condition the way the original prints the comparison
// guarding an If or For: left operand, operator, right operand.
func (c *Condition) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Left]\n")
	sb.WriteString(c.Left.Dump(depth + 2))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Comp] ")
	sb.WriteString(c.Op.String())
	sb.WriteString("\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Right]\n")
	sb.WriteString(c.Right.Dump(depth + 2))
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func dumpBlock(stmts []Stmt, depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	for _, s := range stmts {
		sb.WriteString(s.Dump(depth + 1))
	}
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func (a *Assn) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(a.Target.Dump(depth + 1))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("=\n")
	if a.Value != nil {
		sb.WriteString(a.Value.Dump(depth + 1))
	}
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func (r *Ret) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Return]\n")
	sb.WriteString(r.Value.Dump(depth + 1))
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func (c *CallStmt) Dump(depth int) string {
	return c.Call.Dump(depth)
}

func (f *If) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[If Statement]\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Condition]\n")
	sb.WriteString(f.Cond.Dump(depth + 1))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Taken Block]\n")
	sb.WriteString(dumpBlock(f.Taken, depth+1))
	if len(f.NotTaken) > 0 {
		sb.WriteString(indent(depth + 1))
		sb.WriteString("[Not Taken Block]\n")
		sb.WriteString(dumpBlock(f.NotTaken, depth+1))
	}
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func (fr *For) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[For Statement]\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Init]\n")
	sb.WriteString(fr.Init.Dump(depth + 1))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Cond]\n")
	sb.WriteString(fr.Cond.Dump(depth + 1))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Step]\n")
	sb.WriteString(fr.Step.Dump(depth + 1))
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Block]\n")
	sb.WriteString(dumpBlock(fr.Body, depth+1))
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

func (f *Func) Dump(depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString("{\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Function] ")
	sb.WriteString(f.Name)
	sb.WriteString("\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Return Type] ")
	sb.WriteString(f.ReturnType.String())
	sb.WriteString("\n")
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Params]\n")
	if len(f.Params) == 0 {
		sb.WriteString(indent(depth + 2))
		sb.WriteString("NONE\n")
	}
	for _, p := range f.Params {
		sb.WriteString(indent(depth + 2))
		sb.WriteString(p.Type.String())
		sb.WriteString(" ")
		sb.WriteString(p.Name)
		sb.WriteString("\n")
	}
	sb.WriteString(indent(depth + 1))
	sb.WriteString("[Body]\n")
	sb.WriteString(dumpBlock(f.Body, depth+1))
	sb.WriteString(indent(depth))
	sb.WriteString("}\n")
	return sb.String()
}

// Dump renders every function in prog as an indented tree, in source order.
func Dump(prog *Program) string {
	var sb strings.Builder
	for _, f := range prog.Funcs {
		sb.WriteString(f.Dump(0))
	}
	return sb.String()
}
