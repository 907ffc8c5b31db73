// Package symbols implements the scoped variable table and the flat
// function-signature table spec.md §3.4 describes. Grounded on the
// Define/Lookup shape of the teacher's bootstrap/depm/symbol_table.go, cut
// down to the flat per-scope map this spec actually needs: there is no
// cross-file resolution, no forward references, no import machinery.
package symbols

import "github.com/comedicchimera/toyc/internal/types"

// frame is a single nested scope's identifier -> type map.
type frame map[string]types.Type

// Scope is a stack of frames. The outermost frame is pushed once per
// function; If/For bodies each push their own frame on entry and pop it on
// exit (spec.md §4.1.7).
type Scope struct {
	frames []frame
}

// NewScope creates an empty scope stack.
func NewScope() *Scope {
	return &Scope{}
}

// Push opens a new, empty innermost frame.
func (s *Scope) Push() {
	s.frames = append(s.frames, frame{})
}

// Pop closes the innermost frame and returns its contents, so callers (the
// parser) can attach the frame's declared locals to the AST node that owns
// it (Func.Locals, If.TakenLocals, For.Locals, ...).
func (s *Scope) Pop() map[string]types.Type {
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return map[string]types.Type(top)
}

// Declare inserts name into the innermost frame. It returns false if name is
// already declared in ANY frame currently in scope — a redefinition error
// per spec.md I-1 / §4.1.4.
func (s *Scope) Declare(name string, t types.Type) bool {
	if _, _, ok := s.Lookup(name); ok {
		return false
	}
	s.frames[len(s.frames)-1][name] = t
	return true
}

// Lookup searches frames from innermost to outermost for name (spec.md
// §3.4). The second and third return values are always equal: both report
// whether name was found. When it is not found, the type is types.Max.
func (s *Scope) Lookup(name string) (types.Type, bool, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i][name]; ok {
			return t, true, true
		}
	}
	return types.Max, false, false
}

// -----------------------------------------------------------------------------

// Signature is a function's declared interface: return type, ordered
// parameter types, and whether it's a compiler built-in (spec.md §3.4, I-2).
type Signature struct {
	ReturnType types.Type
	ParamTypes []types.Type
	IsBuiltin  bool
}

// FuncTable is the flat mapping of function name to Signature. It is
// populated eagerly, before a function's body is parsed, so self-recursive
// calls resolve (spec.md §4.1.2 step 5).
type FuncTable struct {
	funcs map[string]*Signature
}

// NewFuncTable creates a function table pre-populated with the two
// pre-declared built-ins (spec.md I-2, §6.2).
func NewFuncTable() *FuncTable {
	ft := &FuncTable{funcs: make(map[string]*Signature)}
	ft.funcs["printVarInt"] = &Signature{ReturnType: types.Void, ParamTypes: []types.Type{types.Int}, IsBuiltin: true}
	ft.funcs["printVarFloat"] = &Signature{ReturnType: types.Void, ParamTypes: []types.Type{types.Float}, IsBuiltin: true}
	return ft
}

// Declare records a new function signature. It returns false if name is
// already declared (including as a built-in) — a redefinition error.
func (ft *FuncTable) Declare(name string, sig *Signature) bool {
	if _, ok := ft.funcs[name]; ok {
		return false
	}
	ft.funcs[name] = sig
	return true
}

// Lookup returns the signature for name, if any.
func (ft *FuncTable) Lookup(name string) (*Signature, bool) {
	sig, ok := ft.funcs[name]
	return sig, ok
}
