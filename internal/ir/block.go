package ir

import "strings"

// BasicBlock owns an ordered list of non-terminator instructions plus a
// single terminator (spec.md §3.5).
type BasicBlock struct {
	Name   string
	Insts  []*Instruction
	Term   *Instruction
	parent *Function
}

// Append adds inst to the end of the block's non-terminator instruction
// list, assigning it an SSA name and attaching it to this block.
func (b *BasicBlock) Append(inst *Instruction) {
	inst.block = b
	if b.parent != nil {
		inst.id = b.parent.nextID
		b.parent.nextID++
	}
	b.Insts = append(b.Insts, inst)
}

// InsertBefore inserts inst immediately before target within this block.
// If target is the block's terminator, inst is appended to the end of the
// non-terminator list, i.e. immediately before the terminator (spec.md
// §4.2.4 "inserting the clones immediately before the latch's
// terminator").
func (b *BasicBlock) InsertBefore(target, inst *Instruction) {
	if target == b.Term {
		b.Append(inst)
		return
	}

	for idx, existing := range b.Insts {
		if existing == target {
			inst.block = b
			if b.parent != nil {
				inst.id = b.parent.nextID
				b.parent.nextID++
			}
			b.Insts = append(b.Insts, nil)
			copy(b.Insts[idx+1:], b.Insts[idx:])
			b.Insts[idx] = inst
			return
		}
	}
}

// SetTerminator installs inst as this block's terminator.
func (b *BasicBlock) SetTerminator(inst *Instruction) {
	inst.block = b
	if b.parent != nil {
		inst.id = b.parent.nextID
		b.parent.nextID++
	}
	b.Term = inst
}

func (b *BasicBlock) removeInst(target *Instruction) {
	for idx, existing := range b.Insts {
		if existing == target {
			b.Insts = append(b.Insts[:idx], b.Insts[idx+1:]...)
			return
		}
	}
}

// Repr renders the block's label and instructions, one per line.
func (b *BasicBlock) Repr() string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteString(":\n")
	for _, inst := range b.Insts {
		sb.WriteString("  ")
		sb.WriteString(inst.Line())
		sb.WriteRune('\n')
	}
	if b.Term != nil {
		sb.WriteString("  ")
		sb.WriteString(b.Term.Line())
		sb.WriteRune('\n')
	}
	return sb.String()
}
