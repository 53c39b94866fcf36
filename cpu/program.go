package cpu

import (
	"iter"
	"strings"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo      int
	Words       []string
	Instruction Instruction
}

// Program is an immutable, ordered instruction sequence.
// A Program may be shared by any number of processors without locking.
type Program struct {
	opcodes []Opcode
}

// NewProgram creates a program from bare instructions.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{opcodes: make([]Opcode, len(insts))}
	for n, inst := range insts {
		prog.opcodes[n] = Opcode{
			LineNo:      n + 1,
			Words:       strings.Fields(inst.String()),
			Instruction: inst,
		}
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.opcodes)
}

// Fetch returns the instruction at ip, if ip is in range.
func (prog *Program) Fetch(ip int64) (inst Instruction, ok bool) {
	if ip < 0 || ip >= int64(prog.Len()) {
		return
	}

	return prog.opcodes[ip].Instruction, true
}

// LineNo returns the source line of the instruction at ip, or 0.
func (prog *Program) LineNo(ip int64) int {
	if ip < 0 || ip >= int64(prog.Len()) {
		return 0
	}

	return prog.opcodes[ip].LineNo
}

// Opcode returns a copy of the opcode at ip.
func (prog *Program) Opcode(ip int64) (op Opcode, ok bool) {
	if ip < 0 || ip >= int64(prog.Len()) {
		return
	}

	op = prog.opcodes[ip]
	op.Words = append([]string(nil), op.Words...)
	return op, true
}

// Instructions iterates over the program's instructions by ip.
func (prog *Program) Instructions() iter.Seq2[int64, Instruction] {
	return func(yield func(ip int64, inst Instruction) bool) {
		for n := range prog.Len() {
			if !yield(int64(n), prog.opcodes[n].Instruction) {
				return
			}
		}
	}
}

// String returns the program listing, one instruction per line.
func (prog *Program) String() string {
	var text strings.Builder
	for _, inst := range prog.Instructions() {
		text.WriteString(inst.String())
		text.WriteByte('\n')
	}
	return text.String()
}
