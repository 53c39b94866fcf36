package cpu

import (
	"fmt"
)

// REGISTER_COUNT is the number of registers, 'a' through 'z'.
const REGISTER_COUNT = 26

// Op is an instruction operation type.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SND = Op(0) // snd
	OP_SET = Op(1) // set
	OP_ADD = Op(2) // add
	OP_MUL = Op(3) // mul
	OP_MOD = Op(4) // mod
	OP_RCV = Op(5) // rcv
	OP_JGZ = Op(6) // jgz
)

// Register is a register index, 0 ('a') through 25 ('z').
type Register uint8

// Well known registers.
const (
	REG_A = Register(0)
	REG_P = Register('p' - 'a')
)

// ParseRegister parses a single lowercase letter as a register.
func ParseRegister(word string) (reg Register, err error) {
	if len(word) != 1 || word[0] < 'a' || word[0] > 'z' {
		err = ErrRegisterInvalid
		return
	}

	reg = Register(word[0] - 'a')
	return
}

func (reg Register) String() string {
	return string(rune('a' + reg))
}

// Value is either a literal or a register reference, resolved at use.
type Value struct {
	IsRegister bool
	Register   Register
	Literal    int64
}

// Literal makes a literal value.
func Literal(value int64) Value {
	return Value{Literal: value}
}

// RegisterRef makes a register reference value.
func RegisterRef(reg Register) Value {
	return Value{IsRegister: true, Register: reg}
}

func (val Value) String() string {
	if val.IsRegister {
		return val.Register.String()
	}
	return fmt.Sprintf("%d", val.Literal)
}

// Instruction is a single decoded instruction.
//
// Operands used by each Op:
//
//	snd A
//	set/add/mul/mod Register A
//	rcv Register
//	jgz A B
type Instruction struct {
	Op       Op
	Register Register
	A        Value
	B        Value
}

// Snd sends A to the peer.
func Snd(a Value) Instruction {
	return Instruction{Op: OP_SND, A: a}
}

// Set sets reg to A.
func Set(reg Register, a Value) Instruction {
	return Instruction{Op: OP_SET, Register: reg, A: a}
}

// Add adds A to reg.
func Add(reg Register, a Value) Instruction {
	return Instruction{Op: OP_ADD, Register: reg, A: a}
}

// Mul multiplies reg by A.
func Mul(reg Register, a Value) Instruction {
	return Instruction{Op: OP_MUL, Register: reg, A: a}
}

// Mod sets reg to the remainder of reg divided by A.
func Mod(reg Register, a Value) Instruction {
	return Instruction{Op: OP_MOD, Register: reg, A: a}
}

// Rcv receives a value from the peer into reg.
func Rcv(reg Register) Instruction {
	return Instruction{Op: OP_RCV, Register: reg}
}

// Jgz jumps by B if A is greater than zero.
func Jgz(a, b Value) Instruction {
	return Instruction{Op: OP_JGZ, A: a, B: b}
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() (out string) {
	switch inst.Op {
	case OP_SND:
		out = fmt.Sprintf("%v %v", inst.Op, inst.A)
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		out = fmt.Sprintf("%v %v %v", inst.Op, inst.Register, inst.A)
	case OP_RCV:
		out = fmt.Sprintf("%v %v", inst.Op, inst.Register)
	case OP_JGZ:
		out = fmt.Sprintf("%v %v %v", inst.Op, inst.A, inst.B)
	default:
		out = fmt.Sprintf("%v", inst.Op)
	}

	return
}
