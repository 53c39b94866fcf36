package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, program []string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("26", asm.Equate["REGISTER_COUNT"])
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"set a 1",
		"add a 2",
		"mul a a",
		"mod a 5",
		"snd a",
		"set a 0",
		"rcv a",
		"jgz a -1",
		"set a 1",
		"jgz a -2",
	}

	prog, err := parse(t, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	a := RegisterRef(REG_A)
	expected := []Instruction{
		Set(REG_A, Literal(1)),
		Add(REG_A, Literal(2)),
		Mul(REG_A, a),
		Mod(REG_A, Literal(5)),
		Snd(a),
		Set(REG_A, Literal(0)),
		Rcv(REG_A),
		Jgz(a, Literal(-1)),
		Set(REG_A, Literal(1)),
		Jgz(a, Literal(-2)),
	}

	assert.Equal(len(expected), prog.Len())
	for ip, inst := range prog.Instructions() {
		assert.Equal(expected[ip], inst, program[ip])
		assert.Equal(int(ip)+1, prog.LineNo(ip))
	}

	assert.Equal(strings.Join(program, "\n")+"\n", prog.String())
}

func TestAssemblerWhitespace(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; duet",
		"",
		"  snd\t1   ; first",
		"\tsnd 0x10",
		"rcv z",
	}

	prog, err := parse(t, program)
	assert.NoError(err)
	assert.Equal(3, prog.Len())

	inst, _ := prog.Fetch(0)
	assert.Equal(Snd(Literal(1)), inst)
	inst, _ = prog.Fetch(1)
	assert.Equal(Snd(Literal(16)), inst)
	inst, _ = prog.Fetch(2)
	assert.Equal(Rcv(Register(25)), inst)

	assert.Equal(3, prog.LineNo(0))
	assert.Equal(5, prog.LineNo(2))

	op, _ := prog.Opcode(0)
	assert.Equal([]string{"snd", "1"}, op.Words)
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ STRIDE 2",
		".equ COUNTER c",
		"set COUNTER $(STRIDE * 3)",
		"jgz COUNTER $(-STRIDE)",
		"snd $(LINENO)",
		"add a $(REGISTER_COUNT - 1)",
	}

	prog, err := parse(t, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	c := Register(2)
	expected := []Instruction{
		Set(c, Literal(6)),
		Jgz(RegisterRef(c), Literal(-2)),
		Snd(Literal(5)),
		Add(REG_A, Literal(25)),
	}
	for ip, inst := range prog.Instructions() {
		assert.Equal(expected[ip], inst)
	}
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("ROUNDS", "7")
	asm.Predefine("ROUNDS", "8")
	asm.Predefine("TARGET", "b")

	prog, err := asm.Parse(strings.NewReader("set TARGET $(ROUNDS * 2)\n"))
	assert.NoError(err)

	inst, ok := prog.Fetch(0)
	assert.True(ok)
	assert.Equal(Set(Register(1), Literal(16)), inst)
}

func TestAssemblerErrors(t *testing.T) {
	table := [](struct {
		name   string
		line   string
		lineno int
		err    error
	}){
		{"unknown", "sub a 1", 2, ErrOpcodeInvalid},
		{"missing", "set a", 2, ErrOpcodeValueMissing},
		{"missing_all", "jgz", 2, ErrOpcodeValueMissing},
		{"extra", "rcv a b", 2, ErrOpcodeExtraArgs},
		{"register_upper", "set A 1", 2, ErrRegisterInvalid},
		{"register_number", "rcv 1", 2, ErrRegisterInvalid},
		{"register_long", "add ab 1", 2, ErrRegisterInvalid},
		{"value", "snd 1x", 2, ErrParseValue("1x")},
		{"value_second", "jgz 1 zz", 2, ErrParseValue("zz")},
		{"equ_syntax", ".equ X", 2, ErrEquateSyntax},
		{"equ_duplicate", ".equ LINENO 3", 2, ErrEquateDuplicate},
		{"expression", "snd $(1 +)", 2, ErrParseExpression("1 +")},
		{"expression_float", "snd $(3 / 2)", 2, ErrParseExpression("3 / 2")},
	}

	for _, entry := range table {
		assert := assert.New(t)

		_, err := parse(t, []string{"snd 1", entry.line, "snd 2"})
		assert.Error(err, entry.name)
		assert.ErrorIs(err, ErrParse, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
			assert.Equal(entry.line, syntax.Line, entry.name)
		}
	}
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	first, err := asm.Parse(strings.NewReader(".equ X 1\nsnd X\nsnd X\n"))
	assert.NoError(err)

	// Equates and opcodes do not leak between parses.
	second, err := asm.Parse(strings.NewReader(".equ X 2\nsnd X\n"))
	assert.NoError(err)

	assert.Equal(2, first.Len())
	assert.Equal(1, second.Len())

	inst, _ := first.Fetch(0)
	assert.Equal(Snd(Literal(1)), inst)
	inst, _ = second.Fetch(0)
	assert.Equal(Snd(Literal(2)), inst)
}
