// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// Assembler is a single pass assembler for the duet instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps opcode names to their operation and operand count.
var opMap = map[string]struct {
	op   Op
	args int
}{
	"snd": {OP_SND, 1},
	"set": {OP_SET, 2},
	"add": {OP_ADD, 2},
	"mul": {OP_MUL, 2},
	"mod": {OP_MOD, 2},
	"rcv": {OP_RCV, 1},
	"jgz": {OP_JGZ, 2},
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// valueOf returns the value of a simple word: a register or an integer.
func (asm *Assembler) valueOf(word string) (value Value, err error) {
	reg, err := ParseRegister(word)
	if err == nil {
		value = RegisterRef(reg)
		return
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	value = Literal(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program.
// All errors are *ErrSyntax, and match ErrParse.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: errors.Join(ErrParse, err)}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		opcodes: append([]Opcode(nil), asm.Opcode...),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	form, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < form.args {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > form.args {
		err = ErrOpcodeExtraArgs
		return
	}

	var inst Instruction
	var a, b Value
	var reg Register

	switch form.op {
	case OP_SND:
		a, err = asm.valueOf(args[0])
		inst = Snd(a)
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		reg, err = ParseRegister(args[0])
		if err != nil {
			return
		}
		a, err = asm.valueOf(args[1])
		inst = Instruction{Op: form.op, Register: reg, A: a}
	case OP_RCV:
		reg, err = ParseRegister(args[0])
		inst = Rcv(reg)
	case OP_JGZ:
		a, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		b, err = asm.valueOf(args[1])
		inst = Jgz(a, b)
	}
	if err != nil {
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Words: words, Instruction: inst})

	return
}
