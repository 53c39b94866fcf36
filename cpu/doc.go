// Package cpu implements the processor and assembler for the duet register machine.
//
// The processor consists of a signed instruction pointer (IP) and twenty-six
// 64-bit registers named 'a' through 'z'. Register 'p' is preloaded with the
// processor id. There are seven opcodes: snd, set, add, mul, mod, rcv and jgz.
//
// A processor never blocks. Step reports what the current instruction needs
// (a value to send, a value to receive) and the caller decides how to wait.
// Receives are two-phase: Step reports STATE_WAITING, and Commit delivers the
// value and advances the IP.
//
// The assembler reads one instruction per line, with ';' comments, .equ
// constants, and $(...) compile-time expressions.
package cpu
