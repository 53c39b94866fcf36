package cpu

import (
	"fmt"
	"log"
)

// StateKind is the outcome class of a single processor step.
type StateKind int

//go:generate go tool stringer -linecomment -type=StateKind
const (
	STATE_RUNNING = StateKind(0) // running
	STATE_SENDING = StateKind(1) // sending
	STATE_WAITING = StateKind(2) // waiting
	STATE_HALTED  = StateKind(3) // halted
)

// State is the result of a single processor step.
type State struct {
	Kind     StateKind
	Value    int64    // Value sent, for STATE_SENDING.
	Register Register // Register awaiting a value, for STATE_WAITING.
	Err      error    // Reason, for STATE_HALTED.
}

func (st State) String() string {
	switch st.Kind {
	case STATE_SENDING:
		return fmt.Sprintf("%v(%d)", st.Kind, st.Value)
	case STATE_WAITING:
		return fmt.Sprintf("%v(%v)", st.Kind, st.Register)
	case STATE_HALTED:
		return fmt.Sprintf("%v(%v)", st.Kind, st.Err)
	}
	return st.Kind.String()
}

// Cpu is the simulation context for a single duet processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Id      int      // Processor id, preloaded into register 'p'.
	Program *Program // Program being executed. Never modified.

	Ip       int64                 // Current instruction pointer.
	Register [REGISTER_COUNT]int64 // Register bank.

	Ticks int // Steps executed since reset.
}

// NewCpu creates a new processor for a program.
func NewCpu(id int, prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Id:      id,
		Program: prog,
	}

	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears the registers and tick counter.
// - Loads the processor id into register 'p'.
// - Sets the IP to the first instruction.
func (cpu *Cpu) Reset() {
	clear(cpu.Register[:])
	cpu.Register[REG_P] = int64(cpu.Id)
	cpu.Ip = 0
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu%d: reset", cpu.Id)
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %d\n", "id", cpu.Id)
	text += fmt.Sprintf("% 5s: %d\n", "ip", cpu.Ip)
	for reg, val := range cpu.Register {
		if val == 0 {
			continue
		}
		text += fmt.Sprintf("% 5s: %d\n", Register(reg), val)
	}

	return
}

// Get resolves a value against the register bank.
func (cpu *Cpu) Get(val Value) int64 {
	if val.IsRegister {
		return cpu.Register[val.Register]
	}
	return val.Literal
}

// Step executes the instruction at the IP.
// Step never blocks: a rcv reports STATE_WAITING and leaves the IP in place
// until Commit delivers a value.
func (cpu *Cpu) Step() (state State) {
	inst, ok := cpu.Program.Fetch(cpu.Ip)
	if !ok {
		state = State{Kind: STATE_HALTED, Err: ErrIpInvalid}
		if cpu.Verbose {
			log.Printf("cpu%d: %d: %v", cpu.Id, cpu.Ip, state)
		}
		return
	}

	cpu.Ticks++

	if cpu.Verbose {
		log.Printf("cpu%d: %d: %v", cpu.Id, cpu.Ip, inst)
	}

	next_ip := cpu.Ip + 1

	switch inst.Op {
	case OP_SND:
		state = State{Kind: STATE_SENDING, Value: cpu.Get(inst.A)}
	case OP_SET:
		cpu.Register[inst.Register] = cpu.Get(inst.A)
	case OP_ADD:
		cpu.Register[inst.Register] += cpu.Get(inst.A)
	case OP_MUL:
		cpu.Register[inst.Register] *= cpu.Get(inst.A)
	case OP_MOD:
		divisor := cpu.Get(inst.A)
		if divisor == 0 {
			return State{Kind: STATE_HALTED, Err: ErrModZero}
		}
		cpu.Register[inst.Register] %= divisor
	case OP_RCV:
		// Don't advance to next IP.
		return State{Kind: STATE_WAITING, Register: inst.Register}
	case OP_JGZ:
		if cpu.Get(inst.A) > 0 {
			next_ip = cpu.Ip + cpu.Get(inst.B)
		}
	default:
		return State{Kind: STATE_HALTED, Err: ErrOpcodeInvalid}
	}

	cpu.Ip = next_ip

	return
}

// Commit completes a pending rcv: stores value in reg and advances the IP.
func (cpu *Cpu) Commit(reg Register, value int64) {
	if cpu.Verbose {
		log.Printf("cpu%d: %d: %v <- %d", cpu.Id, cpu.Ip, reg, value)
	}

	cpu.Register[reg] = value
	cpu.Ip++
}
