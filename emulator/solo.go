package emulator

import (
	"log"

	"github.com/ezrec/duet/cpu"
)

// Solo runs a single processor with no peer.
// A rcv on a register holding zero is skipped. A rcv on a nonzero register
// ends the run, recovering the most recently sent value.
type Solo struct {
	Verbose bool         // If set, enables verbose logging.
	Limit   int          // Maximum ticks. Zero for no limit.
	Program *cpu.Program // Program to run.

	Cpu   *cpu.Cpu // Processor of the most recent run.
	Sends int      // Sends completed in the most recent run.
}

// NewSolo creates a new solo runner for a program.
func NewSolo(prog *cpu.Program) (solo *Solo) {
	solo = &Solo{
		Program: prog,
	}

	return
}

// RunSolo runs a program on a single processor, and returns the last value
// sent before the first rcv of a nonzero register.
func RunSolo(prog *cpu.Program) (last int64, err error) {
	return NewSolo(prog).Run()
}

// Run runs the processor until it recovers a value or faults.
func (solo *Solo) Run() (last int64, err error) {
	cp := cpu.NewCpu(0, solo.Program)
	cp.Verbose = solo.Verbose
	solo.Cpu = cp
	solo.Sends = 0

	for {
		if solo.Limit > 0 && cp.Ticks >= solo.Limit {
			last = 0
			err = solo.fault(ErrTickLimit)
			return
		}

		state := cp.Step()
		switch state.Kind {
		case cpu.STATE_RUNNING:
			// pass
		case cpu.STATE_SENDING:
			last = state.Value
			solo.Sends++
		case cpu.STATE_WAITING:
			value := cp.Register[state.Register]
			if value != 0 {
				if solo.Verbose {
					log.Printf("solo: recovered %d after %d sends", last, solo.Sends)
				}
				return
			}
			cp.Commit(state.Register, value)
		case cpu.STATE_HALTED:
			last = 0
			err = solo.fault(state.Err)
			return
		}
	}
}

func (solo *Solo) fault(cause error) (err error) {
	return newFault(solo.Verbose, solo.Program, solo.Cpu, cause)
}
