// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives duet processors, alone or as a concurrent pair.
package emulator

import (
	"log"

	"gopkg.in/tomb.v2"

	"github.com/ezrec/duet/cpu"
)

// Duet runs two processors over the same program, each in its own
// goroutine. Processor 0 sends into the inbox of processor 1 and vice versa.
// The run ends when both processors are blocked on rcv with empty inboxes,
// or when either one faults.
type Duet struct {
	Verbose bool         // If set, enables verbose logging.
	Limit   int          // Maximum ticks per processor. Zero for no limit.
	Program *cpu.Program // Program run by both processors.

	Cpu   [2]*cpu.Cpu // Processors of the most recent run.
	Sends [2]int      // Sends completed by each processor in the most recent run.

	inbox       [2]*Queue
	coordinator *Coordinator
	tomb        *tomb.Tomb
}

// NewDuet creates a new duet runner for a program.
func NewDuet(prog *cpu.Program) (duet *Duet) {
	duet = &Duet{
		Program: prog,
	}

	return
}

// RunDuet runs a program as a duet, and returns the number of values sent
// by processor 1 before deadlock.
func RunDuet(prog *cpu.Program) (sends int, err error) {
	return NewDuet(prog).Run()
}

// Reset prepares fresh processors, queues and termination state.
func (duet *Duet) Reset() {
	for id := range duet.Cpu {
		cp := cpu.NewCpu(id, duet.Program)
		cp.Verbose = duet.Verbose
		duet.Cpu[id] = cp
		duet.inbox[id] = NewQueue()
	}

	duet.Sends = [2]int{}
	duet.coordinator = NewCoordinator()
	duet.tomb = &tomb.Tomb{}
}

// Run runs both processors to deadlock, and returns the number of values
// sent by processor 1. On a fault, err is an *ErrFault for the processor
// that stopped first.
func (duet *Duet) Run() (sends int, err error) {
	duet.Reset()

	t := duet.tomb

	// Processor 1 is started from inside the tomb, so that an immediate
	// fault in processor 0 cannot finish the tomb before it is tracked.
	t.Go(func() error {
		t.Go(func() error {
			return duet.process(1)
		})
		return duet.process(0)
	})

	err = t.Wait()
	if err != nil {
		if duet.Verbose && duet.coordinator.Halted() {
			log.Printf("duet: halted, sends %v: %v", duet.Sends, err)
		}
		return
	}

	sends = duet.Sends[1]

	if duet.Verbose {
		log.Printf("duet: deadlock, sends %v", duet.Sends)
	}

	return
}

// process is the driving loop of a single processor.
func (duet *Duet) process(id int) (err error) {
	cp := duet.Cpu[id]
	peer := 1 - id
	outbox := duet.inbox[peer]
	co := duet.coordinator
	t := duet.tomb

	if duet.Verbose {
		defer func() {
			log.Printf("duet: processor %d stopped, %d sends: %v", id, duet.Sends[id], err)
		}()
	}

	for {
		select {
		case <-t.Dying():
			return tomb.ErrDying
		default:
		}

		if duet.Limit > 0 && cp.Ticks >= duet.Limit {
			return duet.fault(id, ErrTickLimit)
		}

		state := cp.Step()
		switch state.Kind {
		case cpu.STATE_RUNNING:
			// pass
		case cpu.STATE_SENDING:
			outbox.Push(state.Value)
			co.Wake(peer)
			duet.Sends[id]++
		case cpu.STATE_WAITING:
			var done bool
			done, err = duet.receive(id, state.Register)
			if done {
				return
			}
		case cpu.STATE_HALTED:
			return duet.fault(id, state.Err)
		}
	}
}

// receive completes a rcv, blocking until a value arrives or the duet ends.
func (duet *Duet) receive(id int, reg cpu.Register) (done bool, err error) {
	cp := duet.Cpu[id]
	inbox := duet.inbox[id]
	co := duet.coordinator
	t := duet.tomb

	for {
		value, ok := inbox.Pop()
		if ok {
			cp.Commit(reg, value)
			return
		}

		switch co.Idle(id, inbox) {
		case VERDICT_RETRY:
			continue
		case VERDICT_DEADLOCK:
			if duet.Verbose {
				log.Printf("duet: processor %d found deadlock, running %v", id, co.Running())
			}
			// Wake the peer: it will reach the same verdict.
			t.Kill(nil)
			done = true
			return
		case VERDICT_HALTED:
			// The faulting processor kills the tomb as it returns.
			<-t.Dying()
			done = true
			err = tomb.ErrDying
			return
		case VERDICT_WAIT:
			// pass
		}

		select {
		case <-inbox.Ready():
		case <-t.Dying():
		}
	}
}

// fault stops a processor, and describes where it stopped.
func (duet *Duet) fault(id int, cause error) error {
	duet.coordinator.Halt(id)

	return newFault(duet.Verbose, duet.Program, duet.Cpu[id], cause)
}
