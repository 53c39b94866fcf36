package emulator

import (
	"sync"
)

// Verdict is the outcome of a processor going idle.
type Verdict int

const (
	VERDICT_WAIT     = Verdict(0) // Peer is still running; wait for input.
	VERDICT_RETRY    = Verdict(1) // Input arrived; poll again.
	VERDICT_DEADLOCK = Verdict(2) // Both processors are idle with empty inboxes.
	VERDICT_HALTED   = Verdict(3) // A processor faulted.
)

// Coordinator holds the running flags of a processor pair.
// Every flag read or write happens under a single lock, so deadlock is
// always decided from a consistent snapshot of both processors.
type Coordinator struct {
	mutex   sync.Mutex
	running [2]bool
	halted  bool
}

// NewCoordinator creates a coordinator with both processors running.
func NewCoordinator() *Coordinator {
	return &Coordinator{running: [2]bool{true, true}}
}

// Wake marks a processor as running. Senders wake their peer after every
// push, so a processor with a value in flight is never considered idle.
func (co *Coordinator) Wake(id int) {
	co.mutex.Lock()
	co.running[id] = true
	co.mutex.Unlock()
}

// Idle is called by a processor that found its inbox empty.
func (co *Coordinator) Idle(id int, inbox *Queue) (verdict Verdict) {
	co.mutex.Lock()
	defer co.mutex.Unlock()

	if co.halted {
		co.running[id] = false
		return VERDICT_HALTED
	}

	if !inbox.Empty() {
		co.running[id] = true
		return VERDICT_RETRY
	}

	co.running[id] = false
	if !co.running[1-id] {
		return VERDICT_DEADLOCK
	}

	return VERDICT_WAIT
}

// Halt marks a processor as stopped by a fault.
func (co *Coordinator) Halt(id int) {
	co.mutex.Lock()
	co.running[id] = false
	co.halted = true
	co.mutex.Unlock()
}

// Halted returns true once any processor has faulted.
func (co *Coordinator) Halted() bool {
	co.mutex.Lock()
	defer co.mutex.Unlock()

	return co.halted
}

// Running returns a snapshot of both running flags.
func (co *Coordinator) Running() (running [2]bool) {
	co.mutex.Lock()
	defer co.mutex.Unlock()

	return co.running
}
