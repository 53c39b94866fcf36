package emulator

import (
	"sync"
)

// Queue is an unbounded FIFO of values between two processors.
// It is safe for one producer and one consumer running concurrently.
type Queue struct {
	mutex sync.Mutex
	data  []int64
	ready chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends a value and signals Ready.
func (q *Queue) Push(value int64) {
	q.mutex.Lock()
	q.data = append(q.data, value)
	q.mutex.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Pop removes the oldest value, if any.
func (q *Queue) Pop() (value int64, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.data) == 0 {
		return
	}

	value = q.data[0]
	q.data = q.data[1:]
	if len(q.data) == 0 {
		q.data = nil
	}

	return value, true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return len(q.data)
}

// Empty returns true if nothing is queued.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Ready is signalled after a Push. A signal may be stale: always Pop after
// receiving from it.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
