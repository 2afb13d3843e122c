// internal/queue/queue.go
package queue

import (
	"errors"
	"sync"

	"github.com/tamzrod/dmx-bridge/internal/frame"
)

// ErrSequenceRegression is returned by Push when a record's sequence number
// is not greater than the last accepted one. Such records are discarded,
// never merged; the caller accounts for them separately from overflow drops.
var ErrSequenceRegression = errors.New("queue: sequence regression")

// Queue is a bounded FIFO of frame records between the ingest and the pacer.
//
// On overflow the OLDEST record is evicted, not the newest, so the consumer
// always drains toward the most recent state. The critical section is O(1);
// neither side can stall the other.
type Queue struct {
	mu      sync.Mutex
	recs    []frame.Record // ring buffer, len == capacity
	head    int
	n       int
	lastSeq uint64 // highest sequence ever accepted
}

// New creates a queue with the given fixed capacity.
func New(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, errors.New("queue: capacity must be > 0")
	}
	return &Queue{recs: make([]frame.Record, capacity)}, nil
}

// Push appends rec. If the queue is full the oldest record is evicted and
// evicted=true is returned; the new record is always accepted. A record
// whose sequence does not advance past the last accepted one is rejected
// with ErrSequenceRegression.
func (q *Queue) Push(rec frame.Record) (evicted bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if rec.Seq <= q.lastSeq {
		return false, ErrSequenceRegression
	}
	q.lastSeq = rec.Seq

	if q.n == len(q.recs) {
		// Evict oldest: advance head, keep n.
		q.head = (q.head + 1) % len(q.recs)
		q.n--
		evicted = true
	}

	q.recs[(q.head+q.n)%len(q.recs)] = rec
	q.n++
	return evicted, nil
}

// Pop removes and returns the oldest record.
func (q *Queue) Pop() (frame.Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.n == 0 {
		return frame.Record{}, false
	}
	rec := q.recs[q.head]
	q.head = (q.head + 1) % len(q.recs)
	q.n--
	return rec, true
}

// Len reports the number of queued records.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

// Clear discards all queued records. Used by test-pattern injection so the
// pattern takes effect on the next tick instead of after the backlog.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head = 0
	q.n = 0
}
