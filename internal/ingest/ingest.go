// internal/ingest/ingest.go
package ingest

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/tamzrod/dmx-bridge/internal/frame"
	"github.com/tamzrod/dmx-bridge/internal/metrics"
	"github.com/tamzrod/dmx-bridge/internal/queue"
)

// Ingest turns decoded network channel data into frame records.
//
// It assigns sequence numbers in arrival order, publishes each record as
// the current frame, and enqueues it for the pacer. It never blocks on the
// queue: overflow evicts the oldest record and counts a drop, so freshness
// wins over history. Protocol validation happened upstream; Ingest trusts
// its input.
type Ingest struct {
	store *frame.Store
	q     *queue.Queue
	m     *metrics.Metrics

	seq atomic.Uint64

	// Activity edge state. Submit is called from a single receiver
	// goroutine, so a plain bool is fine.
	active bool
}

// New creates an ingest publishing into store and q.
func New(store *frame.Store, q *queue.Queue, m *metrics.Metrics) (*Ingest, error) {
	if store == nil || q == nil || m == nil {
		return nil, errors.New("ingest: store, queue and metrics required")
	}
	return &Ingest{store: store, q: q, m: m}, nil
}

// Submit accepts one decoded channel array. Short arrays are zero-padded,
// long ones truncated to the universe size.
func (in *Ingest) Submit(data []byte) {
	rec := in.Stamp(frame.FromSlice(data))

	in.m.FrameReceived()
	in.logActivityEdge(rec.Data)

	in.store.Publish(rec)

	evicted, err := in.q.Push(rec)
	if evicted {
		in.m.FrameDropped()
	}
	if errors.Is(err, queue.ErrSequenceRegression) {
		// Cannot happen for records stamped here, but Stamp is shared
		// with test-pattern injection.
		in.m.SequenceRegression()
	}
}

// Stamp wraps a frame in a record carrying the next sequence number.
func (in *Ingest) Stamp(f frame.Frame) frame.Record {
	return frame.Record{
		Data: f,
		Seq:  in.seq.Add(1),
		At:   time.Now(),
	}
}

func (in *Ingest) logActivityEdge(f frame.Frame) {
	has := f.Active() > 0
	if has == in.active {
		return
	}
	in.active = has
	if has {
		log.Printf("ingest: DMX ACTIVE")
	} else {
		log.Printf("ingest: DMX INACTIVE")
	}
}
