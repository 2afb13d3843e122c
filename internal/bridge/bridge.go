// internal/bridge/bridge.go
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tamzrod/dmx-bridge/internal/frame"
	"github.com/tamzrod/dmx-bridge/internal/ingest"
	"github.com/tamzrod/dmx-bridge/internal/metrics"
	"github.com/tamzrod/dmx-bridge/internal/pacer"
	"github.com/tamzrod/dmx-bridge/internal/queue"
	"github.com/tamzrod/dmx-bridge/internal/wire"
)

// Receiver is a protocol source delivering decoded channel arrays.
type Receiver interface {
	Run(ctx context.Context, deliver func(data []byte)) error
}

// Transport is the serial link including its single-owner close.
type Transport interface {
	wire.Transport
	Close() error
}

// Options assembles one bridge pipeline.
type Options struct {
	Receiver  Receiver
	Transport Transport

	// Channels per frame on the wire, 1..512.
	Channels int
	// OutputInterval is the pacer period.
	OutputInterval time.Duration
	// QueueCapacity is the pending-queue size in frames.
	QueueCapacity int
	// SnapshotInterval is the metrics recompute cadence. Default 1s.
	SnapshotInterval time.Duration
}

// Bridge wires ingest → queue → pacer → framer and owns their lifecycle.
type Bridge struct {
	store *frame.Store
	q     *queue.Queue
	ing   *ingest.Ingest
	pac   *pacer.Pacer
	m     *metrics.Metrics

	recv         Receiver
	tr           Transport
	snapInterval time.Duration

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New builds a bridge from opts.
func New(opts Options) (*Bridge, error) {
	if opts.Receiver == nil || opts.Transport == nil {
		return nil, errors.New("bridge: receiver and transport required")
	}
	if opts.SnapshotInterval <= 0 {
		opts.SnapshotInterval = time.Second
	}

	store := &frame.Store{}
	m := metrics.New()

	q, err := queue.New(opts.QueueCapacity)
	if err != nil {
		return nil, err
	}

	ing, err := ingest.New(store, q, m)
	if err != nil {
		return nil, err
	}

	framer, err := wire.NewFramer(opts.Transport, opts.Channels)
	if err != nil {
		return nil, err
	}

	pac, err := pacer.New(pacer.Config{Interval: opts.OutputInterval}, q, framer, m)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		store:        store,
		q:            q,
		ing:          ing,
		pac:          pac,
		m:            m,
		recv:         opts.Receiver,
		tr:           opts.Transport,
		snapInterval: opts.SnapshotInterval,
	}, nil
}

// Start launches the receiver, pacer, and metrics loops. It returns
// immediately; Close joins them.
func (b *Bridge) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(3)

	go func() {
		defer b.wg.Done()
		if err := b.recv.Run(ctx, b.ing.Submit); err != nil {
			log.Printf("bridge: receiver stopped: %v", err)
		}
	}()

	go func() {
		defer b.wg.Done()
		b.pac.Run(ctx)
	}()

	go func() {
		defer b.wg.Done()
		b.m.Run(ctx, b.snapInterval)
	}()
}

// Close stops network input, halts the pacer, joins all loops, and closes
// the transport exactly once. Safe to call more than once.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		b.wg.Wait()
		b.m.Recompute(time.Now())
		b.closeErr = b.tr.Close()
	})
	return b.closeErr
}

// CurrentFrame returns the latest published frame.
func (b *Bridge) CurrentFrame() frame.Frame {
	f, _ := b.store.Current()
	return f
}

// Snapshot returns the latest metrics snapshot.
func (b *Bridge) Snapshot() metrics.Snapshot {
	return b.m.Snapshot()
}

// Metrics exposes the aggregator for registry export.
func (b *Bridge) Metrics() *metrics.Metrics {
	return b.m
}

// SubmitTestFrame injects f into the pending queue, bypassing protocol
// ingest. The backlog is cleared first so the frame goes out on the very
// next tick.
func (b *Bridge) SubmitTestFrame(f frame.Frame) {
	b.q.Clear()

	rec := b.ing.Stamp(f)
	b.store.Publish(rec)
	if _, err := b.q.Push(rec); errors.Is(err, queue.ErrSequenceRegression) {
		b.m.SequenceRegression()
	}
}

// TestPattern injects a named diagnostic pattern.
func (b *Bridge) TestPattern(name string) error {
	var f frame.Frame

	switch name {
	case "all_off":
		// zero frame
	case "all_on":
		for i := range f {
			f[i] = 255
		}
	case "dim":
		for i := range f {
			f[i] = 128
		}
	case "first_5":
		for i := 0; i < 5; i++ {
			f[i] = 255
		}
	default:
		return fmt.Errorf("bridge: unknown test pattern %q", name)
	}

	b.SubmitTestFrame(f)
	log.Printf("bridge: test pattern %s queued", name)
	return nil
}
