// internal/pacer/pacer.go
package pacer

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tamzrod/dmx-bridge/internal/frame"
	"github.com/tamzrod/dmx-bridge/internal/metrics"
)

// Sender is the serial framer as the pacer needs it.
type Sender interface {
	Send(f frame.Frame) error
	Available() bool
}

// Source is the pending queue as the pacer needs it.
type Source interface {
	Pop() (frame.Record, bool)
}

// Config is the minimal runtime config the pacer needs.
type Config struct {
	// Interval is the fixed output period. The default elsewhere is
	// 1s/88, double the 44 Hz DMX refresh ceiling, so every source
	// update is asserted twice on the wire.
	Interval time.Duration
}

// Pacer drives the serial output at a fixed rate, decoupled from network
// arrival timing. A DMX driver must see continuous refresh, so an empty
// queue means re-sending the last frame, and before any data has arrived
// the all-zero blackout frame is sent rather than skipping the tick.
type Pacer struct {
	cfg    Config
	src    Source
	sender Sender
	m      *metrics.Metrics

	last     frame.Frame // zero value is the blackout frame
	wasAvail bool
}

// New creates a pacer with immutable config.
func New(cfg Config, src Source, sender Sender, m *metrics.Metrics) (*Pacer, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("pacer: interval must be > 0")
	}
	if src == nil || sender == nil || m == nil {
		return nil, errors.New("pacer: source, sender and metrics required")
	}
	return &Pacer{cfg: cfg, src: src, sender: sender, m: m, wasAvail: true}, nil
}

// TickOnce performs exactly one output cycle: pop the oldest pending record
// if any, then transmit the last-known frame. Frames that cannot be put on
// the wire (transport down or write failure) count as dropped; the queue
// keeps draining either way so recovery resumes from fresh state.
func (p *Pacer) TickOnce() {
	if rec, ok := p.src.Pop(); ok {
		p.last = rec.Data
	}

	avail := p.sender.Available()
	p.m.SetTransportUp(avail)
	if avail != p.wasAvail {
		p.wasAvail = avail
		if avail {
			log.Printf("pacer: transport recovered, resuming output")
		} else {
			log.Printf("pacer: transport unavailable, suppressing output")
		}
	}

	if !avail {
		p.m.FrameDropped()
		return
	}

	if err := p.sender.Send(p.last); err != nil {
		p.m.FrameDropped()
		log.Printf("pacer: send failed: %v", err)
		return
	}
	p.m.FrameSent(p.last)
}

// LastSent returns the frame the pacer currently re-asserts on heartbeat.
func (p *Pacer) LastSent() frame.Frame {
	return p.last
}

// Run ticks until ctx is done. Ticks are scheduled against a fixed start
// time (start + n*Interval), not "now + Interval", so transmit jitter never
// accumulates into rate skew. An overrunning tick completes and the next
// one fires immediately, counted late rather than doubled.
func (p *Pacer) Run(ctx context.Context) {
	start := time.Now()
	timer := time.NewTimer(p.cfg.Interval)
	defer timer.Stop()

	for n := uint64(1); ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.TickOnce()
		}

		next := start.Add(time.Duration(n+1) * p.cfg.Interval)
		d := time.Until(next)
		if d < 0 {
			p.m.TickLate()
			d = 0
		}
		timer.Reset(d)
	}
}
