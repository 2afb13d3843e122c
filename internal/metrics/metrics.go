// internal/metrics/metrics.go
package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tamzrod/dmx-bridge/internal/frame"
)

// Metrics aggregates pipeline counters into periodic snapshots.
//
// The hot path (ingest and pacer) only touches atomic counters; snapshots
// are recomputed on a fixed cadence by Run, never per frame.
type Metrics struct {
	framesReceived atomic.Uint64
	framesDropped  atomic.Uint64
	framesSent     atomic.Uint64
	ticksLate      atomic.Uint64
	seqRegressions atomic.Uint64
	transportUp    atomic.Bool
	lastSent       atomic.Pointer[frame.Frame]

	snap atomic.Pointer[Snapshot]

	// Measurement window state. Only recompute touches these.
	winAt   time.Time
	winSent uint64
}

// Snapshot is one point-in-time view of pipeline health.
type Snapshot struct {
	FPS                 float64
	FramesReceived      uint64
	FramesSent          uint64
	FramesDropped       uint64
	TicksLate           uint64
	SequenceRegressions uint64
	DropRate            float64
	ActiveChannels      int
	MaxValue            byte
	TransportUp         bool
}

// New creates a Metrics aggregator with an all-zero initial snapshot.
func New() *Metrics {
	m := &Metrics{winAt: time.Now()}
	m.snap.Store(&Snapshot{})
	return m
}

// FrameReceived counts one decoded network frame arriving at the ingest.
func (m *Metrics) FrameReceived() { m.framesReceived.Add(1) }

// FrameDropped counts one drop: a queue-overflow eviction or a frame
// suppressed while the transport is down.
func (m *Metrics) FrameDropped() { m.framesDropped.Add(1) }

// FrameSent counts one transmitted frame and retains it for the
// active-channel and max-value gauges.
func (m *Metrics) FrameSent(f frame.Frame) {
	m.framesSent.Add(1)
	m.lastSent.Store(&f)
}

// TickLate counts one pacer tick that overran its period.
// Kept separate from drops: a late frame was still delivered.
func (m *Metrics) TickLate() { m.ticksLate.Add(1) }

// SequenceRegression counts one discarded out-of-order or duplicate record.
func (m *Metrics) SequenceRegression() { m.seqRegressions.Add(1) }

// SetTransportUp records the transport availability flag.
func (m *Metrics) SetTransportUp(up bool) { m.transportUp.Store(up) }

// Snapshot returns the most recently computed snapshot.
func (m *Metrics) Snapshot() Snapshot {
	return *m.snap.Load()
}

// Run recomputes the snapshot on the given cadence until ctx is done.
func (m *Metrics) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Recompute(now)
		}
	}
}

// Recompute builds and publishes a fresh snapshot. FPS is measured as
// frames sent over the last full window, not an instantaneous rate.
// Run calls it on a cadence; shutdown calls it once for final stats.
func (m *Metrics) Recompute(now time.Time) Snapshot {
	sent := m.framesSent.Load()
	dropped := m.framesDropped.Load()

	s := Snapshot{
		FramesReceived:      m.framesReceived.Load(),
		FramesSent:          sent,
		FramesDropped:       dropped,
		TicksLate:           m.ticksLate.Load(),
		SequenceRegressions: m.seqRegressions.Load(),
		TransportUp:         m.transportUp.Load(),
	}

	if total := sent + dropped; total > 0 {
		s.DropRate = float64(dropped) / float64(total)
	}

	if elapsed := now.Sub(m.winAt).Seconds(); elapsed > 0 {
		s.FPS = float64(sent-m.winSent) / elapsed
	}
	m.winAt = now
	m.winSent = sent

	if f := m.lastSent.Load(); f != nil {
		s.ActiveChannels = f.Active()
		s.MaxValue = f.Max()
	}

	m.snap.Store(&s)
	return s
}
