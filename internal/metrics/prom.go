// internal/metrics/prom.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry builds a Prometheus registry exporting the pipeline counters.
// The collectors read the same atomics the snapshot is built from, so the
// /metrics endpoint adds no contention to the hot path.
func NewRegistry(m *Metrics) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dmxbridge",
			Name:      "frames_received_total",
			Help:      "Decoded network frames delivered to the ingest.",
		}, func() float64 { return float64(m.framesReceived.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dmxbridge",
			Name:      "frames_sent_total",
			Help:      "Frames written to the serial link.",
		}, func() float64 { return float64(m.framesSent.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dmxbridge",
			Name:      "frames_dropped_total",
			Help:      "Frames lost to queue overflow or transport outage.",
		}, func() float64 { return float64(m.framesDropped.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dmxbridge",
			Name:      "ticks_late_total",
			Help:      "Pacer ticks that overran the output period.",
		}, func() float64 { return float64(m.ticksLate.Load()) }),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "dmxbridge",
			Name:      "sequence_regressions_total",
			Help:      "Records discarded for non-increasing sequence numbers.",
		}, func() float64 { return float64(m.seqRegressions.Load()) }),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "dmxbridge",
			Name:      "transport_up",
			Help:      "Serial transport availability (0=down, 1=up).",
		}, func() float64 {
			if m.transportUp.Load() {
				return 1
			}
			return 0
		}),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "dmxbridge",
			Name:      "active_channels",
			Help:      "Non-zero channels in the last sent frame.",
		}, func() float64 {
			if f := m.lastSent.Load(); f != nil {
				return float64(f.Active())
			}
			return 0
		}),
	)

	return reg
}
