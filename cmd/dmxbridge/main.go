// cmd/dmxbridge/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/dmx-bridge/internal/artnet"
	"github.com/tamzrod/dmx-bridge/internal/bridge"
	"github.com/tamzrod/dmx-bridge/internal/config"
	"github.com/tamzrod/dmx-bridge/internal/metrics"
	"github.com/tamzrod/dmx-bridge/internal/sacn"
	"github.com/tamzrod/dmx-bridge/internal/serial"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: dmxbridge <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --------------------
	// Serial connection manager
	// --------------------

	manager, err := serial.NewManager(serial.Config{
		Port:              cfg.Bridge.Serial.Port,
		Baud:              cfg.Bridge.Serial.Baud,
		ReconnectInterval: time.Duration(cfg.Bridge.Serial.ReconnectIntervalMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("serial manager failed: %v", err)
	}
	go manager.Run(ctx)

	// --------------------
	// Protocol receiver
	// --------------------

	recv, err := buildReceiver(cfg)
	if err != nil {
		log.Fatalf("receiver build failed: %v", err)
	}

	// --------------------
	// Bridge pipeline
	// --------------------

	br, err := bridge.New(bridge.Options{
		Receiver:       recv,
		Transport:      manager,
		Channels:       cfg.Bridge.Channels,
		OutputInterval: time.Second / time.Duration(cfg.Bridge.Output.FPS),
		QueueCapacity:  cfg.Bridge.Output.BufferSize,
	})
	if err != nil {
		log.Fatalf("bridge build failed: %v", err)
	}

	br.Start(ctx)
	log.Printf("bridge started: protocol=%s output=%d fps buffer=%d frames",
		cfg.Bridge.Protocol, cfg.Bridge.Output.FPS, cfg.Bridge.Output.BufferSize)

	// --------------------
	// Metrics endpoint (optional)
	// --------------------

	if addr := cfg.Bridge.Metrics.Listen; addr != "" {
		srv := metrics.NewServer(addr, metrics.NewRegistry(br.Metrics()))
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Printf("metrics listening on %s", addr)
	}

	// --------------------
	// Status loop + shutdown on signal
	// --------------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	statusTicker := time.NewTicker(time.Second)
	defer statusTicker.Stop()

	var last metrics.Snapshot

loop:
	for {
		select {
		case s := <-sig:
			log.Printf("signal %v, shutting down", s)
			break loop

		case <-statusTicker.C:
			snap := br.Snapshot()
			if statusChanged(last, snap) {
				log.Printf("fps=%.0f active=%d/%d max=%d drop=%.1f%% transport=%v",
					snap.FPS, snap.ActiveChannels, cfg.Bridge.Channels,
					snap.MaxValue, snap.DropRate*100, snap.TransportUp)
				last = snap
			}
		}
	}

	cancel()
	if err := br.Close(); err != nil {
		log.Printf("close error: %v", err)
	}

	final := br.Snapshot()
	log.Printf("final stats: sent=%d received=%d dropped=%d (%.1f%%) late=%d",
		final.FramesSent, final.FramesReceived, final.FramesDropped,
		final.DropRate*100, final.TicksLate)
}

// buildReceiver picks the protocol source from config.
func buildReceiver(cfg *config.Config) (bridge.Receiver, error) {
	switch cfg.Bridge.Protocol {
	case "artnet":
		return artnet.New(artnet.Config{Universe: cfg.Bridge.ArtNet.Universe})
	default:
		return sacn.New(sacn.Config{Universe: cfg.Bridge.SACN.Universe})
	}
}

// statusChanged mirrors the console contract: print only when something
// the operator watches has moved.
func statusChanged(a, b metrics.Snapshot) bool {
	return a.FPS != b.FPS ||
		a.ActiveChannels != b.ActiveChannels ||
		a.MaxValue != b.MaxValue ||
		a.TransportUp != b.TransportUp ||
		absDiff(a.DropRate, b.DropRate) > 0.001
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
