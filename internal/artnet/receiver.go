// internal/artnet/receiver.go
package artnet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
)

// Config is the minimal runtime config the receiver needs.
type Config struct {
	// Universe (port-address) to listen for, 0..15 in this deployment.
	Universe uint16
}

// Receiver listens for ArtDmx packets on the Art-Net UDP port and delivers
// validated channel data for the configured universe.
type Receiver struct {
	cfg Config

	lastSeq uint8
	haveSeq bool
}

// New creates a receiver for cfg.
func New(cfg Config) (*Receiver, error) {
	if cfg.Universe > 32767 {
		return nil, errors.New("artnet: universe must be a 15-bit port-address")
	}
	return &Receiver{cfg: cfg}, nil
}

// Run receives until ctx is done, calling deliver once per accepted packet.
// deliver must not retain the slice past the call.
func (r *Receiver) Run(ctx context.Context, deliver func(data []byte)) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: Port})
	if err != nil {
		return fmt.Errorf("artnet: listen :%d: %w", Port, err)
	}
	_ = conn.SetReadBuffer(1 << 16)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Printf("artnet: listening on universe %d (:%d)", r.cfg.Universe, Port)

	buf := make([]byte, 1024)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("artnet: read: %w", err)
		}

		pkt, err := Parse(buf[:n])
		if err != nil {
			continue
		}
		if pkt.Universe != r.cfg.Universe {
			continue
		}
		if !r.acceptSequence(pkt.Sequence) {
			continue
		}

		deliver(pkt.Data)
	}
}

// acceptSequence drops stale packets when the source sequences them.
// Sequence 0 means sequencing is disabled and everything is accepted.
func (r *Receiver) acceptSequence(seq uint8) bool {
	if seq == 0 {
		r.haveSeq = false
		return true
	}
	if r.haveSeq {
		diff := int8(seq - r.lastSeq)
		if diff <= 0 && diff > -20 {
			return false
		}
	}
	r.lastSeq = seq
	r.haveSeq = true
	return true
}
