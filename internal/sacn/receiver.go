// internal/sacn/receiver.go
package sacn

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/google/uuid"
)

// Config is the minimal runtime config the receiver needs.
type Config struct {
	// Universe to listen for, 1..63999.
	Universe uint16
}

// Receiver listens for E1.31 packets on the universe multicast group and
// delivers validated channel data. Everything past "here is a channel
// array" is someone else's problem.
type Receiver struct {
	cfg Config

	lastSeq uint8
	haveSeq bool
	lastCID uuid.UUID
}

// New creates a receiver for cfg.
func New(cfg Config) (*Receiver, error) {
	if cfg.Universe < 1 || cfg.Universe > 63999 {
		return nil, errors.New("sacn: universe must be in 1..63999")
	}
	return &Receiver{cfg: cfg}, nil
}

// multicastGroup returns the E1.31 group for a universe: 239.255.hi.lo.
func multicastGroup(universe uint16) net.IP {
	return net.IPv4(239, 255, byte(universe>>8), byte(universe&0xFF))
}

// Run receives until ctx is done, calling deliver once per accepted packet.
// deliver must not retain the slice past the call.
func (r *Receiver) Run(ctx context.Context, deliver func(data []byte)) error {
	addr := &net.UDPAddr{IP: multicastGroup(r.cfg.Universe), Port: Port}
	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("sacn: listen %s: %w", addr, err)
	}
	_ = conn.SetReadBuffer(1 << 16)

	// Unblock the read loop on cancellation.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Printf("sacn: listening on universe %d (%s)", r.cfg.Universe, addr)

	buf := make([]byte, 1024)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("sacn: read: %w", err)
		}

		pkt, err := Parse(buf[:n])
		if err != nil {
			// Not our traffic or corrupted. Skip, never fail the loop.
			continue
		}
		if pkt.Universe != r.cfg.Universe || pkt.Terminated() {
			continue
		}
		if !r.acceptSequence(pkt) {
			continue
		}

		deliver(pkt.Data)
	}
}

// acceptSequence applies the E1.31 sequence rule per source: drop a packet
// whose sequence is behind the previous one by less than 20, accept
// anything else (wrap-around and source restart included).
func (r *Receiver) acceptSequence(pkt *Packet) bool {
	if r.haveSeq && pkt.CID == r.lastCID {
		diff := int8(pkt.Sequence - r.lastSeq)
		if diff <= 0 && diff > -20 {
			return false
		}
	}
	r.lastSeq = pkt.Sequence
	r.lastCID = pkt.CID
	r.haveSeq = true
	return true
}
