// internal/wire/framer.go
package wire

import (
	"fmt"

	"github.com/tamzrod/dmx-bridge/internal/frame"
)

// Transport is the write side of the serial link as the framer needs it.
// Reconnection lives behind this interface; the framer never retries.
type Transport interface {
	Write(p []byte) (int, error)
	Available() bool
}

// Framer serializes channel frames onto the transport.
//
// It is the transport's only writer, so one Encode+Write per frame is one
// logical write with no interleaving.
type Framer struct {
	tr  Transport
	n   int    // channels per frame on the wire
	buf []byte // reused encode buffer, avoids per-tick allocation
}

// NewFramer creates a framer writing channels-wide frames to tr.
func NewFramer(tr Transport, channels int) (*Framer, error) {
	if channels < 1 || channels > MaxPayload {
		return nil, ErrPayloadSize
	}
	buf := make([]byte, HeaderLen+channels)
	buf[0] = Sentinel
	buf[1] = byte(channels & 0xFF)
	buf[2] = byte(channels >> 8)
	return &Framer{tr: tr, n: channels, buf: buf}, nil
}

// Send writes one frame. A write failure is returned as-is; recovery is the
// connection manager's job.
func (f *Framer) Send(fr frame.Frame) error {
	copy(f.buf[HeaderLen:], fr[:f.n])

	n, err := f.tr.Write(f.buf)
	if err != nil {
		return fmt.Errorf("wire: frame write failed: %w", err)
	}
	if n != len(f.buf) {
		return fmt.Errorf("wire: short frame write: %d of %d bytes", n, len(f.buf))
	}
	return nil
}

// Available reports whether the transport can currently accept frames.
func (f *Framer) Available() bool {
	return f.tr.Available()
}
