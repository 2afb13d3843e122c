// internal/wire/encode.go
package wire

import (
	"encoding/binary"
	"errors"
)

// Link frame format, bit-exact:
//
//	byte 0:    0xFF                 (frame sentinel)
//	byte 1:    length & 0xFF        (low byte, channel count)
//	byte 2:    (length >> 8) & 0xFF (high byte)
//	byte 3..N: payload[length]      (raw channel values)
const (
	// Sentinel marks the start of a link frame.
	Sentinel byte = 0xFF
	// HeaderLen is the sentinel plus the two length bytes.
	HeaderLen = 3
	// MaxPayload is the largest legal payload length (one full universe).
	MaxPayload = 512
)

// ErrPayloadSize is returned for payload lengths outside 1..MaxPayload.
var ErrPayloadSize = errors.New("wire: payload length must be in 1..512")

// Encode serializes payload into a link frame. The format tolerates partial
// channel ranges: any length in 1..MaxPayload is legal.
func Encode(payload []byte) ([]byte, error) {
	if len(payload) == 0 || len(payload) > MaxPayload {
		return nil, ErrPayloadSize
	}

	buf := make([]byte, HeaderLen+len(payload))
	buf[0] = Sentinel
	binary.LittleEndian.PutUint16(buf[1:3], uint16(len(payload)))
	copy(buf[HeaderLen:], payload)
	return buf, nil
}
