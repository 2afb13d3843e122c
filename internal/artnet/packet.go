// internal/artnet/packet.go
package artnet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Art-Net protocol constants.
const (
	Port            = 6454
	OpCodeDMX       = 0x5000
	ProtocolVersion = 14
	MaxChannels     = 512
	headerSize      = 18 // channel data starts here
)

// artNetID is the packet identifier: "Art-Net" plus a NUL.
var artNetID = []byte{'A', 'r', 't', '-', 'N', 'e', 't', 0x00}

// Parse errors.
var (
	ErrShortPacket = errors.New("artnet: packet shorter than ArtDmx header")
	ErrNotArtNet   = errors.New("artnet: missing Art-Net identifier")
	ErrNotDMX      = errors.New("artnet: opcode is not ArtDmx")
)

// Packet is one parsed ArtDmx packet.
type Packet struct {
	Sequence uint8 // 0 means the source disabled sequencing
	Physical uint8
	Universe uint16
	Data     []byte // channel values, up to 512
}

// Parse validates an ArtDmx packet and extracts the channel data.
// The returned Data aliases buf.
func Parse(buf []byte) (*Packet, error) {
	if len(buf) < headerSize {
		return nil, ErrShortPacket
	}
	if !bytes.Equal(buf[0:8], artNetID) {
		return nil, ErrNotArtNet
	}
	if binary.LittleEndian.Uint16(buf[8:10]) != OpCodeDMX {
		return nil, ErrNotDMX
	}
	if v := binary.BigEndian.Uint16(buf[10:12]); v < ProtocolVersion {
		return nil, fmt.Errorf("artnet: protocol version %d too old", v)
	}

	length := int(binary.BigEndian.Uint16(buf[16:18]))
	if length < 1 || length > MaxChannels || headerSize+length > len(buf) {
		return nil, fmt.Errorf("artnet: data length %d out of range", length)
	}

	return &Packet{
		Sequence: buf[12],
		Physical: buf[13],
		Universe: binary.LittleEndian.Uint16(buf[14:16]),
		Data:     buf[headerSize : headerSize+length],
	}, nil
}
