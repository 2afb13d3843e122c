// internal/sacn/packet.go
package sacn

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// E1.31 protocol constants.
const (
	Port          = 5568
	MaxChannels   = 512
	HeaderSize    = 126 // channel data starts here
	RootVector    = 0x00000004
	FramingVector = 0x00000002
	DMPVector     = 0x02

	// Framing-layer option bits.
	OptPreview    = 0x80
	OptTerminated = 0x40
)

// acnPacketIdentifier is the magic constant every E1.31 packet carries.
var acnPacketIdentifier = []byte{0x41, 0x53, 0x43, 0x2d, 0x45, 0x31, 0x2e, 0x31, 0x37, 0x00, 0x00, 0x00}

// Parse errors.
var (
	ErrShortPacket  = errors.New("sacn: packet shorter than E1.31 header")
	ErrNotE131      = errors.New("sacn: missing ACN packet identifier")
	ErrBadVector    = errors.New("sacn: unexpected layer vector")
	ErrBadStartCode = errors.New("sacn: non-zero DMX start code")
)

// Packet is one parsed E1.31 data packet.
type Packet struct {
	CID        uuid.UUID // root-layer component identifier
	SourceName string
	Priority   uint8
	Sequence   uint8
	Options    uint8
	Universe   uint16
	Data       []byte // channel values, up to 512
}

// Terminated reports the stream-terminated option bit.
func (p *Packet) Terminated() bool {
	return p.Options&OptTerminated != 0
}

// Parse validates the root, framing, and DMP layers of an E1.31 packet and
// extracts the channel data. The returned Data aliases buf.
func Parse(buf []byte) (*Packet, error) {
	if len(buf) < HeaderSize {
		return nil, ErrShortPacket
	}
	if binary.BigEndian.Uint16(buf[0:2]) != 0x0010 {
		return nil, fmt.Errorf("%w: bad preamble size", ErrNotE131)
	}
	if !bytes.Equal(buf[4:16], acnPacketIdentifier) {
		return nil, ErrNotE131
	}
	if binary.BigEndian.Uint32(buf[18:22]) != RootVector {
		return nil, fmt.Errorf("%w: root=0x%08x", ErrBadVector, binary.BigEndian.Uint32(buf[18:22]))
	}
	if binary.BigEndian.Uint32(buf[40:44]) != FramingVector {
		return nil, fmt.Errorf("%w: framing=0x%08x", ErrBadVector, binary.BigEndian.Uint32(buf[40:44]))
	}
	if buf[117] != DMPVector {
		return nil, fmt.Errorf("%w: dmp=0x%02x", ErrBadVector, buf[117])
	}

	// Property value count includes the start code byte.
	count := int(binary.BigEndian.Uint16(buf[123:125]))
	if count < 1 || count-1 > MaxChannels || HeaderSize+count-1 > len(buf) {
		return nil, fmt.Errorf("sacn: property value count %d out of range", count)
	}
	if buf[125] != 0x00 {
		return nil, ErrBadStartCode
	}

	cid, err := uuid.FromBytes(buf[22:38])
	if err != nil {
		return nil, fmt.Errorf("sacn: bad CID: %w", err)
	}

	name := buf[44:108]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	return &Packet{
		CID:        cid,
		SourceName: string(name),
		Priority:   buf[108],
		Sequence:   buf[111],
		Options:    buf[112],
		Universe:   binary.BigEndian.Uint16(buf[113:115]),
		Data:       buf[HeaderSize : HeaderSize+count-1],
	}, nil
}
