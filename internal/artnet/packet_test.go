// internal/artnet/packet_test.go
package artnet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildPacket assembles a minimal valid ArtDmx packet.
func buildPacket(universe uint16, seq uint8, data []byte) []byte {
	buf := make([]byte, headerSize+len(data))

	copy(buf[0:8], artNetID)
	binary.LittleEndian.PutUint16(buf[8:10], OpCodeDMX)
	binary.BigEndian.PutUint16(buf[10:12], ProtocolVersion)
	buf[12] = seq
	binary.LittleEndian.PutUint16(buf[14:16], universe)
	binary.BigEndian.PutUint16(buf[16:18], uint16(len(data)))
	copy(buf[headerSize:], data)

	return buf
}

func TestParse_ValidPacket(t *testing.T) {
	data := []byte{10, 20, 30}
	pkt, err := Parse(buildPacket(0, 7, data))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}

	if pkt.Universe != 0 || pkt.Sequence != 7 {
		t.Fatalf("header mismatch: %+v", pkt)
	}
	if !bytes.Equal(pkt.Data, data) {
		t.Fatalf("expected data %v, got %v", data, pkt.Data)
	}
}

func TestParse_FullUniverse(t *testing.T) {
	data := make([]byte, 512)
	data[0] = 255

	pkt, err := Parse(buildPacket(3, 0, data))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if len(pkt.Data) != 512 || pkt.Data[0] != 255 {
		t.Fatalf("full universe mishandled")
	}
}

func TestParse_Rejections(t *testing.T) {
	valid := buildPacket(0, 1, []byte{1, 2})

	if _, err := Parse(valid[:10]); !errors.Is(err, ErrShortPacket) {
		t.Fatalf("expected ErrShortPacket, got %v", err)
	}

	badID := append([]byte(nil), valid...)
	badID[0] = 'B'
	if _, err := Parse(badID); !errors.Is(err, ErrNotArtNet) {
		t.Fatalf("expected ErrNotArtNet, got %v", err)
	}

	// ArtPoll, not ArtDmx.
	poll := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(poll[8:10], 0x2000)
	if _, err := Parse(poll); !errors.Is(err, ErrNotDMX) {
		t.Fatalf("expected ErrNotDMX, got %v", err)
	}

	oldVer := append([]byte(nil), valid...)
	binary.BigEndian.PutUint16(oldVer[10:12], 13)
	if _, err := Parse(oldVer); err == nil {
		t.Fatalf("expected error for protocol version 13")
	}

	badLen := append([]byte(nil), valid...)
	binary.BigEndian.PutUint16(badLen[16:18], 600)
	if _, err := Parse(badLen); err == nil {
		t.Fatalf("expected error for oversized data length")
	}
}

func TestReceiver_SequenceRule(t *testing.T) {
	r, err := New(Config{Universe: 0})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if !r.acceptSequence(10) {
		t.Fatalf("first packet must be accepted")
	}
	if r.acceptSequence(10) {
		t.Fatalf("duplicate sequence must be dropped")
	}
	if !r.acceptSequence(11) {
		t.Fatalf("next sequence must be accepted")
	}
	// Sequence 0 disables ordering entirely.
	if !r.acceptSequence(0) || !r.acceptSequence(0) {
		t.Fatalf("sequence 0 must always be accepted")
	}
}

func TestNew_UniverseBounds(t *testing.T) {
	if _, err := New(Config{Universe: 40000}); err == nil {
		t.Fatalf("universe beyond 15-bit port-address must be rejected")
	}
}
