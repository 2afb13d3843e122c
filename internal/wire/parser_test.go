// internal/wire/parser_test.go
package wire

import (
	"bytes"
	"testing"
)

func newCollector() (*Parser, *[][]byte) {
	frames := &[][]byte{}
	p := NewParser(func(b []byte) {
		*frames = append(*frames, append([]byte(nil), b...))
	})
	return p, frames
}

func TestParser_ConcreteStream(t *testing.T) {
	p, frames := newCollector()

	// 0xFF len=3 payload 10 20 30.
	p.Feed([]byte{0xFF, 0x03, 0x00, 0x0A, 0x14, 0x1E})

	if len(*frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(*frames))
	}
	if !bytes.Equal((*frames)[0], []byte{10, 20, 30}) {
		t.Fatalf("expected [10 20 30], got %v", (*frames)[0])
	}
}

func TestParser_ResyncAfterGarbage(t *testing.T) {
	p, frames := newCollector()

	stream := []byte{
		0x01, 0x02, 0xAB,             // garbage, no sentinel
		0xFF, 0x00, 0x00,             // sentinel with length 0: resync
		0xFF, 0xFF, 0xFF,             // sentinel with length 0xFFFF: resync
		0x42,                         // more garbage
		0xFF, 0x02, 0x00, 0x11, 0x22, // the one valid frame
	}
	p.Feed(stream)

	if len(*frames) != 1 {
		t.Fatalf("expected exactly 1 frame from corrupted stream, got %d", len(*frames))
	}
	if !bytes.Equal((*frames)[0], []byte{0x11, 0x22}) {
		t.Fatalf("expected [0x11 0x22], got %v", (*frames)[0])
	}
	if p.FramesReceived() != 1 {
		t.Fatalf("expected received count 1, got %d", p.FramesReceived())
	}
}

func TestParser_LengthBoundary(t *testing.T) {
	p, frames := newCollector()

	// 513 is over the maximum and must resync.
	p.Feed([]byte{0xFF, 0x01, 0x02})
	if len(*frames) != 0 {
		t.Fatalf("length 513 must be discarded")
	}

	// 512 is the maximum and must complete.
	payload := make([]byte, 512)
	payload[511] = 0x55
	p.Feed([]byte{0xFF, 0x00, 0x02})
	p.Feed(payload)

	if len(*frames) != 1 || len((*frames)[0]) != 512 || (*frames)[0][511] != 0x55 {
		t.Fatalf("length 512 must parse, got %d frames", len(*frames))
	}
}

func TestParser_ByteAtATime(t *testing.T) {
	p, frames := newCollector()

	stream := []byte{0xFF, 0x03, 0x00, 1, 2, 3, 0xFF, 0x01, 0x00, 9}
	for _, b := range stream {
		p.FeedByte(b)
	}

	if len(*frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(*frames))
	}
	if !bytes.Equal((*frames)[1], []byte{9}) {
		t.Fatalf("expected [9], got %v", (*frames)[1])
	}
}

func TestParser_SentinelInsidePayload(t *testing.T) {
	p, frames := newCollector()

	// Payload bytes equal to the sentinel must not restart the machine.
	p.Feed([]byte{0xFF, 0x02, 0x00, 0xFF, 0xFF})

	if len(*frames) != 1 || !bytes.Equal((*frames)[0], []byte{0xFF, 0xFF}) {
		t.Fatalf("sentinel-valued payload mishandled: %v", *frames)
	}
}
