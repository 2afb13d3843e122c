// internal/frame/frame.go
package frame

import "time"

// Channels is the number of channels in one full DMX universe.
const Channels = 512

// Frame is one full universe of channel values. Index 0 is DMX channel 1.
//
// Frame is a value type on purpose: assignment copies all 512 bytes, so a
// published frame can never be mutated behind a reader's back.
type Frame [Channels]byte

// FromSlice builds a Frame from a decoded channel array.
// Short input is zero-padded, long input is truncated.
func FromSlice(data []byte) Frame {
	var f Frame
	copy(f[:], data)
	return f
}

// Active reports the number of non-zero channels.
func (f Frame) Active() int {
	n := 0
	for _, v := range f {
		if v > 0 {
			n++
		}
	}
	return n
}

// Max reports the highest channel value.
func (f Frame) Max() byte {
	var m byte
	for _, v := range f {
		if v > m {
			m = v
		}
	}
	return m
}

// Record is one received frame plus its arrival metadata.
// Seq is assigned by the ingest in arrival order and is strictly increasing.
type Record struct {
	Data Frame
	Seq  uint64
	At   time.Time
}
