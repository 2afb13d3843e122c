// internal/wire/parser.go
package wire

// parserState tags the resynchronizing state machine.
type parserState uint8

const (
	waitStart parserState = iota
	waitLenLow
	waitLenHigh
	waitPayload
)

// Parser reconstructs link frames from an arbitrary byte stream.
//
// It is the receiving endpoint's half of the framing contract: bytes are
// fed one at a time from whatever delivers them, and a malformed length
// always returns the machine to waitStart. The parser holds no history
// beyond the in-progress frame, so corrupted input can neither deadlock it
// nor grow its memory.
type Parser struct {
	state  parserState
	length uint16
	count  uint16
	buf    [MaxPayload]byte

	frames  uint64
	onFrame func(payload []byte)
}

// NewParser creates a parser invoking onFrame for every complete frame.
// The payload slice is only valid during the callback; copy it to keep it.
func NewParser(onFrame func(payload []byte)) *Parser {
	return &Parser{onFrame: onFrame}
}

// Feed advances the parser over data.
func (p *Parser) Feed(data []byte) {
	for _, b := range data {
		p.FeedByte(b)
	}
}

// FeedByte advances the parser by one byte.
func (p *Parser) FeedByte(b byte) {
	switch p.state {
	case waitStart:
		// Discard until the sentinel.
		if b == Sentinel {
			p.length = 0
			p.count = 0
			p.state = waitLenLow
		}

	case waitLenLow:
		p.length = uint16(b)
		p.state = waitLenHigh

	case waitLenHigh:
		p.length |= uint16(b) << 8
		if p.length == 0 || p.length > MaxPayload {
			// A sentinel inside corrupted data. Resync.
			p.state = waitStart
			return
		}
		p.count = 0
		p.state = waitPayload

	case waitPayload:
		// count+1 is the 1-indexed DMX channel being written.
		p.buf[p.count] = b
		p.count++
		if p.count >= p.length {
			p.frames++
			if p.onFrame != nil {
				p.onFrame(p.buf[:p.length])
			}
			p.state = waitStart
		}
	}
}

// FramesReceived reports the number of complete frames parsed.
func (p *Parser) FramesReceived() uint64 {
	return p.frames
}
