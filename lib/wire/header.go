package wire

import (
	"github.com/waygo/waygo/lib/errors"
)

const (
	// HeaderSize is the fixed frame prefix: the object identity word and the
	// size<<16|opcode word.
	HeaderSize = 8

	// MaxFrameSize is the largest total frame the 16-bit size field can
	// describe.
	MaxFrameSize = 0xffff
)

// Header is the frame prefix of every request and event.
type Header struct {
	ObjectID uint32
	Opcode   uint16
	Size     uint16
}

// PutHeader packs h into the first HeaderSize bytes of buf.
func PutHeader(buf []byte, h Header) {
	ByteOrder.PutUint32(buf[0:4], h.ObjectID)
	ByteOrder.PutUint32(buf[4:8], uint32(h.Size)<<16|uint32(h.Opcode))
}

// ParseHeader unpacks a frame prefix; a buffer shorter than the header or an
// inconsistent size field is a ProtocolViolation.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.ProtocolViolation.Clone().SetData("reason", "short frame header")
	}

	word := ByteOrder.Uint32(buf[4:8])
	h := Header{
		ObjectID: ByteOrder.Uint32(buf[0:4]),
		Opcode:   uint16(word & 0xffff),
		Size:     uint16(word >> 16),
	}
	if int(h.Size) < HeaderSize {
		return Header{}, errors.ProtocolViolation.Clone().SetData("reason", "frame size below header size")
	}

	return h, nil
}
