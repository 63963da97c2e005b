package wire

import (
	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
)

// Encoded is the wire form of one request: the argument cells and the file
// descriptors that travel out of band. `Data` owns every encoded string and
// array byte, so holding the Encoded until the transport has consumed it is
// all the keep-alive a send needs.
type Encoded struct {
	Data []byte
	FDs  []int

	// newIDOffset is the byte offset of the new object placeholder cell, -1
	// when the message constructs nothing.
	newIDOffset int
}

// HasNewID reports whether the message carried a new_id argument.
func (e *Encoded) HasNewID() bool {
	return e.newIDOffset >= 0
}

// SetNewID patches the placeholder cell with the identity the connection
// assigned to the new object.
func (e *Encoded) SetNewID(id uint32) {
	ByteOrder.PutUint32(e.Data[e.newIDOffset:], id)
}

// Constructor names the interface an unbound new_id argument binds; bound
// new_id arguments take their interface from the descriptor instead.
type Constructor struct {
	Interface string
	Version   uint32
}

// EncodeRequest encodes one value per declared argument of msg into the
// request's wire cells. NewID arguments are synthesized, not supplied: the
// placeholder identity 0 is written (patched via `SetNewID` before the
// frame goes out) and an unbound new_id additionally expands to the
// constructor's interface name and version. Encoding allocates only; it
// never touches the registry.
func EncodeRequest(msg *protocol.Message, values []Value, ctor *Constructor) (*Encoded, error) {
	enc := &Encoded{newIDOffset: -1}

	declared := 0
	for _, arg := range msg.Args {
		if arg.Type != protocol.NewID {
			declared++
		}
	}
	if len(values) != declared {
		return nil, errors.InvalidArgumentType.Clone().
			SetData("message", msg.Name).
			SetData("reason", "argument count mismatch").
			SetData("expected", declared).
			SetData("got", len(values))
	}

	vi := 0
	for _, arg := range msg.Args {
		if arg.Type == protocol.NewID {
			if arg.Interface == nil {
				if ctor == nil {
					return nil, errors.InvalidArgumentType.Clone().
						SetData("message", msg.Name).
						SetData("reason", "unbound new_id without constructor")
				}
				if err := enc.putString(ctor.Interface); err != nil {
					return nil, err
				}
				enc.putUint(ctor.Version)
			}
			enc.newIDOffset = len(enc.Data)
			enc.putUint(0)
			continue
		}

		v := values[vi]
		vi++
		if v.kind != arg.Type {
			return nil, errors.InvalidArgumentType.Clone().
				SetData("message", msg.Name).
				SetData("argument", arg.Name).
				SetData("expected", arg.Type.String()).
				SetData("got", v.kind.String())
		}

		switch arg.Type {
		case protocol.Int:
			enc.putUint(uint32(v.i))
		case protocol.Uint:
			enc.putUint(v.u)
		case protocol.Fixed:
			enc.putUint(uint32(v.f))
		case protocol.String:
			if v.null {
				if !arg.Nullable {
					return nil, errors.NullNotAllowed.Clone().
						SetData("message", msg.Name).
						SetData("argument", arg.Name)
				}
				enc.putUint(0)
				continue
			}
			if err := enc.putString(v.s); err != nil {
				return nil, err
			}
		case protocol.Object:
			if v.null {
				if !arg.Nullable {
					return nil, errors.NullNotAllowed.Clone().
						SetData("message", msg.Name).
						SetData("argument", arg.Name)
				}
				enc.putUint(0)
				continue
			}
			if !v.o.Alive() {
				return nil, errors.StaleObject.Clone().
					SetData("message", msg.Name).
					SetData("argument", arg.Name).
					SetData("object", v.o.ID())
			}
			enc.putUint(v.o.ID())
		case protocol.Array:
			if err := enc.putArray(v.a); err != nil {
				return nil, err
			}
		case protocol.Fd:
			// not inline, travels on the ancillary channel in argument order
			enc.FDs = append(enc.FDs, v.h)
		}
	}

	if len(enc.Data)+HeaderSize > MaxFrameSize {
		return nil, errors.ValueOutOfRange.Clone().
			SetData("message", msg.Name).
			SetData("size", len(enc.Data))
	}

	return enc, nil
}

func (e *Encoded) putUint(v uint32) {
	var cell [4]byte
	ByteOrder.PutUint32(cell[:], v)
	e.Data = append(e.Data, cell[:]...)
}

// putString writes the length prefix (terminator included), the bytes, the
// NUL, and zero padding to the next cell boundary.
func (e *Encoded) putString(s string) error {
	n := len(s) + 1
	if n+HeaderSize > MaxFrameSize {
		return errors.ValueOutOfRange.Clone().SetData("size", n)
	}

	e.putUint(uint32(n))
	e.Data = append(e.Data, s...)
	e.Data = append(e.Data, 0)
	e.pad(n)

	return nil
}

func (e *Encoded) putArray(b []byte) error {
	if len(b)+HeaderSize > MaxFrameSize {
		return errors.ValueOutOfRange.Clone().SetData("size", len(b))
	}

	e.putUint(uint32(len(b)))
	e.Data = append(e.Data, b...)
	e.pad(len(b))

	return nil
}

func (e *Encoded) pad(n int) {
	for ; n%4 != 0; n++ {
		e.Data = append(e.Data, 0)
	}
}
