package wire

import (
	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
)

// Resolver looks an incoming wire identity up in the connection's registry;
// nil means the identity is not registered.
type Resolver func(id uint32) Object

// DecodeEvent decodes an event's wire cells into one value per declared
// argument. A new_id argument in an event, a null for a non-nullable
// argument, or a buffer that does not match the descriptor's layout is a
// ProtocolViolation: the framing can no longer be trusted and the caller is
// expected to tear the connection down.
func DecodeEvent(msg *protocol.Message, data []byte, fds []int, resolve Resolver) ([]Value, error) {
	d := decoder{msg: msg, data: data, fds: fds}

	values := make([]Value, 0, len(msg.Args))
	for _, arg := range msg.Args {
		var v Value
		var err error

		switch arg.Type {
		case protocol.Int:
			v = NewInt(int32(d.uint32()))
		case protocol.Uint:
			v = NewUint(d.uint32())
		case protocol.Fixed:
			v = NewFixed(Fixed(d.uint32()))
		case protocol.String:
			v, err = d.str(arg)
		case protocol.Object:
			v, err = d.object(arg, resolve)
		case protocol.NewID:
			// server-created objects arrive by a different mechanism, a
			// new_id in an event descriptor can only mean desync
			err = errors.ProtocolViolation.Clone().
				SetData("message", msg.Name).
				SetData("reason", "new_id argument in event")
		case protocol.Array:
			v = NewArray(d.bytes())
		case protocol.Fd:
			v, err = d.fd(arg)
		}

		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if d.short {
		return nil, errors.ProtocolViolation.Clone().
			SetData("message", msg.Name).
			SetData("reason", "truncated argument buffer")
	}
	if len(d.data) > 0 {
		return nil, errors.ProtocolViolation.Clone().
			SetData("message", msg.Name).
			SetData("reason", "trailing bytes after arguments")
	}

	return values, nil
}

type decoder struct {
	msg   *protocol.Message
	data  []byte
	fds   []int
	short bool
}

func (d *decoder) uint32() uint32 {
	if len(d.data) < 4 {
		d.short = true
		d.data = nil
		return 0
	}

	v := ByteOrder.Uint32(d.data[:4])
	d.data = d.data[4:]
	return v
}

// bytes reads a length-prefixed blob and its padding; the returned slice is
// a copy, decoded values never alias the transport's read buffer.
func (d *decoder) bytes() []byte {
	n := int(d.uint32())
	padded := n
	if padded%4 != 0 {
		padded += 4 - padded%4
	}
	if d.short || len(d.data) < padded {
		d.short = true
		d.data = nil
		return nil
	}

	b := make([]byte, n)
	copy(b, d.data[:n])
	d.data = d.data[padded:]
	return b
}

func (d *decoder) str(arg protocol.Argument) (Value, error) {
	if len(d.data) >= 4 && ByteOrder.Uint32(d.data[:4]) == 0 {
		d.data = d.data[4:]
		if !arg.Nullable {
			return Value{}, errors.ProtocolViolation.Clone().
				SetData("message", d.msg.Name).
				SetData("argument", arg.Name).
				SetData("reason", "null string for non-nullable argument")
		}
		return NullString(), nil
	}

	b := d.bytes()
	if d.short {
		return Value{}, errors.ProtocolViolation.Clone().
			SetData("message", d.msg.Name).
			SetData("argument", arg.Name).
			SetData("reason", "truncated string")
	}
	if b[len(b)-1] != 0 {
		return Value{}, errors.ProtocolViolation.Clone().
			SetData("message", d.msg.Name).
			SetData("argument", arg.Name).
			SetData("reason", "string without NUL terminator")
	}

	return NewString(string(b[:len(b)-1])), nil
}

func (d *decoder) object(arg protocol.Argument, resolve Resolver) (Value, error) {
	id := d.uint32()
	if d.short {
		return Value{}, nil
	}

	if id == 0 {
		if !arg.Nullable {
			return Value{}, errors.ProtocolViolation.Clone().
				SetData("message", d.msg.Name).
				SetData("argument", arg.Name).
				SetData("reason", "null object for non-nullable argument")
		}
		return NullObject(), nil
	}

	var o Object
	if resolve != nil {
		o = resolve(id)
	}
	if o == nil {
		return Value{}, errors.DanglingObject.Clone().
			SetData("message", d.msg.Name).
			SetData("argument", arg.Name).
			SetData("object", id)
	}

	return NewObject(o), nil
}

func (d *decoder) fd(arg protocol.Argument) (Value, error) {
	if len(d.fds) < 1 {
		return Value{}, errors.ProtocolViolation.Clone().
			SetData("message", d.msg.Name).
			SetData("argument", arg.Name).
			SetData("reason", "missing file descriptor")
	}

	fd := d.fds[0]
	d.fds = d.fds[1:]
	return NewFD(fd), nil
}
