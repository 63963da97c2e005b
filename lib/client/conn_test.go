package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
	"github.com/waygo/waygo/lib/wire"
)

// pipeConn is an in-memory transport double: writes are captured, reads pop
// frames queued by the test.
type pipeConn struct {
	wrote    [][]byte
	wroteFDs [][]int

	incoming    [][]byte
	incomingFDs [][]int

	closed bool
}

func (c *pipeConn) WriteMsg(data []byte, fds []int) error {
	if c.closed {
		return errors.ConnectionClosed
	}

	b := make([]byte, len(data))
	copy(b, data)
	c.wrote = append(c.wrote, b)
	c.wroteFDs = append(c.wroteFDs, append([]int(nil), fds...))

	return nil
}

func (c *pipeConn) ReadMsg() ([]byte, []int, error) {
	if c.closed || len(c.incoming) < 1 {
		return nil, nil, errors.ConnectionClosed
	}

	data := c.incoming[0]
	c.incoming = c.incoming[1:]
	fds := c.incomingFDs[0]
	c.incomingFDs = c.incomingFDs[1:]

	return data, fds, nil
}

func (c *pipeConn) Close() error {
	c.closed = true
	return nil
}

func (c *pipeConn) push(data []byte, fds []int) {
	c.incoming = append(c.incoming, data)
	c.incomingFDs = append(c.incomingFDs, fds)
}

func mustArg(t *testing.T, name string, typ protocol.ArgumentType, nullable bool, iface *protocol.Interface) protocol.Argument {
	arg, err := protocol.NewArgument(name, typ, nullable, iface, "")
	require.NoError(t, err)
	return arg
}

// testInterfaces builds a miniature protocol: a root interface with a
// constructor request and the delete_id housekeeping event, a registry-like
// interface with an unbound bind, and an output-like leaf.
func testInterfaces(t *testing.T) (display, registry, output *protocol.Interface) {
	output = &protocol.Interface{Name: "test_output", Version: 3}
	output.Requests = []*protocol.Message{
		protocol.NewMessage("release", 0),
	}
	output.Events = []*protocol.Message{
		protocol.NewMessage("scale", 0, mustArg(t, "factor", protocol.Int, false, nil)),
		protocol.NewMessage("enter", 0, mustArg(t, "sibling", protocol.Object, false, output)),
	}

	registry = &protocol.Interface{Name: "test_registry", Version: 1}
	registry.Requests = []*protocol.Message{
		protocol.NewMessage("bind", 0,
			mustArg(t, "name", protocol.Uint, false, nil),
			mustArg(t, "id", protocol.NewID, false, nil),
		),
	}
	registry.Events = []*protocol.Message{
		protocol.NewMessage("global", 0,
			mustArg(t, "name", protocol.Uint, false, nil),
			mustArg(t, "interface", protocol.String, false, nil),
			mustArg(t, "version", protocol.Uint, false, nil),
		),
	}

	display = &protocol.Interface{Name: "test_display", Version: 1}
	display.Requests = []*protocol.Message{
		protocol.NewMessage("get_registry", 0, mustArg(t, "registry", protocol.NewID, false, registry)),
		protocol.NewMessage("ping", 0, mustArg(t, "serial", protocol.Uint, false, nil)),
	}
	display.Events = []*protocol.Message{
		protocol.NewMessage("delete_id", 0, mustArg(t, "id", protocol.Uint, false, nil)),
		protocol.NewMessage("configure", 0, mustArg(t, "serial", protocol.Uint, false, nil)),
	}

	return display, registry, output
}

// eventFrame assembles a full incoming frame for msg; event cell layout is
// identical to request layout for the plain argument kinds used here.
func eventFrame(t *testing.T, id uint32, opcode uint16, msg *protocol.Message, values ...wire.Value) []byte {
	enc, err := wire.EncodeRequest(msg, values, nil)
	require.NoError(t, err)

	frame := make([]byte, wire.HeaderSize+len(enc.Data))
	wire.PutHeader(frame, wire.Header{ObjectID: id, Opcode: opcode, Size: uint16(len(frame))})
	copy(frame[wire.HeaderSize:], enc.Data)

	return frame
}
