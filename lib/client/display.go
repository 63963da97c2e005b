package client

import (
	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/protocol"
	"github.com/waygo/waygo/lib/wire"
)

// DisplayID is the reserved identity of the connection's root object.
const DisplayID = 1

// Display owns one client connection: the root proxy, the identity
// allocator, the registry and the dispatcher. Every operation runs on the
// goroutine that owns the connection; the only blocking point is the
// transport's read inside `DispatchOne`.
type Display struct {
	conn       Conn
	registry   *Registry
	dispatcher *Dispatcher
	proxy      *Proxy
	nextID     uint32
}

// NewDisplay wires a connection up around its root interface descriptor.
// The root proxy takes the reserved identity; constructed objects get
// sequential identities after it.
func NewDisplay(conn Conn, iface *protocol.Interface) (*Display, error) {
	d := &Display{
		conn:     conn,
		registry: NewRegistry(),
		nextID:   DisplayID + 1,
	}
	d.dispatcher = NewDispatcher(d.registry)
	d.proxy = newProxy(d, iface, uint32(iface.Version), DisplayID)

	if err := d.registry.Register(DisplayID, d.proxy); err != nil {
		return nil, err
	}

	// the core delete_id housekeeping event, when the root interface
	// carries it, invalidates the acknowledged identity
	for _, msg := range iface.Events {
		if msg.Name == "delete_id" && len(msg.Args) == 1 && msg.Args[0].Type == protocol.Uint {
			d.proxy.On(msg.Name, func(p *Proxy, values []wire.Value) {
				d.DeleteID(values[0].Uint())
			})
		}
	}

	return d, nil
}

// Proxy returns the root object.
func (d *Display) Proxy() *Proxy {
	return d.proxy
}

func (d *Display) Registry() *Registry {
	return d.registry
}

// SendRequest marshals one request of p and hands the frame to the
// transport.
func (d *Display) SendRequest(p *Proxy, opcode int, values ...wire.Value) error {
	enc, err := d.marshal(p, opcode, nil, values)
	if err != nil {
		return err
	}

	return d.send(p, opcode, enc)
}

// SendConstructor marshals a request that binds a new object: the next
// identity is assigned, patched over the placeholder cell, and the proxy is
// registered atomically with its creation, so the identity never exists
// without a proxy behind it. For an unbound new_id argument iface and
// version name the bound interface inline; for a bound one they must match
// the descriptor.
func (d *Display) SendConstructor(p *Proxy, opcode int, iface *protocol.Interface, version uint32, values ...wire.Value) (*Proxy, error) {
	ctor := &wire.Constructor{Interface: iface.Name, Version: version}
	enc, err := d.marshal(p, opcode, ctor, values)
	if err != nil {
		return nil, err
	}
	if !enc.HasNewID() {
		return nil, errors.BadDescriptor.Clone().
			SetData("interface", p.iface.Name).
			SetData("opcode", opcode).
			SetData("reason", "constructor marshal of a message without new_id")
	}

	id := d.nextID
	enc.SetNewID(id)
	if err := d.send(p, opcode, enc); err != nil {
		return nil, err
	}
	d.nextID++

	return d.CreateFromConstructor(iface, version, id)
}

// CreateFromConstructor allocates a proxy under an identity the connection
// assigned and registers it in one step.
func (d *Display) CreateFromConstructor(iface *protocol.Interface, version uint32, id uint32) (*Proxy, error) {
	p := newProxy(d, iface, version, id)
	if err := d.registry.Register(id, p); err != nil {
		return nil, err
	}

	return p, nil
}

// DeleteID handles the server's acknowledgement that an identity is gone:
// the slot is invalidated so the identity can be reused and later events
// for it are dropped.
func (d *Display) DeleteID(id uint32) {
	if p := d.registry.Resolve(id); p != nil {
		p.alive = false
	}
	d.registry.Unregister(id)
}

// DispatchOne reads one event frame from the transport and dispatches it.
func (d *Display) DispatchOne() error {
	data, fds, err := d.conn.ReadMsg()
	if err != nil {
		return err
	}

	h, err := wire.ParseHeader(data)
	if err != nil {
		return err
	}
	if int(h.Size) != len(data) {
		return errors.ProtocolViolation.Clone().
			SetData("object", h.ObjectID).
			SetData("reason", "frame size does not match delivery")
	}

	return d.dispatcher.Dispatch(h.ObjectID, h.Opcode, data[wire.HeaderSize:], fds)
}

func (d *Display) Close() error {
	return d.conn.Close()
}

func (d *Display) marshal(p *Proxy, opcode int, ctor *wire.Constructor, values []wire.Value) (*wire.Encoded, error) {
	if !p.alive {
		return nil, errors.StaleObject.Clone().
			SetData("interface", p.iface.Name).
			SetData("object", p.id)
	}

	msg, err := p.iface.Request(opcode)
	if err != nil {
		return nil, err
	}

	return wire.EncodeRequest(msg, values, ctor)
}

func (d *Display) send(p *Proxy, opcode int, enc *wire.Encoded) error {
	size := wire.HeaderSize + len(enc.Data)
	if size > wire.MaxFrameSize {
		return errors.ValueOutOfRange.Clone().
			SetData("interface", p.iface.Name).
			SetData("opcode", opcode).
			SetData("size", size)
	}

	frame := make([]byte, size)
	wire.PutHeader(frame, wire.Header{ObjectID: p.id, Opcode: uint16(opcode), Size: uint16(size)})
	copy(frame[wire.HeaderSize:], enc.Data)

	// enc stays alive here until the transport has consumed the frame
	return d.conn.WriteMsg(frame, enc.FDs)
}
