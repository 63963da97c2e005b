package client

import (
	"github.com/waygo/waygo/lib/errors"
	"github.com/waygo/waygo/lib/wire"
)

// Dispatcher delivers incoming events to proxy listeners, one event at a
// time: a dispatch runs to completion before the next may start, so
// listeners never observe the registry mid-update.
type Dispatcher struct {
	registry    *Registry
	dispatching bool
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch resolves one incoming event and invokes the proxy's listener
// with the decoded arguments. Events for unknown identities or out-of-range
// opcodes are dropped and logged, not errors: the server may still be
// sending to an object the client already destroyed. A decode failure of a
// resolved message is fatal to the connection and propagates.
func (d *Dispatcher) Dispatch(id uint32, opcode uint16, data []byte, fds []int) error {
	if d.dispatching {
		return errors.ReentrantDispatch
	}
	d.dispatching = true
	defer func() {
		d.dispatching = false
	}()

	p := d.registry.Resolve(id)
	if p == nil {
		log.Debug("event dropped", "error", errors.UnknownObject, "object", id, "opcode", opcode)
		return nil
	}

	msg, err := p.iface.Event(int(opcode))
	if err != nil {
		log.Debug("event dropped", "error", err, "interface", p.iface.Name, "object", id)
		return nil
	}

	values, err := wire.DecodeEvent(msg, data, fds, d.resolve)
	if err != nil {
		return err
	}

	p.events.Trigger(msg.Name, p, values)
	return nil
}

func (d *Dispatcher) resolve(id uint32) wire.Object {
	if p := d.registry.Resolve(id); p != nil {
		return p
	}
	return nil
}
