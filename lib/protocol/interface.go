package protocol

import (
	"github.com/waygo/waygo/lib/errors"
)

// Interface describes one kind of protocol object: its requests and events
// in opcode order. One descriptor value is shared by every proxy of that
// kind; it is built once, by the scanner or by generated bindings, and read
// at marshal and dispatch time.
type Interface struct {
	Name    string
	Version int

	Requests []*Message
	Events   []*Message
}

// Request returns the request descriptor at `opcode`.
func (i *Interface) Request(opcode int) (*Message, error) {
	if opcode < 0 || opcode >= len(i.Requests) {
		return nil, errors.InvalidOpcode.Clone().SetData("interface", i.Name).SetData("opcode", opcode)
	}

	return i.Requests[opcode], nil
}

// Event returns the event descriptor at `opcode`.
func (i *Interface) Event(opcode int) (*Message, error) {
	if opcode < 0 || opcode >= len(i.Events) {
		return nil, errors.InvalidOpcode.Clone().SetData("interface", i.Name).SetData("opcode", opcode)
	}

	return i.Events[opcode], nil
}
