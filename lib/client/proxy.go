package client

import (
	observable "github.com/GianlucaGuarini/go-observable"

	"github.com/waygo/waygo/lib/protocol"
)

// Proxy is the client-side handle to one remote protocol object. Its wire
// identity is assigned at creation and never changes; after `Destroy` or a
// server-driven deletion the proxy no longer accepts marshal calls.
type Proxy struct {
	id      uint32
	version uint32
	iface   *protocol.Interface
	display *Display

	events   *observable.Observable
	userData interface{}
	alive    bool
}

func newProxy(display *Display, iface *protocol.Interface, version uint32, id uint32) *Proxy {
	return &Proxy{
		id:      id,
		version: version,
		iface:   iface,
		display: display,
		events:  observable.New(),
		alive:   true,
	}
}

// ID returns the identity the object is known by on the wire.
func (p *Proxy) ID() uint32 {
	return p.id
}

// Alive reports whether the proxy still accepts marshal calls.
func (p *Proxy) Alive() bool {
	return p.alive
}

func (p *Proxy) Interface() *protocol.Interface {
	return p.iface
}

func (p *Proxy) Version() uint32 {
	return p.version
}

func (p *Proxy) Display() *Display {
	return p.display
}

func (p *Proxy) SetUserData(v interface{}) {
	p.userData = v
}

func (p *Proxy) UserData() interface{} {
	return p.userData
}

// On registers a listener for the named event. The callback is invoked as
// `func(*Proxy, []wire.Value)` with the decoded arguments; an event with no
// listener is silently discarded at dispatch, which is a normal outcome.
func (p *Proxy) On(event string, cb interface{}) {
	p.events.On(event, cb)
}

// Off removes a previously registered listener.
func (p *Proxy) Off(event string, cb interface{}) {
	p.events.Off(event, cb)
}

// Destroy invalidates the proxy after the application has issued the
// destructor request. The registry slot is freed; later events for this
// identity are dropped.
func (p *Proxy) Destroy() {
	if !p.alive {
		return
	}

	p.alive = false
	p.display.registry.Unregister(p.id)
}
