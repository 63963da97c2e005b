package client

import (
	"github.com/waygo/waygo/lib/errors"
)

// Registry maps wire identities to proxies for one connection. It never owns
// a proxy, the application does; `Unregister` invalidates the slot so a
// destroyed proxy can go away without the registry keeping it reachable.
// Registries are connection-scoped and must not be shared across
// connections.
type Registry struct {
	proxies map[uint32]*Proxy
}

func NewRegistry() *Registry {
	return &Registry{proxies: map[uint32]*Proxy{}}
}

// Register inserts identity -> proxy. At most one live proxy per identity:
// a second registration of a live identity fails with DuplicateIdentity and
// signals an identity-allocation bug in the connection layer.
func (r *Registry) Register(id uint32, p *Proxy) error {
	if _, found := r.proxies[id]; found {
		return errors.DuplicateIdentity.Clone().SetData("object", id)
	}

	r.proxies[id] = p
	return nil
}

// Resolve is a lookup only; nil when the identity is not registered.
func (r *Registry) Resolve(id uint32) *Proxy {
	return r.proxies[id]
}

func (r *Registry) Unregister(id uint32) {
	delete(r.proxies, id)
}
