package netdb

import (
	"net"
)

// Registry is the ordered collection of configured networks. Order is configuration
// order and doubles as the tie-break whenever more than one network could claim an
// address or a name: the first match wins. Deliberately *not* longest-prefix - an
// operator reading the config file top to bottom sees exactly what the server does.
type Registry struct {
	networks []*Network
}

// NewRegistry builds a registry from networks in configuration order.
func NewRegistry(networks ...*Network) *Registry {
	return &Registry{networks: networks}
}

// FindByAddr returns the first network containing ip, or nil.
func (t *Registry) FindByAddr(ip net.IP) *Network {
	for _, n := range t.networks {
		if n.Contains(ip) {
			return n
		}
	}

	return nil
}

// FindByName returns the first network whose template matches qName, along with the
// extracted digit run, or nil.
func (t *Registry) FindByName(qName string) (*Network, string) {
	for _, n := range t.networks {
		if digits, ok := n.Template.Match(qName); ok {
			return n, digits
		}
	}

	return nil, ""
}

// Len returns the number of configured networks.
func (t *Registry) Len() int {
	return len(t.networks)
}

// Networks returns the underlying slice for iteration, such as the startup log of
// served networks. Callers must not modify it.
func (t *Registry) Networks() []*Network {
	return t.networks
}
