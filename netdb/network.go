package netdb

import (
	"fmt"
	"net"
	"strconv"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
)

const defaultUpstreamPort = "53"

// Network is one configured network: an IPv6 prefix, the compiled hostname template
// instantiated for that prefix, and optionally the upstream resolver consulted for PTR
// queries before synthesis. Networks are immutable once created.
type Network struct {
	Prefix   *net.IPNet
	Template *Template
	Upstream string // host:port, empty when no upstream is configured
}

// NewNetwork performs all the config-time validation for one network block and returns
// the ready-to-serve result. The CIDR must be IPv6, must be written in normalized form
// (no host bits set) and must have a prefix length which is a multiple of four so host
// bits convert exactly to hex digits. The template must contain the token exactly once.
// A bare upstream address gains the default DNS port.
func NewNetwork(cidr, template, upstream string) (*Network, error) {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("network '%s': %w", cidr, err)
	}
	ones, bits := ipNet.Mask.Size()
	if bits != 8*net.IPv6len {
		return nil, fmt.Errorf("network '%s' must be an IPv6 CIDR", cidr)
	}
	if !ip.Equal(ipNet.IP) {
		return nil, fmt.Errorf("network '%s' has host bits set - write it as %s",
			cidr, ipNet.String())
	}
	if ones%4 != 0 {
		return nil, fmt.Errorf("network '%s' prefix length %d is not a multiple of 4",
			cidr, ones)
	}

	t := &Network{Prefix: ipNet}

	t.Template, err = CompileTemplate(template, dnsutil.HostDigitCount(ipNet))
	if err != nil {
		return nil, fmt.Errorf("network '%s': %w", cidr, err)
	}

	if len(upstream) > 0 {
		t.Upstream, err = normalizeUpstream(upstream)
		if err != nil {
			return nil, fmt.Errorf("network '%s': %w", cidr, err)
		}
	}

	return t, nil
}

// Contains returns true if ip lies within this network's prefix.
func (t *Network) Contains(ip net.IP) bool {
	return t.Prefix.Contains(ip)
}

// PtrTarget synthesizes the hostname this network generates for ip.
func (t *Network) PtrTarget(ip net.IP) (string, error) {
	digits, err := dnsutil.HostDigits(ip, t.Prefix)
	if err != nil {
		return "", err
	}

	return t.Template.Synthesize(digits), nil
}

// AddrFromDigits rebuilds the address a digit run denotes within this network.
func (t *Network) AddrFromDigits(digits string) (net.IP, error) {
	return dnsutil.FromHostDigits(digits, t.Prefix)
}

// HasUpstream returns true if an upstream resolver is configured for this network.
func (t *Network) HasUpstream() bool {
	return len(t.Upstream) > 0
}

func (t *Network) String() string {
	s := t.Prefix.String() + " resolves to " + t.Template.String()
	if t.HasUpstream() {
		s += " with upstream " + t.Upstream
	}

	return s
}

// normalizeUpstream accepts a bare IP literal or an ip:port/[v6]:port form and returns a
// fully formed host:port suitable for Dial. The host must be an IP literal - domain
// names would require a resolver to resolve the resolver.
func normalizeUpstream(s string) (string, error) {
	if ip := net.ParseIP(s); ip != nil {
		return net.JoinHostPort(s, defaultUpstreamPort), nil
	}

	h, p, err := net.SplitHostPort(s)
	if err != nil {
		return "", fmt.Errorf("upstream '%s' is not an address: %w", s, err)
	}
	if net.ParseIP(h) == nil {
		return "", fmt.Errorf("upstream host '%s' is not an IP address", h)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("upstream '%s' has an invalid port", s)
	}

	return net.JoinHostPort(h, p), nil
}
