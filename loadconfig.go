package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/netdb"
)

// The config file grammar, in brief:
//
//	# comment to end of line
//	listen 127.0.0.1
//	network 2001:db8::/64
//	    resolves to test-%DIGITS%.local
//	    with upstream 2001:db8:53::53
//
// A "network" directive opens a block; the block continues for as long as lines are
// indented and ends at the first non-indented line or EOF. "resolves to" must appear
// exactly once per block, "with upstream" at most once.
const (
	listenDirective   = "listen "
	networkDirective  = "network "
	templateDirective = "resolves to "
	upstreamDirective = "with upstream "
)

// loadConfigFile reads and digests the config file: listen addresses are appended to
// the command-line set and the network blocks become the registry. Any error means the
// process refuses to start.
func (t *dnsIsReverse) loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	listens, networks, err := parseConfig(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	t.cfg.listen = append(t.cfg.listen, listens...)
	if len(t.cfg.listen) == 0 {
		t.cfg.listen = []string{"::", "0.0.0.0"} // Serve everywhere by default
	}
	for ix, addr := range t.cfg.listen {
		t.cfg.listen[ix] = net.JoinHostPort(addr, strconv.Itoa(t.cfg.port))
	}

	t.registry = netdb.NewRegistry(networks...)
	for _, n := range t.registry.Networks() {
		log.Minor("Network: ", n.String())
	}

	return nil
}

// parseConfig converts config file text into listen addresses and networks, in file
// order. Line numbers are 1-based in errors because that's how operators count.
func parseConfig(text string) (listens []string, networks []*netdb.Network, err error) {
	lines := strings.Split(text, "\n")

	ix := 0
	for ix < len(lines) {
		line, blank := chompLine(lines[ix])
		ix++
		if blank {
			continue
		}

		switch {
		case strings.HasPrefix(line, listenDirective):
			addr := strings.TrimSpace(strings.TrimPrefix(line, listenDirective))
			if net.ParseIP(addr) == nil {
				return nil, nil,
					fmt.Errorf("line %d: listen '%s' is not an IP address", ix, addr)
			}
			listens = append(listens, addr)

		case strings.HasPrefix(line, networkDirective):
			cidr := strings.TrimSpace(strings.TrimPrefix(line, networkDirective))
			var network *netdb.Network
			network, ix, err = parseNetworkBlock(lines, ix, cidr)
			if err != nil {
				return nil, nil, err
			}
			networks = append(networks, network)

		default:
			return nil, nil, fmt.Errorf("line %d: unknown directive '%s'", ix, line)
		}
	}

	return listens, networks, nil
}

// parseNetworkBlock consumes the indented continuation lines of one network block. ix is
// the index of the first candidate line; the returned index is the first line *not*
// belonging to the block.
func parseNetworkBlock(lines []string, ix int, cidr string) (*netdb.Network, int, error) {
	var template, upstream string

	for ix < len(lines) {
		raw := lines[ix]
		line, blank := chompLine(raw)
		if blank {
			ix++
			continue
		}
		if raw[0] != ' ' && raw[0] != '\t' { // Non-indented line ends the block
			break
		}
		ix++

		switch {
		case strings.HasPrefix(line, templateDirective):
			if len(template) > 0 {
				return nil, ix, fmt.Errorf(
					"line %d: network %s has more than one 'resolves to'", ix, cidr)
			}
			template = strings.TrimSpace(strings.TrimPrefix(line, templateDirective))

		case strings.HasPrefix(line, upstreamDirective):
			if len(upstream) > 0 {
				return nil, ix, fmt.Errorf(
					"line %d: network %s has more than one 'with upstream'", ix, cidr)
			}
			upstream = strings.TrimSpace(strings.TrimPrefix(line, upstreamDirective))

		default:
			return nil, ix, fmt.Errorf("line %d: unknown directive '%s'", ix, line)
		}
	}

	if len(template) == 0 {
		return nil, ix, fmt.Errorf("network %s is missing 'resolves to'", cidr)
	}

	network, err := netdb.NewNetwork(cidr, template, upstream)
	if err != nil {
		return nil, ix, err
	}

	return network, ix, nil
}

// chompLine strips the comment, if any, and surrounding whitespace. blank is true if
// nothing of substance remains.
func chompLine(raw string) (line string, blank bool) {
	if hash := strings.IndexByte(raw, '#'); hash >= 0 {
		raw = raw[:hash]
	}
	line = strings.TrimSpace(raw)

	return line, len(line) == 0
}
