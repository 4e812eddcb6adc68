package main

import (
	"os"
	"sync"
	"time"

	"github.com/markdingo/rrl"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/netdb"
	"github.com/dnsisreverse/dnsisreverse/osutil"
	"github.com/dnsisreverse/dnsisreverse/resolver"
)

// The dnsIsReverse container exists so that most of the "main" functionality can be
// delegated to support functions and keep the flow of main() nice and clean.
type dnsIsReverse struct {
	cfg *config

	done chan struct{} // Collaborative go-routines monitor this - see Done()
	sig  chan os.Signal

	registry   *netdb.Registry
	resolver   resolver.Resolver
	rrlHandler *rrl.RRL // Nil unless --rrl options configured

	wg      sync.WaitGroup // For all servers started
	servers []*server

	startTime time.Time
	statsTime time.Time // Last time stats were reset
}

func newDnsIsReverse(cfg *config, r resolver.Resolver) *dnsIsReverse {
	t := &dnsIsReverse{
		cfg:      cfg,
		done:     make(chan struct{}),
		sig:      make(chan os.Signal),
		resolver: r,
	}
	if t.cfg == nil {
		t.cfg = newConfig()
	}

	return t
}

// Done is the go idiomatic way to tell collaborative go-routines to exit. All such
// go-routines should include a "case <-t.Done(): return" in their select loop.
func (t *dnsIsReverse) Done() <-chan struct{} {
	return t.done
}

// Open listen sockets and start servers. Does not return until every server has started;
// any bind failure is fatal. Only UDP is served.
func (t *dnsIsReverse) startServers() {
	for _, addr := range t.cfg.listen {
		srv := newServer(t.cfg, t.registry, t.resolver, t.rrlHandler,
			dnsutil.UDPNetwork, addr)
		err := t.startServer(srv)
		if err != nil {
			fatal(err)
		}
		t.servers = append(t.servers, srv)
		log.Major("Listen on: ", srv.network, " ", srv.address)
	}
}

// Stop all servers and only return when they have all exited.
func (t *dnsIsReverse) stopServers() {
	for _, srv := range t.servers {
		srv.stop()
	}
	t.wg.Wait()
}

// Constrain the process via setuid, setgid and chroot, if so configured. Runs after the
// listen sockets are bound so the usual arrangement - start as root to bind port 53,
// then drop to a nobody-ish user - just works.
func (t *dnsIsReverse) Constrain() {
	if len(t.cfg.user) > 0 || len(t.cfg.group) > 0 || len(t.cfg.chroot) > 0 {
		err := osutil.Constrain(t.cfg.user, t.cfg.group, t.cfg.chroot)
		if err != nil {
			fatal(err)
		}
		log.Major("Process Constraint: ", osutil.ConstraintReport())
	}
}
