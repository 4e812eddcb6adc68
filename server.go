package main

import (
	"sync"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/netdb"
	"github.com/dnsisreverse/dnsisreverse/resolver"
)

// server is created for each listen address. The registry and resolver are shared by
// reference across all servers; both are read-only once serving starts so no locking is
// involved on the query path apart from the stats merge at the end of each request.
type server struct {
	cfg        *config
	registry   *netdb.Registry
	resolver   resolver.Resolver
	rrlHandler *rrl.RRL // May be nil if not configured

	network string // Listen details
	address string

	miekg *dns.Server

	statsMu sync.RWMutex
	stats   serverStats
}

func newServer(cfg *config, registry *netdb.Registry, r resolver.Resolver,
	rrlHandler *rrl.RRL, network, address string) *server {
	t := &server{
		cfg:        cfg,
		registry:   registry,
		resolver:   r,
		rrlHandler: rrlHandler,
		network:    network,
		address:    address,
	}

	if len(t.network) == 0 {
		t.network = dnsutil.UDPNetwork
	}

	t.miekg = &dns.Server{Net: t.network, Addr: t.address, ReusePort: true, Handler: t}

	// Replace the default accept function so header-level rejects are counted and
	// so the reject rcodes line up with what this server promises to return.
	t.miekg.MsgAcceptFunc = func(dh dns.Header) dns.MsgAcceptAction {
		return t.customMsgAcceptFunc(dh)
	}

	return t
}

// startServer starts accepting DNS queries by calling dns.ListenAndServe(). It waits
// until the service has actually started prior to returning by way of
// NotifyStartedFunc.
//
// Returns an error if the server fails to start, otherwise nil.
func (t *dnsIsReverse) startServer(srv *server) error {
	t.wg.Add(1)

	hasStarted := make(chan error) // Make sure listener has started before returning
	srv.miekg.NotifyStartedFunc = func() {
		hasStarted <- nil
	}

	go func() {
		err := srv.miekg.ListenAndServe()
		t.wg.Done()
		if err != nil {
			hasStarted <- err
		}
		close(hasStarted)
	}()

	return <-hasStarted
}

func (t *server) stop() {
	t.miekg.Shutdown()
}

func (t *server) addStats(from *serverStats) {
	t.statsMu.Lock()
	t.stats.add(from)
	t.statsMu.Unlock()
}

// Called from the accept function when a query fails prior to ServeDNS().
func (t *server) addAcceptError() {
	t.statsMu.Lock()
	t.stats.gen.badRequest++
	t.statsMu.Unlock()
}
