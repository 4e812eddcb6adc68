// Package dns runs throwaway miekg DNS servers on ephemeral ports so tests can stand in
// for an operator's upstream resolver.
package dns

import (
	"net"

	"github.com/miekg/dns"
)

// StartServer listens on an ephemeral UDP port on loopback and serves queries with the
// supplied handler. It returns the running server and the host:port to direct queries
// at. The caller owns shutdown. Start-up is synchronous - when StartServer returns, the
// server is accepting queries.
func StartServer(h dns.Handler) (*dns.Server, string, error) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		return nil, "", err
	}

	srv := &dns.Server{PacketConn: pc, Handler: h}
	hasStarted := make(chan struct{})
	srv.NotifyStartedFunc = func() {
		close(hasStarted)
	}

	go func() {
		srv.ActivateAndServe()
	}()

	<-hasStarted

	return srv, pc.LocalAddr().String(), nil
}
