package main

import (
	"context"
	"strings"

	"github.com/markdingo/miekgrrl"
	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
)

// upstreamLabel is appended to a delegated PTR query name so an operator can point the
// upstream at a conventional authoritative server without creating a query loop back to
// this server. It is part of the contract with the operator's upstream nameserver
// configuration, so preserve it verbatim.
const upstreamLabel = "upstream"

// Called from miekg - handles all DNS queries. Queries arrive here already decoded and
// with the header vetted by customMsgAcceptFunc.
func (t *server) ServeDNS(wtr dns.ResponseWriter, query *dns.Msg) {
	req := newRequest(query, wtr.RemoteAddr(), t.network)
	req.stats.gen.queries++
	if t.cfg.logQueriesFlag {
		defer req.log()
	}
	defer t.addStats(&req.stats) // Add req.stats to t.stats

	// A request handler must never crash the server nor leave the client hanging,
	// so anything unexpected on a decoded query becomes ServFail.
	defer func() {
		if r := recover(); r != nil {
			log.Majorf("Danger: internal error serving '%s': %v", req.qName, r)
			req.addNote("Internal error")
			req.stats.gen.servFail++
			req.response = new(dns.Msg)
			t.serveServFail(wtr, req)
		}
	}()

	if len(req.query.Question) > 0 {
		req.question = req.query.Question[0]           // Populate early for logger
		req.qName = strings.ToLower(req.question.Name) // Normalize
	}

	// The accept function has already vetted the header, but precisely which checks
	// miekg performs prior to calling ServeDNS is undocumented and may vary over
	// time, thus the belts and braces approach.
	if len(req.query.Question) != 1 ||
		len(req.query.Answer) != 0 ||
		len(req.query.Ns) != 0 ||
		req.query.Opcode != dns.OpcodeQuery {
		req.addNote("Malformed Query")
		req.stats.gen.badRequest++
		t.serveFormErr(wtr, req)
		return
	}

	if req.question.Qclass != dns.ClassINET {
		req.addNote("Wrong class " +
			dnsutil.ClassToString(dns.Class(req.question.Qclass)))
		req.stats.gen.wrongClass++
		t.serveFormErr(wtr, req)
		return
	}

	// Dispatch on qType. Everything outside the synthesized pair is NXDomain - this
	// server is authoritative for what it serves and serves nothing else.
	switch req.question.Qtype {
	case dns.TypePTR:
		t.servePtr(wtr, req)
	case dns.TypeAAAA:
		t.serveAAAA(wtr, req)
	default:
		req.addNote("Unsupported qType")
		req.stats.gen.wrongType++
		t.serveNXDomain(wtr, req)
	}
}

// servePtr is the reverse half. The qName must invert to an address, the address must
// belong to a configured network, and then the network's upstream - if any - gets first
// refusal before the template answer is synthesized.
func (t *server) servePtr(wtr dns.ResponseWriter, req *request) {
	req.stats.ptr.queries++

	ip, err := dnsutil.InvertPtrName(req.qName)
	if err != nil {
		req.addNote("Uninvertible")
		req.stats.ptr.invertError++
		t.serveNXDomain(wtr, req)
		return
	}

	req.matched = t.registry.FindByAddr(ip)
	if req.matched == nil {
		req.addNote("No network")
		req.stats.ptr.noNetwork++
		t.serveNXDomain(wtr, req)
		return
	}

	if req.matched.HasUpstream() {
		if target, ok := t.askUpstream(req); ok {
			req.addNote("Relay")
			req.stats.ptr.upstreamRelayed++
			t.servePtrAnswer(wtr, req, target)
			return
		}
		req.stats.ptr.upstreamFallback++
	}

	target, err := req.matched.PtrTarget(ip)
	if err != nil { // Can't happen - FindByAddr proved containment
		req.logError = err
		req.stats.gen.servFail++
		t.serveServFail(wtr, req)
		return
	}

	req.addNote("Synth")
	t.servePtrAnswer(wtr, req, target)
}

// askUpstream delegates the PTR query to the network's upstream resolver. Any failure
// at all - timeout, socket error, malformed reply, NXDomain, empty answer - returns
// ok=false and the caller synthesizes locally; none of it is visible to the client.
func (t *server) askUpstream(req *request) (string, bool) {
	upstreamQName := dnsutil.ChompCanonicalName(req.qName) + "." + upstreamLabel + "."

	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.upstreamTimeout)
	defer cancel()

	targets, err := t.resolver.ResolvePtr(ctx, req.matched.Upstream, upstreamQName)
	if err != nil {
		req.addNote("Upstream fail")
		return "", false
	}
	if len(targets) == 0 {
		req.addNote("Upstream empty")
		return "", false
	}

	return targets[0], true
}

func (t *server) servePtrAnswer(wtr dns.ResponseWriter, req *request, target string) {
	req.response.SetReply(req.query)
	ptr := new(dns.PTR)
	ptr.Hdr = dns.RR_Header{Name: req.question.Name, Rrtype: dns.TypePTR,
		Class: dns.ClassINET, Ttl: answerTTL}
	ptr.Ptr = dns.Fqdn(target)
	req.response.Answer = append(req.response.Answer, ptr)
	t.writeMsg(wtr, req)
	req.stats.ptr.good++
	req.stats.ptr.answers += len(req.response.Answer)
}

// serveAAAA is the forward half: the first template which matches the qName hands back
// the digit run and the digits rebuild the address. Upstream is never consulted here -
// delegation only applies to the reverse path.
func (t *server) serveAAAA(wtr dns.ResponseWriter, req *request) {
	req.stats.aaaa.queries++

	network, digits := t.registry.FindByName(req.qName)
	if network == nil {
		req.addNote("No template match")
		req.stats.aaaa.noMatch++
		t.serveNXDomain(wtr, req)
		return
	}
	req.matched = network

	ip, err := network.AddrFromDigits(digits)
	if err != nil { // Can't happen - Match vetted width and hexness
		req.logError = err
		req.stats.gen.servFail++
		t.serveServFail(wtr, req)
		return
	}

	req.addNote("Synth")
	req.response.SetReply(req.query)
	rr := new(dns.AAAA)
	rr.Hdr = dns.RR_Header{Name: req.question.Name, Rrtype: dns.TypeAAAA,
		Class: dns.ClassINET, Ttl: answerTTL}
	rr.AAAA = ip
	req.response.Answer = append(req.response.Answer, rr)
	t.writeMsg(wtr, req)
	req.stats.aaaa.good++
	req.stats.aaaa.answers += len(req.response.Answer)
}

func (t *server) serveNXDomain(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeNameError)
	t.writeMsg(wtr, req)
}

// miekg has a specific function for FormErr and a generic one for all other rcodes; use
// the specific one just in case there's a good reason beyond being an historical
// artifact.
func (t *server) serveFormErr(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcodeFormatError(req.query)
	t.writeMsg(wtr, req)
}

func (t *server) serveServFail(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeServerFailure)
	t.writeMsg(wtr, req)
}

// writeMsg finalizes the response with all the common processing then sends it. Any
// write error is recorded in req.logError for the query log.
func (t *server) writeMsg(wtr dns.ResponseWriter, req *request) {
	req.response.Authoritative = true

	if req.network == dnsutil.UDPNetwork {
		// Fit the classic UDP budget. Sets TC if anything had to go, which for
		// single short answers is a rare corner indeed.
		req.response.Truncate(int(dnsutil.MaxUDPSize))
	}

	if t.rrlHandler != nil && req.network == dnsutil.UDPNetwork {
		action, _, _ := t.rrlHandler.Debit(req.src, miekgrrl.Derive(req.response, ""))
		req.rrlAction = action
		if !t.cfg.rrlDryRun {
			switch action {
			case rrl.Drop:
				req.stats.gen.rrlDrop++
				return // Drop means drop - send nothing at all
			case rrl.Slip:
				req.stats.gen.rrlSlip++
				req.response.Answer = nil // Slip sends a bare truncated reply
				req.response.Ns = nil
				req.response.Extra = nil
				req.response.MsgHdr.Truncated = true
			}
		}
	}

	req.msgSize = req.response.Len()
	req.truncated = req.response.MsgHdr.Truncated

	err := wtr.WriteMsg(req.response)
	if err != nil {
		req.logError = dnsutil.ShortenLookupError(err)
	}
}
