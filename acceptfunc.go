package main

import (
	"github.com/miekg/dns"
)

// customMsgAcceptFunc is a variant of miekg.defaultMsgAcceptFunc. The differences: every
// reject is counted, and a bad opcode is rejected with FormErr rather than NotImp since
// that is the rcode this server documents for anything header-shaped it will not
// process. A rejected query never reaches ServeDNS - miekg generates the error response
// from the raw header. A message too short to hold a header never reaches this function
// either: miekg drops it without sending any response.

const (
	// Header.Bits
	_QR = 1 << 15 // query/response (response=1)
)

func (t *server) customMsgAcceptFunc(dh dns.Header) dns.MsgAcceptAction {
	if isResponse := dh.Bits&_QR != 0; isResponse {
		t.addAcceptError()
		return dns.MsgIgnore // Never answer a response - that way lies a loop
	}

	opcode := int(dh.Bits>>11) & 0xF
	if opcode != dns.OpcodeQuery {
		t.addAcceptError()
		return dns.MsgReject
	}

	if dh.Qdcount != 1 {
		t.addAcceptError()
		return dns.MsgReject
	}

	if dh.Ancount > 0 || dh.Nscount > 0 {
		t.addAcceptError()
		return dns.MsgReject
	}

	// Allow a couple of Additional RRs as resolvers commonly append an OPT even
	// though this server never negotiates EDNS.
	if dh.Arcount > 2 {
		t.addAcceptError()
		return dns.MsgReject
	}

	return dns.MsgAccept
}
