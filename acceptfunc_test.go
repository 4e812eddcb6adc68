package main

import (
	"testing"

	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/netdb"
)

func TestCustomMsgAcceptFunc(t *testing.T) {
	srv := newServer(&config{}, netdb.NewRegistry(), nil, nil, "", "")

	testCases := []struct {
		name   string
		header dns.Header
		expect dns.MsgAcceptAction
	}{
		{"Good query", dns.Header{Qdcount: 1}, dns.MsgAccept},
		{"Response bit", dns.Header{Bits: _QR, Qdcount: 1}, dns.MsgIgnore},
		{"Notify op-code", dns.Header{Bits: uint16(dns.OpcodeNotify) << 11, Qdcount: 1},
			dns.MsgReject},
		{"No question", dns.Header{Qdcount: 0}, dns.MsgReject},
		{"Two questions", dns.Header{Qdcount: 2}, dns.MsgReject},
		{"Answer present", dns.Header{Qdcount: 1, Ancount: 1}, dns.MsgReject},
		{"Authority present", dns.Header{Qdcount: 1, Nscount: 1}, dns.MsgReject},
		{"One OPT tolerated", dns.Header{Qdcount: 1, Arcount: 1}, dns.MsgAccept},
		{"Additional overload", dns.Header{Qdcount: 1, Arcount: 3}, dns.MsgReject},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := srv.customMsgAcceptFunc(tc.header); got != tc.expect {
				t.Error("Got", got, "Expect", tc.expect)
			}
		})
	}

	// Every reject lands in the badRequest counter
	if srv.stats.gen.badRequest != 7 {
		t.Error("badRequest count wrong", srv.stats.gen.badRequest)
	}
}
