package main

import (
	"errors"
	"testing"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/mock"
)

func TestRequestLog(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)

	req := &request{}
	req.network = dnsutil.TCPNetwork
	req.truncated = true
	req.response = new(dns.Msg)
	req.question = dns.Question{}
	req.src = mock.NewNetAddr("tcp", "192.0.2.7:1234")
	req.log()

	got := out.String()
	exp := "ru=ok q=None/ s=192.0.2.7:1234 id=0 h=TZ sz=0 A=0\n"
	if exp != got {
		t.Error("Log wrong. Exp", exp, "Got", got)
	}

	out.Reset()
	req.rrlAction = rrl.Drop
	req.log()

	got = out.String()
	exp = "ru=ok/D q=None/ s=192.0.2.7:1234 id=0 h=TZ sz=0 A=0\n"
	if exp != got {
		t.Error("Log wrong. Exp", exp, "Got", got)
	}
}

func TestRequestLogNotes(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)

	req := &request{}
	req.network = dnsutil.UDPNetwork
	req.response = new(dns.Msg)
	req.response.Rcode = dns.RcodeNameError
	req.question = dns.Question{Name: "x.example.", Qtype: dns.TypePTR}
	req.qName = "x.example."
	req.addNote("one")
	req.addNote("two")
	req.logError = errors.New("boom")
	req.log()

	got := out.String()
	exp := "ru=NXDOMAIN q=PTR/x.example. s= id=0 h=U sz=0 A=0 one:two:boom\n"
	if exp != got {
		t.Error("Log wrong. Exp", exp, "Got", got)
	}
}

func TestNewRequest(t *testing.T) {
	q := new(dns.Msg)
	req := newRequest(q, mock.NewNetAddr("udp", "192.0.2.7:1234"), dnsutil.UDPNetwork)
	if req.srcIP == nil || req.srcIP.String() != "192.0.2.7" {
		t.Error("srcIP not extracted", req.srcIP)
	}
	if req.response == nil {
		t.Error("response should be pre-allocated")
	}

	req = newRequest(q, nil, dnsutil.UDPNetwork)
	if req.srcIP != nil {
		t.Error("nil src should yield nil srcIP")
	}
}
