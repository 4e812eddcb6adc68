package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/netdb"
)

// A whole bunch of info about a query and its response accumulates as the request
// progresses thru dispatch. Rather than pass it all around as a fleet of function
// parameters it lives in a request struct - partly for readability, partly because it
// doubles as the source of the query log line. A request is only ever touched by a
// single go-routine and lives for the life of one DNS query.
type request struct {
	query    *dns.Msg
	response *dns.Msg
	question dns.Question
	qName    string // Lowercased question name

	matched *netdb.Network // Network governing this query, if any

	src       net.Addr // From here on down is log data
	srcIP     net.IP
	network   string // Transport: "udp" or "tcp"
	logNote   string // Mixed in with the log message, if set
	logError  error  // Appended to the log message, if set
	msgSize   int
	truncated bool
	rrlAction rrl.Action

	// To avoid holding a lock for the whole query, stats accumulate in this local
	// copy and merge into the aggregate server stats at the end, so most of the
	// query runs lock free.
	stats serverStats
}

func newRequest(query *dns.Msg, src net.Addr, network string) *request {
	t := &request{query: query, response: new(dns.Msg), src: src, network: network}
	if src != nil {
		if h, _, err := net.SplitHostPort(src.String()); err == nil {
			t.srcIP = net.ParseIP(h)
		}
	}

	return t
}

// addNote accumulates short annotations for the query log.
func (t *request) addNote(s string) {
	if len(t.logNote) > 0 {
		t.logNote += ":" + s
	} else {
		t.logNote = s
	}
}

// log emits the one-line-per-query report. Loosely one line of key=value pairs so the
// inevitable awk one-liners stay easy to write.
func (t *request) log() {
	var note []string
	if len(t.logNote) > 0 {
		note = append(note, t.logNote)
	}
	if t.logError != nil {
		note = append(note, t.logError.Error())
	}
	var noteStr string
	if len(note) > 0 {
		noteStr = " " + strings.Join(note, ":")
	}

	rcodeStr := "ok"
	if t.response.MsgHdr.Rcode != dns.RcodeSuccess {
		rcodeStr = dnsutil.RcodeToString(t.response.MsgHdr.Rcode)
	}
	switch t.rrlAction {
	case rrl.Drop:
		rcodeStr += "/D"
	case rrl.Slip:
		rcodeStr += "/S"
	}

	hFlags := make([]byte, 0, 4)
	if t.network == dnsutil.TCPNetwork {
		hFlags = append(hFlags, 'T')
	} else {
		hFlags = append(hFlags, 'U') // Superfluous but ensures h= doesn't dangle
	}
	if t.truncated {
		hFlags = append(hFlags, 'Z')
	}

	var srcStr string
	if t.src != nil {
		srcStr = t.src.String()
	}

	fmt.Fprintf(log.Out(), "ru=%s q=%s/%s s=%s id=%d h=%s sz=%d A=%d%s\n",
		rcodeStr, dnsutil.TypeToString(t.question.Qtype), t.qName,
		srcStr, t.response.MsgHdr.Id, string(hFlags), t.msgSize,
		len(t.response.Answer), noteStr)
}
