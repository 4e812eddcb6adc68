package resolver

import (
	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
)

func logExchangeQ(server string, q dns.Question) {
	log.Debug("Upstream Q: ", server, " ",
		dnsutil.TypeToString(q.Qtype), " ", q.Name)
}

func logExchangeA(server string, r *dns.Msg, err error) {
	if err != nil {
		log.Debug("Upstream E: ", server, " ", err.Error())
		return
	}

	log.Debug("Upstream A: ", server, " ",
		dnsutil.RcodeToString(r.Rcode), " an=", len(r.Answer))
}
