package resolver

import (
	"context"

	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
	"github.com/dnsisreverse/dnsisreverse/log"
)

// ResolvePtr makes exactly one UDP exchange attempt. No retries, no TCP fallback, no
// EDNS - the whole point of the upstream path is a quick look-aside before synthesis
// and a sophisticated upstream deserves a sophisticated resolver in front of it, not
// this one.
func (t *resolver) ResolvePtr(ctx context.Context, server, qName string) ([]string, error) {
	query := new(dns.Msg)
	query.SetQuestion(dns.CanonicalName(qName), dns.TypePTR) // Fresh Id and RD=1

	client := &dns.Client{Net: dnsutil.UDPNetwork, Timeout: t.exchangeTimeout}

	if log.IfDebug() {
		logExchangeQ(server, query.Question[0])
	}

	r, _, err := client.ExchangeContext(ctx, query, server)

	if log.IfDebug() {
		logExchangeA(server, r, err)
	}

	if err != nil {
		return nil, dnsutil.ShortenLookupError(err)
	}

	if r.Rcode != dns.RcodeSuccess {
		return nil, nil
	}

	var targets []string
	for _, rr := range r.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			targets = append(targets, ptr.Ptr)
		}
	}

	return targets, nil
}
