package dnsutil

import (
	"strings"

	"github.com/miekg/dns"
)

// RRIsEqual returns true if the two RRs are effectively identical, which is to say
// identical excepting TTL. miekg offers no public comparison of the non-header part of
// an RR so the Stringer output is compared instead with the header prefix sliced off. A
// bit of a hack, and slow, but it only runs in tests.
func RRIsEqual(a, b dns.RR) bool {
	ah := a.Header()
	bh := b.Header()

	if ah.Class != bh.Class ||
		ah.Rrtype != bh.Rrtype ||
		dns.CanonicalName(ah.Name) != dns.CanonicalName(bh.Name) {
		return false
	}

	as := a.String()[len(ah.String()):]
	bs := b.String()[len(bh.String()):]

	return strings.EqualFold(as, bs)
}
