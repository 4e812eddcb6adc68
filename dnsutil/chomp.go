package dnsutil

import (
	"github.com/miekg/dns"
)

// ChompCanonicalName lowercases the name and removes the trailing root dot. Handy when a
// name is about to gain another label, or for log output where the trailing dot is more
// of a hindrance than a help.
func ChompCanonicalName(n string) string {
	n = dns.CanonicalName(n)
	if len(n) > 0 && n[len(n)-1] == '.' {
		n = n[:len(n)-1]
	}

	return n
}
