package dnsutil

import (
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
)

const v6NibbleCount = 32 // One label per nibble of a 128 bit address

const hexDigits = "0123456789abcdef"

// PtrName renders an IPv6 address as its canonical reverse query name: 32 single-nibble
// labels, least significant first, under ip6.arpa. E.g. ::1 becomes
// 1.0.0...0.ip6.arpa. The supplied address must be a 16 byte IPv6 address; the return
// string is empty otherwise.
func PtrName(ip net.IP) string {
	ip = ip.To16()
	if ip == nil {
		return ""
	}

	var b strings.Builder
	b.Grow(v6NibbleCount*2 + len(V6Suffix))
	for ix := net.IPv6len - 1; ix >= 0; ix-- {
		b.WriteByte(hexDigits[ip[ix]&0xf])
		b.WriteByte('.')
		b.WriteByte(hexDigits[ip[ix]>>4])
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa.")

	return b.String()
}

// InvertPtrName converts a reverse query name back into the IPv6 address it encodes. The
// name must consist of exactly 32 single hex-character labels followed by "ip6.arpa";
// comparison is case-insensitive and the trailing root label is optional. Like any name
// in the DNS a qName does not *have* to encode an address, so a rogue query can arrive
// with anything at all in it - thus all the checking and the error return.
//
// Unlike general reverse servers, truncated nibble runs (such as the probe names
// generated by qname minimization) are rejected outright; callers answer those NXDomain.
func InvertPtrName(qName string) (net.IP, error) {
	qName = dns.CanonicalName(qName)
	if !strings.HasSuffix(qName, V6Suffix) {
		return nil, fmt.Errorf("'%s' is not under ip6.arpa", qName)
	}

	nibbles := strings.TrimSuffix(qName, V6Suffix)
	labels := strings.Split(nibbles, ".")
	if len(labels) != v6NibbleCount {
		return nil, fmt.Errorf("reverse name has %d nibble labels, need exactly %d",
			len(labels), v6NibbleCount)
	}

	ip := make(net.IP, net.IPv6len)
	for ix, label := range labels {
		if len(label) != 1 {
			return nil, fmt.Errorf("nibble label '%s' is not a single hex character", label)
		}
		v := hexValue(label[0])
		if v < 0 {
			return nil, fmt.Errorf("nibble label '%s' is not a hex character", label)
		}
		if ix%2 == 0 { // First label of each pair is the low nibble
			ip[net.IPv6len-1-ix/2] |= byte(v)
		} else {
			ip[net.IPv6len-1-ix/2] |= byte(v) << 4
		}
	}

	return ip, nil
}

// hexValue converts a hex character of either case to its value. Returns -1 if the byte
// is not a hex character.
func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}
