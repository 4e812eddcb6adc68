package dnsutil

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"
)

// HostDigitCount returns the number of hex digits needed to express the host bits of the
// supplied network. Callers are expected to have already ensured that the prefix length
// is a multiple of four.
func HostDigitCount(ipNet *net.IPNet) int {
	ones, bits := ipNet.Mask.Size()

	return (bits - ones) / 4
}

// HostDigits extracts the host bits of ip relative to ipNet and renders them as
// lowercase hex digits, zero-padded on the left to exactly HostDigitCount characters.
// An error is returned if ip does not lie within ipNet.
//
// HostDigits and FromHostDigits are exact inverses which is what makes the PTR and AAAA
// sides of synthesis agree with each other.
func HostDigits(ip net.IP, ipNet *net.IPNet) (string, error) {
	ip = ip.To16()
	if ip == nil {
		return "", fmt.Errorf("not an IPv6 address")
	}
	if !ipNet.Contains(ip) {
		return "", fmt.Errorf("%s is outside %s", ip.String(), ipNet.String())
	}

	full := hex.EncodeToString(ip) // 32 nibbles, most significant first

	return full[len(full)-HostDigitCount(ipNet):], nil
}

// FromHostDigits combines the upper bits of the network with the supplied hex digit run
// to reconstruct a complete address. The digit count must exactly match
// HostDigitCount(ipNet); digits of either case are accepted.
func FromHostDigits(digits string, ipNet *net.IPNet) (net.IP, error) {
	d := HostDigitCount(ipNet)
	if len(digits) != d {
		return nil, fmt.Errorf("have %d host digits, /%d needs exactly %d",
			len(digits), prefixLen(ipNet), d)
	}
	for ix := 0; ix < len(digits); ix++ {
		if hexValue(digits[ix]) < 0 {
			return nil, fmt.Errorf("host digits '%s' contain a non-hex character", digits)
		}
	}

	full := hex.EncodeToString(ipNet.IP.To16())
	b, err := hex.DecodeString(full[:len(full)-d] + strings.ToLower(digits))
	if err != nil { // Can't happen - both halves are already vetted hex
		return nil, err
	}

	return net.IP(b), nil
}

func prefixLen(ipNet *net.IPNet) int {
	ones, _ := ipNet.Mask.Size()

	return ones
}
