package dnsutil

import (
	"net"
	"testing"
)

func mustCIDR(t *testing.T, cidr string) *net.IPNet {
	t.Helper()
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		t.Fatal("Setup error", cidr, err)
	}

	return ipNet
}

func TestHostDigits(t *testing.T) {
	testCases := []struct {
		ip, cidr string
		expect   string // "!" means an error is expected
	}{
		{"2001:db8::1234:5678:9abc:def0", "2001:db8::/64", "123456789abcdef0"},
		{"2001:db8::1234:5678:9abc:def0", "2001:db8::/32", "00000000123456789abcdef0"},
		{"2001:db8::1", "2001:db8::/64", "0000000000000001"},
		{"2001:db8::", "2001:db8::/64", "0000000000000000"},
		{"2001:db8:0:0:8000::", "2001:db8::/60", "08000000000000000"},
		{"2001:db8::1", "2001:db8::1/128", ""}, // /128 holds exactly one address...
		{"2001:dead::1", "2001:db8::/64", "!"}, // Out of network
		{"fe80::1", "2001:db8::/64", "!"},
	}

	for _, tc := range testCases {
		t.Run(tc.ip+"-"+tc.cidr, func(t *testing.T) {
			ipNet := mustCIDR(t, tc.cidr)
			got, err := HostDigits(net.ParseIP(tc.ip), ipNet)
			if tc.expect == "!" {
				if err == nil {
					t.Error("Expected an error, got", got)
				}
				return
			}
			if err != nil {
				t.Fatal("Unexpected error", err)
			}
			if got != tc.expect {
				t.Error("Got", got, "Expect", tc.expect)
			}
			if len(got) != HostDigitCount(ipNet) {
				t.Error("Width", len(got), "disagrees with HostDigitCount",
					HostDigitCount(ipNet))
			}
		})
	}
}

func TestFromHostDigits(t *testing.T) {
	testCases := []struct {
		digits, cidr string
		expect       string // Empty means an error is expected
	}{
		{"123456789abcdef0", "2001:db8::/64", "2001:db8::1234:5678:9abc:def0"},
		{"123456789ABCDEF0", "2001:db8::/64", "2001:db8::1234:5678:9abc:def0"}, // Either case
		{"0000000000000000", "2001:db8::/64", "2001:db8::"},
		{"00000000123456789abcdef0", "2001:db8::/32", "2001:db8::1234:5678:9abc:def0"},
		{"", "2001:db8::1/128", "2001:db8::1"},
		{"dead", "2001:db8::/64", ""},              // Too few digits
		{"0123456789abcdef0", "2001:db8::/64", ""}, // Too many digits
		{"123456789abcdefg", "2001:db8::/64", ""},  // Non-hex
	}

	for _, tc := range testCases {
		t.Run(tc.digits+"-"+tc.cidr, func(t *testing.T) {
			ipNet := mustCIDR(t, tc.cidr)
			got, err := FromHostDigits(tc.digits, ipNet)
			if len(tc.expect) == 0 {
				if err == nil {
					t.Error("Expected an error, got", got.String())
				}
				return
			}
			if err != nil {
				t.Fatal("Unexpected error", err)
			}
			if !got.Equal(net.ParseIP(tc.expect)) {
				t.Error("Got", got.String(), "Expect", tc.expect)
			}
		})
	}
}

// The law that makes the whole synthesis scheme hang together: extracting and
// re-injecting host digits is the identity for every address inside the network.
func TestHostDigitsRoundTrip(t *testing.T) {
	for _, tc := range []struct{ ip, cidr string }{
		{"2001:db8::1234:5678:9abc:def0", "2001:db8::/64"},
		{"2001:db8::1234:5678:9abc:def0", "2001:db8::/32"},
		{"fd00::9", "fd00::/8"},
		{"2001:db8:1:2:3:4:5:6", "2001:db8:1::/48"},
	} {
		ipNet := mustCIDR(t, tc.cidr)
		ip := net.ParseIP(tc.ip)
		digits, err := HostDigits(ip, ipNet)
		if err != nil {
			t.Fatal(tc.ip, err)
		}
		back, err := FromHostDigits(digits, ipNet)
		if err != nil {
			t.Fatal(tc.ip, err)
		}
		if !back.Equal(ip) {
			t.Error(tc.ip, "round trip mismatch", back.String())
		}
	}
}
