package netdb

import (
	"net"
	"testing"
)

func mustNetwork(t *testing.T, cidr, template, upstream string) *Network {
	t.Helper()
	n, err := NewNetwork(cidr, template, upstream)
	if err != nil {
		t.Fatal("Setup error", cidr, err)
	}

	return n
}

func TestRegistryFindByAddr(t *testing.T) {
	// Overlapping on purpose: the /48 covers the /64 but is configured second, so
	// the /64 must win for addresses inside it. Configuration order, not
	// longest-prefix - if these were sorted by prefix length the answers would be
	// the same here, so the decisive case is the third network below which is more
	// specific than the first yet must never be chosen.
	reg := NewRegistry(
		mustNetwork(t, "2001:db8::/64", "a-%DIGITS%.local", ""),
		mustNetwork(t, "2001:db8::/48", "b-%DIGITS%.local", ""),
		mustNetwork(t, "2001:db8::/112", "c-%DIGITS%.local", ""),
	)

	testCases := []struct{ ip, expectTemplate string }{
		{"2001:db8::1", "a-%DIGITS%.local"},      // In all three - first configured wins
		{"2001:db8:0:1::1", "b-%DIGITS%.local"},  // Only in the /48
		{"2001:dead::1", ""},                     // In none
	}

	for _, tc := range testCases {
		t.Run(tc.ip, func(t *testing.T) {
			n := reg.FindByAddr(net.ParseIP(tc.ip))
			if len(tc.expectTemplate) == 0 {
				if n != nil {
					t.Error("Expected no match, got", n.String())
				}
				return
			}
			if n == nil {
				t.Fatal("Expected a match")
			}
			if n.Template.String() != tc.expectTemplate {
				t.Error("Got", n.Template.String(), "Expect", tc.expectTemplate)
			}
		})
	}

	if reg.Len() != 3 {
		t.Error("Len got", reg.Len())
	}
	if len(reg.Networks()) != 3 {
		t.Error("Networks got", len(reg.Networks()))
	}
}

func TestRegistryFindByName(t *testing.T) {
	// Both templates match 16-digit names under .local; first configured wins.
	reg := NewRegistry(
		mustNetwork(t, "2001:db8:1::/64", "host-%DIGITS%.local", ""),
		mustNetwork(t, "2001:db8:2::/64", "host-%DIGITS%.local", ""),
		mustNetwork(t, "2001:db8:3::/64", "other-%DIGITS%.local", ""),
	)

	n, digits := reg.FindByName("host-0000000000000042.local.")
	if n == nil {
		t.Fatal("Expected a match")
	}
	if !n.Prefix.IP.Equal(net.ParseIP("2001:db8:1::")) {
		t.Error("Ambiguous name matched the wrong network", n.String())
	}
	if digits != "0000000000000042" {
		t.Error("Digits got", digits)
	}

	n, _ = reg.FindByName("other-0000000000000042.local.")
	if n == nil || !n.Prefix.IP.Equal(net.ParseIP("2001:db8:3::")) {
		t.Error("Distinct template matched the wrong network")
	}

	n, _ = reg.FindByName("nobody.example.org.")
	if n != nil {
		t.Error("Expected no match, got", n.String())
	}
}
