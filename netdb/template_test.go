package netdb

import (
	"testing"
)

func TestCompileTemplate(t *testing.T) {
	testCases := []struct {
		source string
		ok     bool
	}{
		{"test-%DIGITS%.local", true},
		{"%DIGITS%.example", true},
		{"host-%DIGITS%", true},
		{"ip-%DIGITS%.v6.deep.example.org", true},
		{"", false},
		{"no-token.local", false},
		{"a-%DIGITS%-b-%DIGITS%.local", false},
	}

	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			tmpl, err := CompileTemplate(tc.source, 16)
			if tc.ok && err != nil {
				t.Error("Unexpected error", err)
			}
			if !tc.ok && err == nil {
				t.Error("Expected error, got", tmpl)
			}
			if err == nil && tmpl.DigitCount() != 16 {
				t.Error("DigitCount lost in compilation", tmpl.DigitCount())
			}
		})
	}
}

func TestTemplateSynthesize(t *testing.T) {
	testCases := []struct {
		source, digits, expect string
	}{
		{"test-%DIGITS%.local", "123456789abcdef0", "test-123456789abcdef0.local."},
		{"%DIGITS%.example", "00ff", "00ff.example."},
		{"host-%DIGITS%", "0a", "host-0a."},
		{"UPPER-%DIGITS%.Example.ORG", "77", "upper-77.example.org."}, // Literals lowercase
	}

	for _, tc := range testCases {
		tmpl, err := CompileTemplate(tc.source, len(tc.digits))
		if err != nil {
			t.Fatal("Setup error", tc.source, err)
		}
		if got := tmpl.Synthesize(tc.digits); got != tc.expect {
			t.Error(tc.source, "Got", got, "Expect", tc.expect)
		}
	}
}

func TestTemplateMatch(t *testing.T) {
	tmpl, err := CompileTemplate("test-%DIGITS%.local", 16)
	if err != nil {
		t.Fatal("Setup error", err)
	}

	testCases := []struct {
		qName  string
		digits string
		ok     bool
	}{
		{"test-123456789abcdef0.local.", "123456789abcdef0", true},
		{"test-123456789abcdef0.local", "123456789abcdef0", true},  // No root label
		{"TEST-123456789ABCDEF0.LOCAL.", "123456789abcdef0", true}, // Case-insensitive
		{"test-0000000000000001.local.", "0000000000000001", true},
		{"test-dead.local.", "", false},                      // Wrong digit count
		{"test-123456789abcdef0.local.extra.", "", false},    // Trailing junk
		{"xtest-123456789abcdef0.local.", "", false},         // Wrong prefix literal
		{"test-123456789abcdefg.local.", "", false},          // Non-hex residue
		{"test-123456789abcdef0.global.", "", false},         // Wrong suffix literal
		{"unrelated.example.org.", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.qName, func(t *testing.T) {
			digits, ok := tmpl.Match(tc.qName)
			if ok != tc.ok {
				t.Fatal("Match mismatch. Got", ok, "Expect", tc.ok)
			}
			if digits != tc.digits {
				t.Error("Digits. Got", digits, "Expect", tc.digits)
			}
		})
	}
}

// Empty prefix and suffix literals are both legal.
func TestTemplateMatchBareToken(t *testing.T) {
	tmpl, err := CompileTemplate("%DIGITS%.example", 4)
	if err != nil {
		t.Fatal("Setup error", err)
	}
	if digits, ok := tmpl.Match("00Ff.example."); !ok || digits != "00ff" {
		t.Error("Empty prefix literal match failed", digits, ok)
	}

	tmpl, err = CompileTemplate("node%DIGITS%", 4)
	if err != nil {
		t.Fatal("Setup error", err)
	}
	if digits, ok := tmpl.Match("nodecafe."); !ok || digits != "cafe" {
		t.Error("Empty suffix literal match failed", digits, ok)
	}
}

// Matching and synthesis must agree with each other in both directions.
func TestTemplateRoundTrip(t *testing.T) {
	tmpl, err := CompileTemplate("ip-%DIGITS%.v6.example.org", 8)
	if err != nil {
		t.Fatal("Setup error", err)
	}

	name := tmpl.Synthesize("00c0ffee")
	digits, ok := tmpl.Match(name)
	if !ok || digits != "00c0ffee" {
		t.Error("Synthesized name did not match its own template", name, digits, ok)
	}
}
