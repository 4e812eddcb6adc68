package netdb

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/dnsisreverse/dnsisreverse/dnsutil"
)

// DigitsToken is the placeholder an operator writes into a hostname template. It is
// replaced with the hex rendering of the host bits when a PTR is synthesized, and
// matched against the same digit run when an address is recovered from an AAAA qName.
const DigitsToken = "%DIGITS%"

// Template is the compiled form of a hostname template. Compilation pins the literal
// text either side of the token, lowercased, plus the exact number of hex digits the
// owning network substitutes for the token. Both literals may be empty and may span
// label boundaries - "host-%DIGITS%.v6.example" and "%DIGITS%.example" are equally
// acceptable. Templates are written without the trailing root dot; Synthesize adds it.
type Template struct {
	source     string // As written in the config file
	prefix     string // Literal before the token, lowercased
	suffix     string // Literal after the token, lowercased
	digitCount int
}

// CompileTemplate validates the template text against the owning network's digit count
// and returns the compiled form. The text must contain the token exactly once and the
// instantiated result must be a legal domain name.
func CompileTemplate(source string, digitCount int) (*Template, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("template is empty")
	}
	switch strings.Count(source, DigitsToken) {
	case 0:
		return nil, fmt.Errorf("template '%s' does not contain %s", source, DigitsToken)
	case 1:
	default:
		return nil, fmt.Errorf("template '%s' contains %s more than once",
			source, DigitsToken)
	}

	tokenIx := strings.Index(source, DigitsToken)
	t := &Template{
		source:     source,
		prefix:     strings.ToLower(source[:tokenIx]),
		suffix:     strings.ToLower(source[tokenIx+len(DigitsToken):]),
		digitCount: digitCount,
	}

	probe := t.Synthesize(strings.Repeat("0", digitCount))
	if _, ok := dns.IsDomainName(probe); !ok {
		return nil, fmt.Errorf("template '%s' does not instantiate to a valid domain name",
			source)
	}

	return t, nil
}

// Synthesize produces the canonical (trailing dot) name formed by substituting the digit
// run into the template. The caller supplies digits of the width the template was
// compiled for.
func (t *Template) Synthesize(digits string) string {
	return t.prefix + digits + t.suffix + "."
}

// Match determines whether qName is an instantiation of this template and if so returns
// the digit run, lowercased. Literal comparison is case-insensitive and the residue
// between the literals must be exactly digitCount hex characters - again of either case,
// as some resolvers perturb qName case on the wire.
func (t *Template) Match(qName string) (digits string, ok bool) {
	qName = dnsutil.ChompCanonicalName(qName)
	if len(qName) != len(t.prefix)+t.digitCount+len(t.suffix) {
		return "", false
	}
	if qName[:len(t.prefix)] != t.prefix { // Already lowercased by Chomp
		return "", false
	}
	if qName[len(qName)-len(t.suffix):] != t.suffix {
		return "", false
	}

	digits = qName[len(t.prefix) : len(t.prefix)+t.digitCount]
	for ix := 0; ix < len(digits); ix++ {
		if !isHexDigit(digits[ix]) {
			return "", false
		}
	}

	return digits, true
}

// DigitCount returns the number of hex digits this template substitutes for the token.
func (t *Template) DigitCount() int {
	return t.digitCount
}

func (t *Template) String() string {
	return t.source
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
