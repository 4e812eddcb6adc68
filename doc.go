// This file exists so that "go doc github.com/dnsisreverse/dnsisreverse" displays
// something useful.

/*

dns-is-reverse is a tiny authoritative DNS server which synthesizes IPv6 reverse (PTR)
answers and the matching forward (AAAA) answers on the fly from a hostname template,
making reverse zone files unnecessary for SLAAC-style IPv6 networks.

Each configured network names a template containing the %DIGITS% token. A PTR query for
an address inside the network answers with the template instantiated with the host bits
as hex digits, and an AAAA query for such a name answers with the address those digits
denote. Optionally, a per-network upstream resolver is consulted first for PTR queries
so that real, administratively assigned names override the synthetic ones.

*/
package main
