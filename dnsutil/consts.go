package dnsutil

const (
	V6Suffix = ".ip6.arpa." // Leading '.' matters as callers label-match with HasSuffix

	UDPNetwork = "udp"
	TCPNetwork = "tcp"

	MaxUDPSize uint16 = 512 // Classic RFC 1035 UDP budget - we never negotiate larger
)
