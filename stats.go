package main

import (
	"fmt"
)

// qTypeStats tracks the two high activity paths: ip6.arpa PTR and template AAAA. Not
// every counter applies to both - upstream counters only ever move on the PTR side -
// but a shared struct keeps the reporting code simple.
type qTypeStats struct {
	queries int // Type specific query count
	good    int // Good replies sent back to client
	answers int // Total RRs sent in all good replies

	invertError int // PTR qName would not invert to an address
	noNetwork   int // Inverted address outside all configured networks
	noMatch     int // AAAA qName matched no template

	upstreamRelayed  int // Upstream answered and was relayed
	upstreamFallback int // Upstream declined, synthesized instead
}

func (t *qTypeStats) add(from *qTypeStats) {
	t.queries += from.queries
	t.good += from.good
	t.answers += from.answers
	t.invertError += from.invertError
	t.noNetwork += from.noNetwork
	t.noMatch += from.noMatch
	t.upstreamRelayed += from.upstreamRelayed
	t.upstreamFallback += from.upstreamFallback
}

func (t *qTypeStats) String() string {
	return fmt.Sprintf("q=%d good=%d(%d) inv=%d nonet=%d notmpl=%d up=%d/%d",
		t.queries, t.good, t.answers,
		t.invertError, t.noNetwork, t.noMatch,
		t.upstreamRelayed, t.upstreamFallback)
}

type generalStats struct {
	queries    int // Total queries
	badRequest int // No Question, wrong op-code, rejected header

	wrongClass int
	wrongType  int
	servFail   int

	rrlDrop int
	rrlSlip int
}

func (t *generalStats) add(from *generalStats) {
	t.queries += from.queries
	t.badRequest += from.badRequest
	t.wrongClass += from.wrongClass
	t.wrongType += from.wrongType
	t.servFail += from.servFail
	t.rrlDrop += from.rrlDrop
	t.rrlSlip += from.rrlSlip
}

func (t *generalStats) String() string {
	return fmt.Sprintf("q=%d/%d C=%d/%d sf=%d rrl=%d/%d",
		t.queries, t.badRequest, t.wrongClass, t.wrongType, t.servFail,
		t.rrlDrop, t.rrlSlip)
}

type serverStats struct {
	gen  generalStats
	ptr  qTypeStats
	aaaa qTypeStats
}

func (t *serverStats) add(from *serverStats) {
	t.gen.add(&from.gen)
	t.ptr.add(&from.ptr)
	t.aaaa.add(&from.aaaa)
}

func (t *serverStats) String() string {
	return "Gen: " + t.gen.String() +
		" Ptr: " + t.ptr.String() +
		" AAAA: " + t.aaaa.String()
}
