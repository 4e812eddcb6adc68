package main

import (
	"strings"
	"testing"
	"time"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/mock"
	"github.com/dnsisreverse/dnsisreverse/netdb"
)

func TestStatsReport(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	log.SetLevel(log.MajorLevel)

	app := newDnsIsReverse(nil, nil)
	app.registry = netdb.NewRegistry()
	app.startTime = time.Now()
	app.statsTime = app.startTime

	srv := newServer(app.cfg, app.registry, nil, nil, "", "")
	srv.stats.gen.queries = 5
	srv.stats.ptr.queries = 3
	app.servers = append(app.servers, srv)

	app.statsReport(true)

	got := out.String()
	for _, want := range []string{"Stats: Uptime", "Stats: Total q=5/", "Stats: Ptr q=3"} {
		if !strings.Contains(got, want) {
			t.Error("Report missing", want, "in", got)
		}
	}

	// resetCounters must zero the per-server stats
	if srv.stats.gen.queries != 0 {
		t.Error("Stats were not reset", srv.stats.gen.queries)
	}

	out.Reset()
	app.statsReport(false)
	if srv.stats.gen.queries != 0 || !strings.Contains(out.String(), "Stats: Total q=0/") {
		t.Error("Second report wrong", out.String())
	}
}
