package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/osutil"
	"github.com/dnsisreverse/dnsisreverse/pregen"
)

// Run the server loop checking for signals and stats report events.
func (t *dnsIsReverse) Run() {
	t.startTime = time.Now()
	t.statsTime = t.startTime

	var signal os.Signal
	osutil.SignalNotify(t.sig) // Register interest in signals

	for _, n := range t.registry.Networks() {
		log.Major("Serving: ", n.String())
	}

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Ready")

	// Conditionally create the periodic report channel. Fortunately select purposely
	// doesn't mind a nil channel, which is very convenient.
	var reportChannel <-chan time.Time
	if t.cfg.reportInterval > 0 {
		reportTicker := time.NewTicker(t.cfg.reportInterval)
		reportChannel = reportTicker.C
		defer reportTicker.Stop()
	}

	stopFlag := false
	for !stopFlag {
		select {
		case <-reportChannel:
			t.statsReport(true)

		case signal = <-t.sig:
			switch {
			case osutil.IsSignalTERM(signal), osutil.IsSignalINT(signal):
				stopFlag = true

			case osutil.IsSignalUSR1(signal): // USR1 produces a status report
				t.statsReport(false)

			case osutil.IsSignalUSR2(signal): // USR2 toggles --querylog
				t.cfg.logQueriesFlag = !t.cfg.logQueriesFlag // Not race-safe, but oh well.
				log.Majorf("--querylog=%t", t.cfg.logQueriesFlag)

			default:
				log.Majorf("Signal '%s' reserved for future use", signal)
			}
		}
	}

	log.Majorf("Signal '%s' initiates shutdown", signal)
	close(t.done)   // Tell companion go-routines
	t.stopServers() // Tell servers and wait until they exit
	log.Minor("All Listen servers stopped")
}

var zeroStats serverStats

// Writes summary stats to Stdout.
func (t *dnsIsReverse) statsReport(resetCounters bool) {
	var totals serverStats
	for _, srv := range t.servers {
		srv.statsMu.Lock() // Take writer lock in case resetCounters is true
		totals.add(&srv.stats)
		if resetCounters {
			srv.stats = zeroStats
		}
		srv.statsMu.Unlock()
	}

	now := time.Now()
	upDuration := now.Sub(t.startTime).Round(time.Second)
	statsDuration := now.Sub(t.statsTime).Round(time.Second)
	if resetCounters {
		t.statsTime = now
	}

	// Version is included with uptime so stats parsers know exactly what format to
	// expect as the output evolves across releases.

	log.Major("Stats: Uptime ", upDuration,
		" Stats Time: ", statsDuration, " ", pregen.Version)
	log.Major("Stats: Total ", totals.gen.String())
	log.Major("Stats: Ptr ", totals.ptr.String())
	log.Major("Stats: AAAA ", totals.aaaa.String())
}
