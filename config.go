package main

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/markdingo/rrl"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/pregen"
	"github.com/dnsisreverse/dnsisreverse/resolver"
)

const (
	programName = "dns-is-reverse"

	defaultProjectURL = "https://github.com/dnsisreverse/dnsisreverse"

	defaultConfigFile = "/etc/dns-is-reverse.conf"
	defaultPort       = 53

	// Every answer - synthesized or relayed - goes out with this TTL. It is kept
	// short because the whole premise of the server is that answers are cheap to
	// regenerate and upstream overrides should take effect quickly.
	answerTTL uint32 = 60

	defaultReportInterval = time.Hour
)

// rrlConfigStrings separates the RRL options from all the rest for easy management. All
// values stay strings because the rrl package does its own conversion and range checks.
type rrlConfigStrings struct {
	window       string // "--rrl-window"
	slipRatio    string // "--rrl-slip-ratio"
	maxTableSize string // "--rrl-max-table-size"

	ipv4PrefixLength string // "--rrl-ipv4-CIDR"
	ipv6PrefixLength string // "--rrl-ipv6-CIDR"

	responsesInterval string // "--rrl-responses-psec"
	nxdomainsInterval string // "--rrl-nxdomain-psec"
	errorsInterval    string // "--rrl-errors-psec"
	requestsInterval  string // "--rrl-requests-psec"
}

// config holds the global settings shared by all servers. Once the command line and
// config file have been digested it is never written again, so it is shared amongst
// go-routines without lock protection. The one exception is logQueriesFlag which
// SIGUSR2 toggles; a stale read there costs one log line, not correctness.
type config struct {
	projectURL string

	configFile string

	logMajorFlag   bool // Major events such as start/stop and periodic stats
	logMinorFlag   bool // Details associated with a Major event
	logDebugFlag   bool // Developer output, including upstream exchanges
	logQueriesFlag bool // One line per DNS query ("--querylog")

	port   int      // Applied to every listen address
	listen []string // "--listen" values; the config file appends its own

	upstreamTimeout time.Duration
	reportInterval  time.Duration // Zero means never

	user, group, chroot string // Privilege constraints

	rrlOptions   rrlConfigStrings
	rrlOptionSet bool // True if at least one rrl option was set
	rrlDryRun    bool // "--rrl-dryrun"
	rrlConfig    *rrl.Config
}

func newConfig() *config {
	t := &config{
		projectURL:      defaultProjectURL,
		configFile:      defaultConfigFile,
		port:            defaultPort,
		upstreamTimeout: resolver.DefaultExchangeTimeout,
		reportInterval:  defaultReportInterval,
	}
	if info, ok := debug.ReadBuildInfo(); ok && len(info.Main.Path) > 0 {
		t.projectURL = info.Main.Path // Override with embedded if present
	}

	t.rrlConfig = rrl.NewConfig() // This default config is a no-op

	return t
}

func (t *config) printVersion() {
	fmt.Fprintf(log.Out(), "Program: %s %s (%s)\n",
		programName, pregen.Version, pregen.ReleaseDate)
	fmt.Fprintf(log.Out(), "Project: %s\n", t.projectURL)
}
