package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/resolver"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// Parse the command line. The RRL options are accepted as raw strings and fed to the
// rrl package afterwards as it does all of its own conversion and range checking.
//
// Both the standard "flag" package and spf13/pflag silently accept duplicate options,
// which mostly indicates a fumbled edit of a service file, so ParseAll is used to
// detect and reject them for single-valued options.
func (t *dnsIsReverse) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}

	fs.SetOutput(log.Out())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin URL")

	// config flags

	fs.StringVar(&t.cfg.configFile, "configfile", defaultConfigFile,
		"Configuration file defining networks and templates")

	fs.StringArrayVar(&t.cfg.listen, "listen", []string{},
		`Address to listen on for DNS queries, in addition to any 'listen'
directives in the configuration file. A bare IPv4 or IPv6
address - the port comes from --port.
`)
	fs.IntVar(&t.cfg.port, "port", defaultPort, "UDP port for all listen addresses")

	fs.BoolVar(&t.cfg.logQueriesFlag, "querylog", false,
		`Log DNS queries to Stdout, one line per query. This setting can
be toggled with SIGUSR2.`)

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", true, "Log major events to Stdout")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false,
		"Log minor events to Stdout - this implies --log-major")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Log debug events to Stdout - this implies --log-minor")

	// config Durations

	fs.DurationVar(&t.cfg.upstreamTimeout, "upstream-timeout",
		resolver.DefaultExchangeTimeout,
		"Deadline for one upstream PTR exchange before falling back to synthesis")
	fs.DurationVar(&t.cfg.reportInterval, "report", defaultReportInterval,
		"Interval between statistics reports (>= 1s)")

	// config StringVars

	fs.StringVar(&t.cfg.chroot, "chroot", "",
		"Reduce privileges with chroot() after --listen.")
	fs.StringVar(&t.cfg.group, "group", "",
		"Reduce privileges with setgid() after --listen.")
	fs.StringVar(&t.cfg.user, "user", "",
		"Reduce privileges with setuid() after --listen.")

	// config RRL StringVars - all RRL configs are set as strings so as to match the
	// interface provided by the rrl package.

	fs.StringVar(&t.cfg.rrlOptions.window, "rrl-window", "",
		"Seconds during which response rates are tracked (default 15)")
	fs.StringVar(&t.cfg.rrlOptions.slipRatio, "rrl-slip-ratio", "",
		`Ratio of rate-limited responses sent truncated rather than
dropped. 0 disables slip processing, 1 truncates every
rate-limited response and the upper limit of 10 truncates 1 in
every 10 (default 2).`)
	fs.StringVar(&t.cfg.rrlOptions.maxTableSize, "rrl-max-table-size", "",
		`Maximum number of responses to be tracked at one time. When
exceeded, rrl stops rate limiting new responses (default
100000).`)
	fs.BoolVar(&t.cfg.rrlDryRun, "rrl-dryrun", false,
		"Invoke RRL analysis but ignore recommended action")
	fs.StringVar(&t.cfg.rrlOptions.ipv4PrefixLength, "rrl-ipv4-CIDR", "",
		"Prefix length identifying an ipv4 client CIDR (default 24)")
	fs.StringVar(&t.cfg.rrlOptions.ipv6PrefixLength, "rrl-ipv6-CIDR", "",
		"Prefix length identifying an ipv6 client CIDR (default 56)")
	fs.StringVar(&t.cfg.rrlOptions.responsesInterval, "rrl-responses-psec", "",
		`Number of Answer responses allowed per second. An allowance of
0 disables Answer rate limiting (default 0).`)
	fs.StringVar(&t.cfg.rrlOptions.nxdomainsInterval, "rrl-nxdomain-psec", "",
		`Number of NXDomain responses allowed per second. An allowance
of 0 disables NXDomain rate limiting (defaults to
--rrl-responses-psec).`)
	fs.StringVar(&t.cfg.rrlOptions.errorsInterval, "rrl-errors-psec", "",
		`Number of Error responses allowed per second (excluding
NXDomain). An allowance of 0 disables Error rate limiting
(defaults to --rrl-responses-psec).`)
	fs.StringVar(&t.cfg.rrlOptions.requestsInterval, "rrl-requests-psec", "",
		`Number of requests allowed per second from a source CIDR (as
masked by --rrl-*-CIDR). An allowance of 0 disables request
rate limiting (default 0).`)

	////////////////////////////////////////

	dupes := make(map[string]bool) // True means dupes are ok

	dupes["help"] = true    // Documentation options can be duplicated because the
	dupes["version"] = true // user may be fumbling around trying to work it out.

	dupes["listen"] = true // Legitimately allowed multiple times

	fs.SetInterspersed(false)
	err := fs.ParseAll(args[1:],
		func(f *flag.Flag, v string) error {
			if tf, ok := dupes[f.Name]; ok {
				if tf {
					return fs.Set(f.Name, v)
				}
				return fmt.Errorf("Duplicate option '--%v %v' not allowed",
					f.Name, v)
			}
			dupes[f.Name] = false
			return fs.Set(f.Name, v)
		})

	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	if helpFlag {
		printUsage(fs)
		fmt.Fprintln(log.Out())
		t.cfg.printVersion()
		return parseStop
	}

	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(log.Out(), "Error:Unexpected goop on command line: '%s'\n",
			strings.Join(fs.Args(), " "))
		return parseFailed
	}

	return t.parseRRLOptions()
}

// Feed the accepted rrl strings into the rrl config which does the real validation.
// Since the rrl config starts life as a no-op, at least one of the *psec values has to
// be set for rrl to do anything in the Debit() call, which may not be obvious - so as
// soon as any --rrl option is present we insist on a functional configuration.
func (t *dnsIsReverse) parseRRLOptions() parseResult {
	if !t.setRRLOption("window", t.cfg.rrlOptions.window) {
		return parseFailed
	}
	if !t.setRRLOption("slip-ratio", t.cfg.rrlOptions.slipRatio) {
		return parseFailed
	}
	if !t.setRRLOption("max-table-size", t.cfg.rrlOptions.maxTableSize) {
		return parseFailed
	}
	if !t.setRRLOption("ipv4-CIDR", t.cfg.rrlOptions.ipv4PrefixLength) {
		return parseFailed
	}
	if !t.setRRLOption("ipv6-CIDR", t.cfg.rrlOptions.ipv6PrefixLength) {
		return parseFailed
	}
	if !t.setRRLOption("responses-per-second", t.cfg.rrlOptions.responsesInterval) {
		return parseFailed
	}
	if !t.setRRLOption("nxdomains-per-second", t.cfg.rrlOptions.nxdomainsInterval) {
		return parseFailed
	}
	if !t.setRRLOption("errors-per-second", t.cfg.rrlOptions.errorsInterval) {
		return parseFailed
	}
	if !t.setRRLOption("requests-per-second", t.cfg.rrlOptions.requestsInterval) {
		return parseFailed
	}

	if (t.cfg.rrlOptionSet || t.cfg.rrlDryRun) && !t.cfg.rrlConfig.IsActive() {
		fmt.Fprintln(log.Out(), "Error: RRL requires at least one -psec option to activate")
		return parseFailed
	}

	return parseContinue
}

func (t *dnsIsReverse) setRRLOption(name, value string) bool {
	if len(value) == 0 {
		return true
	}

	t.cfg.rrlOptionSet = true
	err := t.cfg.rrlConfig.SetValue(name, value)
	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return false
	}

	return true
}

func printUsage(fs *flag.FlagSet) {
	o := log.Out()
	fmt.Fprintln(o, "NAME")
	fmt.Fprintln(o, " ", programName,
		"-- synthesize IPv6 reverse and matching forward DNS answers from a template")
	fmt.Fprintln(o)
	fmt.Fprintln(o, "SYNOPSIS")
	fmt.Fprintln(o, "    ", programName, "-h | --help | -v | --version")
	fmt.Fprintln(o, "    ", programName, "[--configfile path] [--listen address]… [--port N]")
	fmt.Fprintln(o, `                    [--querylog] [--upstream-timeout time.Duration=2s]
                    [--user user-name] [--group group-name] [--chroot path]
                    [--log-major=true] [--log-minor] [--log-debug]
                    [--report time.Duration=1h]
                    [--rrl-dryrun]
                    [--rrl-ipv4-CIDR length] [--rrl-ipv6-CIDR length]
                    [--rrl-max-table-size size] [--rrl-window size] [--rrl-slip-ratio ratio]
                    [--rrl-errors-psec seconds] [--rrl-nxdomain-psec seconds]
                    [--rrl-requests-psec seconds] [--rrl-responses-psec seconds]`)
	fmt.Fprintln(o)
	fmt.Fprint(o, `
DESCRIPTION
     dns-is-reverse is an authoritative DNS server which answers IPv6 reverse
     (PTR) queries by instantiating a per-network hostname template with the
     host bits of the queried address, and answers the matching forward (AAAA)
     queries by inverting the same template. No reverse zone files, ever -
     which matters on SLAAC networks where hosts invent their own addresses.

     Networks, templates and optional per-network upstream resolvers come from
     the configuration file:

           network 2001:db8::/64
               resolves to test-%DIGITS%.local
               with upstream 2001:db8:53::53

     When an upstream is configured, PTR queries are first delegated to it
     (with the literal label "upstream" appended to the query name); a real
     answer from the upstream overrides synthesis.
`)
	fmt.Fprintln(o)
	fmt.Fprintln(o, "OPTIONS")
	fs.PrintDefaults()

	fmt.Fprint(o, `
SIGNALS
  SIGTERM - initiate shutdown
  SIGINT  - initiate shutdown
  SIGUSR1 - generate an immediate stats report
  SIGUSR2 - toggle --querylog
`)
}
