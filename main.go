package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/markdingo/rrl"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/pregen"
	"github.com/dnsisreverse/dnsisreverse/resolver"
)

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

//////////////////////////////////////////////////////////////////////

func main() {
	app := newDnsIsReverse(nil, nil)
	switch app.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package

	if app.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if app.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if app.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Fprintln(log.Out(),
		programName, pregen.Version, "Starting with Log Level:", log.Level())

	// Validate everything that is likely a typo or usage error
	err := app.ValidateCommandLineOptions()
	if err != nil {
		fatal(err)
	}

	// The config file supplies the networks we answer for; refuse to start on any
	// problem there rather than serve a partial configuration.
	err = app.loadConfigFile(app.cfg.configFile)
	if err != nil {
		fatal(err)
	}

	if app.registry.Len() == 0 {
		fatal(nil, "No networks defined in", app.cfg.configFile)
	}

	if app.resolver == nil {
		app.resolver = resolver.NewResolver(app.cfg.upstreamTimeout)
	}

	if app.cfg.rrlOptionSet || app.cfg.rrlDryRun {
		app.rrlHandler = rrl.NewRRL(app.cfg.rrlConfig)
	}

	app.startServers() // Only returns if all listens succeed

	app.Constrain() // setuid/setgid/chroot

	app.Run()

	app.statsReport(false) // Final stats - depending on log level

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Exiting after",
		time.Now().Sub(app.startTime).Round(time.Second))
}
