package main

import (
	"fmt"
	"net"
	"time"
)

// Check everything that could likely be a typo or usage error. Mostly checked in the
// order presented by the flag package. The config file gets its own checking when it is
// loaded.
func (t *dnsIsReverse) ValidateCommandLineOptions() error {
	if t.cfg.port < 1 || t.cfg.port > 65535 {
		return fmt.Errorf("--port %d is not a valid UDP port", t.cfg.port)
	}

	for _, addr := range t.cfg.listen {
		if net.ParseIP(addr) == nil {
			return fmt.Errorf("--listen '%s' is not an IP address", addr)
		}
	}

	if t.cfg.upstreamTimeout <= 0 {
		return fmt.Errorf("--upstream-timeout must be greater than zero")
	}

	if t.cfg.reportInterval < time.Second {
		return fmt.Errorf("--report must be at least 1 second")
	}

	return nil
}
