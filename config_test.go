package main

import (
	"testing"

	"github.com/dnsisreverse/dnsisreverse/log"
	"github.com/dnsisreverse/dnsisreverse/mock"
)

func TestNewConfig(t *testing.T) {
	cfg := newConfig()
	if cfg.port != defaultPort {
		t.Error("port default wrong", cfg.port)
	}
	if cfg.configFile != defaultConfigFile {
		t.Error("configFile default wrong", cfg.configFile)
	}
	if cfg.rrlConfig == nil {
		t.Error("rrlConfig should never be nil")
	}
	if cfg.rrlConfig.IsActive() {
		t.Error("rrlConfig should start as a no-op")
	}
	if len(cfg.projectURL) == 0 {
		t.Error("projectURL should never be empty")
	}
}

func TestPrintVersion(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)

	newConfig().printVersion()
	got := out.String()
	if len(got) == 0 {
		t.Error("printVersion produced nothing")
	}
}
