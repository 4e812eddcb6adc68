package main

import (
	"strings"
	"testing"
	"time"
)

func TestValidateCommandLineOptions(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*config)
		errContains string // Empty means valid
	}{
		{"Defaults", func(c *config) {}, ""},
		{"Good listen", func(c *config) { c.listen = []string{"127.0.0.1", "::1"} }, ""},
		{"Port zero", func(c *config) { c.port = 0 }, "--port"},
		{"Port too big", func(c *config) { c.port = 70000 }, "--port"},
		{"Bad listen", func(c *config) { c.listen = []string{"nonsense"} }, "--listen"},
		{"Listen with port", func(c *config) { c.listen = []string{"127.0.0.1:53"} },
			"--listen"}, // Port comes from --port, not the address
		{"Zero upstream timeout", func(c *config) { c.upstreamTimeout = 0 },
			"--upstream-timeout"},
		{"Tiny report", func(c *config) { c.reportInterval = time.Millisecond },
			"--report"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newDnsIsReverse(nil, nil)
			tc.mutate(app.cfg)
			err := app.ValidateCommandLineOptions()
			if len(tc.errContains) == 0 {
				if err != nil {
					t.Error("Unexpected error", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tc.errContains) {
				t.Error("Error text. Got", err.Error(),
					"Expect substring", tc.errContains)
			}
		})
	}
}
