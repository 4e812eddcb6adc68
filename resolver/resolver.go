package resolver

import (
	"context"
	"time"
)

// DefaultExchangeTimeout bounds the single upstream round-trip. Upstreams are expected
// to be operator-local so a couple of seconds is generous; a slow upstream only delays
// the synthesized fallback.
const DefaultExchangeTimeout = 2 * time.Second

// Resolver is the contract between the query-processing code and the upstream
// delegation sub-protocol. Implementations must be safe for concurrent use as every
// in-flight PTR query may hold its own exchange.
type Resolver interface {

	// ResolvePtr sends a single PTR question for qName to server (a host:port) and
	// returns the PTR targets from the answer section. A nil or empty slice with a
	// nil error means the upstream answered but had nothing useful - callers treat
	// that exactly like an error and synthesize locally.
	//
	// The exchange is bounded by the resolver's timeout; cancellation of ctx cuts
	// it shorter still.
	ResolvePtr(ctx context.Context, server, qName string) ([]string, error)
}

type resolver struct {
	exchangeTimeout time.Duration
}

// NewResolver creates a ready-to-use Resolver. A zero or negative timeout selects
// DefaultExchangeTimeout.
func NewResolver(exchangeTimeout time.Duration) *resolver {
	if exchangeTimeout <= 0 {
		exchangeTimeout = DefaultExchangeTimeout
	}

	return &resolver{exchangeTimeout: exchangeTimeout}
}
