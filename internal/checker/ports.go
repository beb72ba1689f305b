package checker

import (
	"context"
	"time"

	"domainhc/internal/expiry"
	"domainhc/internal/heartbeat"
)

// Pinger delivers a result to the heartbeat service.
type Pinger interface {
	Ping(ctx context.Context, id string, signal heartbeat.Signal, payload string) error
}

// StatusProber checks whether a site is reachable.
type StatusProber interface {
	Probe(ctx context.Context, domain string) ProbeResult
}

// WhoisLookup returns raw whois text for a domain.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (string, error)
}

// ExpiryResolver returns the registration expiry from a structured source.
type ExpiryResolver interface {
	Expiry(ctx context.Context, domain string) (time.Time, error)
}

// TagApplier keeps the tier tag of an expiry check current.
type TagApplier interface {
	Apply(ctx context.Context, id string, desired expiry.Tier) (bool, error)
}
