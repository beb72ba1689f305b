// Package marker keeps the per-domain freshness markers that rate-limit expiry lookups.
package marker

import (
	"context"
	"errors"

	"domainhc/internal/heartbeat"
)

// Store is the freshness cache consulted before an expiry lookup.
type Store interface {
	// IsValid reports whether a marker exists and is younger than the
	// freshness window. A stale marker is removed before returning false.
	IsValid(ctx context.Context, domain string, kind heartbeat.Kind) (bool, error)
	// Touch creates or refreshes a marker.
	Touch(ctx context.Context, domain string, kind heartbeat.Kind) error
	// Delete removes the markers matching f and returns how many were removed.
	Delete(ctx context.Context, f Filter) (int, error)
}

// Filter selects markers for deletion. Domain and Kind narrow the selection;
// All must be set to match everything.
type Filter struct {
	Domain string
	Kind   heartbeat.Kind
	All    bool
}

// ErrEmptyFilter is returned by Delete when the filter selects nothing explicitly.
var ErrEmptyFilter = errors.New("marker filter needs a domain, a kind or all")

// Validate rejects a filter that would silently match everything.
func (f Filter) Validate() error {
	if !f.All && f.Domain == "" && f.Kind == "" {
		return ErrEmptyFilter
	}
	return nil
}

func (f Filter) kinds() []heartbeat.Kind {
	if f.Kind != "" {
		return []heartbeat.Kind{f.Kind}
	}
	return heartbeat.Kinds
}
