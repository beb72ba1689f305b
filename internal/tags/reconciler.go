// Package tags keeps exactly one expiry tier tag on a remote check.
package tags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"domainhc/internal/expiry"
	"domainhc/internal/heartbeat"
)

// CheckAPI is the subset of the heartbeat client the reconciler needs.
type CheckAPI interface {
	GetCheck(ctx context.Context, id string) (heartbeat.Check, error)
	UpdateTags(ctx context.Context, id string, tags []string) error
}

// Reconcile returns current minus every managed tier tag plus desired, sorted.
// changed is false when desired is already the only managed tag present.
func Reconcile(current []string, desired expiry.Tier) (next []string, changed bool) {
	want := desired.Tag()
	hasDesired := false
	otherManaged := false

	next = make([]string, 0, len(current)+1)
	for _, tag := range current {
		switch {
		case tag == want:
			hasDesired = true
		case expiry.IsManaged(tag):
			otherManaged = true
		default:
			next = append(next, tag)
		}
	}
	next = append(next, want)
	slices.Sort(next)
	next = slices.Compact(next)

	return next, !hasDesired || otherManaged
}

// Reconciler applies Reconcile against the remote check.
type Reconciler struct {
	api    CheckAPI
	logger *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler.
func New(api CheckAPI, opts ...Option) (*Reconciler, error) {
	if api == nil {
		return nil, errors.New("check api is required")
	}
	r := &Reconciler{api: api, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Apply makes desired the only tier tag on check id. It reports whether an
// update was sent.
func (r *Reconciler) Apply(ctx context.Context, id string, desired expiry.Tier) (bool, error) {
	check, err := r.api.GetCheck(ctx, id)
	if err != nil {
		return false, fmt.Errorf("fetch tags of %s: %w", id, err)
	}

	next, changed := Reconcile(check.Tags, desired)
	if !changed {
		r.logger.DebugContext(ctx, "tier tag already current", "check_id", id, "tag", desired.Tag())
		return false, nil
	}
	if err := r.api.UpdateTags(ctx, id, next); err != nil {
		return false, fmt.Errorf("update tags of %s: %w", id, err)
	}
	r.logger.InfoContext(ctx, "tier tag updated",
		"event", "tags_reconciled",
		"check_id", id,
		"name", check.Name,
		"tag", desired.Tag(),
	)
	return true, nil
}
