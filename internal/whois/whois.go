// Package whois runs the local whois executable.
package whois

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// FailureKind distinguishes the ways a lookup can fail.
type FailureKind string

const (
	FailureMissingBinary FailureKind = "missing_binary"
	FailureExit          FailureKind = "non_zero_exit"
	FailureTimeout       FailureKind = "timeout"
	FailureStart         FailureKind = "start"
)

// Error describes a failed whois invocation.
type Error struct {
	Kind     FailureKind
	Domain   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case FailureExit:
		return fmt.Sprintf("whois %s exited with code %d: %s", e.Domain, e.ExitCode, e.Stderr)
	case FailureTimeout:
		return fmt.Sprintf("whois %s timed out", e.Domain)
	default:
		return fmt.Sprintf("whois %s [%s]: %v", e.Domain, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" when err is not a whois error.
func KindOf(err error) FailureKind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// Runner invokes the whois binary with the domain as its only argument.
type Runner struct {
	binary  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMinInterval spaces consecutive lookups at least d apart.
func WithMinInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner. An empty binary defaults to "whois".
func New(binary string, timeout time.Duration, opts ...Option) *Runner {
	if binary == "" {
		binary = "whois"
	}
	r := &Runner{
		binary:  binary,
		timeout: timeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the raw whois text for domain.
func (r *Runner) Lookup(ctx context.Context, domain string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", &Error{Kind: FailureTimeout, Domain: domain, Err: err}
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, domain)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	r.logger.DebugContext(ctx, "running whois", "domain", domain, "binary", r.binary)
	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &Error{Kind: FailureTimeout, Domain: domain, Err: ctx.Err()}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "", &Error{Kind: FailureMissingBinary, Domain: domain, Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", &Error{
			Kind:     FailureExit,
			Domain:   domain,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return "", &Error{Kind: FailureStart, Domain: domain, Err: err}
}
