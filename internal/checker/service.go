// Package checker runs the status and expiry checks for registered domains.
package checker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"domainhc/internal/expiry"
	"domainhc/internal/heartbeat"
	"domainhc/internal/history"
	"domainhc/internal/marker"
	"domainhc/internal/platform/metrics"
	"domainhc/internal/registrar"
	"domainhc/internal/registry"
	"domainhc/internal/whois"
	"domainhc/pkg/platform/circuit"
)

// registrarFailureThreshold consecutive upstream failures disable the
// registrar fallback for the rest of the run.
const registrarFailureThreshold = 3

// Outcome of a single check.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFail    Outcome = "fail"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
)

// Result describes one check of one domain.
type Result struct {
	Domain  string
	Kind    heartbeat.Kind
	Outcome Outcome
	Payload string
}

// Summary counts the results of a run.
type Summary struct {
	Checked int
	Failed  int
	Skipped int
	Errors  int
}

func (s *Summary) add(r Result) {
	switch r.Outcome {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFail:
		s.Checked++
		s.Failed++
	case OutcomeError:
		s.Errors++
	default:
		s.Checked++
	}
}

// Service evaluates domains one at a time.
type Service struct {
	pinger    Pinger
	prober    StatusProber
	whois     WhoisLookup
	registrar ExpiryResolver
	breaker   *circuit.Breaker
	tags      TagApplier
	markers   marker.Store
	history   history.Store
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics records check outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithHistory appends every completed expiry evaluation to h.
func WithHistory(h history.Store) Option {
	return func(s *Service) {
		s.history = h
	}
}

// WithRegistrar enables the registrar fallback.
func WithRegistrar(r ExpiryResolver) Option {
	return func(s *Service) {
		s.registrar = r
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service.
func New(pinger Pinger, prober StatusProber, whois WhoisLookup, tags TagApplier, markers marker.Store, opts ...Option) (*Service, error) {
	if pinger == nil {
		return nil, errors.New("pinger is required")
	}
	if prober == nil {
		return nil, errors.New("status prober is required")
	}
	if whois == nil {
		return nil, errors.New("whois lookup is required")
	}
	if tags == nil {
		return nil, errors.New("tag applier is required")
	}
	if markers == nil {
		return nil, errors.New("marker store is required")
	}
	s := &Service{
		pinger:  pinger,
		prober:  prober,
		whois:   whois,
		tags:    tags,
		markers: markers,
		breaker: circuit.New("registrar", circuit.WithFailureThreshold(registrarFailureThreshold)),
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckAll runs the status check and then the expiry check of each entry
// before moving to the next one. Failures never stop the run.
func (s *Service) CheckAll(ctx context.Context, entries []registry.Entry) Summary {
	var sum Summary
	for _, e := range entries {
		if e.StatusID != "" {
			sum.add(s.CheckStatus(ctx, e.Name, e.StatusID))
		}
		if e.ExpiryID != "" {
			sum.add(s.CheckExpiry(ctx, e.Name, e.ExpiryID))
		}
	}
	s.logger.InfoContext(ctx, "check run finished",
		"event", "check_run_finished",
		"domains", len(entries),
		"checked", sum.Checked,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		"errors", sum.Errors,
	)
	return sum
}

func (s *Service) ping(ctx context.Context, r Result, id string, signal heartbeat.Signal) Result {
	if err := s.pinger.Ping(ctx, id, signal, r.Payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to send ping", "domain", r.Domain, "kind", string(r.Kind), "check_id", id, "error", err)
		r.Outcome = OutcomeError
	}
	s.metrics.IncrementOutcome(string(r.Kind), string(r.Outcome))
	return r
}

// CheckStatus probes the site and pings the status check.
func (s *Service) CheckStatus(ctx context.Context, domain, checkID string) Result {
	s.logger.InfoContext(ctx, "checking status", "domain", domain)
	res := s.prober.Probe(ctx, domain)
	r := Result{Domain: domain, Kind: heartbeat.KindStatus}

	if res.Up() {
		r.Outcome = OutcomeOK
		s.logger.InfoContext(ctx, "site is up", "domain", domain, "code", res.Code)
		return s.ping(ctx, r, checkID, heartbeat.Success)
	}

	r.Outcome = OutcomeFail
	r.Payload = res.Payload()
	if res.Err != nil {
		s.logger.ErrorContext(ctx, "status probe failed", "domain", domain, "failure", res.Failure, "error", res.Err)
	} else {
		s.logger.ErrorContext(ctx, "site is down", "domain", domain, "code", res.Code)
	}
	return s.ping(ctx, r, checkID, heartbeat.Fail)
}

// CheckExpiry resolves and classifies the registration expiry and reports it,
// unless the domain is a subdomain or a fresh marker exists.
func (s *Service) CheckExpiry(ctx context.Context, domain, checkID string) Result {
	r := Result{Domain: domain, Kind: heartbeat.KindExpiry}

	if registry.IsSubdomain(domain) {
		s.logger.InfoContext(ctx, "skipping expiry lookup for subdomain", "domain", domain)
		r.Outcome = OutcomeSkipped
		r.Payload = "status=skipped_subdomain"
		return s.ping(ctx, r, checkID, heartbeat.Success)
	}

	valid, err := s.markers.IsValid(ctx, domain, heartbeat.KindExpiry)
	if err != nil {
		s.logger.WarnContext(ctx, "marker lookup failed, checking anyway", "domain", domain, "error", err)
	}
	if valid {
		s.logger.InfoContext(ctx, "expiry checked recently, skipping", "domain", domain)
		s.metrics.IncrementMarkerSkip()
		r.Outcome = OutcomeSkipped
		return r
	}

	s.logger.InfoContext(ctx, "checking expiry", "domain", domain)
	expiresAt, source, found := s.resolve(ctx, domain)

	c := expiry.Failed()
	if found {
		c = expiry.Classify(expiresAt, s.now())
		s.logger.InfoContext(ctx, "expiry date found",
			"domain", domain,
			"source", source,
			"expires_at", expiresAt.Format(time.DateOnly),
			"days_left", c.DaysLeft,
			"tier", c.Tier.Tag(),
		)
	} else {
		s.logger.ErrorContext(ctx, "failed to determine expiry date", "domain", domain)
	}

	r.Payload = c.Payload()
	signal := heartbeat.Success
	r.Outcome = OutcomeOK
	if c.Tier.Failing() {
		signal = heartbeat.Fail
		r.Outcome = OutcomeFail
	}
	r = s.ping(ctx, r, checkID, signal)

	if _, err := s.tags.Apply(ctx, checkID, c.Tier); err != nil {
		s.logger.ErrorContext(ctx, "failed to reconcile tier tag", "domain", domain, "check_id", checkID, "error", err)
	}

	if found {
		if err := s.markers.Touch(ctx, domain, heartbeat.KindExpiry); err != nil {
			s.logger.WarnContext(ctx, "failed to write marker", "domain", domain, "error", err)
		}
	}

	s.metrics.RecordTier(domain, c.Tier.Tag(), c.DaysLeft, c.HasDays)
	s.record(ctx, domain, c, expiresAt, source, found)
	return r
}

func (s *Service) record(ctx context.Context, domain string, c expiry.Classification, expiresAt time.Time, source string, found bool) {
	if s.history == nil {
		return
	}
	rec := history.Record{
		Domain:    domain,
		CheckedAt: s.now().UTC(),
		Tier:      c.Tier.Tag(),
		Source:    source,
	}
	if c.HasDays {
		days := c.DaysLeft
		rec.DaysLeft = &days
	}
	if found {
		t := expiresAt
		rec.ExpiresAt = &t
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "failed to record expiry evaluation", "domain", domain, "error", err)
	}
}

// resolve tries whois first and the registrar second.
func (s *Service) resolve(ctx context.Context, domain string) (time.Time, string, bool) {
	start := time.Now()
	text, err := s.whois.Lookup(ctx, domain)
	s.metrics.ObserveLookup("whois", time.Since(start))
	if err != nil {
		s.logWhoisError(ctx, domain, err)
	} else if t, ok := expiry.Extract(text); ok {
		return t, "whois", true
	} else {
		s.logger.DebugContext(ctx, "no expiry date in whois output", "domain", domain)
	}

	if s.registrar == nil {
		return time.Time{}, "", false
	}
	if s.breaker.IsOpen() {
		s.logger.DebugContext(ctx, "registrar fallback skipped, circuit open", "domain", domain)
		return time.Time{}, "", false
	}
	start = time.Now()
	t, err := s.registrar.Expiry(ctx, domain)
	s.metrics.ObserveLookup("registrar", time.Since(start))
	s.trackRegistrar(ctx, err)
	if err != nil {
		s.logRegistrarError(ctx, domain, err)
		return time.Time{}, "", false
	}
	return t, "registrar", true
}

// trackRegistrar feeds the breaker. Answers that prove the registrar is up
// (not found, unusable data) count as successes.
func (s *Service) trackRegistrar(ctx context.Context, err error) {
	if errors.Is(err, registrar.ErrNotConfigured) {
		return
	}
	if err == nil {
		s.breaker.RecordSuccess()
		return
	}
	switch registrar.GetCategory(err) {
	case registrar.ErrorNotFound, registrar.ErrorBadData:
		s.breaker.RecordSuccess()
	default:
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "registrar failing repeatedly, disabling fallback for this run",
				"failures", registrarFailureThreshold)
		}
	}
}

func (s *Service) logWhoisError(ctx context.Context, domain string, err error) {
	switch whois.KindOf(err) {
	case whois.FailureMissingBinary:
		s.logger.ErrorContext(ctx, "whois executable not found", "domain", domain, "error", err)
	case whois.FailureTimeout:
		s.logger.WarnContext(ctx, "whois timed out", "domain", domain, "error", err)
	default:
		s.logger.WarnContext(ctx, "whois lookup failed", "domain", domain, "error", err)
	}
}

func (s *Service) logRegistrarError(ctx context.Context, domain string, err error) {
	if errors.Is(err, registrar.ErrNotConfigured) {
		s.logger.DebugContext(ctx, "registrar fallback skipped, not configured", "domain", domain)
		return
	}
	attrs := []any{"domain", domain, "category", string(registrar.GetCategory(err)), "error", err}
	switch registrar.GetCategory(err) {
	case registrar.ErrorNotFound:
		s.logger.InfoContext(ctx, "domain not found at registrar", attrs...)
	case registrar.ErrorRateLimited, registrar.ErrorBadData:
		s.logger.WarnContext(ctx, "registrar returned no usable expiry", attrs...)
	default:
		s.logger.ErrorContext(ctx, "registrar lookup failed", attrs...)
	}
}
