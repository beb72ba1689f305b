package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const probeUserAgent = "domainhc/1.0"

// Transport failure labels reported in the status payload.
const (
	FailureTimeout    = "timeout"
	FailureTLS        = "ssl_error"
	FailureConnection = "connection_error"
	FailureRequest    = "request_error"
)

// ProbeResult is the outcome of one reachability probe. Failure is set when
// no HTTP response was received.
type ProbeResult struct {
	Code    int
	Failure string
	Err     error
}

// Up reports whether the site answered with a 2xx or 3xx status.
func (r ProbeResult) Up() bool {
	return r.Failure == "" && r.Code >= 200 && r.Code < 400
}

// Payload is the ping body for a failed probe.
func (r ProbeResult) Payload() string {
	if r.Failure != "" {
		return "status=" + r.Failure
	}
	return fmt.Sprintf("status=%d", r.Code)
}

// HTTPProbe fetches https://<domain> following redirects.
type HTTPProbe struct {
	client *http.Client
	url    func(domain string) string
}

// ProbeOption configures an HTTPProbe.
type ProbeOption func(*HTTPProbe)

// WithProbeClient replaces the HTTP client. Its timeout is kept as is.
func WithProbeClient(c *http.Client) ProbeOption {
	return func(p *HTTPProbe) {
		p.client = c
	}
}

// WithProbeURL overrides how a domain maps to the probed URL.
func WithProbeURL(fn func(domain string) string) ProbeOption {
	return func(p *HTTPProbe) {
		p.url = fn
	}
}

// NewHTTPProbe creates a probe with the given overall timeout.
func NewHTTPProbe(timeout time.Duration, opts ...ProbeOption) *HTTPProbe {
	p := &HTTPProbe{
		client: &http.Client{Timeout: timeout},
		url:    func(domain string) string { return "https://" + domain },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HTTPProbe) Probe(ctx context.Context, domain string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url(domain), nil)
	if err != nil {
		return ProbeResult{Failure: FailureRequest, Err: err}
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return ProbeResult{Failure: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return ProbeResult{Code: resp.StatusCode}
}

func classifyTransport(err error) string {
	var (
		timeout      interface{ Timeout() bool }
		verifyErr    *tls.CertificateVerificationError
		unknownAuth  x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidCert  x509.CertificateInvalidError
		recordHeader tls.RecordHeaderError
		alert        tls.AlertError
		opErr        *net.OpError
		dnsErr       *net.DNSError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout) && timeout.Timeout():
		return FailureTimeout
	case errors.As(err, &verifyErr), errors.As(err, &unknownAuth), errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert), errors.As(err, &recordHeader), errors.As(err, &alert):
		return FailureTLS
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		return FailureConnection
	default:
		return FailureRequest
	}
}
