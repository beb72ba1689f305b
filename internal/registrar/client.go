// Package registrar resolves domain expiry through the GoDaddy domains API.
package registrar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"domainhc/internal/expiry"
)

// Client queries a GoDaddy-compatible registrar for domain info.
type Client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a registrar client. Empty key or secret yields a client that
// answers every lookup with ErrNotConfigured.
func New(baseURL, key, secret string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.key != "" && c.secret != ""
}

type domainInfo struct {
	Expires string `json:"expires"`
}

// Expiry returns the registration expiry of domain in UTC.
func (c *Client) Expiry(ctx context.Context, domain string) (time.Time, error) {
	if !c.Configured() {
		return time.Time{}, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v1/domains/%s", c.baseURL, url.PathEscape(domain))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, newError(ErrorInternal, domain, "build request", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("sso-key %s:%s", c.key, c.secret))
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "querying registrar", "domain", domain)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return time.Time{}, newError(ErrorTimeout, domain, "request timed out", err)
		}
		return time.Time{}, newError(ErrorProviderOutage, domain, "request failed", pkgerrors.Wrap(err, "registrar: failed to execute a request"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return time.Time{}, newError(ErrorProviderOutage, domain, "read response", pkgerrors.Wrap(err, "registrar: failed to read the response"))
	}
	return parseDomainInfo(domain, resp.StatusCode, body)
}

func parseDomainInfo(domain string, status int, body []byte) (time.Time, error) {
	switch {
	case status == http.StatusNotFound:
		return time.Time{}, newError(ErrorNotFound, domain, "domain not in registrar account", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return time.Time{}, newError(ErrorAuthentication, domain, fmt.Sprintf("status %d", status), nil)
	case status == http.StatusTooManyRequests:
		return time.Time{}, newError(ErrorRateLimited, domain, "rate limited", nil)
	case status >= 500:
		return time.Time{}, newError(ErrorProviderOutage, domain, fmt.Sprintf("status %d", status), nil)
	case status != http.StatusOK:
		return time.Time{}, newError(ErrorBadData, domain, fmt.Sprintf("unexpected status %d", status), nil)
	}

	var info domainInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return time.Time{}, newError(ErrorBadData, domain, "decode response", err)
	}
	if info.Expires == "" {
		return time.Time{}, newError(ErrorBadData, domain, "response has no expires field", nil)
	}
	t, ok := expiry.ParseDate(info.Expires)
	if !ok {
		return time.Time{}, newError(ErrorBadData, domain, fmt.Sprintf("unparseable expires %q", info.Expires), nil)
	}
	return t, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
