// Package heartbeat talks to a healthchecks.io v3 compatible monitoring service.
package heartbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"domainhc/internal/platform/config"
	"domainhc/pkg/platform/sentinel"
)

const userAgent = "domainhc/1.0"

const (
	statusSchedule = "*/5 * * * *"
	statusGrace    = 3600
	expiryTimeout  = 7 * 24 * 3600
	expiryGrace    = 24 * 3600
)

// Client wraps the management API and the ping endpoint.
type Client struct {
	apiURL   string
	apiKey   string
	pingURL  string
	timezone string
	api      *http.Client
	ping     *http.Client
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client from the heartbeat configuration.
func New(cfg config.Heartbeat, opts ...Option) *Client {
	c := &Client{
		apiURL:   strings.TrimRight(cfg.APIURL, "/") + "/",
		apiKey:   cfg.APIKey,
		pingURL:  strings.TrimRight(cfg.PingURL, "/"),
		timezone: cfg.Timezone,
		api:      &http.Client{Timeout: cfg.APITimeout},
		ping:     &http.Client{Timeout: cfg.PingTimeout},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createRequest struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Unique   []string `json:"unique"`
	Tags     string   `json:"tags"`
	Timezone string   `json:"tz,omitempty"`
	Schedule string   `json:"schedule,omitempty"`
	Timeout  int      `json:"timeout,omitempty"`
	Grace    int      `json:"grace,omitempty"`
}

// CreateCheck creates the check of the given kind for a domain, or returns the
// existing one with the same slug.
func (c *Client) CreateCheck(ctx context.Context, name string, kind Kind) (Check, error) {
	payload := createRequest{
		Name:   name,
		Slug:   Slug(name, kind),
		Unique: []string{"slug"},
		Tags:   string(kind),
	}
	switch kind {
	case KindStatus:
		payload.Timezone = c.timezone
		payload.Schedule = statusSchedule
		payload.Grace = statusGrace
	case KindExpiry:
		payload.Timeout = expiryTimeout
		payload.Grace = expiryGrace
	default:
		return Check{}, fmt.Errorf("unknown check kind %q", kind)
	}

	var check Check
	if err := c.do(ctx, http.MethodPost, "checks/", payload, &check); err != nil {
		return Check{}, errors.Wrapf(err, "create %s check for %s", kind, name)
	}
	check.normalize()
	if check.ID == "" {
		return Check{}, errors.Wrapf(sentinel.ErrInvalidState, "create %s check for %s: no id in response", kind, name)
	}
	return check, nil
}

// DeleteCheck removes a check.
func (c *Client) DeleteCheck(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "checks/"+id, nil, nil); err != nil {
		return errors.Wrapf(err, "delete check %s", id)
	}
	return nil
}

// ListChecks returns every check visible to the API key.
func (c *Client) ListChecks(ctx context.Context) ([]Check, error) {
	var resp struct {
		Checks []Check `json:"checks"`
	}
	if err := c.do(ctx, http.MethodGet, "checks/", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "list checks")
	}
	for i := range resp.Checks {
		resp.Checks[i].normalize()
	}
	return resp.Checks, nil
}

// GetCheck fetches one check. A missing check yields sentinel.ErrNotFound.
func (c *Client) GetCheck(ctx context.Context, id string) (Check, error) {
	var check Check
	if err := c.do(ctx, http.MethodGet, "checks/"+id, nil, &check); err != nil {
		return Check{}, errors.Wrapf(err, "get check %s", id)
	}
	check.normalize()
	if check.ID == "" {
		check.ID = id
	}
	return check, nil
}

// UpdateTags replaces the tag set of a check and verifies the service stored it.
func (c *Client) UpdateTags(ctx context.Context, id string, tags []string) error {
	want := JoinTags(tags)
	var check Check
	if err := c.do(ctx, http.MethodPost, "checks/"+id, map[string]string{"tags": want}, &check); err != nil {
		return errors.Wrapf(err, "update tags of %s", id)
	}
	got := SplitTags(check.RawTags)
	if !slices.Equal(slices.Sorted(slices.Values(got)), slices.Sorted(slices.Values(tags))) {
		return errors.Wrapf(sentinel.ErrInvalidState, "update tags of %s: service returned %q, want %q", id, check.RawTags, want)
	}
	return nil
}

// Ping reports a result for a check. Without payload and signal it is a GET,
// otherwise a form encoded POST.
func (c *Client) Ping(ctx context.Context, id string, signal Signal, payload string) error {
	endpoint := fmt.Sprintf("%s/%s%s", c.pingURL, id, signal)

	method := http.MethodGet
	var body io.Reader
	if payload != "" || signal != Success {
		method = http.MethodPost
		body = strings.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return errors.Wrap(err, "ping: failed to build a request")
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.ping.Do(req)
	if err != nil {
		return errors.Wrapf(sentinel.ErrUnavailable, "ping %s: %v", id, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, "ping "+id)
	}
	c.logger.DebugContext(ctx, "ping sent", "check_id", id, "signal", string(signal), "payload", payload)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build a request")
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return errors.Wrapf(sentinel.ErrUnavailable, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return errors.Wrap(err, "failed to read the response")
	}
	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, fmt.Sprintf("%s %s: %s", method, path, strings.TrimSpace(string(raw))))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(sentinel.ErrInvalidState, "decode response: %v", err)
	}
	return nil
}

func statusError(code int, msg string) error {
	switch {
	case code == http.StatusNotFound:
		return errors.Wrapf(sentinel.ErrNotFound, "%s: status %d", msg, code)
	case code >= 500:
		return errors.Wrapf(sentinel.ErrUnavailable, "%s: status %d", msg, code)
	default:
		return fmt.Errorf("%s: status %d", msg, code)
	}
}
