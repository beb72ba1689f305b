package heartbeat

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	platformstrings "domainhc/pkg/platform/strings"
)

// Kind distinguishes the two checks kept per domain.
type Kind string

const (
	KindStatus Kind = "status"
	KindExpiry Kind = "expiry"
)

// Kinds lists every check kind in display order.
var Kinds = []Kind{KindStatus, KindExpiry}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStatus, KindExpiry:
		return Kind(s), true
	}
	return "", false
}

// Signal selects the ping endpoint.
type Signal string

const (
	Success Signal = ""
	Fail    Signal = "/fail"
)

// Check is a remote check as returned by the management API.
type Check struct {
	ID        string     `json:"-"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Tags      []string   `json:"-"`
	Status    string     `json:"status"`
	LastPing  *time.Time `json:"last_ping"`
	PingURL   string     `json:"ping_url"`
	UpdateURL string     `json:"update_url"`
	UUID      string     `json:"uuid"`
	RawTags   string     `json:"tags"`
}

// HasTag reports whether tag is present on the check.
func (c Check) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// normalize fills the derived fields after decoding.
func (c *Check) normalize() {
	c.Tags = SplitTags(c.RawTags)
	c.ID = idFromURL(c.UpdateURL)
	if c.ID == "" {
		c.ID = idFromURL(c.PingURL)
	}
	if c.ID == "" {
		if _, err := uuid.Parse(c.UUID); err == nil {
			c.ID = c.UUID
		}
	}
}

// SplitTags splits the space delimited wire form, dropping repeats.
func SplitTags(raw string) []string {
	return platformstrings.Fields(raw)
}

// JoinTags renders tags in wire form.
func JoinTags(tags []string) string {
	return strings.Join(tags, " ")
}

// idFromURL returns the last path segment that parses as a check uuid.
func idFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if _, err := uuid.Parse(segments[i]); err == nil {
			return segments[i]
		}
	}
	return ""
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the unique slug for a domain check of the given kind.
func Slug(name string, kind Kind) string {
	base := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
	return base + "-" + string(kind)
}
