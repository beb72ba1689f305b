package expiry

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Tier is the urgency band of a domain's registration expiry.
// The temporal tiers are ordered; LookupFailed sorts after them and carries no day count.
type Tier int

const (
	Expired Tier = iota
	Under7d
	Under30d
	Under60d
	Under90d
	OK
	LookupFailed
)

type threshold struct {
	days int
	tier Tier
}

// thresholds are scanned in ascending order; the first with daysLeft <= days wins.
var thresholds = []threshold{
	{0, Expired},
	{7, Under7d},
	{30, Under30d},
	{60, Under60d},
	{90, Under90d},
}

var tierTags = map[Tier]string{
	Expired:      "expired",
	Under7d:      "expires_in_<7d",
	Under30d:     "expires_in_<30d",
	Under60d:     "expires_in_<60d",
	Under90d:     "expires_in_<90d",
	OK:           "expiry_ok",
	LookupFailed: "lookup_failed",
}

// Tag is the remote tag this tier serializes to.
func (t Tier) Tag() string {
	if tag, ok := tierTags[t]; ok {
		return tag
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) String() string { return t.Tag() }

// Failing reports whether the tier is sent as a failure signal.
func (t Tier) Failing() bool {
	return t == Expired || t == Under7d || t == LookupFailed
}

// ParseTag maps a remote tag back to its tier.
func ParseTag(tag string) (Tier, error) {
	for tier, s := range tierTags {
		if s == tag {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown expiry tag %q", tag)
}

// ManagedTags is the tag vocabulary owned by the expiry check, in tier order.
func ManagedTags() []string {
	out := make([]string, 0, len(tierTags))
	for t := Expired; t <= LookupFailed; t++ {
		out = append(out, t.Tag())
	}
	return out
}

// IsManaged reports whether tag belongs to the managed vocabulary.
func IsManaged(tag string) bool {
	_, err := ParseTag(tag)
	return err == nil
}

// Classification is the result of evaluating one domain's expiry.
type Classification struct {
	Tier     Tier
	DaysLeft int
	HasDays  bool
}

// Classify buckets an expiry instant relative to now.
// daysLeft is floored, so an expiry 12 hours in the past counts as -1.
func Classify(expiresAt, now time.Time) Classification {
	days := int(math.Floor(expiresAt.Sub(now).Hours() / 24))
	return ClassifyDays(days)
}

// ClassifyDays buckets a precomputed day count.
func ClassifyDays(daysLeft int) Classification {
	c := Classification{Tier: OK, DaysLeft: daysLeft, HasDays: true}
	for _, th := range thresholds {
		if daysLeft <= th.days {
			c.Tier = th.tier
			break
		}
	}
	return c
}

// Failed is the classification used when no expiry date could be resolved.
func Failed() Classification {
	return Classification{Tier: LookupFailed}
}

// Payload renders the ping body for this classification.
func (c Classification) Payload() string {
	var b strings.Builder
	b.WriteString("status=")
	b.WriteString(c.Tier.Tag())
	if c.HasDays {
		fmt.Fprintf(&b, "&days_left=%d", c.DaysLeft)
	}
	return b.String()
}
