package expiry

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// labelPatterns are tried in order. Each captures a candidate date value.
var labelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Registry Expiry Date|Expiration Date|Expiry Date|paid-till):\s*(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z)`),
	regexp.MustCompile(`(?i)(?:expires|Expiry Date):\s*(\d{1,2}-[A-Za-z]{3}-\d{4})`),
	regexp.MustCompile(`(?i)(?:Registry Expiry Date|Expiration Date|Expiry Date|paid-till|Expiration Time):\s*(\S+)`),
	regexp.MustCompile(`(?i)(?:Registry Expiry Date|Expiration Date|Expiry Date|expires|Expires On|Renewal Date):\s*(\d{1,2} [A-Za-z]+ \d{4})`),
}

// layouts are tried in order against a captured value. Values without a zone are UTC.
var layouts = []string{
	time.RFC3339,
	"2006.1.2",
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"20060102",
	"2006.01.02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

var epochPattern = regexp.MustCompile(`^\d{10}(?:\d{3})?$`)

// Extract finds the registration expiry in raw WHOIS text.
// It returns false when no labelled value parses as a date.
func Extract(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}
	for _, pattern := range labelPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, ok := ParseDate(m[1]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a single date value as found in WHOIS output or a registrar response.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if epochPattern.MatchString(value) {
		secs, err := strconv.ParseInt(value[:10], 10, 64)
		if err == nil {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
