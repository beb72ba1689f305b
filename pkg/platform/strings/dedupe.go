// Package strings holds small slice helpers shared by the API clients.
package strings

import "strings"

// Dedupe trims each value and drops empties and repeats, keeping first-seen order.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Fields splits s around whitespace and dedupes the result.
// An empty or blank s yields nil.
func Fields(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return Dedupe(f)
}
