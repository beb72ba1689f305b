// Package history records expiry evaluations.
package history

import (
	"context"
	"time"
)

// Record is one completed expiry evaluation.
type Record struct {
	Domain    string
	CheckedAt time.Time
	Tier      string
	DaysLeft  *int
	ExpiresAt *time.Time
	Source    string // "whois", "registrar" or "" when no date was found
}

// Query selects records; zero values mean no filter. Results are newest first.
type Query struct {
	Domain string
	Limit  int
}

// Store persists records.
type Store interface {
	Append(ctx context.Context, r Record) error
	List(ctx context.Context, q Query) ([]Record, error)
}
