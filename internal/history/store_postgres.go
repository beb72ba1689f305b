package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS expiry_evaluations (
	id          BIGSERIAL PRIMARY KEY,
	domain      TEXT        NOT NULL,
	checked_at  TIMESTAMPTZ NOT NULL,
	tier        TEXT        NOT NULL,
	days_left   INTEGER,
	expires_at  TIMESTAMPTZ,
	source      TEXT        NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS expiry_evaluations_domain_checked_at
	ON expiry_evaluations (domain, checked_at DESC);
`

// PostgresStore persists records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Open connects with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expiry_evaluations (domain, checked_at, tier, days_left, expires_at, source)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.Domain, r.CheckedAt.UTC(), r.Tier, nullInt(r.DaysLeft), nullTime(r.ExpiresAt), r.Source,
	)
	if err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, q Query) ([]Record, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, checked_at, tier, days_left, expires_at, source
		 FROM expiry_evaluations
		 WHERE ($1::text = '' OR domain = $1::text)
		 ORDER BY checked_at DESC, id DESC
		 LIMIT $2`,
		q.Domain, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r       Record
			days    sql.NullInt64
			expires sql.NullTime
		)
		if err := rows.Scan(&r.Domain, &r.CheckedAt, &r.Tier, &days, &expires, &r.Source); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.CheckedAt = r.CheckedAt.UTC()
		if days.Valid {
			d := int(days.Int64)
			r.DaysLeft = &d
		}
		if expires.Valid {
			t := expires.Time.UTC()
			r.ExpiresAt = &t
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}
