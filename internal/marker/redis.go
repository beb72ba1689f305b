package marker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"domainhc/internal/heartbeat"
)

const keyPrefix = "domainhc:marker:"

// RedisStore keeps markers as keys whose TTL is the freshness window, so
// stale markers expire on their own.
type RedisStore struct {
	client    redis.UniversalClient
	freshness time.Duration
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client redis.UniversalClient, freshness time.Duration) *RedisStore {
	return &RedisStore{client: client, freshness: freshness}
}

func redisKey(domain string, kind heartbeat.Kind) string {
	return keyPrefix + string(kind) + ":" + domain
}

func (s *RedisStore) IsValid(ctx context.Context, domain string, kind heartbeat.Kind) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(domain, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("check marker: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Touch(ctx context.Context, domain string, kind heartbeat.Kind) error {
	if err := s.client.Set(ctx, redisKey(domain, kind), time.Now().UTC().Format(time.RFC3339), s.freshness).Err(); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, f Filter) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	if f.Domain != "" {
		keys := make([]string, 0, 2)
		for _, kind := range f.kinds() {
			keys = append(keys, redisKey(f.Domain, kind))
		}
		n, err := s.client.Del(ctx, keys...).Result()
		if err != nil {
			return 0, fmt.Errorf("delete markers: %w", err)
		}
		return int(n), nil
	}

	removed := 0
	for _, kind := range f.kinds() {
		iter := s.client.Scan(ctx, 0, keyPrefix+string(kind)+":*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return removed, fmt.Errorf("scan markers: %w", err)
		}
		if len(keys) == 0 {
			continue
		}
		n, err := s.client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, fmt.Errorf("delete markers: %w", err)
		}
		removed += int(n)
	}
	return removed, nil
}
