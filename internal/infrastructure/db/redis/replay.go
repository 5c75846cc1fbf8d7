package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayTTL = 24 * time.Hour

// ReplayCache maps pledge Idempotency-Keys to the pledge id they produced.
// Key format: pledge:replay:<idempotency_key>. Entries expire after
// replayTTL; the ledger itself stays the durable source of truth.
type ReplayCache struct {
	client *redis.Client
}

// NewReplayCache creates a ReplayCache wrapping the given Redis client.
func NewReplayCache(client *redis.Client) *ReplayCache {
	return &ReplayCache{client: client}
}

// Lookup returns the pledge id recorded for key, or "" when the key has not
// been seen.
func (c *ReplayCache) Lookup(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("replay lookup: %w", err)
	}
	return val, nil
}

// Remember records that key produced pledgeID.
func (c *ReplayCache) Remember(ctx context.Context, key, pledgeID string) error {
	return c.client.Set(ctx, c.key(key), pledgeID, replayTTL).Err()
}

func (c *ReplayCache) key(idempotencyKey string) string {
	return "pledge:replay:" + idempotencyKey
}
