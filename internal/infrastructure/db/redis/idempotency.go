package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps (actor, Idempotency-Key) to the id of the
// advertisement created under it.
// Key format: idempotency:advertisement:<actor_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the advertisement id stored for the key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, actorID int64, key string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, idempotencyKey(actorID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", raw, err)
	}
	return id, true, nil
}

// Remember stores the advertisement id for the key. It expires after the
// configured TTL.
func (s *IdempotencyStore) Remember(ctx context.Context, actorID int64, key string, advertisementID int64) error {
	err := s.client.Set(ctx, idempotencyKey(actorID, key), strconv.FormatInt(advertisementID, 10), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func idempotencyKey(actorID int64, key string) string {
	return fmt.Sprintf("idempotency:advertisement:%d:%s", actorID, key)
}
