package token

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const consumedKeyPrefix = "token:consumed:"

// RedisRegistry shares consumption state across replicas. Keys expire with
// the token so the set stays bounded.
type RedisRegistry struct {
	client *redis.Client
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	ok, err := r.client.SetNX(ctx, consumedKeyPrefix+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consume token %s: %w", jti, err)
	}
	return ok, nil
}

func (r *RedisRegistry) IsConsumed(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, consumedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token %s: %w", jti, err)
	}
	return n > 0, nil
}
