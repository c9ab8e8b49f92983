package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	recordKeyPrefix   = "otp:record:"
	attemptsKeyPrefix = "otp:attempts:"
)

// RedisStore shares one-time passwords across replicas. Records and their
// attempt counters carry the code's TTL so Redis reclaims them on expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, record Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal one-time password %s: %w", record.ID, err)
	}
	if err := s.client.Set(ctx, recordKeyPrefix+record.ID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store one-time password %s: %w", record.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	payload, err := s.client.Get(ctx, recordKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load one-time password %s: %w", id, err)
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal one-time password %s: %w", id, err)
	}
	return &record, nil
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, id uuid.UUID, ttl time.Duration) (int, error) {
	key := attemptsKeyPrefix + id.String()
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment attempts for %s: %w", id, err)
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, recordKeyPrefix+id.String(), attemptsKeyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("delete one-time password %s: %w", id, err)
	}
	return nil
}
