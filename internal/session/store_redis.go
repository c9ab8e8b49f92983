package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:record:"
	userKeyPrefix    = "session:user:"
)

// RedisStore shares sessions across replicas. A per-user set backs bulk
// revocation.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", record.ID, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+record.ID.String(), payload, 0)
	pipe.SAdd(ctx, userKeyPrefix+record.UserID.String(), record.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session %s: %w", record.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &record, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id.String())
	if record != nil {
		pipe.SRem(ctx, userKeyPrefix+record.UserID.String(), id.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	userKey := userKeyPrefix + userID.String()
	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list sessions for %s: %w", userID, err)
	}
	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKeyPrefix+id)
	}
	pipe.Del(ctx, userKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete sessions for %s: %w", userID, err)
	}
	return nil
}
