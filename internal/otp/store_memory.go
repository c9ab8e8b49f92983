package otp

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[uuid.UUID]Record
	attempts map[uuid.UUID]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[uuid.UUID]Record),
		attempts: make(map[uuid.UUID]int),
	}
}

func (s *MemoryStore) Save(ctx context.Context, record Record, ttl time.Duration) error {
	_ = ctx
	_ = ttl
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *MemoryStore) IncrementAttempts(ctx context.Context, id uuid.UUID, ttl time.Duration) (int, error) {
	_ = ctx
	_ = ttl
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[id]++
	return s.attempts[id], nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	delete(s.attempts, id)
	return nil
}
