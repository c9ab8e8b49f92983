package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStore) Save(ctx context.Context, record Record) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.UserID == userID {
			delete(s.records, id)
		}
	}
	return nil
}
