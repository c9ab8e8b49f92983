package directory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"worldsmith/internal/account"
)

// MemoryStore is an in-process store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]account.User
	hashes map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[uuid.UUID]account.User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, user account.User) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, user account.User) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetByIdentifier matches the unique name or the email address, case
// insensitively.
func (s *MemoryStore) GetByIdentifier(ctx context.Context, identifier string) (*account.User, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(identifier)
	for _, user := range s.users {
		if strings.ToLower(user.UniqueName) == needle {
			u := user
			return &u, nil
		}
		if user.Email != nil && strings.ToLower(user.Email.Address) == needle {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.hashes[id]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(hash))
	copy(out, hash)
	return out, nil
}

func (s *MemoryStore) SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(hash))
	copy(stored, hash)
	s.hashes[id] = stored
	return nil
}
