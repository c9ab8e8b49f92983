package token

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry is an in-process consumption registry for development and
// tests. Expired entries are pruned lazily on access.
type MemoryRegistry struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRegistry) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune()
	if _, ok := r.expires[jti]; ok {
		return false, nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	r.expires[jti] = r.now().Add(ttl)
	return true, nil
}

func (r *MemoryRegistry) IsConsumed(ctx context.Context, jti string) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune()
	_, ok := r.expires[jti]
	return ok, nil
}

func (r *MemoryRegistry) prune() {
	now := r.now()
	for jti, exp := range r.expires {
		if exp.Before(now) {
			delete(r.expires, jti)
		}
	}
}
