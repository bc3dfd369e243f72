package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruEntry struct {
	value     []byte
	expiresAt time.Time
}

// LRUStore is an in-process Store. Entries are evicted by size and expire
// lazily on read.
type LRUStore struct {
	cache *lru.Cache[string, lruEntry]
	now   func() time.Time
	// nx serialises SetNX check-and-add pairs.
	nx sync.Mutex
}

func NewLRUStore(size int) (*LRUStore, error) {
	c, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{cache: c, now: time.Now}, nil
}

func (s *LRUStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.cache.Remove(key)
		return nil, ErrMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores a copy of value. A zero ttl never expires.
func (s *LRUStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Add(key, s.entry(value, ttl))
	return nil
}

func (s *LRUStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.nx.Lock()
	defer s.nx.Unlock()
	if entry, ok := s.cache.Peek(key); ok && (entry.expiresAt.IsZero() || s.now().Before(entry.expiresAt)) {
		return false, nil
	}
	s.cache.Add(key, s.entry(value, ttl))
	return true, nil
}

func (s *LRUStore) entry(value []byte, ttl time.Duration) lruEntry {
	entry := lruEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	return entry
}

func (s *LRUStore) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

func (s *LRUStore) Len() int {
	return s.cache.Len()
}
