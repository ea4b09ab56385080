package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type entry struct {
	Count     int
	ResetTime time.Time
}

// MemoryStore keeps windows in process. Counts are not shared between
// replicas; use RedisStore for that.
type MemoryStore struct {
	cache *cache.Cache
	mutex sync.Mutex
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
		now:   time.Now,
	}
}

func (s *MemoryStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()

	if cached, found := s.cache.Get(key); found {
		current := cached.(entry)

		if now.Before(current.ResetTime) {
			current.Count++
			s.cache.Set(key, current, current.ResetTime.Sub(now))

			return current.Count, current.ResetTime, nil
		}
	}

	fresh := entry{Count: 1, ResetTime: now.Add(window)}
	s.cache.Set(key, fresh, window)

	return fresh.Count, fresh.ResetTime, nil
}

func (s *MemoryStore) ActiveEntries() int {
	return s.cache.ItemCount()
}
