package feeschedule

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type memoryEntry struct {
	fees      *domain.FeeSchedule
	expiresAt time.Time
}

// MemoryCache кэш в памяти процесса (LRU с TTL на запись)
type MemoryCache struct {
	cache *lru.Cache[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache создает кэш в памяти
func NewMemoryCache(size int, ttl time.Duration) (*MemoryCache, error) {
	cache, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

// Get возвращает расписание или ErrCacheMiss
func (c *MemoryCache) Get(_ context.Context) (*domain.FeeSchedule, error) {
	entry, ok := c.cache.Get(cacheKey)
	if !ok {
		return nil, ErrCacheMiss
	}
	if c.ttl > 0 && !c.now().Before(entry.expiresAt) {
		c.cache.Remove(cacheKey)
		return nil, ErrCacheMiss
	}
	return clone(entry.fees), nil
}

// Set сохраняет расписание
func (c *MemoryCache) Set(_ context.Context, fees *domain.FeeSchedule) error {
	c.cache.Add(cacheKey, memoryEntry{
		fees:      clone(fees),
		expiresAt: c.now().Add(c.ttl),
	})
	return nil
}

// Invalidate удаляет расписание из кэша
func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.cache.Remove(cacheKey)
	return nil
}
