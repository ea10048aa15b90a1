package feeschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RedisOptions параметры подключения к Redis
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache кэш в Redis, общий для всех реплик сервиса
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение
func NewRedisCache(ctx context.Context, opts RedisOptions, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCacheBackend, opts.Addr, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get возвращает расписание или ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context) (*domain.FeeSchedule, error) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCacheBackend, err)
	}

	fees, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrCodec, err)
	}
	return fees, nil
}

// Set сохраняет расписание с TTL
func (c *RedisCache) Set(ctx context.Context, fees *domain.FeeSchedule) error {
	raw, err := encode(fees)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCodec, err)
	}
	if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheBackend, err)
	}
	return nil
}

// Invalidate удаляет расписание из кэша
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheBackend, err)
	}
	return nil
}

// Close закрывает соединение
func (c *RedisCache) Close() error {
	return c.client.Close()
}
