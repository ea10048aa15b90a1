package feeschedule

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Repository интерфейс репозитория расписания сборов
type Repository interface {
	Get(ctx context.Context) (*domain.FeeSchedule, error)
	Upsert(ctx context.Context, fees *domain.FeeSchedule) (*domain.FeeSchedule, error)
}

// Cache интерфейс кэша расписания сборов (memory или redis)
type Cache interface {
	Get(ctx context.Context) (*domain.FeeSchedule, error)
	Set(ctx context.Context, fees *domain.FeeSchedule) error
	Invalidate(ctx context.Context) error
}

// Metrics счетчики попаданий в кэш (может быть nil)
type Metrics interface {
	ObserveCache(cache string, hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
