package timeblocks

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// TimeBlockRepository интерфейс репозитория блоков времени
type TimeBlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	Delete(ctx context.Context, id string) error
	ListByProfessional(ctx context.Context, professionalID string) ([]*domain.TimeBlock, error)
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
