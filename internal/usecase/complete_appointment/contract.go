package complete_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Complete(ctx context.Context, id string, payment domain.PaymentSelection, completedAt time.Time) error
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Professional, error)
}

// RuleRepository интерфейс репозитория правил комиссии
type RuleRepository interface {
	GetByProfessional(ctx context.Context, professionalID string) ([]domain.CommissionRule, error)
}

// EntryRepository интерфейс репозитория движений комиссии
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.CommissionEntry) (*domain.CommissionEntry, error)
}

// FeeScheduleProvider источник текущего расписания сборов
type FeeScheduleProvider interface {
	Current(ctx context.Context) (domain.FeeSchedule, error)
}

// EventPublisher публикация событий (rabbitmq, webhook или noop)
type EventPublisher interface {
	PublishAppointmentCompleted(ctx context.Context, event *events.AppointmentCompleted) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики (может быть nil)
type Metrics interface {
	ObserveCommission(source string)
	ObserveCompletion(paymentMethod string, netAmount float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
