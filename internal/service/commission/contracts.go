package commission

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
}

// ProfessionalRepository интерфейс репозитория профессионалов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Professional, error)
}

// RuleRepository интерфейс репозитория правил комиссии
type RuleRepository interface {
	GetByProfessional(ctx context.Context, professionalID string) ([]domain.CommissionRule, error)
	ReplaceForProfessional(ctx context.Context, professionalID string, rules []domain.CommissionRule) error
}

// EntryRepository интерфейс репозитория движений комиссии
type EntryRepository interface {
	GetByAppointment(ctx context.Context, appointmentID string) (*domain.CommissionEntry, error)
	List(ctx context.Context, filter domain.CommissionEntriesFilter) ([]*domain.CommissionEntry, error)
}

// FeeScheduleProvider источник текущего расписания сборов
type FeeScheduleProvider interface {
	Current(ctx context.Context) (domain.FeeSchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики расчетов (может быть nil)
type Metrics interface {
	ObserveCommission(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
