package get_day_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// TimeBlockRepository интерфейс репозитория блокировок
type TimeBlockRepository interface {
	ListForDay(ctx context.Context, dayStart, dayEnd time.Time, professionalID *string) ([]*domain.TimeBlock, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetForDay(ctx context.Context, filter domain.DayAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
