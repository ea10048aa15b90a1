package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

// Типы событий (routing key для AMQP, заголовок X-Event-Type для webhook)
const (
	EventAppointmentCompleted = "appointment.completed"
)

// AppointmentCompleted событие о завершении записи и фиксации комиссии
// Суммы - строки с двумя знаками
type AppointmentCompleted struct {
	EventID         string    `json:"eventId"`
	OccurredAt      time.Time `json:"occurredAt"`
	AppointmentID   string    `json:"appointmentId"`
	ProfessionalID  string    `json:"professionalId"`
	PaymentMethod   string    `json:"paymentMethod"`
	Installments    int       `json:"installments"`
	ServicesTotal   string    `json:"servicesTotal"`
	GrossCommission string    `json:"grossCommission"`
	CardFeeAmount   string    `json:"cardFeeAmount"`
	AdminFeeAmount  string    `json:"adminFeeAmount"`
	NetCommission   string    `json:"netCommission"`
}

// NewAppointmentCompleted строит событие из зафиксированной комиссии
func NewAppointmentCompleted(entry *domain.CommissionEntry, occurredAt time.Time) *AppointmentCompleted {
	return &AppointmentCompleted{
		EventID:         uuid.NewString(),
		OccurredAt:      occurredAt.UTC(),
		AppointmentID:   entry.AppointmentID,
		ProfessionalID:  entry.ProfessionalID,
		PaymentMethod:   string(entry.PaymentMethod),
		Installments:    entry.Installments,
		ServicesTotal:   money.Fixed(entry.ServicesTotal),
		GrossCommission: money.Fixed(entry.GrossCommission),
		CardFeeAmount:   money.Fixed(entry.CardFeeAmount),
		AdminFeeAmount:  money.Fixed(entry.AdminFeeAmount),
		NetCommission:   money.Fixed(entry.NetCommission),
	}
}
