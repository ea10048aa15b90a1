package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// AppointmentService строка услуги в записи (цена фиксируется на момент записи)
type AppointmentService struct {
	ServiceID    string
	ServiceName  string
	PriceCharged decimal.Decimal
}

// Appointment запись клиента к профессионалу
type Appointment struct {
	ID             string
	ProfessionalID string
	ClientName     string
	StartAt        time.Time
	EndAt          time.Time
	Status         AppointmentStatus
	Services       []AppointmentService

	// Заполняются при завершении
	PaymentMethod *PaymentMethod
	Installments  *int
	CompletedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled true для отмененной записи
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// CanBeCompleted завершить можно только подтвержденную запись
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == AppointmentStatusConfirmed
}

// CanBeCancelled отменить можно только подтвержденную запись
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentStatusConfirmed
}

// CanEditServices состав услуг меняется только пока запись подтверждена
func (a *Appointment) CanEditServices() bool {
	return a.Status == AppointmentStatusConfirmed
}

// HasService проверяет, что услуга уже есть в записи
func (a *Appointment) HasService(serviceID string) bool {
	for _, s := range a.Services {
		if s.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// TotalCharged сумма цен всех услуг
func (a *Appointment) TotalCharged() decimal.Decimal {
	total := decimal.Zero
	for _, s := range a.Services {
		total = total.Add(s.PriceCharged)
	}
	return total
}

// PaymentSelection способ оплаты, выбранный при завершении
func (a *Appointment) PaymentSelection() (PaymentSelection, bool) {
	if a.PaymentMethod == nil {
		return PaymentSelection{}, false
	}
	installments := 1
	if a.Installments != nil {
		installments = *a.Installments
	}
	return PaymentSelection{Method: *a.PaymentMethod, Installments: installments}, true
}

// DayAppointmentsFilter фильтр записей на день для календаря
type DayAppointmentsFilter struct {
	DayStart       time.Time // Начало дня в часовом поясе салона
	DayEnd         time.Time // Начало следующего дня
	ProfessionalID *string   // nil = все профессионалы
}
