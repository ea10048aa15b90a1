package complete_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на завершение записи
type Request struct {
	AppointmentID string // ID записи
	PaymentMethod string // cash | pix | credit_card | debit_card | other
	Installments  int    // 1-12, только для credit_card (0 = 1)
}

// Response модель ответа с зафиксированной комиссией
type Response struct {
	AppointmentID  string
	ProfessionalID string
	Status         domain.AppointmentStatus
	Payment        domain.PaymentSelection
	CompletedAt    time.Time
	ServicesTotal  decimal.Decimal
	Commission     domain.CommissionResult
	EntryID        int64
}
