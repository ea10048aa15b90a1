package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRuleType тип правила комиссии для услуги
type CommissionRuleType string

const (
	CommissionRulePercent CommissionRuleType = "percent"
	CommissionRuleFixed   CommissionRuleType = "fixed"
)

// IsValid проверяет, что тип правила известен
func (t CommissionRuleType) IsValid() bool {
	return t == CommissionRulePercent || t == CommissionRuleFixed
}

// CommissionRule переопределение комиссии профессионала для конкретной услуги
// percent: Value - процент от цены; fixed: Value - фиксированная сумма
type CommissionRule struct {
	ProfessionalID string
	ServiceID      string
	Type           CommissionRuleType
	Value          decimal.Decimal
}

// Professional профессионал салона
type Professional struct {
	ID                       string
	Name                     string
	CommissionPercentDefault decimal.Decimal // 0-100
	IsActive                 bool
}

// CommissionLine комиссия по одной услуге
type CommissionLine struct {
	ServiceID       string
	ServiceName     string
	Amount          decimal.Decimal
	RuleDescription string
}

// CommissionResult результат расчета комиссии
// NetCommission = GrossCommission - CardFeeAmount - AdminFeeAmount (без ограничения снизу)
type CommissionResult struct {
	GrossCommission decimal.Decimal
	CardFeePercent  decimal.Decimal
	CardFeeAmount   decimal.Decimal
	AdminFeePercent decimal.Decimal
	AdminFeeAmount  decimal.Decimal
	NetCommission   decimal.Decimal
	Breakdown       []CommissionLine
}

// CommissionEntry зафиксированная комиссия по завершенной записи (движение кассы)
// Хранит полный результат расчета на момент завершения
type CommissionEntry struct {
	ID              int64
	AppointmentID   string
	ProfessionalID  string
	PaymentMethod   PaymentMethod
	Installments    int
	ServicesTotal   decimal.Decimal
	GrossCommission decimal.Decimal
	CardFeePercent  decimal.Decimal
	CardFeeAmount   decimal.Decimal
	AdminFeePercent decimal.Decimal
	AdminFeeAmount  decimal.Decimal
	NetCommission   decimal.Decimal
	Breakdown       []CommissionLine
	CreatedAt       time.Time
}

// NewCommissionEntry фиксирует результат расчета по записи
func NewCommissionEntry(appointment *Appointment, payment PaymentSelection, result CommissionResult) *CommissionEntry {
	return &CommissionEntry{
		AppointmentID:   appointment.ID,
		ProfessionalID:  appointment.ProfessionalID,
		PaymentMethod:   payment.Method,
		Installments:    payment.Installments,
		ServicesTotal:   appointment.TotalCharged(),
		GrossCommission: result.GrossCommission,
		CardFeePercent:  result.CardFeePercent,
		CardFeeAmount:   result.CardFeeAmount,
		AdminFeePercent: result.AdminFeePercent,
		AdminFeeAmount:  result.AdminFeeAmount,
		NetCommission:   result.NetCommission,
		Breakdown:       result.Breakdown,
	}
}

// Payment способ оплаты, с которым запись была завершена
func (e *CommissionEntry) Payment() PaymentSelection {
	return PaymentSelection{Method: e.PaymentMethod, Installments: e.Installments}
}

// Result зафиксированный результат расчета
func (e *CommissionEntry) Result() CommissionResult {
	return CommissionResult{
		GrossCommission: e.GrossCommission,
		CardFeePercent:  e.CardFeePercent,
		CardFeeAmount:   e.CardFeeAmount,
		AdminFeePercent: e.AdminFeePercent,
		AdminFeeAmount:  e.AdminFeeAmount,
		NetCommission:   e.NetCommission,
		Breakdown:       e.Breakdown,
	}
}

// CommissionEntriesFilter фильтр движений комиссии профессионала
type CommissionEntriesFilter struct {
	ProfessionalID string
	From           *time.Time // включительно
	To             *time.Time // исключительно
}

// CommissionReport сводка комиссий профессионала за период
type CommissionReport struct {
	ProfessionalID string
	Entries        []*CommissionEntry
	ServicesTotal  decimal.Decimal
	GrossTotal     decimal.Decimal
	CardFeeTotal   decimal.Decimal
	AdminFeeTotal  decimal.Decimal
	NetTotal       decimal.Decimal
}

// NewCommissionReport суммирует движения
func NewCommissionReport(professionalID string, entries []*CommissionEntry) *CommissionReport {
	report := &CommissionReport{
		ProfessionalID: professionalID,
		Entries:        entries,
		ServicesTotal:  decimal.Zero,
		GrossTotal:     decimal.Zero,
		CardFeeTotal:   decimal.Zero,
		AdminFeeTotal:  decimal.Zero,
		NetTotal:       decimal.Zero,
	}
	for _, e := range entries {
		report.ServicesTotal = report.ServicesTotal.Add(e.ServicesTotal)
		report.GrossTotal = report.GrossTotal.Add(e.GrossCommission)
		report.CardFeeTotal = report.CardFeeTotal.Add(e.CardFeeAmount)
		report.AdminFeeTotal = report.AdminFeeTotal.Add(e.AdminFeeAmount)
		report.NetTotal = report.NetTotal.Add(e.NetCommission)
	}
	return report
}
