package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UpdateRequest полная замена расписания сборов
// Ключи cardFeesByInstallment в JSON - строки "1".."12"
type UpdateRequest struct {
	CardFeesByInstallment map[int]decimal.Decimal `json:"cardFeesByInstallment"`
	AdminFeePercent       decimal.Decimal         `json:"adminFeePercent"`
}

// ToDomain конвертирует запрос в доменную модель
func (r *UpdateRequest) ToDomain() *domain.FeeSchedule {
	cardFees := make(map[int]decimal.Decimal, len(r.CardFeesByInstallment))
	for k, v := range r.CardFeesByInstallment {
		cardFees[k] = v
	}
	return &domain.FeeSchedule{
		CardFeesByInstallment: cardFees,
		AdminFeePercent:       r.AdminFeePercent,
	}
}

// FeeScheduleResponse расписание сборов
type FeeScheduleResponse struct {
	CardFeesByInstallment map[int]string `json:"cardFeesByInstallment"`
	AdminFeePercent       string         `json:"adminFeePercent"`
	UpdatedAt             *time.Time     `json:"updatedAt,omitempty"`
}

// FromDomain конвертирует доменную модель в ответ
func FromDomain(fees domain.FeeSchedule) *FeeScheduleResponse {
	resp := &FeeScheduleResponse{
		CardFeesByInstallment: make(map[int]string, len(fees.CardFeesByInstallment)),
		AdminFeePercent:       fees.AdminFeePercent.String(),
	}
	for k, v := range fees.CardFeesByInstallment {
		resp.CardFeesByInstallment[k] = v.String()
	}
	if !fees.UpdatedAt.IsZero() {
		updatedAt := fees.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
