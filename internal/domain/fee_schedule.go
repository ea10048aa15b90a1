package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FeeSchedule настройки комиссий салона
// CardFeesByInstallment: количество платежей (1-12) -> процент комиссии карты
type FeeSchedule struct {
	CardFeesByInstallment map[int]decimal.Decimal
	AdminFeePercent       decimal.Decimal
	UpdatedAt             time.Time
}

// DefaultFeeSchedule расписание без комиссий (используется, пока салон ничего не настроил)
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		CardFeesByInstallment: map[int]decimal.Decimal{},
		AdminFeePercent:       decimal.Zero,
	}
}

// CardFeePercent процент комиссии карты для количества платежей
// Отсутствующая запись означает 0%
func (f FeeSchedule) CardFeePercent(installments int) decimal.Decimal {
	if fee, ok := f.CardFeesByInstallment[installments]; ok {
		return fee
	}
	return decimal.Zero
}

// ErrInvalidFeeSchedule некорректное расписание сборов
var ErrInvalidFeeSchedule = errors.New("invalid fee schedule")

// Validate проверяет ключи 1-12 и проценты 0-100
func (f FeeSchedule) Validate() error {
	if !IsPercent(f.AdminFeePercent) {
		return fmt.Errorf("%w: adminFeePercent must be between 0 and 100", ErrInvalidFeeSchedule)
	}
	for installments, fee := range f.CardFeesByInstallment {
		if installments < MinInstallments || installments > MaxInstallments {
			return fmt.Errorf("%w: installments key %d out of range 1-12", ErrInvalidFeeSchedule, installments)
		}
		if !IsPercent(fee) {
			return fmt.Errorf("%w: card fee for %d installments must be between 0 and 100", ErrInvalidFeeSchedule, installments)
		}
	}
	return nil
}

// IsPercent значение в диапазоне 0-100
func IsPercent(d decimal.Decimal) bool {
	return !d.IsNegative() && !d.GreaterThan(Percent100)
}
