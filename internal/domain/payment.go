package domain

import "errors"

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodOther      PaymentMethod = "other"
)

// IsValid проверяет, что способ оплаты известен
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentSelection способ оплаты и количество платежей
// Installments имеет смысл только для credit_card
type PaymentSelection struct {
	Method       PaymentMethod
	Installments int
}

// IsCreditCard оплата кредитной картой
func (p PaymentSelection) IsCreditCard() bool {
	return p.Method == PaymentMethodCreditCard
}

var (
	// ErrInvalidPaymentMethod неизвестный способ оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidInstallments количество платежей вне диапазона 1-12
	ErrInvalidInstallments = errors.New("installments must be between 1 and 12")
)

// NewPaymentSelection проверяет способ оплаты и количество платежей
// Для credit_card 0 означает "не указано" и превращается в 1,
// для остальных способов количество платежей всегда 1
func NewPaymentSelection(method string, installments int) (PaymentSelection, error) {
	m := PaymentMethod(method)
	if !m.IsValid() {
		return PaymentSelection{}, ErrInvalidPaymentMethod
	}

	if m != PaymentMethodCreditCard {
		return PaymentSelection{Method: m, Installments: MinInstallments}, nil
	}

	if installments == 0 {
		installments = MinInstallments
	}
	if installments < MinInstallments || installments > MaxInstallments {
		return PaymentSelection{}, ErrInvalidInstallments
	}

	return PaymentSelection{Method: m, Installments: installments}, nil
}
