package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCommissionEntry_KeepsFullResult(t *testing.T) {
	appointment := &Appointment{
		ID:             "a1",
		ProfessionalID: "p1",
		Services: []AppointmentService{
			{ServiceID: "s1", PriceCharged: decimal.RequireFromString("80")},
			{ServiceID: "s2", PriceCharged: decimal.RequireFromString("20")},
		},
	}
	payment := PaymentSelection{Method: PaymentMethodCreditCard, Installments: 3}
	result := CommissionResult{
		GrossCommission: decimal.RequireFromString("37"),
		CardFeePercent:  decimal.RequireFromString("5"),
		CardFeeAmount:   decimal.RequireFromString("1.85"),
		AdminFeePercent: decimal.RequireFromString("10"),
		AdminFeeAmount:  decimal.RequireFromString("3.70"),
		NetCommission:   decimal.RequireFromString("31.45"),
		Breakdown: []CommissionLine{
			{ServiceID: "s1", Amount: decimal.RequireFromString("32")},
			{ServiceID: "s2", Amount: decimal.RequireFromString("5")},
		},
	}

	entry := NewCommissionEntry(appointment, payment, result)

	assert.Equal(t, "a1", entry.AppointmentID)
	assert.Equal(t, "p1", entry.ProfessionalID)
	assert.True(t, entry.ServicesTotal.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, payment, entry.Payment())
	assert.Equal(t, result, entry.Result())
}
