package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeeSchedule_Validate(t *testing.T) {
	valid := FeeSchedule{
		CardFeesByInstallment: map[int]decimal.Decimal{1: decimal.RequireFromString("3.49"), 12: decimal.NewFromInt(100)},
		AdminFeePercent:       decimal.Zero,
	}
	assert.NoError(t, valid.Validate())

	badKey := FeeSchedule{CardFeesByInstallment: map[int]decimal.Decimal{13: decimal.NewFromInt(1)}}
	assert.ErrorIs(t, badKey.Validate(), ErrInvalidFeeSchedule)

	badFee := FeeSchedule{CardFeesByInstallment: map[int]decimal.Decimal{2: decimal.NewFromInt(-1)}}
	assert.ErrorIs(t, badFee.Validate(), ErrInvalidFeeSchedule)

	badAdmin := FeeSchedule{AdminFeePercent: decimal.NewFromInt(101)}
	assert.ErrorIs(t, badAdmin.Validate(), ErrInvalidFeeSchedule)
}

func TestFeeSchedule_MissingInstallmentIsZero(t *testing.T) {
	fees := DefaultFeeSchedule()
	assert.True(t, fees.CardFeePercent(3).IsZero())
}
