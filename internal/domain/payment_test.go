package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentSelection(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		installments int
		want         PaymentSelection
		wantErr      error
	}{
		{"pix forces one installment", "pix", 6, PaymentSelection{Method: PaymentMethodPix, Installments: 1}, nil},
		{"credit card keeps installments", "credit_card", 6, PaymentSelection{Method: PaymentMethodCreditCard, Installments: 6}, nil},
		{"credit card default", "credit_card", 0, PaymentSelection{Method: PaymentMethodCreditCard, Installments: 1}, nil},
		{"credit card max", "credit_card", 12, PaymentSelection{Method: PaymentMethodCreditCard, Installments: 12}, nil},
		{"credit card too many", "credit_card", 13, PaymentSelection{}, ErrInvalidInstallments},
		{"credit card negative", "credit_card", -1, PaymentSelection{}, ErrInvalidInstallments},
		{"unknown method", "boleto", 1, PaymentSelection{}, ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPaymentSelection(tt.method, tt.installments)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
