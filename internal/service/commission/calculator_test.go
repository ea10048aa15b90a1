package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func feesWithAdmin(admin string) domain.FeeSchedule {
	return domain.FeeSchedule{
		CardFeesByInstallment: map[int]decimal.Decimal{
			1: dec("3.5"),
			2: dec("4.2"),
			6: dec("7.9"),
		},
		AdminFeePercent: dec(admin),
	}
}

func TestCalculate_DefaultPercentWithPix(t *testing.T) {
	services := []domain.AppointmentService{{ServiceID: "A", ServiceName: "Corte", PriceCharged: dec("100")}}

	res := Calculate(services, dec("40"), nil, domain.PaymentSelection{Method: domain.PaymentMethodPix, Installments: 6}, feesWithAdmin("10"))

	assertDecEqual(t, "40", res.GrossCommission)
	assertDecEqual(t, "0", res.CardFeeAmount)
	assertDecEqual(t, "4", res.AdminFeeAmount)
	assertDecEqual(t, "36", res.NetCommission)
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Corte", res.Breakdown[0].ServiceName)
	assert.Equal(t, "Padrão 40%", res.Breakdown[0].RuleDescription)
}

func TestCalculate_FixedRuleIgnoresPrice(t *testing.T) {
	rules := []domain.CommissionRule{{ServiceID: "A", Type: domain.CommissionRuleFixed, Value: dec("15")}}

	for _, price := range []string{"100", "0", "999.99"} {
		services := []domain.AppointmentService{{ServiceID: "A", ServiceName: "Corte", PriceCharged: dec(price)}}
		res := Calculate(services, dec("40"), rules, domain.PaymentSelection{Method: domain.PaymentMethodCash}, domain.DefaultFeeSchedule())

		assertDecEqual(t, "15", res.GrossCommission, "price %s", price)
		assert.Equal(t, "Regra: valor fixo R$ 15,00", res.Breakdown[0].RuleDescription)
	}
}

func TestCalculate_PercentRuleOverridesDefault(t *testing.T) {
	services := []domain.AppointmentService{
		{ServiceID: "A", ServiceName: "Corte", PriceCharged: dec("80")},
		{ServiceID: "B", ServiceName: "Escova", PriceCharged: dec("50")},
	}
	rules := []domain.CommissionRule{{ServiceID: "B", Type: domain.CommissionRulePercent, Value: dec("50")}}

	res := Calculate(services, dec("40"), rules, domain.PaymentSelection{Method: domain.PaymentMethodCash}, domain.DefaultFeeSchedule())

	assertDecEqual(t, "32", res.Breakdown[0].Amount)
	assertDecEqual(t, "25", res.Breakdown[1].Amount)
	assertDecEqual(t, "57", res.GrossCommission)
	assert.Equal(t, "Regra: 50% do serviço", res.Breakdown[1].RuleDescription)
}

func TestCalculate_GrossEqualsBreakdownSum(t *testing.T) {
	services := []domain.AppointmentService{
		{ServiceID: "A", PriceCharged: dec("33.33")},
		{ServiceID: "B", PriceCharged: dec("66.67")},
		{ServiceID: "C", PriceCharged: dec("12.10")},
		{ServiceID: "D", PriceCharged: dec("0")},
	}
	rules := []domain.CommissionRule{
		{ServiceID: "B", Type: domain.CommissionRulePercent, Value: dec("33.3")},
		{ServiceID: "C", Type: domain.CommissionRuleFixed, Value: dec("7.77")},
	}

	res := Calculate(services, dec("37.5"), rules, domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 2}, feesWithAdmin("1.25"))

	sum := decimal.Zero
	for _, line := range res.Breakdown {
		sum = sum.Add(line.Amount)
	}
	assertDecEqual(t, sum.String(), res.GrossCommission)
	assert.Len(t, res.Breakdown, len(services))
}

func TestCalculate_CardFeeOnlyForCreditCard(t *testing.T) {
	services := []domain.AppointmentService{{ServiceID: "A", PriceCharged: dec("200")}}
	fees := feesWithAdmin("0")

	methods := []domain.PaymentMethod{
		domain.PaymentMethodCash,
		domain.PaymentMethodPix,
		domain.PaymentMethodDebitCard,
		domain.PaymentMethodOther,
	}
	for _, method := range methods {
		for _, installments := range []int{1, 2, 6} {
			res := Calculate(services, dec("50"), nil, domain.PaymentSelection{Method: method, Installments: installments}, fees)
			assertDecEqual(t, "0", res.CardFeeAmount, "method %s installments %d", method, installments)
			assertDecEqual(t, "0", res.CardFeePercent)
		}
	}

	res := Calculate(services, dec("50"), nil, domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 6}, fees)
	assertDecEqual(t, "7.9", res.CardFeePercent)
	assertDecEqual(t, "7.9", res.CardFeeAmount)
	assertDecEqual(t, "92.1", res.NetCommission)
}

func TestCalculate_MissingInstallmentEntryMeansNoCardFee(t *testing.T) {
	services := []domain.AppointmentService{{ServiceID: "A", PriceCharged: dec("100")}}

	res := Calculate(services, dec("40"), nil, domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 12}, feesWithAdmin("0"))

	assertDecEqual(t, "0", res.CardFeeAmount)
	assertDecEqual(t, "40", res.NetCommission)
}

func TestCalculate_FeesDoNotCompound(t *testing.T) {
	services := []domain.AppointmentService{{ServiceID: "A", PriceCharged: dec("100")}}

	res := Calculate(services, dec("50"), nil, domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 1}, feesWithAdmin("10"))

	// оба сбора считаются от валовой суммы 50
	assertDecEqual(t, "1.75", res.CardFeeAmount)
	assertDecEqual(t, "5", res.AdminFeeAmount)
	assertDecEqual(t, "43.25", res.NetCommission)
	assertDecEqual(t, res.GrossCommission.Sub(res.CardFeeAmount).Sub(res.AdminFeeAmount).String(), res.NetCommission)
}

func TestCalculate_NetIsNotClamped(t *testing.T) {
	services := []domain.AppointmentService{{ServiceID: "A", PriceCharged: dec("100")}}
	fees := domain.FeeSchedule{
		CardFeesByInstallment: map[int]decimal.Decimal{1: dec("70")},
		AdminFeePercent:       dec("50"),
	}

	res := Calculate(services, dec("10"), nil, domain.PaymentSelection{Method: domain.PaymentMethodCreditCard, Installments: 1}, fees)

	assertDecEqual(t, "-2", res.NetCommission)
}

func TestCalculate_NoServices(t *testing.T) {
	res := Calculate(nil, dec("40"), nil, domain.PaymentSelection{Method: domain.PaymentMethodPix}, feesWithAdmin("10"))

	assertDecEqual(t, "0", res.GrossCommission)
	assertDecEqual(t, "0", res.NetCommission)
	assert.Empty(t, res.Breakdown)
}

func TestCalculate_DecimalHasNoFloatDrift(t *testing.T) {
	services := make([]domain.AppointmentService, 0, 10)
	for i := 0; i < 10; i++ {
		services = append(services, domain.AppointmentService{ServiceID: "S", PriceCharged: dec("0.1")})
	}

	res := Calculate(services, dec("100"), nil, domain.PaymentSelection{Method: domain.PaymentMethodCash}, domain.DefaultFeeSchedule())

	assertDecEqual(t, "1", res.GrossCommission)
}
