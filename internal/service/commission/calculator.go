package commission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

// Описания правил для расшифровки (показываются в интерфейсе как есть)
const (
	descDefaultPercent = "Padrão %s"
	descRulePercent    = "Regra: %s do serviço"
	descRuleFixed      = "Regra: valor fixo %s"
)

// Calculate рассчитывает комиссию профессионала по услугам записи
//
// Для каждой услуги ищется правило по serviceID:
//   - percent: priceCharged * value / 100
//   - fixed:   value (не зависит от цены)
//   - нет правила: priceCharged * defaultPercent / 100
//
// Комиссия карты берется только для credit_card по количеству платежей
// (нет записи -> 0%), административная - всегда от валовой суммы.
// Чистая комиссия не ограничивается снизу. Округление не выполняется.
func Calculate(
	services []domain.AppointmentService,
	defaultPercent decimal.Decimal,
	rules []domain.CommissionRule,
	payment domain.PaymentSelection,
	fees domain.FeeSchedule,
) domain.CommissionResult {
	byService := make(map[string]domain.CommissionRule, len(rules))
	for _, rule := range rules {
		byService[rule.ServiceID] = rule
	}

	gross := decimal.Zero
	breakdown := make([]domain.CommissionLine, 0, len(services))

	for _, svc := range services {
		amount, description := lineCommission(svc, defaultPercent, byService)
		gross = gross.Add(amount)
		breakdown = append(breakdown, domain.CommissionLine{
			ServiceID:       svc.ServiceID,
			ServiceName:     svc.ServiceName,
			Amount:          amount,
			RuleDescription: description,
		})
	}

	cardFeePercent := decimal.Zero
	if payment.IsCreditCard() {
		cardFeePercent = fees.CardFeePercent(payment.Installments)
	}
	cardFee := percentOf(gross, cardFeePercent)
	adminFee := percentOf(gross, fees.AdminFeePercent)

	return domain.CommissionResult{
		GrossCommission: gross,
		CardFeePercent:  cardFeePercent,
		CardFeeAmount:   cardFee,
		AdminFeePercent: fees.AdminFeePercent,
		AdminFeeAmount:  adminFee,
		NetCommission:   gross.Sub(cardFee).Sub(adminFee),
		Breakdown:       breakdown,
	}
}

func lineCommission(
	svc domain.AppointmentService,
	defaultPercent decimal.Decimal,
	rules map[string]domain.CommissionRule,
) (decimal.Decimal, string) {
	rule, ok := rules[svc.ServiceID]
	if !ok {
		return percentOf(svc.PriceCharged, defaultPercent), fmt.Sprintf(descDefaultPercent, money.FormatPercent(defaultPercent))
	}

	switch rule.Type {
	case domain.CommissionRuleFixed:
		return rule.Value, fmt.Sprintf(descRuleFixed, money.FormatBRL(rule.Value))
	case domain.CommissionRulePercent:
		return percentOf(svc.PriceCharged, rule.Value), fmt.Sprintf(descRulePercent, money.FormatPercent(rule.Value))
	default:
		// Неизвестный тип правила трактуем как отсутствие правила
		return percentOf(svc.PriceCharged, defaultPercent), fmt.Sprintf(descDefaultPercent, money.FormatPercent(defaultPercent))
	}
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(domain.Percent100)
}
