package feeschedule

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Ключ единственного расписания сборов
const cacheKey = "salon:fee_schedule"

type cachedFees struct {
	CardFeesByInstallment map[int]decimal.Decimal `json:"cardFeesByInstallment"`
	AdminFeePercent       decimal.Decimal         `json:"adminFeePercent"`
	UpdatedAt             time.Time               `json:"updatedAt"`
}

func encode(fees *domain.FeeSchedule) ([]byte, error) {
	return json.Marshal(cachedFees{
		CardFeesByInstallment: fees.CardFeesByInstallment,
		AdminFeePercent:       fees.AdminFeePercent,
		UpdatedAt:             fees.UpdatedAt,
	})
}

func decode(raw []byte) (*domain.FeeSchedule, error) {
	var c cachedFees
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.CardFeesByInstallment == nil {
		c.CardFeesByInstallment = map[int]decimal.Decimal{}
	}
	return &domain.FeeSchedule{
		CardFeesByInstallment: c.CardFeesByInstallment,
		AdminFeePercent:       c.AdminFeePercent,
		UpdatedAt:             c.UpdatedAt,
	}, nil
}

// clone копирует расписание, чтобы вызывающий не мог изменить закэшированную карту
func clone(fees *domain.FeeSchedule) *domain.FeeSchedule {
	cardFees := make(map[int]decimal.Decimal, len(fees.CardFeesByInstallment))
	for k, v := range fees.CardFeesByInstallment {
		cardFees[k] = v
	}
	return &domain.FeeSchedule{
		CardFeesByInstallment: cardFees,
		AdminFeePercent:       fees.AdminFeePercent,
		UpdatedAt:             fees.UpdatedAt,
	}
}
