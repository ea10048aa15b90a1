package get_commission_rules

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

type CommissionService interface {
	GetRules(ctx context.Context, professionalID string) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
