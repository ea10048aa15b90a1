package update_commission_rules

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

type CommissionService interface {
	ReplaceRules(ctx context.Context, professionalID string, req *models.ReplaceRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
