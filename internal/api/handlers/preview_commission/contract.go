package preview_commission

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

type CommissionService interface {
	Preview(ctx context.Context, req *models.PreviewRequest) (*models.CommissionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
