package get_commission_report

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

type CommissionService interface {
	GetReport(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
