package get_appointment_commission

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

type CommissionService interface {
	GetAppointmentCommission(ctx context.Context, req *models.AppointmentCommissionRequest) (*models.CommissionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
