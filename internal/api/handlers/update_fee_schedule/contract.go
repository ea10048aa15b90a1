package update_fee_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/feeschedule/models"
)

type FeeScheduleService interface {
	Update(ctx context.Context, req *models.UpdateRequest) (*models.FeeScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
