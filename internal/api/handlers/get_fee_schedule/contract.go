package get_fee_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/feeschedule/models"
)

type FeeScheduleService interface {
	Get(ctx context.Context) (*models.FeeScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
