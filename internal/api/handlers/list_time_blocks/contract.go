package list_time_blocks

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks/models"
)

type TimeBlockService interface {
	ListByProfessional(ctx context.Context, professionalID string) (*models.TimeBlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
