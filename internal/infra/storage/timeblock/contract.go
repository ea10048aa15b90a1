package timeblock

import (
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
