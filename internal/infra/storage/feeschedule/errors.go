package feeschedule

import "errors"

var (
	// ErrFeeScheduleNotFound возвращается, когда салон еще не настроил сборы
	ErrFeeScheduleNotFound = errors.New("feeschedule.repository: fee schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("feeschedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("feeschedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("feeschedule.repository: failed to scan row")

	// ErrEncoding возвращается при ошибке (де)сериализации комиссий карты
	ErrEncoding = errors.New("feeschedule.repository: failed to encode card fees")
)
