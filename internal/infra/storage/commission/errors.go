package commission

import "errors"

var (
	// ErrEntryAlreadyExists возвращается при повторной фиксации комиссии по записи
	ErrEntryAlreadyExists = errors.New("commission.repository: entry for appointment already exists")

	// ErrEntryNotFound возвращается, если комиссия по записи не зафиксирована
	ErrEntryNotFound = errors.New("commission.repository: entry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("commission.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("commission.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("commission.repository: failed to scan row")
)
