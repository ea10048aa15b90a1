package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrServiceNotFound возвращается, когда услуги нет в записи
	ErrServiceNotFound = errors.New("appointment.repository: service not found in appointment")

	// ErrServiceAlreadyAdded возвращается при повторном добавлении услуги
	ErrServiceAlreadyAdded = errors.New("appointment.repository: service already added")

	// ErrStatusConflict возвращается, когда статус записи изменился до обновления
	ErrStatusConflict = errors.New("appointment.repository: appointment status changed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
