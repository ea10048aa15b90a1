package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrServiceNotFound возвращается, когда услуги нет в записи
	ErrServiceNotFound = errors.New("service not found in appointment")

	// ErrServiceAlreadyAdded возвращается при повторном добавлении услуги
	ErrServiceAlreadyAdded = errors.New("service already added to appointment")

	// ErrNotEditable возвращается при изменении услуг не подтвержденной записи
	ErrNotEditable = errors.New("appointment services can only be changed while confirmed")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
