package commission

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrAppointmentCancelled возвращается при расчете комиссии по отмененной записи
	ErrAppointmentCancelled = errors.New("appointment is cancelled")

	// ErrInvalidPayment возвращается при некорректном способе оплаты или количестве платежей
	ErrInvalidPayment = errors.New("invalid payment selection")

	// ErrInvalidRule возвращается при некорректном правиле комиссии
	ErrInvalidRule = errors.New("invalid commission rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
