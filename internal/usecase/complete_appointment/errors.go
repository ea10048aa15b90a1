package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrProfessionalNotFound возвращается, когда профессионал записи не найден
	ErrProfessionalNotFound = errors.New("complete_appointment: professional not found")

	// ErrNotConfirmed возвращается, когда запись не в статусе confirmed
	ErrNotConfirmed = errors.New("complete_appointment: appointment is not confirmed")

	// ErrAlreadyCompleted возвращается, когда комиссия по записи уже зафиксирована
	ErrAlreadyCompleted = errors.New("complete_appointment: commission already recorded")

	// ErrNoServices возвращается, когда в записи нет услуг
	ErrNoServices = errors.New("complete_appointment: appointment has no services")

	// ErrInvalidPayment возвращается при некорректном способе оплаты
	ErrInvalidPayment = errors.New("complete_appointment: invalid payment selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)
