package timeblocks

import "errors"

var (
	// ErrTimeBlockNotFound возвращается, когда блок времени не найден
	ErrTimeBlockNotFound = errors.New("time block not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrInvalidTimeRange возвращается, когда конец блока не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
