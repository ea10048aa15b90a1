package feeschedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном расписании сборов
	ErrInvalidInput = errors.New("invalid fee schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
