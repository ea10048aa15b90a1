package events

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках публикации
	ErrInternal = errors.New("events publisher: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе получателя webhook
	ErrInvalidResponse = errors.New("events publisher: invalid response")

	// ErrBrokerUnavailable возвращается, когда брокер недоступен
	ErrBrokerUnavailable = errors.New("events publisher: broker unavailable")
)
