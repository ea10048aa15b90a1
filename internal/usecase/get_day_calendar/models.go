package get_day_calendar

import "time"

// Request модель запроса календаря на день
type Request struct {
	Date           string // YYYY-MM-DD в часовом поясе салона
	ProfessionalID string // UUID или "all" (пусто = "all")
}

// Response модель ответа с раскладкой дня
type Response struct {
	Date               time.Time // Полночь дня в часовом поясе салона
	ProfessionalFilter string
	Blocks             []BlockPosition
	Appointments       []AppointmentPosition
}
