package domain

import "github.com/shopspring/decimal"

// Окно календаря и масштаб
const (
	CalendarStartHour = 8
	CalendarEndHour   = 20

	CalendarStartMinutes = CalendarStartHour * 60
	CalendarEndMinutes   = CalendarEndHour * 60

	HourHeightPx           = 64
	MinBlockHeightPx       = 24
	MinAppointmentHeightPx = 32
	ProfessionalFilterAll  = "all"
)

// Ограничения бизнес-валидации
const (
	MinInstallments     = 1
	MaxInstallments     = 12
	MaxTimeBlockTitle   = 120
	MaxClientNameLength = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Percent100 граница процентов
var Percent100 = decimal.NewFromInt(100)
