package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrEmptyWeekdays еженедельное повторение без дней недели
	ErrEmptyWeekdays = errors.New("weekly recurrence requires at least one weekday")

	// ErrInvalidWeekday день недели вне диапазона 0-6
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrUnknownRecurrenceType неизвестный тип повторения
	ErrUnknownRecurrenceType = errors.New("unknown recurrence type")
)

// RecurrenceKind вид повторения блока времени
type RecurrenceKind string

const (
	RecurrenceNone   RecurrenceKind = "none"
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceWeekly RecurrenceKind = "weekly"
)

// WeekdaySet множество дней недели (бит i = time.Weekday(i), воскресенье = 0)
type WeekdaySet uint8

// NewWeekdaySet строит множество из номеров дней 0-6
func NewWeekdaySet(days []int) (WeekdaySet, error) {
	var set WeekdaySet
	for _, d := range days {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return 0, ErrInvalidWeekday
		}
		set |= 1 << uint(d)
	}
	return set, nil
}

// Contains проверяет вхождение дня недели
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

// IsEmpty пустое множество
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days номера дней по возрастанию
func (s WeekdaySet) Days() []int {
	days := make([]int, 0, 7)
	for d := int(time.Sunday); d <= int(time.Saturday); d++ {
		if s.Contains(time.Weekday(d)) {
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days
}

// Recurrence правило повторения: None | Daily | Weekly(days)
// Поля закрыты, значения создаются только конструкторами,
// поэтому "weekly без дней" не представимо
type Recurrence struct {
	kind  RecurrenceKind
	days  WeekdaySet
	until *time.Time
}

// NoRecurrence разовый блок
func NoRecurrence() Recurrence {
	return Recurrence{kind: RecurrenceNone}
}

// DailyRecurrence ежедневный блок, until - последняя дата включительно (nil = бессрочно)
func DailyRecurrence(until *time.Time) Recurrence {
	return Recurrence{kind: RecurrenceDaily, until: until}
}

// WeeklyRecurrence еженедельный блок по дням недели
func WeeklyRecurrence(days WeekdaySet, until *time.Time) (Recurrence, error) {
	if days.IsEmpty() {
		return Recurrence{}, ErrEmptyWeekdays
	}
	return Recurrence{kind: RecurrenceWeekly, days: days, until: until}, nil
}

// RecurrenceFromColumns собирает правило из хранимых колонок
func RecurrenceFromColumns(isRecurring bool, recurrenceType *string, days []int64, until *time.Time) (Recurrence, error) {
	if !isRecurring {
		return NoRecurrence(), nil
	}
	if recurrenceType == nil {
		return Recurrence{}, ErrUnknownRecurrenceType
	}

	switch RecurrenceKind(*recurrenceType) {
	case RecurrenceDaily:
		return DailyRecurrence(until), nil
	case RecurrenceWeekly:
		ints := make([]int, len(days))
		for i, d := range days {
			ints[i] = int(d)
		}
		set, err := NewWeekdaySet(ints)
		if err != nil {
			return Recurrence{}, err
		}
		return WeeklyRecurrence(set, until)
	default:
		return Recurrence{}, ErrUnknownRecurrenceType
	}
}

// Kind вид повторения (нулевое значение - разовый блок)
func (r Recurrence) Kind() RecurrenceKind {
	if r.kind == "" {
		return RecurrenceNone
	}
	return r.kind
}

// IsRecurring true для daily и weekly
func (r Recurrence) IsRecurring() bool {
	return r.Kind() != RecurrenceNone
}

// Days дни недели (только для weekly)
func (r Recurrence) Days() WeekdaySet {
	return r.days
}

// Until последняя дата повторения
func (r Recurrence) Until() *time.Time {
	return r.until
}

// AppliesOn применяется ли повторяющийся блок к календарной дате
// Для разовых блоков всегда false - их применимость определяется диапазоном дат
func (r Recurrence) AppliesOn(date time.Time) bool {
	if !r.IsRecurring() {
		return false
	}
	if r.until != nil && DateKey(date) > DateKey(*r.until) {
		return false
	}

	switch r.kind {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return r.days.Contains(date.Weekday())
	default:
		return false
	}
}

// TimeBlock блокировка времени профессионала (перерыв, отпуск, обучение)
// Для разовых блоков значимы полные StartAt/EndAt,
// для повторяющихся - только время суток
type TimeBlock struct {
	ID             string
	ProfessionalID string
	Title          string
	StartAt        time.Time
	EndAt          time.Time
	Recurrence     Recurrence
	CreatedAt      time.Time
}

// IsRecurring повторяющийся блок
func (b *TimeBlock) IsRecurring() bool {
	return b.Recurrence.IsRecurring()
}

// DateKey календарная дата в виде числа YYYYMMDD (время и часовой пояс не учитываются)
func DateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// StartOfDay полночь того же дня в том же часовом поясе
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
