package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minutesInDay = 24 * 60
	layoutHHMM   = "15:04"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString время суток с точностью до минуты ("HH:MM")
// Значение 24:00 допустимо и обозначает конец суток
type TimeString struct {
	minutes int
}

// NewTimeString берет время суток из time.Time (дата и секунды игнорируются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromMinutes создает время из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesInDay {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: minutes}, nil
}

// MustTimeString для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" || s == "24:00:00" {
		return TimeString{minutes: minutesInDay}, nil
	}

	// PostgreSQL отдает тип time как "HH:MM:SS"
	if len(s) == len("15:04:05") {
		s = s[:5]
	}

	t, err := time.Parse(layoutHHMM, s)
	if err != nil {
		return TimeString{}, ErrInvalidTimeString
	}
	return NewTimeString(t), nil
}

// Minutes количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalJSON сериализует как "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON парсит "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
