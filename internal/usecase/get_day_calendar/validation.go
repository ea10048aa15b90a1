package get_day_calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// parseDate разбирает дату в часовом поясе салона
func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	date, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected %s, got %q", ErrInvalidDate, domain.DateFormat, value)
	}
	return date, nil
}

// normalizeFilter возвращает фильтр и ID профессионала для запроса к БД (nil = все)
func normalizeFilter(value string) (string, *string, error) {
	if value == "" || value == domain.ProfessionalFilterAll {
		return domain.ProfessionalFilterAll, nil, nil
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", nil, fmt.Errorf("%w: professionalId must be a UUID or %q", ErrInvalidInput, domain.ProfessionalFilterAll)
	}
	return value, &value, nil
}
