package timeblocks

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks/models"
)

// validateCreateRequest проверяет поля запроса, не связанные с повторением
func validateCreateRequest(req *models.CreateRequest) error {
	if _, err := uuid.Parse(req.ProfessionalID); err != nil {
		return fmt.Errorf("%w: professionalId must be a UUID", ErrInvalidInput)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxTimeBlockTitle {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTimeBlockTitle)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return ErrInvalidTimeRange
	}

	return nil
}

// buildRecurrence собирает вариант повторения из полей запроса
func buildRecurrence(req *models.CreateRequest) (domain.Recurrence, error) {
	if !req.IsRecurring {
		return domain.NoRecurrence(), nil
	}

	if req.RecurrenceType == nil {
		return domain.Recurrence{}, fmt.Errorf("%w: recurrenceType is required for recurring blocks", ErrInvalidRecurrence)
	}

	var until *time.Time
	if req.RecurrenceEndDate != nil {
		date, err := time.Parse(domain.DateFormat, *req.RecurrenceEndDate)
		if err != nil {
			return domain.Recurrence{}, fmt.Errorf("%w: recurrenceEndDate must be YYYY-MM-DD", ErrInvalidRecurrence)
		}
		if domain.DateKey(date) < domain.DateKey(req.StartAt) {
			return domain.Recurrence{}, fmt.Errorf("%w: recurrenceEndDate is before startAt", ErrInvalidRecurrence)
		}
		until = &date
	}

	switch domain.RecurrenceKind(*req.RecurrenceType) {
	case domain.RecurrenceDaily:
		return domain.DailyRecurrence(until), nil
	case domain.RecurrenceWeekly:
		days, err := domain.NewWeekdaySet(req.RecurrenceDays)
		if err != nil {
			return domain.Recurrence{}, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		}
		rec, err := domain.WeeklyRecurrence(days, until)
		if err != nil {
			return domain.Recurrence{}, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		}
		return rec, nil
	default:
		return domain.Recurrence{}, fmt.Errorf("%w: unknown recurrenceType %q", ErrInvalidRecurrence, *req.RecurrenceType)
	}
}
