package get_day_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UseCase use case получения календаря на день
type UseCase struct {
	timeBlockRepo   TimeBlockRepository
	appointmentRepo AppointmentRepository
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс салона (nil = UTC)
func NewUseCase(
	timeBlockRepo TimeBlockRepository,
	appointmentRepo AppointmentRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		timeBlockRepo:   timeBlockRepo,
		appointmentRepo: appointmentRepo,
		location:        location,
		logger:          logger,
	}
}

// Execute возвращает блокировки и записи дня с позициями на дорожке 08:00-20:00
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayCalendar: date=%s, professional=%s", req.Date, req.ProfessionalID)

	// 1. Валидация входных данных
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetDayCalendar: validation failed: %v", err)
		return nil, err
	}
	filter, professionalID, err := normalizeFilter(req.ProfessionalID)
	if err != nil {
		uc.logger.Warn("GetDayCalendar: validation failed: %v", err)
		return nil, err
	}

	dayStart := date
	dayEnd := dayStart.AddDate(0, 0, 1)

	// 2. Кандидаты в блокировки: повторяющиеся + разовые, пересекающие день
	blocks, err := uc.timeBlockRepo.ListForDay(ctx, dayStart, dayEnd, professionalID)
	if err != nil {
		uc.logger.Error("GetDayCalendar: failed to list time blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list time blocks: %v", ErrInternal, err)
	}

	// 3. Записи, пересекающие день
	appointments, err := uc.appointmentRepo.GetForDay(ctx, domain.DayAppointmentsFilter{
		DayStart:       dayStart,
		DayEnd:         dayEnd,
		ProfessionalID: professionalID,
	})
	if err != nil {
		uc.logger.Error("GetDayCalendar: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Раскладка
	blockPositions := LayoutBlocksForDay(blocks, date, filter)
	appointmentPositions := LayoutAppointments(clampToDay(appointments, dayStart, dayEnd))

	uc.logger.Info("GetDayCalendar: date=%s, professional=%s: %d blocks, %d appointments",
		req.Date, filter, len(blockPositions), len(appointmentPositions))

	return &Response{
		Date:               date,
		ProfessionalFilter: filter,
		Blocks:             blockPositions,
		Appointments:       appointmentPositions,
	}, nil
}

// clampToDay переводит записи в часовой пояс салона и обрезает их границами дня
func clampToDay(appointments []*domain.Appointment, dayStart, dayEnd time.Time) []*domain.Appointment {
	loc := dayStart.Location()
	result := make([]*domain.Appointment, 0, len(appointments))

	for _, apt := range appointments {
		view := *apt
		view.StartAt = apt.StartAt.In(loc)
		view.EndAt = apt.EndAt.In(loc)
		if view.StartAt.Before(dayStart) {
			view.StartAt = dayStart
		}
		if view.EndAt.After(dayEnd) {
			view.EndAt = dayEnd
		}
		result = append(result, &view)
	}

	return result
}
