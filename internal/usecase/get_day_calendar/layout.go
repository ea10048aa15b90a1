package get_day_calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const minutesInDay = 24 * 60

// Position вертикальное положение прямоугольника на дорожке дня (px)
type Position struct {
	Top    float64
	Height float64
}

// BlockPosition блокировка, видимая в выбранный день
type BlockPosition struct {
	Block *domain.TimeBlock
	Start types.TimeString // видимое начало после обрезки окном
	End   types.TimeString // видимый конец после обрезки окном
	Position
}

// AppointmentPosition запись, видимая в календаре
type AppointmentPosition struct {
	Appointment *domain.Appointment
	Start       types.TimeString
	End         types.TimeString
	Position
}

// LayoutBlocksForDay раскладывает блокировки на день date.
// Время блокировок переводится в часовой пояс date.
// professionalFilter: "all" (или пусто) - все профессионалы
func LayoutBlocksForDay(blocks []*domain.TimeBlock, date time.Time, professionalFilter string) []BlockPosition {
	result := make([]BlockPosition, 0, len(blocks))

	for _, block := range blocks {
		if !matchesProfessional(block.ProfessionalID, professionalFilter) {
			continue
		}

		startMin, endMin, ok := blockMinutesForDay(block, date)
		if !ok {
			continue
		}

		startMin, endMin, ok = clipToWindow(startMin, endMin)
		if !ok {
			continue
		}

		result = append(result, BlockPosition{
			Block:    block,
			Start:    mustTimeString(startMin),
			End:      mustTimeString(endMin),
			Position: position(startMin, endMin, domain.MinBlockHeightPx),
		})
	}

	return result
}

// PositionAppointment позиция записи в окне 08:00-20:00.
// Используется время суток StartAt/EndAt в их часовом поясе.
// false, если запись целиком вне окна
func PositionAppointment(apt *domain.Appointment) (Position, bool) {
	startMin, endMin := appointmentMinutes(apt)

	startMin, endMin, ok := clipToWindow(startMin, endMin)
	if !ok {
		return Position{}, false
	}

	return position(startMin, endMin, domain.MinAppointmentHeightPx), true
}

// LayoutAppointments раскладывает записи, пропуская отмененные.
// Порядок входа сохраняется, пересечения не разводятся по колонкам
func LayoutAppointments(apts []*domain.Appointment) []AppointmentPosition {
	result := make([]AppointmentPosition, 0, len(apts))

	for _, apt := range apts {
		if apt.IsCancelled() {
			continue
		}

		startMin, endMin := appointmentMinutes(apt)
		startMin, endMin, ok := clipToWindow(startMin, endMin)
		if !ok {
			continue
		}

		result = append(result, AppointmentPosition{
			Appointment: apt,
			Start:       mustTimeString(startMin),
			End:         mustTimeString(endMin),
			Position:    position(startMin, endMin, domain.MinAppointmentHeightPx),
		})
	}

	return result
}

func matchesProfessional(professionalID, filter string) bool {
	return filter == "" || filter == domain.ProfessionalFilterAll || professionalID == filter
}

// blockMinutesForDay возвращает начало и конец блокировки в минутах от полуночи дня date
func blockMinutesForDay(block *domain.TimeBlock, date time.Time) (int, int, bool) {
	loc := date.Location()
	start := block.StartAt.In(loc)
	end := block.EndAt.In(loc)

	if block.IsRecurring() {
		if !block.Recurrence.AppliesOn(date) {
			return 0, 0, false
		}
		// Дата хранимых start/end игнорируется, берется только время суток
		startMin, endMin := minutesOfDay(start), minutesOfDay(end)
		if endMin <= startMin && end.After(start) {
			endMin = minutesInDay
		}
		return startMin, endMin, true
	}

	day := domain.DateKey(date)
	startDay := domain.DateKey(start)
	endDay := domain.DateKey(end)
	if day < startDay || day > endDay {
		return 0, 0, false
	}

	// Промежуточные дни многодневной блокировки занимают все окно
	startMin := domain.CalendarStartMinutes
	if day == startDay {
		startMin = minutesOfDay(start)
	}
	endMin := domain.CalendarEndMinutes
	if day == endDay {
		endMin = minutesOfDay(end)
	}

	return startMin, endMin, true
}

func appointmentMinutes(apt *domain.Appointment) (int, int) {
	startMin := minutesOfDay(apt.StartAt)
	endMin := minutesOfDay(apt.EndAt.In(apt.StartAt.Location()))
	if domain.DateKey(apt.EndAt.In(apt.StartAt.Location())) > domain.DateKey(apt.StartAt) {
		endMin = minutesInDay
	}
	return startMin, endMin
}

// clipToWindow обрезает интервал окном календаря; false, если пересечения нет
func clipToWindow(startMin, endMin int) (int, int, bool) {
	if endMin <= domain.CalendarStartMinutes || startMin >= domain.CalendarEndMinutes {
		return 0, 0, false
	}
	if startMin < domain.CalendarStartMinutes {
		startMin = domain.CalendarStartMinutes
	}
	if endMin > domain.CalendarEndMinutes {
		endMin = domain.CalendarEndMinutes
	}
	return startMin, endMin, true
}

func position(startMin, endMin int, minHeight float64) Position {
	height := float64(endMin-startMin) * pxPerMinute
	if height < minHeight {
		height = minHeight
	}
	return Position{
		Top:    float64(startMin-domain.CalendarStartMinutes) * pxPerMinute,
		Height: height,
	}
}

const pxPerMinute = float64(domain.HourHeightPx) / 60

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// mustTimeString минуты уже обрезаны окном, ошибки быть не может
func mustTimeString(minutes int) types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		panic(err)
	}
	return ts
}
