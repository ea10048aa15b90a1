package get_day_calendar

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	getDayCalendar "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_calendar"
	"github.com/m04kA/SMC-SalonService/pkg/money"
)

// WindowResponse окно календаря
type WindowResponse struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	HourHeightPx int    `json:"hourHeightPx"`
}

// BlockResponse блокировка с позицией на дорожке
type BlockResponse struct {
	ID             string  `json:"id"`
	ProfessionalID string  `json:"professionalId"`
	Title          string  `json:"title"`
	IsRecurring    bool    `json:"isRecurring"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Top            float64 `json:"top"`
	Height         float64 `json:"height"`
}

// AppointmentResponse запись с позицией на дорожке
type AppointmentResponse struct {
	ID             string     `json:"id"`
	ProfessionalID string     `json:"professionalId"`
	ClientName     string     `json:"clientName"`
	Status         string     `json:"status"`
	Start          string     `json:"start"`
	End            string     `json:"end"`
	Top            float64    `json:"top"`
	Height         float64    `json:"height"`
	Total          money.View `json:"total"`
}

// DayCalendarResponse HTTP response model
type DayCalendarResponse struct {
	Date           string                `json:"date"`
	ProfessionalID string                `json:"professionalId"`
	Window         WindowResponse        `json:"window"`
	Blocks         []BlockResponse       `json:"blocks"`
	Appointments   []AppointmentResponse `json:"appointments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayCalendar.Response) *DayCalendarResponse {
	out := &DayCalendarResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ProfessionalID: resp.ProfessionalFilter,
		Window: WindowResponse{
			Start:        "08:00",
			End:          "20:00",
			HourHeightPx: domain.HourHeightPx,
		},
		Blocks:       make([]BlockResponse, 0, len(resp.Blocks)),
		Appointments: make([]AppointmentResponse, 0, len(resp.Appointments)),
	}

	for _, b := range resp.Blocks {
		out.Blocks = append(out.Blocks, BlockResponse{
			ID:             b.Block.ID,
			ProfessionalID: b.Block.ProfessionalID,
			Title:          b.Block.Title,
			IsRecurring:    b.Block.IsRecurring(),
			Start:          b.Start.String(),
			End:            b.End.String(),
			Top:            b.Top,
			Height:         b.Height,
		})
	}

	for _, a := range resp.Appointments {
		out.Appointments = append(out.Appointments, AppointmentResponse{
			ID:             a.Appointment.ID,
			ProfessionalID: a.Appointment.ProfessionalID,
			ClientName:     a.Appointment.ClientName,
			Status:         string(a.Appointment.Status),
			Start:          a.Start.String(),
			End:            a.End.String(),
			Top:            a.Top,
			Height:         a.Height,
			Total:          money.NewView(a.Appointment.TotalCharged()),
		})
	}

	return out
}
