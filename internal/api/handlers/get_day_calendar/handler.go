package get_day_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getDayCalendar "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_calendar"
)

const (
	msgInvalidDate         = "data inválida, formato esperado AAAA-MM-DD"
	msgInvalidProfessional = "profissional inválido: informe um ID ou \"all\""
)

type Handler struct {
	useCase GetDayCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetDayCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?date=YYYY-MM-DD&professionalId=all|uuid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getDayCalendar.Request{
		Date:           query.Get("date"),
		ProfessionalID: query.Get("professionalId"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDayCalendar.ErrInvalidDate):
			h.logger.Warn("GET /calendar - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDayCalendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid professional filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessional)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
