package get_commission_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

const (
	msgInvalidProfessionalID = "ID do profissional inválido"
	msgInvalidDate           = "data inválida, formato esperado AAAA-MM-DD"
	msgInvalidPeriod         = "a data final não pode ser anterior à data inicial"
	msgProfessionalNotFound  = "profissional não encontrado"
)

type Handler struct {
	service  CommissionService
	location *time.Location
	logger   Logger
}

// NewHandler location - часовой пояс салона для границ дат
func NewHandler(service CommissionService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/commissions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.UUIDVar(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/commissions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	from, err := h.parseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/commissions - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := h.parseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/commissions - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	report, err := h.service.GetReport(r.Context(), &models.ReportRequest{
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, commission.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/commissions - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, commission.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/commissions - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/commissions - Failed to build report: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/commissions - Report built: professional_id=%s, entries=%d",
		professionalID, len(report.Entries))
	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(domain.DateFormat, value, h.location)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
