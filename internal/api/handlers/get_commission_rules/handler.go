package get_commission_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
)

const (
	msgInvalidProfessionalID = "ID do profissional inválido"
	msgProfessionalNotFound  = "profissional não encontrado"
)

type Handler struct {
	service CommissionService
	logger  Logger
}

func NewHandler(service CommissionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/commission-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.UUIDVar(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/commission-rules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	rules, err := h.service.GetRules(r.Context(), professionalID)
	if err != nil {
		if errors.Is(err, commission.ErrProfessionalNotFound) {
			h.logger.Warn("GET /professionals/{id}/commission-rules - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)
			return
		}
		h.logger.Error("GET /professionals/{id}/commission-rules - Failed to get rules: professional_id=%s, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rules)
}
