package update_commission_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

const (
	msgInvalidRequestBody    = "corpo da requisição inválido"
	msgInvalidProfessionalID = "ID do profissional inválido"
	msgInvalidRule           = "regra de comissão inválida: tipo deve ser percent ou fixed, valor não negativo, percentual até 100 e um serviço por regra"
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

// Handle PUT /api/v1/professionals/{professionalId}/commission-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.UUIDVar(r, "professionalId")
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/commission-rules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req models.ReplaceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/commission-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	rules, err := h.service.ReplaceRules(r.Context(), professionalID, &req)
	if err != nil {
		switch {
		case errors.Is(err, commission.ErrInvalidRule):
			h.logger.Warn("PUT /professionals/{id}/commission-rules - Invalid rule: professional_id=%s, error=%v", professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, commission.ErrProfessionalNotFound):
			h.logger.Warn("PUT /professionals/{id}/commission-rules - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("PUT /professionals/{id}/commission-rules - Failed to replace rules: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/commission-rules - Rules replaced: professional_id=%s, rules=%d, user_id=%s",
		professionalID, len(rules.Rules), userID)
	handlers.RespondJSON(w, http.StatusOK, rules)
}
