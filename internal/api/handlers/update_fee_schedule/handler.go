package update_fee_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/feeschedule"
	"github.com/m04kA/SMC-SalonService/internal/service/feeschedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidFees        = "taxas inválidas: parcelas de 1 a 12 e percentuais entre 0 e 100"
)

type Handler struct {
	service FeeScheduleService
	logger  Logger
}

func NewHandler(service FeeScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/fee-schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fee-schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	fees, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, feeschedule.ErrInvalidInput) {
			h.logger.Warn("PUT /fee-schedule - Invalid fee schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFees)
			return
		}
		h.logger.Error("PUT /fee-schedule - Failed to update fee schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /fee-schedule - Fee schedule updated: user_id=%s, admin_fee=%s", userID, fees.AdminFeePercent)
	handlers.RespondJSON(w, http.StatusOK, fees)
}
