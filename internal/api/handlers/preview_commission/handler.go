package preview_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidPayment       = "forma de pagamento ou número de parcelas inválido"
	msgInvalidRule          = "regra de comissão inválida"
	msgInvalidInput         = "dados inválidos para o cálculo da comissão"
	msgProfessionalNotFound = "profissional não encontrado"
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

// Handle POST /api/v1/commissions/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /commissions/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, commission.ErrInvalidPayment):
			h.logger.Warn("POST /commissions/preview - Invalid payment: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, commission.ErrInvalidRule):
			h.logger.Warn("POST /commissions/preview - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, commission.ErrInvalidInput):
			h.logger.Warn("POST /commissions/preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, commission.ErrProfessionalNotFound):
			h.logger.Warn("POST /commissions/preview - Professional not found")
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("POST /commissions/preview - Failed to calculate commission: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /commissions/preview - Commission calculated: services=%d, net=%s",
		len(req.Services), result.NetCommission.Value)
	handlers.RespondJSON(w, http.StatusOK, result)
}
