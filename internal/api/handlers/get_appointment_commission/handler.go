package get_appointment_commission

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/commission"
	"github.com/m04kA/SMC-SalonService/internal/service/commission/models"
)

const (
	msgInvalidAppointmentID = "ID do atendimento inválido"
	msgInvalidInstallments  = "número de parcelas inválido"
	msgInvalidPayment       = "forma de pagamento ou número de parcelas inválido"
	msgNotFound             = "atendimento não encontrado"
	msgProfessionalNotFound = "profissional não encontrado"
	msgCancelled            = "atendimento cancelado não gera comissão"
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

// Handle GET /api/v1/appointments/{appointmentId}/commission?paymentMethod=&installments=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.UUIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/commission - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	req := &models.AppointmentCommissionRequest{AppointmentID: appointmentID}

	query := r.URL.Query()
	if method := query.Get("paymentMethod"); method != "" {
		req.PaymentMethod = &method
	}
	if raw := query.Get("installments"); raw != "" {
		installments, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /appointments/{id}/commission - Invalid installments: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInstallments)
			return
		}
		req.Installments = &installments
	}

	result, err := h.service.GetAppointmentCommission(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commission.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/commission - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, commission.ErrProfessionalNotFound):
			h.logger.Warn("GET /appointments/{id}/commission - Professional not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, commission.ErrAppointmentCancelled):
			h.logger.Warn("GET /appointments/{id}/commission - Appointment cancelled: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, commission.ErrInvalidPayment):
			h.logger.Warn("GET /appointments/{id}/commission - Invalid payment: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		default:
			h.logger.Error("GET /appointments/{id}/commission - Failed to calculate commission: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id}/commission - Commission calculated: appointment_id=%s, net=%s",
		appointmentID, result.NetCommission.Value)
	handlers.RespondJSON(w, http.StatusOK, result)
}
