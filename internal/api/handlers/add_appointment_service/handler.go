package add_appointment_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidAppointmentID = "ID do atendimento inválido"
	msgInvalidService       = "serviço inválido: informe serviceId, serviceName e preço não negativo"
	msgNotFound             = "atendimento não encontrado"
	msgAlreadyAdded         = "serviço já adicionado ao atendimento"
	msgNotEditable          = "serviços só podem ser alterados em atendimentos confirmados"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.UUIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/services - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.AddServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.service.AddService(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/services - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/services - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrServiceAlreadyAdded):
			h.logger.Warn("POST /appointments/{id}/services - Already added: appointment_id=%s, service_id=%s", appointmentID, req.ServiceID)
			handlers.RespondConflict(w, msgAlreadyAdded)

		case errors.Is(err, appointments.ErrNotEditable):
			h.logger.Warn("POST /appointments/{id}/services - Not editable: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		default:
			h.logger.Error("POST /appointments/{id}/services - Failed to add service: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/services - Service added: appointment_id=%s, service_id=%s", appointmentID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, appointment)
}
