package remove_appointment_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ID do atendimento inválido"
	msgInvalidServiceID     = "ID do serviço inválido"
	msgNotFound             = "atendimento não encontrado"
	msgServiceNotFound      = "serviço não encontrado no atendimento"
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

// Handle DELETE /api/v1/appointments/{appointmentId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.UUIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id}/services/{serviceId} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("DELETE /appointments/{id}/services/{serviceId} - Empty service ID")
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	appointment, err := h.service.RemoveService(r.Context(), appointmentID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id}/services/{serviceId} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrServiceNotFound):
			h.logger.Warn("DELETE /appointments/{id}/services/{serviceId} - Service not found: appointment_id=%s, service_id=%s",
				appointmentID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, appointments.ErrNotEditable):
			h.logger.Warn("DELETE /appointments/{id}/services/{serviceId} - Not editable: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		default:
			h.logger.Error("DELETE /appointments/{id}/services/{serviceId} - Failed to remove service: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id}/services/{serviceId} - Service removed: appointment_id=%s, service_id=%s",
		appointmentID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
