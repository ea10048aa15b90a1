package complete_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidAppointmentID = "ID do atendimento inválido"
	msgInvalidPayment       = "forma de pagamento ou número de parcelas inválido"
	msgNotFound             = "atendimento não encontrado"
	msgProfessionalNotFound = "profissional não encontrado"
	msgNotConfirmed         = "somente atendimentos confirmados podem ser finalizados"
	msgAlreadyCompleted     = "a comissão deste atendimento já foi registrada"
	msgNoServices           = "o atendimento não possui serviços"
)

type Handler struct {
	useCase CompleteAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.UUIDVar(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CompleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, completeAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		case errors.Is(err, completeAppointment.ErrInvalidPayment):
			h.logger.Warn("PATCH /appointments/{id}/complete - Invalid payment: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, completeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAppointment.ErrProfessionalNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - Professional not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, completeAppointment.ErrNotConfirmed):
			h.logger.Warn("PATCH /appointments/{id}/complete - Not confirmed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, completeAppointment.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /appointments/{id}/complete - Already completed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCompleted)

		case errors.Is(err, completeAppointment.ErrNoServices):
			h.logger.Warn("PATCH /appointments/{id}/complete - No services: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoServices)

		default:
			h.logger.Error("PATCH /appointments/{id}/complete - Failed to complete appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/complete - Appointment completed: appointment_id=%s, entry_id=%d",
		appointmentID, result.EntryID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
