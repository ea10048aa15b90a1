package list_time_blocks

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const msgInvalidProfessionalID = "ID do profissional inválido"

type Handler struct {
	service TimeBlockService
	logger  Logger
}

func NewHandler(service TimeBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/time-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.UUIDVar(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/time-blocks - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	blocks, err := h.service.ListByProfessional(r.Context(), professionalID)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/time-blocks - Failed to list time blocks: professional_id=%s, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, blocks)
}
