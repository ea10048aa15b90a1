package delete_time_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks"
)

const (
	msgInvalidBlockID = "ID do bloqueio inválido"
	msgNotFound       = "bloqueio não encontrado"
)

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

// Handle DELETE /api/v1/time-blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID, err := handlers.UUIDVar(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /time-blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		if errors.Is(err, timeblocks.ErrTimeBlockNotFound) {
			h.logger.Warn("DELETE /time-blocks/{id} - Time block not found: id=%s", blockID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /time-blocks/{id} - Failed to delete time block: id=%s, error=%v", blockID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /time-blocks/{id} - Time block deleted: id=%s", blockID)
	handlers.RespondNoContent(w)
}
