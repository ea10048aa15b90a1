package create_time_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks"
	"github.com/m04kA/SMC-SalonService/internal/service/timeblocks/models"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidInput         = "dados do bloqueio inválidos"
	msgInvalidTimeRange     = "o fim do bloqueio deve ser posterior ao início"
	msgInvalidRecurrence    = "recorrência inválida: use daily ou weekly com ao menos um dia da semana (0-6)"
	msgProfessionalNotFound = "profissional não encontrado"
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

// Handle POST /api/v1/time-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, timeblocks.ErrInvalidTimeRange):
			h.logger.Warn("POST /time-blocks - Invalid time range: professional_id=%s", req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, timeblocks.ErrInvalidRecurrence):
			h.logger.Warn("POST /time-blocks - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, timeblocks.ErrInvalidInput):
			h.logger.Warn("POST /time-blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, timeblocks.ErrProfessionalNotFound):
			h.logger.Warn("POST /time-blocks - Professional not found: professional_id=%s", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("POST /time-blocks - Failed to create time block: professional_id=%s, error=%v", req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-blocks - Time block created: id=%s, professional_id=%s, recurring=%t",
		block.ID, block.ProfessionalID, block.IsRecurring)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
