package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/blocks"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgBlockNotFound  = "блокировка не найдена"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil || blockID <= 0 {
		h.logger.Warn("DELETE /admin/blocks/{blockId} - Invalid block ID: %s", vars["blockId"])
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		if errors.Is(err, blocks.ErrBlockNotFound) {
			h.logger.Warn("DELETE /admin/blocks/{blockId} - Block not found: id=%d", blockID)
			handlers.RespondNotFound(w, handlers.CodeBlockNotFound, msgBlockNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blocks/{blockId} - Failed to delete block: id=%d, error=%v", blockID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocks/{blockId} - Block deleted: id=%d", blockID)
	w.WriteHeader(http.StatusNoContent)
}
