package list_students

import (
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
)

type Handler struct {
	service StudentService
	logger  Logger
}

func NewHandler(service StudentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /students - Failed to list students: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /students - Students retrieved: count=%d", len(result.Students))
	handlers.RespondJSON(w, http.StatusOK, result)
}
