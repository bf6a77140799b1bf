package register_student

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/students"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUsernameTaken      = "логин уже занят"
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

// Handle POST /api/v1/students
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /students - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, students.ErrInvalidInput):
			h.logger.Warn("POST /students - Validation failed: username=%s, error=%v", req.Username, err)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

		case errors.Is(err, students.ErrUsernameTaken):
			h.logger.Warn("POST /students - Username taken: username=%s", req.Username)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeUsernameTaken, msgUsernameTaken)

		default:
			h.logger.Error("POST /students - Failed to register: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /students - Student registered: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
