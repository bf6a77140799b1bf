package delete_lesson

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/api/middleware"
	"github.com/m04kA/SMC-LessonsService/internal/service/lessons"
)

const (
	msgInvalidLessonID = "некорректный ID урока"
	msgLessonNotFound  = "урок не найден"
	msgAccessDenied    = "нет доступа к чужому уроку"
)

type Handler struct {
	service LessonService
	logger  Logger
}

func NewHandler(service LessonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/lessons/{lessonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	lessonID, err := strconv.ParseInt(vars["lessonId"], 10, 64)
	if err != nil || lessonID <= 0 {
		h.logger.Warn("DELETE /lessons/{lessonId} - Invalid lesson ID: %s", vars["lessonId"])
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidLessonID)
		return
	}

	callerID, _ := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	if err := h.service.Delete(r.Context(), lessonID, callerID, isAdmin); err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("DELETE /lessons/{lessonId} - Lesson not found: id=%d", lessonID)
			handlers.RespondNotFound(w, handlers.CodeLessonNotFound, msgLessonNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("DELETE /lessons/{lessonId} - Access denied: id=%d, caller=%d", lessonID, callerID)
			handlers.RespondForbidden(w, handlers.CodeAccessDenied, msgAccessDenied)

		default:
			h.logger.Error("DELETE /lessons/{lessonId} - Failed to delete lesson: id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /lessons/{lessonId} - Lesson deleted: id=%d, caller=%d", lessonID, callerID)
	w.WriteHeader(http.StatusNoContent)
}
