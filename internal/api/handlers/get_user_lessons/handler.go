package get_user_lessons

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/api/middleware"
	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/internal/service/lessons"
	"github.com/m04kA/SMC-LessonsService/internal/service/lessons/models"
)

const (
	msgInvalidUserID   = "некорректный ID студента"
	msgInvalidFromDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAccessDenied    = "нет доступа к урокам другого студента"
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

// Handle GET /api/v1/users/{userId}/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("GET /users/{userId}/lessons - Invalid user ID: %s", vars["userId"])
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidUserID)
		return
	}

	// Студент видит только свои уроки, администратор - любые
	callerID, _ := middleware.UserID(r.Context())
	if callerID != userID && !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /users/{userId}/lessons - Access denied: caller=%d, user=%d", callerID, userID)
		handlers.RespondForbidden(w, handlers.CodeAccessDenied, msgAccessDenied)
		return
	}

	var fromDate *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/lessons - Invalid from date: %s", raw)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidFromDate)
			return
		}
		fromDate = &parsed
	}

	result, err := h.service.GetUserLessons(r.Context(), &models.GetUserLessonsRequest{
		StudentID: userID,
		FromDate:  fromDate,
	})
	if err != nil {
		if errors.Is(err, lessons.ErrInvalidInput) {
			h.logger.Warn("GET /users/{userId}/lessons - Invalid input: user=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())
			return
		}
		h.logger.Error("GET /users/{userId}/lessons - Failed to get lessons: user=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/lessons - Lessons retrieved: user=%d, count=%d", userID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
