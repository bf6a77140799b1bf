package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-LessonsService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStudentID = "некорректный ID студента"
	msgStudentNotFound  = "студент не найден"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /schedule/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidDate)
		return
	}

	// studentId управляет персональными ценами в котировках (опционально)
	var studentID *int64
	if raw := r.URL.Query().Get("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /schedule/{date} - Invalid student ID: %s", raw)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidStudentID)
			return
		}
		studentID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		Date:      date,
		StudentID: studentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

		case errors.Is(err, getDaySchedule.ErrStudentNotFound):
			h.logger.Warn("GET /schedule/{date} - Student not found")
			handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)

		default:
			h.logger.Error("GET /schedule/{date} - Failed to get schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/{date} - Schedule retrieved: date=%s, occupied=%d, blocked=%d, free=%d",
		vars["date"], len(result.Occupied), len(result.Blocked), len(result.Free))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
