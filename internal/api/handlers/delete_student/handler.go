package delete_student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/students"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgStudentNotFound  = "студент не найден"
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

// Handle DELETE /api/v1/admin/students/{studentId}
// Удаляет студента вместе с его уроками.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil || studentID <= 0 {
		h.logger.Warn("DELETE /admin/students/{studentId} - Invalid student ID: %s", vars["studentId"])
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidStudentID)
		return
	}

	if err := h.service.Delete(r.Context(), studentID); err != nil {
		if errors.Is(err, students.ErrStudentNotFound) {
			h.logger.Warn("DELETE /admin/students/{studentId} - Student not found: id=%d", studentID)
			handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)
			return
		}
		h.logger.Error("DELETE /admin/students/{studentId} - Failed to delete student: id=%d, error=%v", studentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/students/{studentId} - Student deleted: id=%d", studentID)
	w.WriteHeader(http.StatusNoContent)
}
