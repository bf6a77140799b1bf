package update_student_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/service/students"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
)

const (
	msgInvalidStudentID   = "некорректный ID студента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStudentNotFound    = "студент не найден"
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

// Handle PUT /api/v1/admin/students/{studentId}/pricing
// Устанавливает персональные цены студента; nil-поле сбрасывает
// соответствующую цену на глобальную.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil || studentID <= 0 {
		h.logger.Warn("PUT /admin/students/{studentId}/pricing - Invalid student ID: %s", vars["studentId"])
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidStudentID)
		return
	}

	var req models.UpdatePricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/students/{studentId}/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdatePricing(r.Context(), studentID, &req); err != nil {
		switch {
		case errors.Is(err, students.ErrInvalidInput):
			h.logger.Warn("PUT /admin/students/{studentId}/pricing - Validation failed: id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

		case errors.Is(err, students.ErrStudentNotFound):
			h.logger.Warn("PUT /admin/students/{studentId}/pricing - Student not found: id=%d", studentID)
			handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)

		default:
			h.logger.Error("PUT /admin/students/{studentId}/pricing - Failed to update pricing: id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.service.GetByID(r.Context(), studentID)
	if err != nil {
		h.logger.Error("PUT /admin/students/{studentId}/pricing - Failed to reload student: id=%d, error=%v", studentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/students/{studentId}/pricing - Pricing updated: id=%d", studentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
