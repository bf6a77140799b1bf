package create_lesson_admin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	createLessonAdmin "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson_admin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgStudentNotSelected = "студент не выбран"
	msgStudentNotFound    = "студент не найден"
	msgDatePassed         = "момент начала урока уже прошёл"
	msgTooFarAhead        = "дата за горизонтом записи"
	msgInsufficientLead   = "до урока остаётся меньше минимального запаса времени"
	msgTimeTooEarly       = "время раньше начала рабочего дня"
	msgTimeTooLate        = "время позже конца рабочего дня"
	msgSlotAlreadyBooked  = "слот уже занят"
	msgTimeBlocked        = "время заблокировано администратором"
	msgPriceImplausible   = "цена превышает допустимый потолок"
)

type Handler struct {
	useCase CreateLessonAdminUseCase
	logger  Logger
}

func NewHandler(useCase CreateLessonAdminUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateLessonAdminRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/lessons - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, req.StudentID, err)
		return
	}

	h.logger.Info("POST /admin/lessons - Lesson created: id=%d, student=%d", result.ID, req.StudentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, studentID int64, err error) {
	var slotConflict *createLessonAdmin.SlotConflictError

	switch {
	case errors.Is(err, createLessonAdmin.ErrStudentNotSelected):
		h.logger.Warn("POST /admin/lessons - Student not selected")
		handlers.RespondBadRequest(w, handlers.CodeStudentNotSelected, msgStudentNotSelected)

	case errors.Is(err, createLessonAdmin.ErrInvalidInput):
		h.logger.Warn("POST /admin/lessons - Invalid input: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

	case errors.Is(err, createLessonAdmin.ErrStudentNotFound):
		h.logger.Warn("POST /admin/lessons - Student not found: student=%d", studentID)
		handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)

	case errors.Is(err, createLessonAdmin.ErrDatePassed):
		h.logger.Warn("POST /admin/lessons - Date passed: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeDatePassed, msgDatePassed)

	case errors.Is(err, createLessonAdmin.ErrTooFarAhead):
		h.logger.Warn("POST /admin/lessons - Too far ahead: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTooFarAhead, msgTooFarAhead)

	case errors.Is(err, createLessonAdmin.ErrInsufficientLeadTime):
		h.logger.Warn("POST /admin/lessons - Insufficient lead time: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeInsufficientLeadTime, msgInsufficientLead)

	case errors.Is(err, createLessonAdmin.ErrTimeTooEarly):
		h.logger.Warn("POST /admin/lessons - Time too early: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTimeTooEarly, msgTimeTooEarly)

	case errors.Is(err, createLessonAdmin.ErrTimeTooLate):
		h.logger.Warn("POST /admin/lessons - Time too late: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTimeTooLate, msgTimeTooLate)

	case errors.As(err, &slotConflict):
		h.logger.Warn("POST /admin/lessons - Slot already booked: student=%d, conflicting=%s",
			studentID, slotConflict.ConflictingStart)
		handlers.RespondErrorParams(w, http.StatusConflict, handlers.CodeSlotAlreadyBooked, msgSlotAlreadyBooked,
			map[string]interface{}{"conflictingStart": slotConflict.ConflictingStart.String()})

	case errors.Is(err, createLessonAdmin.ErrTimeBlocked):
		h.logger.Warn("POST /admin/lessons - Time blocked: student=%d", studentID)
		handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeBlocked, msgTimeBlocked)

	case errors.Is(err, createLessonAdmin.ErrPriceImplausible):
		h.logger.Warn("POST /admin/lessons - Price implausible: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodePriceImplausible, msgPriceImplausible)

	default:
		h.logger.Error("POST /admin/lessons - Failed to create lesson: student=%d, error=%v", studentID, err)
		handlers.RespondInternalError(w)
	}
}
