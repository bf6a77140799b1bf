package create_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/api/middleware"
	createLesson "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgStudentNotFound    = "студент не найден"
	msgDatePassed         = "момент начала урока уже прошёл"
	msgTooFarAhead        = "дата за горизонтом записи"
	msgInsufficientLead   = "до урока остаётся меньше минимального запаса времени"
	msgTimeTooEarly       = "время раньше начала рабочего дня"
	msgTimeTooLate        = "время позже конца рабочего дня"
	msgSlotAlreadyBooked  = "слот уже занят"
	msgTimeBlocked        = "время заблокировано администратором"
	msgPriceTooLow        = "цена ниже обязательного минимума"
	msgPriceImplausible   = "цена превышает допустимый потолок"
)

type Handler struct {
	useCase CreateLessonUseCase
	logger  Logger
}

func NewHandler(useCase CreateLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeAccessDenied, "missing user identity")
		return
	}

	var req CreateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /lessons - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, studentID, err)
		return
	}

	h.logger.Info("POST /lessons - Lesson created: id=%d, student=%d", result.ID, studentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondUseCaseError переводит ошибку конвейера проверок в HTTP ответ
// со стабильным кодом и параметрами
func (h *Handler) respondUseCaseError(w http.ResponseWriter, studentID int64, err error) {
	var slotConflict *createLesson.SlotConflictError
	var priceErr *createLesson.PriceError

	switch {
	case errors.Is(err, createLesson.ErrInvalidInput):
		h.logger.Warn("POST /lessons - Invalid input: student=%d, error=%v", studentID, err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

	case errors.Is(err, createLesson.ErrStudentNotFound):
		h.logger.Warn("POST /lessons - Student not found: student=%d", studentID)
		handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)

	case errors.Is(err, createLesson.ErrDatePassed):
		h.logger.Warn("POST /lessons - Date passed: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeDatePassed, msgDatePassed)

	case errors.Is(err, createLesson.ErrTooFarAhead):
		h.logger.Warn("POST /lessons - Too far ahead: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTooFarAhead, msgTooFarAhead)

	case errors.Is(err, createLesson.ErrInsufficientLeadTime):
		h.logger.Warn("POST /lessons - Insufficient lead time: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeInsufficientLeadTime, msgInsufficientLead)

	case errors.Is(err, createLesson.ErrTimeTooEarly):
		h.logger.Warn("POST /lessons - Time too early: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTimeTooEarly, msgTimeTooEarly)

	case errors.Is(err, createLesson.ErrTimeTooLate):
		h.logger.Warn("POST /lessons - Time too late: student=%d", studentID)
		handlers.RespondBadRequest(w, handlers.CodeTimeTooLate, msgTimeTooLate)

	case errors.As(err, &slotConflict):
		h.logger.Warn("POST /lessons - Slot already booked: student=%d, conflicting=%s",
			studentID, slotConflict.ConflictingStart)
		handlers.RespondErrorParams(w, http.StatusConflict, handlers.CodeSlotAlreadyBooked, msgSlotAlreadyBooked,
			map[string]interface{}{"conflictingStart": slotConflict.ConflictingStart.String()})

	case errors.Is(err, createLesson.ErrTimeBlocked):
		h.logger.Warn("POST /lessons - Time blocked: student=%d", studentID)
		handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeBlocked, msgTimeBlocked)

	case errors.As(err, &priceErr):
		code := handlers.CodePriceTooLow
		msg := msgPriceTooLow
		if errors.Is(err, createLesson.ErrPriceImplausible) {
			code = handlers.CodePriceImplausible
			msg = msgPriceImplausible
		}
		h.logger.Warn("POST /lessons - Price rejected: student=%d, proposed=%d, bound=%d",
			studentID, priceErr.Proposed, priceErr.Bound)
		handlers.RespondErrorParams(w, http.StatusBadRequest, code, msg,
			map[string]interface{}{"proposed": priceErr.Proposed, "bound": priceErr.Bound})

	default:
		h.logger.Error("POST /lessons - Failed to create lesson: student=%d, error=%v", studentID, err)
		handlers.RespondInternalError(w)
	}
}
