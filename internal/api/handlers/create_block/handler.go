package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-LessonsService/internal/usecase/create_block"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgInvalidRange       = "конец интервала должен быть позже начала"
	msgOverlapsBlock      = "интервал пересекается с существующей блокировкой"
	msgDatePassed         = "дата уже прошла"
	msgTooFarAhead        = "дата за горизонтом планирования"
	msgOverlapsLesson     = "интервал пересекается с записанным уроком"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/blocks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, err)
		return
	}

	h.logger.Info("POST /admin/blocks - Block created: id=%d, date=%s, interval=%s-%s",
		result.ID, req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateBlockRequest, err error) {
	var overlap *createBlock.OverlapError

	switch {
	case errors.Is(err, createBlock.ErrInvalidInput):
		h.logger.Warn("POST /admin/blocks - Invalid input: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

	case errors.Is(err, createBlock.ErrInvalidRange):
		h.logger.Warn("POST /admin/blocks - Invalid range: %s-%s", req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRange, msgInvalidRange)

	case errors.Is(err, createBlock.ErrOverlapsBlock) && errors.As(err, &overlap):
		h.logger.Warn("POST /admin/blocks - Overlaps block: %s-%s", overlap.Start, overlap.End)
		handlers.RespondErrorParams(w, http.StatusConflict, handlers.CodeBlockOverlapsBlock, msgOverlapsBlock,
			map[string]interface{}{"conflictingStart": overlap.Start.String(), "conflictingEnd": overlap.End.String()})

	case errors.Is(err, createBlock.ErrDatePassed):
		h.logger.Warn("POST /admin/blocks - Date passed: %s", req.Date)
		handlers.RespondBadRequest(w, handlers.CodeDatePassed, msgDatePassed)

	case errors.Is(err, createBlock.ErrTooFarAhead):
		h.logger.Warn("POST /admin/blocks - Too far ahead: %s", req.Date)
		handlers.RespondBadRequest(w, handlers.CodeTooFarAhead, msgTooFarAhead)

	case errors.Is(err, createBlock.ErrOverlapsLesson) && errors.As(err, &overlap):
		h.logger.Warn("POST /admin/blocks - Overlaps lesson: %s-%s", overlap.Start, overlap.End)
		handlers.RespondErrorParams(w, http.StatusConflict, handlers.CodeBlockOverlapsLesson, msgOverlapsLesson,
			map[string]interface{}{"conflictingStart": overlap.Start.String(), "conflictingEnd": overlap.End.String()})

	default:
		h.logger.Error("POST /admin/blocks - Failed to create block: date=%s, error=%v", req.Date, err)
		handlers.RespondInternalError(w)
	}
}
