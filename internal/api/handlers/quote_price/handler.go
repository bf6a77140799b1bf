package quote_price

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/api/handlers"
	"github.com/m04kA/SMC-LessonsService/internal/domain"
	quotePrice "github.com/m04kA/SMC-LessonsService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidStudentID = "некорректный ID студента"
	msgStudentNotFound  = "студент не найден"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Price     int    `json:"price"` // обязательный минимум для записи
}

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/price?date=YYYY-MM-DD&time=HH:MM&studentId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /price - Invalid date: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /price - Invalid time: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidTime)
		return
	}

	var studentID *int64
	if raw := query.Get("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /price - Invalid student ID: %s", raw)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, msgInvalidStudentID)
			return
		}
		studentID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &quotePrice.Request{
		Date:      date,
		StartTime: startTime,
		StudentID: studentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("GET /price - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeMalformedInput, err.Error())

		case errors.Is(err, quotePrice.ErrStudentNotFound):
			h.logger.Warn("GET /price - Student not found")
			handlers.RespondNotFound(w, handlers.CodeStudentNotFound, msgStudentNotFound)

		default:
			h.logger.Error("GET /price - Failed to quote price: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /price - Price quoted: date=%s, time=%s, price=%d",
		query.Get("date"), query.Get("time"), result.Price)
	handlers.RespondJSON(w, http.StatusOK, &QuoteResponse{
		Date:      result.Date.Format(domain.DateFormat),
		StartTime: result.StartTime.String(),
		Price:     result.Price,
	})
}
