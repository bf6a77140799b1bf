package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машинные коды ошибок API. Сообщения не локализуются на этом уровне,
// клиент строит текст по коду и параметрам.
const (
	CodeMalformedInput       = "MALFORMED_INPUT"
	CodeStudentNotSelected   = "STUDENT_NOT_SELECTED"
	CodeStudentNotFound      = "STUDENT_NOT_FOUND"
	CodeLessonNotFound       = "LESSON_NOT_FOUND"
	CodeBlockNotFound        = "BLOCK_NOT_FOUND"
	CodeDatePassed           = "DATE_ALREADY_PASSED"
	CodeTooFarAhead          = "TOO_FAR_AHEAD"
	CodeInsufficientLeadTime = "INSUFFICIENT_LEAD_TIME"
	CodeTimeTooEarly         = "TIME_TOO_EARLY"
	CodeTimeTooLate          = "TIME_TOO_LATE"
	CodeSlotAlreadyBooked    = "SLOT_ALREADY_BOOKED"
	CodeTimeBlocked          = "TIME_BLOCKED"
	CodePriceTooLow          = "PRICE_TOO_LOW"
	CodePriceImplausible     = "PRICE_IMPLAUSIBLE"
	CodeInvalidRange         = "INVALID_RANGE"
	CodeBlockOverlapsBlock   = "BLOCK_OVERLAPS_BLOCK"
	CodeBlockOverlapsLesson  = "BLOCK_OVERLAPS_LESSON"
	CodeUsernameTaken        = "USERNAME_TAKEN"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorBody тело ошибки: стабильный код, сообщение и структурные параметры
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// ErrorResponse конверт ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет ответ со статусом и JSON-телом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondErrorParams пишет ошибку с кодом, сообщением и параметрами
func RespondErrorParams(w http.ResponseWriter, status int, code, message string, params map[string]interface{}) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Params: params}})
}

// RespondBadRequest пишет 400 с кодом и сообщением
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound пишет 404 с кодом и сообщением
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondForbidden пишет 403 с кодом и сообщением
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondInternalError пишет 500 с общим кодом
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}
