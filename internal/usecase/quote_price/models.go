package quote_price

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Request модель запроса котировки цены слота
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	StudentID *int64 // персональные цены студента, если указан
}

// Response модель ответа с минимальной ценой слота
type Response struct {
	Date      time.Time
	StartTime types.TimeString
	Price     int // обязательный минимум для записи на этот слот
}
