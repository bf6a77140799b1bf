package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Request модель запроса расписания на дату. StudentID влияет только
// на котировку цены свободных слотов (персональные цены студента).
type Request struct {
	Date      time.Time
	StudentID *int64
}

// FreeSlot свободный для записи часовой слот с минимальной ценой
type FreeSlot struct {
	StartTime types.TimeString
	Price     int
}

// BlockedRange заблокированный администратором интервал
type BlockedRange struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response картина занятости даты
type Response struct {
	Date     time.Time
	Occupied []types.TimeString
	Blocked  []BlockedRange
	Free     []FreeSlot
}
