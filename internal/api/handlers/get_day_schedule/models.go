package get_day_schedule

import (
	"github.com/m04kA/SMC-LessonsService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-LessonsService/internal/usecase/get_day_schedule"
)

// FreeSlotResponse свободный слот с минимальной ценой
type FreeSlotResponse struct {
	StartTime string `json:"startTime"` // "14:00"
	Price     int    `json:"price"`
}

// BlockedRangeResponse заблокированный интервал
type BlockedRangeResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date     string                 `json:"date"` // "2026-09-15"
	Occupied []string               `json:"occupied"`
	Blocked  []BlockedRangeResponse `json:"blocked"`
	Free     []FreeSlotResponse     `json:"free"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	out := &DayScheduleResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Occupied: make([]string, 0, len(resp.Occupied)),
		Blocked:  make([]BlockedRangeResponse, 0, len(resp.Blocked)),
		Free:     make([]FreeSlotResponse, 0, len(resp.Free)),
	}

	for _, t := range resp.Occupied {
		out.Occupied = append(out.Occupied, t.String())
	}
	for _, b := range resp.Blocked {
		out.Blocked = append(out.Blocked, BlockedRangeResponse{
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		})
	}
	for _, f := range resp.Free {
		out.Free = append(out.Free, FreeSlotResponse{
			StartTime: f.StartTime.String(),
			Price:     f.Price,
		})
	}

	return out
}
