package models

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"

	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.TimeBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.TimeBlock) *BlockListResponse {
	resp := &BlockListResponse{
		Blocks: make([]BlockResponse, 0, len(blocks)),
	}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
