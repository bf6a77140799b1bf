package create_block

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	createBlock "github.com/m04kA/SMC-LessonsService/internal/usecase/create_block"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest() (*createBlock.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *BlockResponse {
	return &BlockResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
