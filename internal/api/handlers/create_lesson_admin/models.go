package create_lesson_admin

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	createLessonAdmin "github.com/m04kA/SMC-LessonsService/internal/usecase/create_lesson_admin"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// CreateLessonAdminRequest HTTP request model
type CreateLessonAdminRequest struct {
	StudentID int64   `json:"studentId"`
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "14:00"
	Price     int     `json:"price"`
	Topic     *string `json:"topic,omitempty"`
}

// LessonResponse HTTP response model
type LessonResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Price     int    `json:"price"`
	Topic     string `json:"topic"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateLessonAdminRequest) ToUseCaseRequest() (*createLessonAdmin.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createLessonAdmin.Request{
		StudentID: r.StudentID,
		Date:      date,
		StartTime: startTime,
		Price:     r.Price,
		Topic:     r.Topic,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createLessonAdmin.Response) *LessonResponse {
	return &LessonResponse{
		ID:        resp.ID,
		StudentID: resp.StudentID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		Price:     resp.Price,
		Topic:     resp.Topic,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
