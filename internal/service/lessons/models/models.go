package models

import (
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// Request модели

// GetUserLessonsRequest запрос на получение уроков студента
type GetUserLessonsRequest struct {
	StudentID int64      `json:"studentId"`
	FromDate  *time.Time `json:"fromDate,omitempty"` // Только уроки начиная с даты (опционально)
}

// Response модели

// LessonResponse ответ с данными урока
type LessonResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "14:00"
	EndTime   string `json:"endTime"`   // "15:00"
	Price     int    `json:"price"`
	Topic     string `json:"topic"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonListResponse ответ со списком уроков
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
}

// Методы конвертации

// FromDomainLesson конвертирует domain модель в DTO
func FromDomainLesson(l *domain.Lesson) *LessonResponse {
	if l == nil {
		return nil
	}

	return &LessonResponse{
		ID:        l.ID,
		StudentID: l.StudentID,
		Date:      l.Date.Format(domain.DateFormat),
		StartTime: l.StartTime.String(),
		EndTime:   l.EndTime().String(),
		Price:     l.Price,
		Topic:     l.Topic,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// FromDomainLessonList конвертирует список domain моделей в DTO
func FromDomainLessonList(lessons []*domain.Lesson) *LessonListResponse {
	resp := &LessonListResponse{
		Lessons: make([]LessonResponse, 0, len(lessons)),
	}
	for _, l := range lessons {
		resp.Lessons = append(resp.Lessons, *FromDomainLesson(l))
	}
	return resp
}
