package create_lesson_admin

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// LessonRepository интерфейс репозитория уроков
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// AvailabilityIndex интерфейс проверки занятости слотов даты
type AvailabilityIndex interface {
	CollidingLesson(ctx context.Context, date time.Time, start types.TimeString) (*types.TimeString, error)
	IsBlocked(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
}

// PricingEngine интерфейс проверки потолка цены
type PricingEngine interface {
	CapPrice(price int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
