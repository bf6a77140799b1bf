package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// LessonSource источник уроков на дату (репозиторий уроков)
type LessonSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
}

// BlockSource источник блокировок на дату (read-through кеш поверх репозитория)
type BlockSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeBlock, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// PricingEngine интерфейс котировки минимальной цены слота
type PricingEngine interface {
	RequiredMinimumPrice(t types.TimeString, dailyCountExcludingThis int, profile domain.PricingProfile) int
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
