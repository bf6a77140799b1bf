package quote_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// LessonRepository интерфейс репозитория уроков
type LessonRepository interface {
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// PricingEngine интерфейс котировки минимальной цены слота
type PricingEngine interface {
	RequiredMinimumPrice(t types.TimeString, dailyCountExcludingThis int, profile domain.PricingProfile) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
