package lessons

import (
	"context"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// LessonRepository интерфейс репозитория уроков
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	ListWithFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
