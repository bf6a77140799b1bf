package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок времени
type BlockRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.TimeBlock, error)
	Delete(ctx context.Context, id int64) error
}

// CacheInvalidator интерфейс сброса кеша заблокированных интервалов даты
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
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
