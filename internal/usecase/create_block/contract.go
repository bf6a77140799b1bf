package create_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// BlockRepository интерфейс репозитория блокировок времени
type BlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
}

// AvailabilityIndex интерфейс проверки пересечений с уроками и блокировками
type AvailabilityIndex interface {
	OverlappingLesson(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error)
	OverlappingBlock(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error)
}

// CacheInvalidator интерфейс сброса кеша заблокированных интервалов даты
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
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
