package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// LessonSource источник уроков на дату (репозиторий уроков)
type LessonSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
}

// BlockSource источник блокировок на дату.
// В транзакции валидаторов это репозиторий напрямую; на read-only путях
// может быть подставлен read-through кеш - индекс этого не различает.
type BlockSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeBlock, error)
}
