package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// Index выводит картину занятости одной даты: часовые слоты, занятые
// уроками, и диапазоны, заблокированные администратором. Только читает
// данные, никогда не пишет. Вся логика ограничена одной датой.
type Index struct {
	lessons     LessonSource
	blocks      BlockSource
	businessEnd types.TimeString
}

// NewIndex создает индекс занятости
func NewIndex(lessons LessonSource, blocks BlockSource, businessEnd types.TimeString) *Index {
	return &Index{
		lessons:     lessons,
		blocks:      blocks,
		businessEnd: businessEnd,
	}
}

// OccupiedSlots возвращает отсортированные времена начала занятых часовых слотов
func (i *Index) OccupiedSlots(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	lessons, err := i.lessons.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list lessons: %w", err)
	}

	slots := make([]types.TimeString, 0, len(lessons))
	for _, lesson := range lessons {
		slots = append(slots, lesson.StartTime)
	}
	sort.Slice(slots, func(a, b int) bool { return slots[a].IsBefore(slots[b]) })

	return slots, nil
}

// BlockedRanges возвращает заблокированные диапазоны даты, отсортированные по началу
func (i *Index) BlockedRanges(ctx context.Context, date time.Time) ([]domain.BlockedRange, error) {
	blocks, err := i.blocks.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list blocks: %w", err)
	}

	ranges := make([]domain.BlockedRange, 0, len(blocks))
	for _, block := range blocks {
		ranges = append(ranges, domain.BlockedRange{Start: block.StartTime, End: block.EndTime})
	}
	sort.Slice(ranges, func(a, b int) bool { return ranges[a].Start.IsBefore(ranges[b].Start) })

	return ranges, nil
}

// CollidingLesson возвращает время начала существующего урока, чей слот
// пересекается со слотом кандидата [t, t+1h), либо nil, если коллизии нет.
// Проверка интервальная в обе стороны: урок, начавшийся внутри слота
// кандидата, тоже коллизия.
func (i *Index) CollidingLesson(ctx context.Context, date time.Time, t types.TimeString) (*types.TimeString, error) {
	lessons, err := i.lessons.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list lessons: %w", err)
	}

	end, err := t.AddMinutes(domain.LessonDurationMinutes)
	if err != nil {
		// кандидат упирается в конец суток
		end = types.TimeString("24:00")
	}

	for _, lesson := range lessons {
		if lesson.OverlapsRange(t, end) {
			start := lesson.StartTime
			return &start, nil
		}
	}
	return nil, nil
}

// IsBlocked проверяет, накрывает ли момент t какой-либо блок даты.
// Граничное правило: t == block.end заблокировано только при
// block.end == businessEnd (см. domain.TimeBlock.Covers).
func (i *Index) IsBlocked(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	blocks, err := i.blocks.ListByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("availability: list blocks: %w", err)
	}

	for _, block := range blocks {
		if block.Covers(t, i.businessEnd) {
			return true, nil
		}
	}
	return false, nil
}

// IsSlotFree проверяет, что момент t не попадает ни в занятый слот,
// ни в заблокированный диапазон
func (i *Index) IsSlotFree(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	colliding, err := i.CollidingLesson(ctx, date, t)
	if err != nil {
		return false, err
	}
	if colliding != nil {
		return false, nil
	}

	blocked, err := i.IsBlocked(ctx, date, t)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// OverlappingLesson возвращает слот первого урока, пересекающего
// [start, end), либо nil, если пересечений нет
func (i *Index) OverlappingLesson(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error) {
	lessons, err := i.lessons.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list lessons: %w", err)
	}

	for _, lesson := range lessons {
		if lesson.OverlapsRange(start, end) {
			return &domain.BlockedRange{Start: lesson.StartTime, End: lesson.EndTime()}, nil
		}
	}
	return nil, nil
}

// OverlappingBlock возвращает границы первой блокировки, пересекающей
// [start, end) (полуоткрытый тест: start < other.end && end > other.start),
// либо nil, если пересечений нет
func (i *Index) OverlappingBlock(ctx context.Context, date time.Time, start, end types.TimeString) (*domain.BlockedRange, error) {
	blocks, err := i.blocks.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: list blocks: %w", err)
	}

	for _, block := range blocks {
		if block.OverlapsRange(start, end) {
			return &domain.BlockedRange{Start: block.StartTime, End: block.EndTime}, nil
		}
	}
	return nil, nil
}
