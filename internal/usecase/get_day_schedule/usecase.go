package get_day_schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

// UseCase use case картины занятости даты: занятые слоты,
// заблокированные интервалы и свободные часовые слоты с минимальной
// ценой записи. Свободными считаются только слоты, на которые прямо
// сейчас можно записаться: прошедшие, ближе минимального запаса времени
// и за горизонтом планирования в список не попадают.
type UseCase struct {
	lessons      LessonSource
	blocks       BlockSource
	studentRepo  StudentRepository
	engine       PricingEngine
	constraints  domain.CalendarConstraints
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessons LessonSource,
	blocks BlockSource,
	studentRepo StudentRepository,
	engine PricingEngine,
	constraints domain.CalendarConstraints,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessons:      lessons,
		blocks:       blocks,
		studentRepo:  studentRepo,
		engine:       engine,
		constraints:  constraints,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	profile := domain.PricingProfile{}
	if req.StudentID != nil {
		student, err := uc.studentRepo.GetByID(ctx, *req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				uc.logger.Warn("GetDaySchedule: student id=%d not found", *req.StudentID)
				return nil, ErrStudentNotFound
			}
			uc.logger.Error("GetDaySchedule: failed to get student id=%d: %v", *req.StudentID, err)
			return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}
		profile = student.PricingProfile()
	}

	lessons, err := uc.lessons.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to list lessons: %v", ErrInternal, err)
	}
	blocks, err := uc.blocks.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	occupied := make([]types.TimeString, 0, len(lessons))
	for _, lesson := range lessons {
		occupied = append(occupied, lesson.StartTime)
	}
	sort.Slice(occupied, func(a, b int) bool { return occupied[a].IsBefore(occupied[b]) })

	blocked := make([]BlockedRange, 0, len(blocks))
	for _, block := range blocks {
		blocked = append(blocked, BlockedRange{StartTime: block.StartTime, EndTime: block.EndTime})
	}
	sort.Slice(blocked, func(a, b int) bool { return blocked[a].StartTime.IsBefore(blocked[b].StartTime) })

	free, err := uc.freeSlots(req.Date, lessons, blocks, profile)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to compute free slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute free slots: %v", ErrInternal, err)
	}

	return &Response{
		Date:     req.Date,
		Occupied: occupied,
		Blocked:  blocked,
		Free:     free,
	}, nil
}

// freeSlots перебирает часовые слоты рабочего дня и котирует доступные.
// Обе границы рабочего дня включительны: слот в businessEnd допустим.
func (uc *UseCase) freeSlots(
	date time.Time,
	lessons []*domain.Lesson,
	blocks []*domain.TimeBlock,
	profile domain.PricingProfile,
) ([]FreeSlot, error) {
	now := uc.timeProvider.Now()

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.After(uc.constraints.HorizonDate(now)) {
		return []FreeSlot{}, nil
	}

	earliest := now.Add(uc.constraints.LeadTime)

	free := make([]FreeSlot, 0)
	for t := uc.constraints.BusinessStart; !t.IsAfter(uc.constraints.BusinessEnd); {
		if uc.slotAvailable(t, date, earliest, lessons, blocks) {
			free = append(free, FreeSlot{
				StartTime: t,
				Price:     uc.engine.RequiredMinimumPrice(t, len(lessons), profile),
			})
		}

		next, err := t.AddMinutes(domain.LessonDurationMinutes)
		if err != nil {
			return nil, err
		}
		t = next
	}

	return free, nil
}

func (uc *UseCase) slotAvailable(
	t types.TimeString,
	date time.Time,
	earliest time.Time,
	lessons []*domain.Lesson,
	blocks []*domain.TimeBlock,
) bool {
	if t.At(date).Before(earliest) {
		return false
	}
	for _, lesson := range lessons {
		if lesson.Occupies(t) {
			return false
		}
	}
	for _, block := range blocks {
		if block.Covers(t, uc.constraints.BusinessEnd) {
			return false
		}
	}
	return true
}
