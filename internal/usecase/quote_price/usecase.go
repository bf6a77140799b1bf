package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
)

// UseCase use case котировки цены слота. Считает тот же обязательный
// минимум, что и проверка цены при создании урока, поэтому котировка
// всегда проходит последующую валидацию, если состояние дня не
// изменилось между запросами.
type UseCase struct {
	lessonRepo  LessonRepository
	studentRepo StudentRepository
	engine      PricingEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	studentRepo StudentRepository,
	engine PricingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет use case котировки цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	profile := domain.PricingProfile{}
	if req.StudentID != nil {
		student, err := uc.studentRepo.GetByID(ctx, *req.StudentID)
		if err != nil {
			if errors.Is(err, studentRepo.ErrStudentNotFound) {
				uc.logger.Warn("QuotePrice: student id=%d not found", *req.StudentID)
				return nil, ErrStudentNotFound
			}
			uc.logger.Error("QuotePrice: failed to get student id=%d: %v", *req.StudentID, err)
			return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}
		profile = student.PricingProfile()
	}

	count, err := uc.lessonRepo.CountByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to count lessons: %v", err)
		return nil, fmt.Errorf("%w: failed to count lessons: %v", ErrInternal, err)
	}

	price := uc.engine.RequiredMinimumPrice(req.StartTime, count, profile)

	return &Response{
		Date:      req.Date,
		StartTime: req.StartTime,
		Price:     price,
	}, nil
}
