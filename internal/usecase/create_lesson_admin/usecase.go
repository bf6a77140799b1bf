package create_lesson_admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/internal/service/pricing"
)

// UseCase use case создания урока администратором.
// Проверки времени, коллизий и блокировок те же, что на студенческом
// пути; отличается ценообразование: цена задаётся напрямую, минимум не
// действует, потолок остаётся.
type UseCase struct {
	lessonRepo   LessonRepository
	studentRepo  StudentRepository
	index        AvailabilityIndex
	engine       PricingEngine
	constraints  domain.CalendarConstraints
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	studentRepo StudentRepository,
	index AvailabilityIndex,
	engine PricingEngine,
	constraints domain.CalendarConstraints,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:   lessonRepo,
		studentRepo:  studentRepo,
		index:        index,
		engine:       engine,
		constraints:  constraints,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания урока администратором
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLessonAdmin: student=%d, date=%s, time=%s, price=%d",
		req.StudentID, req.Date.Format(domain.DateFormat), req.StartTime, req.Price)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateLessonAdmin: validation failed: %v", err)
		return nil, err
	}

	if err := validateTemporal(req.Date, req.StartTime, uc.timeProvider.Now(), uc.constraints); err != nil {
		uc.logger.Warn("CreateLessonAdmin: temporal validation failed: %v", err)
		return nil, err
	}

	student, err := uc.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("CreateLessonAdmin: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateLessonAdmin: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	if err := uc.engine.CapPrice(req.Price); err != nil {
		if errors.Is(err, pricing.ErrPriceImplausible) {
			uc.logger.Warn("CreateLessonAdmin: price %d exceeds the cap", req.Price)
			return nil, fmt.Errorf("%w: price %d", ErrPriceImplausible, req.Price)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	topic := domain.DefaultTopic
	if req.Topic != nil && *req.Topic != "" {
		topic = *req.Topic
	}

	var result *domain.Lesson

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		colliding, err := uc.index.CollidingLesson(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateLessonAdmin: collision check failed: %v", err)
			return fmt.Errorf("%w: collision check: %v", ErrInternal, err)
		}
		if colliding != nil {
			uc.logger.Warn("CreateLessonAdmin: slot %s conflicts with lesson at %s", req.StartTime, *colliding)
			return &SlotConflictError{ConflictingStart: *colliding}
		}

		blocked, err := uc.index.IsBlocked(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateLessonAdmin: blocked check failed: %v", err)
			return fmt.Errorf("%w: blocked check: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("CreateLessonAdmin: time %s on %s is blocked", req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrTimeBlocked
		}

		lesson := &domain.Lesson{
			StudentID: student.ID,
			Date:      req.Date,
			StartTime: req.StartTime,
			Price:     req.Price,
			Topic:     topic,
		}

		created, err := uc.lessonRepo.Create(txCtx, lesson)
		if err != nil {
			if errors.Is(err, lessonRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateLessonAdmin: slot %s taken at commit time", req.StartTime)
				return &SlotConflictError{ConflictingStart: req.StartTime}
			}
			uc.logger.Error("CreateLessonAdmin: failed to create lesson: %v", err)
			return fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateLessonAdmin: successfully created lesson id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		StudentID: result.StudentID,
		Date:      result.Date,
		StartTime: result.StartTime,
		Price:     result.Price,
		Topic:     result.Topic,
		CreatedAt: result.CreatedAt,
	}, nil
}
