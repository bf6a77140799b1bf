package create_lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/internal/service/pricing"
)

// UseCase use case создания урока студентом.
// Последовательно выполняет все проверки допустимости бронирования;
// первая непройденная проверка завершает конвейер.
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

// Execute выполняет use case создания урока.
// Проверки коллизий и ценообразование выполняются в сериализуемой
// транзакции вместе со вставкой: чтение валидатора и запись не атомарны
// сами по себе, гонку двух одновременных записей на слот разрешает БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLesson: student=%d, date=%s, time=%s, price=%d",
		req.StudentID, req.Date.Format(domain.DateFormat), req.StartTime, req.Price)

	// 1. Валидация формы входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateLesson: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2-5. Временные проверки: прошлое, горизонт, запас, рабочие часы
	if err := validateTemporal(req.Date, req.StartTime, now, uc.constraints); err != nil {
		uc.logger.Warn("CreateLesson: temporal validation failed: %v", err)
		return nil, err
	}

	// Персональные цены студента
	student, err := uc.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("CreateLesson: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateLesson: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	var result *domain.Lesson

	// 6-8. Коллизии, блокировки и цена - в сериализуемой транзакции
	// вместе со вставкой (выборка уроков берёт FOR UPDATE)
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6. Пересечение с существующим уроком
		colliding, err := uc.index.CollidingLesson(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateLesson: collision check failed: %v", err)
			return fmt.Errorf("%w: collision check: %v", ErrInternal, err)
		}
		if colliding != nil {
			uc.logger.Warn("CreateLesson: slot %s conflicts with lesson at %s", req.StartTime, *colliding)
			return &SlotConflictError{ConflictingStart: *colliding}
		}

		// 7. Попадание в заблокированный диапазон
		blocked, err := uc.index.IsBlocked(txCtx, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateLesson: blocked check failed: %v", err)
			return fmt.Errorf("%w: blocked check: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("CreateLesson: time %s on %s is blocked", req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrTimeBlocked
		}

		// 8. Ценообразование: счётчик уроков дня без учёта создаваемого
		existing, err := uc.lessonRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to list lessons: %v", err)
			return fmt.Errorf("%w: failed to list lessons: %v", ErrInternal, err)
		}

		required := uc.engine.RequiredMinimumPrice(req.StartTime, len(existing), student.PricingProfile())
		if err := uc.engine.ValidateProposedPrice(req.Price, required); err != nil {
			uc.logger.Warn("CreateLesson: price validation failed: %v", err)
			return mapPriceError(err, req.Price, required, uc.constraints.MaxPrice)
		}

		topic := domain.DefaultTopic
		if req.Topic != nil && *req.Topic != "" {
			topic = *req.Topic
		}

		lesson := &domain.Lesson{
			StudentID: req.StudentID,
			Date:      req.Date,
			StartTime: req.StartTime,
			Price:     req.Price,
			Topic:     topic,
		}

		created, err := uc.lessonRepo.Create(txCtx, lesson)
		if err != nil {
			if errors.Is(err, lessonRepo.ErrSlotTaken) {
				// Гонку поймало уникальное ограничение БД
				uc.logger.Warn("CreateLesson: slot %s taken at commit time", req.StartTime)
				return &SlotConflictError{ConflictingStart: req.StartTime}
			}
			uc.logger.Error("CreateLesson: failed to create lesson: %v", err)
			return fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateLesson: successfully created lesson id=%d", result.ID)

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

func mapPriceError(err error, proposed, required, maximum int) error {
	switch {
	case errors.Is(err, pricing.ErrPriceTooLow):
		return NewPriceError(ErrPriceTooLow, proposed, required)
	case errors.Is(err, pricing.ErrPriceImplausible):
		return NewPriceError(ErrPriceImplausible, proposed, maximum)
	default:
		return err
	}
}
