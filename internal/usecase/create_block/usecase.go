package create_block

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
)

// UseCase use case блокировки интервала времени администратором.
// Порядок проверок фиксирован: форма и корректность интервала,
// пересечение с существующими блокировками, дата (прошлое / горизонт),
// пересечение с записанными уроками. Проверки пересечений и вставка
// выполняются в одной сериализуемой транзакции.
type UseCase struct {
	blockRepo    BlockRepository
	index        AvailabilityIndex
	cache        CacheInvalidator
	constraints  domain.CalendarConstraints
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blockRepo BlockRepository,
	index AvailabilityIndex,
	cache CacheInvalidator,
	constraints domain.CalendarConstraints,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		blockRepo:    blockRepo,
		index:        index,
		cache:        cache,
		constraints:  constraints,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case блокировки интервала времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: date=%s, interval=%s-%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	var result *domain.TimeBlock

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflict, err := uc.index.OverlappingBlock(txCtx, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBlock: block overlap check failed: %v", err)
			return fmt.Errorf("%w: block overlap check: %v", ErrInternal, err)
		}
		if conflict != nil {
			return &OverlapError{kind: ErrOverlapsBlock, Start: conflict.Start, End: conflict.End}
		}

		if err := validateDate(req.Date, uc.timeProvider.Now(), uc.constraints); err != nil {
			return err
		}

		lesson, err := uc.index.OverlappingLesson(txCtx, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBlock: lesson overlap check failed: %v", err)
			return fmt.Errorf("%w: lesson overlap check: %v", ErrInternal, err)
		}
		if lesson != nil {
			return &OverlapError{kind: ErrOverlapsLesson, Start: lesson.Start, End: lesson.End}
		}

		block := &domain.TimeBlock{
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}

		created, err := uc.blockRepo.Create(txCtx, block)
		if err != nil {
			uc.logger.Error("CreateBlock: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrInternal) {
			uc.logger.Warn("CreateBlock: block %s %s-%s rejected: %v",
				req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, err)
		}
		return nil, err
	}

	// Кеш сбрасывается после коммита; при ошибке запись истечёт по TTL
	if err := uc.cache.Invalidate(ctx, req.Date); err != nil {
		uc.logger.Warn("CreateBlock: failed to invalidate blocked time cache for %s: %v",
			req.Date.Format(domain.DateFormat), err)
	}

	uc.logger.Info("CreateBlock: successfully created block id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		Date:      result.Date,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		CreatedAt: result.CreatedAt,
	}, nil
}
