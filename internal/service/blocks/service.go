package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	blockRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/timeblock"
	"github.com/m04kA/SMC-LessonsService/internal/service/blocks/models"
)

// Service сервис для работы с блокировками времени.
// Создание блокировок идёт через отдельный use case с полным набором
// проверок; здесь только чтение и удаление.
type Service struct {
	blockRepo    BlockRepository
	cache        CacheInvalidator
	constraints  domain.CalendarConstraints
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo BlockRepository,
	cache CacheInvalidator,
	constraints domain.CalendarConstraints,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:    blockRepo,
		cache:        cache,
		constraints:  constraints,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListUpcoming получает блокировки от сегодняшнего дня до горизонта планирования
func (s *Service) ListUpcoming(ctx context.Context) (*models.BlockListResponse, error) {
	now := s.timeProvider.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := s.constraints.HorizonDate(now)

	s.logger.Info("ListUpcoming: fetching blocks from %s to %s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	blocks, err := s.blockRepo.ListUpcoming(ctx, from, to)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: successfully fetched %d blocks", len(blocks))
	return models.FromDomainBlockList(blocks), nil
}

// Delete снимает блокировку и сбрасывает кеш её даты
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting block id=%d", id)

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found during deletion", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Кеш истечёт по TTL, если сброс не удался
	if err := s.cache.Invalidate(ctx, block.Date); err != nil {
		s.logger.Warn("Delete: failed to invalidate blocked time cache for %s: %v",
			block.Date.Format(domain.DateFormat), err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", id)
	return nil
}
