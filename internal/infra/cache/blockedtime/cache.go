package blockedtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/types"
)

const keyPrefix = "blocked_time:"

// BlockSource источник блокировок на дату (репозиторий блокировок)
type BlockSource interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeBlock, error)
}

// MetricsCollector интерфейс для метрик кеша
type MetricsCollector interface {
	ObserveCacheHit(cache string)
	ObserveCacheMiss(cache string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кеш блокировок поверх репозитория.
// Будущие даты кешируются на TTL, прошедшие даты всегда читаются из
// репозитория: они не меняются, а кеш им уже не нужен. Ошибки Redis
// не фатальны, чтение уходит в репозиторий.
type Cache struct {
	client  *redis.Client
	source  BlockSource
	ttl     time.Duration
	metrics MetricsCollector
	logger  Logger
}

// New создает кеш блокировок. TTL берется с запасом в сутки поверх
// горизонта планирования, metrics может быть nil.
func New(client *redis.Client, source BlockSource, constraints domain.CalendarConstraints, metrics MetricsCollector, logger Logger) *Cache {
	return &Cache{
		client:  client,
		source:  source,
		ttl:     constraints.BookingHorizon + 24*time.Hour,
		metrics: metrics,
		logger:  logger,
	}
}

// NoopInvalidator заглушка для работы без Redis
type NoopInvalidator struct{}

// Invalidate ничего не делает
func (NoopInvalidator) Invalidate(ctx context.Context, date time.Time) error {
	return nil
}

type cachedBlock struct {
	ID        int64            `json:"id"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ListByDate получает блокировки даты через кеш
func (c *Cache) ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeBlock, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return c.source.ListByDate(ctx, date)
	}

	key := c.key(date)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached []cachedBlock
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.observeHit()
			return fromCached(cached), nil
		}
		c.logger.Warn("blockedtime cache: corrupted entry %s, rereading", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("blockedtime cache: get %s failed: %v", key, err)
	}

	c.observeMiss()

	blocks, err := c.source.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(toCached(blocks)); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("blockedtime cache: set %s failed: %v", key, err)
		}
	}

	return blocks, nil
}

// Invalidate сбрасывает кеш даты
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, c.key(date)).Err(); err != nil {
		return fmt.Errorf("blockedtime cache: del %s: %w", c.key(date), err)
	}
	return nil
}

func (c *Cache) key(date time.Time) string {
	return keyPrefix + date.Format(domain.DateFormat)
}

func (c *Cache) observeHit() {
	if c.metrics != nil {
		c.metrics.ObserveCacheHit("blocked_time")
	}
}

func (c *Cache) observeMiss() {
	if c.metrics != nil {
		c.metrics.ObserveCacheMiss("blocked_time")
	}
}

func toCached(blocks []*domain.TimeBlock) []cachedBlock {
	cached := make([]cachedBlock, 0, len(blocks))
	for _, b := range blocks {
		cached = append(cached, cachedBlock{
			ID:        b.ID,
			Date:      b.Date.Format(domain.DateFormat),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			CreatedAt: b.CreatedAt,
		})
	}
	return cached
}

func fromCached(cached []cachedBlock) []*domain.TimeBlock {
	blocks := make([]*domain.TimeBlock, 0, len(cached))
	for _, cb := range cached {
		date, err := time.Parse(domain.DateFormat, cb.Date)
		if err != nil {
			continue
		}
		blocks = append(blocks, &domain.TimeBlock{
			ID:        cb.ID,
			Date:      date,
			StartTime: cb.StartTime,
			EndTime:   cb.EndTime,
			CreatedAt: cb.CreatedAt,
		})
	}
	return blocks
}
