package timeblock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonsService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с блокировками времени
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку времени
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_blocks").
		Columns(
			"block_date",
			"start_time",
			"end_time",
		).
		Values(
			block.Date,
			block.StartTime,
			block.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListByDate получает все блокировки на дату, отсортированные по времени начала.
// Внутри транзакции блокирует строки (FOR UPDATE) - выборка используется
// валидатором блокировок для проверки пересечений перед вставкой.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"block_date",
		"start_time",
		"end_time",
		"created_at",
	).
		From("time_blocks").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// ListUpcoming получает блокировки с date по date+horizon включительно,
// отсортированные по дате и времени начала. Используется админским списком.
func (r *Repository) ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"block_date",
		"start_time",
		"end_time",
		"created_at",
	).
		From("time_blocks").
		Where(squirrel.GtOrEq{"block_date": from}).
		Where(squirrel.LtOrEq{"block_date": to}).
		OrderBy("block_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"block_date",
		"start_time",
		"end_time",
		"created_at",
	).
		From("time_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.TimeBlock
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.Date,
		&block.StartTime,
		&block.EndTime,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.TimeBlock, error) {
	blocks := make([]*domain.TimeBlock, 0)

	for rows.Next() {
		var block domain.TimeBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
