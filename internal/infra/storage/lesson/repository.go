package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonsService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки Postgres при нарушении уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с уроками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уроков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый урок.
// Уникальное ограничение (lesson_date, start_time) в схеме - последний рубеж
// против гонки двух одновременных бронирований: валидатор перечитывает слоты
// внутри сериализуемой транзакции, а нарушение уникальности при вставке
// переводится в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lessons").
		Columns(
			"student_id",
			"lesson_date",
			"start_time",
			"price",
			"topic",
		).
		Values(
			lesson.StudentID,
			lesson.Date,
			lesson.StartTime,
			lesson.Price,
			lesson.Topic,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lesson.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return lesson, nil
}

// GetByID получает урок по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"student_id",
		"lesson_date",
		"start_time",
		"price",
		"topic",
		"created_at",
		"updated_at",
	).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var lesson domain.Lesson
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lesson.ID,
		&lesson.StudentID,
		&lesson.Date,
		&lesson.StartTime,
		&lesson.Price,
		&lesson.Topic,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lesson: %v", ErrScanRow, err)
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return &lesson, nil
}

// ListByDate получает все уроки на дату, отсортированные по времени начала.
// Внутри транзакции блокирует строки (FOR UPDATE) - выборка используется
// валидатором бронирования для проверки коллизий перед вставкой.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"student_id",
		"lesson_date",
		"start_time",
		"price",
		"topic",
		"created_at",
		"updated_at",
	).
		From("lessons").
		Where(squirrel.Eq{"lesson_date": date}).
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

	return r.scanLessons(rows)
}

// ListWithFilter получает уроки с фильтрацией по студенту и/или периоду,
// отсортированные по дате и времени начала
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"student_id",
		"lesson_date",
		"start_time",
		"price",
		"topic",
		"created_at",
		"updated_at",
	).
		From("lessons").
		OrderBy("lesson_date ASC, start_time ASC")

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lesson_date": *filter.Date})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"lesson_date": *filter.FromDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLessons(rows)
}

// CountByDate возвращает число уроков на дату.
// Используется ценовым движком для правила заполненного дня.
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("lessons").
		Where(squirrel.Eq{"lesson_date": date}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет урок
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("lessons").
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
		return ErrLessonNotFound
	}

	return nil
}

// scanLessons сканирует результаты запроса в слайс уроков
func (r *Repository) scanLessons(rows *sql.Rows) ([]*domain.Lesson, error) {
	lessons := make([]*domain.Lesson, 0)

	for rows.Next() {
		var lesson domain.Lesson
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&lesson.ID,
			&lesson.StudentID,
			&lesson.Date,
			&lesson.StartTime,
			&lesson.Price,
			&lesson.Topic,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanLessons - scan row: %v", ErrScanRow, err)
		}

		lesson.CreatedAt = createdAt.Time
		lesson.UpdatedAt = updatedAt.Time

		lessons = append(lessons, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLessons - rows error: %v", ErrScanRow, err)
	}

	return lessons, nil
}
