package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	"github.com/m04kA/SMC-LessonsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonsService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий для работы с записями студентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись студента. Логин уникален.
func (r *Repository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("students").
		Columns(
			"username",
			"first_name",
			"password_hash",
			"phone",
			"telegram",
			"is_admin",
			"usual_price",
			"high_price",
		).
		Values(
			student.Username,
			student.FirstName,
			student.PasswordHash,
			student.Phone,
			student.Telegram,
			student.IsAdmin,
			student.UsualPrice,
			student.HighPrice,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&student.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	student.CreatedAt = createdAt.Time

	return student, nil
}

// GetByID получает студента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername получает студента по логину
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// List получает всех студентов, отсортированных по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student, err := r.scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return students, nil
}

// UpdatePricing обновляет персональные цены студента.
// nil-значение сбрасывает цену на глобальную.
func (r *Repository) UpdatePricing(ctx context.Context, id int64, usualPrice, highPrice *int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("usual_price", usualPrice).
		Set("high_price", highPrice).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePricing - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePricing - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePricing - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Delete удаляет запись студента. Уроки студента удаляются каскадно схемой.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("students").
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
		return ErrStudentNotFound
	}

	return nil
}

func (r *Repository) selectBuilder() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"username",
		"first_name",
		"password_hash",
		"phone",
		"telegram",
		"is_admin",
		"usual_price",
		"high_price",
		"created_at",
	).From("students")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBuilder().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var student domain.Student
	var createdAt sql.NullTime
	var usualPrice, highPrice sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&student.ID,
		&student.Username,
		&student.FirstName,
		&student.PasswordHash,
		&student.Phone,
		&student.Telegram,
		&student.IsAdmin,
		&usualPrice,
		&highPrice,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan student: %v", ErrScanRow, err)
	}

	student.CreatedAt = createdAt.Time
	student.UsualPrice = nullIntPtr(usualPrice)
	student.HighPrice = nullIntPtr(highPrice)

	return &student, nil
}

func (r *Repository) scanStudent(rows *sql.Rows) (*domain.Student, error) {
	var student domain.Student
	var createdAt sql.NullTime
	var usualPrice, highPrice sql.NullInt64

	err := rows.Scan(
		&student.ID,
		&student.Username,
		&student.FirstName,
		&student.PasswordHash,
		&student.Phone,
		&student.Telegram,
		&student.IsAdmin,
		&usualPrice,
		&highPrice,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanStudent - scan row: %v", ErrScanRow, err)
	}

	student.CreatedAt = createdAt.Time
	student.UsualPrice = nullIntPtr(usualPrice)
	student.HighPrice = nullIntPtr(highPrice)

	return &student, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
