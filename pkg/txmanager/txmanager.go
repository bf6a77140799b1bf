package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-LessonsService/pkg/dbmetrics"
)

// pgSerializationFailure код ошибки Postgres при конфликте сериализуемых транзакций
const pgSerializationFailure = "40001"

// maxSerializableRetries число повторов сериализуемой транзакции при конфликте
const maxSerializableRetries = 3

// TxBeginner источник транзакций (*dbmetrics.DB или совместимая обёртка)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями поверх обёрнутой метриками БД.
// Транзакция кладется в контекст, репозитории достают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// При конфликте сериализации (40001) транзакция повторяется целиком.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		err = m.do(ctx, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("txmanager: serializable transaction failed after %d retries: %w", maxSerializableRetries, err)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
