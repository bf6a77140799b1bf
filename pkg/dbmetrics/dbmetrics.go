package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс исполнения запросов, реализуется *sql.DB, *sql.Tx,
// *DB и *Tx. Репозитории зависят только от него.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Collector интерфейс коллектора метрик (реализуется pkg/metrics)
type Collector interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBConnections(db string, open, idle, inUse int)
}

type txCtxKey struct{}

// WithTx кладет транзакцию в контекст. Используется transaction manager'ами,
// репозитории достают её через GetExecutor.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она там есть,
// иначе переданный по умолчанию executor
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txCtxKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(TxExecutor)
	return ok
}

// DB обёртка над *sql.DB, записывающая метрики каждого запроса
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает *sql.DB коллектором метрик
func Wrap(db *sql.DB, collector Collector) *DB {
	return &DB{db: db, collector: collector}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор метрик
// connection pool'а до закрытия stopCh
func WrapWithDefault(db *sql.DB, collector Collector, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector)
	go wrapped.collectPoolStats(dbName, stopCh)
	return wrapped
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.collector.ObserveDBQuery(operationOf(query), time.Since(start), err)
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.collector.ObserveDBQuery(operationOf(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик.
// Ошибка выполнения станет известна только при Scan, поэтому здесь
// фиксируется только длительность.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.collector.ObserveDBQuery(operationOf(query), time.Since(start), nil)
	return row
}

// BeginTx открывает транзакцию, запросы которой также пишут метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, collector: d.collector}, nil
}

func (d *DB) collectPoolStats(dbName string, stopCh <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.SetDBConnections(dbName, stats.OpenConnections, stats.Idle, stats.InUse)
		}
	}
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx        *sql.Tx
	collector Collector
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.collector.ObserveDBQuery(operationOf(query), time.Since(start), err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.collector.ObserveDBQuery(operationOf(query), time.Since(start), err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.collector.ObserveDBQuery(operationOf(query), time.Since(start), nil)
	return row
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// operationOf грубо классифицирует запрос по первому SQL-глаголу
func operationOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
